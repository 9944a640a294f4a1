package config

import (
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"tracknest.dev/tracknest/internal/models"
)

func NewDatabase(dsn string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectAssignment{},
		&models.Task{},
		&models.TaskComment{},
		&models.Notification{},
	); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	return db
}
