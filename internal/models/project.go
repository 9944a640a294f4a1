package models

import (
	"time"

	"tracknest.dev/tracknest/internal/constants"
)

type Project struct {
	ID          uint                    `gorm:"primaryKey" json:"id"`
	Name        string                  `gorm:"size:200;not null" json:"name"`
	Description string                  `json:"description"`
	Status      constants.ProjectStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	StartDate   time.Time               `gorm:"not null" json:"start_date"`
	EndDate     time.Time               `gorm:"not null" json:"end_date"`
	CreatedByID uint                    `gorm:"not null;index" json:"created_by_id"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`

	// Relationships
	CreatedBy   User                `gorm:"foreignKey:CreatedByID" json:"-"`
	Assignments []ProjectAssignment `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Tasks       []Task              `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
