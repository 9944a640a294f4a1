package models

import (
	"time"

	"tracknest.dev/tracknest/internal/constants"
)

type Task struct {
	ID           uint                 `gorm:"primaryKey" json:"id"`
	Name         string               `gorm:"size:200;not null" json:"name"`
	Description  string               `json:"description"`
	Status       constants.TaskStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Priority     constants.Priority   `gorm:"type:varchar(10);not null;default:'medium';index" json:"priority"`
	ProjectID    uint                 `gorm:"not null;index" json:"project_id"`
	AssignedToID *uint                `gorm:"index" json:"assigned_to_id,omitempty"`
	CreatedByID  uint                 `gorm:"not null" json:"created_by_id"`
	DueDate      time.Time            `gorm:"not null;index" json:"due_date"`
	// CompletedAt is derived: set when status enters completed, cleared when
	// it leaves. Never written directly by callers.
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Version     uint       `gorm:"not null;default:1" json:"version"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relationships
	Project    Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	AssignedTo *User   `gorm:"foreignKey:AssignedToID;constraint:OnDelete:SET NULL" json:"-"`
	CreatedBy  User    `gorm:"foreignKey:CreatedByID" json:"-"`
}
