package models

import "time"

// ProjectAssignment records membership of a user in a project. A user is a
// member of a project at most once. AssignedByID is an audit field, not an
// authority grant.
type ProjectAssignment struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ProjectID    uint      `gorm:"not null;uniqueIndex:idx_project_user" json:"project_id"`
	UserID       uint      `gorm:"not null;uniqueIndex:idx_project_user" json:"user_id"`
	AssignedByID uint      `gorm:"not null" json:"assigned_by_id"`
	CreatedAt    time.Time `json:"assigned_at"`

	// Relationships
	Project    Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	User       User    `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	AssignedBy User    `gorm:"foreignKey:AssignedByID" json:"-"`
}
