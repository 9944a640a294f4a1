package models

import (
	"strings"
	"time"

	"tracknest.dev/tracknest/internal/constants"
)

type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Email     string         `gorm:"uniqueIndex;not null" json:"email"`
	FirstName string         `gorm:"size:150" json:"first_name"`
	LastName  string         `gorm:"size:150" json:"last_name"`
	Role      constants.Role `gorm:"type:varchar(20);not null;default:'viewer'" json:"role"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u *User) IsAdmin() bool {
	return u.Role == constants.RoleAdmin
}

func (u *User) CanManageProjects() bool {
	return u.Role == constants.RoleAdmin || u.Role == constants.RoleCollaborator
}

func (u *User) CanManageTasks() bool {
	return u.Role == constants.RoleAdmin || u.Role == constants.RoleCollaborator
}
