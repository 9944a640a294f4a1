package models

import (
	"time"

	"gorm.io/datatypes"

	"tracknest.dev/tracknest/internal/constants"
)

// Notification is created exclusively as a side effect of domain events and
// belongs to its recipient. The sender is a weak reference and survives as
// NULL when the sending user is deactivated or detached.
type Notification struct {
	ID          uint                       `gorm:"primaryKey" json:"id"`
	RecipientID uint                       `gorm:"not null;index:idx_recipient_read" json:"recipient_id"`
	SenderID    *uint                      `json:"sender_id,omitempty"`
	Type        constants.NotificationType `gorm:"type:varchar(32);not null;default:'general';index" json:"type"`
	Priority    constants.Priority         `gorm:"type:varchar(10);not null;default:'medium'" json:"priority"`
	Title       string                     `gorm:"size:200;not null" json:"title"`
	Message     string                     `gorm:"not null" json:"message"`
	IsRead      bool                       `gorm:"default:false;index:idx_recipient_read" json:"is_read"`
	// ReadAt is derived: set when the notification flips to read, cleared
	// when it flips back to unread.
	ReadAt *time.Time `json:"read_at,omitempty"`

	// Weak references for client-side navigation only, not ownership.
	RelatedProjectID *uint `json:"related_project_id,omitempty"`
	RelatedTaskID    *uint `json:"related_task_id,omitempty"`

	// Extra carries event-kind-specific entity IDs. The keys are documented
	// per event kind and never validated against a fixed schema here.
	Extra datatypes.JSON `json:"extra,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Recipient      User     `gorm:"foreignKey:RecipientID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Sender         *User    `gorm:"foreignKey:SenderID;constraint:OnDelete:SET NULL" json:"-"`
	RelatedProject *Project `gorm:"foreignKey:RelatedProjectID;constraint:OnDelete:CASCADE" json:"-"`
	RelatedTask    *Task    `gorm:"foreignKey:RelatedTaskID;constraint:OnDelete:CASCADE" json:"-"`
}
