package events

import (
	"time"

	"tracknest.dev/tracknest/internal/constants"
	"tracknest.dev/tracknest/internal/models"
)

// Event is raised by a committing operation and consumed only by the
// Dispatcher. It carries the rows involved so notification construction
// never re-reads them; the persisted notification payload holds only their
// IDs.
type Event struct {
	ID         string
	Kind       constants.EventKind
	Actor      *models.User
	Project    *models.Project
	Task       *models.Task
	Comment    *models.TaskComment
	Assignment *models.ProjectAssignment

	// Populated for task_status_changed.
	FromStatus constants.TaskStatus
	ToStatus   constants.TaskStatus

	OccurredAt time.Time
}
