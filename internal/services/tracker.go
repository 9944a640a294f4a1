package services

import (
	"context"

	"github.com/redis/rueidis"
	"gorm.io/gorm"

	"tracknest.dev/tracknest/internal/constants"
	"tracknest.dev/tracknest/internal/events"
	"tracknest.dev/tracknest/internal/membership"
	"tracknest.dev/tracknest/internal/models"
	"tracknest.dev/tracknest/internal/policy"
	repository "tracknest.dev/tracknest/internal/repositories"
)

// Tracker is the facade external collaborators call. It wires the membership
// registry, the policy evaluator, the state machines, and the event
// dispatcher over one database handle.
type Tracker struct {
	Projects      *ProjectService
	Tasks         *TaskService
	Comments      *CommentService
	Notifications *NotificationService
	Users         *repository.UserRepository

	members    *membership.Registry
	authorizer *policy.Evaluator
	dispatcher *events.Dispatcher
}

// NewTracker builds the full core. redis may be nil; the notification
// unread-count cache then stays off.
func NewTracker(db *gorm.DB, redis rueidis.Client, dispatchQueueSize int) *Tracker {
	users := repository.NewUserRepository(db)
	projects := repository.NewProjectRepository(db)
	assignments := repository.NewAssignmentRepository(db)
	tasks := repository.NewTaskRepository(db)
	comments := repository.NewCommentRepository(db)
	notifications := repository.NewNotificationRepository(db, redis)

	members := membership.NewRegistry(assignments)
	authorizer := policy.NewEvaluator(members)
	dispatcher := events.NewDispatcher(notifications, dispatchQueueSize)

	return &Tracker{
		Projects:      NewProjectService(projects, assignments, users, members, authorizer, dispatcher),
		Tasks:         NewTaskService(tasks, projects, users, members, authorizer, dispatcher),
		Comments:      NewCommentService(comments, tasks, projects, users, members, authorizer, dispatcher),
		Notifications: NewNotificationService(notifications, users, authorizer),
		Users:         users,
		members:       members,
		authorizer:    authorizer,
		dispatcher:    dispatcher,
	}
}

// Authorize exposes the policy evaluator to callers that filter before
// dispatching work to a service.
func (t *Tracker) Authorize(ctx context.Context, actor *models.User, action constants.Action, res policy.Resource) policy.Decision {
	return t.authorizer.Authorize(ctx, actor, action, res)
}

// IsMember exposes the membership registry for queryset-style filtering.
func (t *Tracker) IsMember(ctx context.Context, projectID, userID uint) (bool, error) {
	return t.members.IsMember(ctx, projectID, userID)
}

// Shutdown drains the event dispatcher.
func (t *Tracker) Shutdown(ctx context.Context) {
	t.dispatcher.Shutdown(ctx)
}
