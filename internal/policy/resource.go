package policy

import "tracknest.dev/tracknest/internal/models"

type Kind string

const (
	KindProject      Kind = "project"
	KindTask         Kind = "task"
	KindComment      Kind = "comment"
	KindAssignment   Kind = "assignment"
	KindNotification Kind = "notification"
)

// Resource is the closed set of things the evaluator can decide over. Each
// variant carries the already-loaded rows the rules need, so evaluation never
// touches storage beyond the membership check.
type Resource interface {
	ResourceKind() Kind
}

type ProjectResource struct {
	Project *models.Project
}

func (ProjectResource) ResourceKind() Kind { return KindProject }

type TaskResource struct {
	Task *models.Task
}

func (TaskResource) ResourceKind() Kind { return KindTask }

// CommentResource carries the parent task because the view rule is scoped to
// the task's project.
type CommentResource struct {
	Comment *models.TaskComment
	Task    *models.Task
}

func (CommentResource) ResourceKind() Kind { return KindComment }

type AssignmentResource struct {
	Assignment *models.ProjectAssignment
}

func (AssignmentResource) ResourceKind() Kind { return KindAssignment }

type NotificationResource struct {
	Notification *models.Notification
}

func (NotificationResource) ResourceKind() Kind { return KindNotification }
