package constants

// Role is the global role of a user. It grants coarse capabilities
// independent of any single project.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleCollaborator Role = "collaborator"
	RoleViewer       Role = "viewer"
)

type ProjectStatus string

const (
	ProjectPending    ProjectStatus = "pending"
	ProjectInProgress ProjectStatus = "in_progress"
	ProjectCompleted  ProjectStatus = "completed"
	ProjectCancelled  ProjectStatus = "cancelled"
)

type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
)

// Priority is shared by tasks and notifications.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

type NotificationType string

const (
	NotificationTaskAssigned    NotificationType = "task_assigned"
	NotificationTaskCompleted   NotificationType = "task_completed"
	NotificationProjectAssigned NotificationType = "project_assigned"
	NotificationCommentAdded    NotificationType = "comment_added"
	NotificationStatusChanged   NotificationType = "task_status_changed"
	NotificationGeneral         NotificationType = "general"
)

// Action is what an actor is attempting against a resource.
type Action string

const (
	ActionView   Action = "view"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

// EventKind names a domain event raised after a committed state change.
type EventKind string

const (
	EventProjectAssignmentCreated EventKind = "project_assignment_created"
	EventTaskCreatedWithAssignee  EventKind = "task_created_with_assignee"
	EventTaskCompleted            EventKind = "task_completed"
	EventCommentAdded             EventKind = "comment_added"
	EventTaskStatusChanged        EventKind = "task_status_changed"
)
