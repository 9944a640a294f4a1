package services

import (
	"context"
	"time"

	"tracknest.dev/tracknest/internal/apperrors"
	"tracknest.dev/tracknest/internal/constants"
	"tracknest.dev/tracknest/internal/events"
	"tracknest.dev/tracknest/internal/membership"
	"tracknest.dev/tracknest/internal/models"
	"tracknest.dev/tracknest/internal/policy"
	repository "tracknest.dev/tracknest/internal/repositories"
)

// taskTransitions is the fixed transition table. No task state is terminal:
// a completed task can be reopened.
var taskTransitions = map[constants.TaskStatus][]constants.TaskStatus{
	constants.TaskPending:    {constants.TaskInProgress, constants.TaskCompleted},
	constants.TaskInProgress: {constants.TaskPending, constants.TaskCompleted},
	constants.TaskCompleted:  {constants.TaskPending, constants.TaskInProgress},
}

func canTransition(from, to constants.TaskStatus) bool {
	for _, allowed := range taskTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

type TaskService struct {
	tasks      *repository.TaskRepository
	projects   *repository.ProjectRepository
	users      *repository.UserRepository
	members    *membership.Registry
	authorizer *policy.Evaluator
	dispatcher *events.Dispatcher
}

func NewTaskService(
	tasks *repository.TaskRepository,
	projects *repository.ProjectRepository,
	users *repository.UserRepository,
	members *membership.Registry,
	authorizer *policy.Evaluator,
	dispatcher *events.Dispatcher,
) *TaskService {
	return &TaskService{
		tasks:      tasks,
		projects:   projects,
		users:      users,
		members:    members,
		authorizer: authorizer,
		dispatcher: dispatcher,
	}
}

type CreateTaskInput struct {
	ProjectID    uint
	Name         string
	Description  string
	Priority     constants.Priority
	AssignedToID *uint
	DueDate      time.Time
}

func (s *TaskService) Create(ctx context.Context, actorID uint, in CreateTaskInput) (*models.Task, error) {
	actor, err := s.users.FindByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	project, err := s.projects.FindByID(ctx, in.ProjectID)
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin() {
		if !actor.CanManageTasks() {
			return nil, apperrors.ErrForbidden
		}
		isMember, err := s.members.IsMember(ctx, project.ID, actor.ID)
		if err != nil {
			return nil, err
		}
		if !isMember {
			return nil, apperrors.ErrForbidden
		}
	}

	if err := s.validateDueDate(project, in.DueDate, true); err != nil {
		return nil, err
	}
	if err := s.validateAssignee(ctx, project.ID, in.AssignedToID); err != nil {
		return nil, err
	}

	priority := in.Priority
	if priority == "" {
		priority = constants.PriorityMedium
	}

	task := &models.Task{
		Name:         in.Name,
		Description:  in.Description,
		Status:       constants.TaskPending,
		Priority:     priority,
		ProjectID:    project.ID,
		AssignedToID: in.AssignedToID,
		CreatedByID:  actor.ID,
		DueDate:      in.DueDate,
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	if task.AssignedToID != nil {
		s.dispatcher.Dispatch(events.Event{
			Kind:    constants.EventTaskCreatedWithAssignee,
			Actor:   actor,
			Project: project,
			Task:    task,
		})
	}

	return task, nil
}

func (s *TaskService) Get(ctx context.Context, actorID, taskID uint) (*models.Task, error) {
	actor, err := s.users.FindByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if !s.authorizer.Authorize(ctx, actor, constants.ActionView, policy.TaskResource{Task: task}).Allowed() {
		return nil, apperrors.ErrForbidden
	}

	return task, nil
}

// ListByProject returns the project's tasks, newest first. Viewing is
// scoped the same way as viewing the project itself.
func (s *TaskService) ListByProject(ctx context.Context, actorID, projectID uint) ([]models.Task, error) {
	actor, err := s.users.FindByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if !s.authorizer.Authorize(ctx, actor, constants.ActionView, policy.ProjectResource{Project: project}).Allowed() {
		return nil, apperrors.ErrForbidden
	}

	return s.tasks.ListByProject(ctx, projectID)
}

type UpdateTaskInput struct {
	Name        string
	Description string
	Priority    constants.Priority
	DueDate     time.Time
}

// Update applies a partial edit: zero-valued fields leave their columns
// unchanged.
func (s *TaskService) Update(ctx context.Context, actorID, taskID uint, in UpdateTaskInput) (*models.Task, error) {
	actor, err := s.users.FindByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if !s.authorizer.Authorize(ctx, actor, constants.ActionEdit, policy.TaskResource{Task: task}).Allowed() {
		return nil, apperrors.ErrForbidden
	}

	if !in.DueDate.IsZero() {
		project, err := s.projects.FindByID(ctx, task.ProjectID)
		if err != nil {
			return nil, err
		}
		if err := s.validateDueDate(project, in.DueDate, false); err != nil {
			return nil, err
		}
		task.DueDate = in.DueDate
	}

	if in.Name != "" {
		task.Name = in.Name
	}
	if in.Description != "" {
		task.Description = in.Description
	}
	if in.Priority != "" {
		task.Priority = in.Priority
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

// Reassign moves the task to another member, or clears the assignee when
// assigneeID is nil.
func (s *TaskService) Reassign(ctx context.Context, actorID, taskID uint, assigneeID *uint) (*models.Task, error) {
	actor, err := s.users.FindByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if !s.authorizer.Authorize(ctx, actor, constants.ActionEdit, policy.TaskResource{Task: task}).Allowed() {
		return nil, apperrors.ErrForbidden
	}

	if err := s.validateAssignee(ctx, task.ProjectID, assigneeID); err != nil {
		return nil, err
	}

	task.AssignedToID = assigneeID
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, actorID, taskID uint) error {
	actor, err := s.users.FindByID(ctx, actorID)
	if err != nil {
		return err
	}

	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return err
	}

	if !s.authorizer.Authorize(ctx, actor, constants.ActionDelete, policy.TaskResource{Task: task}).Allowed() {
		return apperrors.ErrForbidden
	}

	return s.tasks.Delete(ctx, taskID)
}

// Transition validates the status change against the transition table and
// applies it. Requesting the current status is a no-op success. Entering
// completed stamps CompletedAt; leaving it clears the stamp. The write is
// version-guarded, so a concurrent transition on the same task surfaces as
// ErrOptimisticLock instead of a lost update.
func (s *TaskService) Transition(ctx context.Context, actorID, taskID uint, newStatus constants.TaskStatus) (*models.Task, error) {
	actor, err := s.users.FindByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if !s.authorizer.Authorize(ctx, actor, constants.ActionEdit, policy.TaskResource{Task: task}).Allowed() {
		return nil, apperrors.ErrForbidden
	}

	if _, known := taskTransitions[newStatus]; !known {
		return nil, apperrors.NewValidation("status", "unknown task status")
	}

	if task.Status == newStatus {
		return task, nil
	}

	if !canTransition(task.Status, newStatus) {
		return nil, apperrors.NewValidation("status", "invalid status transition")
	}

	oldStatus := task.Status
	task.Status = newStatus

	if newStatus == constants.TaskCompleted {
		if task.CompletedAt == nil {
			now := time.Now().UTC()
			task.CompletedAt = &now
		}
	} else {
		task.CompletedAt = nil
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}

	project, err := s.projects.FindByID(ctx, task.ProjectID)
	if err != nil {
		// The transition itself committed; without the project row the
		// events cannot be built, so they are skipped.
		return task, nil
	}

	if newStatus == constants.TaskCompleted {
		s.dispatcher.Dispatch(events.Event{
			Kind:    constants.EventTaskCompleted,
			Actor:   actor,
			Project: project,
			Task:    task,
		})
	}

	s.dispatcher.Dispatch(events.Event{
		Kind:       constants.EventTaskStatusChanged,
		Actor:      actor,
		Project:    project,
		Task:       task,
		FromStatus: oldStatus,
		ToStatus:   newStatus,
	})

	return task, nil
}

func (s *TaskService) validateDueDate(project *models.Project, dueDate time.Time, creating bool) error {
	if dueDate.IsZero() {
		return apperrors.NewValidation("due_date", "due date is required")
	}

	// Project dates are day-granular; compare on dates so a due time late on
	// the end day still falls inside the window.
	due := truncateToDay(dueDate)

	if creating && due.Before(truncateToDay(time.Now().UTC())) {
		return apperrors.NewValidation("due_date", "due date cannot be in the past")
	}

	if due.Before(truncateToDay(project.StartDate)) {
		return apperrors.NewValidation("due_date", "due date cannot be before the project start date")
	}
	if due.After(truncateToDay(project.EndDate)) {
		return apperrors.NewValidation("due_date", "due date cannot be after the project end date")
	}

	return nil
}

func truncateToDay(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func (s *TaskService) validateAssignee(ctx context.Context, projectID uint, assigneeID *uint) error {
	if assigneeID == nil {
		return nil
	}

	isMember, err := s.members.IsMember(ctx, projectID, *assigneeID)
	if err != nil {
		return err
	}
	if !isMember {
		return apperrors.NewValidation("assigned_to", "assignee must be a member of the project")
	}

	return nil
}
