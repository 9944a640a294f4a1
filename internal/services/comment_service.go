package services

import (
	"context"

	"tracknest.dev/tracknest/internal/apperrors"
	"tracknest.dev/tracknest/internal/constants"
	"tracknest.dev/tracknest/internal/events"
	"tracknest.dev/tracknest/internal/membership"
	"tracknest.dev/tracknest/internal/models"
	"tracknest.dev/tracknest/internal/policy"
	repository "tracknest.dev/tracknest/internal/repositories"
)

type CommentService struct {
	comments   *repository.CommentRepository
	tasks      *repository.TaskRepository
	projects   *repository.ProjectRepository
	users      *repository.UserRepository
	members    *membership.Registry
	authorizer *policy.Evaluator
	dispatcher *events.Dispatcher
}

func NewCommentService(
	comments *repository.CommentRepository,
	tasks *repository.TaskRepository,
	projects *repository.ProjectRepository,
	users *repository.UserRepository,
	members *membership.Registry,
	authorizer *policy.Evaluator,
	dispatcher *events.Dispatcher,
) *CommentService {
	return &CommentService{
		comments:   comments,
		tasks:      tasks,
		projects:   projects,
		users:      users,
		members:    members,
		authorizer: authorizer,
		dispatcher: dispatcher,
	}
}

// Add creates a comment on a task. Authorship is an authorization rule, not
// a generic validation: only the task's assignee, the task's creator, the
// project's creator, a project member, or an admin may comment, and the
// check runs before anything is written.
func (s *CommentService) Add(ctx context.Context, actorID, taskID uint, content string) (*models.TaskComment, error) {
	actor, err := s.users.FindByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	project, err := s.projects.FindByID(ctx, task.ProjectID)
	if err != nil {
		return nil, err
	}

	allowed, err := s.canComment(ctx, actor, task, project)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, apperrors.ErrForbidden
	}

	if content == "" {
		return nil, apperrors.NewValidation("content", "comment content is required")
	}

	comment := &models.TaskComment{
		TaskID:   task.ID,
		AuthorID: actor.ID,
		Content:  content,
	}

	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.dispatcher.Dispatch(events.Event{
		Kind:    constants.EventCommentAdded,
		Actor:   actor,
		Project: project,
		Task:    task,
		Comment: comment,
	})

	return comment, nil
}

func (s *CommentService) List(ctx context.Context, actorID, taskID uint) ([]models.TaskComment, error) {
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

	return s.comments.ListByTask(ctx, taskID)
}

func (s *CommentService) Update(ctx context.Context, actorID, commentID uint, content string) (*models.TaskComment, error) {
	actor, err := s.users.FindByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	comment, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		return nil, err
	}

	if !s.authorizer.Authorize(ctx, actor, constants.ActionEdit, policy.CommentResource{Comment: comment}).Allowed() {
		return nil, apperrors.ErrForbidden
	}

	if content == "" {
		return nil, apperrors.NewValidation("content", "comment content is required")
	}

	comment.Content = content
	if err := s.comments.Save(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

func (s *CommentService) Delete(ctx context.Context, actorID, commentID uint) error {
	actor, err := s.users.FindByID(ctx, actorID)
	if err != nil {
		return err
	}

	comment, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		return err
	}

	if !s.authorizer.Authorize(ctx, actor, constants.ActionDelete, policy.CommentResource{Comment: comment}).Allowed() {
		return apperrors.ErrForbidden
	}

	return s.comments.Delete(ctx, commentID)
}

func (s *CommentService) canComment(ctx context.Context, actor *models.User, task *models.Task, project *models.Project) (bool, error) {
	if actor.IsAdmin() {
		return true, nil
	}
	if task.AssignedToID != nil && *task.AssignedToID == actor.ID {
		return true, nil
	}
	if task.CreatedByID == actor.ID || project.CreatedByID == actor.ID {
		return true, nil
	}
	return s.members.IsMember(ctx, project.ID, actor.ID)
}
