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

type ProjectService struct {
	projects    *repository.ProjectRepository
	assignments *repository.AssignmentRepository
	users       *repository.UserRepository
	members     *membership.Registry
	authorizer  *policy.Evaluator
	dispatcher  *events.Dispatcher
}

func NewProjectService(
	projects *repository.ProjectRepository,
	assignments *repository.AssignmentRepository,
	users *repository.UserRepository,
	members *membership.Registry,
	authorizer *policy.Evaluator,
	dispatcher *events.Dispatcher,
) *ProjectService {
	return &ProjectService{
		projects:    projects,
		assignments: assignments,
		users:       users,
		members:     members,
		authorizer:  authorizer,
		dispatcher:  dispatcher,
	}
}

type CreateProjectInput struct {
	Name        string
	Description string
	StartDate   time.Time
	EndDate     time.Time
}

func (s *ProjectService) Create(ctx context.Context, actorID uint, in CreateProjectInput) (*models.Project, error) {
	actor, err := s.users.FindByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	if !actor.CanManageProjects() {
		return nil, apperrors.ErrForbidden
	}

	if err := validateProjectDates(in.StartDate, in.EndDate); err != nil {
		return nil, err
	}

	project := &models.Project{
		Name:        in.Name,
		Description: in.Description,
		Status:      constants.ProjectPending,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		CreatedByID: actor.ID,
	}

	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}

	return project, nil
}

func (s *ProjectService) Get(ctx context.Context, actorID, projectID uint) (*models.Project, error) {
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

	return project, nil
}

func (s *ProjectService) List(ctx context.Context, actorID uint) ([]models.Project, error) {
	actor, err := s.users.FindByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	return s.projects.ListForUser(ctx, actor)
}

type UpdateProjectInput struct {
	Name        string
	Description string
	Status      constants.ProjectStatus
	StartDate   time.Time
	EndDate     time.Time
}

// Update applies a partial edit: zero-valued fields leave their columns
// unchanged. The date-range invariant is checked against the effective pair,
// so shrinking one end past the other is still rejected.
func (s *ProjectService) Update(ctx context.Context, actorID, projectID uint, in UpdateProjectInput) (*models.Project, error) {
	actor, err := s.users.FindByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if !s.authorizer.Authorize(ctx, actor, constants.ActionEdit, policy.ProjectResource{Project: project}).Allowed() {
		return nil, apperrors.ErrForbidden
	}

	start, end := project.StartDate, project.EndDate
	if !in.StartDate.IsZero() {
		start = in.StartDate
	}
	if !in.EndDate.IsZero() {
		end = in.EndDate
	}
	if err := validateProjectDates(start, end); err != nil {
		return nil, err
	}
	if in.Status != "" && !validProjectStatus(in.Status) {
		return nil, apperrors.NewValidation("status", "unknown project status")
	}

	if in.Name != "" {
		project.Name = in.Name
	}
	if in.Description != "" {
		project.Description = in.Description
	}
	if in.Status != "" {
		project.Status = in.Status
	}
	project.StartDate = start
	project.EndDate = end

	if err := s.projects.Save(ctx, project); err != nil {
		return nil, err
	}

	return project, nil
}

// Assign makes a user a member of the project and notifies them. Only the
// project creator or an admin may manage memberships.
func (s *ProjectService) Assign(ctx context.Context, actorID, projectID, userID uint) (*models.ProjectAssignment, error) {
	actor, err := s.users.FindByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if !s.authorizer.Authorize(ctx, actor, constants.ActionEdit, policy.ProjectResource{Project: project}).Allowed() {
		return nil, apperrors.ErrForbidden
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	exists, err := s.assignments.Exists(ctx, project.ID, user.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewValidation("user", "user is already a member of this project")
	}

	assignment := &models.ProjectAssignment{
		ProjectID:    project.ID,
		UserID:       user.ID,
		AssignedByID: actor.ID,
	}

	if err := s.assignments.Create(ctx, assignment); err != nil {
		return nil, err
	}

	s.dispatcher.Dispatch(events.Event{
		Kind:       constants.EventProjectAssignmentCreated,
		Actor:      actor,
		Project:    project,
		Assignment: assignment,
	})

	return assignment, nil
}

func (s *ProjectService) Unassign(ctx context.Context, actorID, projectID, userID uint) error {
	actor, err := s.users.FindByID(ctx, actorID)
	if err != nil {
		return err
	}

	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return err
	}

	if !s.authorizer.Authorize(ctx, actor, constants.ActionEdit, policy.ProjectResource{Project: project}).Allowed() {
		return apperrors.ErrForbidden
	}

	return s.assignments.Delete(ctx, projectID, userID)
}

func (s *ProjectService) Members(ctx context.Context, actorID, projectID uint) ([]models.User, error) {
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

	return s.members.MembersOf(ctx, projectID)
}

func validateProjectDates(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return apperrors.NewValidation("start_date", "start and end dates are required")
	}
	if end.Before(start) {
		return apperrors.NewValidation("end_date", "end date must not be before the start date")
	}
	return nil
}

func validProjectStatus(status constants.ProjectStatus) bool {
	switch status {
	case constants.ProjectPending, constants.ProjectInProgress, constants.ProjectCompleted, constants.ProjectCancelled:
		return true
	}
	return false
}
