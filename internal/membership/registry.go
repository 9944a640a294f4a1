package membership

import (
	"context"

	"tracknest.dev/tracknest/internal/models"
	repository "tracknest.dev/tracknest/internal/repositories"
)

// Registry answers membership questions over the ProjectAssignment relation.
// It reads straight through to storage on every call: a removed member must
// lose access on the very next check, so no caching layer sits in front.
type Registry struct {
	assignments *repository.AssignmentRepository
}

func NewRegistry(assignments *repository.AssignmentRepository) *Registry {
	return &Registry{assignments: assignments}
}

func (r *Registry) IsMember(ctx context.Context, projectID, userID uint) (bool, error) {
	return r.assignments.Exists(ctx, projectID, userID)
}

func (r *Registry) MembersOf(ctx context.Context, projectID uint) ([]models.User, error) {
	return r.assignments.ListMembers(ctx, projectID)
}
