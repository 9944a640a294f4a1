package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"tracknest.dev/tracknest/internal/apperrors"
	"tracknest.dev/tracknest/internal/models"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *ProjectRepository) FindByID(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).First(&project, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepository) Save(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Save(project).Error
}

// ListForUser returns projects the user created or is a member of. Admins
// see everything.
func (r *ProjectRepository) ListForUser(ctx context.Context, user *models.User) ([]models.Project, error) {
	var projects []models.Project

	q := r.db.WithContext(ctx).Order("created_at desc")
	if !user.IsAdmin() {
		q = q.Where(
			"created_by_id = ? OR id IN (?)",
			user.ID,
			r.db.Model(&models.ProjectAssignment{}).Select("project_id").Where("user_id = ?", user.ID),
		)
	}

	err := q.Find(&projects).Error
	return projects, err
}
