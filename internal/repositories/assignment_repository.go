package repository

import (
	"context"

	"gorm.io/gorm"

	"tracknest.dev/tracknest/internal/apperrors"
	"tracknest.dev/tracknest/internal/models"
)

type AssignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

func (r *AssignmentRepository) Create(ctx context.Context, assignment *models.ProjectAssignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *AssignmentRepository) Exists(ctx context.Context, projectID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ProjectAssignment{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *AssignmentRepository) Delete(ctx context.Context, projectID, userID uint) error {
	res := r.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&models.ProjectAssignment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrAssignmentNotFound
	}
	return nil
}

func (r *AssignmentRepository) ListMembers(ctx context.Context, projectID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Joins("JOIN project_assignments ON project_assignments.user_id = users.id").
		Where("project_assignments.project_id = ?", projectID).
		Find(&users).Error
	return users, err
}
