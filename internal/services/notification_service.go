package services

import (
	"context"
	"time"

	"tracknest.dev/tracknest/internal/apperrors"
	"tracknest.dev/tracknest/internal/constants"
	"tracknest.dev/tracknest/internal/models"
	"tracknest.dev/tracknest/internal/policy"
	repository "tracknest.dev/tracknest/internal/repositories"
)

type NotificationService struct {
	notifications *repository.NotificationRepository
	users         *repository.UserRepository
	authorizer    *policy.Evaluator
}

func NewNotificationService(
	notifications *repository.NotificationRepository,
	users *repository.UserRepository,
	authorizer *policy.Evaluator,
) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		users:         users,
		authorizer:    authorizer,
	}
}

// MarkRead flips the notification to read and stamps ReadAt. Calling it on
// an already-read notification is a no-op: ReadAt keeps its original value.
func (s *NotificationService) MarkRead(ctx context.Context, actorID, notificationID uint) (*models.Notification, error) {
	notification, err := s.authorized(ctx, actorID, notificationID)
	if err != nil {
		return nil, err
	}

	if notification.IsRead {
		return notification, nil
	}

	now := time.Now().UTC()
	notification.IsRead = true
	notification.ReadAt = &now

	if err := s.notifications.UpdateReadState(ctx, notification); err != nil {
		return nil, err
	}

	return notification, nil
}

// MarkUnread clears the read state. Idempotent.
func (s *NotificationService) MarkUnread(ctx context.Context, actorID, notificationID uint) (*models.Notification, error) {
	notification, err := s.authorized(ctx, actorID, notificationID)
	if err != nil {
		return nil, err
	}

	if !notification.IsRead {
		return notification, nil
	}

	notification.IsRead = false
	notification.ReadAt = nil

	if err := s.notifications.UpdateReadState(ctx, notification); err != nil {
		return nil, err
	}

	return notification, nil
}

func (s *NotificationService) List(ctx context.Context, actorID uint) ([]models.Notification, error) {
	if _, err := s.users.FindByID(ctx, actorID); err != nil {
		return nil, err
	}
	return s.notifications.ListForRecipient(ctx, actorID)
}

func (s *NotificationService) UnreadCount(ctx context.Context, actorID uint) (int64, error) {
	if _, err := s.users.FindByID(ctx, actorID); err != nil {
		return 0, err
	}
	return s.notifications.UnreadCount(ctx, actorID)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, actorID uint) (int64, error) {
	if _, err := s.users.FindByID(ctx, actorID); err != nil {
		return 0, err
	}
	return s.notifications.MarkAllRead(ctx, actorID)
}

// Delete removes the given notifications. The repository scopes the delete
// to the actor's own rows, so foreign IDs are silently skipped rather than
// rejected.
func (s *NotificationService) Delete(ctx context.Context, actorID uint, ids []uint) (int64, error) {
	if _, err := s.users.FindByID(ctx, actorID); err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}
	return s.notifications.DeleteByRecipient(ctx, actorID, ids)
}

// DeleteRead removes the actor's read notifications.
func (s *NotificationService) DeleteRead(ctx context.Context, actorID uint) (int64, error) {
	if _, err := s.users.FindByID(ctx, actorID); err != nil {
		return 0, err
	}
	return s.notifications.DeleteRead(ctx, actorID)
}

// PurgeOlderThan applies the retention policy across all recipients.
func (s *NotificationService) PurgeOlderThan(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-retention)
	return s.notifications.DeleteOlderThan(ctx, cutoff)
}

func (s *NotificationService) authorized(ctx context.Context, actorID, notificationID uint) (*models.Notification, error) {
	actor, err := s.users.FindByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	notification, err := s.notifications.FindByID(ctx, notificationID)
	if err != nil {
		return nil, err
	}

	res := policy.NotificationResource{Notification: notification}
	if !s.authorizer.Authorize(ctx, actor, constants.ActionEdit, res).Allowed() {
		return nil, apperrors.ErrForbidden
	}

	return notification, nil
}
