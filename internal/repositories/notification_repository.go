package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/rueidis"
	"gorm.io/gorm"

	"tracknest.dev/tracknest/internal/apperrors"
	"tracknest.dev/tracknest/internal/models"
)

// NotificationRepository persists notifications and keeps an optional
// redis-backed unread counter per recipient. The counter is a cache over the
// database count and is invalidated on every write; redis may be nil, in
// which case every count hits the database.
type NotificationRepository struct {
	db    *gorm.DB
	redis rueidis.Client
}

func NewNotificationRepository(db *gorm.DB, redis rueidis.Client) *NotificationRepository {
	return &NotificationRepository{db: db, redis: redis}
}

func unreadCountKey(recipientID uint) string {
	return fmt.Sprintf("notifications:unread:%d", recipientID)
}

func (r *NotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	if err := r.db.WithContext(ctx).Create(notification).Error; err != nil {
		return err
	}
	r.invalidateUnreadCount(ctx, notification.RecipientID)
	return nil
}

func (r *NotificationRepository) FindByID(ctx context.Context, id uint) (*models.Notification, error) {
	var notification models.Notification
	err := r.db.WithContext(ctx).First(&notification, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotificationNotFound
		}
		return nil, err
	}
	return &notification, nil
}

func (r *NotificationRepository) ListForRecipient(ctx context.Context, recipientID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.WithContext(ctx).
		Where("recipient_id = ?", recipientID).
		Order("created_at desc").
		Find(&notifications).Error
	return notifications, err
}

// UpdateReadState writes only the read lifecycle fields.
func (r *NotificationRepository) UpdateReadState(ctx context.Context, notification *models.Notification) error {
	err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ?", notification.ID).
		Updates(map[string]interface{}{
			"is_read": notification.IsRead,
			"read_at": notification.ReadAt,
		}).Error
	if err != nil {
		return err
	}
	r.invalidateUnreadCount(ctx, notification.RecipientID)
	return nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, recipientID uint) (int64, error) {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": &now,
		})
	if res.Error != nil {
		return 0, res.Error
	}
	r.invalidateUnreadCount(ctx, recipientID)
	return res.RowsAffected, nil
}

func (r *NotificationRepository) UnreadCount(ctx context.Context, recipientID uint) (int64, error) {
	if r.redis != nil {
		cached, err := r.redis.Do(
			ctx,
			r.redis.B().Get().Key(unreadCountKey(recipientID)).Build(),
		).AsInt64()
		if err == nil {
			return cached, nil
		}
		// Cache miss or redis trouble; fall through to the database.
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	if r.redis != nil {
		_ = r.redis.Do(
			ctx,
			r.redis.B().Set().
				Key(unreadCountKey(recipientID)).
				Value(strconv.FormatInt(count, 10)).
				Ex(5*time.Minute).
				Build(),
		).Error()
	}

	return count, nil
}

func (r *NotificationRepository) DeleteRead(ctx context.Context, recipientID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("recipient_id = ? AND is_read = ?", recipientID, true).
		Delete(&models.Notification{})
	if res.Error != nil {
		return 0, res.Error
	}
	r.invalidateUnreadCount(ctx, recipientID)
	return res.RowsAffected, nil
}

func (r *NotificationRepository) DeleteByRecipient(ctx context.Context, recipientID uint, ids []uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("recipient_id = ? AND id IN ?", recipientID, ids).
		Delete(&models.Notification{})
	if res.Error != nil {
		return 0, res.Error
	}
	r.invalidateUnreadCount(ctx, recipientID)
	return res.RowsAffected, nil
}

// DeleteOlderThan purges notifications created before the cutoff, across all
// recipients. Used by the retention policy.
func (r *NotificationRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var recipientIDs []uint
	err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Distinct().
		Where("created_at < ?", cutoff).
		Pluck("recipient_id", &recipientIDs).Error
	if err != nil {
		return 0, err
	}

	res := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&models.Notification{})
	if res.Error != nil {
		return 0, res.Error
	}

	for _, recipientID := range recipientIDs {
		r.invalidateUnreadCount(ctx, recipientID)
	}

	return res.RowsAffected, nil
}

func (r *NotificationRepository) invalidateUnreadCount(ctx context.Context, recipientID uint) {
	if r.redis == nil {
		return
	}
	_ = r.redis.Do(
		ctx,
		r.redis.B().Del().Key(unreadCountKey(recipientID)).Build(),
	).Error()
}
