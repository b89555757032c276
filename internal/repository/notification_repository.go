package repository

import (
	"errors"

	"github.com/Mervedgan/uretim-takip-sistemi/internal/entity"
	"gorm.io/gorm"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(n *entity.Notification) error {
	return r.db.Create(n).Error
}

func (r *NotificationRepository) CreateBatch(ns []entity.Notification) error {
	return r.db.Create(&ns).Error
}

// ListByRole returns notifications addressed to the given role, optionally
// filtered by read state.
func (r *NotificationRepository) ListByRole(role string, read *bool) ([]entity.Notification, error) {
	query := r.db.Where("recipient_role = ?", role)
	if read != nil {
		query = query.Where("read = ?", *read)
	}
	var ns []entity.Notification
	err := query.Order("created_at DESC").Find(&ns).Error
	return ns, err
}

// GetByIDForRole resolves a notification only within the caller's role
// scope; rows addressed to other roles stay invisible.
func (r *NotificationRepository) GetByIDForRole(id uint, role string) (*entity.Notification, error) {
	var n entity.Notification
	err := r.db.Where("id = ? AND recipient_role = ?", id, role).First(&n).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &n, nil
}

func (r *NotificationRepository) CountUnread(role string) (int64, error) {
	var n int64
	err := r.db.Model(&entity.Notification{}).
		Where("recipient_role = ? AND read = ?", role, false).Count(&n).Error
	return n, err
}

func (r *NotificationRepository) Save(n *entity.Notification) error {
	return r.db.Save(n).Error
}
