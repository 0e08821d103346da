package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/techclub/club-portal/internal/models"
)

type EventFilter struct {
	Category   string
	Status     string
	Upcoming   bool
	PublicOnly bool
}

func (r *GormRepo) ListEvents(ctx context.Context, f EventFilter, offset, limit int) (int64, []models.Event, error) {
	q := r.DB.WithContext(ctx).Model(&models.Event{})
	if f.PublicOnly {
		q = q.Where("is_public = ?", true)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Upcoming {
		q = q.Where("date >= ?", time.Now()).
			Where("status IN ?", []string{models.EventStatusUpcoming, models.EventStatusOngoing})
	} else if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	items := make([]models.Event, 0, limit)
	if err := q.Order("date ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func (r *GormRepo) GetEvent(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	var e models.Event
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *GormRepo) CreateEvent(ctx context.Context, e *models.Event) error {
	return r.DB.WithContext(ctx).Create(e).Error
}

func (r *GormRepo) SaveEvent(ctx context.Context, e *models.Event) error {
	return r.DB.WithContext(ctx).Save(e).Error
}

func (r *GormRepo) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).Delete(&models.Event{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) ListUpcomingEvents(ctx context.Context, limit int) ([]models.Event, error) {
	var items []models.Event
	err := r.DB.WithContext(ctx).
		Where("date >= ? AND is_public = ?", time.Now(), true).
		Where("status IN ?", []string{models.EventStatusUpcoming, models.EventStatusOngoing}).
		Order("date ASC").
		Limit(limit).
		Find(&items).Error
	return items, err
}
