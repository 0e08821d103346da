package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/techclub/club-portal/internal/models"
)

type ActivityFilter struct {
	Type        string
	Status      string
	Highlighted bool
	PublicOnly  bool
}

func (r *GormRepo) ListActivities(ctx context.Context, f ActivityFilter, offset, limit int) (int64, []models.Activity, error) {
	q := r.DB.WithContext(ctx).Model(&models.Activity{})
	if f.PublicOnly {
		q = q.Where("visibility IN ?", []string{models.VisibilityPublic, models.VisibilityMembers})
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Highlighted {
		q = q.Where("is_highlighted = ?", true)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	items := make([]models.Activity, 0, limit)
	if err := q.Order("start_date DESC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func (r *GormRepo) GetActivity(ctx context.Context, id uuid.UUID) (*models.Activity, error) {
	var a models.Activity
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *GormRepo) CreateActivity(ctx context.Context, a *models.Activity) error {
	return r.DB.WithContext(ctx).Create(a).Error
}

func (r *GormRepo) SaveActivity(ctx context.Context, a *models.Activity) error {
	return r.DB.WithContext(ctx).Save(a).Error
}

func (r *GormRepo) DeleteActivity(ctx context.Context, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).Delete(&models.Activity{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) ListHighlightedActivities(ctx context.Context, limit int) ([]models.Activity, error) {
	var items []models.Activity
	err := r.DB.WithContext(ctx).
		Where("is_highlighted = ?", true).
		Where("visibility IN ?", []string{models.VisibilityPublic, models.VisibilityMembers}).
		Order("start_date DESC").
		Limit(limit).
		Find(&items).Error
	return items, err
}
