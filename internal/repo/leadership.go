package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/techclub/club-portal/internal/models"
)

type LeaderFilter struct {
	Position   string
	Department string
	ActiveOnly bool
}

func (r *GormRepo) ListLeaders(ctx context.Context, f LeaderFilter, offset, limit int) (int64, []models.Leader, error) {
	q := r.DB.WithContext(ctx).Model(&models.Leader{})
	if f.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}
	if f.Position != "" {
		q = q.Where("position = ?", f.Position)
	}
	if f.Department != "" {
		q = q.Where("department = ?", f.Department)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	items := make([]models.Leader, 0, limit)
	if err := q.Order("display_order ASC, position ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func (r *GormRepo) GetLeader(ctx context.Context, id uuid.UUID) (*models.Leader, error) {
	var l models.Leader
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&l).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *GormRepo) CreateLeader(ctx context.Context, l *models.Leader) error {
	return r.DB.WithContext(ctx).Create(l).Error
}

func (r *GormRepo) SaveLeader(ctx context.Context, l *models.Leader) error {
	return r.DB.WithContext(ctx).Save(l).Error
}

func (r *GormRepo) DeleteLeader(ctx context.Context, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).Delete(&models.Leader{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) ListLeadersByPosition(ctx context.Context, position string) ([]models.Leader, error) {
	var items []models.Leader
	err := r.DB.WithContext(ctx).
		Where("position = ? AND is_active = ?", position, true).
		Order("display_order ASC").
		Find(&items).Error
	return items, err
}

func (r *GormRepo) ListMainLeaders(ctx context.Context) ([]models.Leader, error) {
	var items []models.Leader
	err := r.DB.WithContext(ctx).
		Where("position IN ? AND is_active = ?", models.MainPositions, true).
		Order("display_order ASC").
		Find(&items).Error
	return items, err
}
