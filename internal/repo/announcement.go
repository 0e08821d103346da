package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/techclub/club-portal/internal/models"
)

type AnnouncementFilter struct {
	Category   string
	Priority   string
	ActiveOnly bool
}

func (r *GormRepo) ListAnnouncements(ctx context.Context, f AnnouncementFilter, offset, limit int) (int64, []models.Announcement, error) {
	q := r.DB.WithContext(ctx).Model(&models.Announcement{})
	if f.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Priority != "" {
		q = q.Where("priority = ?", f.Priority)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	items := make([]models.Announcement, 0, limit)
	if err := q.Order("publish_date DESC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func (r *GormRepo) GetAnnouncement(ctx context.Context, id uuid.UUID) (*models.Announcement, error) {
	var a models.Announcement
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *GormRepo) CreateAnnouncement(ctx context.Context, a *models.Announcement) error {
	return r.DB.WithContext(ctx).Create(a).Error
}

func (r *GormRepo) SaveAnnouncement(ctx context.Context, a *models.Announcement) error {
	return r.DB.WithContext(ctx).Save(a).Error
}

func (r *GormRepo) DeleteAnnouncement(ctx context.Context, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).Delete(&models.Announcement{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) ListAnnouncementsByCategory(ctx context.Context, category string) ([]models.Announcement, error) {
	var items []models.Announcement
	err := r.DB.WithContext(ctx).
		Where("category = ? AND is_active = ?", category, true).
		Order("publish_date DESC").
		Find(&items).Error
	return items, err
}

// SearchAnnouncements is the SQL fallback used when Elasticsearch is not
// configured. LOWER/LIKE instead of ILIKE so the same query runs on the
// sqlite test database.
func (r *GormRepo) SearchAnnouncements(ctx context.Context, query string, offset, limit int) (int64, []models.Announcement, error) {
	pattern := "%" + query + "%"
	q := r.DB.WithContext(ctx).Model(&models.Announcement{}).
		Where("is_active = ?", true).
		Where("LOWER(title) LIKE LOWER(?) OR LOWER(content) LIKE LOWER(?)", pattern, pattern)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	items := make([]models.Announcement, 0, limit)
	if err := q.Order("publish_date DESC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}
