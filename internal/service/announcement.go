package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/techclub/club-portal/internal/events"
	"github.com/techclub/club-portal/internal/logging"
	"github.com/techclub/club-portal/internal/models"
	"github.com/techclub/club-portal/internal/repo"
	"github.com/techclub/club-portal/internal/search"
	"github.com/techclub/club-portal/internal/transport"
)

type AnnouncementService struct {
	Repo   *repo.GormRepo
	Events *events.Producer
	Search *search.Announcements // nil when Elasticsearch is disabled
}

func (s *AnnouncementService) List(ctx context.Context, f repo.AnnouncementFilter, offset, limit int) (int64, []models.Announcement, error) {
	return s.Repo.ListAnnouncements(ctx, f, offset, limit)
}

func (s *AnnouncementService) Get(ctx context.Context, id uuid.UUID) (*models.Announcement, error) {
	a, err := s.Repo.GetAnnouncement(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (s *AnnouncementService) Create(ctx context.Context, p transport.AnnouncementPayload) (*models.Announcement, error) {
	errs := &FieldErrors{}
	if p.Title == nil || strings.TrimSpace(*p.Title) == "" {
		errs.Add("title", "title is required")
	}
	if p.Content == nil || strings.TrimSpace(*p.Content) == "" {
		errs.Add("content", "content is required")
	}
	if p.Author == nil || strings.TrimSpace(*p.Author) == "" {
		errs.Add("author", "author is required")
	}
	validateAnnouncementEnums(errs, p)
	if err := errs.OrNil(); err != nil {
		return nil, err
	}

	a := &models.Announcement{
		Category:    models.DefaultAnnouncementCategory,
		Priority:    models.DefaultAnnouncementPriority,
		PublishDate: time.Now(),
		IsActive:    true,
		Attachments: models.AttachmentList{},
		Tags:        models.StringList{},
	}
	applyAnnouncement(a, p)

	if err := s.Repo.CreateAnnouncement(ctx, a); err != nil {
		return nil, err
	}
	s.index(ctx, a)
	publishContentEvent(ctx, s.Events, "announcement_created", a.ID)
	return a, nil
}

func (s *AnnouncementService) Update(ctx context.Context, id uuid.UUID, p transport.AnnouncementPayload) (*models.Announcement, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	errs := &FieldErrors{}
	validateAnnouncementEnums(errs, p)
	if err := errs.OrNil(); err != nil {
		return nil, err
	}

	applyAnnouncement(a, p)
	if err := s.Repo.SaveAnnouncement(ctx, a); err != nil {
		return nil, err
	}
	s.index(ctx, a)
	publishContentEvent(ctx, s.Events, "announcement_updated", a.ID)
	return a, nil
}

func (s *AnnouncementService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.Repo.DeleteAnnouncement(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if s.Search != nil {
		if err := s.Search.Remove(ctx, id.String()); err != nil {
			logging.FromContext(ctx).Error("search_remove_failed", "id", id, "error", err)
		}
	}
	publishContentEvent(ctx, s.Events, "announcement_deleted", id)
	return nil
}

func (s *AnnouncementService) ListByCategory(ctx context.Context, category string) ([]models.Announcement, error) {
	return s.Repo.ListAnnouncementsByCategory(ctx, category)
}

// SearchText uses the Elasticsearch index when configured and falls back to
// the repository LIKE query otherwise.
func (s *AnnouncementService) SearchText(ctx context.Context, query string, offset, limit int) (int64, []models.Announcement, error) {
	if s.Search != nil {
		total, items, err := s.Search.Search(ctx, query, offset, limit)
		if err == nil {
			return total, items, nil
		}
		logging.FromContext(ctx).Error("search_query_failed", "error", err)
	}
	return s.Repo.SearchAnnouncements(ctx, query, offset, limit)
}

func (s *AnnouncementService) index(ctx context.Context, a *models.Announcement) {
	if s.Search == nil {
		return
	}
	if err := s.Search.Index(ctx, a); err != nil {
		logging.FromContext(ctx).Error("search_index_failed", "id", a.ID, "error", err)
	}
}

func validateAnnouncementEnums(errs *FieldErrors, p transport.AnnouncementPayload) {
	if p.Category != nil {
		validateEnum(errs, "category", *p.Category, models.AnnouncementCategories)
	}
	if p.Priority != nil {
		validateEnum(errs, "priority", *p.Priority, models.AnnouncementPriorities)
	}
}

func applyAnnouncement(a *models.Announcement, p transport.AnnouncementPayload) {
	if p.Title != nil {
		a.Title = strings.TrimSpace(*p.Title)
	}
	if p.Content != nil {
		a.Content = *p.Content
	}
	if p.Category != nil && *p.Category != "" {
		a.Category = *p.Category
	}
	if p.Priority != nil && *p.Priority != "" {
		a.Priority = *p.Priority
	}
	if p.Author != nil {
		a.Author = *p.Author
	}
	if p.PublishDate != nil {
		a.PublishDate = *p.PublishDate
	}
	if p.ExpiryDate != nil {
		a.ExpiryDate = p.ExpiryDate
	}
	if p.IsActive != nil {
		a.IsActive = *p.IsActive
	}
	if p.Attachments != nil {
		a.Attachments = *p.Attachments
	}
	if p.Tags != nil {
		a.Tags = *p.Tags
	}
}

func publishContentEvent(ctx context.Context, p *events.Producer, typ string, id uuid.UUID) {
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := p.Publish(pubCtx, id.String(), map[string]any{
		"type": typ,
		"id":   id.String(),
	}); err != nil {
		logging.FromContext(ctx).Error("event_publish_failed", "type", typ, "error", err)
	}
}
