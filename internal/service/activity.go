package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/techclub/club-portal/internal/events"
	"github.com/techclub/club-portal/internal/models"
	"github.com/techclub/club-portal/internal/repo"
	"github.com/techclub/club-portal/internal/transport"
)

type ActivityService struct {
	Repo   *repo.GormRepo
	Events *events.Producer
}

func (s *ActivityService) List(ctx context.Context, f repo.ActivityFilter, offset, limit int) (int64, []models.Activity, error) {
	return s.Repo.ListActivities(ctx, f, offset, limit)
}

// Get hides Private activities from the read path entirely. The anonymous
// surface and the admin dashboard both go through the list filter first, so a
// Private record is only reachable by guessing its id; it answers NotFound.
func (s *ActivityService) Get(ctx context.Context, id uuid.UUID) (*models.Activity, error) {
	a, err := s.Repo.GetActivity(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if a.Visibility == models.VisibilityPrivate {
		return nil, ErrNotFound
	}
	return a, nil
}

func (s *ActivityService) Create(ctx context.Context, p transport.ActivityPayload) (*models.Activity, error) {
	errs := &FieldErrors{}
	if p.Title == nil || strings.TrimSpace(*p.Title) == "" {
		errs.Add("title", "title is required")
	}
	if p.Description == nil || strings.TrimSpace(*p.Description) == "" {
		errs.Add("description", "description is required")
	}
	if p.StartDate == nil {
		errs.Add("startDate", "startDate is required")
	}
	if p.Leader == nil || strings.TrimSpace(*p.Leader) == "" {
		errs.Add("leader", "leader is required")
	}
	validateActivityEnums(errs, p)
	if err := errs.OrNil(); err != nil {
		return nil, err
	}

	a := &models.Activity{
		Type:         models.DefaultActivityType,
		Status:       models.DefaultActivityStatus,
		Visibility:   models.DefaultVisibility,
		Participants: models.ParticipantList{},
		Images:       models.ImageList{},
		Achievements: models.ActivityAchievementList{},
		Skills:       models.StringList{},
		Technologies: models.StringList{},
		Tags:         models.StringList{},
	}
	applyActivity(a, p)

	if err := s.Repo.CreateActivity(ctx, a); err != nil {
		return nil, err
	}
	publishContentEvent(ctx, s.Events, "activity_created", a.ID)
	return a, nil
}

func (s *ActivityService) Update(ctx context.Context, id uuid.UUID, p transport.ActivityPayload) (*models.Activity, error) {
	a, err := s.Repo.GetActivity(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	errs := &FieldErrors{}
	validateActivityEnums(errs, p)
	if err := errs.OrNil(); err != nil {
		return nil, err
	}

	applyActivity(a, p)
	if err := s.Repo.SaveActivity(ctx, a); err != nil {
		return nil, err
	}
	publishContentEvent(ctx, s.Events, "activity_updated", a.ID)
	return a, nil
}

func (s *ActivityService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.Repo.DeleteActivity(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	publishContentEvent(ctx, s.Events, "activity_deleted", id)
	return nil
}

func (s *ActivityService) ListHighlighted(ctx context.Context, limit int) ([]models.Activity, error) {
	if limit <= 0 {
		limit = 6
	}
	return s.Repo.ListHighlightedActivities(ctx, limit)
}

func validateActivityEnums(errs *FieldErrors, p transport.ActivityPayload) {
	if p.Type != nil {
		validateEnum(errs, "type", *p.Type, models.ActivityTypes)
	}
	if p.Status != nil {
		validateEnum(errs, "status", *p.Status, models.ActivityStatuses)
	}
	if p.Visibility != nil {
		validateEnum(errs, "visibility", *p.Visibility, models.Visibilities)
	}
}

func applyActivity(a *models.Activity, p transport.ActivityPayload) {
	if p.Title != nil {
		a.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		a.Description = *p.Description
	}
	if p.Type != nil && *p.Type != "" {
		a.Type = *p.Type
	}
	if p.Status != nil && *p.Status != "" {
		a.Status = *p.Status
	}
	if p.StartDate != nil {
		a.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		a.EndDate = p.EndDate
	}
	if p.Participants != nil {
		a.Participants = *p.Participants
	}
	if p.Leader != nil {
		a.Leader = *p.Leader
	}
	if p.Images != nil {
		a.Images = *p.Images
	}
	if p.Achievements != nil {
		a.Achievements = *p.Achievements
	}
	if p.Skills != nil {
		a.Skills = *p.Skills
	}
	if p.Technologies != nil {
		a.Technologies = *p.Technologies
	}
	if p.IsHighlighted != nil {
		a.IsHighlighted = *p.IsHighlighted
	}
	if p.Visibility != nil && *p.Visibility != "" {
		a.Visibility = *p.Visibility
	}
	if p.Tags != nil {
		a.Tags = *p.Tags
	}
	// Fresh uploads append; they never clobber what the payload kept.
	if len(p.NewImages) > 0 {
		a.Images = append(a.Images, p.NewImages...)
	}
}
