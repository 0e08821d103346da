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

type EventService struct {
	Repo   *repo.GormRepo
	Events *events.Producer
}

func (s *EventService) List(ctx context.Context, f repo.EventFilter, offset, limit int) (int64, []models.Event, error) {
	return s.Repo.ListEvents(ctx, f, offset, limit)
}

func (s *EventService) Get(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	e, err := s.Repo.GetEvent(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (s *EventService) Create(ctx context.Context, p transport.EventPayload) (*models.Event, error) {
	errs := &FieldErrors{}
	if p.Title == nil || strings.TrimSpace(*p.Title) == "" {
		errs.Add("title", "title is required")
	}
	if p.Description == nil || strings.TrimSpace(*p.Description) == "" {
		errs.Add("description", "description is required")
	}
	if p.Date == nil {
		errs.Add("date", "date is required")
	}
	if p.Time == nil || strings.TrimSpace(*p.Time) == "" {
		errs.Add("time", "time is required")
	}
	if p.Location == nil || strings.TrimSpace(*p.Location) == "" {
		errs.Add("location", "location is required")
	}
	if p.Organizer == nil || strings.TrimSpace(*p.Organizer) == "" {
		errs.Add("organizer", "organizer is required")
	}
	validateEventEnums(errs, p)
	if err := errs.OrNil(); err != nil {
		return nil, err
	}

	e := &models.Event{
		Category: models.DefaultEventCategory,
		Status:   models.DefaultEventStatus,
		IsPublic: true,
		Tags:     models.StringList{},
	}
	applyEvent(e, p)

	if err := s.Repo.CreateEvent(ctx, e); err != nil {
		return nil, err
	}
	publishContentEvent(ctx, s.Events, "event_created", e.ID)
	return e, nil
}

func (s *EventService) Update(ctx context.Context, id uuid.UUID, p transport.EventPayload) (*models.Event, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	errs := &FieldErrors{}
	validateEventEnums(errs, p)
	if err := errs.OrNil(); err != nil {
		return nil, err
	}

	applyEvent(e, p)
	if err := s.Repo.SaveEvent(ctx, e); err != nil {
		return nil, err
	}
	publishContentEvent(ctx, s.Events, "event_updated", e.ID)
	return e, nil
}

func (s *EventService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.Repo.DeleteEvent(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	publishContentEvent(ctx, s.Events, "event_deleted", id)
	return nil
}

func (s *EventService) ListUpcoming(ctx context.Context, limit int) ([]models.Event, error) {
	if limit <= 0 {
		limit = 5
	}
	return s.Repo.ListUpcomingEvents(ctx, limit)
}

func validateEventEnums(errs *FieldErrors, p transport.EventPayload) {
	if p.Category != nil {
		validateEnum(errs, "category", *p.Category, models.EventCategories)
	}
	if p.Status != nil {
		validateEnum(errs, "status", *p.Status, models.EventStatuses)
	}
}

func applyEvent(e *models.Event, p transport.EventPayload) {
	if p.Title != nil {
		e.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Time != nil {
		e.Time = *p.Time
	}
	if p.Location != nil {
		e.Location = *p.Location
	}
	if p.Category != nil && *p.Category != "" {
		e.Category = *p.Category
	}
	if p.Organizer != nil {
		e.Organizer = *p.Organizer
	}
	if p.MaxParticipants != nil {
		e.MaxParticipants = p.MaxParticipants
	}
	if p.CurrentParticipants != nil {
		e.CurrentParticipants = *p.CurrentParticipants
	}
	if p.RegistrationRequired != nil {
		e.RegistrationRequired = *p.RegistrationRequired
	}
	if p.RegistrationDeadline != nil {
		e.RegistrationDeadline = p.RegistrationDeadline
	}
	if p.Status != nil && *p.Status != "" {
		e.Status = *p.Status
	}
	if p.IsPublic != nil {
		e.IsPublic = *p.IsPublic
	}
	if p.Requirements != nil {
		e.Requirements = *p.Requirements
	}
	if p.ContactEmail != nil {
		e.ContactEmail = *p.ContactEmail
	}
	if p.Tags != nil {
		e.Tags = *p.Tags
	}
	if p.Image != nil {
		e.Image = *p.Image
	}
}
