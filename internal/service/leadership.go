package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/techclub/club-portal/internal/events"
	"github.com/techclub/club-portal/internal/models"
	"github.com/techclub/club-portal/internal/repo"
	"github.com/techclub/club-portal/internal/transport"
)

type LeadershipService struct {
	Repo   *repo.GormRepo
	Events *events.Producer
}

func (s *LeadershipService) List(ctx context.Context, f repo.LeaderFilter, offset, limit int) (int64, []models.Leader, error) {
	return s.Repo.ListLeaders(ctx, f, offset, limit)
}

func (s *LeadershipService) Get(ctx context.Context, id uuid.UUID) (*models.Leader, error) {
	l, err := s.Repo.GetLeader(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return l, nil
}

func (s *LeadershipService) Create(ctx context.Context, p transport.LeaderPayload) (*models.Leader, error) {
	errs := &FieldErrors{}
	if p.Name == nil || strings.TrimSpace(*p.Name) == "" {
		errs.Add("name", "name is required")
	}
	if p.Position == nil || strings.TrimSpace(*p.Position) == "" {
		errs.Add("position", "position is required")
	} else {
		validateEnum(errs, "position", *p.Position, models.LeaderPositions)
	}
	if p.Department == nil || strings.TrimSpace(*p.Department) == "" {
		errs.Add("department", "department is required")
	}
	if p.Email == nil || strings.TrimSpace(*p.Email) == "" {
		errs.Add("email", "email is required")
	} else if !emailPattern.MatchString(strings.TrimSpace(*p.Email)) {
		errs.Add("email", "email is not a valid address")
	}
	if err := errs.OrNil(); err != nil {
		return nil, err
	}

	l := &models.Leader{
		IsActive:     true,
		JoinDate:     time.Now(),
		Achievements: models.LeaderAchievementList{},
		Education:    models.EducationList{},
		Expertise:    models.StringList{},
	}
	applyLeader(l, p)

	if err := s.Repo.CreateLeader(ctx, l); err != nil {
		return nil, err
	}
	publishContentEvent(ctx, s.Events, "leader_created", l.ID)
	return l, nil
}

func (s *LeadershipService) Update(ctx context.Context, id uuid.UUID, p transport.LeaderPayload) (*models.Leader, error) {
	l, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	errs := &FieldErrors{}
	if p.Position != nil {
		validateEnum(errs, "position", *p.Position, models.LeaderPositions)
	}
	if p.Email != nil && !emailPattern.MatchString(strings.TrimSpace(*p.Email)) {
		errs.Add("email", "email is not a valid address")
	}
	if err := errs.OrNil(); err != nil {
		return nil, err
	}

	applyLeader(l, p)
	if err := s.Repo.SaveLeader(ctx, l); err != nil {
		return nil, err
	}
	publishContentEvent(ctx, s.Events, "leader_updated", l.ID)
	return l, nil
}

func (s *LeadershipService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.Repo.DeleteLeader(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	publishContentEvent(ctx, s.Events, "leader_deleted", id)
	return nil
}

func (s *LeadershipService) ListByPosition(ctx context.Context, position string) ([]models.Leader, error) {
	return s.Repo.ListLeadersByPosition(ctx, position)
}

func (s *LeadershipService) ListMain(ctx context.Context) ([]models.Leader, error) {
	return s.Repo.ListMainLeaders(ctx)
}

func applyLeader(l *models.Leader, p transport.LeaderPayload) {
	if p.Name != nil {
		l.Name = strings.TrimSpace(*p.Name)
	}
	if p.Position != nil && *p.Position != "" {
		l.Position = *p.Position
	}
	if p.Department != nil {
		l.Department = *p.Department
	}
	if p.Email != nil {
		l.Email = strings.ToLower(strings.TrimSpace(*p.Email))
	}
	if p.Phone != nil {
		l.Phone = *p.Phone
	}
	if p.Bio != nil {
		l.Bio = *p.Bio
	}
	if p.SocialLinks != nil {
		l.SocialLinks = *p.SocialLinks
	}
	if p.Achievements != nil {
		l.Achievements = *p.Achievements
	}
	if p.Education != nil {
		l.Education = *p.Education
	}
	if p.Expertise != nil {
		l.Expertise = *p.Expertise
	}
	if p.JoinDate != nil {
		l.JoinDate = *p.JoinDate
	}
	if p.IsActive != nil {
		l.IsActive = *p.IsActive
	}
	if p.DisplayOrder != nil {
		l.DisplayOrder = *p.DisplayOrder
	}
	if p.OfficeHours != nil {
		l.OfficeHours = *p.OfficeHours
	}
	if p.OfficeLocation != nil {
		l.OfficeLocation = *p.OfficeLocation
	}
	if p.Image != nil {
		l.Image = *p.Image
	}
}
