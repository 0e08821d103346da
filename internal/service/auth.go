package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/techclub/club-portal/internal/events"
	"github.com/techclub/club-portal/internal/hash"
	"github.com/techclub/club-portal/internal/logging"
	"github.com/techclub/club-portal/internal/models"
	"github.com/techclub/club-portal/internal/repo"
	"github.com/techclub/club-portal/internal/tokens"
	"github.com/techclub/club-portal/internal/transport"
)

const minPasswordLen = 6

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type AuthService struct {
	Repo   *repo.GormRepo
	Issuer *tokens.Issuer
	Events *events.Producer
}

func (s *AuthService) Register(ctx context.Context, req transport.RegisterRequest) (*models.User, string, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.Name = strings.TrimSpace(req.Name)

	errs := &FieldErrors{}
	if req.Username == "" {
		errs.Add("username", "username is required")
	}
	if req.Email == "" {
		errs.Add("email", "email is required")
	} else if !emailPattern.MatchString(req.Email) {
		errs.Add("email", "email is not a valid address")
	}
	if req.Password == "" {
		errs.Add("password", "password is required")
	} else if len(req.Password) < minPasswordLen {
		errs.Add("password", "password must be at least 6 characters")
	}
	if req.Name == "" {
		errs.Add("name", "name is required")
	}
	if err := errs.OrNil(); err != nil {
		l.Warn("register_failed", "status", 400, "reason", "validation")
		return nil, "", err
	}

	if taken, err := s.Repo.UsernameTaken(ctx, req.Username); err != nil {
		return nil, "", err
	} else if taken {
		l.Warn("register_failed", "status", 409, "reason", "username taken")
		return nil, "", &ConflictError{Field: "username"}
	}
	if taken, err := s.Repo.EmailTaken(ctx, req.Email); err != nil {
		return nil, "", err
	} else if taken {
		l.Warn("register_failed", "status", 409, "reason", "email taken")
		return nil, "", &ConflictError{Field: "email"}
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}

	// Registration never yields anything above member. The unique indexes
	// catch the two-registrations race the pre-checks cannot.
	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: pwHash,
		Role:         models.RoleMember,
		IsActive:     true,
		Name:         req.Name,
		StudentID:    req.StudentID,
		Department:   req.Department,
		Year:         req.Year,
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			l.Warn("register_failed", "status", 409, "reason", "duplicate on insert")
			return nil, "", &ConflictError{Field: "username or email"}
		}
		return nil, "", err
	}

	token, err := s.Issuer.Sign(user.ID, user.Role, time.Now())
	if err != nil {
		return nil, "", err
	}

	s.publish(ctx, user.ID.String(), map[string]any{
		"type":     "user_registered",
		"userId":   user.ID.String(),
		"username": user.Username,
	})

	l.Info("register_success", "user_id", user.ID)
	return user, token, nil
}

// Login treats a missing account, a deactivated account and a wrong password
// identically: same error, and a burned bcrypt comparison on the paths that
// would otherwise return early.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*models.User, string, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		l.Warn("login_failed", "status", 401, "reason", "empty credentials")
		hash.BurnComparison(password)
		return nil, "", ErrInvalidCredentials
	}

	user, err := s.Repo.GetUserByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			hash.BurnComparison(password)
			l.Warn("login_failed", "status", 401, "reason", "unknown identifier")
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !user.IsActive {
		hash.BurnComparison(password)
		l.Warn("login_failed", "status", 401, "reason", "account deactivated")
		return nil, "", ErrInvalidCredentials
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login_failed", "status", 401, "reason", "password mismatch")
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.Issuer.Sign(user.ID, user.Role, time.Now())
	if err != nil {
		return nil, "", err
	}

	s.publish(ctx, user.ID.String(), map[string]any{
		"type":     "user_logged_in",
		"userId":   user.ID.String(),
		"username": user.Username,
	})

	l.Info("login_success", "user_id", user.ID)
	return user, token, nil
}

func (s *AuthService) Profile(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.Repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, id uuid.UUID, upd transport.ProfileUpdate) (*models.User, error) {
	user, err := s.Profile(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		if strings.TrimSpace(*upd.Name) == "" {
			return nil, &FieldErrors{Fields: map[string]string{"name": "name cannot be empty"}}
		}
		user.Name = strings.TrimSpace(*upd.Name)
	}
	if upd.StudentID != nil {
		user.StudentID = *upd.StudentID
	}
	if upd.Department != nil {
		user.Department = *upd.Department
	}
	if upd.Year != nil {
		user.Year = *upd.Year
	}

	if err := s.Repo.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, id uuid.UUID, oldPassword, newPassword string) error {
	l := logging.FromContext(ctx).With("svc", "auth.change_password")

	user, err := s.Profile(ctx, id)
	if err != nil {
		return err
	}
	if !hash.CheckPassword(user.PasswordHash, oldPassword) {
		l.Warn("change_password_failed", "status", 401, "reason", "old password mismatch")
		return ErrInvalidCredentials
	}
	if len(newPassword) < minPasswordLen {
		return &FieldErrors{Fields: map[string]string{"newPassword": "password must be at least 6 characters"}}
	}

	pwHash, err := hash.HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = pwHash
	if err := s.Repo.SaveUser(ctx, user); err != nil {
		return err
	}
	l.Info("change_password_success", "user_id", user.ID)
	return nil
}

func (s *AuthService) publish(ctx context.Context, key string, event map[string]any) {
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Events.Publish(pubCtx, key, event); err != nil {
		logging.FromContext(ctx).Error("event_publish_failed", "error", err)
	}
}
