package service

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/techclub/club-portal/internal/models"
	"github.com/techclub/club-portal/internal/repo"
	"github.com/techclub/club-portal/internal/tokens"
	"github.com/techclub/club-portal/internal/transport"
)

func testStore(t *testing.T) *repo.GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, repo.Migrate(db))
	return repo.New(db)
}

func testAuthService(t *testing.T) *AuthService {
	t.Helper()
	return &AuthService{
		Repo:   testStore(t),
		Issuer: &tokens.Issuer{Secret: []byte("test-secret"), TTL: time.Hour},
	}
}

func registerReq() transport.RegisterRequest {
	return transport.RegisterRequest{
		Username: "alice",
		Email:    "alice@college.edu",
		Password: "s3cretpw",
		Name:     "Alice",
	}
}

func TestRegisterThenLogin(t *testing.T) {
	svc := testAuthService(t)
	ctx := context.Background()

	user, token, err := svc.Register(ctx, registerReq())
	require.NoError(t, err)
	assert.Equal(t, models.RoleMember, user.Role)
	assert.True(t, user.IsActive)
	assert.NotEmpty(t, token)

	claims, err := svc.Issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleMember, claims.Role)

	// Login by username and by email yield the same account.
	byName, _, err := svc.Login(ctx, "alice", "s3cretpw")
	require.NoError(t, err)
	byMail, _, err := svc.Login(ctx, "alice@college.edu", "s3cretpw")
	require.NoError(t, err)
	assert.Equal(t, byName.ID, byMail.ID)
}

func TestRegisterValidation(t *testing.T) {
	svc := testAuthService(t)
	ctx := context.Background()

	req := registerReq()
	req.Email = "not-an-email"
	req.Password = "short"
	_, _, err := svc.Register(ctx, req)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	var fe *FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe.Fields, "email")
	assert.Contains(t, fe.Fields, "password")
}

func TestRegisterConflictLeavesStoreUnchanged(t *testing.T) {
	svc := testAuthService(t)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, registerReq())
	require.NoError(t, err)

	dup := registerReq()
	dup.Email = "different@college.edu"
	_, _, err = svc.Register(ctx, dup)
	assert.ErrorIs(t, err, ErrConflict)

	n, err := svc.Repo.CountUsers(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc := testAuthService(t)
	ctx := context.Background()

	user, _, err := svc.Register(ctx, registerReq())
	require.NoError(t, err)

	_, _, wrongPw := svc.Login(ctx, "alice", "wrong")
	_, _, noUser := svc.Login(ctx, "nobody", "s3cretpw")

	user.IsActive = false
	require.NoError(t, svc.Repo.SaveUser(ctx, user))
	_, _, inactive := svc.Login(ctx, "alice", "s3cretpw")

	assert.ErrorIs(t, wrongPw, ErrInvalidCredentials)
	assert.ErrorIs(t, noUser, ErrInvalidCredentials)
	assert.ErrorIs(t, inactive, ErrInvalidCredentials)
	assert.Equal(t, wrongPw.Error(), noUser.Error())
	assert.Equal(t, wrongPw.Error(), inactive.Error())
}

func TestChangePassword(t *testing.T) {
	svc := testAuthService(t)
	ctx := context.Background()

	user, _, err := svc.Register(ctx, registerReq())
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, user.ID, "wrong", "newpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	err = svc.ChangePassword(ctx, user.ID, "s3cretpw", "tiny")
	assert.ErrorIs(t, err, ErrValidation)

	require.NoError(t, svc.ChangePassword(ctx, user.ID, "s3cretpw", "newpassword"))

	_, _, err = svc.Login(ctx, "alice", "s3cretpw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = svc.Login(ctx, "alice", "newpassword")
	assert.NoError(t, err)
}

func TestUpdateProfile(t *testing.T) {
	svc := testAuthService(t)
	ctx := context.Background()

	user, _, err := svc.Register(ctx, registerReq())
	require.NoError(t, err)

	dept := "ECE"
	updated, err := svc.UpdateProfile(ctx, user.ID, transport.ProfileUpdate{Department: &dept})
	require.NoError(t, err)
	assert.Equal(t, "ECE", updated.Department)
	assert.Equal(t, "Alice", updated.Name)

	empty := "  "
	_, err = svc.UpdateProfile(ctx, user.ID, transport.ProfileUpdate{Name: &empty})
	assert.ErrorIs(t, err, ErrValidation)
}
