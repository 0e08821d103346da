package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/techclub/club-portal/internal/models"
)

func (r *GormRepo) GetUserByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).
		Where("username = ? OR email = ?", identifier, identifier).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) CreateUser(ctx context.Context, u *models.User) error {
	return translateDuplicate(r.DB.WithContext(ctx).Create(u).Error)
}

func (r *GormRepo) UsernameTaken(ctx context.Context, username string) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.User{}).
		Where("username = ?", username).Count(&n).Error
	return n > 0, err
}

func (r *GormRepo) EmailTaken(ctx context.Context, email string) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.User{}).
		Where("email = ?", email).Count(&n).Error
	return n > 0, err
}

func (r *GormRepo) SaveUser(ctx context.Context, u *models.User) error {
	return translateDuplicate(r.DB.WithContext(ctx).Save(u).Error)
}

func (r *GormRepo) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.User{}).Count(&n).Error
	return n, err
}
