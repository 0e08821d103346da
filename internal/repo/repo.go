package repo

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/techclub/club-portal/internal/models"
)

var ErrDuplicate = errors.New("duplicate key")

type GormRepo struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *GormRepo {
	return &GormRepo{DB: db}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Announcement{},
		&models.Event{},
		&models.Activity{},
		&models.Leader{},
	)
}

// translateDuplicate maps driver-specific unique-violation errors onto
// ErrDuplicate. The unique indexes on users.username and users.email are what
// actually close the concurrent-registration race; this only names the
// failure.
func translateDuplicate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value") {
		return ErrDuplicate
	}
	return err
}
