package transport

import (
	"time"

	"github.com/techclub/club-portal/internal/models"
)

type RegisterRequest struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Name       string `json:"name"`
	StudentID  string `json:"studentId"`
	Department string `json:"department"`
	Year       string `json:"year"`
}

type LoginRequest struct {
	Identifier string `json:"identifier"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Password   string `json:"password"`
}

// Ident accepts the identifier under any of the three names clients use.
func (r LoginRequest) Ident() string {
	if r.Identifier != "" {
		return r.Identifier
	}
	if r.Username != "" {
		return r.Username
	}
	return r.Email
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type ProfileUpdate struct {
	Name       *string `json:"name"`
	StudentID  *string `json:"studentId"`
	Department *string `json:"department"`
	Year       *string `json:"year"`
}

// AuthResponse pairs the session token with the public account view.
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Content payloads use pointer fields so the same shape serves create
// (required fields checked, defaults applied) and partial update (nil means
// "leave unchanged"). Multipart requests are parsed into these shapes at the
// handler boundary; the JSON-in-form-field encoding never travels further.

type AnnouncementPayload struct {
	Title       *string                  `json:"title"`
	Content     *string                  `json:"content"`
	Category    *string                  `json:"category"`
	Priority    *string                  `json:"priority"`
	Author      *string                  `json:"author"`
	PublishDate *time.Time               `json:"publishDate"`
	ExpiryDate  *time.Time               `json:"expiryDate"`
	IsActive    *bool                    `json:"isActive"`
	Attachments *models.AttachmentList   `json:"attachments"`
	Tags        *models.StringList       `json:"tags"`
}

type EventPayload struct {
	Title                *string            `json:"title"`
	Description          *string            `json:"description"`
	Date                 *time.Time         `json:"date"`
	Time                 *string            `json:"time"`
	Location             *string            `json:"location"`
	Category             *string            `json:"category"`
	Organizer            *string            `json:"organizer"`
	MaxParticipants      *int               `json:"maxParticipants"`
	CurrentParticipants  *int               `json:"currentParticipants"`
	RegistrationRequired *bool              `json:"registrationRequired"`
	RegistrationDeadline *time.Time         `json:"registrationDeadline"`
	Status               *string            `json:"status"`
	IsPublic             *bool              `json:"isPublic"`
	Requirements         *string            `json:"requirements"`
	ContactEmail         *string            `json:"contactEmail"`
	Tags                 *models.StringList `json:"tags"`

	// Set by the handler from a multipart "image" file, never from the body.
	Image *models.Image `json:"-"`
}

type ActivityPayload struct {
	Title         *string                         `json:"title"`
	Description   *string                         `json:"description"`
	Type          *string                         `json:"type"`
	Status        *string                         `json:"status"`
	StartDate     *time.Time                      `json:"startDate"`
	EndDate       *time.Time                      `json:"endDate"`
	Participants  *models.ParticipantList         `json:"participants"`
	Leader        *string                         `json:"leader"`
	Images        *models.ImageList               `json:"images"`
	Achievements  *models.ActivityAchievementList `json:"achievements"`
	Skills        *models.StringList              `json:"skills"`
	Technologies  *models.StringList              `json:"technologies"`
	IsHighlighted *bool                           `json:"isHighlighted"`
	Visibility    *string                         `json:"visibility"`
	Tags          *models.StringList              `json:"tags"`

	// Uploaded images are appended after the payload is applied.
	NewImages models.ImageList `json:"-"`
}

type LeaderPayload struct {
	Name           *string                       `json:"name"`
	Position       *string                       `json:"position"`
	Department     *string                       `json:"department"`
	Email          *string                       `json:"email"`
	Phone          *string                       `json:"phone"`
	Bio            *string                       `json:"bio"`
	SocialLinks    *models.SocialLinks           `json:"socialLinks"`
	Achievements   *models.LeaderAchievementList `json:"achievements"`
	Education      *models.EducationList         `json:"education"`
	Expertise      *models.StringList            `json:"expertise"`
	JoinDate       *time.Time                    `json:"joinDate"`
	IsActive       *bool                         `json:"isActive"`
	DisplayOrder   *int                          `json:"displayOrder"`
	OfficeHours    *string                       `json:"officeHours"`
	OfficeLocation *string                       `json:"officeLocation"`

	Image *models.Image `json:"-"`
}
