package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleMember    = "member"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"     json:"id"`
	Username     string    `gorm:"uniqueIndex;not null"     json:"username"`
	Email        string    `gorm:"uniqueIndex;not null"     json:"email"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	Role         string    `gorm:"not null;default:member"  json:"role"`
	IsActive     bool      `gorm:"not null;default:true"    json:"isActive"`
	Name         string    `json:"name"`
	StudentID    string    `json:"studentId,omitempty"`
	Department   string    `json:"department,omitempty"`
	Year         string    `json:"year,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

type Announcement struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string         `gorm:"not null"             json:"title"`
	Content     string         `gorm:"not null"             json:"content"`
	Category    string         `gorm:"index;not null"       json:"category"`
	Priority    string         `gorm:"index;not null"       json:"priority"`
	Author      string         `gorm:"not null"             json:"author"`
	PublishDate time.Time      `gorm:"index"                json:"publishDate"`
	ExpiryDate  *time.Time     `json:"expiryDate,omitempty"`
	IsActive    bool           `gorm:"not null;default:true" json:"isActive"`
	Attachments AttachmentList `gorm:"type:jsonb"           json:"attachments"`
	Tags        StringList     `gorm:"type:jsonb"           json:"tags"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

func (a *Announcement) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

type Event struct {
	ID                   uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title                string     `gorm:"not null"             json:"title"`
	Description          string     `gorm:"not null"             json:"description"`
	Date                 time.Time  `gorm:"index;not null"       json:"date"`
	Time                 string     `gorm:"not null"             json:"time"`
	Location             string     `gorm:"not null"             json:"location"`
	Category             string     `gorm:"index;not null"       json:"category"`
	Organizer            string     `gorm:"not null"             json:"organizer"`
	MaxParticipants      *int       `json:"maxParticipants,omitempty"`
	CurrentParticipants  int        `gorm:"not null;default:0"   json:"currentParticipants"`
	RegistrationRequired bool       `gorm:"not null;default:false" json:"registrationRequired"`
	RegistrationDeadline *time.Time `json:"registrationDeadline,omitempty"`
	Status               string     `gorm:"index;not null"       json:"status"`
	Image                Image      `gorm:"type:jsonb"           json:"image"`
	IsPublic             bool       `gorm:"not null;default:true" json:"isPublic"`
	Requirements         string     `json:"requirements,omitempty"`
	ContactEmail         string     `json:"contactEmail,omitempty"`
	Tags                 StringList `gorm:"type:jsonb"           json:"tags"`
	CreatedAt            time.Time  `json:"createdAt"`
	UpdatedAt            time.Time  `json:"updatedAt"`
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

type Activity struct {
	ID            uuid.UUID               `gorm:"type:uuid;primaryKey" json:"id"`
	Title         string                  `gorm:"not null"             json:"title"`
	Description   string                  `gorm:"not null"             json:"description"`
	Type          string                  `gorm:"index;not null"       json:"type"`
	Status        string                  `gorm:"index;not null"       json:"status"`
	StartDate     time.Time               `gorm:"index;not null"       json:"startDate"`
	EndDate       *time.Time              `json:"endDate,omitempty"`
	Participants  ParticipantList         `gorm:"type:jsonb"           json:"participants"`
	Leader        string                  `gorm:"not null"             json:"leader"`
	Images        ImageList               `gorm:"type:jsonb"           json:"images"`
	Achievements  ActivityAchievementList `gorm:"type:jsonb"           json:"achievements"`
	Skills        StringList              `gorm:"type:jsonb"           json:"skills"`
	Technologies  StringList              `gorm:"type:jsonb"           json:"technologies"`
	IsHighlighted bool                    `gorm:"index;not null;default:false" json:"isHighlighted"`
	Visibility    string                  `gorm:"index;not null"       json:"visibility"`
	Tags          StringList              `gorm:"type:jsonb"           json:"tags"`
	CreatedAt     time.Time               `json:"createdAt"`
	UpdatedAt     time.Time               `json:"updatedAt"`
}

func (a *Activity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

type Leader struct {
	ID             uuid.UUID             `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string                `gorm:"not null"             json:"name"`
	Position       string                `gorm:"index;not null"       json:"position"`
	Department     string                `gorm:"index;not null"       json:"department"`
	Email          string                `gorm:"not null"             json:"email"`
	Phone          string                `json:"phone,omitempty"`
	Bio            string                `json:"bio,omitempty"`
	Image          Image                 `gorm:"type:jsonb"           json:"image"`
	SocialLinks    SocialLinks           `gorm:"type:jsonb"           json:"socialLinks"`
	Achievements   LeaderAchievementList `gorm:"type:jsonb"           json:"achievements"`
	Education      EducationList         `gorm:"type:jsonb"           json:"education"`
	Expertise      StringList            `gorm:"type:jsonb"           json:"expertise"`
	JoinDate       time.Time             `json:"joinDate"`
	IsActive       bool                  `gorm:"index;not null;default:true" json:"isActive"`
	DisplayOrder   int                   `gorm:"index;not null;default:0"    json:"displayOrder"`
	OfficeHours    string                `json:"officeHours,omitempty"`
	OfficeLocation string                `json:"officeLocation,omitempty"`
	CreatedAt      time.Time             `json:"createdAt"`
	UpdatedAt      time.Time             `json:"updatedAt"`
}

func (l *Leader) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
