package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Embedded collections are stored as single JSON columns, mirroring the
// document layout the content types were designed around.

func jsonValue(v any) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func jsonScan(dst any, src any) error {
	switch data := src.(type) {
	case nil:
		return nil
	case []byte:
		if len(data) == 0 {
			return nil
		}
		return json.Unmarshal(data, dst)
	case string:
		if data == "" {
			return nil
		}
		return json.Unmarshal([]byte(data), dst)
	default:
		return fmt.Errorf("unsupported column type %T", src)
	}
}

type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return jsonValue(l)
}
func (l *StringList) Scan(src any) error { return jsonScan(l, src) }

type Attachment struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
	Size     int64  `json:"size,omitempty"`
}

type AttachmentList []Attachment

func (l AttachmentList) Value() (driver.Value, error) {
	if l == nil {
		l = AttachmentList{}
	}
	return jsonValue(l)
}
func (l *AttachmentList) Scan(src any) error { return jsonScan(l, src) }

type Image struct {
	Filename string `json:"filename,omitempty"`
	Path     string `json:"path,omitempty"`
	Caption  string `json:"caption,omitempty"`
}

func (i Image) Value() (driver.Value, error) { return jsonValue(i) }
func (i *Image) Scan(src any) error          { return jsonScan(i, src) }

type ImageList []Image

func (l ImageList) Value() (driver.Value, error) {
	if l == nil {
		l = ImageList{}
	}
	return jsonValue(l)
}
func (l *ImageList) Scan(src any) error { return jsonScan(l, src) }

type Participant struct {
	Name      string `json:"name"`
	Role      string `json:"role,omitempty"`
	StudentID string `json:"studentId,omitempty"`
}

type ParticipantList []Participant

func (l ParticipantList) Value() (driver.Value, error) {
	if l == nil {
		l = ParticipantList{}
	}
	return jsonValue(l)
}
func (l *ParticipantList) Scan(src any) error { return jsonScan(l, src) }

type ActivityAchievement struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
}

type ActivityAchievementList []ActivityAchievement

func (l ActivityAchievementList) Value() (driver.Value, error) {
	if l == nil {
		l = ActivityAchievementList{}
	}
	return jsonValue(l)
}
func (l *ActivityAchievementList) Scan(src any) error { return jsonScan(l, src) }

type LeaderAchievement struct {
	Title       string `json:"title"`
	Year        string `json:"year,omitempty"`
	Description string `json:"description,omitempty"`
}

type LeaderAchievementList []LeaderAchievement

func (l LeaderAchievementList) Value() (driver.Value, error) {
	if l == nil {
		l = LeaderAchievementList{}
	}
	return jsonValue(l)
}
func (l *LeaderAchievementList) Scan(src any) error { return jsonScan(l, src) }

type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution,omitempty"`
	Year        string `json:"year,omitempty"`
}

type EducationList []Education

func (l EducationList) Value() (driver.Value, error) {
	if l == nil {
		l = EducationList{}
	}
	return jsonValue(l)
}
func (l *EducationList) Scan(src any) error { return jsonScan(l, src) }

type SocialLinks struct {
	LinkedIn string `json:"linkedin,omitempty"`
	Twitter  string `json:"twitter,omitempty"`
	GitHub   string `json:"github,omitempty"`
	Website  string `json:"website,omitempty"`
}

func (s SocialLinks) Value() (driver.Value, error) { return jsonValue(s) }
func (s *SocialLinks) Scan(src any) error          { return jsonScan(s, src) }
