package user

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// User is a student profile. Profiles are written by the identity service;
// this module only reads them to name applicants and render team rosters.
type User struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email     string         `json:"email" gorm:"uniqueIndex;not null"`
	Name      string         `json:"name" gorm:"not null"`
	AvatarURL string         `json:"avatar_url,omitempty" gorm:"column:avatar_url"`
	College   string         `json:"college,omitempty"`
	Year      string         `json:"year,omitempty"`
	Skills    pq.StringArray `json:"skills" gorm:"type:text[]"`
	Bio       string         `json:"bio,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// TableName returns the database table name.
func (User) TableName() string {
	return "users"
}

// Profile is the public projection of a user shown to other students.
type Profile struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	College   string    `json:"college,omitempty"`
	Year      string    `json:"year,omitempty"`
	Skills    []string  `json:"skills"`
}

// ToProfile returns the public projection of u.
func (u *User) ToProfile() Profile {
	skills := []string(u.Skills)
	if skills == nil {
		skills = []string{}
	}
	return Profile{
		ID:        u.ID,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
		College:   u.College,
		Year:      u.Year,
		Skills:    skills,
	}
}
