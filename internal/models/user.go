package models

import (
	"time"
)

// Defaults applied on signup when the user does not supply their own images.
const (
	DefaultImageURL       = "/static/images/default-pic.png"
	DefaultHeaderImageURL = "/static/images/warbler-hero.jpg"
)

type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Username       string    `gorm:"unique;not null;size:80" json:"username"`
	Email          string    `gorm:"unique;not null;size:120" json:"email"`
	PasswordHash   string    `gorm:"not null;size:255" json:"-"`
	ImageURL       string    `gorm:"not null;size:255" json:"image_url"`
	HeaderImageURL string    `gorm:"not null;size:255" json:"header_image_url"`
	Bio            string    `gorm:"type:text" json:"bio,omitempty"`
	Location       string    `gorm:"size:120" json:"location,omitempty"`
	APIKey         string    `gorm:"unique;index;size:36" json:"api_key"`
	CreatedAt      time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`

	Messages []Message `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"messages,omitempty"`
}
