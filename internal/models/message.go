package models

import (
	"time"
)

// MaxMessageLength bounds the text of a single message.
const MaxMessageLength = 140

type Message struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Text      string    `gorm:"not null;size:140" json:"text"`
	Timestamp time.Time `gorm:"not null;index;default:CURRENT_TIMESTAMP" json:"timestamp"`

	Likes []Like `gorm:"foreignKey:MessageID;constraint:OnDelete:CASCADE" json:"likes,omitempty"`
}
