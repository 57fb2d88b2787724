package models

import (
	"time"
)

// Like marks that a user likes a message. The combination of UserID and
// MessageID is unique.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_user_message" json:"user_id"`
	MessageID uint      `gorm:"not null;index;uniqueIndex:idx_user_message" json:"message_id"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Message   *Message  `gorm:"foreignKey:MessageID;constraint:OnDelete:CASCADE" json:"message,omitempty"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}
