package models

import (
	"time"
)

type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    *uint     `gorm:"index" json:"user_id"`           // Nullable for failed login attempts
	Action    string    `gorm:"size:50;not null" json:"action"` // e.g., "REGISTER", "LOGIN", "POST_MESSAGE"
	EntityID  string    `gorm:"size:50" json:"entity_id"`       // ID of the object affected (message id, username, ...)
	Details   string    `gorm:"type:text" json:"details"`
	IPAddress string    `gorm:"size:45" json:"ip_address"`
	Browser   string    `gorm:"size:100" json:"browser"`
	OS        string    `gorm:"size:100" json:"os"`
	Timestamp time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"timestamp"`
}
