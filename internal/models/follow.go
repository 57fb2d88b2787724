package models

import (
	"time"
)

// Follow is a directed edge in the social graph: FollowerID follows FolloweeID.
// The composite unique index makes a repeat follow a constraint violation, so
// the service layer can treat it as a no-op.
type Follow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FollowerID uint      `gorm:"not null;index;uniqueIndex:idx_follower_followee" json:"follower_id"`
	FolloweeID uint      `gorm:"not null;index;uniqueIndex:idx_follower_followee" json:"followee_id"`
	Follower   *User     `gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE" json:"follower,omitempty"`
	Followee   *User     `gorm:"foreignKey:FolloweeID;constraint:OnDelete:CASCADE" json:"followee,omitempty"`
	CreatedAt  time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Follow) TableName() string {
	return "follows"
}
