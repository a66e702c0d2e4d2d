// File: /models/user.go
package models

import (
	"strings"
	"time"
)

type User struct {
	ID        string    `json:"id" gorm:"primaryKey;size:191"`
	Username  string    `json:"username" gorm:"uniqueIndex;not null;size:150"`
	Email     string    `json:"email" gorm:"not null;size:254"`
	Password  string    `json:"-" gorm:"not null;size:255"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Profile *Profile `json:"profile,omitempty" gorm:"foreignKey:UserID"`
}

// NormalizeUsername lowercases and trims a username before it is stored or looked up.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// Subscription is a directed edge: UserID follows SubscribedToID.
type Subscription struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	UserID         string    `json:"user_id" gorm:"not null;size:191;uniqueIndex:idx_subscription_pair"`
	SubscribedToID string    `json:"subscribed_to_id" gorm:"not null;size:191;uniqueIndex:idx_subscription_pair;index"`
	CreatedAt      time.Time `json:"created_at"`

	SubscribedTo User `json:"-" gorm:"foreignKey:SubscribedToID"`
}
