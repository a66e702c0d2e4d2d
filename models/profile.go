package models

import "time"

type Profile struct {
	ID        string    `json:"id" gorm:"primaryKey;size:191"`
	UserID    string    `json:"user_id" gorm:"uniqueIndex;not null;size:191"`
	FullName  string    `json:"full_name" gorm:"not null;size:255"`
	Bio       string    `json:"bio" gorm:"type:text"`
	Avatar    *string   `json:"avatar" gorm:"size:500"`
	AvatarKey string    `json:"-" gorm:"size:500"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
