package models

import (
	"time"
)

type Comment struct {
	ID        string    `json:"id" gorm:"primaryKey;size:191"`
	PostID    string    `json:"post_id" gorm:"not null;size:191;index"`
	UserID    string    `json:"user_id" gorm:"not null;size:191;index"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User User         `json:"-" gorm:"foreignKey:UserID"`
	Tags []CommentTag `json:"-" gorm:"foreignKey:CommentID"`
}

// CommentLike is unique per (comment, user).
type CommentLike struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CommentID string    `json:"comment_id" gorm:"not null;size:191;uniqueIndex:idx_comment_like_pair"`
	UserID    string    `json:"user_id" gorm:"not null;size:191;uniqueIndex:idx_comment_like_pair"`
	CreatedAt time.Time `json:"created_at"`
}
