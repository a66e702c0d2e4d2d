// File: /models/post.go
package models

import (
	"time"
)

type Post struct {
	ID        string    `json:"id" gorm:"primaryKey;size:191"`
	AuthorID  string    `json:"author_id" gorm:"not null;size:191;index"`
	Caption   string    `json:"caption" gorm:"not null;size:255"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`

	Author User        `json:"-" gorm:"foreignKey:AuthorID"`
	Images []PostImage `json:"-" gorm:"foreignKey:PostID"`
	Tags   []PostTag   `json:"-" gorm:"foreignKey:PostID"`
}

type PostImage struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    string    `json:"post_id" gorm:"not null;size:191;index"`
	URL       string    `json:"url" gorm:"not null;size:500"`
	Key       string    `json:"-" gorm:"size:500"`
	CreatedAt time.Time `json:"created_at"`
}

// PostLike is unique per (post, user).
type PostLike struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    string    `json:"post_id" gorm:"not null;size:191;uniqueIndex:idx_post_like_pair"`
	UserID    string    `json:"user_id" gorm:"not null;size:191;uniqueIndex:idx_post_like_pair"`
	CreatedAt time.Time `json:"created_at"`
}
