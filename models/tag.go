package models

// Tag names are matched exactly; no case folding.
type Tag struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;not null;size:255"`
}

// PostTag rows are not unique: tagging a post twice with the same name keeps both rows.
type PostTag struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	PostID string `json:"post_id" gorm:"not null;size:191;index"`
	TagID  uint   `json:"tag_id" gorm:"not null;index"`

	Tag Tag `json:"-" gorm:"foreignKey:TagID"`
}

type CommentTag struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	CommentID string `json:"comment_id" gorm:"not null;size:191;index"`
	TagID     uint   `json:"tag_id" gorm:"not null;index"`

	Tag Tag `json:"-" gorm:"foreignKey:TagID"`
}
