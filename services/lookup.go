package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"photogram-api/apperrors"
	"photogram-api/models"
)

// notFound maps gorm.ErrRecordNotFound to the given sentinel and wraps anything else.
func notFound(err error, sentinel error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return fmt.Errorf("failed to load %s: %w", what, err)
}

func findUser(db *gorm.DB, userID string) (*models.User, error) {
	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, notFound(err, apperrors.ErrUserNotFound, "user")
	}
	return &user, nil
}

func findPost(db *gorm.DB, postID string) (*models.Post, error) {
	var post models.Post
	if err := db.First(&post, "id = ?", postID).Error; err != nil {
		return nil, notFound(err, apperrors.ErrPostNotFound, "post")
	}
	return &post, nil
}

// findComment only returns comments that belong to postID.
func findComment(db *gorm.DB, postID, commentID string) (*models.Comment, error) {
	var comment models.Comment
	if err := db.First(&comment, "id = ? AND post_id = ?", commentID, postID).Error; err != nil {
		return nil, notFound(err, apperrors.ErrCommentNotFound, "comment")
	}
	return &comment, nil
}

func summarize(user models.User) models.UserSummary {
	summary := models.UserSummary{
		ID:       user.ID,
		Username: user.Username,
	}
	if user.Profile != nil {
		summary.FullName = user.Profile.FullName
		summary.Avatar = user.Profile.Avatar
	}
	return summary
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
