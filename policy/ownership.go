// Package policy decides who may modify posts, comments and profiles.
package policy

import (
	"photogram-api/apperrors"
	"photogram-api/models"
)

// CanModifyPost allows only the post's author.
func CanModifyPost(userID string, post *models.Post) bool {
	return userID != "" && post != nil && post.AuthorID == userID
}

// CanModifyComment allows the comment's author and the author of the post it belongs to.
func CanModifyComment(userID string, post *models.Post, comment *models.Comment) bool {
	if userID == "" || comment == nil {
		return false
	}
	if comment.UserID == userID {
		return true
	}
	return post != nil && post.ID == comment.PostID && post.AuthorID == userID
}

// CanModifyProfile allows only the profile's owner.
func CanModifyProfile(userID string, profile *models.Profile) bool {
	return userID != "" && profile != nil && profile.UserID == userID
}

// Require turns a policy decision into apperrors.ErrForbidden.
func Require(allowed bool) error {
	if !allowed {
		return apperrors.ErrForbidden
	}
	return nil
}
