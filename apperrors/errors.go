package apperrors

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrPostNotFound       = errors.New("post not found")
	ErrCommentNotFound    = errors.New("comment not found")
	ErrProfileExists      = errors.New("profile already exists")
	ErrUsernameTaken      = errors.New("a user with that username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("authentication required")
	ErrForbidden          = errors.New("you do not have permission to perform this action")
	ErrSelfSubscription   = errors.New("you cannot subscribe to yourself")
	ErrUnsupportedImage   = errors.New("upload a valid image: jpeg, png, gif or webp")
)

// IsNotFound reports whether err is one of the not-found sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrProfileNotFound) ||
		errors.Is(err, ErrPostNotFound) ||
		errors.Is(err, ErrCommentNotFound)
}
