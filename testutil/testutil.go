// Package testutil provides fixtures shared by package tests.
package testutil

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"photogram-api/database"
	"photogram-api/logger"
	"photogram-api/models"
)

// NewDB returns a migrated in-memory sqlite database private to the test.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.Initialize("sqlite", dsn, logger.Discard())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		_ = database.Close(db)
	})
	return db
}

// CreateUser inserts a user whose password is "password123".
func CreateUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		ID:       uuid.NewString(),
		Username: username,
		Email:    username + "@example.com",
		Password: string(hash),
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreatePost inserts a bare post authored by authorID.
func CreatePost(t *testing.T, db *gorm.DB, authorID, caption string) *models.Post {
	t.Helper()

	post := &models.Post{
		ID:       uuid.NewString(),
		AuthorID: authorID,
		Caption:  caption,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

// CreateComment inserts a bare comment on postID by userID.
func CreateComment(t *testing.T, db *gorm.DB, postID, userID, content string) *models.Comment {
	t.Helper()

	comment := &models.Comment{
		ID:      uuid.NewString(),
		PostID:  postID,
		UserID:  userID,
		Content: content,
	}
	require.NoError(t, db.Create(comment).Error)
	return comment
}

// ImageBytes returns content that sniffs as the image type named by the extension
// of name (.png, .jpg, .jpeg, .gif). Any other name gets plain text.
func ImageBytes(name string) []byte {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png":
		return append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), name...)
	case ".jpg", ".jpeg":
		return append([]byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00"), name...)
	case ".gif":
		return append([]byte("GIF89a"), name...)
	default:
		return []byte("plain text " + name)
	}
}
