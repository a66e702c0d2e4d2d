package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"photogram-api/apperrors"
	"photogram-api/models"
)

func TestCanModifyPost(t *testing.T) {
	post := &models.Post{ID: "p1", AuthorID: "alice"}

	tests := []struct {
		name   string
		userID string
		post   *models.Post
		want   bool
	}{
		{"author", "alice", post, true},
		{"other user", "bob", post, false},
		{"anonymous", "", post, false},
		{"missing post", "alice", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanModifyPost(tt.userID, tt.post))
		})
	}
}

func TestCanModifyComment(t *testing.T) {
	post := &models.Post{ID: "p1", AuthorID: "alice"}
	comment := &models.Comment{ID: "c1", PostID: "p1", UserID: "bob"}
	otherPost := &models.Post{ID: "p2", AuthorID: "carol"}

	tests := []struct {
		name    string
		userID  string
		post    *models.Post
		comment *models.Comment
		want    bool
	}{
		{"comment author", "bob", post, comment, true},
		{"post author", "alice", post, comment, true},
		{"stranger", "carol", post, comment, false},
		{"author of unrelated post", "carol", otherPost, comment, false},
		{"missing comment", "alice", post, nil, false},
		{"anonymous", "", post, comment, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanModifyComment(tt.userID, tt.post, tt.comment))
		})
	}
}

func TestCanModifyProfile(t *testing.T) {
	profile := &models.Profile{ID: "pr1", UserID: "alice"}

	assert.True(t, CanModifyProfile("alice", profile))
	assert.False(t, CanModifyProfile("bob", profile))
	assert.False(t, CanModifyProfile("alice", nil))
}

func TestRequire(t *testing.T) {
	assert.NoError(t, Require(true))
	assert.ErrorIs(t, Require(false), apperrors.ErrForbidden)
}
