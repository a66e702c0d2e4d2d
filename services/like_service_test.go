package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photogram-api/apperrors"
	"photogram-api/logger"
	"photogram-api/testutil"
)

func TestLikeService_TogglePostLike_RoundTrip(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	post := testutil.CreatePost(t, db, alice.ID, "mountains")
	svc := NewLikeService(db, logger.Discard())

	_, err := svc.TogglePostLike(ctx, alice.ID, post.ID)
	require.NoError(t, err)

	liked, err := svc.TogglePostLike(ctx, bob.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, liked.IsLiked)
	assert.Equal(t, int64(2), liked.LikesCount)

	unliked, err := svc.TogglePostLike(ctx, bob.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, unliked.IsLiked)
	assert.Equal(t, int64(1), unliked.LikesCount)
}

func TestLikeService_TogglePostLike_MissingPost(t *testing.T) {
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "alice")
	svc := NewLikeService(db, logger.Discard())

	_, err := svc.TogglePostLike(context.Background(), alice.ID, "nope")
	assert.ErrorIs(t, err, apperrors.ErrPostNotFound)
}

func TestLikeService_ToggleCommentLike(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	post := testutil.CreatePost(t, db, alice.ID, "mountains")
	other := testutil.CreatePost(t, db, alice.ID, "valley")
	comment := testutil.CreateComment(t, db, post.ID, bob.ID, "great shot")
	svc := NewLikeService(db, logger.Discard())

	_, err := svc.TogglePostLike(ctx, bob.ID, post.ID)
	require.NoError(t, err)

	res, err := svc.ToggleCommentLike(ctx, alice.ID, post.ID, comment.ID)
	require.NoError(t, err)
	assert.True(t, res.IsLiked)
	assert.Equal(t, int64(1), res.LikesCount, "counts only likes of this comment")

	res, err = svc.ToggleCommentLike(ctx, alice.ID, post.ID, comment.ID)
	require.NoError(t, err)
	assert.False(t, res.IsLiked)
	assert.Equal(t, int64(0), res.LikesCount)

	_, err = svc.ToggleCommentLike(ctx, alice.ID, other.ID, comment.ID)
	assert.ErrorIs(t, err, apperrors.ErrCommentNotFound)

	_, err = svc.ToggleCommentLike(ctx, alice.ID, "missing", comment.ID)
	assert.ErrorIs(t, err, apperrors.ErrPostNotFound)
}
