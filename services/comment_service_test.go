package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photogram-api/apperrors"
	"photogram-api/forms"
	"photogram-api/logger"
	"photogram-api/models"
	"photogram-api/testutil"
)

func TestCommentService_CreateAndList(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	post := testutil.CreatePost(t, db, alice.ID, "forest")
	svc := NewCommentService(db, logger.Discard())

	first, err := svc.Create(ctx, bob.ID, post.ID, forms.CommentForm{Content: "first!", Tags: "green, green"})
	require.NoError(t, err)
	assert.Equal(t, "bob", first.Author.Username)
	assert.Equal(t, []string{"green", "green"}, first.Tags)

	_, err = svc.Create(ctx, alice.ID, post.ID, forms.CommentForm{Content: "thanks"})
	require.NoError(t, err)

	list, err := svc.List(ctx, alice.ID, post.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "first!", list[0].Content)
	assert.Equal(t, "thanks", list[1].Content)
	assert.Equal(t, []string{}, list[1].Tags)

	_, err = svc.Create(ctx, bob.ID, "missing", forms.CommentForm{Content: "lost"})
	assert.ErrorIs(t, err, apperrors.ErrPostNotFound)

	_, err = svc.List(ctx, bob.ID, "missing")
	assert.ErrorIs(t, err, apperrors.ErrPostNotFound)
}

func TestCommentService_UpdatePermissions(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	postAuthor := testutil.CreateUser(t, db, "author")
	commenter := testutil.CreateUser(t, db, "commenter")
	stranger := testutil.CreateUser(t, db, "stranger")
	post := testutil.CreatePost(t, db, postAuthor.ID, "forest")
	comment := testutil.CreateComment(t, db, post.ID, commenter.ID, "original")
	svc := NewCommentService(db, logger.Discard())

	_, err := svc.Update(ctx, stranger.ID, post.ID, comment.ID, forms.CommentForm{Content: "defaced"})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	view, err := svc.Update(ctx, commenter.ID, post.ID, comment.ID, forms.CommentForm{Content: "edited", Tags: "t1"})
	require.NoError(t, err)
	assert.Equal(t, "edited", view.Content)

	view, err = svc.Update(ctx, postAuthor.ID, post.ID, comment.ID, forms.CommentForm{Content: "moderated", Tags: "t2"})
	require.NoError(t, err)
	assert.Equal(t, "moderated", view.Content)
	assert.Equal(t, []string{"t1", "t2"}, view.Tags)
}

func TestCommentService_DeletePermissions(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	postAuthor := testutil.CreateUser(t, db, "author")
	commenter := testutil.CreateUser(t, db, "commenter")
	stranger := testutil.CreateUser(t, db, "stranger")
	post := testutil.CreatePost(t, db, postAuthor.ID, "forest")
	other := testutil.CreatePost(t, db, stranger.ID, "desert")
	svc := NewCommentService(db, logger.Discard())
	likes := NewLikeService(db, logger.Discard())

	c1, err := svc.Create(ctx, commenter.ID, post.ID, forms.CommentForm{Content: "one", Tags: "x"})
	require.NoError(t, err)
	c2 := testutil.CreateComment(t, db, post.ID, commenter.ID, "two")
	_, err = likes.ToggleCommentLike(ctx, stranger.ID, post.ID, c1.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, stranger.ID, post.ID, c1.ID), apperrors.ErrForbidden)
	assert.ErrorIs(t, svc.Delete(ctx, stranger.ID, other.ID, c1.ID), apperrors.ErrCommentNotFound)

	require.NoError(t, svc.Delete(ctx, commenter.ID, post.ID, c1.ID))
	require.NoError(t, svc.Delete(ctx, postAuthor.ID, post.ID, c2.ID))

	var n int64
	require.NoError(t, db.Model(&models.Comment{}).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, db.Model(&models.CommentLike{}).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, db.Model(&models.CommentTag{}).Count(&n).Error)
	assert.Zero(t, n)
}
