package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photogram-api/apperrors"
	"photogram-api/forms"
	"photogram-api/logger"
	"photogram-api/models"
	"photogram-api/storage"
	"photogram-api/testutil"
)

func TestPostService_CreateWithImagesAndTags(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	media := storage.NewMemory()
	alice := testutil.CreateUser(t, db, "alice")
	svc := NewPostService(db, media, logger.Discard())

	view, err := svc.Create(ctx, alice.ID, forms.PostForm{Caption: "Sunrise", Tags: "sky, sun, sky"},
		fileHeaders(t, "images", "one.JPG", "two.png"))
	require.NoError(t, err)

	assert.Equal(t, "Sunrise", view.Caption)
	assert.Equal(t, "alice", view.Author.Username)
	assert.Equal(t, []string{"sky", "sun", "sky"}, view.Tags)
	require.Len(t, view.Images, 2)
	assert.Contains(t, view.Images[0], "posts/"+view.ID+"/")
	assert.Equal(t, 2, media.Len())
	assert.Zero(t, view.LikesCount)
	assert.False(t, view.IsLiked)
}

func TestPostService_UpdateAppendsTagsAndChecksOwner(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	svc := NewPostService(db, storage.NewMemory(), logger.Discard())

	created, err := svc.Create(ctx, alice.ID, forms.PostForm{Caption: "v1", Tags: "a"}, nil)
	require.NoError(t, err)

	_, err = svc.Update(ctx, bob.ID, created.ID, forms.PostForm{Caption: "hijack"}, nil)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	updated, err := svc.Update(ctx, alice.ID, created.ID, forms.PostForm{Caption: "v2", Tags: "b"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "v2", updated.Caption)
	assert.Equal(t, []string{"a", "b"}, updated.Tags)

	_, err = svc.Update(ctx, alice.ID, "missing", forms.PostForm{Caption: "x"}, nil)
	assert.ErrorIs(t, err, apperrors.ErrPostNotFound)
}

func TestPostService_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	media := storage.NewMemory()
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	svc := NewPostService(db, media, logger.Discard())
	comments := NewCommentService(db, logger.Discard())
	likes := NewLikeService(db, logger.Discard())

	post, err := svc.Create(ctx, alice.ID, forms.PostForm{Caption: "bye", Tags: "x"}, fileHeaders(t, "images", "a.jpg"))
	require.NoError(t, err)
	comment, err := comments.Create(ctx, bob.ID, post.ID, forms.CommentForm{Content: "nice", Tags: "y"})
	require.NoError(t, err)
	_, err = likes.TogglePostLike(ctx, bob.ID, post.ID)
	require.NoError(t, err)
	_, err = likes.ToggleCommentLike(ctx, alice.ID, post.ID, comment.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, bob.ID, post.ID), apperrors.ErrForbidden)
	require.NoError(t, svc.Delete(ctx, alice.ID, post.ID))

	for _, model := range []interface{}{
		&models.Post{}, &models.PostImage{}, &models.PostTag{}, &models.PostLike{},
		&models.Comment{}, &models.CommentTag{}, &models.CommentLike{},
	} {
		var n int64
		require.NoError(t, db.Model(model).Count(&n).Error)
		assert.Zero(t, n, "%T rows left after delete", model)
	}
	assert.Zero(t, media.Len())

	assert.ErrorIs(t, svc.Delete(ctx, alice.ID, post.ID), apperrors.ErrPostNotFound)
}

func TestPostService_TagsOutliveTheirPosts(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "alice")
	svc := NewPostService(db, storage.NewMemory(), logger.Discard())

	first, err := svc.Create(ctx, alice.ID, forms.PostForm{Caption: "one", Tags: "go"}, nil)
	require.NoError(t, err)
	var tag models.Tag
	require.NoError(t, db.First(&tag, "name = ?", "go").Error)

	require.NoError(t, svc.Delete(ctx, alice.ID, first.ID))

	// the tag is unreferenced now but stays, so tagging again reuses it
	var kept models.Tag
	require.NoError(t, db.First(&kept, "name = ?", "go").Error)
	assert.Equal(t, tag.ID, kept.ID)

	second, err := svc.Create(ctx, alice.ID, forms.PostForm{Caption: "two", Tags: "go"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"go"}, second.Tags)

	var tags int64
	require.NoError(t, db.Model(&models.Tag{}).Count(&tags).Error)
	assert.Equal(t, int64(1), tags)
}

func TestPostService_FeedEmptyWithoutSubscriptions(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	testutil.CreatePost(t, db, bob.ID, "not followed")
	svc := NewPostService(db, storage.NewMemory(), logger.Discard())

	feed, err := svc.Feed(ctx, alice.ID, 1, 10)
	require.NoError(t, err)
	assert.NotNil(t, feed.Posts)
	assert.Empty(t, feed.Posts)
	assert.Zero(t, feed.Total)
	assert.False(t, feed.HasMore)
}

func TestPostService_FeedShowsSubscribedAuthorsNewestFirst(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	carol := testutil.CreateUser(t, db, "carol")
	svc := NewPostService(db, storage.NewMemory(), logger.Discard())
	subs := NewSubscriptionService(db, logger.Discard())

	base := time.Now().Add(-time.Hour)
	for i, caption := range []string{"bob 1", "bob 2", "bob 3"} {
		post := testutil.CreatePost(t, db, bob.ID, caption)
		require.NoError(t, db.Model(post).Update("created_at", base.Add(time.Duration(i)*time.Minute)).Error)
	}
	testutil.CreatePost(t, db, carol.ID, "carol")
	testutil.CreatePost(t, db, alice.ID, "own post")

	_, err := subs.Toggle(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	page1, err := svc.Feed(ctx, alice.ID, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page1.Total)
	assert.Equal(t, 2, page1.TotalPages)
	assert.True(t, page1.HasMore)
	require.Len(t, page1.Posts, 2)
	assert.Equal(t, "bob 3", page1.Posts[0].Caption)
	assert.Equal(t, "bob 2", page1.Posts[1].Caption)

	page2, err := svc.Feed(ctx, alice.ID, 2, 2)
	require.NoError(t, err)
	require.Len(t, page2.Posts, 1)
	assert.Equal(t, "bob 1", page2.Posts[0].Caption)
	assert.False(t, page2.HasMore)
}

func TestPostService_ListAndGetCarryCounters(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	svc := NewPostService(db, storage.NewMemory(), logger.Discard())
	likes := NewLikeService(db, logger.Discard())

	post := testutil.CreatePost(t, db, alice.ID, "counted")
	testutil.CreateComment(t, db, post.ID, bob.ID, "one")
	testutil.CreateComment(t, db, post.ID, alice.ID, "two")
	_, err := likes.TogglePostLike(ctx, bob.ID, post.ID)
	require.NoError(t, err)

	list, err := svc.List(ctx, bob.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, list.Posts, 1)
	assert.Equal(t, int64(1), list.Posts[0].LikesCount)
	assert.Equal(t, int64(2), list.Posts[0].CommentsCount)
	assert.True(t, list.Posts[0].IsLiked)

	view, err := svc.Get(ctx, alice.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, view.IsLiked)
	assert.Equal(t, []string{}, view.Images)

	_, err = svc.Get(ctx, alice.ID, "missing")
	assert.ErrorIs(t, err, apperrors.ErrPostNotFound)
}
