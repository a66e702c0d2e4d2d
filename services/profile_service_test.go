package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photogram-api/apperrors"
	"photogram-api/forms"
	"photogram-api/logger"
	"photogram-api/storage"
	"photogram-api/testutil"
)

func TestProfileService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	media := storage.NewMemory()
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	svc := NewProfileService(db, media, logger.Discard())
	subs := NewSubscriptionService(db, logger.Discard())

	_, err := svc.Get(ctx, alice.ID)
	assert.ErrorIs(t, err, apperrors.ErrProfileNotFound)

	avatar := fileHeaders(t, "avatar", "me.png")[0]
	created, err := svc.Create(ctx, alice.ID, forms.ProfileForm{FullName: "Alice Liddell", Bio: "down the hole"}, avatar)
	require.NoError(t, err)
	assert.Equal(t, "alice", created.Username)
	require.NotNil(t, created.Avatar)
	assert.Equal(t, 1, media.Len())

	_, err = svc.Create(ctx, alice.ID, forms.ProfileForm{FullName: "Again"}, nil)
	assert.ErrorIs(t, err, apperrors.ErrProfileExists)

	_, err = subs.Toggle(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	own, err := svc.Get(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, own.Subscriptions, 1)
	assert.Equal(t, "bob", own.Subscriptions[0].Username)

	_, err = svc.Update(ctx, bob.ID, created.ID, forms.ProfileForm{FullName: "Bob was here"}, nil)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	updated, err := svc.Update(ctx, alice.ID, created.ID, forms.ProfileForm{FullName: "Alice L."},
		fileHeaders(t, "avatar", "new.png")[0])
	require.NoError(t, err)
	assert.Equal(t, "Alice L.", updated.FullName)
	assert.Equal(t, "", updated.Bio)
	assert.NotEqual(t, *created.Avatar, *updated.Avatar)
	assert.Equal(t, 1, media.Len(), "old avatar is removed")

	_, err = svc.Update(ctx, alice.ID, "missing", forms.ProfileForm{FullName: "x"}, nil)
	assert.ErrorIs(t, err, apperrors.ErrProfileNotFound)
}

func TestProfileService_Public(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	svc := NewProfileService(db, storage.NewMemory(), logger.Discard())
	subs := NewSubscriptionService(db, logger.Discard())

	testutil.CreatePost(t, db, bob.ID, "one")
	testutil.CreatePost(t, db, bob.ID, "two")
	_, err := subs.Toggle(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	public, err := svc.Public(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob", public.User.Username)
	assert.False(t, public.HasProfile)
	assert.Equal(t, int64(2), public.PostsCount)
	assert.Equal(t, int64(1), public.SubscribersCount)
	assert.Zero(t, public.SubscriptionsCount)
	assert.True(t, public.IsSubscribed)

	_, err = svc.Public(ctx, alice.ID, "ghost")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
