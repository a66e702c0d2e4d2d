package repositories_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photogram-api/models"
	"photogram-api/repositories"
	"photogram-api/testutil"
)

func TestLikeRepository_TogglePostLike(t *testing.T) {
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	post := testutil.CreatePost(t, db, alice.ID, "sunset")
	repo := repositories.NewLikeRepository(db)

	liked, count, err := repo.TogglePostLike(post.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, int64(1), count)

	liked, count, err = repo.TogglePostLike(post.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, int64(2), count)

	liked, count, err = repo.TogglePostLike(post.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, int64(1), count)

	likedMap, err := repo.LikedPosts(alice.ID, []string{post.ID})
	require.NoError(t, err)
	assert.True(t, likedMap[post.ID])

	counts, err := repo.CountPostLikes([]string{post.ID, "missing"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[post.ID])
	assert.Zero(t, counts["missing"])
}

func TestLikeRepository_ConcurrentTogglesNeverDuplicate(t *testing.T) {
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "alice")
	post := testutil.CreatePost(t, db, alice.ID, "sunset")
	repo := repositories.NewLikeRepository(db)

	var wg sync.WaitGroup
	for i := 0; i < 6; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := repo.TogglePostLike(post.ID, alice.ID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	var rows int64
	require.NoError(t, db.Model(&models.PostLike{}).Where("post_id = ?", post.ID).Count(&rows).Error)
	assert.Equal(t, int64(0), rows, "an even number of toggles leaves the post unliked")
}

func TestSubscriptionRepository_Toggle(t *testing.T) {
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	repo := repositories.NewSubscriptionRepository(db)

	subscribed, err := repo.Toggle(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, subscribed)

	ids, err := repo.SubscribedToIDs(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{bob.ID}, ids)

	subscribers, subscriptions, err := repo.Counts(bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), subscribers)
	assert.Equal(t, int64(0), subscriptions)

	subscribed, err = repo.Toggle(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, subscribed)

	ok, err := repo.IsSubscribed(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTagRepository_GetOrCreateIsIdempotent(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewTagRepository(db)

	first, err := repo.GetOrCreate("travel")
	require.NoError(t, err)
	second, err := repo.GetOrCreate("travel")
	require.NoError(t, err)
	other, err := repo.GetOrCreate("Travel")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.NotEqual(t, first.ID, other.ID)

	var total int64
	require.NoError(t, db.Model(&models.Tag{}).Count(&total).Error)
	assert.Equal(t, int64(2), total)
}
