package repository

import (
	"context"
	"fmt"
	"testing"

	"chirp/internal/cache"
	"chirp/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createTestTweet(t *testing.T, db *gorm.DB, userID uint, content string) *models.Tweet {
	t.Helper()
	tweet := &models.Tweet{Content: content, UserID: userID}
	require.NoError(t, db.Create(tweet).Error)
	return tweet
}

func TestTweetRepository_GetByID_PopulatesDetails(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTweetRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "tweetauthor")
	tweet := createTestTweet(t, db, author.ID, "hello world")

	got, err := repo.GetByID(ctx, tweet.ID)
	require.NoError(t, err)
	require.NotNil(t, got.User)
	assert.Equal(t, "tweetauthor", got.User.Username)

	// Engagement sets are always present, even when empty.
	assert.NotNil(t, got.LikeUserIDs)
	assert.Empty(t, got.LikeUserIDs)
	assert.NotNil(t, got.RetweetUserIDs)
	assert.NotNil(t, got.Comments)
}

func TestTweetRepository_LikeUnlike(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTweetRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "likeauthor")
	liker := createTestUser(t, db, "liker")
	tweet := createTestTweet(t, db, author.ID, "likeable")

	require.NoError(t, repo.Like(ctx, liker.ID, tweet.ID))

	liked, err := repo.IsLiked(ctx, liker.ID, tweet.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	got, err := repo.GetByID(ctx, tweet.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{liker.ID}, got.LikeUserIDs)

	// Liking again must not create a second membership row.
	require.NoError(t, repo.Like(ctx, liker.ID, tweet.ID))
	got, err = repo.GetByID(ctx, tweet.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{liker.ID}, got.LikeUserIDs)

	require.NoError(t, repo.Unlike(ctx, liker.ID, tweet.ID))
	liked, err = repo.IsLiked(ctx, liker.ID, tweet.ID)
	require.NoError(t, err)
	assert.False(t, liked)
}

func TestTweetRepository_Retweet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTweetRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "rtauthor")
	sharer := createTestUser(t, db, "sharer")
	original := createTestTweet(t, db, author.ID, "original thought")

	retweet := &models.Tweet{
		Content:         "sharing this",
		UserID:          sharer.ID,
		OriginalTweetID: &original.ID,
	}
	require.NoError(t, repo.Retweet(ctx, retweet))

	got, err := repo.GetByID(ctx, retweet.ID)
	require.NoError(t, err)
	require.NotNil(t, got.OriginalTweet)
	assert.Equal(t, "original thought", got.OriginalTweet.Content)

	// The original's retweets set records the sharer.
	gotOriginal, err := repo.GetByID(ctx, original.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{sharer.ID}, gotOriginal.RetweetUserIDs)
}

func TestTweetRepository_Retweet_RequiresOriginal(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTweetRepository(db)

	err := repo.Retweet(context.Background(), &models.Tweet{Content: "x", UserID: 1})
	require.Error(t, err)
}

func TestTweetRepository_DeleteLeavesRetweets(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTweetRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "delauthor")
	sharer := createTestUser(t, db, "delsharer")
	original := createTestTweet(t, db, author.ID, "soon gone")

	retweet := &models.Tweet{UserID: sharer.ID, OriginalTweetID: &original.ID}
	require.NoError(t, repo.Retweet(ctx, retweet))

	require.NoError(t, repo.Delete(ctx, original.ID))

	_, err := repo.GetByID(ctx, original.ID)
	require.Error(t, err)

	// The retweet survives with a dangling reference.
	got, err := repo.GetByID(ctx, retweet.ID)
	require.NoError(t, err)
	require.NotNil(t, got.OriginalTweetID)
	assert.Equal(t, original.ID, *got.OriginalTweetID)
}

func TestTweetRepository_CommentsOrdered(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTweetRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "commauthor")
	commenter := createTestUser(t, db, "commenter")
	tweet := createTestTweet(t, db, author.ID, "discuss")

	for i := 0; i < 3; i++ {
		comment := &models.Comment{
			TweetID: tweet.ID,
			UserID:  commenter.ID,
			Content: fmt.Sprintf("comment %d", i),
		}
		require.NoError(t, repo.AddComment(ctx, comment))
	}

	got, err := repo.GetByID(ctx, tweet.ID)
	require.NoError(t, err)
	require.Len(t, got.Comments, 3)
	for i, comment := range got.Comments {
		assert.Equal(t, fmt.Sprintf("comment %d", i), comment.Content)
		require.NotNil(t, comment.User)
		assert.Equal(t, "commenter", comment.User.Username)
	}
}

func TestTweetRepository_Search_Pagination(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTweetRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "searchtweeter")
	for i := 0; i < 15; i++ {
		createTestTweet(t, db, author.ID, fmt.Sprintf("Gopher fact number %d", i))
	}
	createTestTweet(t, db, author.ID, "unrelated content")

	tweets, total, err := repo.Search(ctx, "gopher", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(15), total)
	assert.Len(t, tweets, 10)

	tweets, total, err = repo.Search(ctx, "GOPHER", 10, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(15), total)
	assert.Len(t, tweets, 5)
}

func TestTweetRepository_Feed(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTweetRepository(db)
	ctx := context.Background()

	followed := createTestUser(t, db, "feedfollowed")
	other := createTestUser(t, db, "feedother")

	for i := 0; i < 3; i++ {
		createTestTweet(t, db, followed.ID, fmt.Sprintf("followed %d", i))
	}
	createTestTweet(t, db, other.ID, "not in feed")

	tweets, total, err := repo.Feed(ctx, []uint{followed.ID}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, tweets, 3)
	for _, tweet := range tweets {
		assert.Equal(t, followed.ID, tweet.UserID)
	}

	// An empty following set yields an empty page without touching storage.
	tweets, total, err = repo.Feed(ctx, nil, 10, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, tweets)
}

func TestTweetRepository_ListNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTweetRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "orderauthor")
	first := createTestTweet(t, db, author.ID, "first")
	second := createTestTweet(t, db, author.ID, "second")

	tweets, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, tweets, 2)
	// Same-timestamp rows fall back to id ordering, newest first.
	assert.Equal(t, second.ID, tweets[0].ID)
	assert.Equal(t, first.ID, tweets[1].ID)
}

func TestTweetRepository_GetByID_CacheAside(t *testing.T) {
	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(nil) })

	db := setupTestDB(t)
	repo := NewTweetRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "cacheauthor")
	tweet := createTestTweet(t, db, author.ID, "cache me")

	got, err := repo.GetByID(ctx, tweet.ID)
	require.NoError(t, err)
	assert.True(t, mr.Exists(cache.TweetKey(tweet.ID)))

	// Subsequent reads are served from the cache, not the row.
	require.NoError(t, db.Model(&models.Tweet{}).Where("id = ?", tweet.ID).Update("content", "changed").Error)
	got, err = repo.GetByID(ctx, tweet.ID)
	require.NoError(t, err)
	assert.Equal(t, "cache me", got.Content)
	assert.Equal(t, "cacheauthor", got.User.Username)
	assert.Empty(t, got.LikeUserIDs)

	// Engagement writes invalidate the key so the next read sees the like.
	liker := createTestUser(t, db, "cacheliker")
	require.NoError(t, repo.Like(ctx, liker.ID, tweet.ID))
	assert.False(t, mr.Exists(cache.TweetKey(tweet.ID)))

	got, err = repo.GetByID(ctx, tweet.ID)
	require.NoError(t, err)
	assert.Equal(t, "changed", got.Content)
	assert.Equal(t, []uint{liker.ID}, got.LikeUserIDs)
}
