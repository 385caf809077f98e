package repository

import (
	"context"
	"errors"
	"strings"

	"chirp/internal/cache"
	"chirp/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TweetRepository defines the interface for tweet data operations.
type TweetRepository interface {
	Create(ctx context.Context, tweet *models.Tweet) error
	GetByID(ctx context.Context, id uint) (*models.Tweet, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]*models.Tweet, error)
	ListByAuthor(ctx context.Context, authorID uint) ([]*models.Tweet, error)
	Search(ctx context.Context, query string, limit, offset int) ([]*models.Tweet, int64, error)
	Feed(ctx context.Context, authorIDs []uint, limit, offset int) ([]*models.Tweet, int64, error)
	IsLiked(ctx context.Context, userID, tweetID uint) (bool, error)
	Like(ctx context.Context, userID, tweetID uint) error
	Unlike(ctx context.Context, userID, tweetID uint) error
	Retweet(ctx context.Context, retweet *models.Tweet) error
	AddComment(ctx context.Context, comment *models.Comment) error
}

// tweetRepository implements TweetRepository.
type tweetRepository struct {
	db *gorm.DB
}

// NewTweetRepository creates a new tweet repository.
func NewTweetRepository(db *gorm.DB) TweetRepository {
	return &tweetRepository{db: db}
}

// withDetails preloads the author, the ordered comment sequence, and the
// original tweet for retweets.
func (r *tweetRepository) withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Preload("Comments.User").
		Preload("OriginalTweet").
		Preload("OriginalTweet.User")
}

func (r *tweetRepository) Create(ctx context.Context, tweet *models.Tweet) error {
	if err := r.db.WithContext(ctx).Create(tweet).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// GetByID is cache-aside: the fully populated tweet round-trips through its
// JSON form, and every engagement write invalidates the key.
func (r *tweetRepository) GetByID(ctx context.Context, id uint) (*models.Tweet, error) {
	var tweet models.Tweet
	err := cache.Aside(ctx, cache.TweetKey(id), &tweet, cache.TweetTTL, func() error {
		if err := r.withDetails(r.db.WithContext(ctx)).First(&tweet, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Tweet", id)
			}
			return models.NewInternalError(err)
		}
		return r.populateEngagement(ctx, []*models.Tweet{&tweet})
	})
	if err != nil {
		return nil, err
	}
	return &tweet, nil
}

func (r *tweetRepository) Delete(ctx context.Context, id uint) error {
	// No cascade: retweets keep their originalTweetId reference.
	if err := r.db.WithContext(ctx).Delete(&models.Tweet{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateTweet(ctx, id)
	return nil
}

func (r *tweetRepository) List(ctx context.Context) ([]*models.Tweet, error) {
	tweets := make([]*models.Tweet, 0)
	if err := r.withDetails(r.db.WithContext(ctx)).
		Order("created_at DESC, id DESC").
		Find(&tweets).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := r.populateEngagement(ctx, tweets); err != nil {
		return nil, err
	}
	return tweets, nil
}

func (r *tweetRepository) ListByAuthor(ctx context.Context, authorID uint) ([]*models.Tweet, error) {
	tweets := make([]*models.Tweet, 0)
	if err := r.withDetails(r.db.WithContext(ctx)).
		Where("user_id = ?", authorID).
		Order("created_at DESC, id DESC").
		Find(&tweets).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := r.populateEngagement(ctx, tweets); err != nil {
		return nil, err
	}
	return tweets, nil
}

func (r *tweetRepository) Search(ctx context.Context, query string, limit, offset int) ([]*models.Tweet, int64, error) {
	tweets := make([]*models.Tweet, 0)
	like := "%" + strings.ToLower(query) + "%"

	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.Tweet{}).
		Where("LOWER(content) LIKE ?", like).
		Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	if err := r.withDetails(r.db.WithContext(ctx)).
		Where("LOWER(content) LIKE ?", like).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&tweets).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	if err := r.populateEngagement(ctx, tweets); err != nil {
		return nil, 0, err
	}
	return tweets, total, nil
}

func (r *tweetRepository) Feed(ctx context.Context, authorIDs []uint, limit, offset int) ([]*models.Tweet, int64, error) {
	tweets := make([]*models.Tweet, 0)
	if len(authorIDs) == 0 {
		return tweets, 0, nil
	}

	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.Tweet{}).
		Where("user_id IN ?", authorIDs).
		Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	if err := r.withDetails(r.db.WithContext(ctx)).
		Where("user_id IN ?", authorIDs).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&tweets).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	if err := r.populateEngagement(ctx, tweets); err != nil {
		return nil, 0, err
	}
	return tweets, total, nil
}

func (r *tweetRepository) IsLiked(ctx context.Context, userID, tweetID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND tweet_id = ?", userID, tweetID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *tweetRepository) Like(ctx context.Context, userID, tweetID uint) error {
	// ON CONFLICT DO NOTHING keeps the toggle race-free: concurrent likes by
	// the same account collapse into one membership row.
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Like{UserID: userID, TweetID: tweetID}).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateTweet(ctx, tweetID)
	return nil
}

func (r *tweetRepository) Unlike(ctx context.Context, userID, tweetID uint) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND tweet_id = ?", userID, tweetID).
		Delete(&models.Like{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateTweet(ctx, tweetID)
	return nil
}

func (r *tweetRepository) Retweet(ctx context.Context, retweet *models.Tweet) error {
	if retweet.OriginalTweetID == nil {
		return models.NewValidationError("Retweet requires an original tweet")
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(retweet).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := tx.
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.Retweet{UserID: retweet.UserID, TweetID: *retweet.OriginalTweetID}).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	cache.InvalidateTweet(ctx, *retweet.OriginalTweetID)
	return nil
}

func (r *tweetRepository) AddComment(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateTweet(ctx, comment.TweetID)
	return nil
}

// populateEngagement fills the likes and retweets id sets for the given
// tweets (and their preloaded originals) in two batched queries.
func (r *tweetRepository) populateEngagement(ctx context.Context, tweets []*models.Tweet) error {
	targets := make(map[uint][]*models.Tweet)
	ids := make([]uint, 0, len(tweets))
	add := func(t *models.Tweet) {
		if t == nil {
			return
		}
		if _, seen := targets[t.ID]; !seen {
			ids = append(ids, t.ID)
		}
		targets[t.ID] = append(targets[t.ID], t)
	}
	for _, t := range tweets {
		add(t)
		add(t.OriginalTweet)
	}

	for _, group := range targets {
		for _, t := range group {
			t.LikeUserIDs = make([]uint, 0)
			t.RetweetUserIDs = make([]uint, 0)
			if t.Comments == nil {
				t.Comments = make([]models.Comment, 0)
			}
		}
	}
	if len(ids) == 0 {
		return nil
	}

	var likes []models.Like
	if err := r.db.WithContext(ctx).
		Where("tweet_id IN ?", ids).
		Order("created_at ASC, id ASC").
		Find(&likes).Error; err != nil {
		return models.NewInternalError(err)
	}
	for _, like := range likes {
		for _, t := range targets[like.TweetID] {
			t.LikeUserIDs = append(t.LikeUserIDs, like.UserID)
		}
	}

	var retweets []models.Retweet
	if err := r.db.WithContext(ctx).
		Where("tweet_id IN ?", ids).
		Order("created_at ASC, id ASC").
		Find(&retweets).Error; err != nil {
		return models.NewInternalError(err)
	}
	for _, rt := range retweets {
		for _, t := range targets[rt.TweetID] {
			t.RetweetUserIDs = append(t.RetweetUserIDs, rt.UserID)
		}
	}

	return nil
}
