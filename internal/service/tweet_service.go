package service

import (
	"context"

	"chirp/internal/models"
	"chirp/internal/repository"
)

// TweetService implements tweet operations: posting, deletion, engagement
// (likes, retweets, comments), listing, search, and the followed-authors feed.
type TweetService struct {
	tweetRepo  repository.TweetRepository
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
}

// NewTweetService creates a TweetService backed by the given repositories.
func NewTweetService(tweetRepo repository.TweetRepository, userRepo repository.UserRepository, followRepo repository.FollowRepository) *TweetService {
	return &TweetService{tweetRepo: tweetRepo, userRepo: userRepo, followRepo: followRepo}
}

func (s *TweetService) CreateTweet(ctx context.Context, userID uint, content string) (*models.Tweet, error) {
	if content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len([]rune(content)) > models.MaxTweetContentLen {
		return nil, models.NewValidationError("Content must be at most 280 characters")
	}

	tweet := &models.Tweet{Content: content, UserID: userID}
	if err := s.tweetRepo.Create(ctx, tweet); err != nil {
		return nil, err
	}
	return s.tweetRepo.GetByID(ctx, tweet.ID)
}

// DeleteTweet removes a tweet. Only the author may delete it; retweets
// referencing it are left untouched.
func (s *TweetService) DeleteTweet(ctx context.Context, userID, tweetID uint) error {
	tweet, err := s.tweetRepo.GetByID(ctx, tweetID)
	if err != nil {
		return err
	}
	if tweet.UserID != userID {
		return models.NewForbiddenError("You can only delete your own tweets")
	}
	return s.tweetRepo.Delete(ctx, tweetID)
}

// ToggleLike flips the acting account's membership in the tweet's likes set
// and returns the updated tweet.
func (s *TweetService) ToggleLike(ctx context.Context, userID, tweetID uint) (*models.Tweet, error) {
	if _, err := s.tweetRepo.GetByID(ctx, tweetID); err != nil {
		return nil, err
	}

	liked, err := s.tweetRepo.IsLiked(ctx, userID, tweetID)
	if err != nil {
		return nil, err
	}
	if liked {
		err = s.tweetRepo.Unlike(ctx, userID, tweetID)
	} else {
		err = s.tweetRepo.Like(ctx, userID, tweetID)
	}
	if err != nil {
		return nil, err
	}

	return s.tweetRepo.GetByID(ctx, tweetID)
}

// Retweet creates a new tweet referencing the original and records the acting
// account in the original's retweets set, atomically.
func (s *TweetService) Retweet(ctx context.Context, userID, tweetID uint, content string) (*models.Tweet, error) {
	if len([]rune(content)) > models.MaxTweetContentLen {
		return nil, models.NewValidationError("Content must be at most 280 characters")
	}

	original, err := s.tweetRepo.GetByID(ctx, tweetID)
	if err != nil {
		return nil, err
	}

	retweet := &models.Tweet{
		Content:         content,
		UserID:          userID,
		OriginalTweetID: &original.ID,
	}
	if err := s.tweetRepo.Retweet(ctx, retweet); err != nil {
		return nil, err
	}
	return s.tweetRepo.GetByID(ctx, retweet.ID)
}

// Comment appends an entry to the tweet's ordered comment sequence and
// returns the updated tweet.
func (s *TweetService) Comment(ctx context.Context, userID, tweetID uint, content string) (*models.Tweet, error) {
	if content == "" {
		return nil, models.NewValidationError("Content is required")
	}

	if _, err := s.tweetRepo.GetByID(ctx, tweetID); err != nil {
		return nil, err
	}

	comment := &models.Comment{Content: content, UserID: userID, TweetID: tweetID}
	if err := s.tweetRepo.AddComment(ctx, comment); err != nil {
		return nil, err
	}

	return s.tweetRepo.GetByID(ctx, tweetID)
}

func (s *TweetService) ListTweets(ctx context.Context) ([]*models.Tweet, error) {
	return s.tweetRepo.List(ctx)
}

func (s *TweetService) ListByAuthor(ctx context.Context, authorID uint) ([]*models.Tweet, error) {
	return s.tweetRepo.ListByAuthor(ctx, authorID)
}

// SearchTweets matches the query case-insensitively against tweet content.
func (s *TweetService) SearchTweets(ctx context.Context, query string, page, limit int) (*models.SearchPage, error) {
	offset := (page - 1) * limit
	tweets, total, err := s.tweetRepo.Search(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	return &models.SearchPage{
		Data:        tweets,
		Total:       total,
		Pages:       models.PageCount(total, limit),
		CurrentPage: page,
	}, nil
}

// Feed returns tweets authored by accounts the acting account follows,
// newest first. The acting account is re-resolved and a stale identity
// yields a not-found failure.
func (s *TweetService) Feed(ctx context.Context, userID uint, page, limit int) (*models.FeedPage, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	following, err := s.followRepo.FollowingIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	offset := (page - 1) * limit
	tweets, total, err := s.tweetRepo.Feed(ctx, following, limit, offset)
	if err != nil {
		return nil, err
	}

	return &models.FeedPage{
		Tweets:      tweets,
		CurrentPage: page,
		TotalPages:  models.PageCount(total, limit),
		TotalTweets: total,
	}, nil
}
