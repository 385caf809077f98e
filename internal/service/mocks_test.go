package service

import (
	"context"

	"chirp/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock of the repository.UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Search(ctx context.Context, query string, limit, offset int) ([]models.User, int64, error) {
	args := m.Called(ctx, query, limit, offset)
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

// MockFollowRepository is a mock of the repository.FollowRepository interface
type MockFollowRepository struct {
	mock.Mock
}

func (m *MockFollowRepository) Follow(ctx context.Context, followerID, followeeID uint) error {
	args := m.Called(ctx, followerID, followeeID)
	return args.Error(0)
}

func (m *MockFollowRepository) Unfollow(ctx context.Context, followerID, followeeID uint) error {
	args := m.Called(ctx, followerID, followeeID)
	return args.Error(0)
}

func (m *MockFollowRepository) IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error) {
	args := m.Called(ctx, followerID, followeeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowRepository) FollowingIDs(ctx context.Context, followerID uint) ([]uint, error) {
	args := m.Called(ctx, followerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

// MockTweetRepository is a mock of the repository.TweetRepository interface
type MockTweetRepository struct {
	mock.Mock
}

func (m *MockTweetRepository) Create(ctx context.Context, tweet *models.Tweet) error {
	args := m.Called(ctx, tweet)
	return args.Error(0)
}

func (m *MockTweetRepository) GetByID(ctx context.Context, id uint) (*models.Tweet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tweet), args.Error(1)
}

func (m *MockTweetRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTweetRepository) List(ctx context.Context) ([]*models.Tweet, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Tweet), args.Error(1)
}

func (m *MockTweetRepository) ListByAuthor(ctx context.Context, authorID uint) ([]*models.Tweet, error) {
	args := m.Called(ctx, authorID)
	return args.Get(0).([]*models.Tweet), args.Error(1)
}

func (m *MockTweetRepository) Search(ctx context.Context, query string, limit, offset int) ([]*models.Tweet, int64, error) {
	args := m.Called(ctx, query, limit, offset)
	return args.Get(0).([]*models.Tweet), args.Get(1).(int64), args.Error(2)
}

func (m *MockTweetRepository) Feed(ctx context.Context, authorIDs []uint, limit, offset int) ([]*models.Tweet, int64, error) {
	args := m.Called(ctx, authorIDs, limit, offset)
	return args.Get(0).([]*models.Tweet), args.Get(1).(int64), args.Error(2)
}

func (m *MockTweetRepository) IsLiked(ctx context.Context, userID, tweetID uint) (bool, error) {
	args := m.Called(ctx, userID, tweetID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTweetRepository) Like(ctx context.Context, userID, tweetID uint) error {
	args := m.Called(ctx, userID, tweetID)
	return args.Error(0)
}

func (m *MockTweetRepository) Unlike(ctx context.Context, userID, tweetID uint) error {
	args := m.Called(ctx, userID, tweetID)
	return args.Error(0)
}

func (m *MockTweetRepository) Retweet(ctx context.Context, retweet *models.Tweet) error {
	args := m.Called(ctx, retweet)
	return args.Error(0)
}

func (m *MockTweetRepository) AddComment(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}
