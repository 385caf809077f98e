// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"chirp/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumTweets   int
	ShouldClean bool
}

// Seeder populates the database with generated data.
type Seeder struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewSeeder creates a Seeder bound to the given database.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes all seeded data. Order matters for foreign keys.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	tables := []any{
		&models.Comment{},
		&models.Like{},
		&models.Retweet{},
		&models.Follow{},
		&models.Tweet{},
		&models.User{},
	}
	for _, table := range tables {
		if err := s.db.Unscoped().Where("1 = 1").Delete(table).Error; err != nil {
			return fmt.Errorf("failed to clear %T: %w", table, err)
		}
	}
	return nil
}

// Seed populates the database with users, a follow graph, tweets, and
// engagement. All seeded users share the password "password123".
func (s *Seeder) Seed(opts Options) error {
	log.Printf("Seeding %d users and %d tweets...", opts.NumUsers, opts.NumTweets)

	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return err
		}
	}

	users, err := s.createUsers(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("created %d users", len(users))

	if err := s.createFollowGraph(users); err != nil {
		return fmt.Errorf("failed to create follow graph: %w", err)
	}

	tweets, err := s.createTweets(users, opts.NumTweets)
	if err != nil {
		return fmt.Errorf("failed to create tweets: %w", err)
	}
	log.Printf("created %d tweets", len(tweets))

	if err := s.createEngagement(users, tweets); err != nil {
		return fmt.Errorf("failed to create engagement: %w", err)
	}

	log.Println("Seeding complete")
	return nil
}

func (s *Seeder) createUsers(count int) ([]*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, count)
	for i := 0; i < count; i++ {
		username := strings.ToLower(gofakeit.Username())
		user := &models.User{
			Username: fmt.Sprintf("%s%d", username, i),
			Email:    fmt.Sprintf("%s%d@%s", username, i, gofakeit.DomainName()),
			Password: string(hashed),
			Bio:      gofakeit.Sentence(8),
		}
		if err := s.db.Create(user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// createFollowGraph gives each user a handful of random followees and keeps
// the denormalized counters in sync.
func (s *Seeder) createFollowGraph(users []*models.User) error {
	if len(users) < 2 {
		return nil
	}
	for _, follower := range users {
		followCount := 1 + s.rng.Intn(min(8, len(users)-1))
		seen := map[uint]bool{follower.ID: true}
		for j := 0; j < followCount; j++ {
			target := users[s.rng.Intn(len(users))]
			if seen[target.ID] {
				continue
			}
			seen[target.ID] = true

			err := s.db.Transaction(func(tx *gorm.DB) error {
				edge := &models.Follow{FollowerID: follower.ID, FolloweeID: target.ID}
				if err := tx.Create(edge).Error; err != nil {
					return err
				}
				if err := tx.Model(&models.User{}).Where("id = ?", target.ID).
					UpdateColumn("followers_count", gorm.Expr("followers_count + 1")).Error; err != nil {
					return err
				}
				return tx.Model(&models.User{}).Where("id = ?", follower.ID).
					UpdateColumn("following_count", gorm.Expr("following_count + 1")).Error
			})
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Seeder) createTweets(users []*models.User, count int) ([]*models.Tweet, error) {
	tweets := make([]*models.Tweet, 0, count)
	for i := 0; i < count; i++ {
		author := users[s.rng.Intn(len(users))]
		content := gofakeit.Sentence(6 + s.rng.Intn(12))
		if len(content) > models.MaxTweetContentLen {
			content = content[:models.MaxTweetContentLen]
		}
		tweet := &models.Tweet{
			Content: content,
			UserID:  author.ID,
		}
		if err := s.db.Create(tweet).Error; err != nil {
			return nil, err
		}
		tweets = append(tweets, tweet)
	}
	return tweets, nil
}

// createEngagement sprinkles likes, comments, and retweets over the seeded
// tweets.
func (s *Seeder) createEngagement(users []*models.User, tweets []*models.Tweet) error {
	if len(tweets) == 0 {
		return nil
	}

	for _, tweet := range tweets {
		likeCount := s.rng.Intn(min(6, len(users)))
		for j := 0; j < likeCount; j++ {
			liker := users[s.rng.Intn(len(users))]
			like := &models.Like{UserID: liker.ID, TweetID: tweet.ID}
			if err := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(like).Error; err != nil {
				return err
			}
		}

		if s.rng.Intn(3) == 0 {
			commenter := users[s.rng.Intn(len(users))]
			comment := &models.Comment{
				TweetID: tweet.ID,
				UserID:  commenter.ID,
				Content: gofakeit.Sentence(5 + s.rng.Intn(8)),
			}
			if err := s.db.Create(comment).Error; err != nil {
				return err
			}
		}

		if s.rng.Intn(5) == 0 {
			retweeter := users[s.rng.Intn(len(users))]
			err := s.db.Transaction(func(tx *gorm.DB) error {
				rt := &models.Tweet{
					Content:         gofakeit.Sentence(4),
					UserID:          retweeter.ID,
					OriginalTweetID: &tweet.ID,
				}
				if err := tx.Create(rt).Error; err != nil {
					return err
				}
				edge := &models.Retweet{UserID: retweeter.ID, TweetID: tweet.ID}
				return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(edge).Error
			})
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
