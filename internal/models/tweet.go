package models

import (
	"time"

	"gorm.io/gorm"
)

// MaxTweetContentLen is the storage contract for tweet content length.
const MaxTweetContentLen = 280

// Tweet represents a single short text update. A retweet is a Tweet whose
// OriginalTweetID points at the tweet it shares; deleting the original does
// not cascade, so the reference may dangle.
type Tweet struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	Content         string `gorm:"size:280" json:"content"`
	UserID          uint   `gorm:"not null;index" json:"authorId"`
	User            *User  `gorm:"foreignKey:UserID" json:"author,omitempty"`
	OriginalTweetID *uint  `gorm:"index" json:"originalTweetId,omitempty"`
	OriginalTweet   *Tweet `gorm:"foreignKey:OriginalTweetID" json:"originalTweet,omitempty"`

	// LikeUserIDs and RetweetUserIDs mirror the original document shape:
	// sets of account ids, populated from the likes/retweets tables at read time.
	LikeUserIDs    []uint    `gorm:"-" json:"likes"`
	RetweetUserIDs []uint    `gorm:"-" json:"retweets"`
	Comments       []Comment `gorm:"foreignKey:TweetID" json:"comments"`

	CreatedAt time.Time      `json:"createdAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Like marks that a user currently likes a tweet. The UserID+TweetID pair is
// unique; toggle semantics insert or delete the row.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_like_user_tweet" json:"userId"`
	TweetID   uint      `gorm:"not null;uniqueIndex:idx_like_user_tweet" json:"tweetId"`
	CreatedAt time.Time `json:"createdAt"`
}

// Retweet records that a user retweeted the referenced original tweet.
// The retweet itself is a separate Tweet row; this edge backs the original's
// retweets set.
type Retweet struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_retweet_user_tweet" json:"userId"`
	TweetID   uint      `gorm:"not null;uniqueIndex:idx_retweet_user_tweet" json:"tweetId"`
	CreatedAt time.Time `json:"createdAt"`
}

// Comment is one entry in a tweet's ordered comment sequence.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Content   string    `gorm:"not null" json:"content"`
	UserID    uint      `gorm:"not null" json:"authorId"`
	User      *User     `gorm:"foreignKey:UserID" json:"author,omitempty"`
	TweetID   uint      `gorm:"not null;index" json:"tweetId"`
	CreatedAt time.Time `json:"createdAt"`
}
