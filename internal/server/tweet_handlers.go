package server

import (
	"chirp/internal/models"

	"github.com/gofiber/fiber/v2"
)

type tweetRequest struct {
	Content string `json:"content"`
}

// GetTweets handles GET /api/tweets. Authentication is optional and does
// not change the response shape.
func (s *Server) GetTweets(c *fiber.Ctx) error {
	if userID, ok := s.optionalUserID(c); ok {
		c.Locals("userID", userID)
	}

	tweets, err := s.tweetService.ListTweets(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(tweets)
}

// SearchTweets handles GET /api/tweets/search?q=...&page=...&limit=...
func (s *Server) SearchTweets(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Search query is required"))
	}

	page, limit := parsePageLimit(c)
	result, err := s.tweetService.SearchTweets(c.Context(), query, page, limit)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

// GetUserTweets handles GET /api/tweets/user/:userId.
func (s *Server) GetUserTweets(c *fiber.Ctx) error {
	authorID, err := parseUintParam(c, "userId")
	if err != nil {
		return respondServiceError(c, err)
	}

	tweets, svcErr := s.tweetService.ListByAuthor(c.Context(), authorID)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.Status(fiber.StatusOK).JSON(tweets)
}

// GetFeed handles GET /api/tweets/feed, the paginated timeline of tweets
// written by accounts the caller follows.
func (s *Server) GetFeed(c *fiber.Ctx) error {
	page, limit := parsePageLimit(c)
	feed, err := s.tweetService.Feed(c.Context(), currentUserID(c), page, limit)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(feed)
}

// CreateTweet handles POST /api/tweets.
func (s *Server) CreateTweet(c *fiber.Ctx) error {
	var req tweetRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	tweet, err := s.tweetService.CreateTweet(c.Context(), currentUserID(c), req.Content)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tweet)
}

// DeleteTweet handles DELETE /api/tweets/:tweetId. Only the author may
// delete a tweet.
func (s *Server) DeleteTweet(c *fiber.Ctx) error {
	tweetID, err := parseUintParam(c, "tweetId")
	if err != nil {
		return respondServiceError(c, err)
	}

	if err := s.tweetService.DeleteTweet(c.Context(), currentUserID(c), tweetID); err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Tweet deleted successfully",
	})
}

// LikeTweet handles POST /api/tweets/:tweetId/like. A second like from the
// same account removes the first one.
func (s *Server) LikeTweet(c *fiber.Ctx) error {
	tweetID, err := parseUintParam(c, "tweetId")
	if err != nil {
		return respondServiceError(c, err)
	}

	tweet, svcErr := s.tweetService.ToggleLike(c.Context(), currentUserID(c), tweetID)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.Status(fiber.StatusOK).JSON(tweet)
}

// RetweetTweet handles POST /api/tweets/:tweetId/retweet.
func (s *Server) RetweetTweet(c *fiber.Ctx) error {
	tweetID, err := parseUintParam(c, "tweetId")
	if err != nil {
		return respondServiceError(c, err)
	}

	var req tweetRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	tweet, svcErr := s.tweetService.Retweet(c.Context(), currentUserID(c), tweetID, req.Content)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.Status(fiber.StatusCreated).JSON(tweet)
}

// CommentTweet handles POST /api/tweets/:tweetId/comment.
func (s *Server) CommentTweet(c *fiber.Ctx) error {
	tweetID, err := parseUintParam(c, "tweetId")
	if err != nil {
		return respondServiceError(c, err)
	}

	var req tweetRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	tweet, svcErr := s.tweetService.Comment(c.Context(), currentUserID(c), tweetID, req.Content)
	if svcErr != nil {
		return respondServiceError(c, svcErr)
	}
	return c.Status(fiber.StatusOK).JSON(tweet)
}
