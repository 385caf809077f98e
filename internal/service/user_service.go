// Package service implements the business operations of the application.
package service

import (
	"context"

	"chirp/internal/models"
	"chirp/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// UserService implements account operations: profile maintenance, the follow
// graph, and user search.
type UserService struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
}

// UpdateProfileInput carries the fields of a partial profile update. An empty
// string means "leave unchanged".
type UpdateProfileInput struct {
	UserID   uint
	Username string
	Email    string
	Bio      string
}

// NewUserService creates a UserService backed by the given repositories.
func NewUserService(userRepo repository.UserRepository, followRepo repository.FollowRepository) *UserService {
	return &UserService{userRepo: userRepo, followRepo: followRepo}
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateProfile overwrites each provided field and leaves omitted fields
// unchanged. A username change is pre-checked against existing accounts;
// the storage layer's unique constraints back the check under races.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Username != "" && in.Username != user.Username {
		taken, err := s.userRepo.GetByUsername(ctx, in.Username)
		if err != nil {
			return nil, err
		}
		if taken != nil {
			return nil, models.NewConflictError("Username or email already exists.")
		}
		user.Username = in.Username
	}
	if in.Email != "" {
		user.Email = in.Email
	}
	if in.Bio != "" {
		user.Bio = in.Bio
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// ChangePassword verifies the current password and stores a hash of the new
// one. The failure message does not distinguish a missing user from a wrong
// password.
func (s *UserService) ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return models.NewValidationError("Current and new password are required")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return models.NewAuthError("Current password is wrong or user not found")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)) != nil {
		return models.NewAuthError("Current password is wrong or user not found")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return models.NewInternalError(err)
	}

	user.Password = string(hashed)
	return s.userRepo.Update(ctx, user)
}

// Follow adds a directed edge from actor to target. Duplicate follows are
// rejected and leave the graph unchanged.
func (s *UserService) Follow(ctx context.Context, actorID, targetID uint) error {
	if actorID == targetID {
		return models.NewValidationError("You cannot follow yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return err
	}
	return s.followRepo.Follow(ctx, actorID, targetID)
}

// Unfollow removes the edge from actor to target.
func (s *UserService) Unfollow(ctx context.Context, actorID, targetID uint) error {
	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return err
	}
	return s.followRepo.Unfollow(ctx, actorID, targetID)
}

// SearchUsers matches the query case-insensitively against username or email.
func (s *UserService) SearchUsers(ctx context.Context, query string, page, limit int) (*models.SearchPage, error) {
	offset := (page - 1) * limit
	users, total, err := s.userRepo.Search(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	return &models.SearchPage{
		Data:        users,
		Total:       total,
		Pages:       models.PageCount(total, limit),
		CurrentPage: page,
	}, nil
}
