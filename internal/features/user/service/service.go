package service

import (
	"context"

	apperrors "affiliate-bot-backend/internal/common/errors"
	"affiliate-bot-backend/internal/features/user/models"
	"affiliate-bot-backend/internal/features/user/repository"
)

type UserService interface {
	GetUser(ctx context.Context, id int64) (*models.UserResponse, error)
	GetOrCreateUser(ctx context.Context, id int64, username string) (*models.UserResponse, error)
}

type userService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) GetUser(ctx context.Context, id int64) (*models.UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, apperrors.NewUserNotFoundError(id)
		}
		return nil, apperrors.NewStorageError("get user", err)
	}

	return toUserResponse(user), nil
}

func (s *userService) GetOrCreateUser(ctx context.Context, id int64, username string) (*models.UserResponse, error) {
	user, err := s.repo.GetOrCreate(ctx, id, username)
	if err != nil {
		return nil, apperrors.NewStorageError("get or create user", err)
	}

	return toUserResponse(user), nil
}

func toUserResponse(user *models.User) *models.UserResponse {
	return &models.UserResponse{
		ID:               user.ID,
		Username:         user.Username,
		TotalEarnings:    user.TotalEarnings,
		AvailableBalance: user.AvailableBalance,
		Revenue:          user.Revenue,
		Profit:           user.Profit,
		ActivePlatforms:  user.ActivePlatforms,
		ActivityLog:      user.ActivityLog,
		CreatedAt:        user.CreatedAt,
	}
}
