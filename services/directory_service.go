package services

import (
	"context"
	"errors"

	"restaurant-service/apperrors"
	"restaurant-service/auth"
	"restaurant-service/models"
	"restaurant-service/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DirectoryService manages the Manager and Delivery-crew rosters. All
// mutations require a Manager actor; an actor must already hold the role to
// grant it, so Manager self-granting is impossible by construction and
// bootstrapping is left to external seeding.
type DirectoryService interface {
	ListMembers(ctx context.Context, id *auth.Identity, group string) ([]models.User, *apperrors.Error)
	AddMember(ctx context.Context, id *auth.Identity, group, username string) (*models.User, *apperrors.Error)
	RemoveMember(ctx context.Context, id *auth.Identity, group string, userID uuid.UUID) *apperrors.Error
}

type directoryServiceImpl struct {
	users  repository.UserRepository
	logger *zap.Logger
}

// NewDirectoryService creates a new DirectoryService.
func NewDirectoryService(users repository.UserRepository, logger *zap.Logger) DirectoryService {
	return &directoryServiceImpl{users: users, logger: logger}
}

// ListMembers returns all users in the named group.
func (s *directoryServiceImpl) ListMembers(ctx context.Context, id *auth.Identity, group string) ([]models.User, *apperrors.Error) {
	if authErr := auth.Authorize(id, auth.ActionRead, auth.ResourceRoster); authErr != nil {
		return nil, authErr
	}

	users, err := s.users.FindByGroup(ctx, group)
	if err != nil {
		s.logger.Error("Failed to list group members", zap.String("group", group), zap.Error(err))
		return nil, apperrors.Internal("Failed to fetch group members", err)
	}
	return users, nil
}

// AddMember adds the named user to the group. Adding an existing member is
// idempotent.
func (s *directoryServiceImpl) AddMember(ctx context.Context, id *auth.Identity, group, username string) (*models.User, *apperrors.Error) {
	if authErr := auth.Authorize(id, auth.ActionWrite, auth.ResourceRoster); authErr != nil {
		return nil, authErr
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("User not found")
		}
		s.logger.Error("Failed to fetch user", zap.String("username", username), zap.Error(err))
		return nil, apperrors.Internal("Failed to add group member", err)
	}

	if !user.InGroup(group) {
		if err := s.users.AddToGroup(ctx, user.ID, group); err != nil {
			s.logger.Error("Failed to add user to group", zap.String("group", group), zap.Error(err))
			return nil, apperrors.Internal("Failed to add group member", err)
		}
	}

	s.logger.Info("User added to group",
		zap.String("username", username),
		zap.String("group", group),
		zap.String("actor", id.Username),
	)
	return user, nil
}

// RemoveMember removes the user from the group. Removing the last member of
// a role is allowed; no floor is enforced.
func (s *directoryServiceImpl) RemoveMember(ctx context.Context, id *auth.Identity, group string, userID uuid.UUID) *apperrors.Error {
	if authErr := auth.Authorize(id, auth.ActionWrite, auth.ResourceRoster); authErr != nil {
		return authErr
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("User not found")
		}
		s.logger.Error("Failed to fetch user", zap.String("user_id", userID.String()), zap.Error(err))
		return apperrors.Internal("Failed to remove group member", err)
	}
	if !user.InGroup(group) {
		return apperrors.NotFound("User is not in the group")
	}

	if err := s.users.RemoveFromGroup(ctx, userID, group); err != nil {
		s.logger.Error("Failed to remove user from group", zap.String("group", group), zap.Error(err))
		return apperrors.Internal("Failed to remove group member", err)
	}

	s.logger.Info("User removed from group",
		zap.String("username", user.Username),
		zap.String("group", group),
		zap.String("actor", id.Username),
	)
	return nil
}
