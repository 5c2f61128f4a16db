package service

import (
	"context"
	"fmt"

	"eventhorizon/internal/apperrors"
	"eventhorizon/internal/cache"
	"eventhorizon/internal/logger"
	"eventhorizon/internal/middleware"
	"eventhorizon/internal/models"
	"eventhorizon/internal/repository"
)

type UserService struct {
	userRepo     *repository.UserRepository
	valkeyClient *cache.ValkeyClient
}

func NewUserService(userRepo *repository.UserRepository, valkeyClient *cache.ValkeyClient) *UserService {
	return &UserService{
		userRepo:     userRepo,
		valkeyClient: valkeyClient,
	}
}

// Register creates an account and grants the default user role.
func (s *UserService) Register(ctx context.Context, req *models.RegisterUserRequest) (*models.User, error) {
	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: email already registered", apperrors.ErrConflict)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: middleware.HashPassword(req.Password),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, apperrors.TranslateDB(err)
	}

	if _, err := s.userRepo.GrantRole(ctx, user.ID, models.RoleUser); err != nil {
		return nil, fmt.Errorf("failed to grant default role: %w", err)
	}
	user.Roles = []string{models.RoleUser}

	return user, nil
}

// Login verifies credentials and returns the user with roles filled in.
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	passwordHash := middleware.HashPassword(req.Password)
	if user == nil || user.PasswordHash != passwordHash {
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}

	user.Roles, err = s.userRepo.GetRoles(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get roles: %w", err)
	}

	// Прогреваем кеш учетных данных, ошибки не критичны
	if s.valkeyClient != nil {
		if err := s.valkeyClient.SetUserAuth(ctx, user.Email, passwordHash, user.ID); err != nil {
			logger.WithContext(ctx).Warn("Failed to cache user credentials", "error", err)
		}
	}

	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %s", apperrors.ErrNotFound, id)
	}

	user.Roles, err = s.userRepo.GetRoles(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get roles: %w", err)
	}

	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Delete removes a user. Organized events, their tickets and attendees, and
// the user's own registrations go with it (ON DELETE CASCADE).
func (s *UserService) Delete(ctx context.Context, id string) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("%w: user %s", apperrors.ErrNotFound, id)
	}

	deleted, err := s.userRepo.Delete(ctx, id)
	if err != nil {
		return apperrors.TranslateDB(err)
	}
	if !deleted {
		return fmt.Errorf("%w: user %s", apperrors.ErrNotFound, id)
	}

	// Сбрасываем закешированные учетные данные удаленного пользователя
	if s.valkeyClient != nil {
		if err := s.valkeyClient.InvalidateUserAuth(ctx, user.Email, user.PasswordHash); err != nil {
			logger.WithContext(ctx).Warn("Failed to invalidate cached credentials",
				"error", err,
				"user_id", id)
		}
	}

	return nil
}

// GrantRole assigns a named role to a user and returns the updated role list.
func (s *UserService) GrantRole(ctx context.Context, userID, role string) ([]string, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %s", apperrors.ErrNotFound, userID)
	}

	exists, err := s.userRepo.RoleExists(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("failed to check role: %w", err)
	}
	if !exists {
		return nil, apperrors.Validation("role", "unknown role")
	}

	if _, err := s.userRepo.GrantRole(ctx, userID, role); err != nil {
		return nil, apperrors.TranslateDB(err)
	}

	return s.userRepo.GetRoles(ctx, userID)
}

func (s *UserService) ListRoles(ctx context.Context) ([]models.Role, error) {
	return s.userRepo.ListRoles(ctx)
}
