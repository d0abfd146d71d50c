package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/speaksmart/speaksmart-api/internal/models"
	appErrors "github.com/speaksmart/speaksmart-api/pkg/errors"
)

type userRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Upsert(ctx context.Context, user *models.User) (*models.User, error)
	List(ctx context.Context, role models.UserRole) ([]models.User, error)
	ListPopularInstructors(ctx context.Context, limit int) ([]models.InstructorRanking, error)
}

// UserService provides profile and instructor-listing use cases.
type UserService struct {
	repo         userRepository
	validator    *validator.Validate
	logger       *zap.Logger
	popularLimit int
}

// NewUserService constructs UserService.
func NewUserService(repo userRepository, validate *validator.Validate, logger *zap.Logger, popularLimit int) *UserService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if popularLimit <= 0 {
		popularLimit = 6
	}
	return &UserService{repo: repo, validator: validate, logger: logger, popularLimit: popularLimit}
}

// Upsert creates or refreshes the profile keyed by email.
func (s *UserService) Upsert(ctx context.Context, email string, req models.UpsertUserRequest) (*models.User, error) {
	if email == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "email is required")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid user payload")
	}

	user := &models.User{
		Email:    email,
		Name:     req.Name,
		PhotoURL: req.PhotoURL,
		Role:     req.Role,
	}
	stored, err := s.repo.Upsert(ctx, user)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save user")
	}
	return stored, nil
}

// Get returns the profile for an email.
func (s *UserService) Get(ctx context.Context, email string) (*models.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}
	return user, nil
}

// List returns all users.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.List(ctx, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list users")
	}
	return users, nil
}

// ListInstructors returns every instructor account.
func (s *UserService) ListInstructors(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.List(ctx, models.RoleInstructor)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list instructors")
	}
	return users, nil
}

// ListPopularInstructors ranks instructors by approved-class enrollment.
func (s *UserService) ListPopularInstructors(ctx context.Context) ([]models.InstructorRanking, error) {
	rankings, err := s.repo.ListPopularInstructors(ctx, s.popularLimit)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list popular instructors")
	}
	return rankings, nil
}
