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

const popularClassesCacheKey = "classes:popular"

type classRepository interface {
	Create(ctx context.Context, class *models.Class) error
	FindByID(ctx context.Context, id string) (*models.Class, error)
	List(ctx context.Context, status models.ClassStatus) ([]models.Class, error)
	ListByInstructor(ctx context.Context, instructorEmail string) ([]models.Class, error)
	ListPopular(ctx context.Context, limit int) ([]models.Class, error)
	Approve(ctx context.Context, id string) (*models.Class, error)
	Update(ctx context.Context, id string, req models.UpdateClassRequest) (*models.Class, error)
}

// ClassService implements the class lifecycle: proposal, review, approval
// and the public catalog views.
type ClassService struct {
	repo         classRepository
	cache        *CacheService
	validator    *validator.Validate
	logger       *zap.Logger
	popularLimit int
}

// NewClassService constructs ClassService. A nil cache disables the
// popular-classes cache.
func NewClassService(repo classRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger, popularLimit int) *ClassService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if popularLimit <= 0 {
		popularLimit = 6
	}
	return &ClassService{repo: repo, cache: cache, validator: validate, logger: logger, popularLimit: popularLimit}
}

// Create registers a new class proposal. Every proposal enters the catalog
// as pending regardless of the payload.
func (s *ClassService) Create(ctx context.Context, req models.CreateClassRequest) (*models.Class, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid class payload")
	}

	class := &models.Class{
		Name:            req.Name,
		ImageURL:        req.ImageURL,
		InstructorName:  req.InstructorName,
		InstructorEmail: req.InstructorEmail,
		Price:           req.Price,
		AvailableSeats:  req.AvailableSeats,
	}
	if err := s.repo.Create(ctx, class); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create class")
	}

	s.logger.Info("class proposed",
		zap.String("class_id", class.ID),
		zap.String("instructor_email", class.InstructorEmail),
	)
	return class, nil
}

// List returns classes, optionally filtered by lifecycle status. An
// unrecognized filter value yields an empty listing rather than an error.
func (s *ClassService) List(ctx context.Context, statusFilter string) ([]models.Class, error) {
	status := models.ClassStatus(statusFilter)
	if statusFilter != "" && !status.Valid() {
		return []models.Class{}, nil
	}

	classes, err := s.repo.List(ctx, status)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list classes")
	}
	if classes == nil {
		classes = []models.Class{}
	}
	return classes, nil
}

// ListByInstructor returns every class an instructor has proposed,
// approved or not.
func (s *ClassService) ListByInstructor(ctx context.Context, instructorEmail string) ([]models.Class, error) {
	if instructorEmail == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "instructor email is required")
	}
	classes, err := s.repo.ListByInstructor(ctx, instructorEmail)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list instructor classes")
	}
	if classes == nil {
		classes = []models.Class{}
	}
	return classes, nil
}

// ListPopular returns the most-enrolled approved classes, served from
// cache when possible.
func (s *ClassService) ListPopular(ctx context.Context) ([]models.Class, error) {
	var cached []models.Class
	if hit, err := s.cache.Get(ctx, popularClassesCacheKey, &cached); err == nil && hit {
		return cached, nil
	}

	classes, err := s.repo.ListPopular(ctx, s.popularLimit)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list popular classes")
	}
	if classes == nil {
		classes = []models.Class{}
	}

	if err := s.cache.Set(ctx, popularClassesCacheKey, classes, 0); err != nil {
		s.logger.Warn("failed to cache popular classes", zap.Error(err))
	}
	return classes, nil
}

// Get returns a single class.
func (s *ClassService) Get(ctx context.Context, id string) (*models.Class, error) {
	class, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class")
	}
	return class, nil
}

// Update merges editable fields into the class. The lifecycle status is
// not editable here; approval has its own path.
func (s *ClassService) Update(ctx context.Context, id string, req models.UpdateClassRequest) (*models.Class, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid class update payload")
	}

	class, err := s.repo.Update(ctx, id, req)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update class")
	}

	s.invalidatePopular(ctx)
	return class, nil
}

// Approve publishes a class to the catalog. Approving twice returns the
// same approved record.
func (s *ClassService) Approve(ctx context.Context, id string) (*models.Class, error) {
	class, err := s.repo.Approve(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to approve class")
	}

	s.logger.Info("class approved", zap.String("class_id", class.ID))
	s.invalidatePopular(ctx)
	return class, nil
}

func (s *ClassService) invalidatePopular(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, popularClassesCacheKey); err != nil {
		s.logger.Warn("failed to invalidate popular classes cache", zap.Error(err))
	}
}
