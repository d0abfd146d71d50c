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

type selectionRepository interface {
	Create(ctx context.Context, selection *models.Selection) error
	FindByID(ctx context.Context, id string) (*models.Selection, error)
	ListByStudent(ctx context.Context, studentEmail string) ([]models.Selection, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type selectionClassReader interface {
	FindByID(ctx context.Context, id string) (*models.Class, error)
}

// SelectionService manages students' provisional class selections, the
// first stage of the enrollment pipeline.
type SelectionService struct {
	repo      selectionRepository
	classes   selectionClassReader
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSelectionService constructs SelectionService.
func NewSelectionService(repo selectionRepository, classes selectionClassReader, validate *validator.Validate, logger *zap.Logger) *SelectionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SelectionService{repo: repo, classes: classes, validator: validate, logger: logger}
}

// Select records that a student wants to enroll in a class. The class must
// exist; duplicate selections for the same pair are accepted.
func (s *SelectionService) Select(ctx context.Context, req models.SelectClassRequest) (*models.Selection, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid selection payload")
	}

	if _, err := s.classes.FindByID(ctx, req.ClassID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class")
	}

	selection := &models.Selection{
		StudentEmail: req.StudentEmail,
		ClassID:      req.ClassID,
	}
	if err := s.repo.Create(ctx, selection); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save selection")
	}
	return selection, nil
}

// ListForStudent returns the student's selections. An empty email yields
// an empty listing, matching the catalog's lenient read behavior.
func (s *SelectionService) ListForStudent(ctx context.Context, studentEmail string) ([]models.Selection, error) {
	if studentEmail == "" {
		return []models.Selection{}, nil
	}
	selections, err := s.repo.ListByStudent(ctx, studentEmail)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list selections")
	}
	if selections == nil {
		selections = []models.Selection{}
	}
	return selections, nil
}

// Get returns one of the student's selections. An ID that exists but
// belongs to a different student is not found within this scope.
func (s *SelectionService) Get(ctx context.Context, studentEmail, id string) (*models.Selection, error) {
	selection, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "selection not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load selection")
	}
	if selection.StudentEmail != studentEmail {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "selection not found")
	}
	return selection, nil
}

// Remove deletes a selection. The requester must own it; removing a
// selection that is already gone reports not found.
func (s *SelectionService) Remove(ctx context.Context, id, requesterEmail string) error {
	selection, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "selection not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load selection")
	}
	if requesterEmail != "" && selection.StudentEmail != requesterEmail {
		return appErrors.Clone(appErrors.ErrForbidden, "selection belongs to another student")
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete selection")
	}
	if !deleted {
		return appErrors.Clone(appErrors.ErrNotFound, "selection not found")
	}
	return nil
}
