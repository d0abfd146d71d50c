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

type enrollmentRepository interface {
	Create(ctx context.Context, enrollment *models.Enrollment) (bool, error)
	FindByStudentAndClass(ctx context.Context, studentEmail, classID string) (*models.Enrollment, error)
	ListByStudent(ctx context.Context, studentEmail string) ([]models.Enrollment, error)
}

type paymentWriter interface {
	Create(ctx context.Context, payment *models.Payment) (bool, error)
}

type enrollmentClassStore interface {
	FindByID(ctx context.Context, id string) (*models.Class, error)
	IncrementEnrolled(ctx context.Context, id string, delta int) error
}

type selectionCleaner interface {
	DeleteByStudentAndClass(ctx context.Context, studentEmail, classID string) (int64, error)
}

// EnrollmentService runs the completion pipeline: record the payment,
// record the enrollment, bump the class counter and clear the selection.
// The enrollment insert is the commit point; everything after it is
// repair-able bookkeeping.
type EnrollmentService struct {
	enrollments enrollmentRepository
	payments    paymentWriter
	classes     enrollmentClassStore
	selections  selectionCleaner
	cache       *CacheService
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewEnrollmentService constructs EnrollmentService.
func NewEnrollmentService(
	enrollments enrollmentRepository,
	payments paymentWriter,
	classes enrollmentClassStore,
	selections selectionCleaner,
	cache *CacheService,
	validate *validator.Validate,
	logger *zap.Logger,
) *EnrollmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{
		enrollments: enrollments,
		payments:    payments,
		classes:     classes,
		selections:  selections,
		cache:       cache,
		validator:   validate,
		logger:      logger,
	}
}

// Complete finishes an enrollment after the client confirms the charge.
// Repeat calls for the same (student, class) pair return the existing
// enrollment without double-charging or double-counting: both the payment
// and enrollment inserts are gated on the pair's uniqueness constraint.
func (s *EnrollmentService) Complete(ctx context.Context, req models.CompleteEnrollmentRequest) (*models.Enrollment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid enrollment payload")
	}

	if existing, err := s.enrollments.FindByStudentAndClass(ctx, req.StudentEmail, req.ClassID); err == nil {
		return existing, nil
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check enrollment")
	}

	if _, err := s.classes.FindByID(ctx, req.ClassID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class")
	}

	payment := &models.Payment{
		StudentEmail:  req.StudentEmail,
		ClassID:       req.ClassID,
		Amount:        req.Amount,
		TransactionID: req.TransactionID,
	}
	if _, err := s.payments.Create(ctx, payment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record payment")
	}

	enrollment := &models.Enrollment{
		StudentEmail: req.StudentEmail,
		ClassID:      req.ClassID,
	}
	// The payment is already recorded; from here on every failure must
	// tell the caller a full retry is safe.
	inserted, err := s.enrollments.Create(ctx, enrollment)
	if err != nil {
		s.logger.Error("payment recorded but enrollment insert failed",
			zap.String("student_email", req.StudentEmail),
			zap.String("class_id", req.ClassID),
			zap.Error(err),
		)
		return nil, appErrors.Wrap(err, appErrors.ErrEnrollmentIncomplete.Code, appErrors.ErrEnrollmentIncomplete.Status, appErrors.ErrEnrollmentIncomplete.Message)
	}
	if !inserted {
		// A concurrent request won the commit; return its record.
		existing, err := s.enrollments.FindByStudentAndClass(ctx, req.StudentEmail, req.ClassID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enrollment")
		}
		return existing, nil
	}

	if err := s.classes.IncrementEnrolled(ctx, req.ClassID, 1); err != nil {
		s.logger.Error("enrollment recorded but counter update failed",
			zap.String("student_email", req.StudentEmail),
			zap.String("class_id", req.ClassID),
			zap.Error(err),
		)
		return nil, appErrors.Wrap(err, appErrors.ErrEnrollmentIncomplete.Code, appErrors.ErrEnrollmentIncomplete.Status, appErrors.ErrEnrollmentIncomplete.Message)
	}

	if _, err := s.selections.DeleteByStudentAndClass(ctx, req.StudentEmail, req.ClassID); err != nil {
		s.logger.Error("enrollment recorded but selection cleanup failed",
			zap.String("student_email", req.StudentEmail),
			zap.String("class_id", req.ClassID),
			zap.Error(err),
		)
		return nil, appErrors.Wrap(err, appErrors.ErrEnrollmentIncomplete.Code, appErrors.ErrEnrollmentIncomplete.Status, appErrors.ErrEnrollmentIncomplete.Message)
	}

	if err := s.cache.Invalidate(ctx, popularClassesCacheKey); err != nil {
		s.logger.Warn("failed to invalidate popular classes cache", zap.Error(err))
	}

	s.logger.Info("enrollment completed",
		zap.String("student_email", req.StudentEmail),
		zap.String("class_id", req.ClassID),
		zap.String("transaction_id", req.TransactionID),
	)
	return enrollment, nil
}

// ListForStudent returns the student's enrollments.
func (s *EnrollmentService) ListForStudent(ctx context.Context, studentEmail string) ([]models.Enrollment, error) {
	if studentEmail == "" {
		return []models.Enrollment{}, nil
	}
	enrollments, err := s.enrollments.ListByStudent(ctx, studentEmail)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list enrollments")
	}
	if enrollments == nil {
		enrollments = []models.Enrollment{}
	}
	return enrollments, nil
}
