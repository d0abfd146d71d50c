package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/speaksmart/speaksmart-api/internal/gateway"
	"github.com/speaksmart/speaksmart-api/internal/models"
	appErrors "github.com/speaksmart/speaksmart-api/pkg/errors"
)

type paymentRepository interface {
	FindByID(ctx context.Context, id string) (*models.Payment, error)
	ListByStudent(ctx context.Context, studentEmail string) ([]models.Payment, error)
}

type paymentClassReader interface {
	FindByID(ctx context.Context, id string) (*models.Class, error)
}

// Receipt bundles a payment with the class it paid for, for rendering.
type Receipt struct {
	Payment models.Payment
	Class   models.Class
}

// PaymentService reserves charges with the gateway and exposes payment
// history. The charged amount always comes from the stored class price,
// never from the client.
type PaymentService struct {
	repo      paymentRepository
	classes   paymentClassReader
	reserver  gateway.Reserver
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPaymentService constructs PaymentService.
func NewPaymentService(repo paymentRepository, classes paymentClassReader, reserver gateway.Reserver, validate *validator.Validate, logger *zap.Logger) *PaymentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentService{repo: repo, classes: classes, reserver: reserver, validator: validate, logger: logger}
}

// Reserve pre-authorizes a charge for the class. The quoted price in the
// request must match the stored price; the gateway amount is the stored
// price in minor units.
func (s *PaymentService) Reserve(ctx context.Context, req models.ReservationRequest) (*models.ReservationResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid reservation payload")
	}

	class, err := s.classes.FindByID(ctx, req.ClassID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class")
	}

	if req.Price != class.Price {
		s.logger.Warn("reservation price mismatch",
			zap.String("class_id", class.ID),
			zap.Int64("quoted", req.Price),
			zap.Int64("stored", class.Price),
		)
		return nil, appErrors.Clone(appErrors.ErrValidation, "quoted price does not match class price")
	}

	secret, err := s.reserver.Reserve(ctx, class.Price*100)
	if err != nil {
		return nil, err
	}

	return &models.ReservationResponse{ReservationSecret: secret}, nil
}

// ListForStudent returns the student's payment history.
func (s *PaymentService) ListForStudent(ctx context.Context, studentEmail string) ([]models.Payment, error) {
	if studentEmail == "" {
		return []models.Payment{}, nil
	}
	payments, err := s.repo.ListByStudent(ctx, studentEmail)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list payments")
	}
	if payments == nil {
		payments = []models.Payment{}
	}
	return payments, nil
}

// GetReceipt loads the payment and its class for receipt rendering. The
// payment must belong to the given student.
func (s *PaymentService) GetReceipt(ctx context.Context, studentEmail, paymentID string) (*Receipt, error) {
	payment, err := s.repo.FindByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "payment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load payment")
	}
	if payment.StudentEmail != studentEmail {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "payment belongs to another student")
	}

	class, err := s.classes.FindByID(ctx, payment.ClassID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class")
	}

	return &Receipt{Payment: *payment, Class: *class}, nil
}
