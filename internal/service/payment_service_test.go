package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/speaksmart/speaksmart-api/internal/models"
	appErrors "github.com/speaksmart/speaksmart-api/pkg/errors"
)

type mockPaymentRepo struct {
	payments map[string]*models.Payment
}

func (m *mockPaymentRepo) FindByID(ctx context.Context, id string) (*models.Payment, error) {
	if p, ok := m.payments[id]; ok {
		return p, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockPaymentRepo) ListByStudent(ctx context.Context, studentEmail string) ([]models.Payment, error) {
	var list []models.Payment
	for _, p := range m.payments {
		if p.StudentEmail == studentEmail {
			list = append(list, *p)
		}
	}
	return list, nil
}

type mockReserver struct {
	lastAmount int64
	err        error
}

func (m *mockReserver) Reserve(ctx context.Context, amountMinorUnits int64) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.lastAmount = amountMinorUnits
	return "secret_abc", nil
}

func newTestPaymentService(repo *mockPaymentRepo, classes *mockClassStore, reserver *mockReserver) *PaymentService {
	return NewPaymentService(repo, classes, reserver, validator.New(), zap.NewNop())
}

func TestPaymentServiceReserve(t *testing.T) {
	classes := &mockClassStore{classes: map[string]*models.Class{"c1": {ID: "c1", Price: 120}}}
	reserver := &mockReserver{}
	svc := newTestPaymentService(&mockPaymentRepo{}, classes, reserver)

	res, err := svc.Reserve(context.Background(), models.ReservationRequest{ClassID: "c1", Price: 120})
	require.NoError(t, err)
	assert.Equal(t, "secret_abc", res.ReservationSecret)
	assert.Equal(t, int64(12000), reserver.lastAmount)
}

func TestPaymentServiceReserveRejectsPriceMismatch(t *testing.T) {
	classes := &mockClassStore{classes: map[string]*models.Class{"c1": {ID: "c1", Price: 120}}}
	reserver := &mockReserver{}
	svc := newTestPaymentService(&mockPaymentRepo{}, classes, reserver)

	_, err := svc.Reserve(context.Background(), models.ReservationRequest{ClassID: "c1", Price: 99})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Zero(t, reserver.lastAmount)
}

func TestPaymentServiceReserveUnknownClass(t *testing.T) {
	svc := newTestPaymentService(&mockPaymentRepo{}, &mockClassStore{}, &mockReserver{})

	_, err := svc.Reserve(context.Background(), models.ReservationRequest{ClassID: "missing", Price: 10})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestPaymentServiceReserveGatewayFailure(t *testing.T) {
	classes := &mockClassStore{classes: map[string]*models.Class{"c1": {ID: "c1", Price: 120}}}
	reserver := &mockReserver{err: appErrors.Clone(appErrors.ErrPaymentGateway, "card declined")}
	svc := newTestPaymentService(&mockPaymentRepo{}, classes, reserver)

	_, err := svc.Reserve(context.Background(), models.ReservationRequest{ClassID: "c1", Price: 120})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrPaymentGateway.Code, appErrors.FromError(err).Code)
}

func TestPaymentServiceGetReceipt(t *testing.T) {
	repo := &mockPaymentRepo{payments: map[string]*models.Payment{
		"p1": {ID: "p1", StudentEmail: "student@example.com", ClassID: "c1", Amount: 120, TransactionID: "pi_123"},
	}}
	classes := &mockClassStore{classes: map[string]*models.Class{"c1": {ID: "c1", Name: "Spanish", InstructorName: "Ana"}}}
	svc := newTestPaymentService(repo, classes, &mockReserver{})

	receipt, err := svc.GetReceipt(context.Background(), "student@example.com", "p1")
	require.NoError(t, err)
	assert.Equal(t, "Spanish", receipt.Class.Name)
	assert.Equal(t, "pi_123", receipt.Payment.TransactionID)
}

func TestPaymentServiceGetReceiptWrongOwner(t *testing.T) {
	repo := &mockPaymentRepo{payments: map[string]*models.Payment{
		"p1": {ID: "p1", StudentEmail: "student@example.com", ClassID: "c1"},
	}}
	svc := newTestPaymentService(repo, &mockClassStore{}, &mockReserver{})

	_, err := svc.GetReceipt(context.Background(), "other@example.com", "p1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestPaymentServiceListForStudent(t *testing.T) {
	repo := &mockPaymentRepo{payments: map[string]*models.Payment{
		"p1": {ID: "p1", StudentEmail: "student@example.com"},
		"p2": {ID: "p2", StudentEmail: "other@example.com"},
	}}
	svc := newTestPaymentService(repo, &mockClassStore{}, &mockReserver{})

	list, err := svc.ListForStudent(context.Background(), "student@example.com")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	empty, err := svc.ListForStudent(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
