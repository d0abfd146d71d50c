package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/speaksmart/speaksmart-api/internal/models"
)

// PaymentRepository persists completed payments, the financial source of
// truth for the enrollment pipeline.
type PaymentRepository struct {
	db *sqlx.DB
}

// NewPaymentRepository constructs the repository.
func NewPaymentRepository(db *sqlx.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create inserts a payment guarded by the (student_email, class_id)
// uniqueness constraint so a retried pipeline run never books the same
// charge twice. It reports whether a row was inserted.
func (r *PaymentRepository) Create(ctx context.Context, payment *models.Payment) (bool, error) {
	if payment.ID == "" {
		payment.ID = uuid.NewString()
	}
	if payment.PaidAt.IsZero() {
		payment.PaidAt = time.Now().UTC()
	}
	const query = `INSERT INTO payments (id, student_email, class_id, amount, transaction_id, paid_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (student_email, class_id) DO NOTHING`
	res, err := r.db.ExecContext(ctx, query, payment.ID, payment.StudentEmail, payment.ClassID, payment.Amount, payment.TransactionID, payment.PaidAt)
	if err != nil {
		return false, fmt.Errorf("create payment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("create payment rows affected: %w", err)
	}
	return n > 0, nil
}

// FindByID returns a single payment.
func (r *PaymentRepository) FindByID(ctx context.Context, id string) (*models.Payment, error) {
	const query = `SELECT id, student_email, class_id, amount, transaction_id, paid_at FROM payments WHERE id = $1 LIMIT 1`
	var payment models.Payment
	if err := r.db.GetContext(ctx, &payment, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find payment by id: %w", err)
	}
	return &payment, nil
}

// ListByStudent returns the student's payments, newest first.
func (r *PaymentRepository) ListByStudent(ctx context.Context, studentEmail string) ([]models.Payment, error) {
	const query = `SELECT id, student_email, class_id, amount, transaction_id, paid_at FROM payments WHERE student_email = $1 ORDER BY paid_at DESC`
	var payments []models.Payment
	if err := r.db.SelectContext(ctx, &payments, query, studentEmail); err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return payments, nil
}
