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

// EnrollmentRepository owns the durable record of completed enrollments.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository constructs the repository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// Create inserts an enrollment guarded by the (student_email, class_id)
// uniqueness constraint. It reports false when the pair already exists,
// which is how concurrent completion requests are serialized: the losing
// writer sees inserted=false instead of a duplicate row.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) (bool, error) {
	if enrollment.ID == "" {
		enrollment.ID = uuid.NewString()
	}
	if enrollment.EnrolledAt.IsZero() {
		enrollment.EnrolledAt = time.Now().UTC()
	}
	const query = `INSERT INTO enrollments (id, student_email, class_id, enrolled_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (student_email, class_id) DO NOTHING`
	res, err := r.db.ExecContext(ctx, query, enrollment.ID, enrollment.StudentEmail, enrollment.ClassID, enrollment.EnrolledAt)
	if err != nil {
		return false, fmt.Errorf("create enrollment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("create enrollment rows affected: %w", err)
	}
	return n > 0, nil
}

// FindByStudentAndClass returns the enrollment for the pair, if any.
func (r *EnrollmentRepository) FindByStudentAndClass(ctx context.Context, studentEmail, classID string) (*models.Enrollment, error) {
	const query = `SELECT id, student_email, class_id, enrolled_at FROM enrollments WHERE student_email = $1 AND class_id = $2 LIMIT 1`
	var enrollment models.Enrollment
	if err := r.db.GetContext(ctx, &enrollment, query, studentEmail, classID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find enrollment: %w", err)
	}
	return &enrollment, nil
}

// ListByStudent returns the student's enrollments, newest first.
func (r *EnrollmentRepository) ListByStudent(ctx context.Context, studentEmail string) ([]models.Enrollment, error) {
	const query = `SELECT id, student_email, class_id, enrolled_at FROM enrollments WHERE student_email = $1 ORDER BY enrolled_at DESC`
	var enrollments []models.Enrollment
	if err := r.db.SelectContext(ctx, &enrollments, query, studentEmail); err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	return enrollments, nil
}
