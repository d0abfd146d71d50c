package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/speaksmart/speaksmart-api/internal/models"
)

const classColumns = `id, name, image_url, instructor_name, instructor_email, price, available_seats, status, checked, enrolled_count, created_at, updated_at`

// ClassRepository owns class records and their lifecycle status.
type ClassRepository struct {
	db *sqlx.DB
}

// NewClassRepository constructs the repository.
func NewClassRepository(db *sqlx.DB) *ClassRepository {
	return &ClassRepository{db: db}
}

// Create inserts a new class proposal. Status and counter are forced to
// their initial values regardless of the payload.
func (r *ClassRepository) Create(ctx context.Context, class *models.Class) error {
	if class.ID == "" {
		class.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	class.CreatedAt = now
	class.UpdatedAt = now
	class.Status = models.ClassStatusPending
	class.Checked = false
	class.EnrolledCount = 0

	const query = `INSERT INTO classes (id, name, image_url, instructor_name, instructor_email, price, available_seats, status, checked, enrolled_count, created_at, updated_at)
        VALUES (:id, :name, :image_url, :instructor_name, :instructor_email, :price, :available_seats, :status, :checked, :enrolled_count, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, class); err != nil {
		return fmt.Errorf("create class: %w", err)
	}
	return nil
}

// FindByID returns a class by its ID.
func (r *ClassRepository) FindByID(ctx context.Context, id string) (*models.Class, error) {
	query := fmt.Sprintf(`SELECT %s FROM classes WHERE id = $1 LIMIT 1`, classColumns)
	var class models.Class
	if err := r.db.GetContext(ctx, &class, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find class by id: %w", err)
	}
	return &class, nil
}

// List returns classes, optionally filtered by lifecycle status. Without a
// filter the listing is ordered by status descending then newest first.
func (r *ClassRepository) List(ctx context.Context, status models.ClassStatus) ([]models.Class, error) {
	query := fmt.Sprintf(`SELECT %s FROM classes`, classColumns)
	var args []interface{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY status DESC, created_at DESC`

	var classes []models.Class
	if err := r.db.SelectContext(ctx, &classes, query, args...); err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	return classes, nil
}

// ListByInstructor returns every class proposed by the instructor.
func (r *ClassRepository) ListByInstructor(ctx context.Context, instructorEmail string) ([]models.Class, error) {
	query := fmt.Sprintf(`SELECT %s FROM classes WHERE instructor_email = $1 ORDER BY created_at DESC`, classColumns)
	var classes []models.Class
	if err := r.db.SelectContext(ctx, &classes, query, instructorEmail); err != nil {
		return nil, fmt.Errorf("list instructor classes: %w", err)
	}
	return classes, nil
}

// ListPopular returns the top approved classes by enrollment. Creation
// order breaks ties so the ranking is deterministic.
func (r *ClassRepository) ListPopular(ctx context.Context, limit int) ([]models.Class, error) {
	query := fmt.Sprintf(`SELECT %s FROM classes WHERE status = $1 ORDER BY enrolled_count DESC, created_at ASC LIMIT $2`, classColumns)
	var classes []models.Class
	if err := r.db.SelectContext(ctx, &classes, query, models.ClassStatusApproved, limit); err != nil {
		return nil, fmt.Errorf("list popular classes: %w", err)
	}
	return classes, nil
}

// Approve moves a class to approved. Approving an already-approved class is
// a no-op success; concurrent calls are safe for the same reason.
func (r *ClassRepository) Approve(ctx context.Context, id string) (*models.Class, error) {
	query := fmt.Sprintf(`UPDATE classes SET status = $2, checked = TRUE, updated_at = $3 WHERE id = $1 RETURNING %s`, classColumns)
	var class models.Class
	if err := r.db.GetContext(ctx, &class, query, id, models.ClassStatusApproved, time.Now().UTC()); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("approve class: %w", err)
	}
	return &class, nil
}

// Update merges the provided fields into the class record.
func (r *ClassRepository) Update(ctx context.Context, id string, req models.UpdateClassRequest) (*models.Class, error) {
	var sets []string
	args := []interface{}{id}

	if req.Name != nil {
		sets = append(sets, fmt.Sprintf("name = $%d", len(args)+1))
		args = append(args, *req.Name)
	}
	if req.ImageURL != nil {
		sets = append(sets, fmt.Sprintf("image_url = $%d", len(args)+1))
		args = append(args, *req.ImageURL)
	}
	if req.Price != nil {
		sets = append(sets, fmt.Sprintf("price = $%d", len(args)+1))
		args = append(args, *req.Price)
	}
	if req.AvailableSeats != nil {
		sets = append(sets, fmt.Sprintf("available_seats = $%d", len(args)+1))
		args = append(args, *req.AvailableSeats)
	}
	if len(sets) == 0 {
		return r.FindByID(ctx, id)
	}

	sets = append(sets, fmt.Sprintf("updated_at = $%d", len(args)+1))
	args = append(args, time.Now().UTC())

	query := fmt.Sprintf(`UPDATE classes SET %s WHERE id = $1 RETURNING %s`, strings.Join(sets, ", "), classColumns)
	var class models.Class
	if err := r.db.GetContext(ctx, &class, query, args...); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("update class: %w", err)
	}
	return &class, nil
}

// IncrementEnrolled bumps the enrollment counter as a single statement so
// concurrent pipeline runs never lose an increment.
func (r *ClassRepository) IncrementEnrolled(ctx context.Context, id string, delta int) error {
	const query = `UPDATE classes SET enrolled_count = enrolled_count + $2, updated_at = $3 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, delta, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("increment enrolled count: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
