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

// SelectionRepository persists students' provisional class selections.
type SelectionRepository struct {
	db *sqlx.DB
}

// NewSelectionRepository constructs the repository.
func NewSelectionRepository(db *sqlx.DB) *SelectionRepository {
	return &SelectionRepository{db: db}
}

// Create records a selection. Duplicates for the same (student, class)
// pair are allowed at this layer.
func (r *SelectionRepository) Create(ctx context.Context, selection *models.Selection) error {
	if selection.ID == "" {
		selection.ID = uuid.NewString()
	}
	if selection.CreatedAt.IsZero() {
		selection.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO selections (id, student_email, class_id, created_at)
        VALUES (:id, :student_email, :class_id, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, selection); err != nil {
		return fmt.Errorf("create selection: %w", err)
	}
	return nil
}

// FindByID returns a selection by its ID.
func (r *SelectionRepository) FindByID(ctx context.Context, id string) (*models.Selection, error) {
	const query = `SELECT id, student_email, class_id, created_at FROM selections WHERE id = $1 LIMIT 1`
	var selection models.Selection
	if err := r.db.GetContext(ctx, &selection, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find selection by id: %w", err)
	}
	return &selection, nil
}

// ListByStudent returns the student's selections, newest first.
func (r *SelectionRepository) ListByStudent(ctx context.Context, studentEmail string) ([]models.Selection, error) {
	const query = `SELECT id, student_email, class_id, created_at FROM selections WHERE student_email = $1 ORDER BY created_at DESC`
	var selections []models.Selection
	if err := r.db.SelectContext(ctx, &selections, query, studentEmail); err != nil {
		return nil, fmt.Errorf("list selections: %w", err)
	}
	return selections, nil
}

// Delete removes a selection, reporting whether a row matched.
func (r *SelectionRepository) Delete(ctx context.Context, id string) (bool, error) {
	const query = `DELETE FROM selections WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("delete selection: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete selection rows affected: %w", err)
	}
	return n > 0, nil
}

// DeleteByStudentAndClass clears every selection for the pair. Called by
// the enrollment pipeline after the enrollment record exists.
func (r *SelectionRepository) DeleteByStudentAndClass(ctx context.Context, studentEmail, classID string) (int64, error) {
	const query = `DELETE FROM selections WHERE student_email = $1 AND class_id = $2`
	res, err := r.db.ExecContext(ctx, query, studentEmail, classID)
	if err != nil {
		return 0, fmt.Errorf("delete selections for pair: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete selections rows affected: %w", err)
	}
	return n, nil
}
