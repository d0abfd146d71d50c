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

// UserRepository provides database access for marketplace accounts.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByEmail returns a user by email address.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	const query = `SELECT id, email, name, photo_url, role, created_at, updated_at FROM users WHERE email = $1 LIMIT 1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

// Upsert inserts the user keyed by email or refreshes the mutable profile
// fields when the email already exists. The stored record is returned.
func (r *UserRepository) Upsert(ctx context.Context, user *models.User) (*models.User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	if user.Role == "" {
		user.Role = models.RoleStudent
	}

	const query = `INSERT INTO users (id, email, name, photo_url, role, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        ON CONFLICT (email) DO UPDATE
        SET name = EXCLUDED.name, photo_url = EXCLUDED.photo_url, role = EXCLUDED.role, updated_at = EXCLUDED.updated_at
        RETURNING id, email, name, photo_url, role, created_at, updated_at`
	var stored models.User
	if err := r.db.GetContext(ctx, &stored, query, user.ID, user.Email, user.Name, user.PhotoURL, user.Role, user.CreatedAt, user.UpdatedAt); err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}
	return &stored, nil
}

// List returns all users, optionally filtered by role, newest first.
func (r *UserRepository) List(ctx context.Context, role models.UserRole) ([]models.User, error) {
	query := `SELECT id, email, name, photo_url, role, created_at, updated_at FROM users`
	var args []interface{}
	if role != "" {
		query += ` WHERE role = $1`
		args = append(args, role)
	}
	query += ` ORDER BY created_at DESC`

	var users []models.User
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// ListPopularInstructors ranks instructors by the total enrollment across
// their approved classes, truncated to limit. Ties break by account age so
// the order stays deterministic.
func (r *UserRepository) ListPopularInstructors(ctx context.Context, limit int) ([]models.InstructorRanking, error) {
	const query = `SELECT u.id, u.email, u.name, u.photo_url, u.role, u.created_at, u.updated_at,
        COALESCE(SUM(c.enrolled_count), 0) AS total_enrolled
        FROM users u
        LEFT JOIN classes c ON c.instructor_email = u.email AND c.status = $1
        WHERE u.role = $2
        GROUP BY u.id
        ORDER BY total_enrolled DESC, u.created_at ASC
        LIMIT $3`
	var rankings []models.InstructorRanking
	if err := r.db.SelectContext(ctx, &rankings, query, models.ClassStatusApproved, models.RoleInstructor, limit); err != nil {
		return nil, fmt.Errorf("list popular instructors: %w", err)
	}
	return rankings, nil
}
