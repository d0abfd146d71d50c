package models

import "time"

// UserRole represents the available marketplace roles.
type UserRole string

const (
	RoleStudent    UserRole = "student"
	RoleInstructor UserRole = "instructor"
	RoleAdmin      UserRole = "admin"
)

// User represents a marketplace account. Email is the identity key;
// records are upserted on login and never deleted.
type User struct {
	ID        string    `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	Name      string    `db:"name" json:"name"`
	PhotoURL  string    `db:"photo_url" json:"photo_url,omitempty"`
	Role      UserRole  `db:"role" json:"role"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// InstructorRanking pairs an instructor with the total enrollment across
// their approved classes, used for the popular-instructors listing.
type InstructorRanking struct {
	User
	TotalEnrolled int `db:"total_enrolled" json:"total_enrolled"`
}

// UpsertUserRequest carries the self-service profile payload.
type UpsertUserRequest struct {
	Name     string   `json:"name" validate:"required"`
	PhotoURL string   `json:"photo_url"`
	Role     UserRole `json:"role" validate:"omitempty,oneof=student instructor admin"`
}
