package models

import "time"

// ClassStatus is the lifecycle state of a class. The only transition is
// pending -> approved; there is no rejection or deletion.
type ClassStatus string

const (
	ClassStatusPending  ClassStatus = "pending"
	ClassStatusApproved ClassStatus = "approved"
)

// Valid reports whether the status is one of the two lifecycle states.
func (s ClassStatus) Valid() bool {
	return s == ClassStatusPending || s == ClassStatusApproved
}

// Class represents an instructor-proposed class. EnrolledCount is mutated
// only by the enrollment pipeline, via an atomic storage-level increment.
type Class struct {
	ID              string      `db:"id" json:"id"`
	Name            string      `db:"name" json:"name"`
	ImageURL        string      `db:"image_url" json:"image_url,omitempty"`
	InstructorName  string      `db:"instructor_name" json:"instructor_name"`
	InstructorEmail string      `db:"instructor_email" json:"instructor_email"`
	Price           int64       `db:"price" json:"price"`
	AvailableSeats  int         `db:"available_seats" json:"available_seats"`
	Status          ClassStatus `db:"status" json:"status"`
	Checked         bool        `db:"checked" json:"checked"`
	EnrolledCount   int         `db:"enrolled_count" json:"enrolled_count"`
	CreatedAt       time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time   `db:"updated_at" json:"updated_at"`
}

// CreateClassRequest is the instructor's class proposal payload.
type CreateClassRequest struct {
	Name            string `json:"name" validate:"required"`
	ImageURL        string `json:"image_url"`
	InstructorName  string `json:"instructor_name" validate:"required"`
	InstructorEmail string `json:"instructor_email" validate:"required,email"`
	Price           int64  `json:"price" validate:"required,gte=0"`
	AvailableSeats  int    `json:"available_seats" validate:"gte=0"`
}

// UpdateClassRequest merges the provided fields into an existing class.
// Nil fields are left untouched.
type UpdateClassRequest struct {
	Name           *string `json:"name"`
	ImageURL       *string `json:"image_url"`
	Price          *int64  `json:"price" validate:"omitempty,gte=0"`
	AvailableSeats *int    `json:"available_seats" validate:"omitempty,gte=0"`
}
