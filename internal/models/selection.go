package models

import "time"

// Selection records a student's intent to take a class, prior to payment.
// It is removed by the enrollment pipeline on success or by explicit
// cancellation. Duplicate selections for the same pair are permitted here;
// the pipeline is what prevents double enrollment.
type Selection struct {
	ID           string    `db:"id" json:"id"`
	StudentEmail string    `db:"student_email" json:"student_email"`
	ClassID      string    `db:"class_id" json:"class_id"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// SelectClassRequest is the payload for selecting a class.
type SelectClassRequest struct {
	StudentEmail string `json:"student_email" validate:"required,email"`
	ClassID      string `json:"class_id" validate:"required"`
}
