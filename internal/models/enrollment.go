package models

import "time"

// Enrollment is the durable record that a student paid for and gained
// access to a class. Created exactly once per (student, class) pair by the
// enrollment pipeline; immutable afterwards.
type Enrollment struct {
	ID           string    `db:"id" json:"id"`
	StudentEmail string    `db:"student_email" json:"student_email"`
	ClassID      string    `db:"class_id" json:"class_id"`
	EnrolledAt   time.Time `db:"enrolled_at" json:"enrolled_at"`
}

// CompleteEnrollmentRequest is submitted once the client confirms the
// external payment succeeded.
type CompleteEnrollmentRequest struct {
	StudentEmail  string `json:"student_email" validate:"required,email"`
	ClassID       string `json:"class_id" validate:"required"`
	Amount        int64  `json:"amount" validate:"required,gte=0"`
	TransactionID string `json:"transaction_id" validate:"required"`
}
