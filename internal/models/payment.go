package models

import "time"

// Payment is the financial source of truth for an enrollment, recorded
// before any other pipeline side effect. Amount is in major currency units.
type Payment struct {
	ID            string    `db:"id" json:"id"`
	StudentEmail  string    `db:"student_email" json:"student_email"`
	ClassID       string    `db:"class_id" json:"class_id"`
	Amount        int64     `db:"amount" json:"amount"`
	TransactionID string    `db:"transaction_id" json:"transaction_id"`
	PaidAt        time.Time `db:"paid_at" json:"paid_at"`
}

// ReservationRequest asks the gateway to pre-authorize a charge for a class.
// Price is the client's view of the amount; the server re-derives the
// authoritative price from the class record before reserving.
type ReservationRequest struct {
	ClassID string `json:"class_id" validate:"required"`
	Price   int64  `json:"price" validate:"required,gte=0"`
}

// ReservationResponse returns the opaque secret the client uses to finalize
// payment out-of-band.
type ReservationResponse struct {
	ReservationSecret string `json:"reservation_secret"`
}
