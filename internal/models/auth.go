package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CredentialRequest is the identity payload a credential is issued for.
// Identity proofing happens upstream; this service only signs the claims.
type CredentialRequest struct {
	Email string   `json:"email" validate:"required,email"`
	Role  UserRole `json:"role" validate:"omitempty,oneof=student instructor admin"`
}

// CredentialResponse returns the signed bearer credential.
type CredentialResponse struct {
	Token     string    `json:"token"`
	ExpiresIn int64     `json:"expires_in"`
	IssuedAt  time.Time `json:"issued_at"`
}

// JWTClaims is the payload embedded in access tokens.
type JWTClaims struct {
	Email string   `json:"email"`
	Role  UserRole `json:"role"`
	jwt.RegisteredClaims
}
