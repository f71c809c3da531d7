package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenType discriminates what a token may be used for. A token of one type
// must never be accepted where another type is required.
type TokenType string

const (
	// TokenTypeAccess authenticates ordinary API requests.
	TokenTypeAccess TokenType = "access"
	// TokenTypeRefresh is reserved for long-lived session renewal tokens.
	TokenTypeRefresh TokenType = "refresh"
	// TokenTypePasswordReset authorizes exactly one password reset.
	TokenTypePasswordReset TokenType = "password_reset"
)

// Verification failures are distinguishable so callers can log them apart,
// but all of them collapse to the same unauthenticated outcome externally.
var (
	// ErrTokenSignatureInvalid is returned when the signature does not verify.
	ErrTokenSignatureInvalid = errors.New("token signature is invalid")
	// ErrTokenExpired is returned when the token is structurally valid but past its expiry.
	ErrTokenExpired = errors.New("token has expired")
	// ErrTokenMalformed is returned for wrong encoding or missing required claims.
	ErrTokenMalformed = errors.New("token is malformed")
	// ErrTokenWrongType is returned when a valid token of another type is presented.
	ErrTokenWrongType = errors.New("token type is not acceptable here")
)

// Claims is the fixed, versioned claims structure carried by every token.
// Every claim a token may legally carry is visible here by inspection.
type Claims struct {
	UserID uuid.UUID `json:"-"`
	Email  string    `json:"email,omitempty"`
	Role   string    `json:"role,omitempty"`
	Type   TokenType `json:"type"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for signing and verifying the compact,
// expiring, tamper-evident tokens that carry identity claims.
type TokenService interface {
	// GenerateAccessToken signs an access token carrying the user's identity
	// and current role.
	GenerateAccessToken(userID uuid.UUID, email string, role string) (string, error)

	// GeneratePasswordResetToken signs a short-lived token that authorizes a
	// single password reset for the given user.
	GeneratePasswordResetToken(userID uuid.UUID, email string) (string, error)

	// ValidateToken checks signature integrity first, then expiry, then the
	// type discriminator, and returns the embedded claims.
	ValidateToken(tokenString string, expected TokenType) (*Claims, error)

	// AccessTokenDuration returns the configured access token lifetime.
	AccessTokenDuration() time.Duration
}
