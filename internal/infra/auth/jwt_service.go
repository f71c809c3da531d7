// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"intranet/config"
	"intranet/internal/domain/service"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
// The signing secret and TTLs are fixed at construction and never read from
// ambient state afterwards.
type jwtService struct {
	secret    []byte
	method    jwt.SigningMethod
	accessTTL time.Duration
	resetTTL  time.Duration
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg == nil || cfg.Auth == nil || cfg.Auth.SigningSecret == "" {
		return nil, errors.New("jwt signing secret must be provided")
	}

	method := jwt.GetSigningMethod(cfg.Auth.SigningAlgorithm)
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.Errorf("unsupported signing algorithm: %s", cfg.Auth.SigningAlgorithm)
	}

	return &jwtService{
		secret:    []byte(cfg.Auth.SigningSecret),
		method:    method,
		accessTTL: cfg.Auth.AccessTokenTTL(),
		resetTTL:  cfg.Auth.PasswordResetTTL(),
	}, nil
}

// GenerateAccessToken signs an access token carrying the user's identity and current role.
func (s *jwtService) GenerateAccessToken(userID uuid.UUID, email string, role string) (string, error) {
	return s.generateToken(userID, email, role, service.TokenTypeAccess, s.accessTTL)
}

// GeneratePasswordResetToken signs a short-lived token authorizing a single password reset.
// It carries no role so it can never double as an access token even if the
// type check were bypassed.
func (s *jwtService) GeneratePasswordResetToken(userID uuid.UUID, email string) (string, error) {
	return s.generateToken(userID, email, "", service.TokenTypePasswordReset, s.resetTTL)
}

// ValidateToken checks signature integrity first, then expiry, then the type
// discriminator, and returns the embedded claims.
func (s *jwtService) ValidateToken(tokenString string, expected service.TokenType) (*service.Claims, error) {
	claims := &service.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Reject any token whose header names a different algorithm family.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	})
	if err != nil {
		return nil, mapParseError(err)
	}
	if !token.Valid {
		return nil, service.ErrTokenSignatureInvalid
	}

	if claims.Type != expected {
		return nil, service.ErrTokenWrongType
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, service.ErrTokenMalformed
	}
	claims.UserID = userID

	return claims, nil
}

// AccessTokenDuration returns the configured access token lifetime.
func (s *jwtService) AccessTokenDuration() time.Duration {
	return s.accessTTL
}

// generateToken is a private helper to create a JWT with the fixed claims structure.
func (s *jwtService) generateToken(userID uuid.UUID, email, role string, tokenType service.TokenType, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &service.Claims{
		Email: email,
		Role:  role,
		Type:  tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(s.method, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// mapParseError folds golang-jwt's error tree into the three distinguishable
// verification failures of the domain contract.
func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return service.ErrTokenSignatureInvalid
	case errors.Is(err, jwt.ErrTokenExpired):
		return service.ErrTokenExpired
	default:
		return service.ErrTokenMalformed
	}
}
