package auth

import (
	"fmt"
	"time"

	apperrors "organization-backend/internal/errors"

	"github.com/golang-jwt/jwt/v5"
)

// RoleAdmin is the role allowed to provision and modify the organization.
const RoleAdmin = "admin"

const issuer = "organization-backend"

// AuthClaims represents JWT token claims
type AuthClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// IsAdmin reports whether the token carries the administrator role
func (c *AuthClaims) IsAdmin() bool {
	return c != nil && c.Role == RoleAdmin
}

// TokenService issues and validates HS256 bearer tokens
type TokenService struct {
	secret []byte
}

// NewTokenService creates a token service signing with secret
func NewTokenService(secret string) (*TokenService, error) {
	if secret == "" {
		return nil, apperrors.ErrJWTSecretUnset
	}
	return &TokenService{secret: []byte(secret)}, nil
}

// GenerateJWT creates a token for subject with the given role
func (s *TokenService) GenerateJWT(subject, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &AuthClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   subject,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateJWT validates and parses a JWT token
func (s *TokenService) ValidateJWT(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(*AuthClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, apperrors.ErrInvalidToken
}
