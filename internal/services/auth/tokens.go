// Package auth validates the HS256 bearer tokens that guard the API when
// auth.enabled is set. Tokens are signed with the shared secret from
// auth.jwt_secret; there is no user store, a valid signature plus at least
// one recognized scope is what grants access.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
	ErrUnauthorized = errors.New("unauthorized - missing required scopes")
)

// Scopes recognized by the API
const (
	ScopeRead  = "transcripts:read"
	ScopeWrite = "transcripts:write"
	ScopeAdmin = "admin"
)

// Claims represents the JWT claims carried by API tokens
type Claims struct {
	Scopes []string `json:"scopes"`

	jwt.RegisteredClaims
}

// HasScope checks if the token carries a specific scope
func (c *Claims) HasScope(scope string) bool {
	for _, s := range c.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

// HasAnyScope checks if the token carries any of the specified scopes
func (c *Claims) HasAnyScope(scopes ...string) bool {
	for _, scope := range scopes {
		if c.HasScope(scope) {
			return true
		}
	}
	return false
}

// Service signs and validates API tokens
type Service struct {
	secret []byte
	issuer string
}

// NewService creates an auth service around the shared signing secret
func NewService(secret, issuer string) (*Service, error) {
	if secret == "" {
		return nil, fmt.Errorf("JWT secret is required when auth is enabled")
	}

	return &Service{
		secret: []byte(secret),
		issuer: issuer,
	}, nil
}

// IssueToken mints a signed token. Used by tests and by operators
// provisioning API clients out of band.
func (s *Service) IssueToken(subject string, scopes []string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Scopes: scopes,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// ValidateToken validates a bearer token and returns its claims
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	parseOpts := []jwt.ParserOption{jwt.WithValidMethods([]string{"HS256"})}
	if s.issuer != "" {
		parseOpts = append(parseOpts, jwt.WithIssuer(s.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, parseOpts...)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	// A signed token with no recognized scope gets no access. Only
	// deliberately provisioned tokens pass.
	if !claims.HasAnyScope(ScopeRead, ScopeWrite, ScopeAdmin) {
		return nil, ErrUnauthorized
	}

	return claims, nil
}
