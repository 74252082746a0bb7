// Package token issues and verifies the signed session tokens that gate
// every mutating operation.
//
// Issuer and verifier are the same process here: the signing secret is part
// of the application configuration, standing in for a server-held secret.
// The access/refresh split still mirrors a real server/cookie design:
// the short-lived access token lives only in memory, and only the
// long-lived refresh token survives a restart.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/istatata/bayan/internal/common"
	"github.com/istatata/bayan/internal/models"
)

// signingAlg is pinned; tokens presenting any other algorithm are rejected.
const signingAlg = "HS256"

// Claims is the verified payload of an access or refresh token. Refresh
// tokens carry only the subject, so Role and Name are empty for them.
type Claims struct {
	Role models.Role `json:"role,omitempty"`
	Name string      `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// Service signs and verifies compact tokens with a single HS256 secret.
type Service struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewService builds a token Service. now is a clock hook for tests; pass
// nil to use time.Now.
func NewService(secret []byte, accessTTL, refreshTTL time.Duration, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{secret: secret, accessTTL: accessTTL, refreshTTL: refreshTTL, now: now}
}

// IssueAccessToken signs a short-lived token carrying the user's id, role
// and display name.
func (s *Service) IssueAccessToken(u models.User) (string, error) {
	issued := s.now()
	claims := Claims{
		Role: u.Role,
		Name: u.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(s.accessTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// IssueRefreshToken signs a long-lived token bound only to the subject id.
// Role and name are deliberately omitted to minimize what a leaked refresh
// token reveals.
func (s *Service) IssueRefreshToken(subjectID string) (string, error) {
	issued := s.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(s.refreshTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify checks the signature and expiry of a token and returns its claims.
// Every failure (expired, malformed, forged signature, substituted
// algorithm) maps to common.ErrInvalidToken so callers cannot build an
// oracle out of the reason.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	tok, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{signingAlg}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !tok.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
