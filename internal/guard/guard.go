// Package guard implements the permission gate invoked before every
// mutating data operation.
package guard

import (
	"context"
	"errors"

	"github.com/istatata/bayan/internal/models"
	"github.com/istatata/bayan/internal/session"
	"github.com/istatata/bayan/internal/token"
)

var (
	// ErrUnauthenticated: no access token is present.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrInvalidToken: the token failed verification or its subject no
	// longer resolves to a live identity. The reason is intentionally not
	// exposed.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrForbidden: the verified role is not allowed for the operation.
	ErrForbidden = errors.New("forbidden")
)

// Gate checks the session's access token before a protected mutation.
// resolve reports whether a subject id still exists in the identity
// directory; a token whose subject was deleted fails closed.
type Gate struct {
	tokens  *token.Service
	session *session.Store
	resolve func(id string) bool
}

func New(tokens *token.Service, sess *session.Store, resolve func(id string) bool) *Gate {
	return &Gate{tokens: tokens, session: sess, resolve: resolve}
}

// Require verifies the current access token and checks its role against
// allowedRoles. It must be called synchronously before the mutation; a
// non-nil return means no part of the mutation may be observable.
//
// A failed verification is terminal for the in-memory session: it
// transitions to Anonymous and the caller must not retry. The durable
// refresh credential is left alone; restoration decides its fate on the
// next start.
func (g *Gate) Require(ctx context.Context, allowedRoles ...models.Role) error {
	tok := g.session.AccessToken()
	if tok == "" {
		return ErrUnauthenticated
	}

	claims, err := g.tokens.Verify(tok)
	if err != nil {
		g.session.Invalidate()
		return ErrInvalidToken
	}

	if g.resolve != nil && !g.resolve(claims.Subject) {
		g.session.Invalidate()
		return ErrInvalidToken
	}

	for _, role := range allowedRoles {
		if claims.Role == role {
			return nil
		}
	}
	return ErrForbidden
}
