package token

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/istatata/bayan/internal/common"
	"github.com/istatata/bayan/internal/models"
)

var testUser = models.User{
	ID:   "admin-1",
	Name: "Omar",
	Role: models.RoleAdmin,
}

func newTestService(now func() time.Time) *Service {
	return NewService([]byte("test-signing-secret"), 15*time.Minute, 7*24*time.Hour, now)
}

func TestVerify_AccessToken(t *testing.T) {
	t.Parallel()

	s := newTestService(nil)

	tok, err := s.IssueAccessToken(testUser)
	require.NoError(t, err)

	claims, err := s.Verify(tok)
	require.NoError(t, err)

	assert.Equal(t, "admin-1", claims.Subject)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.Equal(t, "Omar", claims.Name)
	assert.NotNil(t, claims.IssuedAt)
	assert.NotNil(t, claims.ExpiresAt)
}

func TestVerify_RefreshTokenCarriesOnlySubject(t *testing.T) {
	t.Parallel()

	s := newTestService(nil)

	tok, err := s.IssueRefreshToken("trainee-1")
	require.NoError(t, err)

	claims, err := s.Verify(tok)
	require.NoError(t, err)

	assert.Equal(t, "trainee-1", claims.Subject)
	assert.Empty(t, claims.Role)
	assert.Empty(t, claims.Name)
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	clock := time.Now()
	s := newTestService(func() time.Time { return clock })

	tok, err := s.IssueAccessToken(testUser)
	require.NoError(t, err)

	// Valid right up to the expiry instant.
	clock = clock.Add(14 * time.Minute)
	_, err = s.Verify(tok)
	require.NoError(t, err)

	// Invalid once it has passed.
	clock = clock.Add(2 * time.Minute)
	_, err = s.Verify(tok)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestVerify_TamperedSignature(t *testing.T) {
	t.Parallel()

	s := newTestService(nil)

	tok, err := s.IssueAccessToken(testUser)
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)

	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	forged := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = s.Verify(forged)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	s := newTestService(nil)
	other := NewService([]byte("different-secret"), 15*time.Minute, time.Hour, nil)

	tok, err := other.IssueAccessToken(testUser)
	require.NoError(t, err)

	_, err = s.Verify(tok)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestVerify_RejectsAlgSubstitution(t *testing.T) {
	t.Parallel()

	s := newTestService(nil)

	// Forge an unsigned token claiming alg=none.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		Role: models.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	forged, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = s.Verify(forged)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	s := newTestService(nil)

	for _, bad := range []string{"", "not.a.jwt", "a.b", "...."} {
		_, err := s.Verify(bad)
		assert.ErrorIs(t, err, common.ErrInvalidToken, "token %q", bad)
	}
}
