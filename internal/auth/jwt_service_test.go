package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *JWTService {
	return NewJWTService("test-secret", "shopadmin", "shopadmin-clients")
}

func TestJWTService_IssueAndValidate(t *testing.T) {
	svc := newTestJWTService()

	token, issued, err := svc.Issue(42, "alice", []string{"Visitor"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Validate(token)
	require.NoError(t, err)

	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "alice", claims.Name)
	assert.Equal(t, []string{"Visitor"}, claims.Roles)
	assert.True(t, claims.HasRole("Visitor"))
	assert.False(t, claims.HasRole("Administrator"))
	assert.Equal(t, issued.ID, claims.ID)
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, TokenLifetime, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestJWTService_OneClaimPerRole(t *testing.T) {
	svc := newTestJWTService()

	token, _, err := svc.Issue(1, "root", []string{"Visitor", "Administrator"})
	require.NoError(t, err)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Visitor", "Administrator"}, claims.Roles)
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	svc := newTestJWTService()
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, _, err := svc.Issue(1, "alice", nil)
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_RejectsForeignIssuerAndSecret(t *testing.T) {
	svc := newTestJWTService()

	other := NewJWTService("test-secret", "someone-else", "shopadmin-clients")
	token, _, err := other.Issue(1, "alice", nil)
	require.NoError(t, err)
	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	wrongKey := NewJWTService("other-secret", "shopadmin", "shopadmin-clients")
	token, _, err = wrongKey.Issue(1, "alice", nil)
	require.NoError(t, err)
	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_RejectsUnsignedToken(t *testing.T) {
	svc := newTestJWTService()
	claims := jwt.MapClaims{"sub": "1", "iss": "shopadmin", "aud": "shopadmin-clients", "exp": time.Now().Add(time.Hour).Unix()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
