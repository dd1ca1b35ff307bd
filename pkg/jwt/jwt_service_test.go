package jwt

import (
	"pantrypal/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOwnerTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("s3cret")

	token, err := svc.GenerateOwnerToken("kitchen", time.Hour)
	require.NoError(t, err)

	subject, role, err := svc.GetSubjectByToken(token)
	require.NoError(t, err)
	assert.Equal(t, "kitchen", subject)
	assert.Equal(t, domain.OwnerRole, role)
}

func TestGetSubjectByToken_Expired(t *testing.T) {
	svc := NewJWTService("s3cret").(*jwtService)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := svc.GenerateOwnerToken("kitchen", time.Hour)
	require.NoError(t, err)

	_, _, err = svc.GetSubjectByToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestGetSubjectByToken_WrongSecret(t *testing.T) {
	token, err := NewJWTService("one").GenerateOwnerToken("kitchen", 0)
	require.NoError(t, err)

	_, _, err = NewJWTService("two").GetSubjectByToken(token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	_, _, err = NewJWTService("one").GetSubjectByToken("not.a.token")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestGenerateOwnerToken_NeedsSecret(t *testing.T) {
	_, err := NewJWTService("").GenerateOwnerToken("kitchen", time.Hour)
	assert.ErrorIs(t, err, ErrEmptySecret)
}
