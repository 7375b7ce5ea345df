package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	m := NewManager("test-secret", 7*24*time.Hour, "pos-admin-test")
	staffID := uuid.New()

	tok, claims, err := m.GenerateToken(staffID)
	require.NoError(t, err)
	require.NotEmpty(t, tok)
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, staffID.String(), claims.Subject)

	parsed, err := m.ValidateToken(tok)
	require.NoError(t, err)
	assert.Equal(t, staffID, parsed.StaffID)
	assert.Equal(t, claims.ID, parsed.ID)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), parsed.ExpiresAt.Time, time.Minute)
}

func TestValidate_Expired(t *testing.T) {
	m := NewManager("test-secret", time.Hour, "pos-admin-test")
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	tok, _, err := m.GenerateToken(uuid.New())
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.ValidateToken(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_WrongSecret(t *testing.T) {
	tok, _, err := NewManager("one", time.Hour, "x").GenerateToken(uuid.New())
	require.NoError(t, err)

	_, err = NewManager("two", time.Hour, "x").ValidateToken(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_Empty(t *testing.T) {
	_, err := NewManager("one", time.Hour, "x").ValidateToken("")
	assert.ErrorIs(t, err, ErrMissingToken)
}
