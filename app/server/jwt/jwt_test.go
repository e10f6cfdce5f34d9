package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t *time.Time) func() time.Time {
	return func() time.Time { return *t }
}

func TestSignAndParse(t *testing.T) {
	j, err := New("secret", 8*time.Hour)
	require.NoError(t, err)

	token, issued, err := j.SignToken(7, "admin", true)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	user, err := j.ParseUser(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), user.ID)
	assert.Equal(t, "admin", user.Username)
	assert.True(t, user.IsAdmin)
	assert.Equal(t, issued.Expires.Unix(), user.Expires.Unix())
}

func TestNewRejectsEmptyKey(t *testing.T) {
	_, err := New("", time.Hour)
	assert.Error(t, err)

	_, err = New("secret", 0)
	assert.Error(t, err)
}

func TestExpiryBoundary(t *testing.T) {
	issuedAt := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	now := issuedAt

	j, err := New("secret", 8*time.Hour)
	require.NoError(t, err)
	j.SetClock(fixedClock(&now))

	token, _, err := j.SignToken(1, "admin", true)
	require.NoError(t, err)

	for _, offset := range []time.Duration{0, time.Hour, 8*time.Hour - time.Second} {
		now = issuedAt.Add(offset)
		_, err := j.ParseUser(token)
		assert.NoError(t, err, "offset %s", offset)
	}

	for _, offset := range []time.Duration{8 * time.Hour, 8*time.Hour + time.Second, 24 * time.Hour} {
		now = issuedAt.Add(offset)
		_, err := j.ParseUser(token)
		assert.ErrorIs(t, err, ErrInvalidToken, "offset %s", offset)
	}
}

func TestExpiryBoundaryWithFractionalIssueTime(t *testing.T) {
	issuedAt := time.Date(2024, 1, 1, 9, 0, 0, 900_000_123, time.UTC)
	now := issuedAt

	j, err := New("secret", 8*time.Hour)
	require.NoError(t, err)
	j.SetClock(fixedClock(&now))

	token, issued, err := j.SignToken(1, "admin", true)
	require.NoError(t, err)
	assert.False(t, issued.Expires.Before(issuedAt.Add(8*time.Hour)))
	assert.Less(t, issued.Expires.Sub(issuedAt.Add(8*time.Hour)), time.Second)

	for _, offset := range []time.Duration{0, 8*time.Hour - 500*time.Millisecond, 8*time.Hour - time.Nanosecond} {
		now = issuedAt.Add(offset)
		_, err := j.ParseUser(token)
		assert.NoError(t, err, "offset %s", offset)
	}

	now = issuedAt.Add(8*time.Hour + time.Second)
	_, err = j.ParseUser(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsForeignSignature(t *testing.T) {
	a, err := New("secret-a", time.Hour)
	require.NoError(t, err)
	b, err := New("secret-b", time.Hour)
	require.NoError(t, err)

	token, _, err := a.SignToken(1, "admin", true)
	require.NoError(t, err)

	_, err = b.ParseUser(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsMalformed(t *testing.T) {
	j, err := New("secret", time.Hour)
	require.NoError(t, err)

	for _, token := range []string{"", "abc", "a.b.c"} {
		_, err := j.ParseUser(token)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", token)
	}
}

func TestParseKeepsAdminFlag(t *testing.T) {
	j, err := New("secret", time.Hour)
	require.NoError(t, err)

	token, _, err := j.SignToken(2, "editor", false)
	require.NoError(t, err)

	user, err := j.ParseUser(token)
	require.NoError(t, err)
	assert.False(t, user.IsAdmin)
	assert.Equal(t, "editor", user.Username)
}
