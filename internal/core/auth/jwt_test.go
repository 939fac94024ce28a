package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueParse(t *testing.T) {
	j := &JWTer{Secret: []byte("s3cret"), Issuer: "backoffice", TTL: time.Hour}

	tok, exp, err := j.Issue("u1", "a@b.io", "manager")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	c, err := j.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", c.UID)
	assert.Equal(t, "manager", c.Role)
	assert.Equal(t, "u1", c.Subject)
}

func TestParse_Rejects(t *testing.T) {
	j := &JWTer{Secret: []byte("s3cret"), Issuer: "backoffice", TTL: time.Hour}

	other := &JWTer{Secret: []byte("other"), Issuer: "backoffice", TTL: time.Hour}
	forged, _, err := other.Issue("u1", "a@b.io", "admin")
	require.NoError(t, err)
	_, err = j.Parse(forged)
	assert.ErrorIs(t, err, ErrInvalidToken)

	foreign := &JWTer{Secret: []byte("s3cret"), Issuer: "elsewhere", TTL: time.Hour}
	tok, _, err := foreign.Issue("u1", "a@b.io", "admin")
	require.NoError(t, err)
	_, err = j.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := &JWTer{Secret: []byte("s3cret"), Issuer: "backoffice", TTL: -time.Hour}
	tok, _, err = expired.Issue("u1", "a@b.io", "admin")
	require.NoError(t, err)
	_, err = j.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UID: "u1"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = j.Parse(none)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = j.Parse("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
