package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/maxviazov/buddyfinder-service/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	secret = "test-secret"
	userID = "4f1c2a9e-8d1b-4c55-9a57-0c3b0d1e2f3a"
)

func TestVerifier_RoundTrip(t *testing.T) {
	tok, err := Issue(secret, "", userID, time.Minute)
	require.NoError(t, err)

	got, err := NewVerifier(config.AuthConfig{JWTSecret: secret}).Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestVerifier_Rejects(t *testing.T) {
	v := NewVerifier(config.AuthConfig{JWTSecret: secret, Issuer: "buddyfinder"})

	expired, _ := Issue(secret, "buddyfinder", userID, -time.Minute)
	wrongSecret, _ := Issue("other", "buddyfinder", userID, time.Minute)
	wrongIssuer, _ := Issue(secret, "someone-else", userID, time.Minute)
	badSubject, _ := Issue(secret, "buddyfinder", "not-a-uuid", time.Minute)
	none, _ := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: userID, Issuer: "buddyfinder"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)

	cases := []struct {
		name  string
		token string
		want  error
	}{
		{"empty", "", ErrMissingToken},
		{"garbage", "not.a.token", ErrInvalidToken},
		{"expired", expired, ErrInvalidToken},
		{"wrong secret", wrongSecret, ErrInvalidToken},
		{"wrong issuer", wrongIssuer, ErrInvalidToken},
		{"alg none", none, ErrInvalidToken},
		{"subject not uuid", badSubject, ErrInvalidSubject},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := v.Verify(tc.token)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}
