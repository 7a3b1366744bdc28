package token

import (
	"testing"
	
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestJWTMaker(t *testing.T) {
	maker, err := NewJWTMaker(testSecret)
	require.NoError(t, err)
	
	token, payload, err := maker.CreateToken("admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Nil(t, payload.ExpiresAt)
	
	verified, err := maker.VerifyToken(token)
	require.NoError(t, err)
	require.Equal(t, payload.ID, verified.ID)
	require.Equal(t, "admin", verified.Scope())
}

func TestJWTMakerRejectsShortKey(t *testing.T) {
	_, err := NewJWTMaker("short")
	require.Error(t, err)
}

func TestJWTMakerRejectsForeignSignature(t *testing.T) {
	maker, err := NewJWTMaker(testSecret)
	require.NoError(t, err)
	
	other, err := NewJWTMaker("fedcba9876543210fedcba9876543210")
	require.NoError(t, err)
	
	token, _, err := other.CreateToken("site")
	require.NoError(t, err)
	
	_, err = maker.VerifyToken(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTMakerRejectsNoneAlgorithm(t *testing.T) {
	maker, err := NewJWTMaker(testSecret)
	require.NoError(t, err)
	
	payload, err := NewPayload("admin")
	require.NoError(t, err)
	
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, payload)
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	
	_, err = maker.VerifyToken(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}
