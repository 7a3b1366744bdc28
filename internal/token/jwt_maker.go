package token

import (
	"errors"
	"fmt"
	
	"github.com/golang-jwt/jwt/v5"
)

const minSecretKeySize = 32

var ErrInvalidToken = errors.New("token is invalid")

// JWTMaker is a JSON Web Token maker.
type JWTMaker struct {
	secretKey string
}

func NewJWTMaker(secretKey string) (Maker, error) {
	if len(secretKey) < minSecretKeySize {
		return nil, fmt.Errorf("invalid key size: must be at least %d characters", minSecretKeySize)
	}
	
	return &JWTMaker{secretKey: secretKey}, nil
}

func (maker *JWTMaker) CreateToken(scope string) (string, *Payload, error) {
	payload, err := NewPayload(scope)
	if err != nil {
		return "", nil, err
	}
	
	jwtToken := jwt.NewWithClaims(jwt.SigningMethodHS256, payload)
	token, err := jwtToken.SignedString([]byte(maker.secretKey))
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	
	return token, &payload, nil
}

func (maker *JWTMaker) VerifyToken(tokenString string) (*Payload, error) {
	keyFunc := func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(maker.secretKey), nil
	}
	
	payload := &Payload{}
	_, err := jwt.ParseWithClaims(tokenString, payload, keyFunc, jwt.WithIssuer(issuer))
	if err != nil {
		return nil, ErrInvalidToken
	}
	
	return payload, nil
}
