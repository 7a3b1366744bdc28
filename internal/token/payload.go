package token

import (
	"fmt"
	"time"
	
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "jstore"

// Payload carries the gate scope ("site" or "admin") as the subject.
// Tokens carry no expiry; revocation happens server side.
type Payload struct {
	jwt.RegisteredClaims
}

func NewPayload(scope string) (payload Payload, err error) {
	tokenID, err := uuid.NewRandom()
	if err != nil {
		return payload, fmt.Errorf("failed to generate tokenID: %w", err)
	}
	
	payload = Payload{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID.String(),
			Issuer:    issuer,
			Subject:   scope,
			Audience:  jwt.ClaimStrings{"client"},
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}
	
	return payload, nil
}

// Scope returns the gate the token was issued for.
func (payload *Payload) Scope() string {
	return payload.Subject
}
