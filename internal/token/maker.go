package token

type Maker interface {
	CreateToken(scope string) (token string, payload *Payload, err error)
	VerifyToken(tokenString string) (payload *Payload, err error)
}
