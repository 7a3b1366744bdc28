// Package session implements the shared-secret gates protecting the storefront
// and the admin area.
package session

import (
	"context"
	"errors"
	"fmt"
	
	"github.com/jplus/jstore-api/internal/token"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

type Scope string

const (
	ScopeSite  Scope = "site"
	ScopeAdmin Scope = "admin"
)

var (
	ErrGateDisabled   = errors.New("gate is disabled")
	ErrWrongPassword  = errors.New("incorrect password")
	ErrInvalidSession = errors.New("invalid or revoked session")
)

type Manager interface {
	// Enabled reports whether the gate for scope requires a password.
	Enabled(scope Scope) bool
	Login(ctx context.Context, scope Scope, password string) (string, error)
	Verify(ctx context.Context, tokenString string, scope Scope) (*token.Payload, error)
	Logout(ctx context.Context, tokenString string) error
}

// Service keeps one redis key per live session. Keys have no TTL, a session
// lives until logout.
type Service struct {
	redis     *redis.Client
	maker     token.Maker
	keyPrefix string
	hashes    map[Scope][]byte
}

type ServiceOption func(*Service)

func WithPrefix(prefix string) ServiceOption {
	return func(s *Service) {
		s.keyPrefix = prefix
	}
}

// NewService hashes the configured passwords once. An empty password
// disables the matching gate.
func NewService(redisClient *redis.Client, maker token.Maker, passwords map[Scope]string, opts ...ServiceOption) (*Service, error) {
	s := &Service{
		redis:     redisClient,
		maker:     maker,
		keyPrefix: "session",
		hashes:    make(map[Scope][]byte, len(passwords)),
	}
	
	for _, opt := range opts {
		opt(s)
	}
	
	for scope, password := range passwords {
		if password == "" {
			continue
		}
		
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash %s password: %w", scope, err)
		}
		s.hashes[scope] = hash
	}
	
	return s, nil
}

func (s *Service) Enabled(scope Scope) bool {
	_, ok := s.hashes[scope]
	return ok
}

func (s *Service) Login(ctx context.Context, scope Scope, password string) (string, error) {
	hash, ok := s.hashes[scope]
	if !ok {
		return "", ErrGateDisabled
	}
	
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return "", ErrWrongPassword
	}
	
	tokenString, payload, err := s.maker.CreateToken(string(scope))
	if err != nil {
		return "", err
	}
	
	err = s.redis.Set(ctx, s.key(scope, payload.ID), 1, 0).Err()
	if err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}
	
	return tokenString, nil
}

func (s *Service) Verify(ctx context.Context, tokenString string, scope Scope) (*token.Payload, error) {
	payload, err := s.maker.VerifyToken(tokenString)
	if err != nil {
		return nil, ErrInvalidSession
	}
	
	if payload.Scope() != string(scope) {
		return nil, ErrInvalidSession
	}
	
	exists, err := s.redis.Exists(ctx, s.key(scope, payload.ID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to check session: %w", err)
	}
	
	if exists == 0 {
		return nil, ErrInvalidSession
	}
	
	return payload, nil
}

// Logout revokes the session behind tokenString. Revoking twice is not an error.
func (s *Service) Logout(ctx context.Context, tokenString string) error {
	payload, err := s.maker.VerifyToken(tokenString)
	if err != nil {
		return ErrInvalidSession
	}
	
	return s.redis.Del(ctx, s.key(Scope(payload.Scope()), payload.ID)).Err()
}

func (s *Service) key(scope Scope, id string) string {
	return fmt.Sprintf("%s:%s:%s", s.keyPrefix, scope, id)
}
