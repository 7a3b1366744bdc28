package session

import (
	"context"
	"testing"
	
	"github.com/alicebob/miniredis/v2"
	"github.com/jplus/jstore-api/internal/token"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, passwords map[Scope]string) (*Service, *miniredis.Miniredis) {
	t.Helper()
	
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	
	maker, err := token.NewJWTMaker("0123456789abcdef0123456789abcdef")
	require.NoError(t, err)
	
	s, err := NewService(client, maker, passwords)
	require.NoError(t, err)
	
	return s, mr
}

func TestLoginVerifyLogout(t *testing.T) {
	s, mr := newTestService(t, map[Scope]string{ScopeAdmin: "secret", ScopeSite: "open"})
	ctx := context.Background()
	
	tokenString, err := s.Login(ctx, ScopeAdmin, "secret")
	require.NoError(t, err)
	
	payload, err := s.Verify(ctx, tokenString, ScopeAdmin)
	require.NoError(t, err)
	require.True(t, mr.Exists("session:admin:"+payload.ID))
	require.Zero(t, mr.TTL("session:admin:"+payload.ID))
	
	require.NoError(t, s.Logout(ctx, tokenString))
	require.False(t, mr.Exists("session:admin:"+payload.ID))
	
	_, err = s.Verify(ctx, tokenString, ScopeAdmin)
	require.ErrorIs(t, err, ErrInvalidSession)
	
	require.NoError(t, s.Logout(ctx, tokenString))
}

func TestLoginWrongPassword(t *testing.T) {
	s, _ := newTestService(t, map[Scope]string{ScopeAdmin: "secret"})
	
	_, err := s.Login(context.Background(), ScopeAdmin, "guess")
	require.ErrorIs(t, err, ErrWrongPassword)
}

func TestVerifyScopeMismatch(t *testing.T) {
	s, _ := newTestService(t, map[Scope]string{ScopeAdmin: "secret", ScopeSite: "open"})
	ctx := context.Background()
	
	tokenString, err := s.Login(ctx, ScopeSite, "open")
	require.NoError(t, err)
	
	_, err = s.Verify(ctx, tokenString, ScopeAdmin)
	require.ErrorIs(t, err, ErrInvalidSession)
}

func TestDisabledGate(t *testing.T) {
	s, _ := newTestService(t, map[Scope]string{ScopeAdmin: "secret", ScopeSite: ""})
	
	require.True(t, s.Enabled(ScopeAdmin))
	require.False(t, s.Enabled(ScopeSite))
	
	_, err := s.Login(context.Background(), ScopeSite, "")
	require.ErrorIs(t, err, ErrGateDisabled)
}

func TestVerifyGarbageToken(t *testing.T) {
	s, _ := newTestService(t, map[Scope]string{ScopeAdmin: "secret"})
	
	_, err := s.Verify(context.Background(), "not-a-token", ScopeAdmin)
	require.ErrorIs(t, err, ErrInvalidSession)
}
