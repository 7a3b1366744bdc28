package cart

import (
	"context"
	"testing"
	"time"
	
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	
	return NewRedisStore(client, time.Hour), mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()
	
	c, err := store.Create(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, c.ID)
	require.True(t, mr.Exists("cart:"+c.ID))
	
	c.Add(Line{ProductID: "9", ProductName: "Jersey S-XL", Size: "L", Quantity: 2})
	require.NoError(t, store.Save(ctx, c))
	
	got, err := store.Get(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, c, got)
	
	require.NoError(t, store.Delete(ctx, c.ID))
	_, err = store.Get(ctx, c.ID)
	require.ErrorIs(t, err, ErrCartNotFound)
}

func TestRedisStoreSlidingExpiry(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()
	
	c, err := store.Create(ctx)
	require.NoError(t, err)
	
	mr.FastForward(50 * time.Minute)
	_, err = store.Get(ctx, c.ID)
	require.NoError(t, err)
	require.Equal(t, time.Hour, mr.TTL("cart:"+c.ID))
	
	mr.FastForward(61 * time.Minute)
	_, err = store.Get(ctx, c.ID)
	require.ErrorIs(t, err, ErrCartNotFound)
}

func TestRedisStoreMissingCart(t *testing.T) {
	store, _ := newTestStore(t)
	
	_, err := store.Get(context.Background(), "nope")
	require.ErrorIs(t, err, ErrCartNotFound)
}
