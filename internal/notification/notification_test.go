package notification

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"
	
	db "github.com/jplus/jstore-api/internal/db/sqlc"
	"github.com/stretchr/testify/require"
)

func TestNewNotifierWithoutTokenLogsOnly(t *testing.T) {
	n, err := NewNotifier("", "")
	require.NoError(t, err)
	require.IsType(t, LogNotifier{}, n)
	require.NoError(t, n.Notify(context.Background(), "hello"))
}

func TestTruncate(t *testing.T) {
	short := "pedido"
	require.Equal(t, short, truncate(short))
	
	long := strings.Repeat("á", 2500)
	got := truncate(long)
	require.Equal(t, maxMessageLength, utf8.RuneCountInString(got))
	require.True(t, strings.HasSuffix(got, "…"))
}

func TestNewOrderMessage(t *testing.T) {
	order := db.Order{
		OrderCode:     "JS5678423456",
		CustomerName:  "Ana",
		CustomerPhone: "+351 912 345 678",
		Type:          db.OrderTypeCatalog,
		Items:         []db.OrderItem{{ProductName: "Benfica Home", Size: "M", Quantity: 2}},
	}
	
	require.Equal(t, "🛒 Novo pedido JS5678423456 | Ana | +351 912 345 678 | Benfica Home (M) x2", NewOrderMessage(order))
}
