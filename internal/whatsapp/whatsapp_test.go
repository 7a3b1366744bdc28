package whatsapp

import (
	"testing"
	
	db "github.com/jplus/jstore-api/internal/db/sqlc"
	"github.com/stretchr/testify/require"
)

func TestOrdersMessage(t *testing.T) {
	orders := []db.Order{
		{
			CustomerName: "Ana",
			Type:         db.OrderTypeCatalog,
			Items:        []db.OrderItem{{ProductName: "Benfica Home", Size: "M", Quantity: 2}},
		},
		{
			CustomerName: "Rui",
			Type:         db.OrderTypeCustom,
		},
	}
	
	require.Equal(t,
		"Pedidos acumulados:\n\n• Ana: Benfica Home (M) x2\n• Rui: Pedido personalizado",
		OrdersMessage(orders),
	)
}

func TestOrdersMessageEmpty(t *testing.T) {
	require.Equal(t, "Sem pedidos.", OrdersMessage(nil))
}

func TestLink(t *testing.T) {
	require.Equal(t,
		"https://wa.me/351912345678?text=Pedidos%20acumulados%3A%0A%0A%E2%80%A2%20Ana%3A%20A%2BB%20%26%20C",
		Link("+351 912 345 678", "Pedidos acumulados:\n\n• Ana: A+B & C"),
	)
}
