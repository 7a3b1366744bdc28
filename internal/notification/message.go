package notification

import (
	"fmt"
	
	db "github.com/jplus/jstore-api/internal/db/sqlc"
)

// NewOrderMessage is the staff channel line announcing an order.
func NewOrderMessage(order db.Order) string {
	return fmt.Sprintf("🛒 Novo pedido %s | %s | %s | %s",
		order.OrderCode,
		order.CustomerName,
		order.CustomerPhone,
		order.Summary(),
	)
}
