// Package whatsapp builds the accumulated-orders message the seller forwards
// to the supplier and the wa.me link that opens it.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"
	
	db "github.com/jplus/jstore-api/internal/db/sqlc"
	"github.com/jplus/jstore-api/internal/util"
)

const emptyMessage = "Sem pedidos."

func OrdersMessage(orders []db.Order) string {
	if len(orders) == 0 {
		return emptyMessage
	}
	
	lines := make([]string, 0, len(orders))
	for _, order := range orders {
		lines = append(lines, fmt.Sprintf("• %s: %s", order.CustomerName, order.Summary()))
	}
	
	return "Pedidos acumulados:\n\n" + strings.Join(lines, "\n")
}

// Link returns a wa.me deep link. Only the digits of phone are kept.
func Link(phone, message string) string {
	text := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return fmt.Sprintf("https://wa.me/%s?text=%s", util.PhoneDigits(phone), text)
}
