package mailer

import (
	"fmt"
	"strings"
	
	db "github.com/jplus/jstore-api/internal/db/sqlc"
)

// OrderConfirmation is everything needed to tell a customer their order was received.
// Custom orders carry Request instead of Items.
type OrderConfirmation struct {
	Email        string         `json:"email"`
	CustomerName string         `json:"customer_name"`
	OrderCode    string         `json:"order_code"`
	Items        []db.OrderItem `json:"items"`
	Request      string         `json:"request,omitempty"`
}

func confirmationSubject(orderCode string) string {
	return fmt.Sprintf("JStore Order Confirmation - %s", orderCode)
}

// FormatItemLine renders one bullet of the order details list.
func FormatItemLine(item db.OrderItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "• %s (Size: %s)", item.ProductName, item.Size)
	
	if item.Print {
		fmt.Fprintf(&b, " - Custom: %s #%s", orDefault(item.PrintName, "N/A"), orDefault(item.PrintNumber, "N/A"))
	}
	
	quantity := item.Quantity
	if quantity < 1 {
		quantity = 1
	}
	fmt.Fprintf(&b, " (Qty: %d)", quantity)
	
	return b.String()
}

// RenderOrderConfirmation returns the plain-text body of the confirmation mail.
func RenderOrderConfirmation(confirmation OrderConfirmation, siteURL string) string {
	var details string
	if confirmation.Request != "" {
		details = "Your Request:\n" + confirmation.Request
	} else {
		lines := make([]string, 0, len(confirmation.Items))
		for _, item := range confirmation.Items {
			lines = append(lines, FormatItemLine(item))
		}
		details = "Order Details:\n" + strings.Join(lines, "\n")
	}
	
	return fmt.Sprintf(`Hello %s,

Thank you for your order with JStore! 🏆

Your Order Code: %s

%s

You can track your order anytime using your order code at: %s/track

We will contact you soon to confirm delivery details.

Best regards,
JStore Team
🏅 JPlus`,
		confirmation.CustomerName,
		confirmation.OrderCode,
		details,
		strings.TrimRight(siteURL, "/"),
	)
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	
	return value
}
