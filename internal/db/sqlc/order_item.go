package db

import (
	"fmt"
	"strings"
)

// OrderItem is one catalog line stored in orders.items.
type OrderItem struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Size        string `json:"size"`
	Quantity    int    `json:"quantity"`
	Print       bool   `json:"print"`
	PrintName   string `json:"print_name,omitempty"`
	PrintNumber string `json:"print_number,omitempty"`
}

// TotalQuantity sums the quantities of all items of an order.
func (order Order) TotalQuantity() int {
	total := 0
	for _, item := range order.Items {
		total += item.Quantity
	}
	
	return total
}

// Summary is the one-line description used by staff notifications.
func (order Order) Summary() string {
	if order.Type == OrderTypeCustom {
		return "Pedido personalizado"
	}
	
	parts := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		parts = append(parts, fmt.Sprintf("%s (%s) x%d", item.ProductName, item.Size, item.Quantity))
	}
	
	return strings.Join(parts, ", ")
}
