package db

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	
	"github.com/google/uuid"
)

// ErrUnknownProduct is returned when an order references a product that is not in the catalog.
var ErrUnknownProduct = errors.New("order references an unknown product")

type CreateCatalogOrderTxParams struct {
	OrderCode     string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Items         []OrderItem
}

// CreateCatalogOrderTx checks every referenced product exists, takes item
// names from the catalog and stores the order.
func (store *SQLStore) CreateCatalogOrderTx(ctx context.Context, arg CreateCatalogOrderTxParams) (Order, error) {
	var order Order
	
	err := store.ExecTx(ctx, func(qTx *Queries) error {
		ids, err := productIDs(arg.Items)
		if err != nil {
			return err
		}
		
		products, err := qTx.ListProductsByIDs(ctx, ids)
		if err != nil {
			return fmt.Errorf("failed to list products: %w", err)
		}
		
		if len(products) != len(ids) {
			return ErrUnknownProduct
		}
		
		applyCatalogNames(arg.Items, products)
		
		orderID, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate order id: %w", err)
		}
		
		order, err = qTx.CreateOrder(ctx, CreateOrderParams{
			ID:            orderID,
			OrderCode:     arg.OrderCode,
			CustomerName:  arg.CustomerName,
			CustomerEmail: arg.CustomerEmail,
			CustomerPhone: arg.CustomerPhone,
			Type:          OrderTypeCatalog,
			Items:         arg.Items,
			ImageURLs:     []string{},
		})
		if err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		
		return nil
	})
	
	return order, err
}

// productIDs returns the distinct numeric product ids of items.
func productIDs(items []OrderItem) ([]int64, error) {
	seen := make(map[int64]bool, len(items))
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		id, err := strconv.ParseInt(item.ProductID, 10, 64)
		if err != nil {
			return nil, ErrUnknownProduct
		}
		
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	
	return ids, nil
}

// applyCatalogNames sets each item's name to the title of its catalog product.
func applyCatalogNames(items []OrderItem, products []Product) {
	names := make(map[string]string, len(products))
	for _, product := range products {
		names[strconv.FormatInt(product.ID, 10)] = product.Name
	}
	
	for i := range items {
		if name, ok := names[items[i].ProductID]; ok {
			items[i].ProductName = name
		}
	}
}
