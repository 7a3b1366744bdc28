// Package cart holds the shopping cart model and its redis-backed store.
package cart

import (
	"errors"
	
	"github.com/jplus/jstore-api/internal/sizing"
)

var ErrLineNotFound = errors.New("cart line not found")

type Line struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Size        string `json:"size"`
	Quantity    int    `json:"quantity"`
	Print       bool   `json:"print"`
	PrintName   string `json:"print_name,omitempty"`
	PrintNumber string `json:"print_number,omitempty"`
}

// sameItem reports whether two lines describe the same purchasable item.
func (l Line) sameItem(other Line) bool {
	return l.ProductID == other.ProductID &&
		l.Size == other.Size &&
		l.Print == other.Print &&
		l.PrintName == other.PrintName &&
		l.PrintNumber == other.PrintNumber
}

// LineChanges is a partial update of a line. Nil fields are left untouched.
type LineChanges struct {
	Size        *string `json:"size"`
	Quantity    *int    `json:"quantity"`
	Print       *bool   `json:"print"`
	PrintName   *string `json:"print_name"`
	PrintNumber *string `json:"print_number"`
}

// Cart never holds two lines describing the same item.
type Cart struct {
	ID    string `json:"id"`
	Items []Line `json:"items"`
}

func New(id string) *Cart {
	return &Cart{ID: id, Items: []Line{}}
}

// Add merges line into an existing identical line or appends it.
func (c *Cart) Add(line Line) {
	c.Items = append(c.Items, normalizeLine(line))
	c.mergeDuplicates()
}

func (c *Cart) Update(index int, changes LineChanges) error {
	if index < 0 || index >= len(c.Items) {
		return ErrLineNotFound
	}
	
	line := c.Items[index]
	if changes.Size != nil {
		line.Size = *changes.Size
	}
	if changes.Quantity != nil {
		line.Quantity = *changes.Quantity
	}
	if changes.Print != nil {
		line.Print = *changes.Print
	}
	if changes.PrintName != nil {
		line.PrintName = *changes.PrintName
	}
	if changes.PrintNumber != nil {
		line.PrintNumber = *changes.PrintNumber
	}
	
	c.Items[index] = normalizeLine(line)
	c.mergeDuplicates()
	
	return nil
}

func (c *Cart) Remove(index int) error {
	if index < 0 || index >= len(c.Items) {
		return ErrLineNotFound
	}
	
	c.Items = append(c.Items[:index], c.Items[index+1:]...)
	return nil
}

func (c *Cart) Clear() {
	c.Items = []Line{}
}

func (c *Cart) TotalItems() int {
	total := 0
	for _, line := range c.Items {
		total += line.Quantity
	}
	
	return total
}

// CorrectSizes replaces every size the product title no longer offers with
// the first size it does offer. It reports whether anything changed.
func (c *Cart) CorrectSizes() bool {
	changed := false
	for i, line := range c.Items {
		corrected := sizing.CorrectSize(line.ProductName, line.Size)
		if corrected != line.Size {
			c.Items[i].Size = corrected
			changed = true
		}
	}
	
	if changed {
		c.mergeDuplicates()
	}
	
	return changed
}

func normalizeLine(line Line) Line {
	if line.Quantity < 1 {
		line.Quantity = 1
	}
	
	if line.Size == "" {
		line.Size = sizing.DefaultSize(line.ProductName)
	}
	
	if !line.Print {
		line.PrintName = ""
		line.PrintNumber = ""
	}
	
	return line
}

// mergeDuplicates folds later lines into the first line with the same
// identity, keeping the order of first appearance.
func (c *Cart) mergeDuplicates() {
	merged := make([]Line, 0, len(c.Items))
	for _, line := range c.Items {
		found := false
		for i := range merged {
			if merged[i].sameItem(line) {
				merged[i].Quantity += line.Quantity
				found = true
				break
			}
		}
		
		if !found {
			merged = append(merged, line)
		}
	}
	
	c.Items = merged
}
