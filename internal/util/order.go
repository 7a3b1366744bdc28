package util

import (
	"strconv"
	"strings"
)

type OrderType string

const (
	OrderTypeCatalog OrderType = "catalog"
	OrderTypeCustom  OrderType = "custom"
)

const (
	catalogOrderPrefix = "JS"
	customOrderPrefix  = "CU"
	maxOrderCodeLength = 12
)

// GenerateOrderCode derives a short shareable code from the customer phone,
// the ordered product IDs and the submission time in Unix milliseconds.
//
// Catalog: JS + last 4 phone digits + first 4 chars of the joined product IDs
// + last 4 digits of the timestamp, capped at 12 characters.
// Custom:  CU + last 4 phone digits + last 6 digits of the timestamp.
//
// Short inputs give shorter fragments. The code is not guaranteed unique: two
// submissions from the same phone with the same products in the same
// millisecond window collide, and nothing here checks earlier codes.
func GenerateOrderCode(orderType OrderType, phone string, productIDs []string, nowMillis int64) string {
	phoneDigits := LastDigits(PhoneDigits(phone), 4)
	timestamp := strconv.FormatInt(nowMillis, 10)
	
	if orderType == OrderTypeCustom {
		return strings.ToUpper(customOrderPrefix + phoneDigits + lastChars(timestamp, 6))
	}
	
	products := firstChars(strings.Join(productIDs, ""), 4)
	code := strings.ToUpper(catalogOrderPrefix + phoneDigits + products + lastChars(timestamp, 4))
	
	return firstChars(code, maxOrderCodeLength)
}

// NormalizeOrderCode prepares a customer supplied code for an exact lookup.
func NormalizeOrderCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func lastChars(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

func firstChars(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// CustomOrderNotes is the free-text record kept for a custom order.
func CustomOrderNotes(request string, imageURLs []string) string {
	var b strings.Builder
	b.WriteString("Custom Request: " + request + "\n\n")
	
	if len(imageURLs) > 0 {
		b.WriteString("Images: " + strings.Join(imageURLs, ", ") + "\n\n")
	}
	
	b.WriteString("Status: Requires manual processing")
	return b.String()
}
