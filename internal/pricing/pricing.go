// Package pricing holds the storefront's fixed price list.
package pricing

import (
	"strings"
	
	"github.com/jplus/jstore-api/internal/util"
)

type Code string

const (
	Regular Code = "regular"
	Retro   Code = "retro"
	Kids    Code = "kids"
	Print   Code = "print"
	Patches Code = "patches"
)

type Item struct {
	Code        Code   `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents"`
	Price       string `json:"price"`
}

type Bundle struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Breakdown   string `json:"breakdown"`
	TotalCents  int64  `json:"total_cents"`
	Total       string `json:"total"`
}

type PriceList struct {
	Products []Item   `json:"products"`
	AddOns   []Item   `json:"add_ons"`
	Examples []Bundle `json:"examples"`
}

var prices = map[Code]int64{
	Regular: 2000,
	Retro:   2500,
	Kids:    2500,
	Print:   300,
	Patches: 200,
}

func item(code Code, name, description string) Item {
	return Item{
		Code:        code,
		Name:        name,
		Description: description,
		PriceCents:  prices[code],
		Price:       util.FormatEUR(prices[code]),
	}
}

func bundle(name, description string, codes ...Code) Bundle {
	parts := make([]string, 0, len(codes))
	var total int64
	for _, code := range codes {
		parts = append(parts, util.FormatEUR(prices[code]))
		total += prices[code]
	}
	
	return Bundle{
		Name:        name,
		Description: description,
		Breakdown:   strings.Join(parts, " + "),
		TotalCents:  total,
		Total:       util.FormatEUR(total),
	}
}

func List() PriceList {
	return PriceList{
		Products: []Item{
			item(Regular, "Regular Jersey", "Current season jerseys"),
			item(Retro, "Retro Jersey", "Classic vintage jerseys"),
			item(Kids, "Kids Jersey + Shorts", "Complete kids set"),
		},
		AddOns: []Item{
			item(Print, "Number + Name Print", "Custom player name and number"),
			item(Patches, "Patches", "Official league badges and patches"),
		},
		Examples: []Bundle{
			bundle("Regular Jersey with Print", "Regular Jersey + Name & Number", Regular, Print),
			bundle("Retro Jersey Complete", "Retro Jersey + Name & Number + Patches", Retro, Print, Patches),
			bundle("Kids Complete Set", "Kids Jersey + Shorts + Name & Number", Kids, Print),
		},
	}
}

// ProductCode guesses the price category from a catalog title.
func ProductCode(title string) Code {
	lower := strings.ToLower(title)
	switch {
	case strings.Contains(lower, "kids") || strings.Contains(lower, "criança") || strings.Contains(lower, "infantil"):
		return Kids
	case strings.Contains(lower, "retro") || strings.Contains(lower, "vintage"):
		return Retro
	default:
		return Regular
	}
}

// LinePriceCents is the estimated price of quantity units of a title, with
// the name and number print when requested.
func LinePriceCents(title string, print bool, quantity int) int64 {
	unit := prices[ProductCode(title)]
	if print {
		unit += prices[Print]
	}
	
	return unit * int64(quantity)
}
