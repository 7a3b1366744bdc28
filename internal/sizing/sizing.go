// Package sizing infers the purchasable garment sizes encoded in a free-text
// product title and produces a display title with those tokens removed.
package sizing

import (
	"regexp"
	"sort"
	"strings"
)

// Two competing size systems. A title uses exactly one of them.
var (
	TraditionalSizes = []string{"XS", "S", "M", "L", "XL", "XXL", "XXXL", "XXXXL"}
	NumericSizes     = []string{"XS", "S", "M", "L", "XL", "2XL", "3XL", "4XL", "5XL"}
	DefaultSizes     = []string{"S", "M", "L", "XL", "XXL"}
)

const sizeToken = `XS|S|M|L|XL|XXL|XXXL|XXXXL|2XL|3XL|4XL|5XL`

var (
	rangePattern      = regexp.MustCompile(`(?i)(` + sizeToken + `)-(` + sizeToken + `)`)
	individualPattern = regexp.MustCompile(`(?i)\b(` + sizeToken + `)\b`)
	numericSuffix     = regexp.MustCompile(`[2-5]XL`)

	enumerationPattern = regexp.MustCompile(`(?i)\b(?:available\s+in\s+|sizes?\s+)?(?:` + sizeToken + `)(?:\s*,\s*(?:` + sizeToken + `))+\b`)
	sizeWordPattern    = regexp.MustCompile(`(?i)\b(available|disponível|tamanhos?|sizes?|range|faixa|available\s+in)\b`)
	whitespacePattern  = regexp.MustCompile(`\s+`)
	trailingSeparators = regexp.MustCompile(`[-,\s]+$`)
	leadingSeparators  = regexp.MustCompile(`^[-,\s]+`)
)

// Result is what a title yields: the ordered sizes a buyer may pick and the
// title with the size noise stripped.
type Result struct {
	Sizes        []string `json:"sizes"`
	CleanedTitle string   `json:"cleaned_title"`
}

// ExtractSizes never fails. A title without size information yields DefaultSizes.
func ExtractSizes(title string) Result {
	return Result{
		Sizes:        AvailableSizes(title),
		CleanedTitle: CleanTitle(title),
	}
}

// AvailableSizes returns the ordered list of selectable sizes for a title.
func AvailableSizes(title string) []string {
	if sizes, ok := sizesFromRange(title); ok {
		return sizes
	}
	
	if sizes, ok := sizesFromEnumeration(title); ok {
		return sizes
	}
	
	return clone(DefaultSizes)
}

// DefaultSize is the size preselected when a product is added to the cart.
func DefaultSize(title string) string {
	return AvailableSizes(title)[0]
}

// CorrectSize keeps size when the title still offers it, otherwise it falls
// back to the first valid size.
func CorrectSize(title, size string) string {
	sizes := AvailableSizes(title)
	if Contains(sizes, size) {
		return size
	}
	
	return sizes[0]
}

func Contains(sizes []string, size string) bool {
	for _, s := range sizes {
		if s == size {
			return true
		}
	}
	
	return false
}

// sizesFromRange resolves the first "X-Y" pair. Only the first match is
// considered, even if it turns out to be invalid.
func sizesFromRange(title string) ([]string, bool) {
	match := rangePattern.FindStringSubmatch(title)
	if match == nil {
		return nil, false
	}
	
	start := strings.ToUpper(match[1])
	end := strings.ToUpper(match[2])
	system := systemForRangeEnd(end)
	
	startIndex := indexOf(system, start)
	endIndex := indexOf(system, end)
	if startIndex == -1 || endIndex == -1 || startIndex > endIndex {
		return nil, false
	}
	
	return clone(system[startIndex : endIndex+1]), true
}

// systemForRangeEnd picks the vocabulary from the end token. A plain range
// such as "S-XL" is read as Traditional.
func systemForRangeEnd(end string) []string {
	switch {
	case end == "XXL" || end == "XXXL" || end == "XXXXL":
		return TraditionalSizes
	case numericSuffix.MatchString(end):
		return NumericSizes
	default:
		return TraditionalSizes
	}
}

// sizesFromEnumeration needs at least three raw token matches ("S, M, L").
func sizesFromEnumeration(title string) ([]string, bool) {
	matches := individualPattern.FindAllString(title, -1)
	if len(matches) < 3 {
		return nil, false
	}
	
	seen := make(map[string]bool, len(matches))
	unique := make([]string, 0, len(matches))
	hasNumeric := false
	for _, m := range matches {
		size := strings.ToUpper(m)
		if seen[size] {
			continue
		}
		seen[size] = true
		unique = append(unique, size)
		
		if numericSuffix.MatchString(size) {
			hasNumeric = true
		}
	}
	
	reference := TraditionalSizes
	if hasNumeric {
		reference = NumericSizes
	}
	
	// Tokens missing from the reference sort with index -1, ahead of the rest.
	sort.SliceStable(unique, func(i, j int) bool {
		return indexOf(reference, unique[i]) < indexOf(reference, unique[j])
	})
	
	return unique, true
}

// CleanTitle removes size ranges, enumerations and size vocabulary words
// (English and Portuguese) from a product title.
func CleanTitle(title string) string {
	clean := rangePattern.ReplaceAllString(title, "")
	clean = enumerationPattern.ReplaceAllString(clean, "")
	clean = sizeWordPattern.ReplaceAllString(clean, "")
	
	clean = strings.TrimSpace(whitespacePattern.ReplaceAllString(clean, " "))
	clean = strings.TrimSpace(trailingSeparators.ReplaceAllString(clean, ""))
	clean = strings.TrimSpace(leadingSeparators.ReplaceAllString(clean, ""))
	
	return clean
}

func indexOf(system []string, size string) int {
	for i, s := range system {
		if s == size {
			return i
		}
	}
	
	return -1
}

func clone(sizes []string) []string {
	out := make([]string, len(sizes))
	copy(out, sizes)
	return out
}
