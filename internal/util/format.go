package util

import (
	"fmt"
	
	"github.com/dustin/go-humanize"
)

// FormatEUR renders an amount in cents: 2000 -> "€20", 2350 -> "€23.50",
// 125000 -> "€1,250".
func FormatEUR(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	
	whole := humanize.Comma(cents / 100)
	if cents%100 == 0 {
		return fmt.Sprintf("%s€%s", sign, whole)
	}
	
	return fmt.Sprintf("%s€%s.%02d", sign, whole, cents%100)
}

// TruncateContent shortens text to maxLength runes, adding "..." when cut.
func TruncateContent(text string, maxLength int) string {
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}
	return string(runes[:maxLength]) + "..."
}

func StringPointer(s string) *string {
	return &s
}

func DerefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
