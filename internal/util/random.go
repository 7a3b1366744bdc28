package util

import (
	"fmt"
	
	"github.com/gosimple/slug"
	"github.com/lithammer/shortuuid/v4"
)

// GenerateRandomSlug builds "<slugified-name>-<8 char short id>".
func GenerateRandomSlug(name string) string {
	baseSlug := slug.Make(name)
	shortID := shortuuid.New()[:8]
	
	if baseSlug == "" {
		return shortID
	}
	
	return fmt.Sprintf("%s-%s", baseSlug, shortID)
}
