package task

import (
	"regexp"
	"strings"
)

const (
	maxSlugLength = 50
	fallbackSlug  = "task"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// GenerateSlug converts a title to a filename-friendly slug.
func GenerateSlug(title string) string {
	slug := strings.ToLower(title)
	slug = nonAlphanumeric.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")

	if len(slug) > maxSlugLength {
		truncated := slug[:maxSlugLength]
		// Only trim to last hyphen if we cut mid-word.
		if slug[maxSlugLength] != '-' {
			if idx := strings.LastIndex(truncated, "-"); idx > 0 {
				truncated = truncated[:idx]
			}
		}
		slug = strings.TrimRight(truncated, "-")
	}

	if slug == "" {
		return fallbackSlug
	}
	return slug
}

// GenerateFilename creates a task filename from an ID and slug. IDs never
// contain hyphens, so the ID is everything before the first one.
func GenerateFilename(id, slug string) string {
	return id + "-" + slug + ".md"
}
