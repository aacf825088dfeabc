package search

import (
	"strings"
	"unicode/utf8"
)

// The remote index rejects oversized payloads, so records are shrunk before
// transmission: long free text is capped, bulky structured fields dropped,
// and the image array reduced to a single representative thumbnail.
const (
	// textFieldCap is the hard cap on free-text index fields.
	textFieldCap = 1000
	// truncationMarker is appended to any capped field.
	truncationMarker = "..."
)

// truncatedTextFields are the free-text fields subject to the cap.
var truncatedTextFields = []string{"description", "benefits", "eligibility", "application_process"}

// droppedFields never reach the index.
var droppedFields = []string{"application_form", "additional_info"}

// Clean returns a shrunk copy of rec safe to send to the index. The input
// record is not modified.
func Clean(rec Record) Record {
	cleaned := make(Record, len(rec))
	for k, v := range rec {
		cleaned[k] = v
	}

	// Keep only the first usable image as a thumbnail for search results.
	// blob: URLs are editor-local placeholders and never resolvable.
	if images, ok := cleaned["images"]; ok {
		cleaned["thumbnail"] = pickThumbnail(images)
		delete(cleaned, "images")
	}

	for _, field := range droppedFields {
		delete(cleaned, field)
	}

	for _, field := range truncatedTextFields {
		// The cap counts characters, not bytes, so multibyte text is never
		// cut mid-rune.
		if s, ok := cleaned[field].(string); ok && utf8.RuneCountInString(s) > textFieldCap {
			cleaned[field] = string([]rune(s)[:textFieldCap]) + truncationMarker
		}
	}

	return cleaned
}

// pickThumbnail returns the first non-placeholder image URL, or nil.
func pickThumbnail(images interface{}) interface{} {
	var urls []string
	switch v := images.(type) {
	case []string:
		urls = v
	case []interface{}:
		for _, item := range v {
			if s, ok := item.(string); ok {
				urls = append(urls, s)
			}
		}
	}
	for _, u := range urls {
		if u != "" && !strings.HasPrefix(u, "blob:") {
			return u
		}
	}
	return nil
}
