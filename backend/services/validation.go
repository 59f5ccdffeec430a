// ABOUTME: Input validation for location identifiers supplied by clients
// ABOUTME: Keeps district and station names printable and bounded before lookup or logging

package services

import (
	"fmt"
	"regexp"
	"strings"
)

const maxNameLength = 64

// locationNamePattern allows the punctuation seen in gauge station names,
// e.g. "Chennai (Nungambakkam)" or "St. Thomas Mount".
var locationNamePattern = regexp.MustCompile(`^[\p{L}\p{N}][\p{L}\p{N} .,'()/&_-]*$`)

// sanitizeForLog removes control characters and truncates, so user input
// can be echoed into logs and error messages.
func sanitizeForLog(s string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r < 32 || r == 127 {
			return -1
		}
		return r
	}, s)
	if len(cleaned) > maxNameLength {
		cleaned = cleaned[:maxNameLength] + "..."
	}
	return cleaned
}

// NormalizeLocation trims a district or station name.
func NormalizeLocation(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// ValidateLocationName rejects names that could never match the dataset.
// Empty names are reported separately as a missing location.
func ValidateLocationName(field, name string) error {
	if len(name) > maxNameLength {
		return fmt.Errorf("%s is longer than %d characters", field, maxNameLength)
	}
	if !locationNamePattern.MatchString(name) {
		return fmt.Errorf("invalid %s format: %s", field, sanitizeForLog(name))
	}
	return nil
}
