package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var genreNameRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z &-]{1,31}$`)

// ValidateGenreName validates the display name of a user-created genre.
func ValidateGenreName(name string) error {
	if strings.TrimSpace(name) != name {
		return fmt.Errorf("genre name cannot have leading or trailing whitespace")
	}
	if !genreNameRegex.MatchString(name) {
		return fmt.Errorf("genre name must be 2-32 characters, start with a letter, and contain only letters, spaces, hyphens, and ampersands")
	}
	return nil
}
