package identifier

import (
	"fmt"
	"regexp"

	"github.com/google/uuid"
)

// idPattern matches the canonical hyphenated rendering of a time-ordered
// unique ID: hex groups 8-4-4-4-12 with version nibble 7 and an RFC 4122
// variant nibble. Matching is case-insensitive; generation always emits
// lowercase.
var idPattern = regexp.MustCompile(`^(?i)[0-9a-f]{8}-[0-9a-f]{4}-7[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

// NewID returns a fresh time-ordered unique ID (UUIDv7). The high-order bits
// carry a millisecond timestamp, so IDs generated in later milliseconds sort
// strictly greater as case-insensitive strings; the tail is cryptographically
// random.
func NewID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("relstore: generate time-ordered id: %w", err)
	}
	return id.String(), nil
}

// IsValidID reports whether s matches the time-ordered unique ID grammar.
func IsValidID(s string) bool {
	return idPattern.MatchString(s)
}
