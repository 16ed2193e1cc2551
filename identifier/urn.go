// Package identifier defines the identifier grammars embedded in store
// records: URNs, time-ordered unique IDs, and ISO 8601 timestamps.
package identifier

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrInvalidUrn is returned when a string does not match the URN grammar
	// urn:{domain}:{resourceType}::{resourceId}.
	ErrInvalidUrn = errors.New("relstore: invalid urn")

	// ErrInvalidID is returned when a string does not match the time-ordered
	// unique ID grammar.
	ErrInvalidID = errors.New("relstore: invalid time-ordered id")
)

// urnPattern matches urn:{domain}:{resourceType}::{resourceId} where no
// component may itself contain a colon.
var urnPattern = regexp.MustCompile(`^urn:([^:]+):([^:]+)::([^:]+)$`)

// Urn is a parsed resource identifier of the form
// urn:{domain}:{resourceType}::{resourceId}.
type Urn struct {
	Domain       string
	ResourceType string
	ResourceID   string
}

// String renders the URN in its canonical wire form.
func (u Urn) String() string {
	return fmt.Sprintf("urn:%s:%s::%s", u.Domain, u.ResourceType, u.ResourceID)
}

// ParseUrn splits a URN string into its components. Components are trimmed
// and must be non-empty. The resourceId is not checked against the
// time-ordered ID grammar here; use IsValidUrn when that guarantee is needed.
func ParseUrn(s string) (Urn, error) {
	m := urnPattern.FindStringSubmatch(s)
	if m == nil {
		return Urn{}, fmt.Errorf("%w: %q does not match urn:{domain}:{resourceType}::{resourceId}", ErrInvalidUrn, s)
	}
	u := Urn{
		Domain:       strings.TrimSpace(m[1]),
		ResourceType: strings.TrimSpace(m[2]),
		ResourceID:   strings.TrimSpace(m[3]),
	}
	switch {
	case u.Domain == "":
		return Urn{}, fmt.Errorf("%w: domain is empty in %q", ErrInvalidUrn, s)
	case u.ResourceType == "":
		return Urn{}, fmt.Errorf("%w: resourceType is empty in %q", ErrInvalidUrn, s)
	case u.ResourceID == "":
		return Urn{}, fmt.Errorf("%w: resourceId is empty in %q", ErrInvalidUrn, s)
	}
	return u, nil
}

// NewUrn builds a URN from its components. All components are trimmed; the
// resourceID must match the time-ordered unique ID grammar.
func NewUrn(domain, resourceType, resourceID string) (Urn, error) {
	u := Urn{
		Domain:       strings.TrimSpace(domain),
		ResourceType: strings.TrimSpace(resourceType),
		ResourceID:   strings.TrimSpace(resourceID),
	}
	switch {
	case u.Domain == "":
		return Urn{}, fmt.Errorf("%w: domain is empty", ErrInvalidUrn)
	case u.ResourceType == "":
		return Urn{}, fmt.Errorf("%w: resourceType is empty", ErrInvalidUrn)
	case strings.Contains(u.Domain, "#"), strings.Contains(u.ResourceType, "#"):
		return Urn{}, fmt.Errorf("%w: components must not contain '#'", ErrInvalidUrn)
	case !IsValidID(u.ResourceID):
		return Urn{}, fmt.Errorf("%w: resourceId %q is not a time-ordered unique ID", ErrInvalidID, u.ResourceID)
	}
	return u, nil
}

// IsValidUrn reports whether s parses as a URN whose resourceId matches the
// time-ordered unique ID grammar. It never returns an error; callers use it
// as a guard before key derivation.
func IsValidUrn(s string) bool {
	u, err := ParseUrn(s)
	if err != nil {
		return false
	}
	return IsValidID(u.ResourceID)
}
