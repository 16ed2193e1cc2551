package record

import "errors"

var (
	// ErrEmptyField is returned when a required string field is empty or
	// whitespace-only.
	ErrEmptyField = errors.New("relstore: required field is empty")

	// ErrMissingAccountUrn is returned when a collection membership is
	// created without an owning account URN. Distinct from a format error:
	// the field is absent, not malformed.
	ErrMissingAccountUrn = errors.New("relstore: accountUrn is required")

	// ErrInvalidSchemaVersion is returned when schemaVersion is not a
	// positive integer.
	ErrInvalidSchemaVersion = errors.New("relstore: schemaVersion must be a positive integer")

	// ErrReservedAttribute is returned when a caller-supplied attribute key
	// collides with a reserved record field name.
	ErrReservedAttribute = errors.New("relstore: attribute key collides with a reserved record field")

	// ErrRecordType is returned when an item is decoded as a variant its
	// discriminant does not match.
	ErrRecordType = errors.New("relstore: item is not of the expected record type")
)
