package record

import (
	"time"

	"github.com/jamesearlywine/dynamodb-relational-store/identifier"
)

// Factory builds fully-formed records. The wall clock and the time-ordered
// ID source are injectable so tests can verify timestamps and IDs
// deterministically.
type Factory struct {
	now   func() time.Time
	newID func() (string, error)
}

// Option configures a Factory.
type Option func(*Factory)

// WithClock overrides the wall clock used for record timestamps.
func WithClock(now func() time.Time) Option {
	return func(f *Factory) { f.now = now }
}

// WithIDSource overrides time-ordered ID generation.
func WithIDSource(newID func() (string, error)) Option {
	return func(f *Factory) { f.newID = newID }
}

// NewFactory returns a Factory using the system clock and identifier.NewID
// unless overridden.
func NewFactory(opts ...Option) *Factory {
	f := &Factory{
		now:   time.Now,
		newID: identifier.NewID,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// defaultFactory backs the package-level constructors.
var defaultFactory = NewFactory()

func (f *Factory) timestamp() string {
	return identifier.Timestamp(f.now())
}

// NewResource builds a Resource record with the default factory.
func NewResource(o ResourceOptions) (*Resource, error) {
	return defaultFactory.NewResource(o)
}

// NewParentChildRelationship builds a parent-child relationship record with
// the default factory.
func NewParentChildRelationship(o ParentChildRelationshipOptions) (*ParentChildRelationship, error) {
	return defaultFactory.NewParentChildRelationship(o)
}

// NewCollectionMembershipRelationship builds a collection membership record
// with the default factory.
func NewCollectionMembershipRelationship(o CollectionMembershipRelationshipOptions) (*CollectionMembershipRelationship, error) {
	return defaultFactory.NewCollectionMembershipRelationship(o)
}

// NewUniqueKeyValue builds a uniqueness-constraint record with the default
// factory.
func NewUniqueKeyValue(o UniqueKeyValueOptions) (*UniqueKeyValue, error) {
	return defaultFactory.NewUniqueKeyValue(o)
}
