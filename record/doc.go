// Package record shapes the entity records of a single-table DynamoDB
// layout: primary resources, two relationship kinds, and uniqueness
// constraints.
//
// The package performs no I/O. Factories validate their inputs, derive keys
// via the keys package, stamp timestamps, and return fully-formed immutable
// records; a storage client consumes the rendered Items as put/query
// parameters.
//
// # Record Variants
//
//   - [Resource] - a primary entity, keyed Resource#{urn} on both PK and SK,
//     carrying an open bag of caller-supplied attributes
//   - [ParentChildRelationship] - a directed 1:n hierarchical edge, keyed
//     Parent#{parentUrn} / Child#{childUrn}
//   - [CollectionMembershipRelationship] - an n:n membership edge, keyed
//     Collection#{collectionUrn} / Member#{memberUrn}, always owned by an
//     account
//   - [UniqueKeyValue] - a uniqueness constraint on one (resourceType,
//     property) pair having a given value
//
// # Factories
//
// Use the package-level constructors for the system clock and ID source, or
// build a [Factory] with [WithClock] and [WithIDSource] for deterministic
// tests:
//
//	f := record.NewFactory(record.WithClock(func() time.Time { return fixed }))
//	r, err := f.NewResource(record.ResourceOptions{
//	    ResourceType:  "System.Account",
//	    SchemaVersion: 1,
//	})
//
// # Classification
//
// Records read back from the table are heterogeneous. The classifier
// predicates ([IsResource], [IsParentChildRelationship],
// [IsCollectionMembershipRelationship], [IsUniqueKeyValue]) discriminate on
// the _recordType attribute; exactly one returns true for any well-formed
// item. The Decode functions then recover the typed variant.
//
// # Errors
//
// The package defines domain-specific errors:
//
//   - [ErrEmptyField] - a required string field is empty or whitespace-only
//   - [ErrMissingAccountUrn] - a collection membership lacks its owning account
//   - [ErrInvalidSchemaVersion] - schemaVersion is not a positive integer
//   - [ErrReservedAttribute] - a caller attribute shadows a reserved field
//   - [ErrRecordType] - an item decoded as the wrong variant
//
// Format errors on URNs, IDs, and timestamps come from the identifier
// package and are wrapped with the name of the failing field.
package record
