// Package keys derives the partition, sort, and secondary index keys of the
// single-table layout. Key strings are the wire contract with the underlying
// table and must be reproduced byte for byte.
package keys

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jamesearlywine/dynamodb-relational-store/identifier"
)

// Attribute names used by every record in the table.
const (
	AttrPK         = "PK"
	AttrSK         = "SK"
	AttrGSI1PK     = "GSI1PK"
	AttrGSI1SK     = "GSI1SK"
	AttrGSI2PK     = "GSI2PK"
	AttrGSI2SK     = "GSI2SK"
	AttrRecordType = "_recordType"
)

// Secondary index names.
const (
	// IndexInverted swaps PK and SK for reverse traversal (children to parents).
	IndexInverted = "GSI1"

	// IndexAccount is sparse: only records carrying an owning-account URN
	// appear in it.
	IndexAccount = "GSI2"
)

// Key prefixes. '#' and '::' are reserved separators and must not appear
// unescaped inside key components.
const (
	PrefixResource       = "Resource#"
	PrefixParent         = "Parent#"
	PrefixChild          = "Child#"
	PrefixCollection     = "Collection#"
	PrefixMember         = "Member#"
	PrefixUniqueKeyValue = "UniqueKeyValue#"
)

// ErrEmptyComponent is returned when a key component is empty or
// whitespace-only.
var ErrEmptyComponent = errors.New("relstore: key component is empty")

// Primary is a partition/sort key pair.
type Primary struct {
	PK string
	SK string
}

// Inverted is the GSI1 projection of a primary key pair: roles swapped.
type Inverted struct {
	GSI1PK string
	GSI1SK string
}

// Account is the sparse GSI2 projection scoping a record to its owning
// account.
type Account struct {
	GSI2PK string
	GSI2SK string
}

// Resource returns the primary key pair for a resource record. PK and SK are
// both Resource#{urn}.
func Resource(urn string) (Primary, error) {
	if !identifier.IsValidUrn(urn) {
		return Primary{}, fmt.Errorf("urn %q: %w", urn, identifier.ErrInvalidUrn)
	}
	k := PrefixResource + urn
	return Primary{PK: k, SK: k}, nil
}

// ParentChild returns the primary key pair for a parent-child relationship
// record: Parent#{parentUrn} / Child#{childUrn}. The parent URN is checked
// first so the error names which side failed.
func ParentChild(parentUrn, childUrn string) (Primary, error) {
	if !identifier.IsValidUrn(parentUrn) {
		return Primary{}, fmt.Errorf("parentUrn %q: %w", parentUrn, identifier.ErrInvalidUrn)
	}
	if !identifier.IsValidUrn(childUrn) {
		return Primary{}, fmt.Errorf("childUrn %q: %w", childUrn, identifier.ErrInvalidUrn)
	}
	return Primary{PK: PrefixParent + parentUrn, SK: PrefixChild + childUrn}, nil
}

// CollectionMember returns the primary key pair for a collection membership
// record: Collection#{collectionUrn} / Member#{memberUrn}. The collection URN
// is checked first.
func CollectionMember(collectionUrn, memberUrn string) (Primary, error) {
	if !identifier.IsValidUrn(collectionUrn) {
		return Primary{}, fmt.Errorf("collectionUrn %q: %w", collectionUrn, identifier.ErrInvalidUrn)
	}
	if !identifier.IsValidUrn(memberUrn) {
		return Primary{}, fmt.Errorf("memberUrn %q: %w", memberUrn, identifier.ErrInvalidUrn)
	}
	return Primary{PK: PrefixCollection + collectionUrn, SK: PrefixMember + memberUrn}, nil
}

// UniqueKeyValue returns the primary key pair for a uniqueness-constraint
// record: UniqueKeyValue#{resourceType}#{key}#{value} /
// UniqueKeyValue#{resourceType}#{key}. Components are free-form strings (not
// URNs); each is trimmed and must be non-empty, checked in argument order.
//
// Components are joined with a literal '#' and are not escaped: a component
// that itself contains '#' yields a composite key that cannot be split back
// unambiguously. Known limitation of the key format.
func UniqueKeyValue(resourceType, key, value string) (Primary, error) {
	resourceType = strings.TrimSpace(resourceType)
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	switch {
	case resourceType == "":
		return Primary{}, fmt.Errorf("resourceType: %w", ErrEmptyComponent)
	case key == "":
		return Primary{}, fmt.Errorf("key: %w", ErrEmptyComponent)
	case value == "":
		return Primary{}, fmt.Errorf("value: %w", ErrEmptyComponent)
	}
	return Primary{
		PK: fmt.Sprintf("%s%s#%s#%s", PrefixUniqueKeyValue, resourceType, key, value),
		SK: fmt.Sprintf("%s%s#%s", PrefixUniqueKeyValue, resourceType, key),
	}, nil
}

// Invert swaps a primary key pair into its GSI1 projection. Total over any
// pair; never fails.
func Invert(p Primary) Inverted {
	return Inverted{GSI1PK: p.SK, GSI1SK: p.PK}
}

// AccountScoped returns the GSI2 projection for a record owned by an
// account. Both URNs are stored unchanged, with no prefix.
func AccountScoped(accountUrn, urn string) (Account, error) {
	if !identifier.IsValidUrn(accountUrn) {
		return Account{}, fmt.Errorf("accountUrn %q: %w", accountUrn, identifier.ErrInvalidUrn)
	}
	if !identifier.IsValidUrn(urn) {
		return Account{}, fmt.Errorf("urn %q: %w", urn, identifier.ErrInvalidUrn)
	}
	return Account{GSI2PK: accountUrn, GSI2SK: urn}, nil
}
