package record

import (
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"

	"github.com/jamesearlywine/dynamodb-relational-store/identifier"
	"github.com/jamesearlywine/dynamodb-relational-store/keys"
)

// ParentChildRelationship is a directed 1:n hierarchical edge, keyed
// Parent#{parentUrn} / Child#{childUrn}. When a parent is deleted the
// storage client must cascade the delete to its children; this package only
// shapes the records that policy operates on.
type ParentChildRelationship struct {
	PK         string `dynamodbav:"PK"`
	SK         string `dynamodbav:"SK"`
	RecordType Type   `dynamodbav:"_recordType"`
	ParentUrn  string `dynamodbav:"parentUrn"`
	ChildUrn   string `dynamodbav:"childUrn"`
	CreatedAt  string `dynamodbav:"_createdAt"`
	AccountUrn string `dynamodbav:"accountUrn,omitempty"`
}

// ParentChildRelationshipOptions are the inputs to
// NewParentChildRelationship.
type ParentChildRelationshipOptions struct {
	// ParentUrn and ChildUrn are required and must both validate.
	ParentUrn string
	ChildUrn  string

	// AccountUrn optionally names the owning account.
	AccountUrn string
}

// NewParentChildRelationship validates both URNs (parent first) and the
// optional account URN, then assembles the edge record.
func (f *Factory) NewParentChildRelationship(o ParentChildRelationshipOptions) (*ParentChildRelationship, error) {
	pk, err := keys.ParentChild(o.ParentUrn, o.ChildUrn)
	if err != nil {
		return nil, err
	}
	accountUrn := strings.TrimSpace(o.AccountUrn)
	if accountUrn != "" && !identifier.IsValidUrn(accountUrn) {
		return nil, fmt.Errorf("accountUrn %q: %w", accountUrn, identifier.ErrInvalidUrn)
	}
	return &ParentChildRelationship{
		PK:         pk.PK,
		SK:         pk.SK,
		RecordType: TypeParentChild,
		ParentUrn:  o.ParentUrn,
		ChildUrn:   o.ChildUrn,
		CreatedAt:  f.timestamp(),
		AccountUrn: accountUrn,
	}, nil
}

// Item renders the record as a DynamoDB item with its GSI1 inversion.
func (r *ParentChildRelationship) Item() (Item, error) {
	item, err := attributevalue.MarshalMap(r)
	if err != nil {
		return nil, fmt.Errorf("relstore: marshal parent-child relationship: %w", err)
	}
	applyIndexKeys(item, keys.Primary{PK: r.PK, SK: r.SK}, "", "")
	return item, nil
}

// CollectionMembershipRelationship is an n:n membership edge, keyed
// Collection#{collectionUrn} / Member#{memberUrn}. Unlike a parent-child
// edge, the owning account is mandatory.
type CollectionMembershipRelationship struct {
	PK            string `dynamodbav:"PK"`
	SK            string `dynamodbav:"SK"`
	RecordType    Type   `dynamodbav:"_recordType"`
	CollectionUrn string `dynamodbav:"collectionUrn"`
	MemberUrn     string `dynamodbav:"memberUrn"`
	CreatedAt     string `dynamodbav:"_createdAt"`
	AccountUrn    string `dynamodbav:"accountUrn"`
}

// CollectionMembershipRelationshipOptions are the inputs to
// NewCollectionMembershipRelationship. All three URNs are required.
type CollectionMembershipRelationshipOptions struct {
	CollectionUrn string
	MemberUrn     string
	AccountUrn    string
}

// NewCollectionMembershipRelationship validates in a fixed order: accountUrn
// presence, collectionUrn, memberUrn, accountUrn format.
func (f *Factory) NewCollectionMembershipRelationship(o CollectionMembershipRelationshipOptions) (*CollectionMembershipRelationship, error) {
	accountUrn := strings.TrimSpace(o.AccountUrn)
	if accountUrn == "" {
		return nil, ErrMissingAccountUrn
	}
	pk, err := keys.CollectionMember(o.CollectionUrn, o.MemberUrn)
	if err != nil {
		return nil, err
	}
	if !identifier.IsValidUrn(accountUrn) {
		return nil, fmt.Errorf("accountUrn %q: %w", accountUrn, identifier.ErrInvalidUrn)
	}
	return &CollectionMembershipRelationship{
		PK:            pk.PK,
		SK:            pk.SK,
		RecordType:    TypeCollectionMember,
		CollectionUrn: o.CollectionUrn,
		MemberUrn:     o.MemberUrn,
		CreatedAt:     f.timestamp(),
		AccountUrn:    accountUrn,
	}, nil
}

// Item renders the record as a DynamoDB item with its GSI1 inversion.
func (r *CollectionMembershipRelationship) Item() (Item, error) {
	item, err := attributevalue.MarshalMap(r)
	if err != nil {
		return nil, fmt.Errorf("relstore: marshal collection membership: %w", err)
	}
	applyIndexKeys(item, keys.Primary{PK: r.PK, SK: r.SK}, "", "")
	return item, nil
}
