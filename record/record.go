package record

import (
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jamesearlywine/dynamodb-relational-store/keys"
)

// Item is a DynamoDB attribute map: the form a record takes on the wire,
// produced by a factory and consumed by the storage client.
type Item map[string]types.AttributeValue

// Type is the discriminant identifying which variant a record represents.
type Type string

// The four record variants. The strings are part of the wire contract.
const (
	TypeResource         Type = "Resource"
	TypeParentChild      Type = "ParentChildRelationship"
	TypeCollectionMember Type = "CollectionMemberRelationship"
	TypeUniqueKeyValue   Type = "UniqueKeyValue"
)

// reserved are the field names caller-supplied attributes may not shadow.
var reserved = map[string]struct{}{
	keys.AttrPK:           {},
	keys.AttrSK:           {},
	keys.AttrGSI1PK:       {},
	keys.AttrGSI1SK:       {},
	keys.AttrGSI2PK:       {},
	keys.AttrGSI2SK:       {},
	keys.AttrRecordType:   {},
	"resourceType":        {},
	"id":                  {},
	"urn":                 {},
	"schemaVersion":       {},
	"accountUrn":          {},
	"parentUrn":           {},
	"childUrn":            {},
	"collectionUrn":       {},
	"memberUrn":           {},
	"key":                 {},
	"value":               {},
	"associatedRecordUrn": {},
	"_createdAt":          {},
	"_updatedAt":          {},
}

// TypeOf returns the discriminant of an item. The second return is false
// when the item has no string _recordType attribute.
func TypeOf(item Item) (Type, bool) {
	v, ok := item[keys.AttrRecordType].(*types.AttributeValueMemberS)
	if !ok {
		return "", false
	}
	return Type(v.Value), true
}

// IsResource reports whether the item is a Resource record.
func IsResource(item Item) bool {
	t, ok := TypeOf(item)
	return ok && t == TypeResource
}

// IsParentChildRelationship reports whether the item is a parent-child
// relationship record.
func IsParentChildRelationship(item Item) bool {
	t, ok := TypeOf(item)
	return ok && t == TypeParentChild
}

// IsCollectionMembershipRelationship reports whether the item is a
// collection membership record.
func IsCollectionMembershipRelationship(item Item) bool {
	t, ok := TypeOf(item)
	return ok && t == TypeCollectionMember
}

// IsUniqueKeyValue reports whether the item is a uniqueness-constraint
// record.
func IsUniqueKeyValue(item Item) bool {
	t, ok := TypeOf(item)
	return ok && t == TypeUniqueKeyValue
}

// applyIndexKeys stamps the GSI1 inversion on an item and, when the record
// carries both an owning account and a subject URN, the sparse GSI2
// projection.
func applyIndexKeys(item Item, p keys.Primary, accountUrn, urn string) {
	inv := keys.Invert(p)
	item[keys.AttrGSI1PK] = &types.AttributeValueMemberS{Value: inv.GSI1PK}
	item[keys.AttrGSI1SK] = &types.AttributeValueMemberS{Value: inv.GSI1SK}
	if accountUrn != "" && urn != "" {
		item[keys.AttrGSI2PK] = &types.AttributeValueMemberS{Value: accountUrn}
		item[keys.AttrGSI2SK] = &types.AttributeValueMemberS{Value: urn}
	}
}
