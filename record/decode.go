package record

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jamesearlywine/dynamodb-relational-store/keys"
)

// DecodeResource decodes a stored item back into a Resource, recovering
// extension attributes into the open bag.
func DecodeResource(item Item) (*Resource, error) {
	if !IsResource(item) {
		return nil, fmt.Errorf("%w: want %s", ErrRecordType, TypeResource)
	}
	var r Resource
	if err := attributevalue.UnmarshalMap(item, &r); err != nil {
		return nil, fmt.Errorf("relstore: unmarshal resource: %w", err)
	}
	for k, v := range item {
		if _, ok := reserved[k]; ok {
			continue
		}
		var val any
		if err := attributevalue.Unmarshal(v, &val); err != nil {
			return nil, fmt.Errorf("relstore: unmarshal attribute %q: %w", k, err)
		}
		if r.Attributes == nil {
			r.Attributes = make(map[string]any)
		}
		r.Attributes[k] = val
	}
	return &r, nil
}

// DecodeParentChildRelationship decodes a stored parent-child relationship
// item.
func DecodeParentChildRelationship(item Item) (*ParentChildRelationship, error) {
	if !IsParentChildRelationship(item) {
		return nil, fmt.Errorf("%w: want %s", ErrRecordType, TypeParentChild)
	}
	var r ParentChildRelationship
	if err := attributevalue.UnmarshalMap(item, &r); err != nil {
		return nil, fmt.Errorf("relstore: unmarshal parent-child relationship: %w", err)
	}
	return &r, nil
}

// DecodeCollectionMembershipRelationship decodes a stored collection
// membership item.
func DecodeCollectionMembershipRelationship(item Item) (*CollectionMembershipRelationship, error) {
	if !IsCollectionMembershipRelationship(item) {
		return nil, fmt.Errorf("%w: want %s", ErrRecordType, TypeCollectionMember)
	}
	var r CollectionMembershipRelationship
	if err := attributevalue.UnmarshalMap(item, &r); err != nil {
		return nil, fmt.Errorf("relstore: unmarshal collection membership: %w", err)
	}
	return &r, nil
}

// DecodeUniqueKeyValue decodes a stored uniqueness-constraint item.
func DecodeUniqueKeyValue(item Item) (*UniqueKeyValue, error) {
	if !IsUniqueKeyValue(item) {
		return nil, fmt.Errorf("%w: want %s", ErrRecordType, TypeUniqueKeyValue)
	}
	var r UniqueKeyValue
	if err := attributevalue.UnmarshalMap(item, &r); err != nil {
		return nil, fmt.Errorf("relstore: unmarshal unique key value: %w", err)
	}
	return &r, nil
}

// PrimaryKey extracts the PK/SK pair from any item. Missing attributes come
// back as empty strings; the function is total, matching the inverted-index
// contract.
func PrimaryKey(item Item) keys.Primary {
	var p keys.Primary
	if v, ok := item[keys.AttrPK].(*types.AttributeValueMemberS); ok {
		p.PK = v.Value
	}
	if v, ok := item[keys.AttrSK].(*types.AttributeValueMemberS); ok {
		p.SK = v.Value
	}
	return p
}
