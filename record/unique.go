package record

import (
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"

	"github.com/jamesearlywine/dynamodb-relational-store/identifier"
	"github.com/jamesearlywine/dynamodb-relational-store/keys"
)

// UniqueKeyValue enforces a uniqueness constraint: one (resourceType, key)
// pair may hold a given value at most once. Keyed
// UniqueKeyValue#{resourceType}#{key}#{value} /
// UniqueKeyValue#{resourceType}#{key}.
type UniqueKeyValue struct {
	PK                  string `dynamodbav:"PK"`
	SK                  string `dynamodbav:"SK"`
	RecordType          Type   `dynamodbav:"_recordType"`
	ResourceType        string `dynamodbav:"resourceType"`
	Key                 string `dynamodbav:"key"`
	Value               string `dynamodbav:"value"`
	AssociatedRecordUrn string `dynamodbav:"associatedRecordUrn,omitempty"`
	CreatedAt           string `dynamodbav:"_createdAt"`
	UpdatedAt           string `dynamodbav:"_updatedAt"`
}

// UniqueKeyValueOptions are the inputs to NewUniqueKeyValue.
type UniqueKeyValueOptions struct {
	// ResourceType, Key, and Value are required and trimmed before key
	// assembly.
	ResourceType string
	Key          string
	Value        string

	// AssociatedRecordUrn optionally names the record holding the value.
	AssociatedRecordUrn string
}

// NewUniqueKeyValue validates in a fixed order (resourceType, key, value,
// associatedRecordUrn) and assembles the constraint record.
func (f *Factory) NewUniqueKeyValue(o UniqueKeyValueOptions) (*UniqueKeyValue, error) {
	pk, err := keys.UniqueKeyValue(o.ResourceType, o.Key, o.Value)
	if err != nil {
		return nil, err
	}
	associated := strings.TrimSpace(o.AssociatedRecordUrn)
	if associated != "" && !identifier.IsValidUrn(associated) {
		return nil, fmt.Errorf("associatedRecordUrn %q: %w", associated, identifier.ErrInvalidUrn)
	}
	now := f.timestamp()
	return &UniqueKeyValue{
		PK:                  pk.PK,
		SK:                  pk.SK,
		RecordType:          TypeUniqueKeyValue,
		ResourceType:        strings.TrimSpace(o.ResourceType),
		Key:                 strings.TrimSpace(o.Key),
		Value:               strings.TrimSpace(o.Value),
		AssociatedRecordUrn: associated,
		CreatedAt:           now,
		UpdatedAt:           now,
	}, nil
}

// TouchUniqueKeyValue returns a copy of r with a refreshed _updatedAt.
func (f *Factory) TouchUniqueKeyValue(r UniqueKeyValue) UniqueKeyValue {
	r.UpdatedAt = f.timestamp()
	return r
}

// Item renders the record as a DynamoDB item with its GSI1 inversion.
func (r *UniqueKeyValue) Item() (Item, error) {
	item, err := attributevalue.MarshalMap(r)
	if err != nil {
		return nil, fmt.Errorf("relstore: marshal unique key value: %w", err)
	}
	applyIndexKeys(item, keys.Primary{PK: r.PK, SK: r.SK}, "", "")
	return item, nil
}
