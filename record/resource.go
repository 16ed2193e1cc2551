package record

import (
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"

	"github.com/jamesearlywine/dynamodb-relational-store/identifier"
	"github.com/jamesearlywine/dynamodb-relational-store/keys"
)

// ResourceDomain is the URN domain under which all resources are minted.
const ResourceDomain = "pp"

// Resource is a primary entity record. PK and SK are always equal, both
// Resource#{urn}.
type Resource struct {
	PK            string `dynamodbav:"PK"`
	SK            string `dynamodbav:"SK"`
	RecordType    Type   `dynamodbav:"_recordType"`
	ResourceType  string `dynamodbav:"resourceType"`
	ID            string `dynamodbav:"id"`
	Urn           string `dynamodbav:"urn"`
	SchemaVersion int    `dynamodbav:"schemaVersion"`
	CreatedAt     string `dynamodbav:"_createdAt"`
	UpdatedAt     string `dynamodbav:"_updatedAt"`
	AccountUrn    string `dynamodbav:"accountUrn,omitempty"`

	// Attributes is the open extension bag stored at the top level of the
	// item. Keys must not collide with reserved record fields; factories
	// reject collisions rather than letting them shadow managed fields.
	Attributes map[string]any `dynamodbav:"-"`
}

// ResourceOptions are the inputs to NewResource.
type ResourceOptions struct {
	// ResourceType classifies the resource (e.g., "System.Account"). Required.
	ResourceType string

	// ID is the resource's time-ordered unique ID. Generated when empty;
	// must match the ID grammar when supplied.
	ID string

	// SchemaVersion is the positive version of the attribute payload schema.
	// Required.
	SchemaVersion int

	// AccountUrn optionally names the owning account.
	AccountUrn string

	// Attributes are caller-supplied fields merged at the top level of the
	// stored item.
	Attributes map[string]any
}

// NewResource validates the options, derives the key pair, and assembles an
// immutable Resource record. Validation failures are reported in a fixed
// order: resourceType, schemaVersion, id, accountUrn, attributes.
func (f *Factory) NewResource(o ResourceOptions) (*Resource, error) {
	resourceType := strings.TrimSpace(o.ResourceType)
	if resourceType == "" {
		return nil, fmt.Errorf("resourceType: %w", ErrEmptyField)
	}
	if o.SchemaVersion < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSchemaVersion, o.SchemaVersion)
	}
	id := strings.TrimSpace(o.ID)
	if id != "" && !identifier.IsValidID(id) {
		return nil, fmt.Errorf("id %q: %w", id, identifier.ErrInvalidID)
	}
	accountUrn := strings.TrimSpace(o.AccountUrn)
	if accountUrn != "" && !identifier.IsValidUrn(accountUrn) {
		return nil, fmt.Errorf("accountUrn %q: %w", accountUrn, identifier.ErrInvalidUrn)
	}
	for k := range o.Attributes {
		if _, ok := reserved[k]; ok {
			return nil, fmt.Errorf("attribute %q: %w", k, ErrReservedAttribute)
		}
	}

	if id == "" {
		var err error
		if id, err = f.newID(); err != nil {
			return nil, err
		}
	}
	urn, err := identifier.NewUrn(ResourceDomain, resourceType, id)
	if err != nil {
		return nil, err
	}
	pk, err := keys.Resource(urn.String())
	if err != nil {
		return nil, err
	}

	now := f.timestamp()
	r := &Resource{
		PK:            pk.PK,
		SK:            pk.SK,
		RecordType:    TypeResource,
		ResourceType:  resourceType,
		ID:            id,
		Urn:           urn.String(),
		SchemaVersion: o.SchemaVersion,
		CreatedAt:     now,
		UpdatedAt:     now,
		AccountUrn:    accountUrn,
	}
	if len(o.Attributes) > 0 {
		r.Attributes = make(map[string]any, len(o.Attributes))
		for k, v := range o.Attributes {
			r.Attributes[k] = v
		}
	}
	return r, nil
}

// Touch returns a copy of r with a refreshed _updatedAt. Records are
// immutable; an update is a new record.
func (f *Factory) Touch(r Resource) Resource {
	r.UpdatedAt = f.timestamp()
	return r
}

// Item renders the record as a DynamoDB item, including its index
// projections and extension attributes.
func (r *Resource) Item() (Item, error) {
	item, err := attributevalue.MarshalMap(r)
	if err != nil {
		return nil, fmt.Errorf("relstore: marshal resource: %w", err)
	}
	for k, v := range r.Attributes {
		av, err := attributevalue.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("relstore: marshal attribute %q: %w", k, err)
		}
		item[k] = av
	}
	applyIndexKeys(item, keys.Primary{PK: r.PK, SK: r.SK}, r.AccountUrn, r.Urn)
	return item, nil
}
