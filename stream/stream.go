// Package stream decodes DynamoDB Streams events into store records and
// dispatches them by record variant.
package stream

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jamesearlywine/dynamodb-relational-store/identifier"
	"github.com/jamesearlywine/dynamodb-relational-store/keys"
	"github.com/jamesearlywine/dynamodb-relational-store/record"
)

// Handler routes DynamoDB stream records to per-variant callbacks. Records
// whose image carries no _recordType attribute (keys-only stream views) are
// skipped.
type Handler struct {
	logger *slog.Logger

	resource         func(context.Context, *record.Resource) error
	parentChild      func(context.Context, *record.ParentChildRelationship) error
	collectionMember func(context.Context, *record.CollectionMembershipRelationship) error
	uniqueKeyValue   func(context.Context, *record.UniqueKeyValue) error
}

// NewHandler creates a stream handler. A nil logger falls back to
// slog.Default.
func NewHandler(logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger}
}

// OnResource registers the callback for Resource records.
func (h *Handler) OnResource(fn func(context.Context, *record.Resource) error) {
	h.resource = fn
}

// OnParentChildRelationship registers the callback for parent-child
// relationship records.
func (h *Handler) OnParentChildRelationship(fn func(context.Context, *record.ParentChildRelationship) error) {
	h.parentChild = fn
}

// OnCollectionMembershipRelationship registers the callback for collection
// membership records.
func (h *Handler) OnCollectionMembershipRelationship(fn func(context.Context, *record.CollectionMembershipRelationship) error) {
	h.collectionMember = fn
}

// OnUniqueKeyValue registers the callback for uniqueness-constraint records.
func (h *Handler) OnUniqueKeyValue(fn func(context.Context, *record.UniqueKeyValue) error) {
	h.uniqueKeyValue = fn
}

// Handle processes a DynamoDB stream event. It is designed to be used as an
// AWS Lambda handler. The first callback error aborts the batch so Lambda
// retries it (eventually DLQ).
func (h *Handler) Handle(ctx context.Context, event events.DynamoDBEvent) error {
	for _, rec := range event.Records {
		if err := h.processRecord(ctx, rec); err != nil {
			h.logger.Error("failed to process record",
				"eventID", rec.EventID,
				"error", err,
			)
			return err
		}
	}
	return nil
}

func (h *Handler) processRecord(ctx context.Context, rec events.DynamoDBEventRecord) error {
	// For removals only the old image describes the record.
	image := rec.Change.NewImage
	if rec.EventName == "REMOVE" {
		image = rec.Change.OldImage
	}
	if len(image) == 0 {
		return nil
	}

	item := ItemFromImage(image)
	typ, ok := record.TypeOf(item)
	if !ok {
		h.logger.Warn("skipping item without record type", "eventID", rec.EventID)
		return nil
	}

	switch typ {
	case record.TypeResource:
		if h.resource == nil {
			return nil
		}
		r, err := record.DecodeResource(item)
		if err != nil {
			return err
		}
		return h.resource(ctx, r)
	case record.TypeParentChild:
		if h.parentChild == nil {
			return nil
		}
		r, err := record.DecodeParentChildRelationship(item)
		if err != nil {
			return err
		}
		return h.parentChild(ctx, r)
	case record.TypeCollectionMember:
		if h.collectionMember == nil {
			return nil
		}
		r, err := record.DecodeCollectionMembershipRelationship(item)
		if err != nil {
			return err
		}
		return h.collectionMember(ctx, r)
	case record.TypeUniqueKeyValue:
		if h.uniqueKeyValue == nil {
			return nil
		}
		r, err := record.DecodeUniqueKeyValue(item)
		if err != nil {
			return err
		}
		return h.uniqueKeyValue(ctx, r)
	default:
		h.logger.Warn("unknown record type", "recordType", string(typ))
		return nil
	}
}

// ChildScan describes the key condition the storage client queries to find
// the relationship records of a deleted parent: PK equals PartitionKey and
// SK begins with SortKeyPrefix.
type ChildScan struct {
	PartitionKey  string
	SortKeyPrefix string
}

// CascadeScan returns the child-relationship scan for a deleted parent
// resource. Deleting the returned matches, and their child resources, is the
// storage client's cascading-delete obligation.
func CascadeScan(parentUrn string) (ChildScan, error) {
	if !identifier.IsValidUrn(parentUrn) {
		return ChildScan{}, fmt.Errorf("parentUrn %q: %w", parentUrn, identifier.ErrInvalidUrn)
	}
	return ChildScan{
		PartitionKey:  keys.PrefixParent + parentUrn,
		SortKeyPrefix: keys.PrefixChild,
	}, nil
}

// ItemFromImage converts a DynamoDB stream image to a record.Item so it can
// be classified and decoded.
func ItemFromImage(image map[string]events.DynamoDBAttributeValue) record.Item {
	item := make(record.Item, len(image))
	for k, v := range image {
		item[k] = convertAttribute(v)
	}
	return item
}

func convertAttribute(v events.DynamoDBAttributeValue) types.AttributeValue {
	switch v.DataType() {
	case events.DataTypeString:
		return &types.AttributeValueMemberS{Value: v.String()}
	case events.DataTypeNumber:
		return &types.AttributeValueMemberN{Value: v.Number()}
	case events.DataTypeBinary:
		return &types.AttributeValueMemberB{Value: v.Binary()}
	case events.DataTypeBoolean:
		return &types.AttributeValueMemberBOOL{Value: v.Boolean()}
	case events.DataTypeNull:
		return &types.AttributeValueMemberNULL{Value: v.IsNull()}
	case events.DataTypeList:
		list := make([]types.AttributeValue, 0, len(v.List()))
		for _, elem := range v.List() {
			list = append(list, convertAttribute(elem))
		}
		return &types.AttributeValueMemberL{Value: list}
	case events.DataTypeMap:
		m := make(map[string]types.AttributeValue, len(v.Map()))
		for k, elem := range v.Map() {
			m[k] = convertAttribute(elem)
		}
		return &types.AttributeValueMemberM{Value: m}
	case events.DataTypeStringSet:
		return &types.AttributeValueMemberSS{Value: v.StringSet()}
	case events.DataTypeNumberSet:
		return &types.AttributeValueMemberNS{Value: v.NumberSet()}
	case events.DataTypeBinarySet:
		return &types.AttributeValueMemberBS{Value: v.BinarySet()}
	default:
		return &types.AttributeValueMemberNULL{Value: true}
	}
}
