package stream_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jamesearlywine/dynamodb-relational-store/identifier"
	"github.com/jamesearlywine/dynamodb-relational-store/record"
	"github.com/jamesearlywine/dynamodb-relational-store/stream"
)

const (
	parentUrn  = "urn:pp:System.Account::018f6f28-9f64-7cc3-8f5e-123456789abc"
	childUrn   = "urn:pp:System.User::018f6f28-9f64-7cc3-9f5e-cba987654321"
	accountUrn = "urn:pp:System.Account::018f6f28-9f64-7cc3-af5e-aaaaaaaaaaaa"
)

func TestNewHandler(t *testing.T) {
	// A nil logger must not panic.
	h := stream.NewHandler(nil)
	if h == nil {
		t.Fatal("expected non-nil Handler")
	}
}

func TestItemFromImage(t *testing.T) {
	image := map[string]events.DynamoDBAttributeValue{
		"PK":            events.NewStringAttribute("Resource#" + parentUrn),
		"schemaVersion": events.NewNumberAttribute("3"),
		"active":        events.NewBooleanAttribute(true),
		"tags":          events.NewListAttribute([]events.DynamoDBAttributeValue{events.NewStringAttribute("a")}),
		"nested": events.NewMapAttribute(map[string]events.DynamoDBAttributeValue{
			"inner": events.NewStringAttribute("x"),
		}),
	}

	item := stream.ItemFromImage(image)

	if v, ok := item["PK"].(*types.AttributeValueMemberS); !ok || v.Value != "Resource#"+parentUrn {
		t.Error("expected string attribute PK to convert")
	}
	if v, ok := item["schemaVersion"].(*types.AttributeValueMemberN); !ok || v.Value != "3" {
		t.Error("expected number attribute to convert")
	}
	if v, ok := item["active"].(*types.AttributeValueMemberBOOL); !ok || !v.Value {
		t.Error("expected boolean attribute to convert")
	}
	l, ok := item["tags"].(*types.AttributeValueMemberL)
	if !ok || len(l.Value) != 1 {
		t.Fatal("expected list attribute to convert")
	}
	if v, ok := l.Value[0].(*types.AttributeValueMemberS); !ok || v.Value != "a" {
		t.Error("expected list element to convert")
	}
	m, ok := item["nested"].(*types.AttributeValueMemberM)
	if !ok {
		t.Fatal("expected map attribute to convert")
	}
	if v, ok := m.Value["inner"].(*types.AttributeValueMemberS); !ok || v.Value != "x" {
		t.Error("expected map element to convert")
	}
}

// resourceImage builds a stream image for a Resource record.
func resourceImage(t *testing.T) map[string]events.DynamoDBAttributeValue {
	t.Helper()
	return map[string]events.DynamoDBAttributeValue{
		"PK":            events.NewStringAttribute("Resource#" + parentUrn),
		"SK":            events.NewStringAttribute("Resource#" + parentUrn),
		"_recordType":   events.NewStringAttribute("Resource"),
		"resourceType":  events.NewStringAttribute("System.Account"),
		"id":            events.NewStringAttribute("018f6f28-9f64-7cc3-8f5e-123456789abc"),
		"urn":           events.NewStringAttribute(parentUrn),
		"schemaVersion": events.NewNumberAttribute("1"),
		"_createdAt":    events.NewStringAttribute("2024-03-05T12:00:00.000Z"),
		"_updatedAt":    events.NewStringAttribute("2024-03-05T12:00:00.000Z"),
		"displayName":   events.NewStringAttribute("Ada"),
	}
}

func relationshipImage() map[string]events.DynamoDBAttributeValue {
	return map[string]events.DynamoDBAttributeValue{
		"PK":          events.NewStringAttribute("Parent#" + parentUrn),
		"SK":          events.NewStringAttribute("Child#" + childUrn),
		"_recordType": events.NewStringAttribute("ParentChildRelationship"),
		"parentUrn":   events.NewStringAttribute(parentUrn),
		"childUrn":    events.NewStringAttribute(childUrn),
		"_createdAt":  events.NewStringAttribute("2024-03-05T12:00:00.000Z"),
	}
}

func membershipImage() map[string]events.DynamoDBAttributeValue {
	return map[string]events.DynamoDBAttributeValue{
		"PK":            events.NewStringAttribute("Collection#" + parentUrn),
		"SK":            events.NewStringAttribute("Member#" + childUrn),
		"_recordType":   events.NewStringAttribute("CollectionMemberRelationship"),
		"collectionUrn": events.NewStringAttribute(parentUrn),
		"memberUrn":     events.NewStringAttribute(childUrn),
		"accountUrn":    events.NewStringAttribute(accountUrn),
		"_createdAt":    events.NewStringAttribute("2024-03-05T12:00:00.000Z"),
	}
}

func uniqueImage() map[string]events.DynamoDBAttributeValue {
	return map[string]events.DynamoDBAttributeValue{
		"PK":           events.NewStringAttribute("UniqueKeyValue#System.User#emailAddress#user@example.com"),
		"SK":           events.NewStringAttribute("UniqueKeyValue#System.User#emailAddress"),
		"_recordType":  events.NewStringAttribute("UniqueKeyValue"),
		"resourceType": events.NewStringAttribute("System.User"),
		"key":          events.NewStringAttribute("emailAddress"),
		"value":        events.NewStringAttribute("user@example.com"),
		"_createdAt":   events.NewStringAttribute("2024-03-05T12:00:00.000Z"),
		"_updatedAt":   events.NewStringAttribute("2024-03-05T12:00:00.000Z"),
	}
}

func insertRecord(image map[string]events.DynamoDBAttributeValue) events.DynamoDBEventRecord {
	return events.DynamoDBEventRecord{
		EventName: "INSERT",
		Change: events.DynamoDBStreamRecord{
			NewImage: image,
		},
	}
}

func TestHandler_DispatchesByRecordType(t *testing.T) {
	h := stream.NewHandler(nil)

	counts := map[record.Type]int{}
	h.OnResource(func(_ context.Context, r *record.Resource) error {
		counts[record.TypeResource]++
		if r.Urn != parentUrn {
			t.Errorf("expected urn %q, got %q", parentUrn, r.Urn)
		}
		if got, ok := r.Attributes["displayName"].(string); !ok || got != "Ada" {
			t.Errorf("expected extension attribute to be recovered, got %v", r.Attributes)
		}
		return nil
	})
	h.OnParentChildRelationship(func(_ context.Context, r *record.ParentChildRelationship) error {
		counts[record.TypeParentChild]++
		if r.ParentUrn != parentUrn || r.ChildUrn != childUrn {
			t.Errorf("unexpected edge %q -> %q", r.ParentUrn, r.ChildUrn)
		}
		return nil
	})
	h.OnCollectionMembershipRelationship(func(_ context.Context, r *record.CollectionMembershipRelationship) error {
		counts[record.TypeCollectionMember]++
		return nil
	})
	h.OnUniqueKeyValue(func(_ context.Context, r *record.UniqueKeyValue) error {
		counts[record.TypeUniqueKeyValue]++
		if r.Key != "emailAddress" {
			t.Errorf("expected key 'emailAddress', got %q", r.Key)
		}
		return nil
	})

	event := events.DynamoDBEvent{Records: []events.DynamoDBEventRecord{
		insertRecord(resourceImage(t)),
		insertRecord(relationshipImage()),
		insertRecord(membershipImage()),
		insertRecord(uniqueImage()),
	}}

	if err := h.Handle(context.Background(), event); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for typ, n := range counts {
		if n != 1 {
			t.Errorf("expected exactly 1 dispatch for %s, got %d", typ, n)
		}
	}
	if len(counts) != 4 {
		t.Errorf("expected all 4 variants dispatched, got %d", len(counts))
	}
}

func TestHandler_RemoveUsesOldImage(t *testing.T) {
	h := stream.NewHandler(nil)

	var removed *record.ParentChildRelationship
	h.OnParentChildRelationship(func(_ context.Context, r *record.ParentChildRelationship) error {
		removed = r
		return nil
	})

	event := events.DynamoDBEvent{Records: []events.DynamoDBEventRecord{{
		EventName: "REMOVE",
		Change: events.DynamoDBStreamRecord{
			OldImage: relationshipImage(),
		},
	}}}

	if err := h.Handle(context.Background(), event); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed == nil {
		t.Fatal("expected callback for removed record")
	}
	if removed.ParentUrn != parentUrn {
		t.Errorf("expected parentUrn %q, got %q", parentUrn, removed.ParentUrn)
	}
}

func TestHandler_SkipsKeysOnlyImage(t *testing.T) {
	h := stream.NewHandler(nil)
	h.OnResource(func(context.Context, *record.Resource) error {
		t.Error("callback should not fire for an image without a discriminant")
		return nil
	})

	event := events.DynamoDBEvent{Records: []events.DynamoDBEventRecord{
		insertRecord(map[string]events.DynamoDBAttributeValue{
			"PK": events.NewStringAttribute("Resource#" + parentUrn),
			"SK": events.NewStringAttribute("Resource#" + parentUrn),
		}),
	}}

	if err := h.Handle(context.Background(), event); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHandler_UnregisteredVariantIgnored(t *testing.T) {
	h := stream.NewHandler(nil)

	event := events.DynamoDBEvent{Records: []events.DynamoDBEventRecord{
		insertRecord(uniqueImage()),
	}}

	if err := h.Handle(context.Background(), event); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHandler_CallbackErrorAbortsBatch(t *testing.T) {
	h := stream.NewHandler(nil)

	wantErr := errors.New("downstream failure")
	h.OnUniqueKeyValue(func(context.Context, *record.UniqueKeyValue) error {
		return wantErr
	})

	var dispatched bool
	h.OnParentChildRelationship(func(context.Context, *record.ParentChildRelationship) error {
		dispatched = true
		return nil
	})

	event := events.DynamoDBEvent{Records: []events.DynamoDBEventRecord{
		insertRecord(uniqueImage()),
		insertRecord(relationshipImage()),
	}}

	if err := h.Handle(context.Background(), event); !errors.Is(err, wantErr) {
		t.Fatalf("expected callback error to propagate, got %v", err)
	}
	if dispatched {
		t.Error("records after a failure must not be processed")
	}
}

func TestCascadeScan(t *testing.T) {
	scan, err := stream.CascadeScan(parentUrn)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scan.PartitionKey != "Parent#"+parentUrn {
		t.Errorf("expected partition key %q, got %q", "Parent#"+parentUrn, scan.PartitionKey)
	}
	if scan.SortKeyPrefix != "Child#" {
		t.Errorf("expected sort key prefix 'Child#', got %q", scan.SortKeyPrefix)
	}
}

func TestCascadeScan_InvalidUrn(t *testing.T) {
	_, err := stream.CascadeScan("invalid")
	if !errors.Is(err, identifier.ErrInvalidUrn) {
		t.Errorf("expected ErrInvalidUrn, got %v", err)
	}
}
