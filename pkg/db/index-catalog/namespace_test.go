package indexcatalog

import (
	"bytes"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func mustMarshal(t *testing.T, doc bson.D) bson.Raw {
	t.Helper()
	raw, err := bson.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return raw
}

func TestWithNamespace(t *testing.T) {
	t.Run("appends ns when missing", func(t *testing.T) {
		doc := mustMarshal(t, bson.D{
			{Key: "v", Value: int32(2)},
			{Key: "key", Value: bson.D{{Key: "email", Value: int32(1)}}},
			{Key: "name", Value: "email_1"},
		})

		got, err := withNamespace(doc, "app.users")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := mustMarshal(t, bson.D{
			{Key: "v", Value: int32(2)},
			{Key: "key", Value: bson.D{{Key: "email", Value: int32(1)}}},
			{Key: "name", Value: "email_1"},
			{Key: "ns", Value: "app.users"},
		})
		if !bytes.Equal(got, want) {
			t.Errorf("got %s, want %s", got, want)
		}
	})

	t.Run("keeps existing ns", func(t *testing.T) {
		doc := mustMarshal(t, bson.D{
			{Key: "name", Value: "_id_"},
			{Key: "ns", Value: "legacy.users"},
		})

		got, err := withNamespace(doc, "app.users")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !bytes.Equal(got, doc) {
			t.Errorf("document changed: got %s, want %s", got, doc)
		}
	})

	t.Run("empty document", func(t *testing.T) {
		got, err := withNamespace(mustMarshal(t, bson.D{}), "app.empty")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ns := got.Lookup("ns").StringValue(); ns != "app.empty" {
			t.Errorf("ns = %q, want %q", ns, "app.empty")
		}
	})

	t.Run("invalid document", func(t *testing.T) {
		if _, err := withNamespace(bson.Raw{0x05, 0x00}, "app.users"); err == nil {
			t.Error("expected error for malformed document")
		}
	})
}

func TestCatalogSourceIsValid(t *testing.T) {
	tests := []struct {
		source CatalogSource
		want   bool
	}{
		{CatalogSourceListIndexes, true},
		{CatalogSourceSystemIndexes, true},
		{"", false},
		{"collections", false},
	}

	for _, tt := range tests {
		if got := tt.source.IsValid(); got != tt.want {
			t.Errorf("CatalogSource(%q).IsValid() = %v, want %v", tt.source, got, tt.want)
		}
	}
}
