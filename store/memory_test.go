package store

import (
	"context"
	"testing"

	"gymlink/models"
)

func TestMemoryGetSet(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()

	if _, err := mem.Get(ctx, "c1"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	doc := &models.ConversationDoc{
		Participants:  []string{"a@x.com", "b@x.com"},
		Messages:      []models.Message{{ID: "m1", Content: "hi"}},
		Pinned:        []models.Message{},
		LastMessageAt: "2026-01-01T08:00:00.000Z",
	}
	if err := mem.Set(ctx, "c1", doc); err != nil {
		t.Fatal(err)
	}

	got, err := mem.Get(ctx, "c1")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != "c1" || len(got.Messages) != 1 {
		t.Fatalf("got %+v", got)
	}

	// Mutating the returned copy must not leak into the store.
	got.Messages[0].Content = "tampered"
	again, _ := mem.Get(ctx, "c1")
	if again.Messages[0].Content != "hi" {
		t.Error("Get returned a shared slice")
	}
}

func TestMemoryArrayOps(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()

	// Append creates the document if absent.
	if err := mem.AppendToArray(ctx, "c1", FieldMessages, models.Message{ID: "m1"}); err != nil {
		t.Fatal(err)
	}
	if err := mem.AppendToArray(ctx, "c1", FieldMessages, models.Message{ID: "m2"}); err != nil {
		t.Fatal(err)
	}
	if err := mem.AppendToArray(ctx, "c1", FieldParticipants, "a@x.com"); err != nil {
		t.Fatal(err)
	}

	doc, err := mem.Get(ctx, "c1")
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Messages) != 2 || len(doc.Participants) != 1 {
		t.Fatalf("doc = %+v", doc)
	}

	if err := mem.RemoveFromArray(ctx, "c1", FieldMessages, "m1"); err != nil {
		t.Fatal(err)
	}
	if err := mem.RemoveFromArray(ctx, "c1", FieldParticipants, "a@x.com"); err != nil {
		t.Fatal(err)
	}
	doc, _ = mem.Get(ctx, "c1")
	if len(doc.Messages) != 1 || doc.Messages[0].ID != "m2" || len(doc.Participants) != 0 {
		t.Fatalf("doc after removal = %+v", doc)
	}

	if err := mem.RemoveFromArray(ctx, "missing", FieldMessages, "m1"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryUpdate(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()

	if err := mem.Update(ctx, "c1", map[string]interface{}{"lastMessageAt": "x"}); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	mem.Set(ctx, "c1", &models.ConversationDoc{})
	err := mem.Update(ctx, "c1", map[string]interface{}{
		FieldMessages:   []models.Message{{ID: "m1", Read: true}},
		"lastMessageAt": "2026-01-01T08:00:00.000Z",
	})
	if err != nil {
		t.Fatal(err)
	}

	doc, _ := mem.Get(ctx, "c1")
	if len(doc.Messages) != 1 || !doc.Messages[0].Read {
		t.Fatalf("doc = %+v", doc)
	}
	if doc.LastMessageAt != "2026-01-01T08:00:00.000Z" {
		t.Errorf("lastMessageAt = %q", doc.LastMessageAt)
	}
}

func TestSubscribeNotifiesOnWrites(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()

	var seen []string
	unsubscribe := mem.Subscribe(func(docID string) {
		seen = append(seen, docID)
	})

	mem.Set(ctx, "c1", &models.ConversationDoc{})
	mem.AppendToArray(ctx, "c1", FieldMessages, models.Message{ID: "m1"})
	mem.Update(ctx, "c1", map[string]interface{}{"lastMessageAt": "t"})
	mem.RemoveFromArray(ctx, "c1", FieldMessages, "m1")

	if len(seen) != 4 {
		t.Fatalf("expected 4 notifications, got %d: %v", len(seen), seen)
	}
	for _, id := range seen {
		if id != "c1" {
			t.Errorf("unexpected doc id %q", id)
		}
	}

	unsubscribe()
	mem.Set(ctx, "c2", &models.ConversationDoc{})
	if len(seen) != 4 {
		t.Error("unsubscribe did not stop notifications")
	}
}
