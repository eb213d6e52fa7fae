package chat

import (
	"reflect"
	"testing"

	"gymlink/models"
)

func TestTogglePinRoundTrip(t *testing.T) {
	messages := []models.Message{
		{ID: "m1", Content: "one", CreatedAt: "2026-01-01T08:00:00.000Z"},
		{ID: "m2", Content: "two", CreatedAt: "2026-01-01T09:00:00.000Z"},
	}
	var pinned []models.Message

	msgs, pins, nowPinned := TogglePin(messages, pinned, messages[1])
	if !nowPinned {
		t.Fatal("expected message to be pinned")
	}
	if !msgs[1].Pinned {
		t.Error("main-list flag not set")
	}
	if len(pins) != 1 || pins[0].ID != "m2" || !pins[0].Pinned {
		t.Fatalf("pinned list wrong: %v", pins)
	}

	// Toggling again restores the original state.
	msgs2, pins2, nowPinned2 := TogglePin(msgs, pins, messages[1])
	if nowPinned2 {
		t.Fatal("expected message to be unpinned")
	}
	if msgs2[1].Pinned {
		t.Error("main-list flag not cleared")
	}
	if len(pins2) != 0 {
		t.Errorf("pinned list should be empty, got %v", pins2)
	}
}

func TestTogglePinFlagMirrorsMembership(t *testing.T) {
	messages := []models.Message{
		{ID: "m1", CreatedAt: "2026-01-01T08:00:00.000Z"},
		{ID: "m2", CreatedAt: "2026-01-01T09:00:00.000Z"},
		{ID: "m3", CreatedAt: "2026-01-01T10:00:00.000Z"},
	}
	var pins []models.Message
	msgs := messages

	for _, target := range []string{"m2", "m3", "m2"} {
		var tm models.Message
		for _, m := range msgs {
			if m.ID == target {
				tm = m
			}
		}
		msgs, pins, _ = TogglePin(msgs, pins, tm)

		inPins := make(map[string]bool)
		for _, p := range pins {
			inPins[p.ID] = true
			if !p.Pinned {
				t.Errorf("pinned copy %s has pinned=false", p.ID)
			}
		}
		for _, m := range msgs {
			if m.Pinned != inPins[m.ID] {
				t.Errorf("flag/membership diverged for %s: pinned=%v inList=%v", m.ID, m.Pinned, inPins[m.ID])
			}
		}
	}
}

func TestTogglePinIdenticalTimestampsDistinctIDs(t *testing.T) {
	// Two messages sharing a timestamp used to collide when the timestamp
	// was the identity key; ids disambiguate them.
	ts := "2026-01-01T08:00:00.000Z"
	messages := []models.Message{
		{ID: "m1", Content: "first", CreatedAt: ts},
		{ID: "m2", Content: "second", CreatedAt: ts},
	}

	msgs, pins, _ := TogglePin(messages, nil, messages[0])
	if !msgs[0].Pinned || msgs[1].Pinned {
		t.Errorf("only m1 should be pinned: %v", msgs)
	}
	if len(pins) != 1 || pins[0].ID != "m1" {
		t.Errorf("pinned list should hold only m1: %v", pins)
	}

	msgs, pins, _ = TogglePin(msgs, pins, msgs[0])
	if msgs[0].Pinned || len(pins) != 0 {
		t.Errorf("unpin should restore original state: %v %v", msgs, pins)
	}
}

func TestTogglePinDoesNotMutateInputs(t *testing.T) {
	messages := []models.Message{{ID: "m1", CreatedAt: "2026-01-01T08:00:00.000Z"}}
	pinned := []models.Message{}
	origMsgs := append([]models.Message(nil), messages...)
	origPins := append([]models.Message(nil), pinned...)

	TogglePin(messages, pinned, messages[0])

	if !reflect.DeepEqual(messages, origMsgs) || !reflect.DeepEqual(pinned, origPins) {
		t.Error("TogglePin mutated its inputs")
	}
}

func TestRemovePinned(t *testing.T) {
	pins := []models.Message{
		{ID: "m1", Pinned: true},
		{ID: "m2", Pinned: true},
	}
	out := RemovePinned(pins, models.Message{ID: "m1"})
	if len(out) != 1 || out[0].ID != "m2" {
		t.Errorf("RemovePinned = %v", out)
	}
}
