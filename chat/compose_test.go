package chat

import (
	"strings"
	"testing"
	"time"

	"gymlink/models"
)

func testComposer() Composer {
	return Composer{
		AdminID: "coach@gym.app",
		Now:     func() time.Time { return time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC) },
		NewID:   func() string { return "fixed-id" },
	}
}

func TestComposeRejectsEmptyContent(t *testing.T) {
	c := testComposer()
	for _, content := range []string{"", "   ", "\n\t "} {
		if _, err := c.Compose(Draft{Content: content, SenderID: "a@x.com", RecipientID: "b@x.com"}); err != ErrEmptyContent {
			t.Errorf("content %q: expected ErrEmptyContent, got %v", content, err)
		}
	}
}

func TestComposeReplyQuoting(t *testing.T) {
	c := testComposer()
	original := models.Message{
		ID:         "orig",
		SenderName: "Bob",
		Content:    "see you at the squat rack",
	}
	msg, err := c.Compose(Draft{
		Content:     "hi",
		SenderID:    "a@x.com",
		RecipientID: "b@x.com",
		ReplyTo:     &original,
	})
	if err != nil {
		t.Fatal(err)
	}
	want := "> Bob: see you at the squat rack\n\nhi"
	if msg.Content != want {
		t.Errorf("content = %q, want %q", msg.Content, want)
	}
	if msg.ReplyToID != "orig" {
		t.Errorf("replyToId = %q, want orig", msg.ReplyToID)
	}
}

func TestComposeAdminAutoRead(t *testing.T) {
	c := testComposer()

	// Messages to the staff inbox are born read.
	msg, err := c.Compose(Draft{Content: "question about hours", SenderID: "a@x.com"})
	if err != nil {
		t.Fatal(err)
	}
	if msg.RecipientID != "coach@gym.app" {
		t.Errorf("default recipient = %q, want coach@gym.app", msg.RecipientID)
	}
	if !msg.Read {
		t.Error("message to admin should start read")
	}

	msg, err = c.Compose(Draft{Content: "hey", SenderID: "a@x.com", RecipientID: "b@x.com"})
	if err != nil {
		t.Fatal(err)
	}
	if msg.Read {
		t.Error("message to a member should start unread")
	}
}

func TestComposeNoRecipientWithoutAdmin(t *testing.T) {
	c := Composer{}
	if _, err := c.Compose(Draft{Content: "hello", SenderID: "a@x.com"}); err != ErrNoRecipient {
		t.Errorf("expected ErrNoRecipient, got %v", err)
	}
}

func TestComposeConversationIDMatchesNormalizer(t *testing.T) {
	c := testComposer()
	msg, err := c.Compose(Draft{Content: "hey", SenderID: "a@x.com", RecipientID: "b@x.com"})
	if err != nil {
		t.Fatal(err)
	}
	want, _ := ConversationID("b@x.com", "a@x.com")
	if msg.ConversationID != want {
		t.Errorf("conversationId = %q, want %q", msg.ConversationID, want)
	}
}

func TestComposeGroupMessage(t *testing.T) {
	c := testComposer()
	msg, err := c.Compose(Draft{Content: "who's in", SenderID: "a@x.com", GroupID: "squad-1"})
	if err != nil {
		t.Fatal(err)
	}
	want, _ := GroupConversationID("squad-1")
	if msg.ConversationID != want {
		t.Errorf("conversationId = %q, want %q", msg.ConversationID, want)
	}
	if msg.Read {
		t.Error("group message should start unread")
	}
}

func TestFormatTimestampFixedWidth(t *testing.T) {
	// Lexicographic ordering of stored timestamps relies on a fixed-width
	// rendering, including trailing zero milliseconds.
	ts := FormatTimestamp(time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC))
	if ts != "2026-01-02T15:04:05.000Z" {
		t.Errorf("timestamp = %q", ts)
	}
	earlier := FormatTimestamp(time.Date(2026, 1, 2, 15, 4, 5, 90_000_000, time.UTC))
	later := FormatTimestamp(time.Date(2026, 1, 2, 15, 4, 5, 100_000_000, time.UTC))
	if !(earlier < later) {
		t.Errorf("expected %q < %q", earlier, later)
	}
	if !strings.HasSuffix(ts, "Z") {
		t.Errorf("timestamp should be UTC: %q", ts)
	}
}
