package chat

import "testing"

func TestConversationIDSymmetry(t *testing.T) {
	pairs := [][2]string{
		{"a@x.com", "b@x.com"},
		{"zoe@gym.app", "adam@gym.app"},
		{"same@gym.app", "same@gym.app"},
		{"UPPER@gym.app", "lower@gym.app"},
	}
	for _, p := range pairs {
		ab, err := ConversationID(p[0], p[1])
		if err != nil {
			t.Fatalf("ConversationID(%q, %q): %v", p[0], p[1], err)
		}
		ba, err := ConversationID(p[1], p[0])
		if err != nil {
			t.Fatalf("ConversationID(%q, %q): %v", p[1], p[0], err)
		}
		if ab != ba {
			t.Errorf("ConversationID not symmetric: %q vs %q", ab, ba)
		}
	}
}

func TestConversationIDSanitizes(t *testing.T) {
	id, err := ConversationID("a@x.com", "b@x.com")
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range id {
		if c == '@' || c == '.' {
			t.Fatalf("id %q contains unsanitized character %q", id, c)
		}
	}
}

func TestConversationIDRejectsEmpty(t *testing.T) {
	if _, err := ConversationID("", "b@x.com"); err != ErrEmptyIdentity {
		t.Errorf("expected ErrEmptyIdentity, got %v", err)
	}
	if _, err := ConversationID("a@x.com", ""); err != ErrEmptyIdentity {
		t.Errorf("expected ErrEmptyIdentity, got %v", err)
	}
	if _, err := GroupConversationID(""); err != ErrEmptyIdentity {
		t.Errorf("expected ErrEmptyIdentity, got %v", err)
	}
}

func TestGroupNamespaceNeverCollides(t *testing.T) {
	// A group id crafted to look like a private pair must still land in a
	// different namespace.
	private, err := ConversationID("a@x.com", "b@x.com")
	if err != nil {
		t.Fatal(err)
	}
	group, err := GroupConversationID("a_x_com_b_x_com")
	if err != nil {
		t.Fatal(err)
	}
	if private == group {
		t.Errorf("group id collides with private id: %q", private)
	}
	if !IsGroupConversation(group) {
		t.Errorf("expected %q to be a group conversation", group)
	}
	if IsGroupConversation(private) {
		t.Errorf("expected %q to be private", private)
	}
}
