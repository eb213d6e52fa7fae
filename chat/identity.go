package chat

import (
	"errors"
	"strings"
)

// Conversation id namespaces. Private and group ids can never collide
// because the prefixes differ.
const (
	privatePrefix = "chat_"
	groupPrefix   = "group_"
)

var ErrEmptyIdentity = errors.New("identity must not be empty")

var identitySanitizer = strings.NewReplacer("@", "_", ".", "_")

func sanitizeIdentity(id string) string {
	return identitySanitizer.Replace(id)
}

// ConversationID derives the canonical id for a private conversation between
// a and b. The id is order-independent: ConversationID(a, b) equals
// ConversationID(b, a).
func ConversationID(a, b string) (string, error) {
	if a == "" || b == "" {
		return "", ErrEmptyIdentity
	}
	sa, sb := sanitizeIdentity(a), sanitizeIdentity(b)
	if sb < sa {
		sa, sb = sb, sa
	}
	return privatePrefix + sa + "_" + sb, nil
}

// GroupConversationID derives the canonical id for a group conversation.
func GroupConversationID(groupID string) (string, error) {
	if groupID == "" {
		return "", ErrEmptyIdentity
	}
	return groupPrefix + sanitizeIdentity(groupID), nil
}

// IsGroupConversation reports whether id lives in the group namespace.
func IsGroupConversation(id string) bool {
	return strings.HasPrefix(id, groupPrefix)
}
