package chat

import "gymlink/models"

// MarkRead rewrites messages so that every entry in the given conversation
// addressed to currentUser is read. Returns the rewritten list and how many
// entries changed; zero changes means the caller should skip the write.
// The input is not mutated.
func MarkRead(messages []models.Message, conversationID, currentUser string) ([]models.Message, int) {
	out := make([]models.Message, len(messages))
	copy(out, messages)

	changed := 0
	for i := range out {
		if out[i].ConversationID != conversationID {
			continue
		}
		if out[i].RecipientID == currentUser && !out[i].Read {
			out[i].Read = true
			changed++
		}
	}
	return out, changed
}
