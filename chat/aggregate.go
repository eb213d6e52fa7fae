package chat

import (
	"sort"

	"gymlink/models"
)

// Fallback display names for records missing one.
const (
	fallbackMemberName = "Member"
	fallbackGroupName  = "Group"
)

// Aggregate folds a flat message list into the conversation list for
// currentUser: one entry per counterpart or group, with last-message preview
// and unread count. Pure function of its inputs; malformed records are
// tolerated, never rejected.
func Aggregate(messages []models.Message, currentUser string) []models.Conversation {
	sorted := make([]models.Message, len(messages))
	copy(sorted, messages)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt < sorted[j].CreatedAt
	})

	byID := make(map[string]*models.Conversation)
	var order []string

	for _, m := range sorted {
		isGroup := m.GroupID != ""
		if !isGroup && m.SenderID != currentUser && m.RecipientID != currentUser {
			continue
		}

		id := m.ConversationID
		if id == "" {
			// Legacy records predating the precomputed id.
			var err error
			if isGroup {
				id, err = GroupConversationID(m.GroupID)
			} else {
				id, err = ConversationID(m.SenderID, m.RecipientID)
			}
			if err != nil {
				continue
			}
		}

		conv, ok := byID[id]
		if !ok {
			conv = &models.Conversation{ID: id, Group: isGroup}
			if isGroup {
				conv.Name = fallbackGroupName
			} else {
				// The counterpart is whichever endpoint is not us.
				// First-seen wins; a self-chat keys on ourselves.
				if m.SenderID != currentUser {
					conv.PartnerID = m.SenderID
					conv.Name = m.SenderName
				} else {
					conv.PartnerID = m.RecipientID
				}
				if conv.Name == "" {
					conv.Name = fallbackMemberName
				}
			}
			byID[id] = conv
			order = append(order, id)
		}

		if !conv.Group && conv.Name == fallbackMemberName && m.SenderID == conv.PartnerID && m.SenderName != "" {
			conv.Name = m.SenderName
		}

		conv.LastMessage = m.Content
		conv.LastMessageAt = m.CreatedAt
		if m.RecipientID == currentUser && !m.Read {
			conv.UnreadCount++
		}
	}

	out := make([]models.Conversation, 0, len(order))
	for _, id := range order {
		out = append(out, *byID[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastMessageAt > out[j].LastMessageAt
	})
	return out
}
