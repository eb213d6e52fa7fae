package models

// ConversationDoc is the stored document for a single conversation. One
// document per conversation id; messages and pinned copies live side by side.
type ConversationDoc struct {
	ID            string    `bson:"_id" json:"id"`
	Participants  []string  `bson:"participants" json:"participants"`
	GroupID       string    `bson:"groupId,omitempty" json:"groupId,omitempty"`
	GroupName     string    `bson:"groupName,omitempty" json:"groupName,omitempty"`
	Messages      []Message `bson:"messages" json:"messages"`
	Pinned        []Message `bson:"pinned" json:"pinned"`
	LastMessageAt string    `bson:"lastMessageAt" json:"lastMessageAt"`
	CreatedAt     int64     `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}

// Conversation is the derived chat-list entry. Never persisted; recomputed
// from the message corpus on every change.
type Conversation struct {
	ID            string `json:"id"`
	Group         bool   `json:"group"`
	PartnerID     string `json:"partnerId,omitempty"`
	Name          string `json:"name"`
	LastMessage   string `json:"lastMessage"`
	LastMessageAt string `json:"lastMessageAt"`
	UnreadCount   int    `json:"unreadCount"`
}
