package models

type Message struct {
	ID             string `bson:"id" json:"id"`
	ConversationID string `bson:"conversationId" json:"conversationId"`
	SenderID       string `bson:"senderId" json:"senderId"`
	SenderName     string `bson:"senderName" json:"senderName"`
	RecipientID    string `bson:"recipientId,omitempty" json:"recipientId,omitempty"`
	GroupID        string `bson:"groupId,omitempty" json:"groupId,omitempty"`
	Content        string `bson:"content" json:"content"`
	Type           string `bson:"type" json:"type"` // text, media, system
	Attachment     string `bson:"attachment,omitempty" json:"attachment,omitempty"`
	ReplyToID      string `bson:"replyToId,omitempty" json:"replyToId,omitempty"`
	Read           bool   `bson:"read" json:"read"`
	Pinned         bool   `bson:"pinned" json:"pinned"`
	CreatedAt      string `bson:"createdAt" json:"createdAt"` // fixed-width UTC timestamp, sorts lexicographically
}
