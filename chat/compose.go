package chat

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"gymlink/models"
)

// TimestampLayout is a fixed-width RFC 3339 layout. Fixed width keeps the
// lexicographic order of stored timestamps equal to chronological order.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// FormatTimestamp renders t in the canonical stored form.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

var (
	ErrEmptyContent = errors.New("message content must not be empty")
	ErrNoRecipient  = errors.New("message needs a recipient or a group")
)

// Draft is an outgoing message before composition. Exactly one of
// RecipientID or GroupID must be set.
type Draft struct {
	Content     string
	SenderID    string
	SenderName  string
	RecipientID string
	GroupID     string
	Attachment  string
	Type        string
	ReplyTo     *models.Message
}

// Composer builds message records. AdminID is the distinguished staff
// identity: messages addressed to it are born read, since staff triage the
// shared inbox out of band. Now and NewID are overridable for tests.
type Composer struct {
	AdminID string
	Now     func() time.Time
	NewID   func() string
}

// Compose validates d and builds the stored message record. No side effects;
// a validation error means nothing should be written.
func (c Composer) Compose(d Draft) (models.Message, error) {
	if strings.TrimSpace(d.Content) == "" {
		return models.Message{}, ErrEmptyContent
	}
	if d.SenderID == "" {
		return models.Message{}, ErrEmptyIdentity
	}

	recipient := d.RecipientID
	if recipient == "" && d.GroupID == "" {
		if c.AdminID == "" {
			return models.Message{}, ErrNoRecipient
		}
		recipient = c.AdminID
	}

	var convID string
	var err error
	if d.GroupID != "" {
		convID, err = GroupConversationID(d.GroupID)
	} else {
		convID, err = ConversationID(d.SenderID, recipient)
	}
	if err != nil {
		return models.Message{}, err
	}

	content := d.Content
	replyToID := ""
	if d.ReplyTo != nil {
		content = QuoteReply(*d.ReplyTo, d.Content)
		replyToID = d.ReplyTo.ID
	}

	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	newID := uuid.NewString
	if c.NewID != nil {
		newID = c.NewID
	}
	msgType := d.Type
	if msgType == "" {
		msgType = "text"
	}

	return models.Message{
		ID:             newID(),
		ConversationID: convID,
		SenderID:       d.SenderID,
		SenderName:     d.SenderName,
		RecipientID:    recipient,
		GroupID:        d.GroupID,
		Content:        content,
		Type:           msgType,
		Attachment:     d.Attachment,
		ReplyToID:      replyToID,
		Read:           d.GroupID == "" && recipient == c.AdminID,
		CreatedAt:      FormatTimestamp(now()),
	}, nil
}

// QuoteReply prefixes content with a block quote of the replied message.
func QuoteReply(replyTo models.Message, content string) string {
	name := replyTo.SenderName
	if name == "" {
		name = fallbackMemberName
	}
	return "> " + name + ": " + replyTo.Content + "\n\n" + content
}
