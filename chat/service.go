package chat

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"

	"gymlink/metrics"
	"gymlink/models"
	"gymlink/store"
)

var (
	ErrAccessDenied    = errors.New("not a participant of this conversation")
	ErrMessageNotFound = errors.New("message not found in conversation")
	ErrNotGroup        = errors.New("conversation is not a group")
)

// Service wires the pure chat core to the document store. All mutations go
// through here; handlers only translate HTTP.
type Service struct {
	store    store.Store
	composer Composer
}

// NewService returns a Service. adminID is the staff identity used as the
// default recipient when a member sends without choosing one.
func NewService(st store.Store, adminID string) *Service {
	return &Service{
		store:    st,
		composer: Composer{AdminID: adminID},
	}
}

// AdminID exposes the configured staff identity.
func (s *Service) AdminID() string { return s.composer.AdminID }

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

// conversationFor resolves the draft's target conversation id and the
// effective recipient, applying the default-recipient rule.
func (s *Service) conversationFor(d Draft) (convID, recipient string, err error) {
	if d.GroupID != "" {
		convID, err = GroupConversationID(d.GroupID)
		return convID, "", err
	}
	recipient = d.RecipientID
	if recipient == "" {
		if s.composer.AdminID == "" {
			return "", "", ErrNoRecipient
		}
		recipient = s.composer.AdminID
	}
	convID, err = ConversationID(d.SenderID, recipient)
	return convID, recipient, err
}

// SendMessage validates and stores an outgoing message. replyToID, when set,
// names the quoted message within the same conversation; an unknown id is
// tolerated and simply not quoted. Validation failures happen before any
// store interaction.
func (s *Service) SendMessage(ctx context.Context, d Draft, replyToID string) (models.Message, error) {
	// Validation failures must be reported before any store interaction.
	if strings.TrimSpace(d.Content) == "" {
		return models.Message{}, ErrEmptyContent
	}
	convID, _, err := s.conversationFor(d)
	if err != nil {
		return models.Message{}, err
	}

	doc, err := s.store.Get(ctx, convID)
	if err != nil && err != store.ErrNotFound {
		metrics.StoreErrors.Inc()
		return models.Message{}, err
	}

	if d.GroupID != "" {
		if doc == nil {
			return models.Message{}, store.ErrNotFound
		}
		if !contains(doc.Participants, d.SenderID) {
			return models.Message{}, ErrAccessDenied
		}
	}

	if replyToID != "" && doc != nil {
		for i := range doc.Messages {
			if doc.Messages[i].ID == replyToID {
				d.ReplyTo = &doc.Messages[i]
				break
			}
		}
	}

	msg, err := s.composer.Compose(d)
	if err != nil {
		return models.Message{}, err
	}

	if doc == nil {
		// First message between this pair: create the document with the
		// message as its sole element and an empty pinned list.
		newDoc := &models.ConversationDoc{
			ID:            convID,
			Participants:  []string{msg.SenderID, msg.RecipientID},
			Messages:      []models.Message{msg},
			Pinned:        []models.Message{},
			LastMessageAt: msg.CreatedAt,
		}
		if msg.SenderID == msg.RecipientID {
			newDoc.Participants = []string{msg.SenderID}
		}
		if err := s.store.Set(ctx, convID, newDoc); err != nil {
			metrics.StoreErrors.Inc()
			return models.Message{}, err
		}
	} else {
		if err := s.store.AppendToArray(ctx, convID, store.FieldMessages, msg); err != nil {
			metrics.StoreErrors.Inc()
			return models.Message{}, err
		}
		// Derived metadata; losing a concurrent update here is harmless.
		if err := s.store.Update(ctx, convID, map[string]interface{}{"lastMessageAt": msg.CreatedAt}); err != nil && err != store.ErrNotFound {
			metrics.StoreErrors.Inc()
		}
	}

	kind := "private"
	if msg.GroupID != "" {
		kind = "group"
	}
	metrics.MessagesSent.WithLabelValues(kind).Inc()
	return msg, nil
}

// Conversations derives the chat list for currentUser from every document
// the user may see: private documents they participate in and groups they
// are a member of.
func (s *Service) Conversations(ctx context.Context, currentUser string) ([]models.Conversation, error) {
	docs, err := s.store.List(ctx)
	if err != nil {
		metrics.StoreErrors.Inc()
		return nil, err
	}

	var msgs []models.Message
	groupNames := make(map[string]string)
	for _, doc := range docs {
		if !contains(doc.Participants, currentUser) {
			continue
		}
		msgs = append(msgs, doc.Messages...)
		if doc.GroupID != "" && doc.GroupName != "" {
			groupNames[doc.ID] = doc.GroupName
		}
	}

	convs := Aggregate(msgs, currentUser)
	for i := range convs {
		if name, ok := groupNames[convs[i].ID]; ok {
			convs[i].Name = name
		}
	}
	return convs, nil
}

// Messages returns the conversation document for id, messages in
// chronological order, after checking currentUser may see it.
func (s *Service) Messages(ctx context.Context, id, currentUser string) (*models.ConversationDoc, error) {
	doc, err := s.store.Get(ctx, id)
	if err != nil {
		if err != store.ErrNotFound {
			metrics.StoreErrors.Inc()
		}
		return nil, err
	}
	if !contains(doc.Participants, currentUser) {
		return nil, ErrAccessDenied
	}
	sort.SliceStable(doc.Messages, func(i, j int) bool {
		return doc.Messages[i].CreatedAt < doc.Messages[j].CreatedAt
	})
	return doc, nil
}

// MarkConversationRead flips every unread message addressed to currentUser in
// the conversation to read. Writes nothing when there is nothing to flip.
func (s *Service) MarkConversationRead(ctx context.Context, id, currentUser string) (int, error) {
	doc, err := s.store.Get(ctx, id)
	if err != nil {
		if err != store.ErrNotFound {
			metrics.StoreErrors.Inc()
		}
		return 0, err
	}
	if !contains(doc.Participants, currentUser) {
		return 0, ErrAccessDenied
	}

	rewritten, changed := MarkRead(doc.Messages, id, currentUser)
	if changed == 0 {
		return 0, nil
	}
	if err := s.store.Update(ctx, id, map[string]interface{}{store.FieldMessages: rewritten}); err != nil {
		metrics.StoreErrors.Inc()
		return 0, err
	}
	metrics.MessagesRead.Add(float64(changed))
	return changed, nil
}

// TogglePin flips the pinned state of a message. The main-list flag and the
// pinned-list membership are rewritten in a single document update so they
// cannot observably diverge.
func (s *Service) TogglePin(ctx context.Context, id, messageID, currentUser string) (bool, error) {
	doc, err := s.store.Get(ctx, id)
	if err != nil {
		if err != store.ErrNotFound {
			metrics.StoreErrors.Inc()
		}
		return false, err
	}
	if !contains(doc.Participants, currentUser) {
		return false, ErrAccessDenied
	}

	var target *models.Message
	for i := range doc.Messages {
		if doc.Messages[i].ID == messageID {
			target = &doc.Messages[i]
			break
		}
	}
	if target == nil {
		return false, ErrMessageNotFound
	}

	msgs, pins, nowPinned := TogglePin(doc.Messages, doc.Pinned, *target)
	err = s.store.Update(ctx, id, map[string]interface{}{
		store.FieldMessages: msgs,
		store.FieldPinned:   pins,
	})
	if err != nil {
		metrics.StoreErrors.Inc()
		return false, err
	}
	metrics.PinToggles.Inc()
	return nowPinned, nil
}

// DeleteMessage removes a message the sender authored, along with any pinned
// copy mirroring it.
func (s *Service) DeleteMessage(ctx context.Context, id, messageID, currentUser string) error {
	doc, err := s.store.Get(ctx, id)
	if err != nil {
		if err != store.ErrNotFound {
			metrics.StoreErrors.Inc()
		}
		return err
	}
	var target *models.Message
	for i := range doc.Messages {
		if doc.Messages[i].ID == messageID {
			target = &doc.Messages[i]
			break
		}
	}
	if target == nil {
		return ErrMessageNotFound
	}
	if target.SenderID != currentUser {
		return ErrAccessDenied
	}

	if err := s.store.RemoveFromArray(ctx, id, store.FieldMessages, messageID); err != nil {
		metrics.StoreErrors.Inc()
		return err
	}
	if target.Pinned {
		if err := s.store.RemoveFromArray(ctx, id, store.FieldPinned, messageID); err != nil {
			metrics.StoreErrors.Inc()
			return err
		}
	}
	return nil
}

// CreateGroup creates a group conversation seeded with a system message
// announcing it. The creator is always a member.
func (s *Service) CreateGroup(ctx context.Context, name, creatorID, creatorName string, members []string) (*models.ConversationDoc, error) {
	if creatorID == "" {
		return nil, ErrEmptyIdentity
	}
	if name == "" {
		name = fallbackGroupName
	}

	groupID := uuid.NewString()
	convID, err := GroupConversationID(groupID)
	if err != nil {
		return nil, err
	}

	participants := []string{creatorID}
	for _, m := range members {
		if m != "" && !contains(participants, m) {
			participants = append(participants, m)
		}
	}

	if creatorName == "" {
		creatorName = fallbackMemberName
	}
	sys, err := s.composer.Compose(Draft{
		Content:    creatorName + " created the group " + name,
		SenderID:   creatorID,
		SenderName: creatorName,
		GroupID:    groupID,
		Type:       "system",
	})
	if err != nil {
		return nil, err
	}

	doc := &models.ConversationDoc{
		ID:            convID,
		Participants:  participants,
		GroupID:       groupID,
		GroupName:     name,
		Messages:      []models.Message{sys},
		Pinned:        []models.Message{},
		LastMessageAt: sys.CreatedAt,
	}
	if err := s.store.Set(ctx, convID, doc); err != nil {
		metrics.StoreErrors.Inc()
		return nil, err
	}
	metrics.GroupsCreated.Inc()
	return doc, nil
}

// JoinGroup adds userID to the group's member set. Joining twice is a no-op.
func (s *Service) JoinGroup(ctx context.Context, id, userID string) error {
	doc, err := s.store.Get(ctx, id)
	if err != nil {
		if err != store.ErrNotFound {
			metrics.StoreErrors.Inc()
		}
		return err
	}
	if doc.GroupID == "" {
		return ErrNotGroup
	}
	if contains(doc.Participants, userID) {
		return nil
	}
	if err := s.store.AppendToArray(ctx, id, store.FieldParticipants, userID); err != nil {
		metrics.StoreErrors.Inc()
		return err
	}
	return nil
}

// LeaveGroup removes userID from the group's member set.
func (s *Service) LeaveGroup(ctx context.Context, id, userID string) error {
	doc, err := s.store.Get(ctx, id)
	if err != nil {
		if err != store.ErrNotFound {
			metrics.StoreErrors.Inc()
		}
		return err
	}
	if doc.GroupID == "" {
		return ErrNotGroup
	}
	if !contains(doc.Participants, userID) {
		return ErrAccessDenied
	}
	if err := s.store.RemoveFromArray(ctx, id, store.FieldParticipants, userID); err != nil {
		metrics.StoreErrors.Inc()
		return err
	}
	return nil
}

// Participants returns the member identities of a conversation, for scoping
// change notifications.
func (s *Service) Participants(ctx context.Context, id string) ([]string, error) {
	doc, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return doc.Participants, nil
}
