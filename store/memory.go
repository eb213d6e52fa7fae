package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gymlink/models"
)

// Memory is an in-process store used by tests and local development.
type Memory struct {
	notifier
	mu   sync.RWMutex
	docs map[string]models.ConversationDoc
}

func NewMemory() *Memory {
	return &Memory{docs: make(map[string]models.ConversationDoc)}
}

func copyDoc(d models.ConversationDoc) models.ConversationDoc {
	out := d
	out.Participants = append([]string(nil), d.Participants...)
	out.Messages = append([]models.Message(nil), d.Messages...)
	out.Pinned = append([]models.Message(nil), d.Pinned...)
	return out
}

func (s *Memory) Get(ctx context.Context, id string) (*models.ConversationDoc, error) {
	s.mu.RLock()
	doc, ok := s.docs[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	out := copyDoc(doc)
	return &out, nil
}

func (s *Memory) Set(ctx context.Context, id string, doc *models.ConversationDoc) error {
	d := copyDoc(*doc)
	d.ID = id
	s.mu.Lock()
	s.docs[id] = d
	s.mu.Unlock()
	s.notify(id)
	return nil
}

func (s *Memory) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	s.mu.Lock()
	doc, ok := s.docs[id]
	if !ok {
		s.mu.Unlock()
		return ErrNotFound
	}
	for field, value := range fields {
		switch field {
		case FieldMessages:
			doc.Messages = append([]models.Message(nil), value.([]models.Message)...)
		case FieldPinned:
			doc.Pinned = append([]models.Message(nil), value.([]models.Message)...)
		case FieldParticipants:
			doc.Participants = append([]string(nil), value.([]string)...)
		case "lastMessageAt":
			doc.LastMessageAt = value.(string)
		case "groupName":
			doc.GroupName = value.(string)
		default:
			s.mu.Unlock()
			return fmt.Errorf("store: unknown field %q", field)
		}
	}
	s.docs[id] = doc
	s.mu.Unlock()
	s.notify(id)
	return nil
}

func (s *Memory) AppendToArray(ctx context.Context, id, field string, value interface{}) error {
	s.mu.Lock()
	doc, ok := s.docs[id]
	if !ok {
		doc = models.ConversationDoc{ID: id, CreatedAt: time.Now().Unix()}
	}
	switch field {
	case FieldMessages:
		doc.Messages = append(doc.Messages, value.(models.Message))
	case FieldPinned:
		doc.Pinned = append(doc.Pinned, value.(models.Message))
	case FieldParticipants:
		doc.Participants = append(doc.Participants, value.(string))
	default:
		s.mu.Unlock()
		return fmt.Errorf("store: unknown array field %q", field)
	}
	s.docs[id] = doc
	s.mu.Unlock()
	s.notify(id)
	return nil
}

func (s *Memory) RemoveFromArray(ctx context.Context, id, field string, match string) error {
	s.mu.Lock()
	doc, ok := s.docs[id]
	if !ok {
		s.mu.Unlock()
		return ErrNotFound
	}
	switch field {
	case FieldMessages:
		doc.Messages = withoutMessage(doc.Messages, match)
	case FieldPinned:
		doc.Pinned = withoutMessage(doc.Pinned, match)
	case FieldParticipants:
		kept := doc.Participants[:0:0]
		for _, p := range doc.Participants {
			if p != match {
				kept = append(kept, p)
			}
		}
		doc.Participants = kept
	default:
		s.mu.Unlock()
		return fmt.Errorf("store: unknown array field %q", field)
	}
	s.docs[id] = doc
	s.mu.Unlock()
	s.notify(id)
	return nil
}

func withoutMessage(msgs []models.Message, id string) []models.Message {
	kept := msgs[:0:0]
	for _, m := range msgs {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	return kept
}

func (s *Memory) List(ctx context.Context) ([]models.ConversationDoc, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ConversationDoc, 0, len(s.docs))
	for _, doc := range s.docs {
		out = append(out, copyDoc(doc))
	}
	return out, nil
}
