// Package store is the document-store adapter the chat service sits on. One
// document per conversation; the append path uses the store's atomic array
// push so concurrent senders cannot clobber each other. Pin and read-receipt
// flows rewrite whole array fields in a single update per document.
package store

import (
	"context"
	"errors"
	"sync"

	"gymlink/models"
)

var ErrNotFound = errors.New("store: document not found")

// Array fields a conversation document carries.
const (
	FieldMessages     = "messages"
	FieldPinned       = "pinned"
	FieldParticipants = "participants"
)

// ChangeFunc is invoked with the id of a document after it changes.
type ChangeFunc func(docID string)

// Store is the contract against the backing document database.
type Store interface {
	// Get returns the document with the given id, or ErrNotFound.
	Get(ctx context.Context, id string) (*models.ConversationDoc, error)
	// Set writes the full document, creating it if absent.
	Set(ctx context.Context, id string, doc *models.ConversationDoc) error
	// Update applies a partial field update to an existing document.
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	// AppendToArray atomically appends value to an array field, creating the
	// document if absent.
	AppendToArray(ctx context.Context, id, field string, value interface{}) error
	// RemoveFromArray atomically removes entries matching match from an
	// array field. For message fields match is an id; for participants it is
	// the identity itself.
	RemoveFromArray(ctx context.Context, id, field string, match string) error
	// List returns every conversation document.
	List(ctx context.Context) ([]models.ConversationDoc, error)
	// Subscribe registers fn to run after any document changes. The returned
	// func unsubscribes.
	Subscribe(fn ChangeFunc) func()
}

// notifier fans document-change notifications out to subscribers. Embedded by
// the concrete stores; callbacks run on the writer's goroutine.
type notifier struct {
	mu   sync.RWMutex
	next int
	subs map[int]ChangeFunc
}

func (n *notifier) Subscribe(fn ChangeFunc) func() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.subs == nil {
		n.subs = make(map[int]ChangeFunc)
	}
	id := n.next
	n.next++
	n.subs[id] = fn
	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}
}

func (n *notifier) notify(docID string) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	for _, fn := range n.subs {
		fn(docID)
	}
}
