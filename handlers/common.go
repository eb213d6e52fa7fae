package handlers

import (
	"errors"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"gymlink/chat"
	"gymlink/store"
	"gymlink/websocket"
)

// Common constants and variables shared across all handler files
const fallbackAvatar = "https://upload.wikimedia.org/wikipedia/commons/8/89/Portrait_Placeholder.png"

var wsManager *websocket.Manager
var chatSvc *chat.Service
var vapidPrivateKey string

// PushSubscription keyed by the user's chat identity (email).
type PushSubscription struct {
	ID       primitive.ObjectID   `bson:"_id,omitempty"`
	Identity string               `bson:"identity"`
	Sub      webpush.Subscription `bson:"sub"`
}

// SetWebSocketManager sets the global WebSocket manager
func SetWebSocketManager(manager *websocket.Manager) {
	wsManager = manager
}

// SetChatService sets the global chat service
func SetChatService(svc *chat.Service) {
	chatSvc = svc
}

// currentIdentity returns the chat identity (email) the JWT middleware put
// in the context.
func currentIdentity(c *gin.Context) (string, bool) {
	email := c.GetString("email")
	if email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return "", false
	}
	return email, true
}

// serviceError maps chat service errors onto HTTP responses. Every failure
// path produces a JSON body the client surfaces as a toast; none are retried
// server-side.
func serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, chat.ErrEmptyContent),
		errors.Is(err, chat.ErrNoRecipient),
		errors.Is(err, chat.ErrEmptyIdentity),
		errors.Is(err, chat.ErrNotGroup):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, chat.ErrAccessDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, chat.ErrMessageNotFound), errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Operation failed"})
	}
}
