package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"gymlink/chat"
	"gymlink/database"
	"gymlink/models"
)

// SendMessage composes and stores an outgoing message, then notifies the
// conversation's participants over websocket and web push.
func SendMessage(c *gin.Context) {
	var req struct {
		Content     string `json:"content" binding:"required"`
		RecipientID string `json:"recipientId,omitempty"`
		GroupID     string `json:"groupId,omitempty"`
		ReplyToID   string `json:"replyToId,omitempty"`
		Attachment  string `json:"attachment,omitempty"`
		Type        string `json:"type,omitempty"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Display name is cached on the message at send time, not re-resolved
	// on later reads.
	senderName := ""
	var sender models.User
	if err := database.Users.FindOne(ctx, bson.M{"email": identity}).Decode(&sender); err == nil {
		senderName = sender.Name
	}

	msg, err := chatSvc.SendMessage(ctx, chat.Draft{
		Content:     req.Content,
		SenderID:    identity,
		SenderName:  senderName,
		RecipientID: req.RecipientID,
		GroupID:     req.GroupID,
		Attachment:  req.Attachment,
		Type:        req.Type,
	}, req.ReplyToID)
	if err != nil {
		serviceError(c, err)
		return
	}

	if participants, perr := chatSvc.Participants(ctx, msg.ConversationID); perr == nil {
		if wsManager != nil {
			wsManager.NotifyUsers(participants, "new_message", msg)
		}
		for _, p := range participants {
			if p != identity {
				SendMessagePush(p, msg.Content, senderName)
			}
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Message sent",
		"id":      msg.ID,
		"data":    msg,
	})
}

// TogglePin flips a message's pinned state within its conversation.
func TogglePin(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	var req struct {
		ConversationID string `json:"conversationId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	messageID := c.Param("id")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pinned, err := chatSvc.TogglePin(ctx, req.ConversationID, messageID, identity)
	if err != nil {
		serviceError(c, err)
		return
	}

	if wsManager != nil {
		if participants, perr := chatSvc.Participants(ctx, req.ConversationID); perr == nil {
			wsManager.NotifyUsers(participants, "message_pinned", gin.H{
				"conversationId": req.ConversationID,
				"messageId":      messageID,
				"pinned":         pinned,
			})
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"messageId": messageID,
		"pinned":    pinned,
	})
}

// DeleteMessage removes a message the current user sent.
func DeleteMessage(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	var req struct {
		ConversationID string `json:"conversationId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	messageID := c.Param("id")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := chatSvc.DeleteMessage(ctx, req.ConversationID, messageID, identity); err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Message deleted", "messageId": messageID})
}
