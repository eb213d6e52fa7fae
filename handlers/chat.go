package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// GetConversations returns the derived chat list for the current user:
// one entry per counterpart or group, newest first.
func GetConversations(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	convs, err := chatSvc.Conversations(ctx, identity)
	if err != nil {
		serviceError(c, err)
		return
	}

	if len(convs) == 0 {
		c.JSON(http.StatusOK, []string{})
		return
	}
	c.JSON(http.StatusOK, convs)
}

// GetMessages returns a conversation's full message history plus its pinned
// list.
func GetMessages(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	convID := c.Param("id")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	doc, err := chatSvc.Messages(ctx, convID, identity)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"conversationId": doc.ID,
		"groupId":        doc.GroupID,
		"groupName":      doc.GroupName,
		"participants":   doc.Participants,
		"messages":       doc.Messages,
		"pinned":         doc.Pinned,
	})
}

// MarkConversationRead marks every message addressed to the current user in
// the conversation as read. Called when the client opens a conversation.
func MarkConversationRead(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	convID := c.Param("id")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	changed, err := chatSvc.MarkConversationRead(ctx, convID, identity)
	if err != nil {
		serviceError(c, err)
		return
	}

	if changed > 0 && wsManager != nil {
		if participants, err := chatSvc.Participants(ctx, convID); err == nil {
			wsManager.NotifyUsers(participants, "message_read", gin.H{
				"conversationId": convID,
				"readerId":       identity,
				"count":          changed,
			})
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Marked as read",
		"updatedCount": changed,
	})
}
