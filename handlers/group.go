package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"gymlink/database"
	"gymlink/models"
)

// CreateGroup starts a group conversation, e.g. a class or training squad
// channel. The creator picks the initial member list.
func CreateGroup(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	var req struct {
		Name    string   `json:"name" binding:"required"`
		Members []string `json:"members"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	creatorName := ""
	var creator models.User
	if err := database.Users.FindOne(ctx, bson.M{"email": identity}).Decode(&creator); err == nil {
		creatorName = creator.Name
	}

	doc, err := chatSvc.CreateGroup(ctx, req.Name, identity, creatorName, req.Members)
	if err != nil {
		serviceError(c, err)
		return
	}

	if wsManager != nil {
		wsManager.NotifyUsers(doc.Participants, "group_created", gin.H{
			"conversationId": doc.ID,
			"groupId":        doc.GroupID,
			"groupName":      doc.GroupName,
		})
	}

	c.JSON(http.StatusCreated, gin.H{
		"conversationId": doc.ID,
		"groupId":        doc.GroupID,
		"groupName":      doc.GroupName,
		"participants":   doc.Participants,
	})
}

// JoinGroup adds the current user to a group conversation.
func JoinGroup(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	convID := c.Param("id")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := chatSvc.JoinGroup(ctx, convID, identity); err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Joined group", "conversationId": convID})
}

// LeaveGroup removes the current user from a group conversation.
func LeaveGroup(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	convID := c.Param("id")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := chatSvc.LeaveGroup(ctx, convID, identity); err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Left group", "conversationId": convID})
}
