package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"gymlink/database"
	"gymlink/models"
)

// GetMe returns the current user's profile.
func GetMe(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err := database.Users.FindOne(ctx, bson.M{"email": identity}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
		return
	}

	if user.Avatar == "" {
		user.Avatar = fallbackAvatar
	}
	c.JSON(http.StatusOK, user)
}

// UpdateMe updates the editable profile fields.
func UpdateMe(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	var req struct {
		Name   string `json:"name,omitempty"`
		Avatar string `json:"avatar,omitempty"`
		Bio    string `json:"bio,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := bson.M{"lastSeen": time.Now().Unix()}
	if req.Name != "" {
		update["name"] = req.Name
	}
	if req.Avatar != "" {
		update["avatar"] = req.Avatar
	}
	if req.Bio != "" {
		update["bio"] = req.Bio
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res, err := database.Users.UpdateOne(ctx, bson.M{"email": identity}, bson.M{"$set": update})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}
	if res.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}
