package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"debatematch/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SwipeService is wired in during startup
var SwipeService *services.SwipeService

// SwipeRequest carries the target of a like or pass
type SwipeRequest struct {
	TargetID string `json:"targetId" binding:"required"`
}

type swipeFunc func(ctx context.Context, actor, target primitive.ObjectID) (services.SwipeResult, error)

// RecordLike handles a right swipe from the current user
func RecordLike(c *gin.Context) {
	handleSwipe(c, SwipeService.RecordLike)
}

// RecordPass handles a left swipe from the current user
func RecordPass(c *gin.Context) {
	handleSwipe(c, SwipeService.RecordPass)
}

func handleSwipe(c *gin.Context, record swipeFunc) {
	actorID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req SwipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	targetID, err := primitive.ObjectIDFromHex(req.TargetID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid target id"})
		return
	}

	result, err := record(c.Request.Context(), actorID, targetID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownParticipant):
			c.JSON(http.StatusNotFound, gin.H{"error": "Unknown participant"})
		case errors.Is(err, services.ErrSelfAction):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot swipe on yourself"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record swipe"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"isMatch": result.IsMatch})
}

// GetCandidates returns profiles the current user has not swiped on yet
func GetCandidates(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	limit := 10
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 50 {
			limit = parsed
		}
	}

	candidates, err := SwipeService.Candidates(c.Request.Context(), userID, limit)
	if err != nil {
		if errors.Is(err, services.ErrUnknownParticipant) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Unknown user"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch candidates"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"candidates": candidates})
}

// currentUserID reads the authenticated user id set by the identity middleware
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	raw := c.GetString("userID")
	if raw == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user id"})
		return primitive.NilObjectID, false
	}
	return id, true
}
