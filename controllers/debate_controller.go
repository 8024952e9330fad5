package controllers

import (
	"errors"
	"net/http"
	"time"

	"debatematch/services"
	"debatematch/store"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DebateService is wired in during startup
var DebateService *services.DebateService

// CreateDebateRequest starts a debate with a matched opponent
type CreateDebateRequest struct {
	OpponentID string `json:"opponentId" binding:"required"`
}

// ConcludePublicRequest selects the voting window length in hours
type ConcludePublicRequest struct {
	DurationHours int `json:"durationHours" binding:"required"`
}

// CastVoteRequest carries a spectator's choice
type CastVoteRequest struct {
	Choice string `json:"choice" binding:"required"`
}

// CreateDebate opens a debate between the current user and an opponent
func CreateDebate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateDebateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	opponentID, err := primitive.ObjectIDFromHex(req.OpponentID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid opponent id"})
		return
	}

	debate, err := DebateService.CreateDebate(c.Request.Context(), userID, opponentID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownParticipant):
			c.JSON(http.StatusNotFound, gin.H{"error": "Unknown opponent"})
		case errors.Is(err, services.ErrSelfAction):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot debate yourself"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create debate"})
		}
		return
	}

	c.JSON(http.StatusCreated, debate)
}

// GetDebate returns a debate by id
func GetDebate(c *gin.Context) {
	debateID, ok := debateIDParam(c)
	if !ok {
		return
	}

	debate, err := DebateService.GetDebate(c.Request.Context(), debateID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Debate not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch debate"})
		return
	}
	c.JSON(http.StatusOK, debate)
}

// RequestEnd records the current participant's request to end the debate
func RequestEnd(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	debateID, ok := debateIDParam(c)
	if !ok {
		return
	}

	debate, err := DebateService.RequestEnd(c.Request.Context(), debateID, userID)
	if err != nil {
		respondDebateError(c, err)
		return
	}
	c.JSON(http.StatusOK, debate)
}

// ConcludePrivate ends a mutually-agreed debate without a public vote
func ConcludePrivate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	debateID, ok := debateIDParam(c)
	if !ok {
		return
	}

	debate, err := DebateService.ConcludePrivate(c.Request.Context(), debateID, userID)
	if err != nil {
		respondDebateError(c, err)
		return
	}
	c.JSON(http.StatusOK, debate)
}

// ConcludePublic ends a mutually-agreed debate with a public voting window
func ConcludePublic(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	debateID, ok := debateIDParam(c)
	if !ok {
		return
	}

	var req ConcludePublicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	duration := time.Duration(req.DurationHours) * time.Hour
	debate, err := DebateService.ConcludePublic(c.Request.Context(), debateID, userID, duration)
	if err != nil {
		respondDebateError(c, err)
		return
	}
	c.JSON(http.StatusOK, debate)
}

// CastVote records the current user's vote on a public debate
func CastVote(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	debateID, ok := debateIDParam(c)
	if !ok {
		return
	}

	var req CastVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	debate, err := DebateService.CastVote(c.Request.Context(), debateID, userID, req.Choice)
	if err != nil {
		respondDebateError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"participant1Votes": debate.Participant1Votes,
		"participant2Votes": debate.Participant2Votes,
		"totalVotes":        debate.TotalVotes,
	})
}

func debateIDParam(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid debate id"})
		return primitive.NilObjectID, false
	}
	return id, true
}

func respondDebateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Debate not found"})
	case errors.Is(err, services.ErrNotParticipant):
		c.JSON(http.StatusForbidden, gin.H{"error": "Not a debate participant"})
	case errors.Is(err, services.ErrPreconditionNotMet):
		c.JSON(http.StatusConflict, gin.H{"error": "Both participants must agree to end first"})
	case errors.Is(err, services.ErrInvalidDuration):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Voting duration must be 6, 12, 24, 48 or 72 hours"})
	case errors.Is(err, services.ErrInvalidChoice):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Vote choice must be participant1 or participant2"})
	case errors.Is(err, services.ErrDuplicateVote):
		c.JSON(http.StatusConflict, gin.H{"error": "You already voted on this debate"})
	case errors.Is(err, services.ErrVotingClosed):
		c.JSON(http.StatusGone, gin.H{"error": "Voting is closed for this debate"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
