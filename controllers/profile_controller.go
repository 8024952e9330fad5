package controllers

import (
	"errors"
	"net/http"

	"debatematch/store"

	"github.com/gin-gonic/gin"
)

// Store is wired in during startup for direct profile reads
var Store store.Store

// GetProfile retrieves and returns the current user's profile
func GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := Store.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	// Set avatar URL with DiceBear fallback
	avatarURL := user.AvatarURL
	if avatarURL == "" {
		avatarURL = "https://api.dicebear.com/9.x/adventurer/svg?seed=" + user.DisplayName
	}

	c.JSON(http.StatusOK, gin.H{
		"id":           user.ID.Hex(),
		"email":        user.Email,
		"displayName":  user.DisplayName,
		"bio":          user.Bio,
		"avatarUrl":    avatarURL,
		"eloRating":    user.EloRating,
		"xpPoints":     user.XPPoints,
		"totalDebates": user.TotalDebates,
		"wins":         user.Wins,
		"losses":       user.Losses,
		"currentRank":  user.CurrentRank,
	})
}
