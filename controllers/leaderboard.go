package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Debater represents a leaderboard entry
type Debater struct {
	ID          string `json:"id"`
	Rank        int    `json:"rank"`
	Name        string `json:"name"`
	Rating      int    `json:"rating"`
	XP          int    `json:"xp"`
	Wins        int    `json:"wins"`
	Losses      int    `json:"losses"`
	RankBand    string `json:"rankBand"`
	CurrentUser bool   `json:"currentUser"`
}

// GetLeaderboard returns users sorted by rating (descending)
func GetLeaderboard(c *gin.Context) {
	currentUser := c.GetString("userID")

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 200 {
			limit = parsed
		}
	}

	users, err := Store.ListProfilesByRating(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch leaderboard data"})
		return
	}

	debaters := make([]Debater, 0, len(users))
	for i, user := range users {
		debaters = append(debaters, Debater{
			ID:          user.ID.Hex(),
			Rank:        i + 1,
			Name:        user.DisplayName,
			Rating:      user.EloRating,
			XP:          user.XPPoints,
			Wins:        user.Wins,
			Losses:      user.Losses,
			RankBand:    user.CurrentRank,
			CurrentUser: user.ID.Hex() == currentUser,
		})
	}

	c.JSON(http.StatusOK, gin.H{"debaters": debaters})
}
