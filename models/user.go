package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User defines a user profile entity
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email        string             `bson:"email" json:"email"`
	DisplayName  string             `bson:"displayName" json:"displayName"`
	Bio          string             `bson:"bio" json:"bio"`
	AvatarURL    string             `bson:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`
	EloRating    int                `bson:"eloRating" json:"eloRating"`
	XPPoints     int                `bson:"xpPoints" json:"xpPoints"`
	TotalDebates int                `bson:"totalDebates" json:"totalDebates"`
	Wins         int                `bson:"wins" json:"wins"`
	Losses       int                `bson:"losses" json:"losses"`
	CurrentRank  string             `bson:"currentRank" json:"currentRank"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

const (
	InitialEloRating = 1200

	RankBronze = "bronze"
	RankSilver = "silver"
	RankGold   = "gold"
	RankPro    = "pro"
)

// RankForRating maps a rating to its display band.
func RankForRating(rating int) string {
	switch {
	case rating >= 2000:
		return RankPro
	case rating >= 1600:
		return RankGold
	case rating >= 1300:
		return RankSilver
	default:
		return RankBronze
	}
}
