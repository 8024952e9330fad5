package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EloLogEntry is an append-only audit record of a rating change.
type EloLogEntry struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID       primitive.ObjectID `bson:"userId" json:"userId"`
	DebateID     primitive.ObjectID `bson:"debateId" json:"debateId"`
	OldRating    int                `bson:"oldRating" json:"oldRating"`
	NewRating    int                `bson:"newRating" json:"newRating"`
	ChangeAmount int                `bson:"changeAmount" json:"changeAmount"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

// XPLogEntry is an append-only audit record of an experience award.
type XPLogEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	DebateID  primitive.ObjectID `bson:"debateId" json:"debateId"`
	OldXP     int                `bson:"oldXp" json:"oldXp"`
	NewXP     int                `bson:"newXp" json:"newXp"`
	XPGained  int                `bson:"xpGained" json:"xpGained"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// MatchEvent is broadcast over the websocket hub when something the clients
// care about happens (a new mutual match, a vote, a resolved debate).
type MatchEvent struct {
	Type      string    `json:"type"` // "match_found", "vote_update", "debate_resolved"
	UserIDs   []string  `json:"userIds,omitempty"`
	DebateID  string    `json:"debateId,omitempty"`
	WinnerID  string    `json:"winnerId,omitempty"`
	Votes1    int       `json:"participant1Votes,omitempty"`
	Votes2    int       `json:"participant2Votes,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
