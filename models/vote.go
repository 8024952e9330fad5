package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Vote records one spectator's vote on a public debate. At most one vote per
// (debate, voter); repeats are rejected, never overwritten.
type Vote struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	DebateID  primitive.ObjectID `bson:"debateId" json:"debateId"`
	VoterID   primitive.ObjectID `bson:"voterId" json:"voterId"`
	VoteFor   string             `bson:"voteFor" json:"voteFor"` // "participant1" or "participant2"
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// VoteTally holds the per-side counts for a debate.
type VoteTally struct {
	Participant1Count int `json:"participant1Count"`
	Participant2Count int `json:"participant2Count"`
}

func (t VoteTally) Total() int {
	return t.Participant1Count + t.Participant2Count
}
