package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Debate statuses. A debate moves active -> endRequested -> bothAgreed and
// from there either directly to endedPrivate or through voting to endedPublic.
const (
	DebateStatusActive       = "active"
	DebateStatusEndRequested = "end_requested"
	DebateStatusBothAgreed   = "both_agreed"
	DebateStatusVoting       = "voting"
	DebateStatusEndedPrivate = "ended_private"
	DebateStatusEndedPublic  = "ended_public"
)

// Vote choices for a public debate.
const (
	VoteForParticipant1 = "participant1"
	VoteForParticipant2 = "participant2"
)

// Debate defines a single debate conversation between two matched users,
// including its conclusion state and, for public conclusions, the vote tallies.
type Debate struct {
	ID                    primitive.ObjectID   `bson:"_id,omitempty" json:"id,omitempty"`
	Participant1ID        primitive.ObjectID   `bson:"participant1Id" json:"participant1Id"`
	Participant2ID        primitive.ObjectID   `bson:"participant2Id" json:"participant2Id"`
	Status                string               `bson:"status" json:"status"`
	EndRequestedBy        []primitive.ObjectID `bson:"endRequestedBy,omitempty" json:"endRequestedBy,omitempty"`
	IsPublic              bool                 `bson:"isPublic" json:"isPublic"`
	MessageCount          int                  `bson:"messageCount" json:"messageCount"`
	VotingEndTime         time.Time            `bson:"votingEndTime,omitempty" json:"votingEndTime,omitempty"`
	Participant1Votes     int                  `bson:"participant1Votes" json:"participant1Votes"`
	Participant2Votes     int                  `bson:"participant2Votes" json:"participant2Votes"`
	TotalVotes            int                  `bson:"totalVotes" json:"totalVotes"`
	WinnerID              primitive.ObjectID   `bson:"winnerId,omitempty" json:"winnerId,omitempty"`
	Participant1EloChange int                  `bson:"participant1EloChange" json:"participant1EloChange"`
	Participant2EloChange int                  `bson:"participant2EloChange" json:"participant2EloChange"`
	CreatedAt             time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt             time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// HasRequestedEnd reports whether the given participant already asked to end.
func (d *Debate) HasRequestedEnd(userID primitive.ObjectID) bool {
	for _, id := range d.EndRequestedBy {
		if id == userID {
			return true
		}
	}
	return false
}

// IsParticipant reports whether the given user is one of the two debaters.
func (d *Debate) IsParticipant(userID primitive.ObjectID) bool {
	return userID == d.Participant1ID || userID == d.Participant2ID
}

// VotingDurations is the fixed set of voting window lengths a participant may
// choose when concluding a debate publicly.
var VotingDurations = []time.Duration{
	6 * time.Hour,
	12 * time.Hour,
	24 * time.Hour,
	48 * time.Hour,
	72 * time.Hour,
}

// ValidVotingDuration reports whether d is one of the allowed window lengths.
func ValidVotingDuration(d time.Duration) bool {
	for _, allowed := range VotingDurations {
		if d == allowed {
			return true
		}
	}
	return false
}
