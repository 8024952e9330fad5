package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserMatch records the swipe decisions between a pair of users. One record
// exists per unordered pair; each side holds that user's latest decision
// (nil until the user has swiped). IsMatched flips to true the moment both
// sides are a like and the record is never deleted afterwards.
type UserMatch struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	PairKey          string             `bson:"pairKey" json:"pairKey"`
	User1ID          primitive.ObjectID `bson:"user1Id" json:"user1Id"`
	User2ID          primitive.ObjectID `bson:"user2Id" json:"user2Id"`
	User1SwipedRight *bool              `bson:"user1SwipedRight,omitempty" json:"user1SwipedRight,omitempty"`
	User2SwipedRight *bool              `bson:"user2SwipedRight,omitempty" json:"user2SwipedRight,omitempty"`
	IsMatched        bool               `bson:"isMatched" json:"isMatched"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PairKey builds the canonical key for an unordered user pair. Which user
// lands in the user1 slot is bookkeeping only.
func PairKey(a, b primitive.ObjectID) string {
	ah, bh := a.Hex(), b.Hex()
	if strings.Compare(ah, bh) > 0 {
		ah, bh = bh, ah
	}
	return ah + ":" + bh
}

// SideOf reports which slot the given user occupies in this record.
// Returns 1, 2, or 0 when the user is not part of the pair.
func (m *UserMatch) SideOf(userID primitive.ObjectID) int {
	switch userID {
	case m.User1ID:
		return 1
	case m.User2ID:
		return 2
	}
	return 0
}

// BothLiked reports whether both sides have independently swiped right.
func (m *UserMatch) BothLiked() bool {
	return m.User1SwipedRight != nil && *m.User1SwipedRight &&
		m.User2SwipedRight != nil && *m.User2SwipedRight
}
