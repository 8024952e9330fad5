package models

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPairKeyIsOrderIndependent(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()

	if PairKey(a, b) != PairKey(b, a) {
		t.Error("pair key must not depend on argument order")
	}
	if PairKey(a, b) == PairKey(a, primitive.NewObjectID()) {
		t.Error("different pairs must produce different keys")
	}
}

func TestValidVotingDuration(t *testing.T) {
	for _, d := range VotingDurations {
		if !ValidVotingDuration(d) {
			t.Errorf("%s should be a valid voting duration", d)
		}
	}
	for _, d := range []time.Duration{0, time.Hour, 7 * time.Hour, 100 * time.Hour} {
		if ValidVotingDuration(d) {
			t.Errorf("%s should not be a valid voting duration", d)
		}
	}
}

func TestRankForRating(t *testing.T) {
	cases := []struct {
		rating int
		want   string
	}{
		{1000, RankBronze},
		{1299, RankBronze},
		{1300, RankSilver},
		{1600, RankGold},
		{2000, RankPro},
		{2400, RankPro},
	}
	for _, tc := range cases {
		if got := RankForRating(tc.rating); got != tc.want {
			t.Errorf("RankForRating(%d) = %s, want %s", tc.rating, got, tc.want)
		}
	}
}
