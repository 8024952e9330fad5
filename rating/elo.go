package rating

import (
	"errors"
	"math"
)

// K-factor bands. A player with fewer than newPlayerGames concluded debates
// always gets the maximal K regardless of rating.
const (
	newPlayerGames = 10
	kNewPlayer     = 40
	kLowRated      = 32
	kHighRated     = 16
	kDefault       = 24

	lowRatingCeiling = 1200
	highRatingFloor  = 2000
	logisticDivisor  = 400.0
	logisticBase     = 10.0
)

// ErrInvalidInput is returned when a rating or K-factor is NaN or infinite.
// The engine never silently produces NaN ratings.
var ErrInvalidInput = errors.New("rating: invalid numeric input")

// Change is the result of a single pairwise rating update.
type Change struct {
	NewWinnerRating int `json:"newWinnerRating"`
	NewLoserRating  int `json:"newLoserRating"`
	// RatingChange is the absolute change of the winner's rating. The loser's
	// magnitude is computed independently and is not guaranteed equal.
	RatingChange int `json:"ratingChange"`
}

// ExpectedScore returns the logistic expected outcome for a player rated a
// against a player rated b. A 400 point gap implies a 10:1 expected ratio.
func ExpectedScore(a, b float64) float64 {
	return 1.0 / (1.0 + math.Pow(logisticBase, (b-a)/logisticDivisor))
}

// ComputeRatingChange applies a decided result (no draws) to both players.
// Each side is updated with its own expected score and rounded independently,
// so small net rating drift across the population is possible; that is a known
// property of independently rounded Elo updates.
func ComputeRatingChange(winnerRating, loserRating, kFactor float64) (Change, error) {
	if !finite(winnerRating) || !finite(loserRating) || !finite(kFactor) {
		return Change{}, ErrInvalidInput
	}

	expectedWinner := ExpectedScore(winnerRating, loserRating)
	expectedLoser := ExpectedScore(loserRating, winnerRating)

	// Actual scores: 1 for the declared winner, 0 for the loser.
	newWinner := int(math.Round(winnerRating + kFactor*(1.0-expectedWinner)))
	newLoser := int(math.Round(loserRating + kFactor*(0.0-expectedLoser)))

	return Change{
		NewWinnerRating: newWinner,
		NewLoserRating:  newLoser,
		RatingChange:    abs(newWinner - int(math.Round(winnerRating))),
	}, nil
}

// SelectKFactor picks the update sensitivity for a player. The new-player rule
// is checked first and dominates the rating bands.
func SelectKFactor(rating float64, gamesPlayed int) float64 {
	if gamesPlayed < newPlayerGames {
		return kNewPlayer
	}
	if rating < lowRatingCeiling {
		return kLowRated
	}
	if rating > highRatingFloor {
		return kHighRated
	}
	return kDefault
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
