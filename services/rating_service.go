package services

import (
	"context"
	"fmt"
	"time"

	"debatematch/models"
	"debatematch/rating"
	"debatematch/store"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RatingService applies a decided debate outcome to both participants:
// pairwise Elo update with per-player K-factor, experience award, profile
// counters, and the append-only audit logs. It owns no state of its own;
// callers are responsible for invoking it exactly once per debate.
type RatingService struct {
	store store.Store
}

func NewRatingService(st store.Store) *RatingService {
	return &RatingService{store: st}
}

// OutcomeResult reports the applied changes for the debate record.
type OutcomeResult struct {
	WinnerEloChange int
	LoserEloChange  int
	WinnerXPGain    int
	LoserXPGain     int
}

// ApplyOutcome updates ratings, XP, and counters for winner and loser of the
// given debate. Each side's delta uses that side's own K-factor, so the two
// magnitudes are not guaranteed symmetric.
func (r *RatingService) ApplyOutcome(ctx context.Context, debateID, winnerID, loserID primitive.ObjectID, debateLength int) (*OutcomeResult, error) {
	winner, err := r.store.GetProfile(ctx, winnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load winner profile: %w", err)
	}
	loser, err := r.store.GetProfile(ctx, loserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load loser profile: %w", err)
	}

	winnerK := rating.SelectKFactor(float64(winner.EloRating), winner.TotalDebates)
	loserK := rating.SelectKFactor(float64(loser.EloRating), loser.TotalDebates)

	winnerSide, err := rating.ComputeRatingChange(float64(winner.EloRating), float64(loser.EloRating), winnerK)
	if err != nil {
		return nil, err
	}
	loserSide, err := rating.ComputeRatingChange(float64(winner.EloRating), float64(loser.EloRating), loserK)
	if err != nil {
		return nil, err
	}

	winnerXP, err := rating.ComputeXPGain(true, float64(loser.EloRating), float64(winner.EloRating), debateLength)
	if err != nil {
		return nil, err
	}
	loserXP, err := rating.ComputeXPGain(false, float64(winner.EloRating), float64(loser.EloRating), debateLength)
	if err != nil {
		return nil, err
	}

	result := &OutcomeResult{
		WinnerEloChange: winnerSide.NewWinnerRating - winner.EloRating,
		LoserEloChange:  loserSide.NewLoserRating - loser.EloRating,
		WinnerXPGain:    winnerXP,
		LoserXPGain:     loserXP,
	}

	now := time.Now()

	if err := r.applySide(ctx, winner, debateID, winnerSide.NewWinnerRating, winnerXP, true, now); err != nil {
		return nil, err
	}
	if err := r.applySide(ctx, loser, debateID, loserSide.NewLoserRating, loserXP, false, now); err != nil {
		return nil, err
	}

	return result, nil
}

// RecordNoContest bumps the games counter for both participants of a tied
// public debate without touching ratings or XP.
func (r *RatingService) RecordNoContest(ctx context.Context, participantIDs ...primitive.ObjectID) error {
	for _, id := range participantIDs {
		user, err := r.store.GetProfile(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to load participant profile: %w", err)
		}
		stats := statsOf(user)
		stats.TotalDebates++
		if err := r.store.UpdateProfileStats(ctx, id, stats); err != nil {
			return fmt.Errorf("failed to update participant stats: %w", err)
		}
	}
	return nil
}

func (r *RatingService) applySide(ctx context.Context, user *models.User, debateID primitive.ObjectID, newRating, xpGain int, won bool, now time.Time) error {
	stats := statsOf(user)
	stats.EloRating = newRating
	stats.XPPoints += xpGain
	stats.TotalDebates++
	if won {
		stats.Wins++
	} else {
		stats.Losses++
	}
	stats.CurrentRank = models.RankForRating(newRating)

	if err := r.store.UpdateProfileStats(ctx, user.ID, stats); err != nil {
		return fmt.Errorf("failed to update profile stats: %w", err)
	}

	eloEntry := &models.EloLogEntry{
		UserID:       user.ID,
		DebateID:     debateID,
		OldRating:    user.EloRating,
		NewRating:    newRating,
		ChangeAmount: newRating - user.EloRating,
		CreatedAt:    now,
	}
	if err := r.store.AppendEloLog(ctx, eloEntry); err != nil {
		return fmt.Errorf("failed to append elo log: %w", err)
	}

	xpEntry := &models.XPLogEntry{
		UserID:    user.ID,
		DebateID:  debateID,
		OldXP:     user.XPPoints,
		NewXP:     user.XPPoints + xpGain,
		XPGained:  xpGain,
		CreatedAt: now,
	}
	if err := r.store.AppendXPLog(ctx, xpEntry); err != nil {
		return fmt.Errorf("failed to append xp log: %w", err)
	}

	return nil
}

func statsOf(user *models.User) store.ProfileStats {
	return store.ProfileStats{
		EloRating:    user.EloRating,
		XPPoints:     user.XPPoints,
		TotalDebates: user.TotalDebates,
		Wins:         user.Wins,
		Losses:       user.Losses,
		CurrentRank:  user.CurrentRank,
	}
}
