package services

import (
	"context"
	"errors"
	"fmt"

	"debatematch/models"
	"debatematch/store"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MatchFoundCallback is invoked when a reciprocal like completes a match.
type MatchFoundCallback func(match *models.UserMatch)

// SwipeService evaluates one-directional swipe decisions against the recorded
// match state for the pair. All updates for a pair run under that pair's lock
// so two concurrent reciprocal likes cannot both observe "no match yet".
type SwipeService struct {
	store     store.Store
	pairLocks *keyedMutex
	onMatch   MatchFoundCallback
}

// SwipeResult reports the outcome of a recorded swipe.
type SwipeResult struct {
	IsMatch bool              `json:"isMatch"`
	Match   *models.UserMatch `json:"match,omitempty"`
}

func NewSwipeService(st store.Store) *SwipeService {
	return &SwipeService{
		store:     st,
		pairLocks: newKeyedMutex(),
	}
}

// SetMatchFoundCallback sets the callback fired on a completed mutual match.
func (s *SwipeService) SetMatchFoundCallback(cb MatchFoundCallback) {
	s.onMatch = cb
}

// RecordLike records a "like" from actor toward target. The first like of a
// pair creates the record; the reciprocal like completes it and reports a
// match. A repeat swipe from the same actor overwrites that actor's side only
// ("last decision wins") and the matched state is reevaluated from both sides.
func (s *SwipeService) RecordLike(ctx context.Context, actor, target primitive.ObjectID) (SwipeResult, error) {
	return s.recordSwipe(ctx, actor, target, true)
}

// RecordPass records a "pass" from actor toward target. A pass never produces
// a match, but a later like from the same actor can still complete one.
func (s *SwipeService) RecordPass(ctx context.Context, actor, target primitive.ObjectID) (SwipeResult, error) {
	return s.recordSwipe(ctx, actor, target, false)
}

func (s *SwipeService) recordSwipe(ctx context.Context, actor, target primitive.ObjectID, likes bool) (SwipeResult, error) {
	if actor == target {
		return SwipeResult{}, ErrSelfAction
	}
	if err := s.verifyProfiles(ctx, actor, target); err != nil {
		return SwipeResult{}, err
	}

	unlock := s.pairLocks.Lock(models.PairKey(actor, target))
	defer unlock()

	match, _, err := s.store.GetOrCreateMatch(ctx, actor, target)
	if err != nil {
		return SwipeResult{}, fmt.Errorf("failed to load match record: %w", err)
	}

	side := match.SideOf(actor)
	if side == 0 {
		// The record's slots were assigned on creation; a stranger to the
		// pair can only mean a pair-key collision, which PairKey precludes.
		return SwipeResult{}, ErrUnknownParticipant
	}

	decision := likes
	if side == 1 {
		match.User1SwipedRight = &decision
	} else {
		match.User2SwipedRight = &decision
	}

	wasMatched := match.IsMatched
	match.IsMatched = match.BothLiked()

	if err := s.store.UpdateMatch(ctx, match); err != nil {
		return SwipeResult{}, fmt.Errorf("failed to update match record: %w", err)
	}

	if match.IsMatched && !wasMatched && s.onMatch != nil {
		s.onMatch(match)
	}

	return SwipeResult{IsMatch: match.IsMatched && likes, Match: match}, nil
}

func (s *SwipeService) verifyProfiles(ctx context.Context, ids ...primitive.ObjectID) error {
	for _, id := range ids {
		if _, err := s.store.GetProfile(ctx, id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrUnknownParticipant
			}
			return fmt.Errorf("failed to load profile: %w", err)
		}
	}
	return nil
}

// Candidates returns profiles the user has not swiped on yet.
func (s *SwipeService) Candidates(ctx context.Context, userID primitive.ObjectID, limit int) ([]models.User, error) {
	if err := s.verifyProfiles(ctx, userID); err != nil {
		return nil, err
	}
	return s.store.ListCandidates(ctx, userID, limit)
}
