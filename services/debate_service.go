package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"debatematch/internal/voteledger"
	"debatematch/models"
	"debatematch/store"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DebateEventCallback is invoked on vote updates and resolved debates.
type DebateEventCallback func(event models.MatchEvent)

// DebateService tracks bilateral agreement to end a debate and, for public
// conclusions, runs the voting window and feeds the tallied outcome into the
// rating service exactly once. All transitions for a debate run under that
// debate's lock.
type DebateService struct {
	store       store.Store
	ratings     *RatingService
	ledger      *voteledger.Ledger
	debateLocks *keyedMutex
	onEvent     DebateEventCallback
	now         func() time.Time
}

func NewDebateService(st store.Store, ratings *RatingService, ledger *voteledger.Ledger) *DebateService {
	return &DebateService{
		store:       st,
		ratings:     ratings,
		ledger:      ledger,
		debateLocks: newKeyedMutex(),
		now:         time.Now,
	}
}

// SetEventCallback sets the callback fired on vote and resolution events.
func (d *DebateService) SetEventCallback(cb DebateEventCallback) {
	d.onEvent = cb
}

// CreateDebate opens an active debate between two matched users.
func (d *DebateService) CreateDebate(ctx context.Context, participant1, participant2 primitive.ObjectID) (*models.Debate, error) {
	if participant1 == participant2 {
		return nil, ErrSelfAction
	}
	for _, id := range []primitive.ObjectID{participant1, participant2} {
		if _, err := d.store.GetProfile(ctx, id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, ErrUnknownParticipant
			}
			return nil, fmt.Errorf("failed to load profile: %w", err)
		}
	}

	now := d.now()
	debate := &models.Debate{
		Participant1ID: participant1,
		Participant2ID: participant2,
		Status:         models.DebateStatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := d.store.InsertDebate(ctx, debate); err != nil {
		return nil, fmt.Errorf("failed to insert debate: %w", err)
	}
	return debate, nil
}

// RequestEnd records one participant's request to end the debate. The first
// request moves the debate to end_requested; the other side's request moves it
// to both_agreed. A participant requesting twice is a no-op.
func (d *DebateService) RequestEnd(ctx context.Context, debateID, participantID primitive.ObjectID) (*models.Debate, error) {
	unlock := d.debateLocks.Lock(debateID.Hex())
	defer unlock()

	debate, err := d.getDebate(ctx, debateID)
	if err != nil {
		return nil, err
	}
	if !debate.IsParticipant(participantID) {
		return nil, ErrNotParticipant
	}

	switch debate.Status {
	case models.DebateStatusActive, models.DebateStatusEndRequested:
	case models.DebateStatusBothAgreed:
		return debate, nil // both already agreed, nothing to add
	default:
		return nil, ErrPreconditionNotMet
	}

	if debate.HasRequestedEnd(participantID) {
		return debate, nil
	}

	debate.EndRequestedBy = append(debate.EndRequestedBy, participantID)
	if len(debate.EndRequestedBy) == 2 {
		debate.Status = models.DebateStatusBothAgreed
	} else {
		debate.Status = models.DebateStatusEndRequested
	}

	if err := d.store.UpdateDebate(ctx, debate); err != nil {
		return nil, fmt.Errorf("failed to update debate: %w", err)
	}
	return debate, nil
}

// ConcludePrivate ends a mutually-agreed debate without any rating effect.
func (d *DebateService) ConcludePrivate(ctx context.Context, debateID, participantID primitive.ObjectID) (*models.Debate, error) {
	unlock := d.debateLocks.Lock(debateID.Hex())
	defer unlock()

	debate, err := d.getDebate(ctx, debateID)
	if err != nil {
		return nil, err
	}
	if !debate.IsParticipant(participantID) {
		return nil, ErrNotParticipant
	}
	if debate.Status != models.DebateStatusBothAgreed {
		return nil, ErrPreconditionNotMet
	}

	debate.Status = models.DebateStatusEndedPrivate
	if err := d.store.UpdateDebate(ctx, debate); err != nil {
		return nil, fmt.Errorf("failed to update debate: %w", err)
	}
	return debate, nil
}

// ConcludePublic ends a mutually-agreed debate publicly, opening a voting
// window of the chosen duration. The duration must be one of the fixed set.
func (d *DebateService) ConcludePublic(ctx context.Context, debateID, participantID primitive.ObjectID, duration time.Duration) (*models.Debate, error) {
	if !models.ValidVotingDuration(duration) {
		return nil, ErrInvalidDuration
	}

	unlock := d.debateLocks.Lock(debateID.Hex())
	defer unlock()

	debate, err := d.getDebate(ctx, debateID)
	if err != nil {
		return nil, err
	}
	if !debate.IsParticipant(participantID) {
		return nil, ErrNotParticipant
	}
	if debate.Status != models.DebateStatusBothAgreed {
		return nil, ErrPreconditionNotMet
	}

	debate.Status = models.DebateStatusVoting
	debate.IsPublic = true
	debate.VotingEndTime = d.now().Add(duration)

	if err := d.store.UpdateDebate(ctx, debate); err != nil {
		return nil, fmt.Errorf("failed to update debate: %w", err)
	}
	return debate, nil
}

// CastVote records a spectator vote on an open public debate. Repeat votes
// are rejected with ErrDuplicateVote; votes after the window end time are
// rejected with ErrVotingClosed even before the sweep closes the debate.
func (d *DebateService) CastVote(ctx context.Context, debateID, voterID primitive.ObjectID, choice string) (*models.Debate, error) {
	if choice != models.VoteForParticipant1 && choice != models.VoteForParticipant2 {
		return nil, ErrInvalidChoice
	}

	unlock := d.debateLocks.Lock(debateID.Hex())
	defer unlock()

	debate, err := d.getDebate(ctx, debateID)
	if err != nil {
		return nil, err
	}
	if debate.Status != models.DebateStatusVoting {
		return nil, ErrVotingClosed
	}
	if d.now().After(debate.VotingEndTime) {
		return nil, ErrVotingClosed
	}

	// Fast duplicate gate in Redis when available; Mongo's unique vote index
	// stays authoritative.
	if d.ledger != nil {
		added, err := d.ledger.RecordVote(debateID.Hex(), voterID.Hex(), choice)
		if err != nil {
			log.Printf("vote ledger unavailable, falling back to store: %v", err)
		} else if !added {
			return nil, ErrDuplicateVote
		}
	}

	vote := &models.Vote{
		DebateID: debateID,
		VoterID:  voterID,
		VoteFor:  choice,
	}
	if err := d.store.AppendVote(ctx, vote); err != nil {
		if errors.Is(err, store.ErrDuplicateVote) {
			return nil, ErrDuplicateVote
		}
		return nil, fmt.Errorf("failed to append vote: %w", err)
	}

	if choice == models.VoteForParticipant1 {
		debate.Participant1Votes++
	} else {
		debate.Participant2Votes++
	}
	debate.TotalVotes++

	if err := d.store.UpdateDebate(ctx, debate); err != nil {
		return nil, fmt.Errorf("failed to update debate tallies: %w", err)
	}

	d.emit(models.MatchEvent{
		Type:      "vote_update",
		DebateID:  debateID.Hex(),
		Votes1:    debate.Participant1Votes,
		Votes2:    debate.Participant2Votes,
		Timestamp: d.now(),
	})

	return debate, nil
}

// CloseVoting resolves a debate whose voting window has lapsed: tallies the
// votes, applies rating and XP changes for a decided outcome, and marks the
// debate ended. Closing an already-resolved debate is a silent no-op, so the
// operation is safe under at-least-once sweep triggering.
func (d *DebateService) CloseVoting(ctx context.Context, debateID primitive.ObjectID) error {
	unlock := d.debateLocks.Lock(debateID.Hex())
	defer unlock()

	debate, err := d.getDebate(ctx, debateID)
	if err != nil {
		return err
	}
	if debate.Status != models.DebateStatusVoting {
		return nil
	}
	if d.now().Before(debate.VotingEndTime) {
		return nil // window still open
	}

	tally, err := d.store.TallyVotes(ctx, debateID)
	if err != nil {
		return fmt.Errorf("failed to tally votes: %w", err)
	}

	debate.Participant1Votes = tally.Participant1Count
	debate.Participant2Votes = tally.Participant2Count
	debate.TotalVotes = tally.Total()

	switch {
	case tally.Participant1Count > tally.Participant2Count:
		err = d.resolveWinner(ctx, debate, debate.Participant1ID, debate.Participant2ID)
	case tally.Participant2Count > tally.Participant1Count:
		err = d.resolveWinner(ctx, debate, debate.Participant2ID, debate.Participant1ID)
	default:
		// Tie: no contest. The debate still concludes and counts as a played
		// game, but neither ratings nor XP move.
		err = d.ratings.RecordNoContest(ctx, debate.Participant1ID, debate.Participant2ID)
	}
	if err != nil {
		return err
	}

	debate.Status = models.DebateStatusEndedPublic
	if err := d.store.UpdateDebate(ctx, debate); err != nil {
		return fmt.Errorf("failed to update debate: %w", err)
	}

	if d.ledger != nil {
		if err := d.ledger.Clear(debateID.Hex()); err != nil {
			log.Printf("failed to clear vote ledger for debate %s: %v", debateID.Hex(), err)
		}
	}

	d.emit(models.MatchEvent{
		Type:      "debate_resolved",
		DebateID:  debateID.Hex(),
		WinnerID:  debate.WinnerID.Hex(),
		Votes1:    debate.Participant1Votes,
		Votes2:    debate.Participant2Votes,
		Timestamp: d.now(),
	})

	return nil
}

// CloseExpiredWindows closes every debate whose voting window has lapsed and
// returns how many were resolved. Called by the sweep worker.
func (d *DebateService) CloseExpiredWindows(ctx context.Context) (int, error) {
	expired, err := d.store.ListExpiredVotingDebates(ctx, d.now())
	if err != nil {
		return 0, fmt.Errorf("failed to list expired debates: %w", err)
	}

	closed := 0
	for _, debate := range expired {
		if err := d.CloseVoting(ctx, debate.ID); err != nil {
			log.Printf("failed to close voting for debate %s: %v", debate.ID.Hex(), err)
			continue
		}
		closed++
	}
	return closed, nil
}

// RecordMessage bumps the message counter used for the engagement bonus.
func (d *DebateService) RecordMessage(ctx context.Context, debateID primitive.ObjectID) error {
	unlock := d.debateLocks.Lock(debateID.Hex())
	defer unlock()

	debate, err := d.getDebate(ctx, debateID)
	if err != nil {
		return err
	}
	if debate.Status != models.DebateStatusActive && debate.Status != models.DebateStatusEndRequested {
		return ErrPreconditionNotMet
	}
	debate.MessageCount++
	return d.store.UpdateDebate(ctx, debate)
}

// GetDebate returns the debate by id.
func (d *DebateService) GetDebate(ctx context.Context, debateID primitive.ObjectID) (*models.Debate, error) {
	return d.getDebate(ctx, debateID)
}

func (d *DebateService) resolveWinner(ctx context.Context, debate *models.Debate, winnerID, loserID primitive.ObjectID) error {
	outcome, err := d.ratings.ApplyOutcome(ctx, debate.ID, winnerID, loserID, debate.MessageCount)
	if err != nil {
		return fmt.Errorf("failed to apply debate outcome: %w", err)
	}

	debate.WinnerID = winnerID
	if winnerID == debate.Participant1ID {
		debate.Participant1EloChange = outcome.WinnerEloChange
		debate.Participant2EloChange = outcome.LoserEloChange
	} else {
		debate.Participant1EloChange = outcome.LoserEloChange
		debate.Participant2EloChange = outcome.WinnerEloChange
	}
	return nil
}

func (d *DebateService) getDebate(ctx context.Context, debateID primitive.ObjectID) (*models.Debate, error) {
	debate, err := d.store.GetDebate(ctx, debateID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load debate: %w", err)
	}
	return debate, nil
}

func (d *DebateService) emit(event models.MatchEvent) {
	if d.onEvent != nil {
		d.onEvent(event)
	}
}
