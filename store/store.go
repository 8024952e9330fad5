package store

import (
	"context"
	"errors"
	"time"

	"debatematch/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("store: not found")
	// ErrDuplicateVote is returned when a voter already has a vote recorded
	// for the debate. Repeat votes are rejected, not overwritten.
	ErrDuplicateVote = errors.New("store: duplicate vote")
)

// ProfileStats is the mutable, engine-owned slice of a user profile.
type ProfileStats struct {
	EloRating    int
	XPPoints     int
	TotalDebates int
	Wins         int
	Losses       int
	CurrentRank  string
}

// Store is the persistence collaborator for the matching and rating engines.
// Implementations must make the single-entity update methods atomic; callers
// provide per-key serialization on top of that.
type Store interface {
	CreateProfile(ctx context.Context, user *models.User) error
	GetProfile(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	UpdateProfileStats(ctx context.Context, id primitive.ObjectID, stats ProfileStats) error
	// ListCandidates returns profiles the user has not swiped on yet,
	// excluding the user themselves.
	ListCandidates(ctx context.Context, userID primitive.ObjectID, limit int) ([]models.User, error)
	ListProfilesByRating(ctx context.Context, limit int) ([]models.User, error)

	// GetOrCreateMatch returns the match record for the unordered pair,
	// creating an empty one (actor in the user1 slot) when none exists.
	// The second result reports whether the record was created by this call.
	GetOrCreateMatch(ctx context.Context, actor, target primitive.ObjectID) (*models.UserMatch, bool, error)
	UpdateMatch(ctx context.Context, match *models.UserMatch) error

	InsertDebate(ctx context.Context, debate *models.Debate) error
	GetDebate(ctx context.Context, id primitive.ObjectID) (*models.Debate, error)
	UpdateDebate(ctx context.Context, debate *models.Debate) error
	// ListExpiredVotingDebates returns debates still in the voting state whose
	// window end time is at or before now.
	ListExpiredVotingDebates(ctx context.Context, now time.Time) ([]models.Debate, error)

	AppendVote(ctx context.Context, vote *models.Vote) error
	TallyVotes(ctx context.Context, debateID primitive.ObjectID) (models.VoteTally, error)

	AppendEloLog(ctx context.Context, entry *models.EloLogEntry) error
	AppendXPLog(ctx context.Context, entry *models.XPLogEntry) error
}
