package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"debatematch/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore is an in-memory Store used by tests and local development.
type MemoryStore struct {
	mu      sync.Mutex
	users   map[primitive.ObjectID]*models.User
	matches map[string]*models.UserMatch
	debates map[primitive.ObjectID]*models.Debate
	votes   map[primitive.ObjectID][]*models.Vote
	voters  map[string]struct{} // debateID:voterID
	EloLogs []*models.EloLogEntry
	XPLogs  []*models.XPLogEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:   make(map[primitive.ObjectID]*models.User),
		matches: make(map[string]*models.UserMatch),
		debates: make(map[primitive.ObjectID]*models.Debate),
		votes:   make(map[primitive.ObjectID][]*models.Vote),
		voters:  make(map[string]struct{}),
	}
}

func (s *MemoryStore) CreateProfile(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	clone := *user
	s.users[user.ID] = &clone
	return nil
}

func (s *MemoryStore) GetProfile(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (s *MemoryStore) UpdateProfileStats(_ context.Context, id primitive.ObjectID, stats ProfileStats) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	user.EloRating = stats.EloRating
	user.XPPoints = stats.XPPoints
	user.TotalDebates = stats.TotalDebates
	user.Wins = stats.Wins
	user.Losses = stats.Losses
	user.CurrentRank = stats.CurrentRank
	return nil
}

func (s *MemoryStore) ListCandidates(_ context.Context, userID primitive.ObjectID, limit int) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := map[primitive.ObjectID]struct{}{userID: {}}
	for _, match := range s.matches {
		if match.User1ID == userID {
			seen[match.User2ID] = struct{}{}
		} else if match.User2ID == userID {
			seen[match.User1ID] = struct{}{}
		}
	}

	var users []models.User
	for id, user := range s.users {
		if _, skip := seen[id]; skip {
			continue
		}
		users = append(users, *user)
		if len(users) >= limit {
			break
		}
	}
	return users, nil
}

func (s *MemoryStore) ListProfilesByRating(_ context.Context, limit int) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]models.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, *user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].EloRating > users[j].EloRating })
	if len(users) > limit {
		users = users[:limit]
	}
	return users, nil
}

func (s *MemoryStore) GetOrCreateMatch(_ context.Context, actor, target primitive.ObjectID) (*models.UserMatch, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pairKey := models.PairKey(actor, target)
	if match, ok := s.matches[pairKey]; ok {
		clone := *match
		return &clone, false, nil
	}

	now := time.Now()
	match := &models.UserMatch{
		ID:        primitive.NewObjectID(),
		PairKey:   pairKey,
		User1ID:   actor,
		User2ID:   target,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.matches[pairKey] = match
	clone := *match
	return &clone, true, nil
}

func (s *MemoryStore) UpdateMatch(_ context.Context, match *models.UserMatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.matches[match.PairKey]; !ok {
		return ErrNotFound
	}
	match.UpdatedAt = time.Now()
	clone := *match
	s.matches[match.PairKey] = &clone
	return nil
}

func (s *MemoryStore) InsertDebate(_ context.Context, debate *models.Debate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if debate.ID.IsZero() {
		debate.ID = primitive.NewObjectID()
	}
	clone := *debate
	s.debates[debate.ID] = &clone
	return nil
}

func (s *MemoryStore) GetDebate(_ context.Context, id primitive.ObjectID) (*models.Debate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	debate, ok := s.debates[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *debate
	return &clone, nil
}

func (s *MemoryStore) UpdateDebate(_ context.Context, debate *models.Debate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.debates[debate.ID]; !ok {
		return ErrNotFound
	}
	debate.UpdatedAt = time.Now()
	clone := *debate
	s.debates[debate.ID] = &clone
	return nil
}

func (s *MemoryStore) ListExpiredVotingDebates(_ context.Context, now time.Time) ([]models.Debate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var expired []models.Debate
	for _, debate := range s.debates {
		if debate.Status == models.DebateStatusVoting && !debate.VotingEndTime.After(now) {
			expired = append(expired, *debate)
		}
	}
	return expired, nil
}

func (s *MemoryStore) AppendVote(_ context.Context, vote *models.Vote) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := vote.DebateID.Hex() + ":" + vote.VoterID.Hex()
	if _, dup := s.voters[key]; dup {
		return ErrDuplicateVote
	}
	s.voters[key] = struct{}{}

	if vote.ID.IsZero() {
		vote.ID = primitive.NewObjectID()
	}
	if vote.CreatedAt.IsZero() {
		vote.CreatedAt = time.Now()
	}
	clone := *vote
	s.votes[vote.DebateID] = append(s.votes[vote.DebateID], &clone)
	return nil
}

func (s *MemoryStore) TallyVotes(_ context.Context, debateID primitive.ObjectID) (models.VoteTally, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var tally models.VoteTally
	for _, vote := range s.votes[debateID] {
		switch vote.VoteFor {
		case models.VoteForParticipant1:
			tally.Participant1Count++
		case models.VoteForParticipant2:
			tally.Participant2Count++
		}
	}
	return tally, nil
}

func (s *MemoryStore) AppendEloLog(_ context.Context, entry *models.EloLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	clone := *entry
	s.EloLogs = append(s.EloLogs, &clone)
	return nil
}

func (s *MemoryStore) AppendXPLog(_ context.Context, entry *models.XPLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	clone := *entry
	s.XPLogs = append(s.XPLogs, &clone)
	return nil
}
