package services

import (
	"context"
	"testing"
	"time"

	"debatematch/models"
	"debatematch/store"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newRatedUser(t *testing.T, st *store.MemoryStore, name string, elo, debates int) primitive.ObjectID {
	t.Helper()
	user := &models.User{
		Email:        name + "@example.com",
		DisplayName:  name,
		EloRating:    elo,
		TotalDebates: debates,
		CurrentRank:  models.RankForRating(elo),
		CreatedAt:    time.Now(),
	}
	if err := st.CreateProfile(context.Background(), user); err != nil {
		t.Fatalf("failed to create user %s: %v", name, err)
	}
	return user.ID
}

func newTestDebateService(st *store.MemoryStore) *DebateService {
	return NewDebateService(st, NewRatingService(st), nil)
}

func agreeToEnd(t *testing.T, svc *DebateService, debateID, p1, p2 primitive.ObjectID) {
	t.Helper()
	ctx := context.Background()
	if _, err := svc.RequestEnd(ctx, debateID, p1); err != nil {
		t.Fatalf("p1 end request failed: %v", err)
	}
	if _, err := svc.RequestEnd(ctx, debateID, p2); err != nil {
		t.Fatalf("p2 end request failed: %v", err)
	}
}

func TestRequestEndTransitions(t *testing.T) {
	st := store.NewMemoryStore()
	svc := newTestDebateService(st)
	ctx := context.Background()

	p1 := newRatedUser(t, st, "p1", 1500, 20)
	p2 := newRatedUser(t, st, "p2", 1500, 20)
	debate, err := svc.CreateDebate(ctx, p1, p2)
	if err != nil {
		t.Fatalf("create debate failed: %v", err)
	}

	updated, err := svc.RequestEnd(ctx, debate.ID, p1)
	if err != nil {
		t.Fatalf("first end request failed: %v", err)
	}
	if updated.Status != models.DebateStatusEndRequested {
		t.Errorf("expected end_requested, got %s", updated.Status)
	}

	// Requesting twice is a no-op.
	updated, err = svc.RequestEnd(ctx, debate.ID, p1)
	if err != nil {
		t.Fatalf("repeat end request failed: %v", err)
	}
	if updated.Status != models.DebateStatusEndRequested {
		t.Errorf("repeat request should not advance state, got %s", updated.Status)
	}

	updated, err = svc.RequestEnd(ctx, debate.ID, p2)
	if err != nil {
		t.Fatalf("second end request failed: %v", err)
	}
	if updated.Status != models.DebateStatusBothAgreed {
		t.Errorf("expected both_agreed, got %s", updated.Status)
	}

	outsider := newRatedUser(t, st, "outsider", 1500, 20)
	if _, err := svc.RequestEnd(ctx, debate.ID, outsider); err != ErrNotParticipant {
		t.Errorf("expected ErrNotParticipant, got %v", err)
	}
}

func TestConcludeRequiresMutualAgreement(t *testing.T) {
	st := store.NewMemoryStore()
	svc := newTestDebateService(st)
	ctx := context.Background()

	p1 := newRatedUser(t, st, "p1", 1500, 20)
	p2 := newRatedUser(t, st, "p2", 1500, 20)
	debate, _ := svc.CreateDebate(ctx, p1, p2)

	if _, err := svc.ConcludePrivate(ctx, debate.ID, p1); err != ErrPreconditionNotMet {
		t.Errorf("expected ErrPreconditionNotMet before agreement, got %v", err)
	}
	if _, err := svc.ConcludePublic(ctx, debate.ID, p1, 24*time.Hour); err != ErrPreconditionNotMet {
		t.Errorf("expected ErrPreconditionNotMet before agreement, got %v", err)
	}

	agreeToEnd(t, svc, debate.ID, p1, p2)

	if _, err := svc.ConcludePublic(ctx, debate.ID, p1, 7*time.Hour); err != ErrInvalidDuration {
		t.Errorf("expected ErrInvalidDuration for 7h window, got %v", err)
	}

	updated, err := svc.ConcludePrivate(ctx, debate.ID, p2)
	if err != nil {
		t.Fatalf("private conclusion failed: %v", err)
	}
	if updated.Status != models.DebateStatusEndedPrivate {
		t.Errorf("expected ended_private, got %s", updated.Status)
	}

	// Private conclusions leave ratings untouched.
	if len(st.EloLogs) != 0 || len(st.XPLogs) != 0 {
		t.Error("private conclusion must not produce rating or xp log entries")
	}
}

func TestCastVoteRules(t *testing.T) {
	st := store.NewMemoryStore()
	svc := newTestDebateService(st)
	ctx := context.Background()

	p1 := newRatedUser(t, st, "p1", 1500, 20)
	p2 := newRatedUser(t, st, "p2", 1500, 20)
	debate, _ := svc.CreateDebate(ctx, p1, p2)
	voter := primitive.NewObjectID()

	// Voting before the debate is public is rejected.
	if _, err := svc.CastVote(ctx, debate.ID, voter, models.VoteForParticipant1); err != ErrVotingClosed {
		t.Errorf("expected ErrVotingClosed before public conclusion, got %v", err)
	}

	agreeToEnd(t, svc, debate.ID, p1, p2)
	if _, err := svc.ConcludePublic(ctx, debate.ID, p1, 6*time.Hour); err != nil {
		t.Fatalf("public conclusion failed: %v", err)
	}

	if _, err := svc.CastVote(ctx, debate.ID, voter, "participant3"); err != ErrInvalidChoice {
		t.Errorf("expected ErrInvalidChoice, got %v", err)
	}

	updated, err := svc.CastVote(ctx, debate.ID, voter, models.VoteForParticipant1)
	if err != nil {
		t.Fatalf("vote failed: %v", err)
	}
	if updated.Participant1Votes != 1 || updated.TotalVotes != 1 {
		t.Errorf("expected tally 1/0, got %d/%d", updated.Participant1Votes, updated.Participant2Votes)
	}

	// A repeat vote is rejected, not overwritten.
	if _, err := svc.CastVote(ctx, debate.ID, voter, models.VoteForParticipant2); err != ErrDuplicateVote {
		t.Errorf("expected ErrDuplicateVote, got %v", err)
	}

	// Votes after the window lapses are rejected even before the sweep runs.
	svc.now = func() time.Time { return time.Now().Add(7 * time.Hour) }
	if _, err := svc.CastVote(ctx, debate.ID, primitive.NewObjectID(), models.VoteForParticipant1); err != ErrVotingClosed {
		t.Errorf("expected ErrVotingClosed after window end, got %v", err)
	}
}

func TestCloseVotingResolvesUpset(t *testing.T) {
	st := store.NewMemoryStore()
	svc := newTestDebateService(st)
	ctx := context.Background()

	// 1600 vs 1400, both established players in the default K band.
	p1 := newRatedUser(t, st, "favorite", 1600, 20)
	p2 := newRatedUser(t, st, "underdog", 1400, 20)
	debate, _ := svc.CreateDebate(ctx, p1, p2)

	agreeToEnd(t, svc, debate.ID, p1, p2)
	if _, err := svc.ConcludePublic(ctx, debate.ID, p2, 24*time.Hour); err != nil {
		t.Fatalf("public conclusion failed: %v", err)
	}

	// 7-3 for the underdog.
	for i := 0; i < 7; i++ {
		if _, err := svc.CastVote(ctx, debate.ID, primitive.NewObjectID(), models.VoteForParticipant2); err != nil {
			t.Fatalf("vote %d failed: %v", i, err)
		}
	}
	for i := 0; i < 3; i++ {
		if _, err := svc.CastVote(ctx, debate.ID, primitive.NewObjectID(), models.VoteForParticipant1); err != nil {
			t.Fatalf("vote %d failed: %v", i, err)
		}
	}

	svc.now = func() time.Time { return time.Now().Add(25 * time.Hour) }
	if err := svc.CloseVoting(ctx, debate.ID); err != nil {
		t.Fatalf("close voting failed: %v", err)
	}

	resolved, err := svc.GetDebate(ctx, debate.ID)
	if err != nil {
		t.Fatalf("failed to reload debate: %v", err)
	}
	if resolved.Status != models.DebateStatusEndedPublic {
		t.Errorf("expected ended_public, got %s", resolved.Status)
	}
	if resolved.WinnerID != p2 {
		t.Error("expected the underdog to win the vote")
	}

	// K=24 for both; expected(1400,1600) ~= 0.2403 so the delta is 18.
	underdog, _ := st.GetProfile(ctx, p2)
	favorite, _ := st.GetProfile(ctx, p1)
	if underdog.EloRating != 1418 {
		t.Errorf("expected underdog rating 1418, got %d", underdog.EloRating)
	}
	if favorite.EloRating != 1582 {
		t.Errorf("expected favorite rating 1582, got %d", favorite.EloRating)
	}
	if resolved.Participant2EloChange != 18 || resolved.Participant1EloChange != -18 {
		t.Errorf("expected elo changes +18/-18, got %d/%d",
			resolved.Participant2EloChange, resolved.Participant1EloChange)
	}

	// Winner: base 50 + upset floor(200/100)*10 = 70. Loser: base 25.
	if underdog.XPPoints != 70 {
		t.Errorf("expected underdog xp 70, got %d", underdog.XPPoints)
	}
	if favorite.XPPoints != 25 {
		t.Errorf("expected favorite xp 25, got %d", favorite.XPPoints)
	}

	if underdog.Wins != 1 || favorite.Losses != 1 {
		t.Error("win/loss counters not updated")
	}
	if underdog.TotalDebates != 21 || favorite.TotalDebates != 21 {
		t.Error("games played should increment once per participant")
	}
}

func TestCloseVotingIsIdempotent(t *testing.T) {
	st := store.NewMemoryStore()
	svc := newTestDebateService(st)
	ctx := context.Background()

	p1 := newRatedUser(t, st, "p1", 1500, 20)
	p2 := newRatedUser(t, st, "p2", 1500, 20)
	debate, _ := svc.CreateDebate(ctx, p1, p2)
	agreeToEnd(t, svc, debate.ID, p1, p2)
	if _, err := svc.ConcludePublic(ctx, debate.ID, p1, 6*time.Hour); err != nil {
		t.Fatalf("public conclusion failed: %v", err)
	}
	if _, err := svc.CastVote(ctx, debate.ID, primitive.NewObjectID(), models.VoteForParticipant1); err != nil {
		t.Fatalf("vote failed: %v", err)
	}

	svc.now = func() time.Time { return time.Now().Add(7 * time.Hour) }
	if err := svc.CloseVoting(ctx, debate.ID); err != nil {
		t.Fatalf("first close failed: %v", err)
	}
	if err := svc.CloseVoting(ctx, debate.ID); err != nil {
		t.Fatalf("second close should be a silent no-op, got %v", err)
	}

	// Exactly one elo and one xp entry per participant despite two closes.
	if len(st.EloLogs) != 2 {
		t.Errorf("expected 2 elo log entries, got %d", len(st.EloLogs))
	}
	if len(st.XPLogs) != 2 {
		t.Errorf("expected 2 xp log entries, got %d", len(st.XPLogs))
	}
}

func TestCloseVotingTieIsNoContest(t *testing.T) {
	st := store.NewMemoryStore()
	svc := newTestDebateService(st)
	ctx := context.Background()

	p1 := newRatedUser(t, st, "p1", 1500, 20)
	p2 := newRatedUser(t, st, "p2", 1500, 20)
	debate, _ := svc.CreateDebate(ctx, p1, p2)
	agreeToEnd(t, svc, debate.ID, p1, p2)
	if _, err := svc.ConcludePublic(ctx, debate.ID, p1, 6*time.Hour); err != nil {
		t.Fatalf("public conclusion failed: %v", err)
	}

	if _, err := svc.CastVote(ctx, debate.ID, primitive.NewObjectID(), models.VoteForParticipant1); err != nil {
		t.Fatalf("vote failed: %v", err)
	}
	if _, err := svc.CastVote(ctx, debate.ID, primitive.NewObjectID(), models.VoteForParticipant2); err != nil {
		t.Fatalf("vote failed: %v", err)
	}

	svc.now = func() time.Time { return time.Now().Add(7 * time.Hour) }
	if err := svc.CloseVoting(ctx, debate.ID); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	resolved, _ := svc.GetDebate(ctx, debate.ID)
	if resolved.Status != models.DebateStatusEndedPublic {
		t.Errorf("tied debate should still conclude, got %s", resolved.Status)
	}
	if !resolved.WinnerID.IsZero() {
		t.Error("tied debate must not declare a winner")
	}
	if len(st.EloLogs) != 0 || len(st.XPLogs) != 0 {
		t.Error("tied debate must not move ratings or xp")
	}

	user1, _ := st.GetProfile(ctx, p1)
	if user1.EloRating != 1500 {
		t.Errorf("tie should leave rating at 1500, got %d", user1.EloRating)
	}
	if user1.TotalDebates != 21 {
		t.Errorf("tie should still count as a played game, got %d", user1.TotalDebates)
	}
}

func TestCloseExpiredWindowsSweep(t *testing.T) {
	st := store.NewMemoryStore()
	svc := newTestDebateService(st)
	ctx := context.Background()

	p1 := newRatedUser(t, st, "p1", 1500, 20)
	p2 := newRatedUser(t, st, "p2", 1500, 20)
	p3 := newRatedUser(t, st, "p3", 1500, 20)
	p4 := newRatedUser(t, st, "p4", 1500, 20)

	expired, _ := svc.CreateDebate(ctx, p1, p2)
	agreeToEnd(t, svc, expired.ID, p1, p2)
	if _, err := svc.ConcludePublic(ctx, expired.ID, p1, 6*time.Hour); err != nil {
		t.Fatalf("public conclusion failed: %v", err)
	}

	open, _ := svc.CreateDebate(ctx, p3, p4)
	agreeToEnd(t, svc, open.ID, p3, p4)
	if _, err := svc.ConcludePublic(ctx, open.ID, p3, 72*time.Hour); err != nil {
		t.Fatalf("public conclusion failed: %v", err)
	}

	svc.now = func() time.Time { return time.Now().Add(7 * time.Hour) }
	closed, err := svc.CloseExpiredWindows(ctx)
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if closed != 1 {
		t.Errorf("expected exactly 1 debate closed by the sweep, got %d", closed)
	}

	stillOpen, _ := svc.GetDebate(ctx, open.ID)
	if stillOpen.Status != models.DebateStatusVoting {
		t.Errorf("72h window should still be open, got %s", stillOpen.Status)
	}
}
