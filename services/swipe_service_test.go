package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"debatematch/models"
	"debatematch/store"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestUser(t *testing.T, st *store.MemoryStore, name string) primitive.ObjectID {
	t.Helper()
	user := &models.User{
		Email:       name + "@example.com",
		DisplayName: name,
		EloRating:   models.InitialEloRating,
		CurrentRank: models.RankForRating(models.InitialEloRating),
		CreatedAt:   time.Now(),
	}
	if err := st.CreateProfile(context.Background(), user); err != nil {
		t.Fatalf("failed to create test user %s: %v", name, err)
	}
	return user.ID
}

func TestReciprocalLikeProducesMatch(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewSwipeService(st)
	ctx := context.Background()

	alice := newTestUser(t, st, "alice")
	bob := newTestUser(t, st, "bob")

	first, err := svc.RecordLike(ctx, alice, bob)
	if err != nil {
		t.Fatalf("first like failed: %v", err)
	}
	if first.IsMatch {
		t.Error("first like should not produce a match")
	}

	second, err := svc.RecordLike(ctx, bob, alice)
	if err != nil {
		t.Fatalf("reciprocal like failed: %v", err)
	}
	if !second.IsMatch {
		t.Error("reciprocal like should produce a match")
	}
	if !second.Match.IsMatched {
		t.Error("match record should be marked mutual")
	}
}

func TestMatchOutcomeIsOrderIndependent(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewSwipeService(st)
	ctx := context.Background()

	alice := newTestUser(t, st, "alice")
	bob := newTestUser(t, st, "bob")

	// Reverse order of the previous test: bob acts first.
	first, err := svc.RecordLike(ctx, bob, alice)
	if err != nil {
		t.Fatalf("first like failed: %v", err)
	}
	if first.IsMatch {
		t.Error("first like should not produce a match")
	}

	second, err := svc.RecordLike(ctx, alice, bob)
	if err != nil {
		t.Fatalf("reciprocal like failed: %v", err)
	}
	if !second.IsMatch {
		t.Error("reciprocal like should produce a match regardless of order")
	}
}

func TestPassNeverMatchesButLaterLikeCan(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewSwipeService(st)
	ctx := context.Background()

	alice := newTestUser(t, st, "alice")
	bob := newTestUser(t, st, "bob")

	if _, err := svc.RecordLike(ctx, alice, bob); err != nil {
		t.Fatalf("like failed: %v", err)
	}

	passed, err := svc.RecordPass(ctx, bob, alice)
	if err != nil {
		t.Fatalf("pass failed: %v", err)
	}
	if passed.IsMatch || passed.Match.IsMatched {
		t.Error("a pass must never produce a match")
	}

	// Bob changes his mind: last decision wins for his side.
	liked, err := svc.RecordLike(ctx, bob, alice)
	if err != nil {
		t.Fatalf("later like failed: %v", err)
	}
	if !liked.IsMatch {
		t.Error("a later like from the same actor should complete the match")
	}
}

func TestRepeatSwipeIsIdempotentOverwrite(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewSwipeService(st)
	ctx := context.Background()

	alice := newTestUser(t, st, "alice")
	bob := newTestUser(t, st, "bob")

	if _, err := svc.RecordLike(ctx, alice, bob); err != nil {
		t.Fatalf("like failed: %v", err)
	}
	repeat, err := svc.RecordLike(ctx, alice, bob)
	if err != nil {
		t.Fatalf("repeat like failed: %v", err)
	}
	if repeat.IsMatch {
		t.Error("repeat one-sided like should not produce a match")
	}
	if repeat.Match.User1SwipedRight == nil || !*repeat.Match.User1SwipedRight {
		t.Error("repeat like should keep the actor's side set to like")
	}
}

func TestSwipeUnknownParticipant(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewSwipeService(st)
	ctx := context.Background()

	alice := newTestUser(t, st, "alice")
	ghost := primitive.NewObjectID()

	if _, err := svc.RecordLike(ctx, alice, ghost); err != ErrUnknownParticipant {
		t.Errorf("expected ErrUnknownParticipant, got %v", err)
	}
	if _, err := svc.RecordLike(ctx, ghost, alice); err != ErrUnknownParticipant {
		t.Errorf("expected ErrUnknownParticipant for unknown actor, got %v", err)
	}
	if _, err := svc.RecordLike(ctx, alice, alice); err != ErrSelfAction {
		t.Errorf("expected ErrSelfAction, got %v", err)
	}
}

func TestConcurrentReciprocalLikesDoNotLoseMatch(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewSwipeService(st)
	ctx := context.Background()

	alice := newTestUser(t, st, "alice")
	bob := newTestUser(t, st, "bob")

	var wg sync.WaitGroup
	results := make([]SwipeResult, 2)
	errs := make([]error, 2)

	wg.Add(2)
	go func() {
		defer wg.Done()
		results[0], errs[0] = svc.RecordLike(ctx, alice, bob)
	}()
	go func() {
		defer wg.Done()
		results[1], errs[1] = svc.RecordLike(ctx, bob, alice)
	}()
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("concurrent like %d failed: %v", i, err)
		}
	}

	if !results[0].IsMatch && !results[1].IsMatch {
		t.Error("one of two concurrent reciprocal likes must observe the match")
	}

	match, _, err := st.GetOrCreateMatch(ctx, alice, bob)
	if err != nil {
		t.Fatalf("failed to reload match: %v", err)
	}
	if !match.IsMatched {
		t.Error("stored match record should be mutual after both likes")
	}
}

func TestCandidatesExcludeSwipedUsers(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewSwipeService(st)
	ctx := context.Background()

	alice := newTestUser(t, st, "alice")
	bob := newTestUser(t, st, "bob")
	carol := newTestUser(t, st, "carol")

	if _, err := svc.RecordPass(ctx, alice, bob); err != nil {
		t.Fatalf("pass failed: %v", err)
	}

	candidates, err := svc.Candidates(ctx, alice, 10)
	if err != nil {
		t.Fatalf("candidates failed: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(candidates))
	}
	if candidates[0].ID != carol {
		t.Errorf("expected carol to be the remaining candidate")
	}
}
