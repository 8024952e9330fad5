package voteledger

import (
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Ledger keeps the live vote state for open debates in Redis: a voter set for
// duplicate gating and a per-choice hash for running counts. Mongo remains the
// authoritative vote record; the ledger exists so vote spam and live tally
// reads never hit the primary store.
type Ledger struct {
	rdb *redis.Client
}

// NewLedger creates a Ledger on the shared Redis client. Returns nil when
// Redis was never initialized so callers can treat the ledger as optional.
func NewLedger() *Ledger {
	client := GetRedisClient()
	if client == nil {
		return nil
	}
	return &Ledger{rdb: client}
}

func votersKey(debateID string) string {
	return fmt.Sprintf("debate:%s:voters", debateID)
}

func countsKey(debateID string) string {
	return fmt.Sprintf("debate:%s:counts", debateID)
}

// RecordVote adds the voter to the debate's voter set and bumps the count for
// their choice. Returns false without error when the voter was already in the
// set (SADD reports 0 added members).
func (l *Ledger) RecordVote(debateID, voterID, choice string) (bool, error) {
	if l == nil || l.rdb == nil {
		return false, fmt.Errorf("redis client not available")
	}

	added, err := l.rdb.SAdd(ctx, votersKey(debateID), voterID).Result()
	if err != nil {
		return false, fmt.Errorf("failed to add voter: %w", err)
	}
	if added == 0 {
		return false, nil
	}

	if err := l.rdb.HIncrBy(ctx, countsKey(debateID), choice, 1).Err(); err != nil {
		// Roll back the voter add so a retry is not treated as a duplicate.
		l.rdb.SRem(ctx, votersKey(debateID), voterID)
		return false, fmt.Errorf("failed to increment count: %w", err)
	}

	return true, nil
}

// HasVoted checks if a voter has already voted on the debate.
func (l *Ledger) HasVoted(debateID, voterID string) (bool, error) {
	if l == nil || l.rdb == nil {
		return false, fmt.Errorf("redis client not available")
	}
	return l.rdb.SIsMember(ctx, votersKey(debateID), voterID).Result()
}

// LiveCounts returns the running per-choice counts for an open debate.
func (l *Ledger) LiveCounts(debateID string) (map[string]int64, error) {
	if l == nil || l.rdb == nil {
		return nil, fmt.Errorf("redis client not available")
	}

	raw, err := l.rdb.HGetAll(ctx, countsKey(debateID)).Result()
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(raw))
	for choice, value := range raw {
		var count int64
		if _, err := fmt.Sscanf(value, "%d", &count); err == nil {
			counts[choice] = count
		}
	}
	return counts, nil
}

// Clear drops the ledger keys for a debate after it resolves.
func (l *Ledger) Clear(debateID string) error {
	if l == nil || l.rdb == nil {
		return fmt.Errorf("redis client not available")
	}
	return l.rdb.Del(ctx, votersKey(debateID), countsKey(debateID)).Err()
}
