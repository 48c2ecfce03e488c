package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/playperu/arcade/internal/arcade"
	"github.com/playperu/arcade/internal/negotiation"
)

// LeaderboardEntry is one ranked session. Value is the score for the quiz
// and the final price for a negotiation.
type LeaderboardEntry struct {
	Rank      int    `json:"rank"`
	SessionID string `json:"sessionId"`
	Player    string `json:"player"`
	Value     int    `json:"value"`
}

type Leaderboard interface {
	Record(ctx context.Context, o arcade.Outcome) error
	Top(ctx context.Context, kind arcade.GameKind, n int) ([]LeaderboardEntry, error)
}

// storeLeaderboard ranks straight from the results table; Record is a no-op
// because the recorder already wrote the row.
type storeLeaderboard struct{ results ResultStore }

func (storeLeaderboard) Record(context.Context, arcade.Outcome) error { return nil }

func (l storeLeaderboard) Top(ctx context.Context, kind arcade.GameKind, n int) ([]LeaderboardEntry, error) {
	outcomes, err := l.results.TopOutcomes(ctx, kind, n)
	if err != nil {
		return nil, err
	}
	entries := make([]LeaderboardEntry, len(outcomes))
	for i, o := range outcomes {
		entries[i] = LeaderboardEntry{Rank: i + 1, SessionID: o.SessionID, Player: o.Player, Value: rankValue(o)}
	}
	return entries, nil
}

const redisPlayersKey = "arcade:players"

// RedisLeaderboard keeps one sorted set per game. Quiz members are ranked by
// highest score, negotiation members by lowest deal price.
type RedisLeaderboard struct {
	client *redis.Client
}

func NewRedisLeaderboard(client *redis.Client) *RedisLeaderboard {
	return &RedisLeaderboard{client: client}
}

func leaderboardKey(kind arcade.GameKind) string {
	return "arcade:leaderboard:" + string(kind)
}

func (l *RedisLeaderboard) Record(ctx context.Context, o arcade.Outcome) error {
	if o.Kind == arcade.GameKindNegotiation && o.Result != string(negotiation.OutcomeDeal) {
		return nil
	}

	_, err := l.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.ZAdd(ctx, leaderboardKey(o.Kind), redis.Z{Score: float64(rankValue(o)), Member: o.SessionID})
		p.HSet(ctx, redisPlayersKey, o.SessionID, o.Player)
		return nil
	})
	if err != nil {
		return fmt.Errorf("recording %s leaderboard entry: %w", o.Kind, err)
	}
	return nil
}

func (l *RedisLeaderboard) Top(ctx context.Context, kind arcade.GameKind, n int) ([]LeaderboardEntry, error) {
	var (
		zs  []redis.Z
		err error
	)
	key := leaderboardKey(kind)
	switch kind {
	case arcade.GameKindQuiz:
		zs, err = l.client.ZRevRangeWithScores(ctx, key, 0, int64(n-1)).Result()
	case arcade.GameKindNegotiation:
		zs, err = l.client.ZRangeWithScores(ctx, key, 0, int64(n-1)).Result()
	default:
		return nil, fmt.Errorf("unknown game kind %q", kind)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s leaderboard: %w", kind, err)
	}
	if len(zs) == 0 {
		return []LeaderboardEntry{}, nil
	}

	ids := make([]string, len(zs))
	for i, z := range zs {
		ids[i] = z.Member.(string)
	}
	names, err := l.client.HMGet(ctx, redisPlayersKey, ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("reading player names: %w", err)
	}

	entries := make([]LeaderboardEntry, len(zs))
	for i, z := range zs {
		name, _ := names[i].(string)
		entries[i] = LeaderboardEntry{Rank: i + 1, SessionID: ids[i], Player: name, Value: int(z.Score)}
	}
	return entries, nil
}

func rankValue(o arcade.Outcome) int {
	if o.Kind == arcade.GameKindNegotiation {
		return o.FinalPrice
	}
	return o.Score
}

// recorder writes an outcome once a session reaches a terminal state. A
// failed write is logged, not returned: the game has already ended.
type recorder struct {
	logger  *slog.Logger
	results ResultStore
	board   Leaderboard
}

func (rc recorder) record(ctx context.Context, o arcade.Outcome) {
	if err := rc.results.RecordOutcome(ctx, o); err != nil {
		rc.logger.Error("recording outcome failed", "session_id", o.SessionID, "kind", o.Kind, "error", err)
	}
	if err := rc.board.Record(ctx, o); err != nil {
		rc.logger.Error("updating leaderboard failed", "session_id", o.SessionID, "kind", o.Kind, "error", err)
	}
	rc.logger.Info("session ended", "session_id", o.SessionID, "kind", o.Kind, "result", o.Result,
		"score", o.Score, "final_price", o.FinalPrice, "turns", o.Turns)
}
