package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/playperu/arcade/internal/arcade"
	"github.com/playperu/arcade/internal/negotiation"
)

// endedAtLayout matches the column default: fixed width, so text order is
// time order.
const endedAtLayout = "2006-01-02T15:04:05.000Z"

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// RecordOutcome is idempotent per session.
func (s *SQLiteStore) RecordOutcome(ctx context.Context, o arcade.Outcome) error {
	if o.EndedAt.IsZero() {
		o.EndedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO results (session_id, kind, player, result, score, final_price, turns, ended_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(session_id) DO NOTHING
	`, o.SessionID, string(o.Kind), o.Player, o.Result, o.Score, o.FinalPrice, o.Turns,
		o.EndedAt.UTC().Format(endedAtLayout))
	if err != nil {
		return fmt.Errorf("inserting result: %w", err)
	}
	return nil
}

// ListOutcomes returns the newest outcomes first. An empty kind lists both games.
func (s *SQLiteStore) ListOutcomes(ctx context.Context, kind arcade.GameKind, limit int) ([]arcade.Outcome, error) {
	return s.queryOutcomes(ctx, `
		SELECT session_id, kind, player, result, score, final_price, turns, ended_at
		FROM results
		WHERE ? = '' OR kind = ?
		ORDER BY ended_at DESC
		LIMIT ?
	`, string(kind), string(kind), limit)
}

// TopOutcomes ranks quiz runs by score and negotiations by cheapest deal.
func (s *SQLiteStore) TopOutcomes(ctx context.Context, kind arcade.GameKind, limit int) ([]arcade.Outcome, error) {
	switch kind {
	case arcade.GameKindQuiz:
		return s.queryOutcomes(ctx, `
			SELECT session_id, kind, player, result, score, final_price, turns, ended_at
			FROM results
			WHERE kind = 'quiz'
			ORDER BY score DESC, ended_at ASC
			LIMIT ?
		`, limit)
	case arcade.GameKindNegotiation:
		return s.queryOutcomes(ctx, `
			SELECT session_id, kind, player, result, score, final_price, turns, ended_at
			FROM results
			WHERE kind = 'negotiation' AND result = ?
			ORDER BY final_price ASC, turns ASC
			LIMIT ?
		`, string(negotiation.OutcomeDeal), limit)
	}
	return nil, fmt.Errorf("unknown game kind %q", kind)
}

func (s *SQLiteStore) queryOutcomes(ctx context.Context, query string, args ...any) ([]arcade.Outcome, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []arcade.Outcome
	for rows.Next() {
		var (
			o       arcade.Outcome
			kind    string
			endedAt string
		)
		if err := rows.Scan(&o.SessionID, &kind, &o.Player, &o.Result, &o.Score, &o.FinalPrice, &o.Turns, &endedAt); err != nil {
			return nil, err
		}
		o.Kind = arcade.GameKind(kind)
		o.EndedAt, err = time.Parse(endedAtLayout, endedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing ended_at of %s: %w", o.SessionID, err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) SaveCatalog(ctx context.Context, source []byte, rounds int, uploadedBy string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO catalogs (source, round_count, uploaded_by) VALUES (?, ?, ?)
	`, string(source), rounds, uploadedBy)
	return err
}

// LatestCatalog returns ErrNotFound until something has been uploaded.
func (s *SQLiteStore) LatestCatalog(ctx context.Context) ([]byte, error) {
	var src string
	err := s.db.QueryRowContext(ctx, `
		SELECT source FROM catalogs ORDER BY id DESC LIMIT 1
	`).Scan(&src)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(src), nil
}
