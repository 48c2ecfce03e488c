package server

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/playperu/arcade/internal/arcade"
	"github.com/playperu/arcade/internal/negotiation"
	"github.com/playperu/arcade/internal/quiz"
)

var ErrNotFound = errors.New("not found")

// session owns one engine. Engines are single-threaded, so every handler
// takes mu for the whole transition. lastSeen lives outside mu so the
// sweeper never waits on a busy handler.
type session struct {
	mu       sync.Mutex
	id       string
	kind     arcade.GameKind
	player   string
	quiz     *quiz.Engine
	deal     *negotiation.Engine
	recorded bool
	lastSeen atomic.Int64 // unix nanos
}

func (sess *session) touch(now time.Time) { sess.lastSeen.Store(now.UnixNano()) }

func (sess *session) idleSince(cutoff time.Time) bool {
	return sess.lastSeen.Load() < cutoff.UnixNano()
}

// Sessions is the in-memory registry of live games keyed by session ID.
type Sessions struct {
	mu       sync.RWMutex
	sessions map[string]*session
	now      func() time.Time
}

func NewSessions() *Sessions {
	return &Sessions{
		sessions: make(map[string]*session),
		now:      time.Now,
	}
}

func (s *Sessions) AddQuiz(player string, e *quiz.Engine) *session {
	return s.add(&session{kind: arcade.GameKindQuiz, player: player, quiz: e})
}

func (s *Sessions) AddNegotiation(player string, e *negotiation.Engine) *session {
	return s.add(&session{kind: arcade.GameKindNegotiation, player: player, deal: e})
}

func (s *Sessions) add(sess *session) *session {
	sess.id = uuid.NewString()
	sess.touch(s.now())

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()
	return sess
}

// Get looks a session up and marks it as seen.
func (s *Sessions) Get(id string) (*session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}

	sess.touch(s.now())
	return sess, nil
}

func (s *Sessions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep drops sessions idle for longer than ttl and returns how many went.
// Candidates are collected under the read lock; the write lock is held only
// to re-check and delete them.
func (s *Sessions) Sweep(ttl time.Duration) int {
	cutoff := s.now().Add(-ttl)

	s.mu.RLock()
	var idle []string
	for id, sess := range s.sessions {
		if sess.idleSince(cutoff) {
			idle = append(idle, id)
		}
	}
	s.mu.RUnlock()
	if len(idle) == 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, id := range idle {
		// A Get may have touched it since the scan.
		if sess, ok := s.sessions[id]; ok && sess.idleSince(cutoff) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

// RunSweeper sweeps every ttl/2 until ctx is done.
func (s *Sessions) RunSweeper(ctx context.Context, logger *slog.Logger, ttl time.Duration) error {
	tick := time.NewTicker(ttl / 2)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tick.C:
			if n := s.Sweep(ttl); n > 0 {
				logger.Info("swept idle sessions", "count", n, "remaining", s.Len())
			}
		}
	}
}
