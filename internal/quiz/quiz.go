// Package quiz implements the Bible Heroes trivia engine: a shuffled run of
// rounds, one answer per round, ten points per correct answer.
package quiz

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/playperu/arcade/internal/arcade"
)

const (
	// PointsPerAnswer is awarded for every correct submission.
	PointsPerAnswer = 10
	ClueCount       = 3
	OptionCount     = 4
)

// Round is one trivia question: a subject, its clues in reveal order and
// the candidate names offered to the player.
type Round struct {
	Subject string
	Emoji   string
	Clues   []string
	Options []string
}

// Validate reports whether r is playable.
func (r Round) Validate() error {
	if r.Subject == "" {
		return fmt.Errorf("%w: round has no subject", arcade.ErrInvalidArgument)
	}
	if len(r.Clues) != ClueCount {
		return fmt.Errorf("%w: round %q has %d clues, want %d", arcade.ErrInvalidArgument, r.Subject, len(r.Clues), ClueCount)
	}
	if len(r.Options) != OptionCount {
		return fmt.Errorf("%w: round %q has %d options, want %d", arcade.ErrInvalidArgument, r.Subject, len(r.Options), OptionCount)
	}
	seen := make(map[string]struct{}, len(r.Options))
	for _, o := range r.Options {
		if _, dup := seen[o]; dup {
			return fmt.Errorf("%w: round %q lists option %q twice", arcade.ErrInvalidArgument, r.Subject, o)
		}
		seen[o] = struct{}{}
	}
	if _, ok := seen[r.Subject]; !ok {
		return fmt.Errorf("%w: round %q does not offer its own subject", arcade.ErrInvalidArgument, r.Subject)
	}
	return nil
}

func (r Round) clone() Round {
	r.Clues = slices.Clone(r.Clues)
	r.Options = slices.Clone(r.Options)
	return r
}

// Answer is the verdict on a submission. CorrectAnswer is always set so the
// caller can highlight it.
type Answer struct {
	Correct       bool
	CorrectAnswer string
}

type Progress struct {
	Done bool
}

type Option func(*Engine)

// WithRand sets the source used for the initial shuffle.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithSeed makes the shuffle reproducible.
func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// Engine holds one quiz session. It is not safe for concurrent use.
type Engine struct {
	rng      *rand.Rand
	rounds   []Round
	index    int
	score    int
	correct  int
	answered bool
}

// New copies rounds and shuffles the copy once.
func New(rounds []Round, opts ...Option) (*Engine, error) {
	if len(rounds) == 0 {
		return nil, fmt.Errorf("%w: no rounds", arcade.ErrInvalidArgument)
	}
	e := &Engine{rounds: make([]Round, 0, len(rounds))}
	for _, r := range rounds {
		if err := r.Validate(); err != nil {
			return nil, err
		}
		e.rounds = append(e.rounds, r.clone())
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	shuffle(e.rng, e.rounds)
	return e, nil
}

// shuffle is a Fisher–Yates pass from the tail.
func shuffle(rng *rand.Rand, rounds []Round) {
	for i := len(rounds) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		rounds[i], rounds[j] = rounds[j], rounds[i]
	}
}

func (e *Engine) CurrentRound() (Round, error) {
	if e.index >= len(e.rounds) {
		return Round{}, fmt.Errorf("%w: round %d of %d", arcade.ErrOutOfRange, e.index+1, len(e.rounds))
	}
	return e.rounds[e.index].clone(), nil
}

// SubmitAnswer scores choice against the current round. It does not move to
// the next round; a round accepts exactly one submission.
func (e *Engine) SubmitAnswer(choice string) (Answer, error) {
	if e.Done() {
		return Answer{}, fmt.Errorf("%w: quiz is over", arcade.ErrInvalidState)
	}
	if e.answered {
		return Answer{}, fmt.Errorf("%w: round %d already answered", arcade.ErrInvalidState, e.index+1)
	}
	round := e.rounds[e.index]
	e.answered = true

	a := Answer{Correct: choice == round.Subject, CorrectAnswer: round.Subject}
	if a.Correct {
		e.score += PointsPerAnswer
		e.correct++
	}
	return a, nil
}

func (e *Engine) Advance() (Progress, error) {
	if e.Done() {
		return Progress{Done: true}, fmt.Errorf("%w: quiz is over", arcade.ErrInvalidState)
	}
	e.index++
	e.answered = false
	return Progress{Done: e.Done()}, nil
}

func (e *Engine) Done() bool     { return e.index >= len(e.rounds) }
func (e *Engine) Score() int     { return e.score }
func (e *Engine) Correct() int   { return e.correct }
func (e *Engine) Index() int     { return e.index }
func (e *Engine) Len() int       { return len(e.rounds) }
func (e *Engine) Answered() bool { return e.answered }

// Rounds returns the shuffled play order.
func (e *Engine) Rounds() []Round {
	out := make([]Round, len(e.rounds))
	for i, r := range e.rounds {
		out[i] = r.clone()
	}
	return out
}
