// Package arcade defines the domain types shared by both games.
// It has no external dependencies.
package arcade

import (
	"errors"
	"time"
)

// Error kinds raised synchronously by the game engines. They signal a caller
// bug (a control that should have been disabled), never a runtime fault.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInvalidState    = errors.New("invalid state")
	ErrOutOfRange      = errors.New("out of range")
)

type GameKind string

const (
	GameKindQuiz        GameKind = "quiz"
	GameKindNegotiation GameKind = "negotiation"
)

// ParseGameKind accepts the kinds used in URLs and query strings.
func ParseGameKind(s string) (GameKind, bool) {
	switch GameKind(s) {
	case GameKindQuiz, GameKindNegotiation:
		return GameKind(s), true
	}
	return "", false
}

// Outcome is the record kept once a session reaches a terminal state.
type Outcome struct {
	SessionID  string
	Kind       GameKind
	Player     string
	Result     string
	Score      int
	FinalPrice int
	Turns      int
	EndedAt    time.Time
}
