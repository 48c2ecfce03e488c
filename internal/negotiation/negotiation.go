// Package negotiation implements the haggling engine: the merchant Vax
// reacts to each offer by moving a trust meter and lowering the asking price
// toward a hidden floor.
package negotiation

import (
	"fmt"

	"github.com/playperu/arcade/internal/arcade"
)

const (
	MinTrust = 0
	MaxTrust = 100

	// Trust below this turns every reply into a warning.
	patienceThreshold = 20
	// Decay is (trust/150)*0.1 of the gap to the floor, i.e. trust/1500.
	decayDivisor = 1500
)

type Params struct {
	Budget        int
	StartingPrice int
	MinPrice      int
	StartingTrust int
}

// DefaultParams is the Void Heart deal.
func DefaultParams() Params {
	return Params{Budget: 10000, StartingPrice: 8500, MinPrice: 6000, StartingTrust: 50}
}

func (p Params) Validate() error {
	switch {
	case p.Budget < 0:
		return fmt.Errorf("%w: budget %d is negative", arcade.ErrInvalidArgument, p.Budget)
	case p.StartingPrice <= 0:
		return fmt.Errorf("%w: starting price %d must be positive", arcade.ErrInvalidArgument, p.StartingPrice)
	case p.MinPrice < 0 || p.MinPrice > p.StartingPrice:
		return fmt.Errorf("%w: min price %d outside [0, %d]", arcade.ErrInvalidArgument, p.MinPrice, p.StartingPrice)
	case p.StartingTrust < MinTrust || p.StartingTrust > MaxTrust:
		return fmt.Errorf("%w: starting trust %d outside [%d, %d]", arcade.ErrInvalidArgument, p.StartingTrust, MinTrust, MaxTrust)
	}
	return nil
}

// OfferResult is the merchant's reaction to one offer.
type OfferResult struct {
	Amount     int
	Tone       Tone
	TrustDelta int
	Response   string
	Mood       Mood
	NewPrice   int
	NewTrust   int
	Turn       int
	Collapsed  bool
}

type Deal struct {
	FinalPrice      int
	RemainingBudget int
}

// State is a read-only snapshot of the engine.
type State struct {
	Budget       int
	CurrentPrice int
	MinPrice     int
	Trust        int
	Turn         int
	GameOver     bool
	LastTone     Tone
	LastOffer    int
	Outcome      Outcome
}

// Engine holds one negotiation session. It is not safe for concurrent use.
type Engine struct {
	budget   int
	price    int
	minPrice int
	trust    int
	turn     int
	lastTone Tone
	offer    int
	outcome  Outcome
	history  []OfferResult
}

func New(p Params) (*Engine, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		budget:   p.Budget,
		price:    p.StartingPrice,
		minPrice: p.MinPrice,
		trust:    p.StartingTrust,
		turn:     1,
		lastTone: ToneFair,
		outcome:  OutcomePending,
	}, nil
}

// MakeOffer applies one offer. The steps run in a fixed order: tone, ratio
// tier, trust clamp, price decay, patience override, collapse check.
func (e *Engine) MakeOffer(amount int, tone Tone) (OfferResult, error) {
	if e.GameOver() {
		return OfferResult{}, fmt.Errorf("%w: negotiation is over (%s)", arcade.ErrInvalidState, e.outcome)
	}
	if amount < 0 || amount > e.budget {
		return OfferResult{}, fmt.Errorf("%w: offer %d outside [0, %d]", arcade.ErrInvalidArgument, amount, e.budget)
	}
	if !tone.Valid() {
		return OfferResult{}, fmt.Errorf("%w: unknown tone %q", arcade.ErrInvalidArgument, string(tone))
	}

	e.offer = amount
	e.lastTone = tone
	res := OfferResult{Amount: amount, Tone: tone, Turn: e.turn}

	res.TrustDelta = tone.trustDelta()

	// Ratio tiers in integer form: a/p < 0.5, a/p < 0.8, a/p > 1.2.
	switch {
	case 2*amount < e.price:
		res.TrustDelta -= 20
		res.Mood, res.Response = MoodAngry, replyInsult
	case 5*amount < 4*e.price:
		res.TrustDelta -= 10
		res.Mood, res.Response = MoodAnnoyed, replyTooLow
	case 5*amount > 6*e.price:
		res.TrustDelta += 15
		res.Mood, res.Response = MoodHappy, replyGenerous
		e.price = amount
	default:
		res.TrustDelta += 5
		res.Mood, res.Response = MoodInterested, replyTalking
	}

	e.trust = clamp(e.trust+res.TrustDelta, MinTrust, MaxTrust)

	// Decay also runs on an overpay turn, against the price just reset.
	e.price = decay(e.price, e.minPrice, e.trust)

	if e.trust < patienceThreshold {
		res.Mood, res.Response = MoodAngry, replyPatience
	}

	res.NewPrice = e.price
	res.NewTrust = e.trust

	if e.trust <= MinTrust {
		e.outcome = OutcomeCollapsed
		res.Collapsed = true
		e.history = append(e.history, res)
		return res, nil
	}

	e.history = append(e.history, res)
	e.turn++
	return res, nil
}

// Accept closes the deal at the current asking price.
func (e *Engine) Accept() (Deal, error) {
	if e.GameOver() {
		return Deal{}, fmt.Errorf("%w: negotiation is over (%s)", arcade.ErrInvalidState, e.outcome)
	}
	e.outcome = OutcomeDeal
	return Deal{FinalPrice: e.price, RemainingBudget: e.budget - e.price}, nil
}

func (e *Engine) WalkAway() error {
	if e.GameOver() {
		return fmt.Errorf("%w: negotiation is over (%s)", arcade.ErrInvalidState, e.outcome)
	}
	e.outcome = OutcomeWithdrawn
	return nil
}

func (e *Engine) GameOver() bool { return e.outcome != OutcomePending }

func (e *Engine) State() State {
	return State{
		Budget:       e.budget,
		CurrentPrice: e.price,
		MinPrice:     e.minPrice,
		Trust:        e.trust,
		Turn:         e.turn,
		GameOver:     e.GameOver(),
		LastTone:     e.lastTone,
		LastOffer:    e.offer,
		Outcome:      e.outcome,
	}
}

// History lists every applied offer, oldest first.
func (e *Engine) History() []OfferResult {
	out := make([]OfferResult, len(e.history))
	copy(out, e.history)
	return out
}

// decay moves price toward floor by (price-floor)*trust/1500, rounding half
// up in integer arithmetic. Callers guarantee price > 0 and trust <= 100, so
// the numerator stays positive.
func decay(price, floor, trust int) int {
	num := decayDivisor*price - (price-floor)*trust
	next := (2*num + decayDivisor) / (2 * decayDivisor)
	return max(floor, next)
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
