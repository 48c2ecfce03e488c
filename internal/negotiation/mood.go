package negotiation

import (
	"fmt"
	"strings"

	"github.com/playperu/arcade/internal/arcade"
)

type Tone string

const (
	TonePolite Tone = "polite"
	ToneFair   Tone = "fair"
	ToneFirm   Tone = "firm"
)

// ParseTone is case-insensitive; an empty string means fair.
func ParseTone(s string) (Tone, error) {
	t := Tone(strings.ToLower(strings.TrimSpace(s)))
	if t == "" {
		return ToneFair, nil
	}
	if !t.Valid() {
		return "", fmt.Errorf("%w: unknown tone %q", arcade.ErrInvalidArgument, s)
	}
	return t, nil
}

func (t Tone) Valid() bool {
	switch t {
	case TonePolite, ToneFair, ToneFirm:
		return true
	}
	return false
}

func (t Tone) trustDelta() int {
	switch t {
	case TonePolite:
		return 5
	case ToneFirm:
		return -5
	}
	return 0
}

type Mood string

const (
	MoodAngry      Mood = "angry"
	MoodAnnoyed    Mood = "annoyed"
	MoodNeutral    Mood = "neutral"
	MoodInterested Mood = "interested"
	MoodHappy      Mood = "happy"
)

// Label is the text shown next to the merchant's portrait.
func (m Mood) Label() string {
	switch m {
	case MoodAngry:
		return "Angry"
	case MoodAnnoyed:
		return "Annoyed"
	case MoodInterested:
		return "Interested"
	case MoodHappy:
		// Not "Neutral": the browser game's mood table has no "happy" key.
		return "Great"
	}
	return "Neutral"
}

// Color is the hex accent paired with Label.
func (m Mood) Color() string {
	switch m {
	case MoodAngry:
		return "#ff3e3e"
	case MoodAnnoyed:
		return "#ffb83e"
	case MoodInterested:
		return "#00f2ff"
	case MoodHappy:
		return "#3eff8b"
	}
	return "#8888aa"
}

const (
	replyInsult   = "Are you mocking me? This is an insult."
	replyTooLow   = "That's far too low. I know the value of what I hold."
	replyGenerous = "A generous offer! I like your style."
	replyTalking  = "We're talking now. But I need more than that."
	replyPatience = "I'm losing my patience. One more move like that and the deal is off."
)

type Outcome string

const (
	OutcomePending   Outcome = "pending"
	OutcomeDeal      Outcome = "deal"
	OutcomeWithdrawn Outcome = "withdrawn"
	OutcomeCollapsed Outcome = "collapsed"
)

// EndScreen returns the title and message shown when a session ends. It is
// empty while the negotiation is still open.
func (e *Engine) EndScreen() (title, message string) {
	switch e.outcome {
	case OutcomeDeal:
		return "Deal Successful", fmt.Sprintf(
			"You acquired the Void Heart for %d credits. Remaining budget: %d credits.",
			e.price, e.budget-e.price)
	case OutcomeWithdrawn:
		return "Withdrawn", "You decided to walk away. The Void Heart remains in Vax's hands."
	case OutcomeCollapsed:
		return "Deal Collapsed", "Vax was so insulted he walked away. You left empty-handed."
	}
	return "", ""
}
