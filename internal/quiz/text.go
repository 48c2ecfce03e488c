package quiz

import "fmt"

// Feedback is the line shown under the options once a round is answered.
func Feedback(a Answer, r Round) string {
	if a.Correct {
		return fmt.Sprintf("%s Correct! It's %s! 🌟", r.Emoji, a.CorrectAnswer)
	}
	return fmt.Sprintf("Oops! That's %s! %s", a.CorrectAnswer, r.Emoji)
}

// ProgressLabel reads "Hero 3/10" while a round is on screen.
func (e *Engine) ProgressLabel() string {
	n := e.index + 1
	if n > len(e.rounds) {
		n = len(e.rounds)
	}
	return fmt.Sprintf("Hero %d/%d", n, len(e.rounds))
}

type Summary struct {
	Score   int    `json:"score"`
	Found   int    `json:"found"`
	Total   int    `json:"total"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

func (e *Engine) Summary() Summary {
	return Summary{
		Score:   e.score,
		Found:   e.correct,
		Total:   len(e.rounds),
		Title:   fmt.Sprintf("Final Score: %d Stars!", e.score),
		Message: fmt.Sprintf("You found %d out of %d Bible Heroes!", e.correct, len(e.rounds)),
	}
}
