package server

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/playperu/arcade/internal/arcade"
	"github.com/playperu/arcade/internal/catalog"
	"github.com/playperu/arcade/internal/quiz"
)

type QuizCreateRequest struct {
	Player string  `json:"player"`
	Seed   *uint64 `json:"seed,omitempty"`
}

// RoundInfo is what the player sees: the clues and the options, never the answer.
type RoundInfo struct {
	Clues   []string `json:"clues"`
	Options []string `json:"options"`
}

type QuizStateResponse struct {
	SessionID string        `json:"sessionId"`
	Player    string        `json:"player"`
	Progress  string        `json:"progress"`
	Index     int           `json:"index"`
	Total     int           `json:"total"`
	Score     int           `json:"score"`
	Answered  bool          `json:"answered"`
	Done      bool          `json:"done"`
	Round     *RoundInfo    `json:"round"`
	Summary   *quiz.Summary `json:"summary,omitempty"`
}

type QuizAnswerRequest struct {
	Choice string `json:"choice"`
}

type QuizAnswerResponse struct {
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correctAnswer"`
	Feedback      string `json:"feedback"`
	Score         int    `json:"score"`
}

func quizState(sess *session) QuizStateResponse {
	e := sess.quiz
	resp := QuizStateResponse{
		SessionID: sess.id,
		Player:    sess.player,
		Progress:  e.ProgressLabel(),
		Index:     e.Index(),
		Total:     e.Len(),
		Score:     e.Score(),
		Answered:  e.Answered(),
		Done:      e.Done(),
	}
	if round, err := e.CurrentRound(); err == nil {
		resp.Round = &RoundInfo{Clues: round.Clues, Options: round.Options}
	} else {
		s := e.Summary()
		resp.Summary = &s
	}
	return resp
}

func handleQuizCreate(logger *slog.Logger, sessions *Sessions, cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req QuizCreateRequest
		if r.ContentLength != 0 {
			if err := readJSON(r, &req); err != nil {
				writeError(w, http.StatusBadRequest, "invalid request body")
				return
			}
		}

		var opts []quiz.Option
		if req.Seed != nil {
			opts = append(opts, quiz.WithSeed(*req.Seed))
		}
		e, err := quiz.New(cat.Rounds(), opts...)
		if err != nil {
			writeEngineError(w, err)
			return
		}

		sess := sessions.AddQuiz(strings.TrimSpace(req.Player), e)
		logger.Info("quiz started", "session_id", sess.id, "player", sess.player, "rounds", e.Len())

		sess.mu.Lock()
		resp := quizState(sess)
		sess.mu.Unlock()
		writeJSON(w, http.StatusCreated, resp)
	}
}

func handleQuizState() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)
		if sess.kind != arcade.GameKindQuiz {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}

		sess.mu.Lock()
		resp := quizState(sess)
		sess.mu.Unlock()
		writeJSON(w, http.StatusOK, resp)
	}
}

func handleQuizAnswer(broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)
		if sess.kind != arcade.GameKindQuiz {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}

		var req QuizAnswerRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if strings.TrimSpace(req.Choice) == "" {
			writeError(w, http.StatusBadRequest, "choice is required")
			return
		}

		sess.mu.Lock()
		defer sess.mu.Unlock()

		round, err := sess.quiz.CurrentRound()
		if err != nil {
			writeEngineError(w, err)
			return
		}
		ans, err := sess.quiz.SubmitAnswer(req.Choice)
		if err != nil {
			writeEngineError(w, err)
			return
		}

		resp := QuizAnswerResponse{
			Correct:       ans.Correct,
			CorrectAnswer: ans.CorrectAnswer,
			Feedback:      quiz.Feedback(ans, round),
			Score:         sess.quiz.Score(),
		}
		broker.Publish(sess.id, Event{
			Type:    "answer",
			Turn:    sess.quiz.Index() + 1,
			Score:   resp.Score,
			Correct: ans.Correct,
			Message: resp.Feedback,
		})
		writeJSON(w, http.StatusOK, resp)
	}
}

func handleQuizAdvance(broker *Broker, rec recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)
		if sess.kind != arcade.GameKindQuiz {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}

		sess.mu.Lock()
		defer sess.mu.Unlock()

		p, err := sess.quiz.Advance()
		if err != nil {
			writeEngineError(w, err)
			return
		}

		resp := quizState(sess)
		if p.Done {
			broker.Publish(sess.id, Event{
				Type:     "quiz_complete",
				Score:    resp.Score,
				Message:  resp.Summary.Message,
				GameOver: true,
			})
			if !sess.recorded {
				sess.recorded = true
				rec.record(r.Context(), arcade.Outcome{
					SessionID: sess.id,
					Kind:      arcade.GameKindQuiz,
					Player:    sess.player,
					Result:    "completed",
					Score:     sess.quiz.Score(),
					Turns:     sess.quiz.Len(),
				})
			}
		} else {
			broker.Publish(sess.id, Event{Type: "next_round", Turn: resp.Index + 1, Score: resp.Score})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
