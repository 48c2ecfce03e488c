package server

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/playperu/arcade/internal/arcade"
	"github.com/playperu/arcade/internal/negotiation"
)

type NegotiationCreateRequest struct {
	Player string `json:"player"`
}

// NegotiationStateResponse leaves out the merchant's floor price.
type NegotiationStateResponse struct {
	SessionID   string      `json:"sessionId"`
	Player      string      `json:"player"`
	Budget      int         `json:"budget"`
	AskingPrice int         `json:"askingPrice"`
	Trust       int         `json:"trust"`
	Turn        int         `json:"turn"`
	GameOver    bool        `json:"gameOver"`
	Outcome     string      `json:"outcome"`
	LastTone    string      `json:"lastTone"`
	LastOffer   int         `json:"lastOffer"`
	EndTitle    string      `json:"endTitle,omitempty"`
	EndMessage  string      `json:"endMessage,omitempty"`
	History     []OfferInfo `json:"history"`
}

type OfferRequest struct {
	Amount *int   `json:"amount"`
	Tone   string `json:"tone"`
}

type OfferInfo struct {
	Amount     int    `json:"amount"`
	Tone       string `json:"tone"`
	TrustDelta int    `json:"trustDelta"`
	Response   string `json:"response"`
	Mood       string `json:"mood"`
	MoodLabel  string `json:"moodLabel"`
	MoodColor  string `json:"moodColor"`
	NewPrice   int    `json:"newPrice"`
	NewTrust   int    `json:"newTrust"`
	Turn       int    `json:"turn"`
	Collapsed  bool   `json:"collapsed"`
}

type OfferResponse struct {
	OfferInfo
	EndTitle   string `json:"endTitle,omitempty"`
	EndMessage string `json:"endMessage,omitempty"`
}

type DealResponse struct {
	FinalPrice      int    `json:"finalPrice"`
	RemainingBudget int    `json:"remainingBudget"`
	EndTitle        string `json:"endTitle"`
	EndMessage      string `json:"endMessage"`
}

type EndResponse struct {
	EndTitle   string `json:"endTitle"`
	EndMessage string `json:"endMessage"`
}

func offerInfo(res negotiation.OfferResult) OfferInfo {
	return OfferInfo{
		Amount:     res.Amount,
		Tone:       string(res.Tone),
		TrustDelta: res.TrustDelta,
		Response:   res.Response,
		Mood:       string(res.Mood),
		MoodLabel:  res.Mood.Label(),
		MoodColor:  res.Mood.Color(),
		NewPrice:   res.NewPrice,
		NewTrust:   res.NewTrust,
		Turn:       res.Turn,
		Collapsed:  res.Collapsed,
	}
}

func negotiationState(sess *session) NegotiationStateResponse {
	st := sess.deal.State()
	title, msg := sess.deal.EndScreen()
	history := sess.deal.History()

	resp := NegotiationStateResponse{
		SessionID:   sess.id,
		Player:      sess.player,
		Budget:      st.Budget,
		AskingPrice: st.CurrentPrice,
		Trust:       st.Trust,
		Turn:        st.Turn,
		GameOver:    st.GameOver,
		Outcome:     string(st.Outcome),
		LastTone:    string(st.LastTone),
		LastOffer:   st.LastOffer,
		EndTitle:    title,
		EndMessage:  msg,
		History:     make([]OfferInfo, len(history)),
	}
	for i, h := range history {
		resp.History[i] = offerInfo(h)
	}
	return resp
}

func negotiationOutcome(sess *session) arcade.Outcome {
	st := sess.deal.State()
	o := arcade.Outcome{
		SessionID: sess.id,
		Kind:      arcade.GameKindNegotiation,
		Player:    sess.player,
		Result:    string(st.Outcome),
		Turns:     len(sess.deal.History()),
	}
	if st.Outcome == negotiation.OutcomeDeal {
		o.FinalPrice = st.CurrentPrice
		o.Score = st.Budget - st.CurrentPrice
	}
	return o
}

// finish records the session once, whichever terminal transition got there.
func finish(r *http.Request, sess *session, broker *Broker, rec recorder) {
	title, msg := sess.deal.EndScreen()
	broker.Publish(sess.id, Event{
		Type:     "negotiation_over",
		Price:    sess.deal.State().CurrentPrice,
		Message:  title + ": " + msg,
		GameOver: true,
	})
	if sess.recorded {
		return
	}
	sess.recorded = true
	rec.record(r.Context(), negotiationOutcome(sess))
}

func handleNegotiationCreate(logger *slog.Logger, sessions *Sessions, params negotiation.Params) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req NegotiationCreateRequest
		if r.ContentLength != 0 {
			if err := readJSON(r, &req); err != nil {
				writeError(w, http.StatusBadRequest, "invalid request body")
				return
			}
		}

		e, err := negotiation.New(params)
		if err != nil {
			writeEngineError(w, err)
			return
		}

		sess := sessions.AddNegotiation(strings.TrimSpace(req.Player), e)
		logger.Info("negotiation started", "session_id", sess.id, "player", sess.player)

		sess.mu.Lock()
		resp := negotiationState(sess)
		sess.mu.Unlock()
		writeJSON(w, http.StatusCreated, resp)
	}
}

func handleNegotiationState() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)
		if sess.kind != arcade.GameKindNegotiation {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}

		sess.mu.Lock()
		resp := negotiationState(sess)
		sess.mu.Unlock()
		writeJSON(w, http.StatusOK, resp)
	}
}

func handleOffer(broker *Broker, rec recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)
		if sess.kind != arcade.GameKindNegotiation {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}

		var req OfferRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Amount == nil {
			writeError(w, http.StatusBadRequest, "amount is required")
			return
		}
		tone, err := negotiation.ParseTone(req.Tone)
		if err != nil {
			writeEngineError(w, err)
			return
		}

		sess.mu.Lock()
		defer sess.mu.Unlock()

		res, err := sess.deal.MakeOffer(*req.Amount, tone)
		if err != nil {
			writeEngineError(w, err)
			return
		}

		resp := OfferResponse{OfferInfo: offerInfo(res)}
		broker.Publish(sess.id, Event{
			Type:    "offer",
			Turn:    res.Turn,
			Mood:    string(res.Mood),
			Trust:   res.NewTrust,
			Price:   res.NewPrice,
			Message: res.Response,
		})
		if res.Collapsed {
			resp.EndTitle, resp.EndMessage = sess.deal.EndScreen()
			finish(r, sess, broker, rec)
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func handleAccept(broker *Broker, rec recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)
		if sess.kind != arcade.GameKindNegotiation {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}

		sess.mu.Lock()
		defer sess.mu.Unlock()

		deal, err := sess.deal.Accept()
		if err != nil {
			writeEngineError(w, err)
			return
		}
		finish(r, sess, broker, rec)

		title, msg := sess.deal.EndScreen()
		writeJSON(w, http.StatusOK, DealResponse{
			FinalPrice:      deal.FinalPrice,
			RemainingBudget: deal.RemainingBudget,
			EndTitle:        title,
			EndMessage:      msg,
		})
	}
}

func handleWalkAway(broker *Broker, rec recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)
		if sess.kind != arcade.GameKindNegotiation {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}

		sess.mu.Lock()
		defer sess.mu.Unlock()

		if err := sess.deal.WalkAway(); err != nil {
			writeEngineError(w, err)
			return
		}
		finish(r, sess, broker, rec)

		title, msg := sess.deal.EndScreen()
		writeJSON(w, http.StatusOK, EndResponse{EndTitle: title, EndMessage: msg})
	}
}
