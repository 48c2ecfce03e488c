package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/playperu/arcade/internal/arcade"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

type ResultInfo struct {
	SessionID  string `json:"sessionId"`
	Kind       string `json:"kind"`
	Player     string `json:"player"`
	Result     string `json:"result"`
	Score      int    `json:"score"`
	FinalPrice int    `json:"finalPrice,omitempty"`
	Turns      int    `json:"turns"`
	EndedAt    string `json:"endedAt"`
}

func parseLimit(r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return defaultListLimit, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, false
	}
	return min(n, maxListLimit), true
}

func handleResults(results ResultStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var kind arcade.GameKind
		if raw := r.URL.Query().Get("kind"); raw != "" {
			k, ok := arcade.ParseGameKind(raw)
			if !ok {
				writeError(w, http.StatusBadRequest, "unknown game kind")
				return
			}
			kind = k
		}
		limit, ok := parseLimit(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}

		outcomes, err := results.ListOutcomes(r.Context(), kind, limit)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		resp := make([]ResultInfo, len(outcomes))
		for i, o := range outcomes {
			resp[i] = ResultInfo{
				SessionID:  o.SessionID,
				Kind:       string(o.Kind),
				Player:     o.Player,
				Result:     o.Result,
				Score:      o.Score,
				FinalPrice: o.FinalPrice,
				Turns:      o.Turns,
				EndedAt:    o.EndedAt.UTC().Format(time.RFC3339),
			}
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func handleLeaderboard(board Leaderboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, ok := arcade.ParseGameKind(chi.URLParam(r, "kind"))
		if !ok {
			writeError(w, http.StatusNotFound, "unknown game kind")
			return
		}
		limit, ok := parseLimit(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}

		entries, err := board.Top(r.Context(), kind, limit)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if entries == nil {
			entries = []LeaderboardEntry{}
		}
		writeJSON(w, http.StatusOK, entries)
	}
}
