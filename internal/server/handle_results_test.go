package server

import (
	"net/http"
	"testing"
)

func TestResultsValidation(t *testing.T) {
	r, _ := testRouter(t)

	tests := []struct {
		path       string
		wantStatus int
	}{
		{"/api/results", http.StatusOK},
		{"/api/results?kind=quiz&limit=5", http.StatusOK},
		{"/api/results?kind=chess", http.StatusBadRequest},
		{"/api/results?limit=0", http.StatusBadRequest},
		{"/api/results?limit=ten", http.StatusBadRequest},
		{"/api/leaderboard/quiz", http.StatusOK},
		{"/api/leaderboard/chess", http.StatusNotFound},
		{"/api/leaderboard/negotiation?limit=-1", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if code := do(t, r, http.MethodGet, tt.path, nil, nil); code != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, code)
			}
		})
	}
}

func TestEmptyListsAreArrays(t *testing.T) {
	r, _ := testRouter(t)

	for _, path := range []string{"/api/results", "/api/leaderboard/quiz"} {
		var raw []any
		do(t, r, http.MethodGet, path, nil, &raw)
		if raw == nil {
			t.Errorf("%s: got null, want []", path)
		}
	}
}
