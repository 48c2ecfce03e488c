package server

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/playperu/arcade/internal/catalog"
)

const maxCatalogBytes = 1 << 20

type AdminRoundsResponse struct {
	Rounds   int      `json:"rounds"`
	Subjects []string `json:"subjects"`
	Source   string   `json:"source"`
}

func roundsResponse(cat *catalog.Catalog) AdminRoundsResponse {
	rounds := cat.Rounds()
	resp := AdminRoundsResponse{
		Rounds:   len(rounds),
		Subjects: make([]string, len(rounds)),
		Source:   string(cat.Source()),
	}
	for i, r := range rounds {
		resp.Subjects[i] = r.Subject
	}
	return resp
}

func handleAdminGetRounds(cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, roundsResponse(cat))
	}
}

// handleAdminPutRounds replaces the live catalog with an HCL upload. Running
// quizzes keep the rounds they were shuffled from.
func handleAdminPutRounds(logger *slog.Logger, cat *catalog.Catalog, results ResultStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		src, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxCatalogBytes))
		if err != nil {
			var tooBig *http.MaxBytesError
			if errors.As(err, &tooBig) {
				writeError(w, http.StatusRequestEntityTooLarge, "catalog too large")
				return
			}
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		rounds, err := catalog.Parse("upload.hcl", src)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		admin := adminFrom(r)
		if err := results.SaveCatalog(r.Context(), src, len(rounds), admin); err != nil {
			logger.Error("saving catalog failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		cat.Replace(rounds, src)
		logger.Info("catalog replaced", "rounds", len(rounds), "by", admin)

		writeJSON(w, http.StatusOK, roundsResponse(cat))
	}
}
