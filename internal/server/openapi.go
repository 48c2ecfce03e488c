package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/playperu/arcade/internal/handler/health"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

type operation struct {
	method        string
	path          string
	summary       string
	desc          string
	params        any
	req           any
	resp          any
	status        int
	contentType   string
	errorStatuses []int
}

type sessionPath struct {
	ID string `path:"id"`
}

type leaderboardPath struct {
	Kind  string `path:"kind" enum:"quiz,negotiation"`
	Limit int    `query:"limit"`
}

type resultsQuery struct {
	Kind  string `query:"kind" enum:"quiz,negotiation"`
	Limit int    `query:"limit"`
}

var operations = []operation{
	{
		method:  http.MethodGet,
		path:    "/healthz",
		summary: "Health check",
		desc:    "Returns the health status of backend dependencies.",
		resp:    health.Response{},
		status:  http.StatusOK,
	},
	{
		method:        http.MethodPost,
		path:          "/api/quiz",
		summary:       "Start quiz",
		desc:          "Shuffles the active catalog into a new Bible Heroes session.",
		req:           QuizCreateRequest{},
		resp:          QuizStateResponse{},
		status:        http.StatusCreated,
		errorStatuses: []int{http.StatusBadRequest},
	},
	{
		method:        http.MethodGet,
		path:          "/api/quiz/{id}",
		summary:       "Quiz state",
		desc:          "Current round clues and options, or the final summary once done.",
		params:        sessionPath{},
		resp:          QuizStateResponse{},
		status:        http.StatusOK,
		errorStatuses: []int{http.StatusNotFound},
	},
	{
		method:        http.MethodPost,
		path:          "/api/quiz/{id}/answer",
		summary:       "Answer round",
		desc:          "Submits the answer for the current round. A round takes one answer.",
		params:        sessionPath{},
		req:           QuizAnswerRequest{},
		resp:          QuizAnswerResponse{},
		status:        http.StatusOK,
		errorStatuses: []int{http.StatusBadRequest, http.StatusNotFound, http.StatusConflict},
	},
	{
		method:        http.MethodPost,
		path:          "/api/quiz/{id}/advance",
		summary:       "Next round",
		desc:          "Moves to the next round. Leaving the last round records the result.",
		params:        sessionPath{},
		resp:          QuizStateResponse{},
		status:        http.StatusOK,
		errorStatuses: []int{http.StatusNotFound, http.StatusConflict},
	},
	{
		method:        http.MethodPost,
		path:          "/api/negotiation",
		summary:       "Start negotiation",
		desc:          "Opens a haggle with Vax over the Void Heart.",
		req:           NegotiationCreateRequest{},
		resp:          NegotiationStateResponse{},
		status:        http.StatusCreated,
		errorStatuses: []int{http.StatusBadRequest},
	},
	{
		method:        http.MethodGet,
		path:          "/api/negotiation/{id}",
		summary:       "Negotiation state",
		desc:          "Asking price, trust, turn and offer history.",
		params:        sessionPath{},
		resp:          NegotiationStateResponse{},
		status:        http.StatusOK,
		errorStatuses: []int{http.StatusNotFound},
	},
	{
		method:        http.MethodPost,
		path:          "/api/negotiation/{id}/offer",
		summary:       "Make offer",
		desc:          "Offers an amount in a polite, fair or firm tone.",
		params:        sessionPath{},
		req:           OfferRequest{},
		resp:          OfferResponse{},
		status:        http.StatusOK,
		errorStatuses: []int{http.StatusBadRequest, http.StatusNotFound, http.StatusConflict},
	},
	{
		method:        http.MethodPost,
		path:          "/api/negotiation/{id}/accept",
		summary:       "Accept price",
		desc:          "Buys at the current asking price if the budget allows.",
		params:        sessionPath{},
		resp:          DealResponse{},
		status:        http.StatusOK,
		errorStatuses: []int{http.StatusNotFound, http.StatusConflict},
	},
	{
		method:        http.MethodPost,
		path:          "/api/negotiation/{id}/walk-away",
		summary:       "Walk away",
		desc:          "Ends the negotiation without a deal.",
		params:        sessionPath{},
		resp:          EndResponse{},
		status:        http.StatusOK,
		errorStatuses: []int{http.StatusNotFound, http.StatusConflict},
	},
	{
		method:        http.MethodGet,
		path:          "/api/sessions/{id}/events",
		summary:       "SSE event stream",
		desc:          "Server-Sent Events for every move made in the session.",
		params:        sessionPath{},
		status:        http.StatusOK,
		contentType:   "text/event-stream",
		errorStatuses: []int{http.StatusNotFound},
	},
	{
		method:        http.MethodGet,
		path:          "/ws/sessions/{id}",
		summary:       "WebSocket event stream",
		desc:          "The same session events over a WebSocket connection.",
		params:        sessionPath{},
		status:        http.StatusSwitchingProtocols,
		contentType:   "text/plain",
		errorStatuses: []int{http.StatusNotFound},
	},
	{
		method:        http.MethodGet,
		path:          "/api/results",
		summary:       "Recent results",
		desc:          "Finished sessions, newest first.",
		params:        resultsQuery{},
		resp:          []ResultInfo{},
		status:        http.StatusOK,
		errorStatuses: []int{http.StatusBadRequest},
	},
	{
		method:        http.MethodGet,
		path:          "/api/leaderboard/{kind}",
		summary:       "Leaderboard",
		desc:          "Top quiz scores, or the cheapest Void Heart deals.",
		params:        leaderboardPath{},
		resp:          []LeaderboardEntry{},
		status:        http.StatusOK,
		errorStatuses: []int{http.StatusBadRequest, http.StatusNotFound},
	},
	{
		method:        http.MethodGet,
		path:          "/api/admin/rounds",
		summary:       "Active catalog",
		desc:          "Subjects and HCL source of the live quiz catalog. Requires basic auth.",
		resp:          AdminRoundsResponse{},
		status:        http.StatusOK,
		errorStatuses: []int{http.StatusUnauthorized, http.StatusNotFound},
	},
	{
		method:        http.MethodPut,
		path:          "/api/admin/rounds",
		summary:       "Replace catalog",
		desc:          "Uploads an HCL catalog as the request body. New quizzes use it at once. Requires basic auth.",
		resp:          AdminRoundsResponse{},
		status:        http.StatusOK,
		errorStatuses: []int{http.StatusBadRequest, http.StatusUnauthorized, http.StatusNotFound, http.StatusRequestEntityTooLarge},
	},
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Arcade API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Backend API for the Bible Heroes quiz and the Void Heart negotiation.")

	for _, op := range operations {
		oc, err := r.NewOperationContext(op.method, op.path)
		if err != nil {
			continue
		}
		oc.SetSummary(op.summary)
		oc.SetDescription(op.desc)
		if op.params != nil {
			oc.AddReqStructure(op.params)
		}
		if op.req != nil {
			oc.AddReqStructure(op.req)
		}
		if op.contentType != "" {
			oc.AddRespStructure(nil, openapi.WithHTTPStatus(op.status), openapi.WithContentType(op.contentType))
		} else {
			oc.AddRespStructure(op.resp, openapi.WithHTTPStatus(op.status))
		}
		for _, status := range op.errorStatuses {
			oc.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(status))
		}
		_ = r.AddOperation(oc)
	}

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
