package http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"kharcha/internal/analyzer"
	"kharcha/internal/core"
	applog "kharcha/internal/log"
	"kharcha/internal/pipeline"
)

// sessionHeader carries the session key; clients without one get a fresh
// session whose id is echoed back in the same header and the body.
const sessionHeader = "X-Session-ID"

type transactionJSON struct {
	ID          string    `json:"id"`
	Amount      float64   `json:"amount"`
	Currency    string    `json:"currency"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Timestamp   time.Time `json:"timestamp"`
}

type insightJSON struct {
	Breakdown      map[string]float64 `json:"breakdown"`
	TopCategory    string             `json:"top_category,omitempty"`
	Recommendation string             `json:"recommendation,omitempty"`
}

type processResponse struct {
	SessionID   string          `json:"session_id"`
	Transaction transactionJSON `json:"transaction"`
	Insight     insightJSON     `json:"insight"`
	TotalSpent  float64         `json:"total_spent"`
	Count       int             `json:"count"`
}

type summaryResponse struct {
	SessionID    string             `json:"session_id"`
	TotalSpent   float64            `json:"total_spent"`
	Count        int                `json:"count"`
	ByCategory   map[string]float64 `json:"by_category"`
	Insight      insightJSON        `json:"insight"`
	Transactions []transactionJSON  `json:"transactions"`
}

func toTransactionJSON(tx core.Transaction) transactionJSON {
	return transactionJSON{
		ID:          tx.ID,
		Amount:      tx.Amount.Units(),
		Currency:    tx.Currency,
		Description: tx.Description,
		Category:    tx.Category.String(),
		Timestamp:   tx.Timestamp,
	}
}

func toInsightJSON(in core.Insight) insightJSON {
	breakdown := make(map[string]float64, len(in.Breakdown))
	for cat, pct := range in.Breakdown {
		breakdown[cat.String()] = pct
	}
	return insightJSON{
		Breakdown:      breakdown,
		TopCategory:    in.TopCategory.String(),
		Recommendation: in.Recommendation,
	}
}

// handleProcessExpense runs one expense text through the pipeline for the
// caller's session.
func (s *Server) handleProcessExpense(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "use POST")
		return
	}

	body, err := parseBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "could not parse request body")
		return
	}

	text := sanitizeInput(body.Get("text"))
	if text == "" {
		writeError(w, http.StatusBadRequest, "missing_text", "field \"text\" is required")
		return
	}

	sessionID := r.Header.Get(sessionHeader)
	if sessionID == "" {
		sessionID = body.Get("session_id")
	}
	sessionID, led := s.sessions.Resolve(sessionID)

	result, err := s.pipe.Process(r.Context(), led, text)
	if err != nil {
		s.writePipelineError(w, r, err)
		return
	}

	w.Header().Set(sessionHeader, sessionID)
	writeJSON(w, http.StatusOK, processResponse{
		SessionID:   sessionID,
		Transaction: toTransactionJSON(result.Transaction),
		Insight:     toInsightJSON(result.Insight),
		TotalSpent:  result.TotalSpent.Units(),
		Count:       result.Count,
	})
}

// handleSessionSummary returns the current snapshot and insight for an
// existing session. Unknown sessions are a 404, never created here.
func (s *Server) handleSessionSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "use GET")
		return
	}

	sessionID := r.Header.Get(sessionHeader)
	if sessionID == "" {
		sessionID = r.URL.Query().Get("session_id")
	}
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "missing_session", "session_id is required")
		return
	}

	led, ok := s.sessions.Get(sessionID)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown_session", "no such session")
		return
	}

	snap := led.Snapshot()
	byCategory := make(map[string]float64, len(snap.CategoryTotals))
	for cat, m := range snap.CategoryTotals {
		byCategory[cat.String()] = m.Units()
	}
	txs := make([]transactionJSON, 0, len(snap.Transactions))
	for _, tx := range snap.Transactions {
		txs = append(txs, toTransactionJSON(tx))
	}

	writeJSON(w, http.StatusOK, summaryResponse{
		SessionID:    sessionID,
		TotalSpent:   snap.TotalSpent.Units(),
		Count:        snap.Count(),
		ByCategory:   byCategory,
		Insight:      toInsightJSON(analyzer.Analyze(snap)),
		Transactions: txs,
	})
}

// writePipelineError maps pipeline failures onto HTTP statuses: malformed
// input is the client's problem, anything else is ours.
func (s *Server) writePipelineError(w http.ResponseWriter, r *http.Request, err error) {
	stage := ""
	var se *pipeline.StageError
	if errors.As(err, &se) {
		stage = string(se.Stage)
	}

	switch {
	case errors.Is(err, core.ErrNoAmountFound):
		writeStageError(w, http.StatusUnprocessableEntity, "no_amount_found", err, stage)
	case errors.Is(err, core.ErrInvalidAmount):
		writeStageError(w, http.StatusUnprocessableEntity, "invalid_amount", err, stage)
	default:
		slog.ErrorContext(r.Context(), "Pipeline failure",
			applog.FieldError, err,
			applog.FieldStage, stage,
			applog.FieldPath, r.URL.Path)
		writeStageError(w, http.StatusInternalServerError, "pipeline_error", err, stage)
	}
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
