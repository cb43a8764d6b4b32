package server

import (
	"io"
	"net/http"
	"strings"

	"github.com/fintrackhq/fintrack/internal/services/ledger"
)

// maxStatementSize caps uploaded PDF statements at 10MB.
const maxStatementSize = 10 << 20

// requireUser resolves the authenticated username or writes a 401.
func (s *Server) requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	username, ok := usernameFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, "authentication required")
		return "", false
	}
	return username, true
}

// routeTransactions dispatches /api/ledger/transactions.
func (s *Server) routeTransactions(w http.ResponseWriter, r *http.Request) {
	username, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.handleTransactionList(w, r, username)
	case http.MethodPost:
		s.handleTransactionAdd(w, r, username)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// handleTransactionList handles GET /api/ledger/transactions.
func (s *Server) handleTransactionList(w http.ResponseWriter, r *http.Request, username string) {
	txns, err := s.app.Ledger.List(r.Context(), username)
	if err != nil {
		WriteCoreError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"data":   txns,
	})
}

// handleTransactionAdd handles POST /api/ledger/transactions.
func (s *Server) handleTransactionAdd(w http.ResponseWriter, r *http.Request, username string) {
	var in ledger.AddInput
	if !DecodeJSON(w, r, &in) {
		return
	}

	txn, err := s.app.Ledger.Add(r.Context(), username, in)
	if err != nil {
		WriteCoreError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"status": "ok",
		"data":   txn,
	})
}

// handleTransactionDelete handles DELETE /api/ledger/transactions/{id}.
func (s *Server) handleTransactionDelete(w http.ResponseWriter, r *http.Request) {
	username, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	if !RequireMethod(w, r, http.MethodDelete) {
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/ledger/transactions/")
	if id == "" || strings.Contains(id, "/") {
		WriteError(w, http.StatusBadRequest, "transaction id is required in path")
		return
	}

	if err := s.app.Ledger.Remove(r.Context(), username, id); err != nil {
		WriteCoreError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleStatementImport handles POST /api/ledger/import. It bulk-adds
// transactions parsed from an uploaded PDF bank statement. Rows that do not
// parse are counted and reported, not fatal.
func (s *Server) handleStatementImport(w http.ResponseWriter, r *http.Request) {
	username, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxStatementSize)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "failed to read statement body")
		return
	}
	if len(data) == 0 {
		WriteError(w, http.StatusBadRequest, "statement body is required")
		return
	}

	result, err := s.app.Statements.Parse(data)
	if err != nil {
		s.logger.Error().Err(err).Str("username", username).Msg("Statement parse failed")
		WriteError(w, http.StatusBadRequest, "failed to parse statement: "+err.Error())
		return
	}

	imported := 0
	failed := 0
	for _, in := range result.Inputs {
		if _, err := s.app.Ledger.Add(r.Context(), username, in); err != nil {
			s.logger.Warn().Err(err).Str("description", in.Description).Msg("Imported row rejected")
			failed++
			continue
		}
		imported++
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"data": map[string]int{
			"imported": imported,
			"rejected": failed,
			"skipped":  result.Skipped,
		},
	})
}
