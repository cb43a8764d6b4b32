package server

import (
	"net/http"
	"strings"

	"github.com/fintrackhq/fintrack/internal/models"
	"github.com/fintrackhq/fintrack/internal/services/summary"
)

// handleSummary handles GET /api/summary, totals over the user's ledger.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	username, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	txns, err := s.app.Ledger.List(r.Context(), username)
	if err != nil {
		WriteCoreError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"data":   summary.Totals(txns),
	})
}

// handleSummaryCategories handles GET /api/summary/categories.
func (s *Server) handleSummaryCategories(w http.ResponseWriter, r *http.Request) {
	username, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	txns, err := s.app.Ledger.List(r.Context(), username)
	if err != nil {
		WriteCoreError(w, err)
		return
	}

	cats := summary.ExpensesByCategory(txns)
	if cats == nil {
		cats = []models.CategoryTotal{}
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"data":   cats,
	})
}

// handleSummaryChart handles GET /api/summary/chart.png, the expense
// breakdown rendered as a PNG pie chart.
func (s *Server) handleSummaryChart(w http.ResponseWriter, r *http.Request) {
	username, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	txns, err := s.app.Ledger.List(r.Context(), username)
	if err != nil {
		WriteCoreError(w, err)
		return
	}

	png, err := summary.RenderCategoryChart(summary.ExpensesByCategory(txns))
	if err != nil {
		WriteError(w, http.StatusNotFound, "no expense data to chart")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// handleCategories handles GET /api/categories, the suggested categories.
func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"data":   s.app.Config.Categories,
	})
}

// handleCategorySuggest handles POST /api/categories/suggest, a best-effort
// AI suggestion for a transaction description. 503 when the Gemini client
// is not configured.
func (s *Server) handleCategorySuggest(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireUser(w, r); !ok {
		return
	}
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	if s.app.Gemini == nil {
		WriteError(w, http.StatusServiceUnavailable, "category suggestions are not configured")
		return
	}

	var req struct {
		Description string `json:"description"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Description) == "" {
		WriteError(w, http.StatusBadRequest, "description is required")
		return
	}

	category, err := s.app.Gemini.SuggestCategory(r.Context(), req.Description, s.app.Config.Categories)
	if err != nil {
		s.logger.Error().Err(err).Msg("Category suggestion failed")
		WriteError(w, http.StatusBadGateway, "suggestion unavailable")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"data":   map[string]string{"category": category},
	})
}
