package server

import (
	"net/http"
	"time"

	"github.com/fintrackhq/fintrack/internal/common"
)

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)

	// Auth
	mux.HandleFunc("/api/auth/register", s.handleAuthRegister)
	mux.HandleFunc("/api/auth/login", s.handleAuthLogin)
	mux.HandleFunc("/api/auth/logout", s.handleAuthLogout)
	mux.HandleFunc("/api/auth/session", s.handleAuthSession)
	mux.HandleFunc("/api/auth/validate", s.handleAuthValidate)

	// Ledger
	mux.HandleFunc("/api/ledger/transactions", s.routeTransactions)
	mux.HandleFunc("/api/ledger/transactions/", s.handleTransactionDelete)
	mux.HandleFunc("/api/ledger/import", s.handleStatementImport)

	// Summary
	mux.HandleFunc("/api/summary", s.handleSummary)
	mux.HandleFunc("/api/summary/categories", s.handleSummaryCategories)
	mux.HandleFunc("/api/summary/chart.png", s.handleSummaryChart)

	// Categories
	mux.HandleFunc("/api/categories", s.handleCategories)
	mux.HandleFunc("/api/categories/suggest", s.handleCategorySuggest)
}

// handleHealth handles GET/HEAD /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(s.app.StartupTime).Round(time.Second).String(),
	})
}

// handleVersion handles GET/HEAD /api/version.
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}
