package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fintrackhq/fintrack/internal/common"
	"github.com/fintrackhq/fintrack/internal/models"
)

// --- JWT helpers ---

// signJWT creates a signed HMAC-SHA256 JWT for the given user.
func signJWT(user *models.User, config *common.AuthConfig) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": user.Username,
		"iss": "fintrack-server",
		"iat": now.Unix(),
		"exp": now.Add(config.GetTokenExpiry()).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.JWTSecret))
}

// validateJWT parses and validates a JWT token string using the given secret.
func validateJWT(tokenString string, secret []byte) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// bearerToken extracts the bearer token from the Authorization header.
func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	return strings.TrimPrefix(authHeader, "Bearer "), true
}

// authResponse is the login/register success payload.
func (s *Server) authResponse(user *models.User, token string) map[string]interface{} {
	return map[string]interface{}{
		"status": "ok",
		"data": map[string]interface{}{
			"token": token,
			"user": map[string]interface{}{
				"username":   user.Username,
				"created_at": user.CreatedAt,
			},
		},
	}
}

// startSession signs a token and records the active session. A session
// write failure is logged but does not fail the login: the token alone is
// enough for API access, the session record only powers restore.
func (s *Server) startSession(w http.ResponseWriter, r *http.Request, user *models.User) {
	token, err := signJWT(user, &s.app.Config.Auth)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to sign JWT")
		WriteError(w, http.StatusInternalServerError, "failed to sign token")
		return
	}

	if err := s.app.Session.Start(r.Context(), user.Username); err != nil {
		s.logger.Error().Err(err).Msg("Failed to persist session")
	}

	WriteJSON(w, http.StatusOK, s.authResponse(user, token))
}

// handleAuthRegister handles POST /api/auth/register.
func (s *Server) handleAuthRegister(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	if !s.loginLimiter.allow(r.RemoteAddr) {
		WriteError(w, http.StatusTooManyRequests, "too many attempts, slow down")
		return
	}

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	user, err := s.app.Identity.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		WriteCoreError(w, err)
		return
	}

	s.startSession(w, r, user)
}

// handleAuthLogin handles POST /api/auth/login.
func (s *Server) handleAuthLogin(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	if !s.loginLimiter.allow(r.RemoteAddr) {
		WriteError(w, http.StatusTooManyRequests, "too many attempts, slow down")
		return
	}

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	user, err := s.app.Identity.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		WriteCoreError(w, err)
		return
	}

	s.startSession(w, r, user)
}

// handleAuthLogout handles POST /api/auth/logout.
func (s *Server) handleAuthLogout(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	if err := s.app.Session.End(r.Context()); err != nil {
		WriteCoreError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleAuthSession handles GET /api/auth/session, the restored login if
// any. The persisted username is revalidated against the identity store: a
// session naming a deleted account restores nothing.
func (s *Server) handleAuthSession(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	username, ok := s.app.Session.Restore(r.Context())
	if !ok {
		WriteJSON(w, http.StatusOK, map[string]interface{}{"status": "ok", "data": nil})
		return
	}

	user, err := s.app.Identity.Get(r.Context(), username)
	if err != nil {
		WriteJSON(w, http.StatusOK, map[string]interface{}{"status": "ok", "data": nil})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"data":   map[string]string{"username": user.Username},
	})
}

// handleAuthValidate handles GET /api/auth/validate, a bearer token check.
func (s *Server) handleAuthValidate(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	username, ok := usernameFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, "missing or invalid bearer token")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"data":   map[string]string{"username": username},
	})
}
