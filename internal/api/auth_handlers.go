package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/radiusdc/portal-core/internal/auth"
)

// mfaCodeLength is the expected length of a verification code.
const mfaCodeLength = 6

// loginRequest is the request body for POST /auth/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// mfaVerifyRequest is the request body for POST /auth/mfa/verify.
type mfaVerifyRequest struct {
	SessionID string `json:"sessionId"`
	Code      string `json:"code"`
}

// handleLogin runs the first phase of the login flow.
//
// A user with MFA enabled gets back a challenge session instead of
// credentials; the client completes login via /auth/mfa/verify. All
// authentication failures collapse to one generic client message —
// the server log keeps the distinction.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, r, "invalid JSON body")
		return
	}

	details := map[string]string{}
	if !auth.IsValidEmail(req.Email) {
		details["email"] = "must be a valid email address"
	}
	if req.Password == "" {
		details["password"] = "must not be empty"
	}
	if len(details) > 0 {
		writeValidationError(w, r, details)
		return
	}

	result, err := s.authenticator.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		s.logger.Warn("login failed", "email", req.Email, "error", err)
		writeError(w, r, http.StatusUnauthorized, CodeAuthFailed, "invalid email or password")
		return
	}

	if result.MFARequired {
		writeData(w, r, http.StatusOK, map[string]any{
			"mfaRequired": true,
			"sessionId":   result.SessionID,
		})
		return
	}

	if err := s.issueSession(w, result.User); err != nil {
		s.logger.Error("issuing session", "error", err)
		writeInternalError(w, r)
		return
	}
	writeData(w, r, http.StatusOK, map[string]any{"user": result.User})
}

// handleMFAVerify completes the login flow by checking the challenge code
// and issuing session cookies.
func (s *Server) handleMFAVerify(w http.ResponseWriter, r *http.Request) {
	var req mfaVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, r, "invalid JSON body")
		return
	}

	details := map[string]string{}
	if req.SessionID == "" {
		details["sessionId"] = "must not be empty"
	}
	if len(req.Code) != mfaCodeLength {
		details["code"] = "must be 6 digits"
	}
	if len(details) > 0 {
		writeValidationError(w, r, details)
		return
	}

	user, err := s.authenticator.VerifyMFA(r.Context(), req.SessionID, req.Code)
	if err != nil {
		s.logger.Warn("mfa verification failed", "session_id", req.SessionID, "error", err)
		writeError(w, r, http.StatusUnauthorized, CodeMFAFailed, "verification failed")
		return
	}

	if err := s.issueSession(w, user); err != nil {
		s.logger.Error("issuing session", "error", err)
		writeInternalError(w, r)
		return
	}
	writeData(w, r, http.StatusOK, map[string]any{"user": user})
}

// handleRefresh re-issues the access cookie from a valid refresh cookie.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		writeUnauthorized(w, r, "refresh token required")
		return
	}

	userID, err := auth.ParseRefreshToken(cookie.Value, s.secCfg.JWT.Secret)
	if err != nil {
		writeUnauthorized(w, r, "invalid or expired refresh token")
		return
	}

	user, err := s.stores.Users.GetByID(r.Context(), userID)
	if err != nil || !user.IsActive {
		writeUnauthorized(w, r, "invalid or expired refresh token")
		return
	}

	if err := s.issueSession(w, user); err != nil {
		s.logger.Error("issuing session", "error", err)
		writeInternalError(w, r)
		return
	}
	writeData(w, r, http.StatusOK, map[string]any{"user": user})
}

// handleLogout clears both session cookies.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.clearCookie(w, accessCookieName)
	s.clearCookie(w, refreshCookieName)
	writeData(w, r, http.StatusOK, map[string]any{"loggedOut": true})
}

// handleMe returns the resolved authenticated user.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeData(w, r, http.StatusOK, map[string]any{"user": currentUser(r)})
}

// issueSession generates a token pair for the user and sets both cookies.
func (s *Server) issueSession(w http.ResponseWriter, user *auth.User) error {
	pair, err := auth.GenerateTokenPair(
		user,
		s.secCfg.JWT.Secret,
		s.accessTTL(),
		s.refreshTTL(),
	)
	if err != nil {
		return err
	}

	s.setCookie(w, accessCookieName, pair.AccessToken, int(pair.AccessTTL.Seconds()))
	s.setCookie(w, refreshCookieName, pair.RefreshToken, int(pair.RefreshTTL.Seconds()))
	return nil
}

func (s *Server) setCookie(w http.ResponseWriter, name, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.secCfg.Cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secCfg.Cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) accessTTL() time.Duration {
	ttl := s.secCfg.JWT.AccessTokenTTL
	if ttl <= 0 {
		ttl = 15
	}
	return time.Duration(ttl) * time.Minute
}

func (s *Server) refreshTTL() time.Duration {
	ttl := s.secCfg.JWT.RefreshTokenTTL
	if ttl <= 0 {
		ttl = 720
	}
	return time.Duration(ttl) * time.Hour
}
