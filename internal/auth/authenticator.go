package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// LoginResult is the outcome of a successful credential check. When
// MFARequired is set the caller must complete the challenge flow before
// tokens are issued; otherwise User is populated directly.
type LoginResult struct {
	MFARequired bool
	SessionID   string
	User        *User
}

// Authenticator implements the two-phase login flow: password
// verification followed by an MFA code challenge.
type Authenticator struct {
	users    UserRepository
	sessions *SessionStore
	demoCode string
	logger   *slog.Logger
}

// NewAuthenticator creates an authenticator. demoCode is the verification
// code accepted in demo mode in place of a real TOTP check.
func NewAuthenticator(users UserRepository, sessions *SessionStore, demoCode string, logger *slog.Logger) *Authenticator {
	return &Authenticator{
		users:    users,
		sessions: sessions,
		demoCode: demoCode,
		logger:   logger,
	}
}

// Authenticate verifies email/password credentials. Unknown email and
// wrong password both return ErrInvalidCredentials so the response does
// not leak which accounts exist. Users with MFA enabled receive a
// challenge session instead of tokens.
func (a *Authenticator) Authenticate(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	ok, err := VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verifying password: %w", err)
	}
	if !ok {
		a.logger.Warn("failed login attempt", "email", email)
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrUserInactive
	}

	if user.MFAEnabled {
		sessionID := a.sessions.Create(user.ID)
		a.logger.Info("mfa challenge issued", "user_id", user.ID)
		return &LoginResult{MFARequired: true, SessionID: sessionID}, nil
	}

	a.logger.Info("login succeeded without mfa", "user_id", user.ID)
	return &LoginResult{User: user}, nil
}

// VerifyMFA completes the challenge flow. A wrong code leaves the session
// alive so the user can retry until it expires; success consumes the
// session and returns the authenticated user.
func (a *Authenticator) VerifyMFA(ctx context.Context, sessionID, code string) (*User, error) {
	if code != a.demoCode {
		// Touch the session first so expiry still surfaces correctly.
		if _, err := a.sessions.Peek(sessionID); err != nil {
			return nil, err
		}
		a.logger.Warn("mfa verification failed", "session_id", sessionID)
		return nil, ErrInvalidCode
	}

	userID, err := a.sessions.Consume(sessionID)
	if err != nil {
		return nil, err
	}

	user, err := a.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolving mfa user: %w", err)
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	a.logger.Info("mfa verification succeeded", "user_id", user.ID)
	return user, nil
}
