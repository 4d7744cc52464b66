package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessClaims extends JWT standard claims with the portal's identity
// fields. Access tokens are validated by signature only; the handler
// layer re-resolves the user so permission changes apply immediately.
type AccessClaims struct {
	jwt.RegisteredClaims
	Email    string `json:"email"`
	TenantID string `json:"tenant_id"`
	Role     Role   `json:"role"`
}

// RefreshClaims carries only the subject. A refresh token proves
// identity; everything else is re-derived from the user record when the
// session is renewed.
type RefreshClaims struct {
	jwt.RegisteredClaims
}

// TokenPair holds a freshly issued access/refresh token set.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	AccessTTL    time.Duration
	RefreshTTL   time.Duration
}

// GenerateTokenPair issues signed HS256 access and refresh tokens for a
// user. Access tokens are short-lived; refresh tokens long-lived.
func GenerateTokenPair(user *User, secret string, accessTTL, refreshTTL time.Duration) (*TokenPair, error) {
	now := time.Now()

	access := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(accessTTL)),
			ID:        uuid.NewString(),
		},
		Email:    user.Email,
		TenantID: user.TenantID,
		Role:     user.Role,
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, access).SignedString([]byte(secret))
	if err != nil {
		return nil, fmt.Errorf("signing access token: %w", err)
	}

	refresh := RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(refreshTTL)),
			ID:        uuid.NewString(),
		},
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refresh).SignedString([]byte(secret))
	if err != nil {
		return nil, fmt.Errorf("signing refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		AccessTTL:    accessTTL,
		RefreshTTL:   refreshTTL,
	}, nil
}

// ParseAccessToken validates and parses a JWT access token, returning the
// claims. It checks the signature, expiry, and required identity fields.
func ParseAccessToken(tokenString, secret string) (*AccessClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(_ *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %w", ErrTokenExpired, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*AccessClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrTokenInvalid)
	}
	if claims.TenantID == "" {
		return nil, fmt.Errorf("%w: missing tenant", ErrTokenInvalid)
	}

	return claims, nil
}

// ParseRefreshToken validates a refresh token and returns the subject
// user ID.
func ParseRefreshToken(tokenString, secret string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &RefreshClaims{}, func(_ *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("%w: %w", ErrTokenExpired, err)
		}
		return "", fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*RefreshClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", ErrTokenInvalid
	}

	return claims.Subject, nil
}
