// Package auth implements the portal's authentication and authorisation
// model: demo-mode credential verification with a mandatory MFA challenge
// step, JWT access/refresh token issuance, per-user permission checks, and
// the SQLite-backed user repository.
//
// Authentication is a two-phase flow. A successful password check never
// issues tokens directly; it creates a short-lived single-use MFA session
// and the client must present the verification code against that session
// to receive a token pair. MFA sessions live only in process memory and
// are swept periodically.
package auth
