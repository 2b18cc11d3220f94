// Dragonfly is a bare-metal provisioning controller.
// Copyright (C) 2025  Matthew Burns
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package auth is a thin admin-session gate: the full auth/session layer is
// a named collaborator out of this control plane's scope, but httpapi still
// needs something to call to admit or reject a mutating request.
package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"dragonfly/internal/store"
	"dragonfly/pkg/crypto"
	"dragonfly/pkg/models"
)

// ErrInvalidCredentials is returned when a login attempt's username or
// password does not match the stored admin credentials.
var ErrInvalidCredentials = errors.New("invalid credentials")

// SessionCookieName is the cookie carrying the opaque session token.
const SessionCookieName = "dragonfly_session"

const sessionTTL = 24 * time.Hour

type session struct {
	username  string
	expiresAt time.Time
}

// Gate authenticates admin logins and gates mutating HTTP handlers behind
// an in-memory session table, matching the teacher's session-cookie pattern
// but scoped down to Dragonfly's single admin account.
type Gate struct {
	store *store.Store

	mu       sync.RWMutex
	sessions map[string]session
}

// New constructs a Gate backed by the admin_credentials/app_settings rows.
func New(st *store.Store) *Gate {
	return &Gate{store: st, sessions: map[string]session{}}
}

// Login verifies username/password against the stored admin credentials
// and, on success, mints a new session token.
func (g *Gate) Login(ctx context.Context, username, password string) (token string, err error) {
	creds, err := g.store.GetAdminCredentials(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("loading admin credentials: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(username), []byte(creds.Username)) != 1 {
		return "", ErrInvalidCredentials
	}
	ok, err := crypto.VerifyPassword(password, creds.PasswordHash)
	if err != nil || !ok {
		return "", ErrInvalidCredentials
	}

	token, err = generateToken()
	if err != nil {
		return "", fmt.Errorf("generating session token: %w", err)
	}

	g.mu.Lock()
	g.sessions[token] = session{username: username, expiresAt: time.Now().Add(sessionTTL)}
	g.mu.Unlock()
	return token, nil
}

// Logout invalidates a session token. A missing token is a no-op.
func (g *Gate) Logout(token string) {
	g.mu.Lock()
	delete(g.sessions, token)
	g.mu.Unlock()
}

// Authenticated reports whether token names a live, unexpired session.
func (g *Gate) Authenticated(token string) bool {
	if token == "" {
		return false
	}
	g.mu.RLock()
	s, ok := g.sessions[token]
	g.mu.RUnlock()
	if !ok {
		return false
	}
	if time.Now().After(s.expiresAt) {
		g.mu.Lock()
		delete(g.sessions, token)
		g.mu.Unlock()
		return false
	}
	return true
}

// SetPassword hashes and persists new admin credentials, transactional
// with a verify-after-commit read back, per the store's singleton-row
// upsert contract.
func (g *Gate) SetPassword(ctx context.Context, username, password string) error {
	hash, err := crypto.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	creds := models.AdminCredentials{Username: username, PasswordHash: hash}
	if err := g.store.SetAdminCredentials(ctx, creds); err != nil {
		return fmt.Errorf("saving admin credentials: %w", err)
	}
	if _, err := g.store.GetAdminCredentials(ctx); err != nil {
		return fmt.Errorf("verifying admin credentials after save: %w", err)
	}
	return nil
}

// RequireAdmin wraps next so that it only runs for requests carrying a
// valid session cookie, unless settings.RequireLogin is false (demo mode),
// in which case every request is admitted.
func (g *Gate) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		settings, err := g.store.GetAppSettings(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if !settings.RequireLogin {
			next.ServeHTTP(w, r)
			return
		}

		cookie, err := r.Cookie(SessionCookieName)
		if err != nil || !g.Authenticated(cookie.Value) {
			http.Error(w, "authentication required", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
