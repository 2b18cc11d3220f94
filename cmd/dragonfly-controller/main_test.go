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

package main

import (
	"context"
	"os"
	"testing"

	"dragonfly/internal/auth"
	"dragonfly/internal/store"
)

func TestEnsureDefaultAdminCreatesAccountOnce(t *testing.T) {
	st, err := store.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	defer func() { _ = st.Close() }()

	ctx := context.Background()
	if err := ensureDefaultAdmin(ctx, st); err != nil {
		t.Fatalf("ensureDefaultAdmin: %v", err)
	}

	creds, err := st.GetAdminCredentials(ctx)
	if err != nil {
		t.Fatalf("GetAdminCredentials: %v", err)
	}
	if creds.Username != "admin" {
		t.Errorf("expected username %q, got %q", "admin", creds.Username)
	}

	completed, err := st.IsSetupCompleted(ctx)
	if err != nil {
		t.Fatalf("IsSetupCompleted: %v", err)
	}
	if !completed {
		t.Error("expected setup to be marked completed")
	}

	firstHash := creds.PasswordHash
	if err := ensureDefaultAdmin(ctx, st); err != nil {
		t.Fatalf("second ensureDefaultAdmin: %v", err)
	}
	creds, err = st.GetAdminCredentials(ctx)
	if err != nil {
		t.Fatalf("GetAdminCredentials: %v", err)
	}
	if creds.PasswordHash != firstHash {
		t.Error("expected ensureDefaultAdmin to be a no-op once an admin exists")
	}
}

func TestEnsureDefaultAdminUsesProvidedPassword(t *testing.T) {
	st, err := store.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	defer func() { _ = st.Close() }()

	t.Setenv("DRAGONFLY_ADMIN_PASSWORD", "correct-horse-battery-staple")
	defer os.Unsetenv("DRAGONFLY_ADMIN_PASSWORD")

	if err := ensureDefaultAdmin(context.Background(), st); err != nil {
		t.Fatalf("ensureDefaultAdmin: %v", err)
	}

	gate := auth.New(st)
	if _, err := gate.Login(context.Background(), "admin", "correct-horse-battery-staple"); err != nil {
		t.Errorf("expected login with provided password to succeed: %v", err)
	}
}
