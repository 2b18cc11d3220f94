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

package store

import (
	"context"
	"database/sql"
	"fmt"

	"dragonfly/pkg/models"
)

// GetAppSettings returns the singleton settings row, creating it with its
// defaults (login required, setup not completed) on first read.
func (s *Store) GetAppSettings(ctx context.Context) (models.AppSettings, error) {
	var (
		settings  models.AppSettings
		defaultOS sql.NullString
	)
	err := s.conn.QueryRowContext(ctx,
		`SELECT require_login, default_os, setup_completed, updated_at FROM app_settings WHERE id = 1`,
	).Scan(&settings.RequireLogin, &defaultOS, &settings.SetupCompleted, &settings.UpdatedAt)

	if err == sql.ErrNoRows {
		if _, err := s.conn.ExecContext(ctx, `INSERT INTO app_settings (id) VALUES (1)`); err != nil {
			return models.AppSettings{}, fmt.Errorf("store: seed app settings: %w", err)
		}
		return s.GetAppSettings(ctx)
	}
	if err != nil {
		return models.AppSettings{}, fmt.Errorf("store: get app settings: %w", err)
	}

	settings.DefaultOS = nullStringPtr(defaultOS)
	return settings, nil
}

// UpdateAppSettings overwrites the singleton settings row.
func (s *Store) UpdateAppSettings(ctx context.Context, settings models.AppSettings) error {
	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO app_settings (id, require_login, default_os, setup_completed, updated_at)
		VALUES (1, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (id) DO UPDATE SET
			require_login = excluded.require_login,
			default_os = excluded.default_os,
			setup_completed = excluded.setup_completed,
			updated_at = excluded.updated_at`,
		settings.RequireLogin, settings.DefaultOS, settings.SetupCompleted)
	if err != nil {
		return fmt.Errorf("store: update app settings: %w", err)
	}
	return nil
}

// IsSetupCompleted reports whether initial admin setup has run.
func (s *Store) IsSetupCompleted(ctx context.Context) (bool, error) {
	settings, err := s.GetAppSettings(ctx)
	if err != nil {
		return false, err
	}
	return settings.SetupCompleted, nil
}

// MarkSetupCompleted flips the setup-completed flag once an admin account
// has been created.
func (s *Store) MarkSetupCompleted(ctx context.Context) error {
	settings, err := s.GetAppSettings(ctx)
	if err != nil {
		return err
	}
	settings.SetupCompleted = true
	return s.UpdateAppSettings(ctx, settings)
}

// GetAdminCredentials returns the singleton admin account, or ErrNotFound
// if setup has not run yet.
func (s *Store) GetAdminCredentials(ctx context.Context) (models.AdminCredentials, error) {
	var creds models.AdminCredentials
	err := s.conn.QueryRowContext(ctx,
		`SELECT username, password_hash FROM admin_credentials WHERE id = 1`,
	).Scan(&creds.Username, &creds.PasswordHash)
	if err == sql.ErrNoRows {
		return models.AdminCredentials{}, ErrNotFound
	}
	if err != nil {
		return models.AdminCredentials{}, fmt.Errorf("store: get admin credentials: %w", err)
	}
	return creds, nil
}

// SetAdminCredentials creates or replaces the singleton admin account.
func (s *Store) SetAdminCredentials(ctx context.Context, creds models.AdminCredentials) error {
	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO admin_credentials (id, username, password_hash)
		VALUES (1, ?, ?)
		ON CONFLICT (id) DO UPDATE SET username = excluded.username, password_hash = excluded.password_hash`,
		creds.Username, creds.PasswordHash)
	if err != nil {
		return fmt.Errorf("store: set admin credentials: %w", err)
	}
	return nil
}
