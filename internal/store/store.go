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

// Package store is the SQLite-backed persistence layer: machine records,
// app-wide settings, admin credentials, per-template timing history, and
// the short-lived completed-workflow snapshot cache.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"

	"dragonfly/pkg/crypto"
)

// Sentinel errors returned by store methods; callers should compare with
// errors.Is rather than matching on string content.
var (
	ErrNotFound = errors.New("store: not found")
	ErrConflict = errors.New("store: conflict")
)

// Store wraps the database connection and provides methods for data access.
type Store struct {
	conn      *sql.DB
	encryptor *crypto.Encryptor
}

// Open creates a connection to the given SQLite database path (or
// ":memory:" for tests), applies pragmas, and runs migrations. BMC
// passwords are stored in plaintext; use OpenWithEncryption to encrypt
// them at rest.
func Open(ctx context.Context, dbPath string) (*Store, error) {
	return open(ctx, dbPath, nil)
}

// OpenWithEncryption is like Open but encrypts BMC passwords at rest using
// a key derived from passphrase. Machines registered under one passphrase
// are unreadable (BMC password only) under another.
func OpenWithEncryption(ctx context.Context, dbPath, passphrase string) (*Store, error) {
	enc, err := crypto.NewEncryptor(passphrase)
	if err != nil {
		return nil, fmt.Errorf("store: building encryptor: %w", err)
	}
	return open(ctx, dbPath, enc)
}

func open(ctx context.Context, dbPath string, enc *crypto.Encryptor) (*Store, error) {
	conn, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite allows only one writer at a time; a single connection avoids
	// "database is locked" errors under concurrent access from this process.
	conn.SetMaxOpenConns(1)

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	st := &Store{conn: conn, encryptor: enc}
	if err := st.migrate(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return st, nil
}

// encryptBMCPassword encrypts password for storage if the store was opened
// with an encryption key, otherwise returns it unchanged.
func (s *Store) encryptBMCPassword(password string) (string, error) {
	if s.encryptor == nil || password == "" {
		return password, nil
	}
	return s.encryptor.Encrypt(password)
}

// decryptBMCPassword reverses encryptBMCPassword. Values already in
// plaintext (stored before encryption was enabled) are returned as-is.
func (s *Store) decryptBMCPassword(stored string) (string, error) {
	if s.encryptor == nil || stored == "" || !crypto.IsEncrypted(stored) {
		return stored, nil
	}
	return s.encryptor.Decrypt(stored)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// migrate runs idempotent schema migrations. Table creation uses CREATE
// TABLE IF NOT EXISTS; column additions to pre-existing tables are guarded
// by a pragma_table_info existence check so re-running is always safe.
func (s *Store) migrate(ctx context.Context) error {
	slog.Info("store: running database migrations")

	statements := []string{
		`CREATE TABLE IF NOT EXISTS machines (
			id TEXT PRIMARY KEY,
			mac_address TEXT NOT NULL UNIQUE,
			ip_address TEXT NOT NULL,
			hostname TEXT,
			os_choice TEXT,
			os_installed TEXT,
			status TEXT NOT NULL,
			disks TEXT NOT NULL DEFAULT '[]',
			nameservers TEXT NOT NULL DEFAULT '[]',
			memorable_name TEXT NOT NULL DEFAULT '',
			bmc_address TEXT,
			bmc_username TEXT,
			bmc_password TEXT,
			bmc_type TEXT,
			installation_progress INTEGER NOT NULL DEFAULT 0,
			installation_step TEXT,
			last_deployment_duration INTEGER,
			cpu_model TEXT,
			cpu_cores INTEGER,
			total_ram_bytes INTEGER,
			proxmox_vmid INTEGER,
			proxmox_node TEXT,
			is_proxmox_host BOOLEAN NOT NULL DEFAULT false,
			tags TEXT NOT NULL DEFAULT '[]',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_machines_status ON machines(status)`,
		`CREATE INDEX IF NOT EXISTS idx_machines_ip_address ON machines(ip_address)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_machines_proxmox_vmid ON machines(proxmox_vmid) WHERE proxmox_vmid IS NOT NULL`,
		`CREATE TABLE IF NOT EXISTS app_settings (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			require_login BOOLEAN NOT NULL DEFAULT true,
			default_os TEXT,
			setup_completed BOOLEAN NOT NULL DEFAULT false,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS admin_credentials (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			username TEXT NOT NULL,
			password_hash TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS template_timings (
			template_name TEXT NOT NULL,
			action_name TEXT NOT NULL,
			durations TEXT NOT NULL DEFAULT '[]',
			PRIMARY KEY (template_name, action_name)
		)`,
		`CREATE TABLE IF NOT EXISTS completed_workflows (
			machine_id TEXT PRIMARY KEY,
			workflow_info TEXT NOT NULL,
			completed_at DATETIME NOT NULL
		)`,
	}

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration statement failed: %w\n%s", err, stmt)
		}
	}

	if err := addColumnIfMissing(ctx, tx, "machines", "tags", "TEXT NOT NULL DEFAULT '[]'"); err != nil {
		return err
	}

	return tx.Commit()
}

// addColumnIfMissing runs an ALTER TABLE ... ADD COLUMN only if the column
// does not already exist, so later releases can add columns to a table
// created by an older migration without failing on re-run.
func addColumnIfMissing(ctx context.Context, tx *sql.Tx, table, column, definition string) error {
	row := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?`, table, column)
	var count int
	if err := row.Scan(&count); err != nil {
		return fmt.Errorf("checking column %s.%s: %w", table, column, err)
	}
	if count > 0 {
		return nil
	}
	stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, definition)
	if _, err := tx.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("adding column %s.%s: %w", table, column, err)
	}
	return nil
}
