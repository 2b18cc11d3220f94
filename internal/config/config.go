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

// Package config loads the controller's environment-variable configuration.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
)

// Config holds every environment-derived setting the controller needs.
type Config struct {
	// BaseURL is the externally reachable URL of this controller, used for
	// iPXE script generation and template substitution. Required.
	BaseURL string

	// IPXEArtifactDir is where generated and cached iPXE artifacts are
	// written.
	IPXEArtifactDir string

	// TinkerbellGRPCAuthority is the HookOS agent's gRPC target for
	// reporting workflow progress.
	TinkerbellGRPCAuthority string
	// TinkerbellSyslogHost is where HookOS forwards syslog output.
	TinkerbellSyslogHost string
	// TinkerbellTLS toggles TLS for the gRPC authority above.
	TinkerbellTLS bool

	// DBPath is the SQLite database file path.
	DBPath string
	// BMCEncryptionKey, if set, encrypts BMC passwords at rest. Read from
	// DRAGONFLY_BMC_ENCRYPTION_KEY; if empty, BMC passwords are stored in
	// plaintext.
	BMCEncryptionKey string

	// SetupMode gates the first-run admin setup flow.
	SetupMode bool
	// DemoMode is read from DRAGONFLY_DEMO_MODE. No other part of the
	// controller reads it: admin gating is bypassed only when the stored
	// require_login setting is false, whatever this flag says.
	DemoMode bool
	// Service names this deployment, surfaced in the startup log line.
	Service string
}

const defaultIPXEArtifactDir = "/var/lib/dragonfly/ipxe-artifacts"
const defaultDBPath = "/var/lib/dragonfly/dragonfly.db"
const defaultService = "dragonfly"
const tinkerbellGRPCPort = "42113"

// LoadFromEnv reads the controller's configuration from the environment,
// deriving Tinkerbell defaults from BaseURL's host where they're not set
// explicitly.
func LoadFromEnv() (Config, error) {
	baseURL := os.Getenv("DRAGONFLY_BASE_URL")
	if baseURL == "" {
		return Config{}, fmt.Errorf("DRAGONFLY_BASE_URL is required")
	}
	host, err := bareHost(baseURL)
	if err != nil {
		return Config{}, fmt.Errorf("DRAGONFLY_BASE_URL is not a valid URL: %w", err)
	}

	cfg := Config{
		BaseURL:                 baseURL,
		IPXEArtifactDir:         envOr("DRAGONFLY_IPXE_ARTIFACT_DIR", defaultIPXEArtifactDir),
		TinkerbellGRPCAuthority: envOr("TINKERBELL_GRPC_AUTHORITY", host+":"+tinkerbellGRPCPort),
		TinkerbellSyslogHost:    envOr("TINKERBELL_SYSLOG_HOST", host),
		DBPath:                  envOr("DRAGONFLY_DB_PATH", defaultDBPath),
		BMCEncryptionKey:        os.Getenv("DRAGONFLY_BMC_ENCRYPTION_KEY"),
		Service:                 envOr("DRAGONFLY_SERVICE", defaultService),
	}

	cfg.TinkerbellTLS, err = envBool("TINKERBELL_TLS", false)
	if err != nil {
		return Config{}, err
	}
	cfg.SetupMode, err = envBool("DRAGONFLY_SETUP_MODE", false)
	if err != nil {
		return Config{}, err
	}
	cfg.DemoMode, err = envBool("DRAGONFLY_DEMO_MODE", false)
	if err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func bareHost(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if u.Hostname() == "" {
		return "", fmt.Errorf("missing host in %q", rawURL)
	}
	return u.Hostname(), nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, v, err)
	}
	return parsed, nil
}
