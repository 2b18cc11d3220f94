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

// Package ipxe serves the three classes of boot-time artifact a machine
// fetches over HTTP while PXE-booting: a per-MAC chain script, the
// generated HookOS/Alpine iPXE scripts those chain scripts point at, and
// the large binary kernels/initramfs/overlay images those scripts in turn
// boot. Everything except the per-MAC chain script is cached to disk the
// first time it's requested and served from cache afterward.
package ipxe

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"

	"dragonfly/pkg/models"
)

// MachineLookup is the subset of the persistence store the Artifact
// Service depends on to decide whether a booting MAC is already known.
type MachineLookup interface {
	GetMachineByMAC(ctx context.Context, mac string) (*models.Machine, error)
}

// agentBinaryURL is where the dragonfly-agent binary baked into the
// synthesized Alpine overlay is downloaded from. Not yet configurable;
// the upstream project hasn't moved this to an env var either.
const agentBinaryURL = "https://github.com/Zorlin/dragonfly/raw/refs/heads/main/dragonfly-agent"

// allowedScripts is the stem allow-list for generated iPXE scripts served
// under /ipxe/<stem>.ipxe, both freshly generated and served from cache.
var allowedScripts = map[string]bool{
	"hookos":          true,
	"dragonfly-agent": true,
}

// agentApkovlPath is the cache-relative path of the synthesized Alpine
// overlay archive.
const agentApkovlPath = "dragonfly-agent/localhost.apkovl.tar.gz"

// remoteArtifacts maps a cache-relative artifact path to the fixed
// upstream URL it's mirrored from.
var remoteArtifacts = map[string]string{
	"dragonfly-agent/vmlinuz":                "https://dl-cdn.alpinelinux.org/alpine/latest-stable/releases/x86_64/netboot/vmlinuz-lts",
	"dragonfly-agent/initramfs-lts":          "https://dl-cdn.alpinelinux.org/alpine/latest-stable/releases/x86_64/netboot/initramfs-lts",
	"dragonfly-agent/modloop":                "https://dl-cdn.alpinelinux.org/alpine/latest-stable/releases/x86_64/netboot/modloop-lts",
	"ubuntu/jammy-server-cloudimg-amd64.img": "https://cloud-images.ubuntu.com/jammy/current/jammy-server-cloudimg-amd64.img",
}

var macPattern = regexp.MustCompile(`^([0-9a-fA-F]{2}:){5}[0-9a-fA-F]{2}$`)

// Config controls artifact generation and caching.
type Config struct {
	// BaseURL is the externally reachable URL scripts and chain
	// responses reference, e.g. "http://dragonfly.example:8080".
	BaseURL string
	// ArtifactDir is where generated and mirrored artifacts are cached.
	ArtifactDir string
	// TinkerbellGRPCAuthority is embedded in the HookOS script so the
	// agent knows where to report workflow progress.
	TinkerbellGRPCAuthority string
	// TinkerbellSyslogHost is embedded in the HookOS script.
	TinkerbellSyslogHost string
	// TinkerbellTLS toggles TLS for the gRPC authority above.
	TinkerbellTLS bool
}

// Service implements the Artifact Service described in spec.md §4.6.
type Service struct {
	cfg         Config
	machines    MachineLookup
	baseHost    string
	fetchBinary func(ctx context.Context, url string) ([]byte, error)
}

// New constructs a Service. machines is used only by the per-MAC chain
// script to decide which agent to chain to.
func New(cfg Config, machines MachineLookup) (*Service, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("ipxe: BaseURL is required")
	}
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || u.Hostname() == "" {
		return nil, fmt.Errorf("ipxe: invalid BaseURL %q", cfg.BaseURL)
	}
	return &Service{cfg: cfg, machines: machines, baseHost: u.Hostname(), fetchBinary: fetchBytes}, nil
}

func (s *Service) logf(msg string, args ...any) {
	slog.Info("ipxe: "+msg, args...)
}
