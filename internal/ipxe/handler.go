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

package ipxe

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"dragonfly/internal/metrics"
)

// ServeArtifact handles GET /ipxe/{*path}: generated scripts, the
// synthesized agent overlay, and mirrored binary artifacts. path is the
// portion after "/ipxe/", not yet sanitized.
func (s *Service) ServeArtifact(w http.ResponseWriter, r *http.Request, path string) {
	if strings.Contains(path, "..") || strings.Contains(path, "\\") {
		http.Error(w, "invalid artifact path", http.StatusBadRequest)
		return
	}

	switch {
	case path == agentApkovlPath:
		s.serveApkovl(w, r)
	case strings.HasSuffix(path, ".ipxe"):
		s.serveGeneratedScript(w, r, path)
	default:
		s.serveBinaryArtifact(w, r, path)
	}
}

func (s *Service) serveGeneratedScript(w http.ResponseWriter, r *http.Request, path string) {
	stem := strings.TrimSuffix(filepath.Base(path), ".ipxe")
	if !allowedScripts[stem] {
		http.Error(w, "unknown iPXE script", http.StatusNotFound)
		return
	}

	if _, err := os.Stat(s.cachePath(path)); err == nil {
		metrics.ObserveArtifactCache(true)
		s.serveCached(w, r, path, "text/plain")
		return
	}

	metrics.ObserveArtifactCache(false)
	body, err := s.generateScript(stem)
	if err != nil {
		http.Error(w, "failed to generate script", http.StatusInternalServerError)
		return
	}

	if err := s.writeCacheFile(path, []byte(body)); err != nil {
		s.logf("failed to cache generated script", "path", path, "error", err)
	}

	w.Header().Set("Content-Type", "text/plain")
	w.Header().Set("Content-Encoding", "identity")
	_, _ = w.Write([]byte(body))
}

func (s *Service) serveApkovl(w http.ResponseWriter, r *http.Request) {
	if _, err := os.Stat(s.cachePath(agentApkovlPath)); err == nil {
		metrics.ObserveArtifactCache(true)
		s.serveCached(w, r, agentApkovlPath, "application/gzip")
		return
	}

	metrics.ObserveArtifactCache(false)
	data, err := s.buildApkovl(r.Context())
	if err != nil {
		s.logf("failed to build agent overlay", "error", err)
		http.Error(w, "failed to build agent overlay", http.StatusInternalServerError)
		return
	}
	if err := s.writeCacheFile(agentApkovlPath, data); err != nil {
		http.Error(w, "failed to cache agent overlay", http.StatusInternalServerError)
		return
	}

	s.serveCached(w, r, agentApkovlPath, "application/gzip")
}

func (s *Service) serveBinaryArtifact(w http.ResponseWriter, r *http.Request, path string) {
	remoteURL, ok := remoteArtifacts[path]
	if !ok {
		http.Error(w, "unknown artifact", http.StatusNotFound)
		return
	}
	s.mirrorRemote(w, r, path, remoteURL)
}
