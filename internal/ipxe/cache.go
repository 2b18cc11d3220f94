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
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"dragonfly/internal/metrics"
)

// cachePath joins the artifact directory with a validated relative path.
func (s *Service) cachePath(relPath string) string {
	return filepath.Join(s.cfg.ArtifactDir, filepath.FromSlash(relPath))
}

// writeCacheFile writes data to relPath under the artifact directory via
// a temp-file-then-rename, so a reader never observes a partially
// written cache entry and a crash mid-write never corrupts one either.
func (s *Service) writeCacheFile(relPath string, data []byte) error {
	target := s.cachePath(relPath)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("ipxe: creating cache directory for %s: %w", relPath, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".tmp-*")
	if err != nil {
		return fmt.Errorf("ipxe: creating temp cache file for %s: %w", relPath, err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if tmp != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("ipxe: writing temp cache file for %s: %w", relPath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("ipxe: closing temp cache file for %s: %w", relPath, err)
	}
	tmp = nil

	if err := os.Rename(tmpPath, target); err != nil {
		return fmt.Errorf("ipxe: renaming cache file for %s: %w", relPath, err)
	}
	return nil
}

// writeCacheFromReader downloads src into relPath's cache slot via the
// same temp-file-then-rename pattern as writeCacheFile, without holding
// the whole artifact in memory first.
func (s *Service) writeCacheFromReader(relPath string, src io.Reader) error {
	target := s.cachePath(relPath)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("ipxe: creating cache directory for %s: %w", relPath, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".tmp-*")
	if err != nil {
		return fmt.Errorf("ipxe: creating temp cache file for %s: %w", relPath, err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if tmp != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := io.Copy(tmp, src); err != nil {
		return fmt.Errorf("ipxe: downloading into cache file for %s: %w", relPath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("ipxe: closing temp cache file for %s: %w", relPath, err)
	}
	tmp = nil

	if err := os.Rename(tmpPath, target); err != nil {
		return fmt.Errorf("ipxe: renaming cache file for %s: %w", relPath, err)
	}
	return nil
}

// serveCached serves an already-cached artifact from disk, honoring
// Range requests via http.ServeContent (the same mechanism
// http.ServeFile uses internally).
func (s *Service) serveCached(w http.ResponseWriter, r *http.Request, relPath, contentType string) {
	f, err := os.Open(s.cachePath(relPath))
	if err != nil {
		http.Error(w, "artifact not found", http.StatusNotFound)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		http.Error(w, "artifact not found", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	http.ServeContent(w, r, relPath, info.ModTime(), f)
}

// mirrorRemote downloads a fixed upstream artifact into the cache (if
// not already present) and serves it, write-through style: on a cache
// miss the client's request pays for the download, and every later
// request that finds the file is served straight from disk. Concurrent
// misses each download on their own; writeCacheFromReader's atomic rename
// keeps a partially written file from ever being served.
func (s *Service) mirrorRemote(w http.ResponseWriter, r *http.Request, relPath, remoteURL string) {
	if _, err := os.Stat(s.cachePath(relPath)); err == nil {
		metrics.ObserveArtifactCache(true)
		s.serveCached(w, r, relPath, "application/octet-stream")
		return
	}

	metrics.ObserveArtifactCache(false)
	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, remoteURL, nil)
	if err != nil {
		http.Error(w, "failed to build upstream request", http.StatusInternalServerError)
		return
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		http.Error(w, "failed to fetch upstream artifact", http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		http.Error(w, "upstream artifact unavailable", http.StatusBadGateway)
		return
	}

	if err := s.writeCacheFromReader(relPath, resp.Body); err != nil {
		http.Error(w, "failed to cache artifact", http.StatusInternalServerError)
		return
	}

	s.serveCached(w, r, relPath, "application/octet-stream")
}
