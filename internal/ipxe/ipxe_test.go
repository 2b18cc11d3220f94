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
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dragonfly/internal/store"
	"dragonfly/pkg/models"
)

type fakeMachines struct {
	byMAC map[string]*models.Machine
}

func (f *fakeMachines) GetMachineByMAC(ctx context.Context, mac string) (*models.Machine, error) {
	if m, ok := f.byMAC[mac]; ok {
		return m, nil
	}
	return nil, store.ErrNotFound
}

func newTestService(t *testing.T, machines MachineLookup) *Service {
	t.Helper()
	if machines == nil {
		machines = &fakeMachines{byMAC: map[string]*models.Machine{}}
	}
	svc, err := New(Config{
		BaseURL:     "http://dragonfly.example:8080",
		ArtifactDir: t.TempDir(),
	}, machines)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return svc
}

func TestServeChainScriptRejectsMalformedMAC(t *testing.T) {
	svc := newTestService(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/not-a-mac", nil)
	w := httptest.NewRecorder()
	svc.ServeChainScript(w, req, "not-a-mac")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestServeChainScriptUnknownMachineChainsToAgent(t *testing.T) {
	svc := newTestService(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/aa:bb:cc:dd:ee:ff", nil)
	w := httptest.NewRecorder()
	svc.ServeChainScript(w, req, "aa:bb:cc:dd:ee:ff")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.HasPrefix(body, "#!ipxe\n") {
		t.Fatalf("expected body to start with #!ipxe, got %q", body)
	}
	if !strings.Contains(body, "dragonfly-agent.ipxe") {
		t.Fatalf("expected chain to dragonfly-agent.ipxe, got %q", body)
	}
}

func TestServeChainScriptKnownMachineChainsToHookOS(t *testing.T) {
	mac := "aa:bb:cc:dd:ee:ff"
	machines := &fakeMachines{byMAC: map[string]*models.Machine{
		mac: {ID: "m1", MACAddress: mac},
	}}
	svc := newTestService(t, machines)

	req := httptest.NewRequest(http.MethodGet, "/"+mac, nil)
	w := httptest.NewRecorder()
	svc.ServeChainScript(w, req, mac)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "hookos.ipxe") {
		t.Fatalf("expected chain to hookos.ipxe, got %q", w.Body.String())
	}
}

func TestServeArtifactRejectsPathTraversal(t *testing.T) {
	svc := newTestService(t, nil)

	for _, bad := range []string{"../etc/passwd", "dragonfly-agent\\..\\x", "..\\secrets"} {
		req := httptest.NewRequest(http.MethodGet, "/ipxe/"+bad, nil)
		w := httptest.NewRecorder()
		svc.ServeArtifact(w, req, bad)
		if w.Code != http.StatusBadRequest {
			t.Errorf("path %q: expected 400, got %d", bad, w.Code)
		}
	}
}

func TestServeArtifactGeneratesAndCachesHookosScript(t *testing.T) {
	svc := newTestService(t, nil)
	svc.cfg.TinkerbellGRPCAuthority = "dragonfly.example:42113"
	svc.cfg.TinkerbellSyslogHost = "dragonfly.example"

	req := httptest.NewRequest(http.MethodGet, "/ipxe/hookos.ipxe", nil)
	w := httptest.NewRecorder()
	svc.ServeArtifact(w, req, "hookos.ipxe")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.HasPrefix(w.Body.String(), "#!ipxe\n") {
		t.Fatalf("expected #!ipxe script, got %q", w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "grpc_authority=dragonfly.example:42113") {
		t.Fatalf("expected grpc_authority in script, got %q", w.Body.String())
	}

	cached := svc.cachePath("hookos.ipxe")
	if _, err := os.Stat(cached); err != nil {
		t.Fatalf("expected script to be cached at %s: %v", cached, err)
	}

	// Second request is served from the cached copy.
	req2 := httptest.NewRequest(http.MethodGet, "/ipxe/hookos.ipxe", nil)
	w2 := httptest.NewRecorder()
	svc.ServeArtifact(w2, req2, "hookos.ipxe")
	if w2.Code != http.StatusOK {
		t.Fatalf("expected 200 on cached request, got %d", w2.Code)
	}
}

func TestServeArtifactRejectsNonAllowlistedScript(t *testing.T) {
	svc := newTestService(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/ipxe/evil.ipxe", nil)
	w := httptest.NewRecorder()
	svc.ServeArtifact(w, req, "evil.ipxe")

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestServeArtifactUnknownBinaryIsNotFound(t *testing.T) {
	svc := newTestService(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/ipxe/unknown/thing.bin", nil)
	w := httptest.NewRecorder()
	svc.ServeArtifact(w, req, "unknown/thing.bin")

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestWriteCacheFileIsAtomic(t *testing.T) {
	svc := newTestService(t, nil)

	if err := svc.writeCacheFile("scripts/x.ipxe", []byte("hello")); err != nil {
		t.Fatalf("writeCacheFile: %v", err)
	}

	entries, err := os.ReadDir(filepath.Join(svc.cfg.ArtifactDir, "scripts"))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".tmp-") {
			t.Fatalf("leftover temp file found: %s", e.Name())
		}
	}

	data, err := os.ReadFile(svc.cachePath("scripts/x.ipxe"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "hello" {
		t.Fatalf("expected 'hello', got %q", data)
	}
}

func TestNewRequiresBaseURL(t *testing.T) {
	_, err := New(Config{ArtifactDir: t.TempDir()}, &fakeMachines{byMAC: map[string]*models.Machine{}})
	if err == nil {
		t.Fatal("expected error for missing BaseURL")
	}
}
