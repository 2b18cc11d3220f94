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

package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"dragonfly/internal/assignment"
	"dragonfly/internal/eventbus"
	"dragonfly/internal/store"
	"dragonfly/pkg/models"
)

type fakeStore struct {
	machines map[string]*models.Machine
	tags     map[string][]string
}

func newFakeStore(machines ...*models.Machine) *fakeStore {
	fs := &fakeStore{machines: map[string]*models.Machine{}, tags: map[string][]string{}}
	for _, m := range machines {
		fs.machines[m.ID] = m
	}
	return fs
}

func (f *fakeStore) ListMachines(ctx context.Context) ([]models.Machine, error) {
	var out []models.Machine
	for _, m := range f.machines {
		out = append(out, *m)
	}
	return out, nil
}

func (f *fakeStore) GetMachineByID(ctx context.Context, id string) (*models.Machine, error) {
	m, ok := f.machines[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return m, nil
}

func (f *fakeStore) UpdateHostname(ctx context.Context, id, hostname string) error {
	m, ok := f.machines[id]
	if !ok {
		return store.ErrNotFound
	}
	m.Hostname = &hostname
	return nil
}

func (f *fakeStore) UpdateIPAddress(ctx context.Context, id, ip string) error {
	m, ok := f.machines[id]
	if !ok {
		return store.ErrNotFound
	}
	m.IPAddress = ip
	return nil
}

func (f *fakeStore) UpdateMACAddress(ctx context.Context, id, mac string) error {
	for otherID, m := range f.machines {
		if m.MACAddress == mac && otherID != id {
			return store.ErrConflict
		}
	}
	m, ok := f.machines[id]
	if !ok {
		return store.ErrNotFound
	}
	m.MACAddress = mac
	return nil
}

func (f *fakeStore) UpdateNameservers(ctx context.Context, id string, nameservers []string) error {
	m, ok := f.machines[id]
	if !ok {
		return store.ErrNotFound
	}
	m.Nameservers = nameservers
	return nil
}

func (f *fakeStore) UpdateOSInstalled(ctx context.Context, id, osInstalled string) error {
	m, ok := f.machines[id]
	if !ok {
		return store.ErrNotFound
	}
	m.OSInstalled = &osInstalled
	return nil
}

func (f *fakeStore) UpdateStatus(ctx context.Context, id string, status models.MachineStatus) error {
	m, ok := f.machines[id]
	if !ok {
		return store.ErrNotFound
	}
	m.Status = status
	return nil
}

func (f *fakeStore) UpdateBMCCredentials(ctx context.Context, id string, creds *models.BMCCredentials) error {
	m, ok := f.machines[id]
	if !ok {
		return store.ErrNotFound
	}
	m.BMCCredentials = creds
	return nil
}

func (f *fakeStore) UpdateTags(ctx context.Context, id string, tags []string) error {
	if _, ok := f.machines[id]; !ok {
		return store.ErrNotFound
	}
	f.tags[id] = tags
	return nil
}

func (f *fakeStore) DeleteMachine(ctx context.Context, id string) error {
	if _, ok := f.machines[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.machines, id)
	return nil
}

type fakeRegistrar struct {
	resp models.RegisterResponse
	err  error
}

func (f *fakeRegistrar) Register(ctx context.Context, req models.RegisterRequest) (models.RegisterResponse, error) {
	return f.resp, f.err
}

type fakeAssigner struct {
	err        error
	lastID     string
	lastChoice string
}

func (f *fakeAssigner) Assign(ctx context.Context, machineID, osChoice string) error {
	f.lastID, f.lastChoice = machineID, osChoice
	return f.err
}

type fakeProgress struct {
	err error
}

func (f *fakeProgress) Update(ctx context.Context, machineID string, progress int, step *string) error {
	return f.err
}

type fakeGateway struct {
	deleteCalled int
}

func (f *fakeGateway) DeleteHardwareAndWorkflow(ctx context.Context, mac string) error {
	f.deleteCalled++
	return nil
}

type fakeArtifacts struct {
	chainCalledWith    string
	artifactCalledWith string
}

func (f *fakeArtifacts) ServeChainScript(w http.ResponseWriter, r *http.Request, mac string) {
	f.chainCalledWith = mac
	w.WriteHeader(http.StatusOK)
}

func (f *fakeArtifacts) ServeArtifact(w http.ResponseWriter, r *http.Request, path string) {
	f.artifactCalledWith = path
	w.WriteHeader(http.StatusOK)
}

type passthroughAdmin struct{}

func (passthroughAdmin) RequireAdmin(next http.Handler) http.Handler { return next }

type denyAdmin struct{}

func (denyAdmin) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "authentication required", http.StatusUnauthorized)
	})
}

func newTestRouter(t *testing.T, fs *fakeStore, admin AdminGate) (http.Handler, *Deps) {
	t.Helper()
	d := Deps{
		Store:     fs,
		Registrar: &fakeRegistrar{resp: models.RegisterResponse{MachineID: "new-id", NextStep: "awaiting_os_assignment"}},
		Assigner:  &fakeAssigner{},
		Progress:  &fakeProgress{},
		Gateway:   &fakeGateway{},
		Artifacts: &fakeArtifacts{},
		Bus:       eventbus.New(),
		Admin:     admin,
	}
	return NewRouter(d), &d
}

func TestHandleRegisterReturnsCreated(t *testing.T) {
	fs := newFakeStore()
	router, _ := newTestRouter(t, fs, passthroughAdmin{})

	body := strings.NewReader(`{"mac_address":"aa:bb:cc:dd:ee:ff","ip_address":"10.0.0.5","disks":[],"nameservers":[]}`)
	req := httptest.NewRequest(http.MethodPost, "/api/machines", body)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var resp models.RegisterResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.MachineID != "new-id" {
		t.Errorf("unexpected machine id %q", resp.MachineID)
	}
}

func TestHandleRegisterRejectsMissingMAC(t *testing.T) {
	fs := newFakeStore()
	router, _ := newTestRouter(t, fs, passthroughAdmin{})

	req := httptest.NewRequest(http.MethodPost, "/api/machines", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestHandleGetMachineNotFound(t *testing.T) {
	fs := newFakeStore()
	router, _ := newTestRouter(t, fs, passthroughAdmin{})

	req := httptest.NewRequest(http.MethodGet, "/api/machines/missing", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestHandleListMachines(t *testing.T) {
	m := &models.Machine{ID: "m-1", MACAddress: "aa:bb:cc:dd:ee:ff", Status: models.NewMachineStatus(models.StatusAwaitingAssignment)}
	fs := newFakeStore(m)
	router, _ := newTestRouter(t, fs, passthroughAdmin{})

	req := httptest.NewRequest(http.MethodGet, "/api/machines", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var machines []models.Machine
	if err := json.Unmarshal(w.Body.Bytes(), &machines); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(machines) != 1 {
		t.Fatalf("expected 1 machine, got %d", len(machines))
	}
}

func TestMutatingRoutesRejectedWithoutAdmin(t *testing.T) {
	m := &models.Machine{ID: "m-1", MACAddress: "aa:bb:cc:dd:ee:ff", Status: models.NewMachineStatus(models.StatusAwaitingAssignment)}
	fs := newFakeStore(m)
	router, _ := newTestRouter(t, fs, denyAdmin{})

	req := httptest.NewRequest(http.MethodPost, "/api/machines/m-1/hostname", strings.NewReader(`{"hostname":"box1"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestHandleAssignOSAcceptsJSON(t *testing.T) {
	m := &models.Machine{ID: "m-1", MACAddress: "aa:bb:cc:dd:ee:ff", Status: models.NewMachineStatus(models.StatusAwaitingAssignment)}
	fs := newFakeStore(m)
	router, d := newTestRouter(t, fs, passthroughAdmin{})

	req := httptest.NewRequest(http.MethodPost, "/api/machines/m-1/os", strings.NewReader(`{"os_choice":"ubuntu-22.04"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", w.Code, w.Body.String())
	}
	assigner := d.Assigner.(*fakeAssigner)
	if assigner.lastID != "m-1" || assigner.lastChoice != "ubuntu-22.04" {
		t.Errorf("unexpected assign call: id=%q choice=%q", assigner.lastID, assigner.lastChoice)
	}
}

func TestHandleAssignOSAcceptsForm(t *testing.T) {
	m := &models.Machine{ID: "m-1", MACAddress: "aa:bb:cc:dd:ee:ff", Status: models.NewMachineStatus(models.StatusAwaitingAssignment)}
	fs := newFakeStore(m)
	router, d := newTestRouter(t, fs, passthroughAdmin{})

	req := httptest.NewRequest(http.MethodPost, "/api/machines/m-1/os", strings.NewReader(`os_choice=debian-12`))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", w.Code, w.Body.String())
	}
	assigner := d.Assigner.(*fakeAssigner)
	if assigner.lastChoice != "debian-12" {
		t.Errorf("unexpected os choice %q", assigner.lastChoice)
	}
}

func TestHandleAssignOSReportsTemplateNotFound(t *testing.T) {
	m := &models.Machine{ID: "m-1", MACAddress: "aa:bb:cc:dd:ee:ff", Status: models.NewMachineStatus(models.StatusAwaitingAssignment)}
	fs := newFakeStore(m)
	d := Deps{
		Store:     fs,
		Registrar: &fakeRegistrar{},
		Assigner:  &fakeAssigner{err: &assignment.TemplateNotFoundError{Template: "missing-os"}},
		Progress:  &fakeProgress{},
		Gateway:   &fakeGateway{},
		Artifacts: &fakeArtifacts{},
		Bus:       eventbus.New(),
		Admin:     passthroughAdmin{},
	}
	router := NewRouter(d)

	req := httptest.NewRequest(http.MethodPost, "/api/machines/m-1/os", strings.NewReader(`{"os_choice":"missing-os"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", w.Code, w.Body.String())
	}
}

func TestHandleUpdateProgressBounds(t *testing.T) {
	m := &models.Machine{ID: "m-1", MACAddress: "aa:bb:cc:dd:ee:ff", Status: models.NewMachineStatus(models.StatusInstallingOS)}
	fs := newFakeStore(m)
	router, _ := newTestRouter(t, fs, passthroughAdmin{})

	req := httptest.NewRequest(http.MethodPost, "/api/machines/m-1/progress", strings.NewReader(`{"progress":42,"step":"writing disk"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", w.Code, w.Body.String())
	}
}

func TestHandleDeleteMachineTearsDownTinkerbellResources(t *testing.T) {
	m := &models.Machine{ID: "m-1", MACAddress: "aa:bb:cc:dd:ee:ff", Status: models.NewMachineStatus(models.StatusReady)}
	fs := newFakeStore(m)
	router, d := newTestRouter(t, fs, passthroughAdmin{})

	req := httptest.NewRequest(http.MethodDelete, "/api/machines/m-1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", w.Code, w.Body.String())
	}
	if d.Gateway.(*fakeGateway).deleteCalled != 1 {
		t.Error("expected tinkerbell resources to be torn down")
	}
	if _, err := fs.GetMachineByID(context.Background(), "m-1"); err == nil {
		t.Error("expected machine to be removed from the store")
	}
}

func TestHandleHeartbeat(t *testing.T) {
	fs := newFakeStore()
	router, _ := newTestRouter(t, fs, passthroughAdmin{})

	req := httptest.NewRequest(http.MethodGet, "/api/heartbeat", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestHandleInstallStatusReportsNotInstallingByDefault(t *testing.T) {
	fs := newFakeStore()
	router, _ := newTestRouter(t, fs, passthroughAdmin{})

	req := httptest.NewRequest(http.MethodGet, "/api/install/status", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "NotInstalling") {
		t.Errorf("expected NotInstalling placeholder, got %s", w.Body.String())
	}
}

func TestHandleInstallStatusReflectsLastPublishedState(t *testing.T) {
	fs := newFakeStore()
	d := Deps{
		Store:     fs,
		Registrar: &fakeRegistrar{},
		Assigner:  &fakeAssigner{},
		Progress:  &fakeProgress{},
		Gateway:   &fakeGateway{},
		Artifacts: &fakeArtifacts{},
		Bus:       eventbus.New(),
		Admin:     passthroughAdmin{},
	}
	d.Bus.Publish(eventbus.TypeInstallStatus, `{"status":"InstallingOS","message":"formatting disk"}`)
	router := NewRouter(d)

	req := httptest.NewRequest(http.MethodGet, "/api/install/status", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "formatting disk") {
		t.Errorf("expected last published status in body, got %s", w.Body.String())
	}
}

func TestHandleChainScriptDispatchesMAC(t *testing.T) {
	fs := newFakeStore()
	router, d := newTestRouter(t, fs, passthroughAdmin{})

	req := httptest.NewRequest(http.MethodGet, "/aa:bb:cc:dd:ee:ff", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if d.Artifacts.(*fakeArtifacts).chainCalledWith != "aa:bb:cc:dd:ee:ff" {
		t.Errorf("unexpected mac forwarded: %q", d.Artifacts.(*fakeArtifacts).chainCalledWith)
	}
}

func TestHandleArtifactDispatchesPath(t *testing.T) {
	fs := newFakeStore()
	router, d := newTestRouter(t, fs, passthroughAdmin{})

	req := httptest.NewRequest(http.MethodGet, "/ipxe/hookos.ipxe", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if d.Artifacts.(*fakeArtifacts).artifactCalledWith != "hookos.ipxe" {
		t.Errorf("unexpected path forwarded: %q", d.Artifacts.(*fakeArtifacts).artifactCalledWith)
	}
}
