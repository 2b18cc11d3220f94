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

// Package httpapi assembles every HTTP-facing piece of the controller
// (machine CRUD, OS assignment, progress reporting, SSE, the iPXE
// decision point and artifact service) behind one router, admin-gating
// mutating routes.
package httpapi

import (
	"context"
	"net/http"

	"dragonfly/internal/eventbus"
	"dragonfly/pkg/models"
)

// Store is the subset of the persistence store httpapi depends on
// directly for machine CRUD; Registration, Assignment, and Progress each
// bring their own narrower Store interfaces.
type Store interface {
	ListMachines(ctx context.Context) ([]models.Machine, error)
	GetMachineByID(ctx context.Context, id string) (*models.Machine, error)
	UpdateHostname(ctx context.Context, id, hostname string) error
	UpdateIPAddress(ctx context.Context, id, ip string) error
	UpdateMACAddress(ctx context.Context, id, mac string) error
	UpdateNameservers(ctx context.Context, id string, nameservers []string) error
	UpdateOSInstalled(ctx context.Context, id, osInstalled string) error
	UpdateStatus(ctx context.Context, id string, status models.MachineStatus) error
	UpdateBMCCredentials(ctx context.Context, id string, creds *models.BMCCredentials) error
	UpdateTags(ctx context.Context, id string, tags []string) error
	DeleteMachine(ctx context.Context, id string) error
}

// Registration is the subset of the Registration Service httpapi drives
// from POST /api/machines.
type Registration interface {
	Register(ctx context.Context, req models.RegisterRequest) (models.RegisterResponse, error)
}

// Assignment is the subset of the OS Assignment Orchestrator httpapi
// drives from POST /api/machines/{id}/os.
type Assignment interface {
	Assign(ctx context.Context, machineID, osChoice string) error
}

// Progress is the subset of the Installation Progress Receiver httpapi
// drives from POST /api/machines/{id}/progress.
type Progress interface {
	Update(ctx context.Context, machineID string, progress int, step *string) error
}

// Gateway is the subset of the Tinkerbell gateway needed to tear down a
// machine's CRDs when it is deleted from inventory.
type Gateway interface {
	DeleteHardwareAndWorkflow(ctx context.Context, mac string) error
}

// ArtifactService is the subset of the iPXE Artifact Service httpapi
// dispatches into for /{mac} and /ipxe/{*path}.
type ArtifactService interface {
	ServeChainScript(w http.ResponseWriter, r *http.Request, mac string)
	ServeArtifact(w http.ResponseWriter, r *http.Request, path string)
}

// AdminGate admits or rejects mutating requests.
type AdminGate interface {
	RequireAdmin(next http.Handler) http.Handler
}

// Deps bundles every collaborator the HTTP surface needs.
type Deps struct {
	Store     Store
	Registrar Registration
	Assigner  Assignment
	Progress  Progress
	Gateway   Gateway
	Artifacts ArtifactService
	Bus       *eventbus.Bus
	Admin     AdminGate
}

// NewRouter builds the complete HTTP handler described in the route
// table: machine CRUD, OS assignment, progress, SSE, the iPXE decision
// point and artifact mirror, and liveness.
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	h := &handler{d: d}

	mux.HandleFunc("POST /api/machines", h.handleRegister)
	mux.HandleFunc("GET /api/machines", h.handleListMachines)
	mux.HandleFunc("GET /api/machines/{id}", h.handleGetMachine)
	mux.Handle("PUT /api/machines/{id}", d.Admin.RequireAdmin(http.HandlerFunc(h.handleUpdateMachine)))
	mux.Handle("DELETE /api/machines/{id}", d.Admin.RequireAdmin(http.HandlerFunc(h.handleDeleteMachine)))
	mux.Handle("POST /api/machines/{id}/os", d.Admin.RequireAdmin(http.HandlerFunc(h.handleAssignOS)))
	mux.Handle("POST /api/machines/{id}/status", d.Admin.RequireAdmin(http.HandlerFunc(h.handleUpdateStatus)))
	mux.Handle("POST /api/machines/{id}/hostname", d.Admin.RequireAdmin(http.HandlerFunc(h.handleUpdateHostname)))
	mux.Handle("POST /api/machines/{id}/os_installed", d.Admin.RequireAdmin(http.HandlerFunc(h.handleUpdateOSInstalled)))
	mux.Handle("POST /api/machines/{id}/bmc", d.Admin.RequireAdmin(http.HandlerFunc(h.handleUpdateBMC)))
	mux.Handle("POST /api/machines/{id}/progress", d.Admin.RequireAdmin(http.HandlerFunc(h.handleUpdateProgress)))
	mux.Handle("POST /api/machines/{id}/tags", d.Admin.RequireAdmin(http.HandlerFunc(h.handleUpdateTags)))

	mux.HandleFunc("GET /events", h.handleEvents)
	mux.HandleFunc("GET /api/install/status", h.handleInstallStatus)
	mux.HandleFunc("GET /api/heartbeat", h.handleHeartbeat)

	mux.HandleFunc("GET /ipxe/{path...}", h.handleArtifact)
	mux.HandleFunc("GET /{mac}", h.handleChainScript)

	return mux
}

type handler struct {
	d Deps
}
