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

// Package registration implements the Machine Registration API: an
// agent's first-boot POST upserts the machine record, best-effort
// ensures its Tinkerbell Hardware resource exists, and announces it on
// the event bus.
package registration

import (
	"context"
	"fmt"
	"log/slog"

	"dragonfly/internal/eventbus"
	"dragonfly/pkg/models"
)

// Store is the subset of the persistence store registration depends on.
type Store interface {
	UpsertMachineByMAC(ctx context.Context, req models.RegisterRequest) (*models.Machine, error)
	GetAppSettings(ctx context.Context) (models.AppSettings, error)
}

// Gateway is the subset of the Tinkerbell gateway registration depends
// on.
type Gateway interface {
	EnsureHardware(ctx context.Context, m *models.Machine) error
}

// Assigner drives the OS Assignment Orchestrator, invoked automatically
// when AppSettings.DefaultOS is configured.
type Assigner interface {
	Assign(ctx context.Context, machineID, osChoice string) error
}

// Service implements the Machine Registration API.
type Service struct {
	store    Store
	gateway  Gateway
	assigner Assigner
	bus      *eventbus.Bus
}

// New constructs a registration Service.
func New(store Store, gateway Gateway, assigner Assigner, bus *eventbus.Bus) *Service {
	return &Service{store: store, gateway: gateway, assigner: assigner, bus: bus}
}

// Register upserts the machine described by req, best-effort ensures its
// Hardware resource, emits a discovery event, and returns the response
// body the agent expects.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (models.RegisterResponse, error) {
	m, err := s.store.UpsertMachineByMAC(ctx, req)
	if err != nil {
		return models.RegisterResponse{}, fmt.Errorf("registration: upserting machine: %w", err)
	}

	if err := s.gateway.EnsureHardware(ctx, m); err != nil {
		slog.Warn("registration: failed to ensure hardware resource", "machine_id", m.ID, "error", err)
	}

	s.bus.Publish(eventbus.TypeMachineDiscovered, m.ID)

	if m.Status.Kind == models.StatusAwaitingAssignment {
		s.maybeAutoAssign(ctx, m.ID)
	}

	return models.RegisterResponse{MachineID: m.ID, NextStep: "awaiting_os_assignment"}, nil
}

// maybeAutoAssign invokes the OS Assignment Orchestrator when an
// operator has configured a default OS, so newly discovered machines
// don't sit idle waiting for a manual assignment.
func (s *Service) maybeAutoAssign(ctx context.Context, machineID string) {
	settings, err := s.store.GetAppSettings(ctx)
	if err != nil {
		slog.Warn("registration: failed to load app settings for auto-assign", "error", err)
		return
	}
	if settings.DefaultOS == nil || *settings.DefaultOS == "" {
		return
	}
	if err := s.assigner.Assign(ctx, machineID, *settings.DefaultOS); err != nil {
		slog.Warn("registration: auto-assign failed", "machine_id", machineID, "os", *settings.DefaultOS, "error", err)
	}
}
