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

// Package assignment implements the OS Assignment Orchestrator: recording
// an operator's (or auto-assign's) OS choice, then driving the Tinkerbell
// Workflow resource that actually performs the install.
package assignment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"dragonfly/internal/eventbus"
	"dragonfly/internal/tinkerbell"
	"dragonfly/pkg/models"
)

// Store is the subset of the persistence store the orchestrator depends
// on.
type Store interface {
	AssignOS(ctx context.Context, id, osChoice string) error
	GetMachineByID(ctx context.Context, id string) (*models.Machine, error)
}

// Gateway is the subset of the Tinkerbell gateway the orchestrator
// depends on.
type Gateway interface {
	CreateOrUpdateWorkflow(ctx context.Context, m *models.Machine) error
}

// Service implements the OS Assignment Orchestrator.
type Service struct {
	store   Store
	gateway Gateway
	bus     *eventbus.Bus
}

// New constructs an assignment Service.
func New(store Store, gateway Gateway, bus *eventbus.Bus) *Service {
	return &Service{store: store, gateway: gateway, bus: bus}
}

// TemplateNotFoundError reports that the Workflow template an operator
// requested does not exist in the cluster. The database change (the
// recorded os_choice and InstallingOS status) is retained regardless,
// so a subsequent retry of workflow creation does not need to re-assign.
type TemplateNotFoundError struct {
	Template string
}

func (e *TemplateNotFoundError) Error() string {
	return fmt.Sprintf("assignment: template not found: %s", e.Template)
}

// Assign records osChoice for machineID and moves it to InstallingOS,
// then creates or updates the Tinkerbell Workflow that drives the
// install. A missing template is reported as a *TemplateNotFoundError so
// callers can surface it distinctly; the status change itself is never
// rolled back since the operator's choice is still valid once the
// template is created.
func (s *Service) Assign(ctx context.Context, machineID, osChoice string) error {
	if err := s.store.AssignOS(ctx, machineID, osChoice); err != nil {
		return fmt.Errorf("assignment: recording os choice: %w", err)
	}

	m, err := s.store.GetMachineByID(ctx, machineID)
	if err != nil {
		return fmt.Errorf("assignment: reloading machine: %w", err)
	}

	if err := s.gateway.CreateOrUpdateWorkflow(ctx, m); err != nil {
		if errors.Is(err, tinkerbell.ErrTemplateNotFound) {
			s.bus.Publish(eventbus.TypeMachineUpdated, m.ID)
			return &TemplateNotFoundError{Template: osChoice}
		}
		slog.Warn("assignment: failed to create or update workflow", "machine_id", m.ID, "os", osChoice, "error", err)
		s.bus.Publish(eventbus.TypeMachineUpdated, m.ID)
		return nil
	}

	s.bus.Publish(eventbus.TypeMachineUpdated, m.ID)
	return nil
}
