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

// Package progress implements the Installation Progress Receiver: the
// agent-facing counterpart to the Workflow Poller's own internally
// computed progress, letting an in-flight install report finer-grained
// status than Tinkerbell's action-level state machine exposes.
package progress

import (
	"context"
	"fmt"

	"dragonfly/internal/eventbus"
)

// Store is the subset of the persistence store the receiver depends on.
type Store interface {
	UpdateInstallationProgress(ctx context.Context, id string, progress uint8, step *string) error
}

// Service implements the Installation Progress Receiver.
type Service struct {
	store Store
	bus   *eventbus.Bus
}

// New constructs a progress Service.
func New(store Store, bus *eventbus.Bus) *Service {
	return &Service{store: store, bus: bus}
}

// Update records a new progress percentage and optional step label for
// machineID, bumping updated_at once, and announces the change.
// Returns an error if progress is out of [0, 100].
func (s *Service) Update(ctx context.Context, machineID string, progress int, step *string) error {
	if progress < 0 || progress > 100 {
		return fmt.Errorf("progress: value %d out of range [0, 100]", progress)
	}

	if err := s.store.UpdateInstallationProgress(ctx, machineID, uint8(progress), step); err != nil {
		return fmt.Errorf("progress: updating machine %s: %w", machineID, err)
	}

	s.bus.Publish(eventbus.TypeMachineUpdated, machineID)
	return nil
}
