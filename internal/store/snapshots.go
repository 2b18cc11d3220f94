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

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"dragonfly/pkg/models"
)

// StoreCompletedWorkflow caches the terminal workflow-info payload for a
// machine so the UI can keep showing it for CompletedWorkflowGrace after
// the underlying Workflow CRD has been deleted.
func (s *Store) StoreCompletedWorkflow(ctx context.Context, snapshot models.CompletedWorkflowSnapshot) error {
	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO completed_workflows (machine_id, workflow_info, completed_at)
		VALUES (?, ?, ?)
		ON CONFLICT (machine_id) DO UPDATE SET workflow_info = excluded.workflow_info, completed_at = excluded.completed_at`,
		snapshot.MachineID, string(snapshot.WorkflowInfoRaw), snapshot.CompletedAt)
	if err != nil {
		return fmt.Errorf("store: store completed workflow: %w", err)
	}
	return nil
}

// GetCompletedWorkflow returns the cached snapshot for a machine if it is
// still within CompletedWorkflowGrace, and ErrNotFound otherwise (either
// no snapshot exists, or it has aged out).
func (s *Store) GetCompletedWorkflow(ctx context.Context, machineID string) (models.CompletedWorkflowSnapshot, error) {
	var (
		snapshot  models.CompletedWorkflowSnapshot
		infoRaw   string
	)
	err := s.conn.QueryRowContext(ctx,
		`SELECT machine_id, workflow_info, completed_at FROM completed_workflows WHERE machine_id = ?`, machineID,
	).Scan(&snapshot.MachineID, &infoRaw, &snapshot.CompletedAt)
	if err == sql.ErrNoRows {
		return models.CompletedWorkflowSnapshot{}, ErrNotFound
	}
	if err != nil {
		return models.CompletedWorkflowSnapshot{}, fmt.Errorf("store: get completed workflow: %w", err)
	}
	snapshot.WorkflowInfoRaw = []byte(infoRaw)

	if time.Since(snapshot.CompletedAt) > models.CompletedWorkflowGrace {
		return models.CompletedWorkflowSnapshot{}, ErrNotFound
	}
	return snapshot, nil
}

// PruneCompletedWorkflows deletes snapshots older than CompletedWorkflowGrace.
// Intended to be called periodically; stale rows are also simply ignored by
// GetCompletedWorkflow, so this is housekeeping rather than correctness.
func (s *Store) PruneCompletedWorkflows(ctx context.Context) error {
	cutoff := time.Now().Add(-models.CompletedWorkflowGrace)
	_, err := s.conn.ExecContext(ctx, `DELETE FROM completed_workflows WHERE completed_at < ?`, cutoff)
	if err != nil {
		return fmt.Errorf("store: prune completed workflows: %w", err)
	}
	return nil
}
