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

// Package poller periodically reconciles every machine mid-install against
// its Tinkerbell Workflow CRD: computing progress and ETA, detecting
// terminal states, and feeding completed-action timings back to the
// estimator.
package poller

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"dragonfly/internal/estimator"
	"dragonfly/internal/eventbus"
	"dragonfly/internal/metrics"
	"dragonfly/internal/tinkerbell"
	"dragonfly/pkg/models"
)

// Gateway is the subset of the tinkerbell package the poller depends on.
type Gateway interface {
	GetWorkflowStatus(ctx context.Context, mac string) (tinkerbell.WorkflowSnapshot, bool, error)
	DeleteWorkflow(ctx context.Context, mac string) error
}

// Store is the subset of the persistence store the poller depends on.
type Store interface {
	ListMachinesByStatus(ctx context.Context, kind models.MachineStatusKind) ([]models.Machine, error)
	UpdateInstallationProgress(ctx context.Context, id string, progress uint8, step *string) error
	UpdateStatus(ctx context.Context, id string, status models.MachineStatus) error
	UpdateOSInstalled(ctx context.Context, id, osInstalled string) error
	UpdateLastDeploymentDuration(ctx context.Context, id string, seconds int64) error
	StoreCompletedWorkflow(ctx context.Context, snapshot models.CompletedWorkflowSnapshot) error
}

// Config controls the poller's tick cadence.
type Config struct {
	// PollInterval is how often every InstallingOS machine is reconciled.
	PollInterval time.Duration
}

func (c Config) withDefaults() Config {
	if c.PollInterval <= 0 {
		c.PollInterval = 10 * time.Second
	}
	return c
}

// Poller drives the periodic reconciliation loop.
type Poller struct {
	store     Store
	gateway   Gateway
	estimator *estimator.Estimator
	bus       *eventbus.Bus
	cfg       Config
	now       func() time.Time
}

// New constructs a Poller.
func New(st Store, gw Gateway, est *estimator.Estimator, bus *eventbus.Bus, cfg Config) *Poller {
	return &Poller{
		store:     st,
		gateway:   gw,
		estimator: est,
		bus:       bus,
		cfg:       cfg.withDefaults(),
		now:       time.Now,
	}
}

// Run ticks every PollInterval until ctx is canceled, reconciling one
// machine at a time per tick so a slow cluster call never overlaps with
// itself for the same machine.
func (p *Poller) Run(ctx context.Context) {
	slog.Info("poller: starting", "interval", p.cfg.PollInterval)
	defer slog.Info("poller: stopped")

	ticker := time.NewTicker(p.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.tick(ctx)
		}
	}
}

// tick reconciles every currently-installing machine once. Errors for one
// machine are logged and do not stop the rest of the batch.
func (p *Poller) tick(ctx context.Context) {
	start := p.now()
	defer func() { metrics.ObservePollerTick(p.now().Sub(start)) }()

	machines, err := p.store.ListMachinesByStatus(ctx, models.StatusInstallingOS)
	if err != nil {
		slog.Error("poller: listing installing machines", "error", err)
		return
	}

	for _, m := range machines {
		if ctx.Err() != nil {
			return
		}
		if err := p.reconcileMachine(ctx, &m); err != nil {
			slog.Warn("poller: reconcile failed", "machine_id", m.ID, "error", err)
		}
	}
}

func (p *Poller) reconcileMachine(ctx context.Context, m *models.Machine) error {
	snap, found, err := p.gateway.GetWorkflowStatus(ctx, m.MACAddress)
	if err != nil {
		return fmt.Errorf("getting workflow status: %w", err)
	}
	if !found {
		return nil
	}

	now := p.now()
	if isKexecStalled(snap, now) {
		return p.handleKexecStall(ctx, m, snap)
	}

	progress := computeProgress(snap, p.estimator, now)

	stepCopy := progress.CurrentAction
	var step *string
	if stepCopy != "" {
		step = &stepCopy
	}
	if err := p.store.UpdateInstallationProgress(ctx, m.ID, progress.Percent, step); err != nil {
		return fmt.Errorf("updating installation progress: %w", err)
	}
	p.publishInstallStatus(m.ID, progress)

	switch {
	case progress.State == stateSuccess && progress.AllTasksSucceeded():
		return p.handleSuccess(ctx, m, progress)
	case progress.State == stateFailed:
		return p.handleFailure(ctx, m)
	}
	return nil
}

// isKexecStalled detects a workflow that's been sitting in STATE_RUNNING
// on the final kexec action for over kexecStallThreshold: in practice the
// machine has already booted into the installed OS and the Tinkerbell
// agent simply never reported completion.
func isKexecStalled(snap tinkerbell.WorkflowSnapshot, now time.Time) bool {
	if snap.State != stateRunning || snap.CurrentAction != kexecAction {
		return false
	}
	if len(snap.Tasks) == 0 {
		return false
	}
	last := snap.Tasks[len(snap.Tasks)-1]
	if last.Name != kexecAction || last.StartedAt == "" {
		return false
	}
	startedAt, err := time.Parse(time.RFC3339, last.StartedAt)
	if err != nil {
		return false
	}
	return now.Sub(startedAt) > kexecStallThreshold
}

func (p *Poller) handleKexecStall(ctx context.Context, m *models.Machine, snap tinkerbell.WorkflowSnapshot) error {
	slog.Info("poller: treating stalled kexec action as a successful boot", "machine_id", m.ID)

	synthetic := Progress{
		State:               stateSuccess,
		CurrentAction:       "Completed via kexec detection",
		Percent:             100,
		EstimatedCompletion: "Deployment complete",
		TemplateRef:         snap.TemplateRef,
	}
	if err := p.finishInstall(ctx, m, synthetic); err != nil {
		return err
	}
	if err := p.gateway.DeleteWorkflow(ctx, m.MACAddress); err != nil {
		slog.Warn("poller: failed to delete stalled workflow", "machine_id", m.ID, "error", err)
	}
	return nil
}

func (p *Poller) handleSuccess(ctx context.Context, m *models.Machine, progress Progress) error {
	durations := make(map[string]int64, len(progress.Tasks))
	for _, t := range progress.Tasks {
		if t.status == stateSuccess {
			durations[t.name] = t.reportedSeconds
		}
	}
	p.estimator.RecordWorkflowCompletion(ctx, progress.TemplateRef, durations)
	return p.finishInstall(ctx, m, progress)
}

func (p *Poller) finishInstall(ctx context.Context, m *models.Machine, progress Progress) error {
	osInstalled := progress.TemplateRef
	if m.OSChoice != nil && *m.OSChoice != "" {
		osInstalled = *m.OSChoice
	}
	if err := p.store.UpdateOSInstalled(ctx, m.ID, osInstalled); err != nil {
		return fmt.Errorf("marking os installed: %w", err)
	}

	if snapshotBytes, err := json.Marshal(progress); err == nil {
		_ = p.store.StoreCompletedWorkflow(ctx, models.CompletedWorkflowSnapshot{
			MachineID:       m.ID,
			WorkflowInfoRaw: snapshotBytes,
			CompletedAt:     p.now(),
		})
	}

	p.publishInstallStatus(m.ID, progress)
	p.bus.Publish(eventbus.TypeMachineUpdated, m.ID)
	return nil
}

func (p *Poller) handleFailure(ctx context.Context, m *models.Machine) error {
	status := models.NewErrorStatus("OS installation failed")
	if err := p.store.UpdateStatus(ctx, m.ID, status); err != nil {
		return fmt.Errorf("marking machine failed: %w", err)
	}
	p.bus.Publish(eventbus.TypeMachineUpdated, m.ID)
	return nil
}

func (p *Poller) publishInstallStatus(machineID string, progress Progress) {
	payload, err := json.Marshal(map[string]any{
		"machine_id":           machineID,
		"state":                progress.State,
		"current_action":       progress.CurrentAction,
		"progress":             progress.Percent,
		"estimated_completion": progress.EstimatedCompletion,
	})
	if err != nil {
		slog.Warn("poller: marshaling install status event", "error", err)
		return
	}
	p.bus.Publish(eventbus.TypeInstallStatus, string(payload))
}
