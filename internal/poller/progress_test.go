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

package poller

import (
	"context"
	"testing"
	"time"

	"dragonfly/internal/estimator"
	"dragonfly/internal/store"
	"dragonfly/internal/tinkerbell"
)

func newTestEstimator(t *testing.T) *estimator.Estimator {
	t.Helper()
	st, err := store.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return estimator.New(st)
}

func TestComputeProgressAllSucceeded(t *testing.T) {
	est := newTestEstimator(t)
	now := time.Date(2026, 1, 1, 0, 10, 0, 0, time.UTC)
	snap := tinkerbell.WorkflowSnapshot{
		TemplateRef:   "ubuntu-2204",
		State:         stateSuccess,
		CurrentAction: "",
		Tasks: []tinkerbell.ActionSnapshot{
			{Name: "stream image", Status: stateSuccess, Seconds: 120},
			{Name: "kexec to boot OS", Status: stateSuccess, Seconds: 10},
		},
	}

	progress := computeProgress(snap, est, now)
	if progress.Percent != 100 {
		t.Fatalf("expected 100%%, got %d", progress.Percent)
	}
	if !progress.AllTasksSucceeded() {
		t.Fatal("expected AllTasksSucceeded true")
	}
}

func TestComputeProgressRunningTaskPartialCredit(t *testing.T) {
	est := newTestEstimator(t)
	startedAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	now := startedAt.Add(30 * time.Second)

	snap := tinkerbell.WorkflowSnapshot{
		TemplateRef:   "ubuntu-2204",
		State:         stateRunning,
		CurrentAction: "stream image",
		Tasks: []tinkerbell.ActionSnapshot{
			{Name: "netboot", Status: stateSuccess, Seconds: 30},
			{
				Name:      "stream image",
				Status:    stateRunning,
				StartedAt: startedAt.Format(time.RFC3339),
				Seconds:   120,
			},
		},
	}

	progress := computeProgress(snap, est, now)
	if progress.Percent == 0 || progress.Percent >= 100 {
		t.Fatalf("expected partial progress between 0 and 100, got %d", progress.Percent)
	}
	if progress.EstimatedCompletion == "" {
		t.Fatal("expected a non-empty ETA string for a running task")
	}
}

func TestComputeProgressFailedState(t *testing.T) {
	est := newTestEstimator(t)
	now := time.Now()
	snap := tinkerbell.WorkflowSnapshot{
		TemplateRef:   "ubuntu-2204",
		State:         stateFailed,
		CurrentAction: "stream image",
		Tasks: []tinkerbell.ActionSnapshot{
			{Name: "stream image", Status: stateFailed, Seconds: 5},
		},
	}

	progress := computeProgress(snap, est, now)
	if progress.State != stateFailed {
		t.Fatalf("expected failed state, got %s", progress.State)
	}
	if !progress.IsTerminal() {
		t.Fatal("expected IsTerminal true for a failed workflow")
	}
}

func TestComputeProgressNearDoneLooksAhead(t *testing.T) {
	est := newTestEstimator(t)
	startedAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	// Running task is at 118s of an estimated 120s: 2s remaining, under the
	// 10s lookahead threshold, so the ETA should fold in the next task too.
	now := startedAt.Add(118 * time.Second)

	snap := tinkerbell.WorkflowSnapshot{
		TemplateRef:   "ubuntu-2204",
		State:         stateRunning,
		CurrentAction: "stream image",
		Tasks: []tinkerbell.ActionSnapshot{
			{
				Name:      "stream image",
				Status:    stateRunning,
				StartedAt: startedAt.Format(time.RFC3339),
				Seconds:   120,
			},
			{Name: "kexec to boot OS", Status: "STATE_PENDING", Seconds: 10},
		},
	}

	progress := computeProgress(snap, est, now)
	if progress.EstimatedCompletion != "Less than a minute remaining" {
		t.Fatalf("expected lookahead ETA, got %q", progress.EstimatedCompletion)
	}
}

func TestIsKexecStalled(t *testing.T) {
	startedAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	snap := tinkerbell.WorkflowSnapshot{
		State:         stateRunning,
		CurrentAction: kexecAction,
		Tasks: []tinkerbell.ActionSnapshot{
			{Name: kexecAction, Status: stateRunning, StartedAt: startedAt.Format(time.RFC3339)},
		},
	}

	if isKexecStalled(snap, startedAt.Add(5*time.Minute)) {
		t.Fatal("expected not stalled after only 5 minutes")
	}
	if !isKexecStalled(snap, startedAt.Add(31*time.Minute)) {
		t.Fatal("expected stalled after 31 minutes")
	}
}
