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
	"time"

	"dragonfly/internal/estimator"
	"dragonfly/internal/tinkerbell"
)

const (
	stateSuccess = "STATE_SUCCESS"
	stateFailed  = "STATE_FAILED"
	stateRunning = "STATE_RUNNING"

	kexecAction = "kexec to boot OS"

	// kexecStallThreshold is how long a workflow may sit in STATE_RUNNING
	// on the kexec action before it is assumed to have actually booted
	// successfully and the controller synthesizes a completion.
	kexecStallThreshold = 30 * time.Minute
)

// taskProgress is one action's contribution to the overall progress
// calculation, derived from a raw ActionSnapshot plus its estimated
// duration.
type taskProgress struct {
	name             string
	status           string
	startedAt        string
	reportedSeconds  int64
	estimatedSeconds int64
	seconds          int64 // reportedSeconds if complete, else estimatedSeconds
}

// Progress is the computed, human-facing view of a workflow's status,
// separate from the raw tinkerbell.WorkflowSnapshot it was derived from.
type Progress struct {
	State               string
	CurrentAction       string
	Percent             uint8
	EstimatedCompletion string
	TemplateRef         string
	Tasks               []taskProgress
}

// IsTerminal reports whether this progress represents a finished workflow.
func (p Progress) IsTerminal() bool {
	return p.State == stateSuccess || p.State == stateFailed
}

// AllTasksSucceeded reports whether every task in the snapshot finished
// successfully; only true when the workflow has tasks at all.
func (p Progress) AllTasksSucceeded() bool {
	if len(p.Tasks) == 0 {
		return false
	}
	for _, t := range p.Tasks {
		if t.status != stateSuccess {
			return false
		}
	}
	return true
}

// computeProgress ports the source controller's progress and ETA math: a
// 70/30 blend of time-based and task-based completion, with the currently
// running task's elapsed time capped at 1.5x its estimate.
func computeProgress(snap tinkerbell.WorkflowSnapshot, est *estimator.Estimator, now time.Time) Progress {
	progress := Progress{
		State:         snap.State,
		CurrentAction: snap.CurrentAction,
		TemplateRef:   snap.TemplateRef,
	}

	var (
		totalSeconds, completedSeconds int64
		runningTask                    *taskProgress
	)

	for _, a := range snap.Tasks {
		estimatedSeconds := a.Seconds
		if avg, ok := est.Average(snap.TemplateRef, a.Name); ok {
			estimatedSeconds = avg
		}

		seconds := estimatedSeconds
		if a.Status == stateSuccess {
			seconds = a.Seconds
		}

		tp := taskProgress{
			name:             a.Name,
			status:           a.Status,
			startedAt:        a.StartedAt,
			reportedSeconds:  a.Seconds,
			estimatedSeconds: estimatedSeconds,
			seconds:          seconds,
		}
		progress.Tasks = append(progress.Tasks, tp)

		totalSeconds += seconds
		if a.Status == stateSuccess {
			completedSeconds += seconds
		}
		if a.Status == stateRunning {
			t := tp
			runningTask = &t
		}
	}

	if totalSeconds > 0 {
		totalTasks := float64(len(progress.Tasks))
		completedTasks := 0.0
		for _, t := range progress.Tasks {
			if t.status == stateSuccess {
				completedTasks++
			}
		}
		taskBased := completedTasks / totalTasks * 100

		timeBased := float64(completedSeconds) / float64(totalSeconds) * 100
		if runningTask != nil && runningTask.startedAt != "" {
			if startedAt, err := time.Parse(time.RFC3339, runningTask.startedAt); err == nil {
				elapsed := now.Sub(startedAt).Seconds()
				expected := float64(runningTask.estimatedSeconds)
				cappedElapsed := min(elapsed, expected*1.5)

				ratio := 0.0
				if expected > 0 {
					ratio = cappedElapsed / expected
				}
				weight := expected / float64(totalSeconds)
				timeBased += weight * ratio * 100
			}
		}

		combined := timeBased*0.7 + taskBased*0.3
		combined = max(0, min(100, combined))
		progress.Percent = uint8(combined)
	}

	progress.EstimatedCompletion = estimateRemaining(progress, runningTask, now)
	return progress
}

// estimateRemaining mirrors the source's "look ahead to future tasks"
// behaviour: when the running task is nearly done, sum the remaining
// tasks' durations too instead of reporting a near-zero ETA.
func estimateRemaining(progress Progress, runningTask *taskProgress, now time.Time) string {
	if progress.IsTerminal() || len(progress.Tasks) == 0 || runningTask == nil || runningTask.startedAt == "" {
		return ""
	}

	startedAt, err := time.Parse(time.RFC3339, runningTask.startedAt)
	if err != nil {
		return ""
	}

	elapsed := int64(now.Sub(startedAt).Seconds())
	remaining := runningTask.estimatedSeconds - elapsed
	if remaining < 0 {
		remaining = 0
	}

	if remaining >= 10 {
		return formatRemainingTime(remaining)
	}

	total := remaining
	foundCurrent := false
	for _, t := range progress.Tasks {
		if foundCurrent {
			total += t.seconds
			continue
		}
		if t.name == runningTask.name && t.status == stateRunning {
			foundCurrent = true
		}
	}
	return formatRemainingTime(total)
}
