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

// Package estimator keeps a per-(template, action) rolling window of
// observed task durations in memory, backed by the persistence store, and
// answers average-duration lookups for the Workflow Poller's progress and
// ETA math.
package estimator

import (
	"context"
	"log/slog"
	"sync"

	"dragonfly/internal/store"
	"dragonfly/pkg/models"
)

// Estimator is safe for concurrent use. Reads are the hot path (every
// poller tick, every action); writes happen once per completed workflow.
type Estimator struct {
	mu      sync.RWMutex
	timings map[string]map[string][]int64 // template -> action -> durations

	store *store.Store
}

// New constructs an empty Estimator; call Load to seed it from the store.
func New(st *store.Store) *Estimator {
	return &Estimator{
		timings: make(map[string]map[string][]int64),
		store:   st,
	}
}

// Load populates the in-memory map from the persistence store. Call once
// at startup.
func (e *Estimator) Load(ctx context.Context) error {
	rows, err := e.store.LoadTemplateTimings(ctx)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	for _, row := range rows {
		actions, ok := e.timings[row.TemplateName]
		if !ok {
			actions = make(map[string][]int64)
			e.timings[row.TemplateName] = actions
		}
		actions[row.ActionName] = row.Durations
	}
	slog.Info("estimator: loaded historical timings", "templates", len(e.timings))
	return nil
}

// Average implements the three-tier lookup rule from the spec: an exact
// (template, action) match, else a fallback to any template with data for
// the action, else none.
func (e *Estimator) Average(template, action string) (int64, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if actions, ok := e.timings[template]; ok {
		if avg, ok := mean(actions[action]); ok {
			return avg, true
		}
	}

	for tmpl, actions := range e.timings {
		if tmpl == template {
			continue
		}
		if avg, ok := mean(actions[action]); ok {
			return avg, true
		}
	}
	return 0, false
}

func mean(durations []int64) (int64, bool) {
	if len(durations) == 0 {
		return 0, false
	}
	var sum int64
	for _, d := range durations {
		sum += d
	}
	return sum / int64(len(durations)), true
}

// Record appends one observed duration for (template, action), trims the
// window to models.MaxTimingHistory, and persists it.
func (e *Estimator) Record(ctx context.Context, template, action string, durationSeconds int64) error {
	e.mu.Lock()
	actions, ok := e.timings[template]
	if !ok {
		actions = make(map[string][]int64)
		e.timings[template] = actions
	}
	durations := append(actions[action], durationSeconds)
	if len(durations) > models.MaxTimingHistory {
		durations = durations[len(durations)-models.MaxTimingHistory:]
	}
	actions[action] = durations
	snapshot := append([]int64(nil), durations...)
	e.mu.Unlock()

	return e.store.SaveTemplateTiming(ctx, template, action, snapshot)
}

// RecordWorkflowCompletion appends every action's observed duration for a
// fully-succeeded workflow, one Record call per action.
func (e *Estimator) RecordWorkflowCompletion(ctx context.Context, template string, actionDurations map[string]int64) {
	for action, seconds := range actionDurations {
		if err := e.Record(ctx, template, action, seconds); err != nil {
			slog.Warn("estimator: failed to persist timing", "template", template, "action", action, "error", err)
		}
	}
}
