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
	"encoding/json"
	"fmt"

	"dragonfly/pkg/models"
)

// LoadTemplateTimings returns every persisted (template, action) timing
// window, read once at startup to seed the in-memory estimator.
func (s *Store) LoadTemplateTimings(ctx context.Context) ([]models.TemplateTiming, error) {
	rows, err := s.conn.QueryContext(ctx, `SELECT template_name, action_name, durations FROM template_timings`)
	if err != nil {
		return nil, fmt.Errorf("store: load template timings: %w", err)
	}
	defer rows.Close()

	var timings []models.TemplateTiming
	for rows.Next() {
		var t models.TemplateTiming
		var durationsRaw string
		if err := rows.Scan(&t.TemplateName, &t.ActionName, &durationsRaw); err != nil {
			return nil, fmt.Errorf("store: scan template timing: %w", err)
		}
		if err := json.Unmarshal([]byte(durationsRaw), &t.Durations); err != nil {
			return nil, fmt.Errorf("store: unmarshal durations: %w", err)
		}
		timings = append(timings, t)
	}
	return timings, rows.Err()
}

// SaveTemplateTiming persists the full rolling window for one
// (template, action) pair, already trimmed to models.MaxTimingHistory by
// the caller.
func (s *Store) SaveTemplateTiming(ctx context.Context, template, action string, durations []int64) error {
	encoded, err := json.Marshal(durations)
	if err != nil {
		return fmt.Errorf("store: marshal durations: %w", err)
	}
	_, err = s.conn.ExecContext(ctx, `
		INSERT INTO template_timings (template_name, action_name, durations)
		VALUES (?, ?, ?)
		ON CONFLICT (template_name, action_name) DO UPDATE SET durations = excluded.durations`,
		template, action, string(encoded))
	if err != nil {
		return fmt.Errorf("store: save template timing: %w", err)
	}
	return nil
}

// TimingDatabaseStats summarizes the timing corpus for diagnostics.
type TimingDatabaseStats struct {
	TemplateCount int
	ActionCount   int
	SampleCount   int
}

// GetTimingDatabaseStats reports aggregate counts over the timing corpus.
func (s *Store) GetTimingDatabaseStats(ctx context.Context) (TimingDatabaseStats, error) {
	timings, err := s.LoadTemplateTimings(ctx)
	if err != nil {
		return TimingDatabaseStats{}, err
	}

	templates := make(map[string]struct{})
	var stats TimingDatabaseStats
	for _, t := range timings {
		templates[t.TemplateName] = struct{}{}
		stats.ActionCount++
		stats.SampleCount += len(t.Durations)
	}
	stats.TemplateCount = len(templates)
	return stats, nil
}
