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

package estimator

import (
	"context"
	"testing"

	"dragonfly/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestAverageNoData(t *testing.T) {
	e := New(newTestStore(t))
	if _, ok := e.Average("ubuntu-2204", "kexec to boot OS"); ok {
		t.Fatal("expected no average with an empty estimator")
	}
}

func TestAverageExactTemplateMatch(t *testing.T) {
	ctx := context.Background()
	e := New(newTestStore(t))

	if err := e.Record(ctx, "ubuntu-2204", "stream image", 100); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := e.Record(ctx, "ubuntu-2204", "stream image", 200); err != nil {
		t.Fatalf("Record: %v", err)
	}

	avg, ok := e.Average("ubuntu-2204", "stream image")
	if !ok {
		t.Fatal("expected an average")
	}
	if avg != 150 {
		t.Fatalf("expected average 150, got %d", avg)
	}
}

func TestAverageFallsBackToOtherTemplate(t *testing.T) {
	ctx := context.Background()
	e := New(newTestStore(t))

	if err := e.Record(ctx, "debian-12", "kexec to boot OS", 90); err != nil {
		t.Fatalf("Record: %v", err)
	}

	avg, ok := e.Average("ubuntu-2204", "kexec to boot OS")
	if !ok {
		t.Fatal("expected a cross-template fallback average")
	}
	if avg != 90 {
		t.Fatalf("expected average 90, got %d", avg)
	}
}

func TestRecordTrimsToMaxHistory(t *testing.T) {
	ctx := context.Background()
	e := New(newTestStore(t))

	for i := 0; i < 60; i++ {
		if err := e.Record(ctx, "ubuntu-2204", "stream image", int64(i)); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	e.mu.RLock()
	durations := e.timings["ubuntu-2204"]["stream image"]
	e.mu.RUnlock()

	if len(durations) != 50 {
		t.Fatalf("expected window trimmed to 50 entries, got %d", len(durations))
	}
	if durations[0] != 10 {
		t.Fatalf("expected oldest surviving entry to be 10, got %d", durations[0])
	}
}

func TestLoadSeedsFromStore(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	seed := New(st)
	if err := seed.Record(ctx, "ubuntu-2204", "reboot", 42); err != nil {
		t.Fatalf("Record: %v", err)
	}

	fresh := New(st)
	if err := fresh.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	avg, ok := fresh.Average("ubuntu-2204", "reboot")
	if !ok || avg != 42 {
		t.Fatalf("expected loaded average 42, got %d ok=%v", avg, ok)
	}
}
