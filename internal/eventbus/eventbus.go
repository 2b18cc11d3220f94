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

// Package eventbus implements a process-local, multi-subscriber broadcast
// of short tagged strings ("machine_updated:<id>", "install_status:<json>").
// Publish is non-blocking: a subscriber that cannot keep up has frames
// dropped rather than stalling the publisher.
package eventbus

import (
	"log/slog"
	"sync"

	"dragonfly/internal/metrics"
)

// Recognized event type prefixes.
const (
	TypeMachineDiscovered = "machine_discovered"
	TypeMachineUpdated    = "machine_updated"
	TypeMachineDeleted    = "machine_deleted"
	TypeInstallStatus     = "install_status"
	TypeBrowserRedirect   = "browser_redirect"
)

// subscriberBuffer bounds how many frames a slow subscriber can queue
// before further publishes are dropped for it rather than blocking.
const subscriberBuffer = 100

// Bus is a singleton-by-construction broadcast channel. The zero value is
// not usable; construct with New.
type Bus struct {
	mu   sync.RWMutex
	subs map[chan string]struct{}

	lastInstallStatus string
	haveInstallStatus bool
}

// New constructs an empty Bus.
func New() *Bus {
	return &Bus{subs: make(map[chan string]struct{})}
}

// Subscribe registers a new listener. The returned channel is closed by
// Unsubscribe; callers must range over it until closed.
func (b *Bus) Subscribe() chan string {
	ch := make(chan string, subscriberBuffer)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes and closes a subscriber channel obtained from
// Subscribe. Safe to call more than once.
func (b *Bus) Unsubscribe(ch chan string) {
	b.mu.Lock()
	if _, ok := b.subs[ch]; ok {
		delete(b.subs, ch)
		close(ch)
	}
	b.mu.Unlock()
}

// Publish fans a frame "<eventType>:<data>" out to every live subscriber.
// It never blocks: a subscriber whose buffer is full has this frame
// dropped for it. Publishing with no subscribers is a no-op (log only).
func (b *Bus) Publish(eventType, data string) {
	frame := eventType + ":" + data

	if eventType == TypeInstallStatus {
		b.mu.Lock()
		b.lastInstallStatus = data
		b.haveInstallStatus = true
		b.mu.Unlock()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if len(b.subs) == 0 {
		slog.Debug("eventbus: no subscribers for event", "frame", frame)
		return
	}

	delivered := 0
	for ch := range b.subs {
		select {
		case ch <- frame:
			delivered++
		default:
			slog.Warn("eventbus: dropping frame for slow subscriber", "frame", frame)
			metrics.IncEventBusDrop(eventType)
		}
	}
	slog.Debug("eventbus: published", "frame", frame, "receivers", delivered)
}

// SubscriberCount returns the number of live subscribers, mainly for tests
// and diagnostics.
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// LastInstallStatus returns the most recently published install_status
// payload, if any has been published since the Bus was constructed. A new
// SSE subscriber replays this once before forwarding live frames, so a
// client connecting mid-install sees current state immediately instead of
// waiting for the next transition.
func (b *Bus) LastInstallStatus() (data string, ok bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastInstallStatus, b.haveInstallStatus
}
