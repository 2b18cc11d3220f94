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

// Package metrics exposes the controller's Prometheus instrumentation:
// poller tick duration, Tinkerbell gateway call latency/errors, iPXE
// artifact cache hit/miss counts, and event-bus drop counts.
package metrics

import (
	"net/http"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	mu  sync.RWMutex
	reg *prometheus.Registry

	pollerTickDuration    *prometheus.HistogramVec
	gatewayCallDuration   *prometheus.HistogramVec
	gatewayCallErrors     *prometheus.CounterVec
	artifactCacheRequests *prometheus.CounterVec
	eventBusDrops         *prometheus.CounterVec
)

// Gateway call operation names.
const (
	OpEnsureHardware     = "ensure_hardware"
	OpDeleteHardware     = "delete_hardware_and_workflow"
	OpCreateOrUpdateFlow = "create_or_update_workflow"
	OpDeleteWorkflow     = "delete_workflow"
	OpGetWorkflowStatus  = "get_workflow_status"
	OpEnsureTemplate     = "ensure_template"
)

func init() {
	resetLocked()
}

// Reset clears and reinitializes all metrics collectors. Used by tests to
// ensure clean state between runs.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	resetLocked()
}

// Handler returns an HTTP handler exposing metrics in Prometheus format.
func Handler() http.Handler {
	mu.RLock()
	registry := reg
	mu.RUnlock()
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

// ObservePollerTick records how long one full poller tick took, covering
// every InstallingOS machine reconciled in that tick.
func ObservePollerTick(duration time.Duration) {
	mu.RLock()
	defer mu.RUnlock()
	if pollerTickDuration != nil {
		pollerTickDuration.WithLabelValues().Observe(durationSeconds(duration))
	}
}

// ObserveGatewayCall records one Tinkerbell dynamic-client call's latency
// and, on failure, increments the error counter for that operation.
func ObserveGatewayCall(op string, duration time.Duration, err error) {
	label := sanitizeLabel(op, "unknown")

	mu.RLock()
	defer mu.RUnlock()
	if gatewayCallDuration != nil {
		gatewayCallDuration.WithLabelValues(label).Observe(durationSeconds(duration))
	}
	if err != nil && gatewayCallErrors != nil {
		gatewayCallErrors.WithLabelValues(label).Inc()
	}
}

// ObserveArtifactCache records an iPXE artifact request as a cache hit or
// miss.
func ObserveArtifactCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}

	mu.RLock()
	defer mu.RUnlock()
	if artifactCacheRequests != nil {
		artifactCacheRequests.WithLabelValues(result).Inc()
	}
}

// IncEventBusDrop increments the drop counter for a slow subscriber on the
// named event type.
func IncEventBusDrop(eventType string) {
	label := sanitizeLabel(eventType, "unknown")

	mu.RLock()
	defer mu.RUnlock()
	if eventBusDrops != nil {
		eventBusDrops.WithLabelValues(label).Inc()
	}
}

func resetLocked() {
	registry := prometheus.NewRegistry()

	tickDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "dragonfly",
		Subsystem: "poller",
		Name:      "tick_duration_seconds",
		Help:      "Duration of one Workflow Poller tick across every InstallingOS machine.",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
	}, []string{})

	callDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "dragonfly",
		Subsystem: "tinkerbell",
		Name:      "gateway_call_duration_seconds",
		Help:      "Duration of Tinkerbell Gateway calls by operation.",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	}, []string{"op"})

	callErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dragonfly",
		Subsystem: "tinkerbell",
		Name:      "gateway_call_errors_total",
		Help:      "Total failed Tinkerbell Gateway calls by operation.",
	}, []string{"op"})

	cacheRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dragonfly",
		Subsystem: "ipxe",
		Name:      "artifact_cache_requests_total",
		Help:      "Total iPXE artifact requests by cache hit/miss.",
	}, []string{"result"})

	busDrops := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dragonfly",
		Subsystem: "eventbus",
		Name:      "dropped_events_total",
		Help:      "Total events dropped for slow subscribers, by event type.",
	}, []string{"event_type"})

	registry.MustRegister(tickDuration, callDuration, callErrors, cacheRequests, busDrops)

	reg = registry
	pollerTickDuration = tickDuration
	gatewayCallDuration = callDuration
	gatewayCallErrors = callErrors
	artifactCacheRequests = cacheRequests
	eventBusDrops = busDrops
}

func sanitizeLabel(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	var b strings.Builder
	for _, r := range v {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ':' || r == '.' || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

func durationSeconds(d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return d.Seconds()
}
