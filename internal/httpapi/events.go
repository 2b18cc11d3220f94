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

package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"dragonfly/internal/eventbus"
)

const sseKeepAlive = 15 * time.Second

// handleEvents serves the single SSE endpoint every event type fans out
// through. On connect, a cached install_status payload (if any) is
// replayed immediately so a client that connects mid-install sees
// current state without waiting for the next transition; thereafter bus
// frames are forwarded as they're published, and a keep-alive comment is
// sent every 15s so idle connections aren't reaped by intermediaries.
func (h *handler) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	ch := h.d.Bus.Subscribe()
	defer h.d.Bus.Unsubscribe(ch)

	if data, ok := h.d.Bus.LastInstallStatus(); ok {
		writeSSEFrame(w, eventbus.TypeInstallStatus, data)
		flusher.Flush()
	}

	ticker := time.NewTicker(sseKeepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		case frame, ok := <-ch:
			if !ok {
				return
			}
			eventType, data, found := strings.Cut(frame, ":")
			if !found {
				continue
			}
			writeSSEFrame(w, eventType, data)
			flusher.Flush()
		}
	}
}

// handleInstallStatus returns the most recently published install_status
// payload as a plain JSON response, for clients polling instead of
// holding an SSE connection open. If no install is in progress yet, it
// reports a NotInstalling placeholder rather than 404.
func (h *handler) handleInstallStatus(w http.ResponseWriter, r *http.Request) {
	if data, ok := h.d.Bus.LastInstallStatus(); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, data)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "NotInstalling",
		"message": "dragonfly is not currently installing",
	})
}

// writeSSEFrame formats one event per the wire types: machine events are
// wrapped as {"id": ...}, install_status/browser_redirect data is passed
// through as-is since it is already JSON.
func writeSSEFrame(w http.ResponseWriter, eventType, data string) {
	switch eventType {
	case eventbus.TypeMachineDiscovered, eventbus.TypeMachineUpdated, eventbus.TypeMachineDeleted:
		payload, err := json.Marshal(map[string]string{"id": data})
		if err != nil {
			return
		}
		fmt.Fprintf(w, "event: %s\ndata: %s\n\n", eventType, payload)
	default:
		fmt.Fprintf(w, "event: %s\ndata: %s\n\n", eventType, data)
	}
}
