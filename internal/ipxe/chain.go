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

package ipxe

import (
	"errors"
	"net/http"

	"dragonfly/internal/store"
)

// ServeChainScript handles GET /{mac}: a booting machine's very first
// iPXE request. A known machine is chained to the HookOS installer
// script; an unknown one is chained to the Dragonfly Agent script, which
// registers it and reports back which OS to install.
func (s *Service) ServeChainScript(w http.ResponseWriter, r *http.Request, mac string) {
	if !macPattern.MatchString(mac) {
		http.Error(w, "malformed MAC address", http.StatusBadRequest)
		return
	}

	target := "dragonfly-agent.ipxe"
	_, err := s.machines.GetMachineByMAC(r.Context(), mac)
	switch {
	case err == nil:
		target = "hookos.ipxe"
	case errors.Is(err, store.ErrNotFound):
		// unknown machine, keep the agent target
	default:
		http.Error(w, "lookup failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.Header().Set("Content-Encoding", "identity")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("#!ipxe\nchain " + s.cfg.BaseURL + "/ipxe/" + target + "\n"))
}
