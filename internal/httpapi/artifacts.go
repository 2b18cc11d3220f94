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

import "net/http"

func (h *handler) handleChainScript(w http.ResponseWriter, r *http.Request) {
	h.d.Artifacts.ServeChainScript(w, r, r.PathValue("mac"))
}

func (h *handler) handleArtifact(w http.ResponseWriter, r *http.Request) {
	h.d.Artifacts.ServeArtifact(w, r, r.PathValue("path"))
}

func (h *handler) handleHeartbeat(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
