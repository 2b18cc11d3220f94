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
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"dragonfly/internal/assignment"
	"dragonfly/internal/store"
	"dragonfly/pkg/crypto"
	"dragonfly/pkg/models"
)

func (h *handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if req.MACAddress == "" {
		writeError(w, http.StatusBadRequest, "mac_address is required")
		return
	}

	resp, err := h.d.Registrar.Register(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to register machine")
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *handler) handleListMachines(w http.ResponseWriter, r *http.Request) {
	machines, err := h.d.Store.ListMachines(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list machines")
		return
	}
	writeJSON(w, http.StatusOK, machines)
}

func (h *handler) handleGetMachine(w http.ResponseWriter, r *http.Request) {
	m, err := h.d.Store.GetMachineByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeMachineLookupError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// handleUpdateMachine applies a PUT with whichever machine fields are
// present; unlike the single-field POST mutators this accepts a partial
// update of hostname, ip_address, mac_address, and nameservers together.
func (h *handler) handleUpdateMachine(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var body struct {
		Hostname    *string  `json:"hostname"`
		IPAddress   *string  `json:"ip_address"`
		MACAddress  *string  `json:"mac_address"`
		Nameservers []string `json:"nameservers"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	ctx := r.Context()
	if body.Hostname != nil {
		if err := h.d.Store.UpdateHostname(ctx, id, *body.Hostname); err != nil {
			writeMachineLookupError(w, err)
			return
		}
	}
	if body.IPAddress != nil {
		if err := h.d.Store.UpdateIPAddress(ctx, id, *body.IPAddress); err != nil {
			writeMachineLookupError(w, err)
			return
		}
	}
	if body.MACAddress != nil {
		if err := h.d.Store.UpdateMACAddress(ctx, id, *body.MACAddress); err != nil {
			if errors.Is(err, store.ErrConflict) {
				writeError(w, http.StatusConflict, "mac address already belongs to another machine")
				return
			}
			writeMachineLookupError(w, err)
			return
		}
	}
	if body.Nameservers != nil {
		if err := h.d.Store.UpdateNameservers(ctx, id, body.Nameservers); err != nil {
			writeMachineLookupError(w, err)
			return
		}
	}

	m, err := h.d.Store.GetMachineByID(ctx, id)
	if err != nil {
		writeMachineLookupError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *handler) handleDeleteMachine(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	m, err := h.d.Store.GetMachineByID(r.Context(), id)
	if err != nil {
		writeMachineLookupError(w, err)
		return
	}

	if err := h.d.Gateway.DeleteHardwareAndWorkflow(r.Context(), m.MACAddress); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete tinkerbell resources")
		return
	}
	if err := h.d.Store.DeleteMachine(r.Context(), id); err != nil {
		writeMachineLookupError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleAssignOS accepts either application/json {os_choice} or
// application/x-www-form-urlencoded os_choice=... per the HTTP surface
// bit-level spec.
func (h *handler) handleAssignOS(w http.ResponseWriter, r *http.Request) {
	osChoice, err := readOSChoice(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id := r.PathValue("id")
	if err := h.d.Assigner.Assign(r.Context(), id, osChoice); err != nil {
		var tnf *assignment.TemplateNotFoundError
		if errors.As(err, &tnf) {
			writeError(w, http.StatusUnprocessableEntity, tnf.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to assign os")
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func readOSChoice(r *http.Request) (string, error) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/json") {
		var body struct {
			OSChoice string `json:"os_choice"`
		}
		if err := decodeJSON(r, &body); err != nil {
			return "", errors.New("malformed request body")
		}
		if body.OSChoice == "" {
			return "", errors.New("os_choice is required")
		}
		return body.OSChoice, nil
	}

	if err := r.ParseForm(); err != nil {
		return "", errors.New("malformed form body")
	}
	osChoice := r.PostFormValue("os_choice")
	if osChoice == "" {
		return "", errors.New("os_choice is required")
	}
	return osChoice, nil
}

func (h *handler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(r, &body); err != nil || body.Status == "" {
		writeError(w, http.StatusBadRequest, "status is required")
		return
	}
	status := models.NewMachineStatus(models.MachineStatusKind(body.Status))
	if err := h.d.Store.UpdateStatus(r.Context(), r.PathValue("id"), status); err != nil {
		writeMachineLookupError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) handleUpdateHostname(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Hostname string `json:"hostname"`
	}
	if err := decodeJSON(r, &body); err != nil || body.Hostname == "" {
		writeError(w, http.StatusBadRequest, "hostname is required")
		return
	}
	if err := h.d.Store.UpdateHostname(r.Context(), r.PathValue("id"), body.Hostname); err != nil {
		writeMachineLookupError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) handleUpdateOSInstalled(w http.ResponseWriter, r *http.Request) {
	var body struct {
		OSInstalled string `json:"os_installed"`
	}
	if err := decodeJSON(r, &body); err != nil || body.OSInstalled == "" {
		writeError(w, http.StatusBadRequest, "os_installed is required")
		return
	}
	if err := h.d.Store.UpdateOSInstalled(r.Context(), r.PathValue("id"), body.OSInstalled); err != nil {
		writeMachineLookupError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) handleUpdateBMC(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Address  string `json:"address"`
		Username string `json:"username"`
		Password string `json:"password"`
		Type     string `json:"bmc_type"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	creds := &models.BMCCredentials{
		Address:  body.Address,
		Username: body.Username,
		Password: body.Password,
		Type:     models.BMCType(body.Type),
	}
	if err := h.d.Store.UpdateBMCCredentials(r.Context(), r.PathValue("id"), creds); err != nil {
		writeMachineLookupError(w, err)
		return
	}
	slog.Info("httpapi: updated BMC credentials",
		"machine_id", r.PathValue("id"),
		"bmc_type", body.Type,
		"address", crypto.RedactSecret(body.Address),
		"password", crypto.RedactPassword(body.Password))
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) handleUpdateProgress(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Progress int     `json:"progress"`
		Step     *string `json:"step"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if err := h.d.Progress.Update(r.Context(), r.PathValue("id"), body.Progress, body.Step); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "machine not found")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) handleUpdateTags(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Tags []string `json:"tags"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if err := h.d.Store.UpdateTags(r.Context(), r.PathValue("id"), body.Tags); err != nil {
		writeMachineLookupError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeMachineLookupError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "machine not found")
		return
	}
	writeError(w, http.StatusInternalServerError, "internal error")
}
