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
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"dragonfly/internal/wordlist"
	"dragonfly/pkg/models"
)

const machineColumns = `id, mac_address, ip_address, hostname, os_choice, os_installed, status,
	disks, nameservers, memorable_name, bmc_address, bmc_username, bmc_password, bmc_type,
	installation_progress, installation_step, last_deployment_duration,
	cpu_model, cpu_cores, total_ram_bytes, proxmox_vmid, proxmox_node, is_proxmox_host,
	tags, created_at, updated_at`

// UpsertMachineByMAC registers a newly-seen machine or refreshes an
// existing one's hardware facts, keyed by MAC address. The machine ID is a
// UUIDv5 derived from the MAC so that it is stable across re-registration
// without a round-trip to the database. A brand-new machine reporting a
// Proxmox node but no VMID is treated as a Proxmox hypervisor host and
// marked ExistingOS rather than AwaitingAssignment, since it already runs
// an OS outside of this controller's control.
func (s *Store) UpsertMachineByMAC(ctx context.Context, req models.RegisterRequest) (*models.Machine, error) {
	machineID := uuid.NewSHA1(uuid.NameSpaceDNS, []byte(req.MACAddress)).String()
	memorableName := wordlist.FromMACSafe(req.MACAddress)

	disksJSON, err := json.Marshal(req.Disks)
	if err != nil {
		return nil, fmt.Errorf("store: marshal disks: %w", err)
	}
	nameserversJSON, err := json.Marshal(req.Nameservers)
	if err != nil {
		return nil, fmt.Errorf("store: marshal nameservers: %w", err)
	}

	isProxmoxHost := req.ProxmoxNode != nil && req.ProxmoxVMID == nil
	status := models.NewMachineStatus(models.StatusAwaitingAssignment)
	if req.ProxmoxVMID != nil || req.ProxmoxNode != nil {
		status = models.NewMachineStatus(models.StatusExistingOS)
	}

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var existingID string
	err = tx.QueryRowContext(ctx, `SELECT id FROM machines WHERE mac_address = ?`, req.MACAddress).Scan(&existingID)
	switch {
	case err == sql.ErrNoRows:
		_, err = tx.ExecContext(ctx, `
			INSERT INTO machines (
				id, mac_address, ip_address, hostname, status, disks, nameservers,
				memorable_name, cpu_model, cpu_cores, total_ram_bytes,
				proxmox_vmid, proxmox_node, is_proxmox_host
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			machineID, req.MACAddress, req.IPAddress, req.Hostname, status.Encode(),
			string(disksJSON), string(nameserversJSON), memorableName,
			req.CPUModel, req.CPUCores, req.TotalRAMBytes, req.ProxmoxVMID, req.ProxmoxNode, isProxmoxHost)
		if err != nil {
			return nil, fmt.Errorf("store: insert machine: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("store: check existing machine: %w", err)
	default:
		machineID = existingID
		_, err = tx.ExecContext(ctx, `
			UPDATE machines SET
				ip_address = ?, hostname = ?, disks = ?, nameservers = ?,
				memorable_name = ?, updated_at = CURRENT_TIMESTAMP,
				cpu_model = ?, cpu_cores = ?, total_ram_bytes = ?,
				proxmox_vmid = ?, proxmox_node = ?, is_proxmox_host = ?
			WHERE id = ?`,
			req.IPAddress, req.Hostname, string(disksJSON), string(nameserversJSON),
			memorableName, req.CPUModel, req.CPUCores, req.TotalRAMBytes,
			req.ProxmoxVMID, req.ProxmoxNode, isProxmoxHost, machineID)
		if err != nil {
			return nil, fmt.Errorf("store: update machine: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return s.GetMachineByID(ctx, machineID)
}

// GetMachineByID returns a machine by its stable ID, or ErrNotFound.
func (s *Store) GetMachineByID(ctx context.Context, id string) (*models.Machine, error) {
	return s.scanMachineRow(s.conn.QueryRowContext(ctx,
		`SELECT `+machineColumns+` FROM machines WHERE id = ?`, id))
}

// GetMachineByMAC returns a machine by MAC address, or ErrNotFound.
func (s *Store) GetMachineByMAC(ctx context.Context, mac string) (*models.Machine, error) {
	return s.scanMachineRow(s.conn.QueryRowContext(ctx,
		`SELECT `+machineColumns+` FROM machines WHERE mac_address = ?`, mac))
}

// GetMachineByIP returns a machine by its last-known IP address, or
// ErrNotFound.
func (s *Store) GetMachineByIP(ctx context.Context, ip string) (*models.Machine, error) {
	return s.scanMachineRow(s.conn.QueryRowContext(ctx,
		`SELECT `+machineColumns+` FROM machines WHERE ip_address = ?`, ip))
}

// GetMachineByProxmoxVMID returns the machine registered for a given
// Proxmox VMID, or ErrNotFound.
func (s *Store) GetMachineByProxmoxVMID(ctx context.Context, vmid uint32) (*models.Machine, error) {
	return s.scanMachineRow(s.conn.QueryRowContext(ctx,
		`SELECT `+machineColumns+` FROM machines WHERE proxmox_vmid = ?`, vmid))
}

// ListMachines returns every machine, ordered by creation time.
func (s *Store) ListMachines(ctx context.Context) ([]models.Machine, error) {
	rows, err := s.conn.QueryContext(ctx, `SELECT `+machineColumns+` FROM machines ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("store: list machines: %w", err)
	}
	defer rows.Close()
	return s.scanMachines(rows)
}

// ListMachinesByStatus returns every machine whose status kind matches.
// Status is stored JSON-encoded, so the filter is applied in Go rather
// than in SQL.
func (s *Store) ListMachinesByStatus(ctx context.Context, kind models.MachineStatusKind) ([]models.Machine, error) {
	all, err := s.ListMachines(ctx)
	if err != nil {
		return nil, err
	}
	var matched []models.Machine
	for _, m := range all {
		if m.Status.Kind == kind {
			matched = append(matched, m)
		}
	}
	return matched, nil
}

// ListProxmoxHosts returns every machine flagged as a Proxmox hypervisor.
func (s *Store) ListProxmoxHosts(ctx context.Context) ([]models.Machine, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT `+machineColumns+` FROM machines WHERE is_proxmox_host = true ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("store: list proxmox hosts: %w", err)
	}
	defer rows.Close()
	return s.scanMachines(rows)
}

// AssignOS records the chosen OS for a machine and moves it to
// InstallingOS. Returns ErrNotFound if the machine does not exist.
func (s *Store) AssignOS(ctx context.Context, id, osChoice string) error {
	status := models.NewMachineStatus(models.StatusInstallingOS)
	res, err := s.conn.ExecContext(ctx,
		`UPDATE machines SET os_choice = ?, status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		osChoice, status.Encode(), id)
	if err != nil {
		return fmt.Errorf("store: assign os: %w", err)
	}
	return requireRowsAffected(res)
}

// UpdateStatus sets a machine's status. Returns ErrNotFound if the
// machine does not exist.
func (s *Store) UpdateStatus(ctx context.Context, id string, status models.MachineStatus) error {
	res, err := s.conn.ExecContext(ctx,
		`UPDATE machines SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		status.Encode(), id)
	if err != nil {
		return fmt.Errorf("store: update status: %w", err)
	}
	return requireRowsAffected(res)
}

// UpdateHostname sets a machine's reported hostname.
func (s *Store) UpdateHostname(ctx context.Context, id, hostname string) error {
	res, err := s.conn.ExecContext(ctx,
		`UPDATE machines SET hostname = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		hostname, id)
	if err != nil {
		return fmt.Errorf("store: update hostname: %w", err)
	}
	return requireRowsAffected(res)
}

// UpdateIPAddress sets a machine's last-known IP address.
func (s *Store) UpdateIPAddress(ctx context.Context, id, ip string) error {
	res, err := s.conn.ExecContext(ctx,
		`UPDATE machines SET ip_address = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		ip, id)
	if err != nil {
		return fmt.Errorf("store: update ip address: %w", err)
	}
	return requireRowsAffected(res)
}

// UpdateMACAddress sets a machine's MAC address. Returns ErrConflict if
// another machine already owns the target MAC.
func (s *Store) UpdateMACAddress(ctx context.Context, id, mac string) error {
	existing, err := s.GetMachineByMAC(ctx, mac)
	if err != nil && err != ErrNotFound {
		return err
	}
	if existing != nil && existing.ID != id {
		return ErrConflict
	}
	res, err := s.conn.ExecContext(ctx,
		`UPDATE machines SET mac_address = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		mac, id)
	if err != nil {
		return fmt.Errorf("store: update mac address: %w", err)
	}
	return requireRowsAffected(res)
}

// UpdateNameservers replaces a machine's nameserver list.
func (s *Store) UpdateNameservers(ctx context.Context, id string, nameservers []string) error {
	encoded, err := json.Marshal(nameservers)
	if err != nil {
		return fmt.Errorf("store: marshal nameservers: %w", err)
	}
	res, err := s.conn.ExecContext(ctx,
		`UPDATE machines SET nameservers = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		string(encoded), id)
	if err != nil {
		return fmt.Errorf("store: update nameservers: %w", err)
	}
	return requireRowsAffected(res)
}

// UpdateOSInstalled records the OS a machine finished installing and
// transitions it to Ready.
func (s *Store) UpdateOSInstalled(ctx context.Context, id, osInstalled string) error {
	status := models.NewMachineStatus(models.StatusReady)
	res, err := s.conn.ExecContext(ctx,
		`UPDATE machines SET os_installed = ?, status = ?, installation_progress = 100, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		osInstalled, status.Encode(), id)
	if err != nil {
		return fmt.Errorf("store: update os installed: %w", err)
	}
	return requireRowsAffected(res)
}

// UpdateBMCCredentials sets or clears a machine's BMC access details.
func (s *Store) UpdateBMCCredentials(ctx context.Context, id string, creds *models.BMCCredentials) error {
	var address, username, password, bmcType sql.NullString
	if creds != nil {
		encrypted, err := s.encryptBMCPassword(creds.Password)
		if err != nil {
			return fmt.Errorf("store: encrypt bmc password: %w", err)
		}
		address = sql.NullString{String: creds.Address, Valid: true}
		username = sql.NullString{String: creds.Username, Valid: true}
		password = sql.NullString{String: encrypted, Valid: true}
		bmcType = sql.NullString{String: string(creds.Type), Valid: true}
	}
	res, err := s.conn.ExecContext(ctx,
		`UPDATE machines SET bmc_address = ?, bmc_username = ?, bmc_password = ?, bmc_type = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		address, username, password, bmcType, id)
	if err != nil {
		return fmt.Errorf("store: update bmc credentials: %w", err)
	}
	return requireRowsAffected(res)
}

// UpdateInstallationProgress records the Workflow Poller's latest
// progress percentage and current step description for a machine.
func (s *Store) UpdateInstallationProgress(ctx context.Context, id string, progress uint8, step *string) error {
	res, err := s.conn.ExecContext(ctx,
		`UPDATE machines SET installation_progress = ?, installation_step = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		progress, step, id)
	if err != nil {
		return fmt.Errorf("store: update installation progress: %w", err)
	}
	return requireRowsAffected(res)
}

// UpdateLastDeploymentDuration records how long the most recent install
// took, once it has finished.
func (s *Store) UpdateLastDeploymentDuration(ctx context.Context, id string, seconds int64) error {
	res, err := s.conn.ExecContext(ctx,
		`UPDATE machines SET last_deployment_duration = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		seconds, id)
	if err != nil {
		return fmt.Errorf("store: update last deployment duration: %w", err)
	}
	return requireRowsAffected(res)
}

// GetTags returns a machine's tags.
func (s *Store) GetTags(ctx context.Context, id string) ([]string, error) {
	m, err := s.GetMachineByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return m.Tags, nil
}

// UpdateTags replaces a machine's tags.
func (s *Store) UpdateTags(ctx context.Context, id string, tags []string) error {
	encoded, err := json.Marshal(tags)
	if err != nil {
		return fmt.Errorf("store: marshal tags: %w", err)
	}
	res, err := s.conn.ExecContext(ctx,
		`UPDATE machines SET tags = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		string(encoded), id)
	if err != nil {
		return fmt.Errorf("store: update tags: %w", err)
	}
	return requireRowsAffected(res)
}

// DeleteMachine removes a machine record. Returns ErrNotFound if it does
// not exist.
func (s *Store) DeleteMachine(ctx context.Context, id string) error {
	res, err := s.conn.ExecContext(ctx, `DELETE FROM machines WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete machine: %w", err)
	}
	return requireRowsAffected(res)
}

func requireRowsAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *Store) scanMachineRow(row rowScanner) (*models.Machine, error) {
	m, err := scanMachine(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: scan machine: %w", err)
	}
	if err := s.decryptMachineBMCPassword(m); err != nil {
		return nil, err
	}
	return m, nil
}

// decryptMachineBMCPassword reverses encryptBMCPassword on a scanned
// machine's BMC credentials in place, if any are set.
func (s *Store) decryptMachineBMCPassword(m *models.Machine) error {
	if m.BMCCredentials == nil {
		return nil
	}
	plain, err := s.decryptBMCPassword(m.BMCCredentials.Password)
	if err != nil {
		return fmt.Errorf("store: decrypt bmc password: %w", err)
	}
	m.BMCCredentials.Password = plain
	return nil
}

func (s *Store) scanMachines(rows *sql.Rows) ([]models.Machine, error) {
	var machines []models.Machine
	for rows.Next() {
		m, err := scanMachine(rows)
		if err != nil {
			return nil, fmt.Errorf("store: scan machine: %w", err)
		}
		if err := s.decryptMachineBMCPassword(m); err != nil {
			return nil, err
		}
		machines = append(machines, *m)
	}
	return machines, rows.Err()
}

func scanMachine(row rowScanner) (*models.Machine, error) {
	var (
		m                                                       models.Machine
		statusRaw, disksRaw, nameserversRaw, tagsRaw             string
		bmcAddress, bmcUsername, bmcPassword, bmcType           sql.NullString
		hostname, osChoice, osInstalled, installationStep        sql.NullString
		cpuModel, proxmoxNode                                   sql.NullString
		lastDeploymentSecs, cpuCores                             sql.NullInt64
		totalRAMBytes                                            sql.NullInt64
		proxmoxVMID                                              sql.NullInt64
	)

	if err := row.Scan(
		&m.ID, &m.MACAddress, &m.IPAddress, &hostname, &osChoice, &osInstalled, &statusRaw,
		&disksRaw, &nameserversRaw, &m.MemorableName, &bmcAddress, &bmcUsername, &bmcPassword, &bmcType,
		&m.InstallationProgress, &installationStep, &lastDeploymentSecs,
		&cpuModel, &cpuCores, &totalRAMBytes, &proxmoxVMID, &proxmoxNode, &m.IsProxmoxHost,
		&tagsRaw, &m.CreatedAt, &m.UpdatedAt,
	); err != nil {
		return nil, err
	}

	m.Status = models.ParseMachineStatus(statusRaw)
	if err := json.Unmarshal([]byte(disksRaw), &m.Disks); err != nil {
		return nil, fmt.Errorf("unmarshal disks: %w", err)
	}
	if err := json.Unmarshal([]byte(nameserversRaw), &m.Nameservers); err != nil {
		return nil, fmt.Errorf("unmarshal nameservers: %w", err)
	}
	if tagsRaw != "" {
		if err := json.Unmarshal([]byte(tagsRaw), &m.Tags); err != nil {
			return nil, fmt.Errorf("unmarshal tags: %w", err)
		}
	}

	m.Hostname = nullStringPtr(hostname)
	m.OSChoice = nullStringPtr(osChoice)
	m.OSInstalled = nullStringPtr(osInstalled)
	m.InstallationStep = nullStringPtr(installationStep)
	m.CPUModel = nullStringPtr(cpuModel)
	m.ProxmoxNode = nullStringPtr(proxmoxNode)

	if cpuCores.Valid {
		cores := int(cpuCores.Int64)
		m.CPUCores = &cores
	}
	if totalRAMBytes.Valid {
		ram := uint64(totalRAMBytes.Int64)
		m.TotalRAMBytes = &ram
	}
	if proxmoxVMID.Valid {
		vmid := uint32(proxmoxVMID.Int64)
		m.ProxmoxVMID = &vmid
	}
	if lastDeploymentSecs.Valid {
		m.LastDeploymentSecs = &lastDeploymentSecs.Int64
	}

	if bmcAddress.Valid {
		m.BMCCredentials = &models.BMCCredentials{
			Address:  bmcAddress.String,
			Username: bmcUsername.String,
			Password: bmcPassword.String,
			Type:     models.BMCType(bmcType.String),
		}
	}

	return &m, nil
}

func nullStringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}
