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

package tinkerbell

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"dragonfly/internal/metrics"
	"dragonfly/pkg/models"
)

// EnsureHardware creates or merge-patches the Hardware resource for a
// machine. A missing Kubernetes connection is reported as an error;
// callers on the registration path may choose to log and continue rather
// than fail the whole request, since Tinkerbell registration is
// best-effort infrastructure plumbing, not the registration API's
// source of truth.
func (g *Gateway) EnsureHardware(ctx context.Context, m *models.Machine) (err error) {
	start := time.Now()
	defer func() { metrics.ObserveGatewayCall(metrics.OpEnsureHardware, time.Since(start), err) }()

	ctx, cancel := context.WithTimeout(ctx, apiTimeout)
	defer cancel()

	name := hardwareResourceName(m.MACAddress)
	hostname := name
	if m.Hostname != nil && *m.Hostname != "" {
		hostname = *m.Hostname
	}
	instanceID := name
	if m.MemorableName != "" {
		instanceID = m.MemorableName
	}

	disks := make([]any, 0, len(m.Disks))
	for _, d := range m.Disks {
		disks = append(disks, map[string]any{"device": d.Device})
	}
	nameservers := make([]any, 0, len(m.Nameservers))
	for _, ns := range m.Nameservers {
		nameservers = append(nameservers, ns)
	}

	obj := &unstructured.Unstructured{Object: map[string]any{
		"apiVersion": "tinkerbell.org/v1alpha1",
		"kind":       "Hardware",
		"metadata": map[string]any{
			"name":      name,
			"namespace": tinkNamespace,
		},
		"spec": map[string]any{
			"metadata": map[string]any{
				"instance": map[string]any{
					"id":       instanceID,
					"hostname": hostname,
				},
			},
			"disks": disks,
			"interfaces": []any{
				map[string]any{
					"dhcp": map[string]any{
						"arch":        "x86_64",
						"hostname":    hostname,
						"mac":         m.MACAddress,
						"leaseTime":   int64(86400),
						"nameServers": nameservers,
						"uefi":        true,
						"ip": map[string]any{
							"address": m.IPAddress,
						},
					},
					"netboot": map[string]any{
						"allowPXE":      true,
						"allowWorkflow": true,
					},
				},
			},
		},
	}}

	res := g.dynamic.Resource(hardwareGVR).Namespace(tinkNamespace)

	_, err = res.Get(ctx, name, metav1.GetOptions{})
	switch {
	case apierrors.IsNotFound(err):
		if _, err := res.Create(ctx, obj, metav1.CreateOptions{}); err != nil {
			return fmt.Errorf("tinkerbell: creating hardware %s: %w", name, err)
		}
		slog.Info("tinkerbell: created hardware resource", "name", name)
	case err != nil:
		return fmt.Errorf("tinkerbell: getting hardware %s: %w", name, err)
	default:
		patch, err := obj.MarshalJSON()
		if err != nil {
			return fmt.Errorf("tinkerbell: marshaling hardware patch: %w", err)
		}
		if _, err := res.Patch(ctx, name, mergePatchType, patch, metav1.PatchOptions{}); err != nil {
			return fmt.Errorf("tinkerbell: patching hardware %s: %w", name, err)
		}
		slog.Info("tinkerbell: updated hardware resource", "name", name)
	}
	return nil
}

// DeleteHardwareAndWorkflow best-effort deletes both the Hardware and
// Workflow resources for a machine's MAC address. Either or both being
// already absent is treated as success, matching the original's
// dual-delete tolerance for 404s from either resource.
func (g *Gateway) DeleteHardwareAndWorkflow(ctx context.Context, mac string) (err error) {
	start := time.Now()
	defer func() { metrics.ObserveGatewayCall(metrics.OpDeleteHardware, time.Since(start), err) }()

	ctx, cancel := context.WithTimeout(ctx, apiTimeout)
	defer cancel()

	hwErr := g.dynamic.Resource(hardwareGVR).Namespace(tinkNamespace).
		Delete(ctx, hardwareResourceName(mac), metav1.DeleteOptions{})
	wfErr := g.dynamic.Resource(workflowGVR).Namespace(tinkNamespace).
		Delete(ctx, workflowResourceName(mac), metav1.DeleteOptions{})

	hwOK := hwErr == nil || apierrors.IsNotFound(hwErr)
	wfOK := wfErr == nil || apierrors.IsNotFound(wfErr)

	if hwOK && wfOK {
		return nil
	}
	if !hwOK {
		return fmt.Errorf("tinkerbell: deleting hardware for %s: %w", mac, hwErr)
	}
	return fmt.Errorf("tinkerbell: deleting workflow for %s: %w", mac, wfErr)
}
