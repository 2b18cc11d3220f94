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

// ErrTemplateNotFound is returned by CreateOrUpdateWorkflow when the
// referenced template does not exist in the cluster; callers should
// surface this distinctly from a generic API error since it usually means
// an operator needs to create the template, not that the cluster is down.
var ErrTemplateNotFound = fmt.Errorf("tinkerbell: template not found")

// CreateOrUpdateWorkflow creates or merge-patches the Workflow resource
// that drives OS installation for a machine.
func (g *Gateway) CreateOrUpdateWorkflow(ctx context.Context, m *models.Machine) (err error) {
	start := time.Now()
	defer func() { metrics.ObserveGatewayCall(metrics.OpCreateOrUpdateFlow, time.Since(start), err) }()

	ctx, cancel := context.WithTimeout(ctx, apiTimeout)
	defer cancel()

	templateRef := templateRefForOS(m.OSChoice)
	if _, err := g.dynamic.Resource(templateGVR).Namespace(tinkNamespace).Get(ctx, templateRef, metav1.GetOptions{}); err != nil {
		if apierrors.IsNotFound(err) {
			return fmt.Errorf("%w: %s", ErrTemplateNotFound, templateRef)
		}
		return fmt.Errorf("tinkerbell: checking template %s: %w", templateRef, err)
	}

	name := workflowResourceName(m.MACAddress)
	obj := &unstructured.Unstructured{Object: map[string]any{
		"apiVersion": "tinkerbell.org/v1alpha1",
		"kind":       "Workflow",
		"metadata": map[string]any{
			"name":      name,
			"namespace": tinkNamespace,
		},
		"spec": map[string]any{
			"templateRef": templateRef,
			"hardwareRef": hardwareResourceName(m.MACAddress),
			"hardwareMap": map[string]any{
				"device_1": m.MACAddress,
			},
		},
	}}

	res := g.dynamic.Resource(workflowGVR).Namespace(tinkNamespace)
	_, err = res.Get(ctx, name, metav1.GetOptions{})
	switch {
	case apierrors.IsNotFound(err):
		if _, err := res.Create(ctx, obj, metav1.CreateOptions{}); err != nil {
			return fmt.Errorf("tinkerbell: creating workflow %s: %w", name, err)
		}
		slog.Info("tinkerbell: created workflow", "name", name, "template", templateRef)
	case err != nil:
		return fmt.Errorf("tinkerbell: getting workflow %s: %w", name, err)
	default:
		patch, err := obj.MarshalJSON()
		if err != nil {
			return fmt.Errorf("tinkerbell: marshaling workflow patch: %w", err)
		}
		if _, err := res.Patch(ctx, name, mergePatchType, patch, metav1.PatchOptions{}); err != nil {
			return fmt.Errorf("tinkerbell: patching workflow %s: %w", name, err)
		}
		slog.Info("tinkerbell: updated workflow", "name", name, "template", templateRef)
	}
	return nil
}

// DeleteWorkflow removes a single Workflow resource by MAC address. Used
// by the poller once the kexec-stall heuristic has synthesized a
// successful completion and the CR is no longer needed. A missing
// workflow is not an error.
func (g *Gateway) DeleteWorkflow(ctx context.Context, mac string) (err error) {
	start := time.Now()
	defer func() { metrics.ObserveGatewayCall(metrics.OpDeleteWorkflow, time.Since(start), err) }()

	ctx, cancel := context.WithTimeout(ctx, apiTimeout)
	defer cancel()

	err = g.dynamic.Resource(workflowGVR).Namespace(tinkNamespace).
		Delete(ctx, workflowResourceName(mac), metav1.DeleteOptions{})
	if err != nil && !apierrors.IsNotFound(err) {
		return fmt.Errorf("tinkerbell: deleting workflow for %s: %w", mac, err)
	}
	return nil
}
