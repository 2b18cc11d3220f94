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
	"time"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"dragonfly/internal/metrics"
)

// ActionSnapshot is one action's raw status, as reported by a Tinkerbell
// worker agent through the Workflow CRD's status subresource.
type ActionSnapshot struct {
	Name      string
	Status    string
	StartedAt string
	Seconds   int64
}

// WorkflowSnapshot is the raw status of a Workflow CRD, unprocessed: no
// progress or ETA math happens in this package, so that the estimator and
// poller packages can own that logic against a plain data shape instead of
// against live Kubernetes objects.
type WorkflowSnapshot struct {
	TemplateRef   string
	State         string
	CurrentAction string
	Tasks         []ActionSnapshot
}

// GetWorkflowStatus fetches the current Workflow CRD for a machine's MAC
// address. found is false if no such workflow exists or it has no status
// subresource populated yet.
func (g *Gateway) GetWorkflowStatus(ctx context.Context, mac string) (snap WorkflowSnapshot, found bool, err error) {
	start := time.Now()
	defer func() { metrics.ObserveGatewayCall(metrics.OpGetWorkflowStatus, time.Since(start), err) }()

	ctx, cancel := context.WithTimeout(ctx, apiTimeout)
	defer cancel()

	name := workflowResourceName(mac)
	obj, err := g.dynamic.Resource(workflowGVR).Namespace(tinkNamespace).Get(ctx, name, metav1.GetOptions{})
	if apierrors.IsNotFound(err) {
		return WorkflowSnapshot{}, false, nil
	}
	if err != nil {
		return WorkflowSnapshot{}, false, fmt.Errorf("tinkerbell: getting workflow %s: %w", name, err)
	}

	templateRef, _, _ := unstructured.NestedString(obj.Object, "spec", "templateRef")
	status, statusFound, _ := unstructured.NestedMap(obj.Object, "status")
	if !statusFound {
		return WorkflowSnapshot{}, false, nil
	}

	state, _, _ := unstructured.NestedString(status, "state")
	currentAction, _, _ := unstructured.NestedString(status, "currentAction")

	snap = WorkflowSnapshot{TemplateRef: templateRef, State: state, CurrentAction: currentAction}

	taskList, _, _ := unstructured.NestedSlice(status, "tasks")
	for _, t := range taskList {
		task, ok := t.(map[string]any)
		if !ok {
			continue
		}
		actions, _, _ := unstructured.NestedSlice(task, "actions")
		for _, a := range actions {
			action, ok := a.(map[string]any)
			if !ok {
				continue
			}
			name, _, _ := unstructured.NestedString(action, "name")
			status, _, _ := unstructured.NestedString(action, "status")
			startedAt, _, _ := unstructured.NestedString(action, "startedAt")
			seconds, _, _ := unstructured.NestedInt64(action, "seconds")
			snap.Tasks = append(snap.Tasks, ActionSnapshot{
				Name:      name,
				Status:    status,
				StartedAt: startedAt,
				Seconds:   seconds,
			})
		}
	}

	return snap, true, nil
}
