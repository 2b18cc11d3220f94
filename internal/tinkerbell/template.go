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
	"strings"
	"time"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"sigs.k8s.io/yaml"

	"dragonfly/internal/metrics"
)

// EnsureTemplate creates or merge-patches a Tinkerbell Template CRD whose
// spec.data is the given YAML workflow body. The literal substring
// "{ base_url }" is replaced with this gateway's bare configured host
// (scheme and port stripped) before the body is parsed, so templates can
// reference the controller's own iPXE artifact service without
// hardcoding a host.
func (g *Gateway) EnsureTemplate(ctx context.Context, name, workflowYAML string) (err error) {
	start := time.Now()
	defer func() { metrics.ObserveGatewayCall(metrics.OpEnsureTemplate, time.Since(start), err) }()

	ctx, cancel := context.WithTimeout(ctx, apiTimeout)
	defer cancel()

	substituted := strings.ReplaceAll(workflowYAML, "{ base_url }", g.baseHost)

	// Round-trip through JSON so the body becomes a plain map[string]any
	// tree that unstructured.Unstructured can marshal, same conversion
	// sigs.k8s.io/yaml performs for typed Kubernetes objects.
	jsonBytes, err := yaml.YAMLToJSON([]byte(substituted))
	if err != nil {
		return fmt.Errorf("tinkerbell: parsing template body for %s: %w", name, err)
	}

	obj := &unstructured.Unstructured{Object: map[string]any{
		"apiVersion": "tinkerbell.org/v1alpha1",
		"kind":       "Template",
		"metadata": map[string]any{
			"name":      name,
			"namespace": tinkNamespace,
		},
		"spec": map[string]any{
			"data": string(jsonBytesToYAML(jsonBytes, substituted)),
		},
	}}

	res := g.dynamic.Resource(templateGVR).Namespace(tinkNamespace)
	_, err = res.Get(ctx, name, metav1.GetOptions{})
	switch {
	case apierrors.IsNotFound(err):
		if _, err := res.Create(ctx, obj, metav1.CreateOptions{}); err != nil {
			return fmt.Errorf("tinkerbell: creating template %s: %w", name, err)
		}
		slog.Info("tinkerbell: created template", "name", name)
	case err != nil:
		return fmt.Errorf("tinkerbell: getting template %s: %w", name, err)
	default:
		patch, err := obj.MarshalJSON()
		if err != nil {
			return fmt.Errorf("tinkerbell: marshaling template patch: %w", err)
		}
		if _, err := res.Patch(ctx, name, mergePatchType, patch, metav1.PatchOptions{}); err != nil {
			return fmt.Errorf("tinkerbell: patching template %s: %w", name, err)
		}
		slog.Info("tinkerbell: updated template", "name", name)
	}
	return nil
}

// jsonBytesToYAML ignores the converted JSON and returns the original
// YAML text for spec.data, since that is the form Tinkerbell's worker
// agents expect to parse. Malformed bodies are rejected earlier, by the
// YAML-to-JSON conversion in EnsureTemplate.
func jsonBytesToYAML(_ []byte, original string) string {
	return original
}
