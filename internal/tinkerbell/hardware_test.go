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
	"testing"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	dynamicfake "k8s.io/client-go/dynamic/fake"

	"dragonfly/pkg/models"
)

func newFakeGateway(objects ...runtime.Object) *Gateway {
	scheme := runtime.NewScheme()
	gvrToListKind := map[schema.GroupVersionResource]string{
		hardwareGVR: "HardwareList",
		workflowGVR: "WorkflowList",
		templateGVR: "TemplateList",
	}
	client := dynamicfake.NewSimpleDynamicClientWithCustomListKinds(scheme, gvrToListKind, objects...)
	return &Gateway{dynamic: client, baseURL: "http://dragonfly.example", baseHost: "dragonfly.example"}
}

func TestEnsureHardwareCreatesWhenMissing(t *testing.T) {
	g := newFakeGateway()
	m := &models.Machine{
		MACAddress: "04:7c:16:eb:74:ed",
		IPAddress:  "10.0.0.5",
		Disks:      []models.Disk{{Device: "/dev/sda"}},
	}

	if err := g.EnsureHardware(context.Background(), m); err != nil {
		t.Fatalf("EnsureHardware: %v", err)
	}

	obj, err := g.dynamic.Resource(hardwareGVR).Namespace(tinkNamespace).Get(context.Background(), "machine-04-7c-16-eb-74-ed", metav1.GetOptions{})
	if err != nil {
		t.Fatalf("expected hardware to exist: %v", err)
	}
	mac := firstInterfaceDHCPField(t, obj, "mac")
	if mac != m.MACAddress {
		t.Fatalf("expected dhcp.mac %s, got %s", m.MACAddress, mac)
	}
}

func firstInterfaceDHCPField(t *testing.T, obj *unstructured.Unstructured, field string) string {
	t.Helper()
	interfaces, _, err := unstructured.NestedSlice(obj.Object, "spec", "interfaces")
	if err != nil || len(interfaces) == 0 {
		t.Fatalf("expected spec.interfaces to be a non-empty slice: %v", err)
	}
	iface, ok := interfaces[0].(map[string]any)
	if !ok {
		t.Fatalf("expected interface entry to be a map, got %T", interfaces[0])
	}
	dhcp, ok := iface["dhcp"].(map[string]any)
	if !ok {
		t.Fatalf("expected dhcp to be a map, got %T", iface["dhcp"])
	}
	if field == "ip.address" {
		ip, ok := dhcp["ip"].(map[string]any)
		if !ok {
			t.Fatalf("expected ip to be a map, got %T", dhcp["ip"])
		}
		v, _ := ip["address"].(string)
		return v
	}
	v, _ := dhcp[field].(string)
	return v
}

func TestEnsureHardwareUpdatesWhenPresent(t *testing.T) {
	existing := &unstructured.Unstructured{Object: map[string]any{
		"apiVersion": "tinkerbell.org/v1alpha1",
		"kind":       "Hardware",
		"metadata": map[string]any{
			"name":      "machine-04-7c-16-eb-74-ed",
			"namespace": tinkNamespace,
		},
		"spec": map[string]any{},
	}}
	g := newFakeGateway(existing)

	m := &models.Machine{MACAddress: "04:7c:16:eb:74:ed", IPAddress: "10.0.0.9"}
	if err := g.EnsureHardware(context.Background(), m); err != nil {
		t.Fatalf("EnsureHardware: %v", err)
	}

	obj, err := g.dynamic.Resource(hardwareGVR).Namespace(tinkNamespace).Get(context.Background(), "machine-04-7c-16-eb-74-ed", metav1.GetOptions{})
	if err != nil {
		t.Fatalf("expected hardware to still exist: %v", err)
	}
	ip := firstInterfaceDHCPField(t, obj, "ip.address")
	if ip != "10.0.0.9" {
		t.Fatalf("expected patched ip 10.0.0.9, got %s", ip)
	}
}

func TestDeleteHardwareAndWorkflowToleratesMissing(t *testing.T) {
	g := newFakeGateway()
	if err := g.DeleteHardwareAndWorkflow(context.Background(), "aa:bb:cc:dd:ee:ff"); err != nil {
		t.Fatalf("expected no error deleting already-absent resources, got %v", err)
	}
}
