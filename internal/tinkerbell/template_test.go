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
	"strings"
	"testing"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

func TestBareHostStripsSchemeAndPort(t *testing.T) {
	cases := map[string]string{
		"https://dragonfly.example:8443": "dragonfly.example",
		"http://dragonfly.example":       "dragonfly.example",
		"http://10.0.0.5:8080":           "10.0.0.5",
	}
	for input, want := range cases {
		if got := bareHost(input); got != want {
			t.Errorf("bareHost(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestEnsureTemplateSubstitutesBaseHost(t *testing.T) {
	g := newFakeGateway()
	const body = "version: \"0.1\"\nname: ubuntu-2204\ntasks:\n  - actions:\n      - name: stream\n        image: { base_url }/ipxe/hookos.ipxe\n"

	if err := g.EnsureTemplate(context.Background(), "ubuntu-2204", body); err != nil {
		t.Fatalf("EnsureTemplate: %v", err)
	}

	obj, err := g.dynamic.Resource(templateGVR).Namespace(tinkNamespace).Get(context.Background(), "ubuntu-2204", metav1.GetOptions{})
	if err != nil {
		t.Fatalf("expected template to exist: %v", err)
	}
	data, found, err := nestedStringField(obj.Object, "spec", "data")
	if err != nil || !found {
		t.Fatalf("expected spec.data to be set: found=%v err=%v", found, err)
	}
	if want := "dragonfly.example/ipxe/hookos.ipxe"; !strings.Contains(data, want) {
		t.Fatalf("expected substituted base host %q in template data, got %q", want, data)
	}
}

func TestEnsureTemplateRejectsInvalidYAML(t *testing.T) {
	g := newFakeGateway()
	if err := g.EnsureTemplate(context.Background(), "broken", "not: [valid"); err == nil {
		t.Fatal("expected an error parsing malformed template body")
	}
}

func nestedStringField(obj map[string]any, fields ...string) (string, bool, error) {
	cur := any(obj)
	for _, f := range fields {
		m, ok := cur.(map[string]any)
		if !ok {
			return "", false, nil
		}
		cur, ok = m[f]
		if !ok {
			return "", false, nil
		}
	}
	s, ok := cur.(string)
	return s, ok, nil
}
