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

// Package tinkerbell is a small typed gateway over the Tinkerbell Hardware,
// Workflow, and Template CRDs. It exposes only the handful of verbs the
// controller actually needs (get/create/merge/delete/list) on top of a
// generic dynamic client, rather than generating full typed clientsets for
// CRDs this process does not own.
package tinkerbell

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/client-go/discovery"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/klog/v2"

	"dragonfly/internal/tinkerbell/klogslog"
	"dragonfly/pkg/crypto"
)

const tinkNamespace = "tink"

// mergePatchType is used for every update in this gateway: a JSON merge
// patch, matching the original's choice of Patch::Merge over server-side
// apply to reduce field-manager conflicts with Tinkerbell's own controller.
const mergePatchType = types.MergePatchType

var (
	hardwareGVR = schema.GroupVersionResource{Group: "tinkerbell.org", Version: "v1alpha1", Resource: "hardware"}
	workflowGVR = schema.GroupVersionResource{Group: "tinkerbell.org", Version: "v1alpha1", Resource: "workflows"}
	templateGVR = schema.GroupVersionResource{Group: "tinkerbell.org", Version: "v1alpha1", Resource: "templates"}
)

// Gateway talks to a Tinkerbell-equipped cluster through a dynamic client.
// A zero-value Gateway is not usable; construct with NewGateway.
type Gateway struct {
	dynamic  dynamic.Interface
	baseURL  string
	baseHost string
}

func init() {
	klog.SetLogger(klogslog.New(slog.Default()))
}

// NewGateway builds a dynamic client from KUBECONFIG (tilde-expanded) or
// in-cluster config, and probes connectivity via the discovery client
// before returning. baseURL is substituted (as its bare host, scheme and
// port stripped) into template bodies handed to EnsureTemplate wherever
// they reference "{ base_url }".
func NewGateway(baseURL string) (*Gateway, error) {
	cfg, err := loadRestConfig()
	if err != nil {
		return nil, fmt.Errorf("tinkerbell: building kube config: %w", err)
	}
	if cfg.BearerToken != "" {
		slog.Debug("tinkerbell: using bearer token auth", "token", crypto.RedactToken(cfg.BearerToken))
	}

	disco, err := discovery.NewDiscoveryClientForConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("tinkerbell: building discovery client: %w", err)
	}
	version, err := disco.ServerVersion()
	if err != nil {
		return nil, fmt.Errorf("tinkerbell: connecting to API server: %w", err)
	}
	slog.Info("tinkerbell: connected to kubernetes API server", "version", version.String())

	dyn, err := dynamic.NewForConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("tinkerbell: building dynamic client: %w", err)
	}

	return &Gateway{dynamic: dyn, baseURL: baseURL, baseHost: bareHost(baseURL)}, nil
}

// bareHost strips scheme and port from a base URL, e.g.
// "https://dragonfly.example:8443" -> "dragonfly.example".
func bareHost(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil || u.Hostname() == "" {
		return baseURL
	}
	return u.Hostname()
}

func loadRestConfig() (*rest.Config, error) {
	if kubeconfig := os.Getenv("KUBECONFIG"); kubeconfig != "" {
		if strings.HasPrefix(kubeconfig, "~") {
			home, err := os.UserHomeDir()
			if err == nil {
				expanded := filepath.Join(home, strings.TrimPrefix(kubeconfig, "~"))
				os.Setenv("KUBECONFIG", expanded)
				slog.Info("tinkerbell: expanded KUBECONFIG path", "path", expanded)
			}
		}
		return clientcmd.BuildConfigFromFlags("", os.Getenv("KUBECONFIG"))
	}

	if cfg, err := rest.InClusterConfig(); err == nil {
		return cfg, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("no KUBECONFIG set, not in-cluster, and no home directory: %w", err)
	}
	return clientcmd.BuildConfigFromFlags("", filepath.Join(home, ".kube", "config"))
}

// hardwareResourceName is the deterministic Hardware resource name
// derived from a MAC address, matching the naming scheme Tinkerbell
// templates expect. Workflow names come from workflowResourceName.
func hardwareResourceName(mac string) string {
	return "machine-" + strings.ReplaceAll(mac, ":", "-")
}

func workflowResourceName(mac string) string {
	return "os-install-" + strings.ReplaceAll(mac, ":", "-")
}

// templateRefForOS maps an OS choice to its Tinkerbell template name.
// Known OS identifiers pass through unchanged; anything else is used
// verbatim as a template name too, on the assumption an operator has
// created a matching custom template. No OS choice at all falls back to
// the Ubuntu 22.04 default.
func templateRefForOS(osChoice *string) string {
	if osChoice == nil || *osChoice == "" {
		return "ubuntu-2204"
	}
	return *osChoice
}

// apiTimeout bounds every individual call this gateway makes against the
// cluster, so a stuck poller tick can't wedge a background loop forever.
const apiTimeout = 15 * time.Second
