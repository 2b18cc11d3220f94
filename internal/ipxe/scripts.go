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

package ipxe

import (
	"fmt"
)

// generateScript renders the named allow-listed iPXE script's body. stem
// is the script's filename stem (without ".ipxe"), already validated
// against allowedScripts by the caller.
func (s *Service) generateScript(stem string) (string, error) {
	switch stem {
	case "hookos":
		return s.hookosScript(), nil
	case "dragonfly-agent":
		return s.dragonflyAgentScript(), nil
	default:
		return "", fmt.Errorf("ipxe: no generator for script %q", stem)
	}
}

// hookosScript boots HookOS, Tinkerbell's in-memory installer
// environment, pointing it at this controller's gRPC and syslog
// endpoints so it can report workflow progress back.
func (s *Service) hookosScript() string {
	grpcAuthority := s.cfg.TinkerbellGRPCAuthority
	if grpcAuthority == "" {
		grpcAuthority = s.baseHost + ":42113"
	}
	syslogHost := s.cfg.TinkerbellSyslogHost
	if syslogHost == "" {
		syslogHost = s.baseHost
	}

	return fmt.Sprintf(`#!ipxe
set base-url %s
set arch x86_64
set retries 3
set retry_delay 5

kernel ${base-url}/ipxe/hookos/vmlinuz-${arch} \
  facility=dragonfly syslog_host=%s grpc_authority=%s tinkerbell_tls=%t \
  intel_iommu=on iommu=pt initrd=initramfs-${arch}
initrd ${base-url}/ipxe/hookos/initramfs-${arch}
boot
`, s.cfg.BaseURL, syslogHost, grpcAuthority, s.cfg.TinkerbellTLS)
}

// dragonflyAgentScript netboots a stock Alpine Linux kernel with an
// apkovl overlay that runs the dragonfly-agent binary on first boot,
// used for any machine not yet known to the controller.
func (s *Service) dragonflyAgentScript() string {
	return fmt.Sprintf(`#!ipxe
set base-url %s

kernel ${base-url}/ipxe/dragonfly-agent/vmlinuz \
  alpine_repo=http://dl-cdn.alpinelinux.org/alpine/v3.21/main \
  modules=loop,squashfs,sd-mod,usb-storage \
  initrd=initramfs-lts \
  modloop=${base-url}/ipxe/dragonfly-agent/modloop \
  apkovl=${base-url}/ipxe/dragonfly-agent/localhost.apkovl.tar.gz
initrd ${base-url}/ipxe/dragonfly-agent/initramfs-lts
boot
`, s.cfg.BaseURL)
}
