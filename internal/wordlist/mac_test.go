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

package wordlist

import (
	"strings"
	"testing"
	"unicode"
)

func TestFromMAC(t *testing.T) {
	name, err := FromMAC("04:7c:16:eb:74:ed")
	if err != nil {
		t.Fatalf("FromMAC returned error: %v", err)
	}

	upper := 0
	for _, r := range name {
		if unicode.IsUpper(r) {
			upper++
		}
	}
	if upper != 4 {
		t.Fatalf("expected four capitalized words, got %d upper letters in %q", upper, name)
	}

	other, err := FromMAC("04:7c:16:eb:74:ee")
	if err != nil {
		t.Fatalf("FromMAC returned error: %v", err)
	}
	if other == name {
		t.Fatalf("expected different names for MACs differing in the last bit, got %q for both", name)
	}
}

func TestFromMACSafeFallback(t *testing.T) {
	name := FromMACSafe("not-a-mac")
	if !strings.HasPrefix(name, "Machine-") {
		t.Fatalf("expected fallback name to start with Machine-, got %q", name)
	}
}

func TestFromMACSafeValid(t *testing.T) {
	name := FromMACSafe("04:7c:16:eb:74:ed")
	if strings.HasPrefix(name, "Machine-") {
		t.Fatalf("expected a real wordlist name for a valid MAC, got %q", name)
	}
}
