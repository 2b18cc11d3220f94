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

package poller

import "testing"

func TestFormatRemainingTime(t *testing.T) {
	cases := []struct {
		seconds int64
		want    string
	}{
		{0, "Completing soon"},
		{-5, "Completing soon"},
		{30, "Less than a minute remaining"},
		{60, "Approximately 1 minute remaining"},
		{125, "Approximately 2 minutes remaining"},
		{3600, "Approximately 1 hour remaining"},
		{3900, "Approximately 1 hour and 5 minutes remaining"},
		{7200, "Approximately 2 hours remaining"},
	}

	for _, c := range cases {
		if got := formatRemainingTime(c.seconds); got != c.want {
			t.Errorf("formatRemainingTime(%d) = %q, want %q", c.seconds, got, c.want)
		}
	}
}
