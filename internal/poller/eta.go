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

import "fmt"

// formatRemainingTime renders a remaining-seconds count the way the UI
// expects it: coarse buckets rather than a live countdown, since the
// estimate itself is noisy.
func formatRemainingTime(seconds int64) string {
	if seconds <= 0 {
		return "Completing soon"
	}
	if seconds < 60 {
		return "Less than a minute remaining"
	}

	minutes := seconds / 60
	if minutes < 60 {
		return fmt.Sprintf("Approximately %d minute%s remaining", minutes, plural(minutes))
	}

	hours := minutes / 60
	remainingMinutes := minutes % 60
	if remainingMinutes == 0 {
		return fmt.Sprintf("Approximately %d hour%s remaining", hours, plural(hours))
	}
	return fmt.Sprintf("Approximately %d hour%s and %d minute%s remaining",
		hours, plural(hours), remainingMinutes, plural(remainingMinutes))
}

func plural(n int64) string {
	if n == 1 {
		return ""
	}
	return "s"
}
