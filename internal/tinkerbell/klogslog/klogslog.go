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

// Package klogslog adapts log/slog to the logr.LogSink interface so that
// client-go's internal klog output is folded into the controller's
// structured log stream instead of going to klog's own writer.
package klogslog

import (
	"log/slog"

	"github.com/go-logr/logr"
)

type sink struct {
	logger *slog.Logger
	name   string
	values []any
}

// New wraps an slog.Logger as a logr.Logger for client-go/klog.
func New(logger *slog.Logger) logr.Logger {
	return logr.New(&sink{logger: logger})
}

func (s *sink) Init(logr.RuntimeInfo) {}

func (s *sink) Enabled(level int) bool { return true }

func (s *sink) Info(level int, msg string, kv ...any) {
	s.logger.Info(s.prefix(msg), append(s.values, kv...)...)
}

func (s *sink) Error(err error, msg string, kv ...any) {
	s.logger.Error(s.prefix(msg), append(append(s.values, "error", err), kv...)...)
}

func (s *sink) WithValues(kv ...any) logr.LogSink {
	return &sink{logger: s.logger, name: s.name, values: append(append([]any{}, s.values...), kv...)}
}

func (s *sink) WithName(name string) logr.LogSink {
	full := name
	if s.name != "" {
		full = s.name + "." + name
	}
	return &sink{logger: s.logger, name: full, values: s.values}
}

func (s *sink) prefix(msg string) string {
	if s.name == "" {
		return msg
	}
	return s.name + ": " + msg
}
