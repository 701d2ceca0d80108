// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package configstack

import (
	"github.com/MKhiriev/go-config-stack/internal/logger"
)

// Logger is the structured logger the load pipeline reports through. It
// wraps a zerolog.Logger: wrap an existing one with
// &Logger{Logger: existing}, or use [NewLogger] for a ready-made stderr
// logger. Passed via [Options.Logger]; when none is given the library stays
// silent.
type Logger = logger.Logger

// NewLogger returns a Logger writing JSON records to stderr, tagged with the
// given role. Handy as [Options.Logger] when a load pipeline needs to be
// inspected.
func NewLogger(role string) *Logger {
	return logger.NewLogger(role)
}
