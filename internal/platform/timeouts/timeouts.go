// Package timeouts defines timeout constants shared by the calc server and
// its clients.
package timeouts

import "time"

// GRPCDial caps the wait for a calc server to accept connections and report
// healthy.
const GRPCDial = 2 * time.Second

// Shutdown bounds graceful HTTP shutdown and telemetry flushing on exit.
const Shutdown = 5 * time.Second
