// Package defaults provides centralized configuration constants for slurmdocs.
//
// This package defines the on-disk layout names, artifact limits and the
// collector timeouts and throttles used across the codebase.
//
// # Usage
//
// Import and use constants directly:
//
//	import "github.com/NVIDIA/slurmdocs/pkg/defaults"
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.CollectorTimeout)
//	defer cancel()
//
// # Layout
//
// Databases live under $HOME/.slurmdocs/database/<name>/ unless a root is
// given explicitly. Each instance holds a cpu/ and a node/ directory.
//
// # Collector Guidelines
//
//   - Remote commands: 10s default, respects parent context deadline
//   - At most 4 cpu collections in flight, 2 command launches per second
package defaults
