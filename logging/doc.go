// Package logging provides a minimal logging interface and adapters for
// zep-mcp.
//
// The Logger interface defines the standard logging methods (Debug, Info,
// Warn, Error) that the tool and recall layers use for observability. This
// package includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping Go's structured logging
//   - NoOpLogger for silent operation (testing, minimal setups)
//   - ServerLogger with contextual helpers for tools and remote calls
//
// The design intentionally keeps the interface minimal to avoid vendor
// lock-in while supporting structured logging where available.
package logging
