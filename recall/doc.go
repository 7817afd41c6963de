// Package recall assembles cross-session context for a running session. The
// Aggregator pulls the session's own recent memory, enumerates the owner's
// other sessions within a lookback window, filters them through the
// affinity rules, optionally runs a bounded set of searches against the
// related sessions, and returns a combined result with cross-platform usage
// statistics.
//
// The aggregation contract is best-effort: a missing current session or a
// failed per-session search degrades the corresponding section without
// aborting the whole operation. Only a failed session listing short-circuits,
// since neither affinity filtering nor the usage statistics are possible
// without it. No failure ever propagates to the caller as a fault.
package recall
