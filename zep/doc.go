// Package zep contains the concrete core.MemoryClient implementation
// backed by the Zep Cloud REST API, plus a TTL-caching decorator. The
// interface itself lives in the core package; depend on core.MemoryClient
// in calling code and select an implementation at wiring time.
//
// The client performs no retries: failures surface immediately and the
// tool layer converts them into degraded or error-shaped results.
package zep
