// Package core provides the foundational domain types and contracts used by
// zep-mcp. It defines the core abstractions for:
//
//   - Platforms and context types (closed classification enums)
//   - SessionMetadata (the envelope attached to every remote session)
//   - Records returned by the remote memory store (users, sessions,
//     messages, facts, search results)
//   - The MemoryClient interface consumed by the tool and recall layers
//
// The package intentionally keeps implementation concerns (transport,
// detection heuristics, affinity rules) out of scope, exposing small types
// and one interface so higher layers can be exercised against fakes without
// touching the network.
package core
