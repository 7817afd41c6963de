// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it creates concrete implementations (the
// Zep-backed memory client, identity guard, namer, composer, aggregator)
// and injects them into the tools that depend on abstractions. No business
// logic lives here, only wiring plus the per-user rate limit middleware.
package server
