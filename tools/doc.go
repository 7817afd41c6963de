// Package tools contains the MCP tool handlers exposed by the server. Each
// tool is a small struct pairing a Definition (schema) with a Handle
// function; the server's composition root wires them to shared
// dependencies.
//
// Handlers follow a "never crash the tool call" contract: every failure
// from the remote memory store is converted into a structured payload,
// either a {success:false, error} object for operations whose primary
// purpose is the remote call, or an empty/degraded section for lenient
// read paths. Handlers never return an error to the MCP framework for
// remote failures.
package tools
