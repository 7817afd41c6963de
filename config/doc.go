// Package config loads and validates server settings from environment
// variables (optionally seeded from a .env file by the entrypoint). The
// single hard invariant enforced here is that the default user identity
// belongs to the configured allow-list; violating it is fatal at startup,
// never at call time.
package config
