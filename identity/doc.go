// Package identity validates caller-supplied user identifiers against a
// configured allow-list. Two resolution modes exist and both are part of
// the contract: strict resolution fails with *InvalidIdentityError for
// off-list values, while lenient resolution substitutes the configured
// default and logs a warning. Tool-facing entry points use lenient mode;
// lower-level callers use strict mode.
package identity
