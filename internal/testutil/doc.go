// Package testutil contains helper builders and a mock remote client used
// across tests to reduce boilerplate when constructing session records and
// metadata envelopes and asserting aggregation behavior. Not intended for
// production usage.
package testutil
