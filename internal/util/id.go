// Package util contains small internal helpers shared across packages.
package util

import "github.com/google/uuid"

// NewID generates a unique identifier, used for outbound request
// correlation in logs and headers.
func NewID() string { return uuid.NewString() }
