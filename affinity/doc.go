// Package affinity decides whether two sessions should be treated as
// context-related for cross-session memory recall. The relation is a pure,
// total function of two metadata envelopes: a sensitive privacy level on
// either side vetoes everything, matching projects relate unconditionally,
// then context-type adjacency and tag overlap are consulted in that order.
package affinity
