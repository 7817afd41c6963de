// Package platform infers which front-end environment is hosting the
// current process. Detection is a pure function of environment variables
// and argv: explicit flags win over executable-name matches, which win over
// the parent-process hint, with web_claude as the fallback. It is
// recomputed on every call because host environment variables can change
// across a long-lived session.
package platform
