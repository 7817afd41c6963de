package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/Whaleylaw/zep-mcp/core"
	"github.com/Whaleylaw/zep-mcp/platform"
)

// slugMaxLen caps the context slug inside a session identifier.
const slugMaxLen = 20

// Namer builds session identifiers. The zero value is not usable; construct
// with NewNamer.
type Namer struct {
	detect func() core.Platform
	now    func() time.Time
}

// NamerOption customizes a Namer, primarily for tests.
type NamerOption func(*Namer)

// WithClock overrides the clock used for the date component.
func WithClock(now func() time.Time) NamerOption {
	return func(n *Namer) { n.now = now }
}

// WithDetector overrides platform detection.
func WithDetector(detect func() core.Platform) NamerOption {
	return func(n *Namer) { n.detect = detect }
}

// NewNamer constructs a Namer using live platform detection and the wall
// clock unless overridden.
func NewNamer(opts ...NamerOption) *Namer {
	n := &Namer{detect: platform.Detect, now: time.Now}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Name returns an identifier of the form {platform}_{context_slug}_{date}.
// The identifier is deterministic for a given platform, context and day; it
// is NOT globally unique: two sessions created the same day with the same
// context and platform collide. That is an accepted limitation of the
// naming scheme, not something this layer papers over.
//
// contextType and project are accepted for symmetry with Compose but do not
// affect the identifier. Downstream systems depend on the project-agnostic
// scheme, so project in particular must stay unused.
func (n *Namer) Name(context string, contextType core.ContextType, project string) string {
	_ = contextType
	_ = project
	p := n.detect()
	date := n.now().Format("2006_01_02")
	return fmt.Sprintf("%s_%s_%s", p, Slug(context), date)
}

// Slug canonicalizes free-text context for embedding in an identifier:
// lower-cased, spaces and hyphens replaced with underscores, truncated to
// 20 characters. Other punctuation is preserved exactly. Truncation counts
// runes, never splitting a multibyte character.
func Slug(context string) string {
	s := strings.ToLower(context)
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	if runes := []rune(s); len(runes) > slugMaxLen {
		s = string(runes[:slugMaxLen])
	}
	return s
}
