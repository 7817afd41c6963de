package session

import (
	"time"

	"github.com/Whaleylaw/zep-mcp/core"
	"github.com/Whaleylaw/zep-mcp/platform"
)

// Composer builds the metadata envelope attached to a session at creation
// time. Side-effect free; the output key set is deterministic given inputs.
type Composer struct {
	detect func() core.Platform
	now    func() time.Time
}

// ComposerOption customizes a Composer, primarily for tests.
type ComposerOption func(*Composer)

// WithComposerClock overrides the clock used for the created_at timestamp.
func WithComposerClock(now func() time.Time) ComposerOption {
	return func(c *Composer) { c.now = now }
}

// WithComposerDetector overrides platform detection.
func WithComposerDetector(detect func() core.Platform) ComposerOption {
	return func(c *Composer) { c.detect = detect }
}

// NewComposer constructs a Composer using live platform detection and the
// wall clock unless overridden.
func NewComposer(opts ...ComposerOption) *Composer {
	c := &Composer{detect: platform.Detect, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compose builds session metadata. contextType degrades to general when
// empty or unrecognized; privacyLevel defaults to normal; project and tags
// are included only when non-empty. Platform-specific hints are overlaid
// deterministically by detected platform.
func (c *Composer) Compose(context string, contextType core.ContextType, project, privacyLevel string, tags []string) core.SessionMetadata {
	p := c.detect()
	if privacyLevel == "" {
		privacyLevel = core.PrivacyNormal
	}

	md := core.SessionMetadata{
		Platform:     p,
		Context:      context,
		ContextType:  core.ParseContextType(contextType.String()),
		CreatedAt:    c.now().Format(time.RFC3339),
		PrivacyLevel: privacyLevel,
		Project:      project,
	}
	if len(tags) > 0 {
		md.Tags = append([]string(nil), tags...)
	}

	switch p {
	case core.PlatformCursor:
		md.Editor = "cursor"
		md.PrimaryUse = "coding"
	case core.PlatformClaudeDesktop:
		md.Interface = "desktop"
		md.PrimaryUse = "general"
	case core.PlatformClaudeCode:
		md.Interface = "cli"
		md.PrimaryUse = "coding"
	}
	return md
}
