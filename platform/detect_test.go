package platform

import (
	"testing"

	"github.com/Whaleylaw/zep-mcp/core"
)

func envOf(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestDetect_Precedence(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		argv0 string
		want  core.Platform
	}{
		{"cursor env flag", map[string]string{envCursorSession: "1"}, "", core.PlatformCursor},
		{"desktop env flag", map[string]string{envClaudeDesktop: "true"}, "", core.PlatformClaudeDesktop},
		{"code env flag", map[string]string{envClaudeCode: "1"}, "", core.PlatformClaudeCode},
		// Env flag beats a conflicting executable name.
		{"cursor flag wins over desktop argv", map[string]string{envCursorSession: "1"}, "/usr/bin/claude-desktop", core.PlatformCursor},
		{"cursor argv", nil, "/Applications/Cursor.app/Contents/MacOS/cursor", core.PlatformCursor},
		{"desktop argv", nil, "/opt/Claude-Desktop/claude-desktop", core.PlatformClaudeDesktop},
		{"code argv", nil, "/usr/local/bin/claude-code", core.PlatformClaudeCode},
		{"parent hint cursor", map[string]string{envParentProcess: "Cursor Helper"}, "python", core.PlatformCursor},
		{"parent hint desktop", map[string]string{envParentProcess: "claude desktop"}, "python", core.PlatformClaudeDesktop},
		{"parent hint code", map[string]string{envParentProcess: "claude code cli"}, "python", core.PlatformClaudeCode},
		// A bare "claude" parent with neither desktop nor code falls through.
		{"parent hint claude only", map[string]string{envParentProcess: "claude"}, "python", core.PlatformWebClaude},
		{"fallback", nil, "/usr/bin/server", core.PlatformWebClaude},
		{"empty everything", nil, "", core.PlatformWebClaude},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detect(envOf(tt.env), tt.argv0)
			if got != tt.want {
				t.Fatalf("detect() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDetect_Deterministic(t *testing.T) {
	env := envOf(map[string]string{envParentProcess: "cursor"})
	first := detect(env, "srv")
	for i := 0; i < 5; i++ {
		if got := detect(env, "srv"); got != first {
			t.Fatalf("detect not stable: %q then %q", first, got)
		}
	}
}

func TestDetect_NeverUnknown(t *testing.T) {
	if got := detect(envOf(nil), ""); got == core.PlatformUnknown {
		t.Fatal("detector must never return the unknown sentinel")
	}
}
