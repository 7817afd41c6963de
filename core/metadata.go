package core

import "encoding/json"

// Privacy levels recognized in session metadata. Sensitive sessions are
// vetoed from all cross-session sharing.
const (
	PrivacyNormal    = "normal"
	PrivacySensitive = "sensitive"
)

// SessionMetadata is the structured envelope attached to a session at
// creation time. It is constructed once by the composer and thereafter
// owned by the remote store; this layer holds no mutable state about it.
type SessionMetadata struct {
	Platform     Platform    `json:"platform"`
	Context      string      `json:"context"`
	ContextType  ContextType `json:"context_type"`
	CreatedAt    string      `json:"created_at"`
	PrivacyLevel string      `json:"privacy_level"`
	Project      string      `json:"project,omitempty"`
	Tags         []string    `json:"tags,omitempty"`

	// Platform-specific hints, added deterministically by platform.
	Editor     string `json:"editor,omitempty"`
	Interface  string `json:"interface,omitempty"`
	PrimaryUse string `json:"primary_use,omitempty"`
}

// ToMap renders the envelope as the loose map shape the remote store
// persists. Optional keys are present only when non-empty, so the key set
// is deterministic for a given input.
func (m SessionMetadata) ToMap() map[string]any {
	out := map[string]any{
		"platform":      m.Platform.String(),
		"context":       m.Context,
		"context_type":  m.ContextType.String(),
		"created_at":    m.CreatedAt,
		"privacy_level": m.PrivacyLevel,
	}
	if m.Project != "" {
		out["project"] = m.Project
	}
	if len(m.Tags) > 0 {
		tags := make([]any, len(m.Tags))
		for i, t := range m.Tags {
			tags[i] = t
		}
		out["tags"] = tags
	}
	if m.Editor != "" {
		out["editor"] = m.Editor
	}
	if m.Interface != "" {
		out["interface"] = m.Interface
	}
	if m.PrimaryUse != "" {
		out["primary_use"] = m.PrimaryUse
	}
	return out
}

// MetadataFromMap reconstructs a SessionMetadata from the loose map shape
// returned by the remote store. Absent or malformed fields fall back to
// their defaults (general context type, normal privacy, empty strings);
// the function is total and never fails.
func MetadataFromMap(m map[string]any) SessionMetadata {
	md := SessionMetadata{
		Platform:     Platform(stringField(m, "platform")),
		Context:      stringField(m, "context"),
		ContextType:  ParseContextType(stringField(m, "context_type")),
		CreatedAt:    stringField(m, "created_at"),
		PrivacyLevel: stringField(m, "privacy_level"),
		Project:      stringField(m, "project"),
		Editor:       stringField(m, "editor"),
		Interface:    stringField(m, "interface"),
		PrimaryUse:   stringField(m, "primary_use"),
	}
	if md.Platform == "" {
		md.Platform = PlatformUnknown
	}
	if md.PrivacyLevel == "" {
		md.PrivacyLevel = PrivacyNormal
	}
	if raw, ok := m["tags"]; ok {
		switch tags := raw.(type) {
		case []string:
			md.Tags = append(md.Tags, tags...)
		case []any:
			for _, t := range tags {
				if s, ok := t.(string); ok {
					md.Tags = append(md.Tags, s)
				}
			}
		}
	}
	return md
}

// NormalizeMetadata coerces caller-supplied metadata into a map. Valid JSON
// text is parsed; any other text is wrapped as {"description": text}. Maps
// pass through unchanged and nil stays nil. There is no reachable
// "malformed metadata" error.
func NormalizeMetadata(raw any) map[string]any {
	switch v := raw.(type) {
	case nil:
		return nil
	case map[string]any:
		return v
	case string:
		var parsed map[string]any
		if err := json.Unmarshal([]byte(v), &parsed); err == nil {
			return parsed
		}
		return map[string]any{"description": v}
	default:
		return map[string]any{"description": toJSONString(v)}
	}
}

func stringField(m map[string]any, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func toJSONString(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}
