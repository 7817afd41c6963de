package affinity

import "github.com/Whaleylaw/zep-mcp/core"

// relatedContexts maps each context type to the types it shares context
// with. The table is not stored symmetrically (documentation lists research
// but research also lists documentation, while coding lists documentation
// without the reverse), so Related checks it in both directions.
var relatedContexts = map[core.ContextType][]core.ContextType{
	core.ContextCoding:        {core.ContextDebugging, core.ContextDeployment, core.ContextDocumentation},
	core.ContextDebugging:     {core.ContextCoding, core.ContextDeployment},
	core.ContextDeployment:    {core.ContextCoding, core.ContextDebugging},
	core.ContextDocumentation: {core.ContextCoding, core.ContextResearch},
	core.ContextResearch:      {core.ContextDocumentation, core.ContextGeneral},
	core.ContextGeneral:       {core.ContextResearch},
}

// Related reports whether memories from one session should be considered
// relevant context for the other. Rules are evaluated in strict order with
// short-circuiting:
//
//  1. Either side sensitive -> false, unconditionally.
//  2. Both carry the same non-empty project -> true.
//  3. Context types adjacent (checked both directions) -> true.
//  4. Non-empty tag sets with a non-empty intersection -> true.
//  5. Otherwise false.
//
// The function is pure and total; absent fields behave as general/empty.
func Related(a, b core.SessionMetadata) bool {
	if a.PrivacyLevel == core.PrivacySensitive || b.PrivacyLevel == core.PrivacySensitive {
		return false
	}

	if a.Project != "" && a.Project == b.Project {
		return true
	}

	if adjacent(a.ContextType, b.ContextType) || adjacent(b.ContextType, a.ContextType) {
		return true
	}

	if len(a.Tags) > 0 && len(b.Tags) > 0 {
		seen := make(map[string]struct{}, len(a.Tags))
		for _, t := range a.Tags {
			seen[t] = struct{}{}
		}
		for _, t := range b.Tags {
			if _, ok := seen[t]; ok {
				return true
			}
		}
	}

	return false
}

// RelatedMaps is Related over the loose map form the remote store returns.
func RelatedMaps(a, b map[string]any) bool {
	return Related(core.MetadataFromMap(a), core.MetadataFromMap(b))
}

func adjacent(a, b core.ContextType) bool {
	for _, t := range relatedContexts[normalize(b)] {
		if t == normalize(a) {
			return true
		}
	}
	return false
}

func normalize(t core.ContextType) core.ContextType {
	if t == "" {
		return core.ContextGeneral
	}
	return t
}
