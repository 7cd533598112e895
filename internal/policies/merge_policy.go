// Package policies implements the pure decision rules the merger
// (internal/app) applies when two or more inputs disagree: which
// default stream wins, which translation field wins, which obsoletes
// record wins. Keeping these rules in their own package separates
// "what happens when inputs conflict" from the bookkeeping that
// gathers candidates and writes the result into an index.
package policies

import (
	"sort"

	"modulemd/internal/core"
	"modulemd/internal/types"
)

// PriorityValue pairs a candidate value with the priority of the index
// it came from, the unit the merger's conflict rules operate on.
type PriorityValue[T any] struct {
	Value    T
	Priority int32
}

// PickByPriority returns the candidate with the strictly highest
// priority. Equal-priority collisions are undefined behaviour, so the
// first candidate encountered at the max priority wins, which is
// deterministic given the caller's own iteration order.
func PickByPriority[T any](candidates []PriorityValue[T]) T {
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Priority > best.Priority {
			best = c
		}
	}
	return best.Value
}

// MergeDefaults implements the defaults merge rule: only the
// highest-priority tier of candidates matters at all; ties within that
// tier are merged under the equal-priority rules.
func MergeDefaults(candidates []PriorityValue[*types.DefaultsV1], strict bool) (*types.DefaultsV1, error) {
	if len(candidates) == 1 {
		return candidates[0].Value.Copy(), nil
	}
	var maxPriority int32 = -1
	for _, c := range candidates {
		if c.Priority > maxPriority {
			maxPriority = c.Priority
		}
	}
	var tier []*types.DefaultsV1
	for _, c := range candidates {
		if c.Priority == maxPriority {
			tier = append(tier, c.Value)
		}
	}
	merged := tier[0].Copy()
	for _, next := range tier[1:] {
		var err error
		merged, err = mergeDefaultsEqualPriority(merged, next, strict)
		if err != nil {
			return nil, err
		}
	}
	return merged, nil
}

// mergeDefaultsEqualPriority merges two defaults documents at the same
// priority.
func mergeDefaultsEqualPriority(a, b *types.DefaultsV1, strict bool) (*types.DefaultsV1, error) {
	out := a.Copy()

	switch {
	case a.DefaultStream == b.DefaultStream:
		// keep
	case a.DefaultStream == "":
		out.DefaultStream = b.DefaultStream
		out.Poisoned = b.Poisoned
	case b.DefaultStream == "":
		// keep a's
	case a.Modified != b.Modified:
		if b.Modified > a.Modified {
			out.DefaultStream = b.DefaultStream
			out.Modified = b.Modified
		}
	default:
		if strict {
			return nil, core.NewError(types.ErrorValidate, "conflicting default streams at equal priority and modified")
		}
		out.DefaultStream = ""
		out.Poisoned = true
	}
	if b.Modified > out.Modified {
		out.Modified = b.Modified
	}

	mergedProfiles, err := mergeProfileDefaults(a.ProfileDefaults, b.ProfileDefaults, a.Modified, b.Modified, strict)
	if err != nil {
		return nil, err
	}
	out.ProfileDefaults = mergedProfiles

	for intent, bEntry := range b.Intents {
		aEntry, ok := out.Intents[intent]
		if !ok {
			out.Intents[intent] = bEntry.Copy()
			continue
		}
		mergedEntry, err := mergeIntentDefaults(aEntry, bEntry, a.Modified, b.Modified, strict)
		if err != nil {
			return nil, err
		}
		out.Intents[intent] = mergedEntry
	}
	return out, nil
}

func mergeIntentDefaults(a, b types.IntentDefaults, aModified, bModified int64, strict bool) (types.IntentDefaults, error) {
	out := a.Copy()
	switch {
	case a.DefaultStream == b.DefaultStream:
	case a.DefaultStream == "":
		out.DefaultStream = b.DefaultStream
		out.Poisoned = b.Poisoned
	case b.DefaultStream == "":
	case aModified != bModified:
		if bModified > aModified {
			out.DefaultStream = b.DefaultStream
		}
	default:
		if strict {
			return out, core.NewError(types.ErrorValidate, "conflicting intent default streams at equal priority and modified")
		}
		out.DefaultStream = ""
		out.Poisoned = true
	}
	merged, err := mergeProfileDefaults(a.ProfileDefaults, b.ProfileDefaults, aModified, bModified, strict)
	if err != nil {
		return out, err
	}
	out.ProfileDefaults = merged
	return out, nil
}

func mergeProfileDefaults(a, b map[string]types.StringSet, aModified, bModified int64, strict bool) (map[string]types.StringSet, error) {
	out := make(map[string]types.StringSet, len(a))
	for k, v := range a {
		out[k] = v.Copy()
	}
	for streamName, bSet := range b {
		aSet, ok := out[streamName]
		switch {
		case !ok:
			out[streamName] = bSet.Copy()
		case aSet.Equals(bSet):
			// keep
		case aModified != bModified:
			if bModified > aModified {
				out[streamName] = bSet.Copy()
			}
		default:
			if strict {
				return nil, core.NewError(types.ErrorValidate, "conflicting profile defaults at equal priority and modified")
			}
			// non-strict equal-priority/equal-modified disagreement still
			// must resolve to something, so arbitrarily keep the a-side.
		}
	}
	return out, nil
}

// MergeTranslations folds every Translation document for one
// (module, stream) pair, applying each in ascending Modified order so
// a later document's fields (including empty-string tombstones)
// always win over an earlier one's.
func MergeTranslations(docs []*types.Translation) *types.Translation {
	sorted := append([]*types.Translation(nil), docs...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Modified < sorted[j].Modified })

	out := types.NewTranslation(sorted[0].ModuleName, sorted[0].ModuleStream)
	for _, doc := range sorted {
		if doc.Modified > out.Modified {
			out.Modified = doc.Modified
		}
		for locale, entry := range doc.Entries {
			merged, ok := out.Entries[locale]
			if !ok {
				merged = types.NewTranslationEntry(locale)
			}
			merged.Summary = entry.Summary
			merged.Description = entry.Description
			for profile, desc := range entry.ProfileDescriptions {
				merged.ProfileDescriptions[profile] = desc
			}
			out.Entries[locale] = merged
		}
	}
	return out
}
