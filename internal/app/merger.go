package app

import (
	"github.com/ZanzyTHEbar/errbuilder-go"

	"modulemd/internal/policies"
	"modulemd/internal/shared"
	"modulemd/internal/types"
)

type mergeInput struct {
	index    *ModuleIndex
	priority int32
}

// IndexMerger accepts a sequence of (Index, priority) pairs and
// resolves them into one Index. It gathers candidates per module and
// hands conflicts to internal/policies, which decides which candidate
// wins; it is single-use, since once Resolve runs the merger is spent
// and further Associate/Resolve calls fail.
type IndexMerger struct {
	inputs               []mergeInput
	strictDefaultStreams bool
	spent                bool
}

// NewIndexMerger constructs an empty merger. strictDefaultStreams
// controls whether an equal-priority, equal-modified default-stream
// collision is a VALIDATE_ERROR instead of being silently poisoned.
func NewIndexMerger(strictDefaultStreams bool) *IndexMerger {
	return &IndexMerger{strictDefaultStreams: strictDefaultStreams}
}

// Associate registers one index at a given priority, 0 through 1000
// inclusive, higher overriding lower.
func (m *IndexMerger) Associate(index *ModuleIndex, priority int32) error {
	if m.spent {
		return errbuilder.New().WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("merger has already been resolved and cannot accept more inputs")
	}
	if priority < 0 || priority > 1000 {
		return errbuilder.New().WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("merge priority must be between 0 and 1000")
	}
	m.inputs = append(m.inputs, mergeInput{index: index, priority: priority})
	return nil
}

// Resolve merges every associated index into one, consuming the
// merger. Calling Resolve twice returns a FAILED_PRECONDITION error.
func (m *IndexMerger) Resolve() (*ModuleIndex, error) {
	if m.spent {
		return nil, errbuilder.New().WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("merger has already been resolved")
	}
	m.spent = true

	out := NewModuleIndex()
	names := map[string]struct{}{}
	for _, in := range m.inputs {
		for _, name := range in.index.GetModuleNames() {
			names[name] = struct{}{}
		}
	}

	for _, name := range shared.SortedKeys(names) {
		if err := m.mergeModule(out, name); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (m *IndexMerger) mergeModule(out *ModuleIndex, name string) error {
	type streamEntry struct {
		stream   types.ModuleStream
		priority int32
	}
	streamsByKey := map[string]streamEntry{}

	var defaultsCandidates []policies.PriorityValue[*types.DefaultsV1]
	translationsByStream := map[string][]*types.Translation{}
	obsoletesByKey := map[string][]policies.PriorityValue[*types.Obsoletes]{}

	for _, in := range m.inputs {
		mod, ok := in.index.GetModule(name)
		if !ok {
			continue
		}
		// Streams merge by set-union keyed on NSVCA; a duplicate NSVCA
		// with different content across inputs is undefined behaviour, so
		// higher priority wins the slot and ties keep whichever was seen
		// first.
		for _, s := range mod.Streams() {
			key, _ := s.StreamIdentity().NSVCA()
			existing, seen := streamsByKey[key]
			if !seen || in.priority > existing.priority {
				streamsByKey[key] = streamEntry{stream: s, priority: in.priority}
			}
		}
		if mod.defaults != nil {
			defaultsCandidates = append(defaultsCandidates, policies.PriorityValue[*types.DefaultsV1]{Value: mod.defaults, Priority: in.priority})
		}
		for _, t := range mod.Translations() {
			translationsByStream[t.ModuleStream] = append(translationsByStream[t.ModuleStream], t)
		}
		for _, o := range mod.Obsoletes() {
			key := obsoletesKey(o)
			obsoletesByKey[key] = append(obsoletesByKey[key], policies.PriorityValue[*types.Obsoletes]{Value: o, Priority: in.priority})
		}
	}

	ctx := noopCtx()
	for _, entry := range streamsByKey {
		if err := out.AddModuleStream(ctx, entry.stream); err != nil {
			return err
		}
	}

	if len(defaultsCandidates) > 0 {
		merged, err := policies.MergeDefaults(defaultsCandidates, m.strictDefaultStreams)
		if err != nil {
			return err
		}
		if err := out.AddDefaults(ctx, merged); err != nil {
			return err
		}
	}

	for _, stream := range shared.SortedKeys(translationsByStream) {
		merged := policies.MergeTranslations(translationsByStream[stream])
		if err := out.AddTranslation(ctx, merged); err != nil {
			return err
		}
	}

	for _, key := range shared.SortedKeys(obsoletesByKey) {
		winner := policies.PickByPriority(obsoletesByKey[key])
		if err := out.AddObsoletes(ctx, winner); err != nil {
			return err
		}
	}
	return nil
}
