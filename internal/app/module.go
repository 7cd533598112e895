// Package app implements the document aggregator, the module index,
// and the cross-index merger. It sits above internal/core and
// internal/adapters and below internal/cli, mirroring the teacher's
// ports/app layering.
package app

import (
	"context"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"modulemd/internal/core"
	"modulemd/internal/shared"
	"modulemd/internal/types"
)

// noopCtx is used where internal/app calls into internal/core's
// context-accepting validators but has no caller context to thread
// through (the merger operates purely on already-parsed in-memory
// indexes).
func noopCtx() context.Context { return context.Background() }

// Module aggregates every document that names one module: its
// streams, its defaults, its translations (one per stream name), and
// its obsoletes records. A module name owns its streams, defaults,
// translations and obsoletes as one unit; ModuleIndex keys its module
// map by this name.
type Module struct {
	Name string

	streams      map[string]types.ModuleStream // keyed by NSVCA
	defaults     *types.DefaultsV1
	translations map[string]*types.Translation // keyed by stream name
	obsoletes    map[string]*types.Obsoletes   // keyed by (stream, context, modified)
}

// NewModule constructs an empty module aggregate.
func NewModule(name string) *Module {
	return &Module{
		Name:         name,
		streams:      map[string]types.ModuleStream{},
		translations: map[string]*types.Translation{},
		obsoletes:    map[string]*types.Obsoletes{},
	}
}

func (m *Module) addStream(s types.ModuleStream) error {
	id := s.StreamIdentity()
	if id.Name != m.Name {
		return errbuilder.New().WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("stream module name does not match this module")
	}
	key, ok := id.NSVCA()
	if !ok {
		return errbuilder.New().WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("stream must have a name and stream to be indexed")
	}
	m.streams[key] = s
	return nil
}

// Streams returns every stream in the module, ordered by NSVCA, so
// callers always see a stable, fully deterministic order.
func (m *Module) Streams() []types.ModuleStream {
	out := make([]types.ModuleStream, 0, len(m.streams))
	for _, s := range m.streams {
		out = append(out, s)
	}
	sortStreams(out)
	return out
}

func sortStreams(streams []types.ModuleStream) {
	for i := 1; i < len(streams); i++ {
		for j := i; j > 0; j-- {
			a, b := streams[j-1].StreamIdentity(), streams[j].StreamIdentity()
			if shared.CompareStreamIdentity(a, b) <= 0 {
				break
			}
			streams[j-1], streams[j] = streams[j], streams[j-1]
		}
	}
}

// Defaults returns the module's defaults document, or nil if none was
// ever added.
func (m *Module) Defaults() *types.DefaultsV1 { return m.defaults }

// Translations returns every translation document attached to the
// module, ordered by stream name.
func (m *Module) Translations() []*types.Translation {
	out := make([]*types.Translation, 0, len(m.translations))
	for _, k := range shared.SortedKeys(m.translations) {
		out = append(out, m.translations[k])
	}
	return out
}

// Obsoletes returns every obsoletes record attached to the module,
// ordered by (stream, context, modified).
func (m *Module) Obsoletes() []*types.Obsoletes {
	out := make([]*types.Obsoletes, 0, len(m.obsoletes))
	for _, k := range shared.SortedKeys(m.obsoletes) {
		out = append(out, m.obsoletes[k])
	}
	return out
}

// DefaultStream resolves the module's default stream, optionally under
// a named intent; the empty intent string means the unqualified
// fallback.
func (m *Module) DefaultStream(intent string) (string, bool) {
	if m.defaults == nil {
		return "", false
	}
	if intent == "" {
		if m.defaults.Poisoned || m.defaults.DefaultStream == "" {
			return "", false
		}
		return m.defaults.DefaultStream, true
	}
	return m.defaults.GetIntentDefaultStream(intent)
}

func obsoletesKey(o *types.Obsoletes) string {
	k := o.Key()
	return k[0] + "\x00" + k[1] + "\x00" + k[2] + "\x00" + k[3]
}

// Copy deep-copies a Module and every document it owns.
func (m *Module) Copy() *Module {
	out := NewModule(m.Name)
	for k, v := range m.streams {
		out.streams[k] = v.Copy()
	}
	if m.defaults != nil {
		out.defaults = m.defaults.Copy()
	}
	for k, v := range m.translations {
		out.translations[k] = v.Copy()
	}
	for k, v := range m.obsoletes {
		out.obsoletes[k] = v.Copy()
	}
	return out
}

// upgradeTo upgrades every stream in the module to the target version.
func (m *Module) upgradeTo(target types.StreamVersion) error {
	for key, s := range m.streams {
		upgraded, err := core.UpgradeStream(s, target)
		if err != nil {
			return err
		}
		delete(m.streams, key)
		newKey, ok := upgraded.StreamIdentity().NSVCA()
		if !ok {
			return core.NewError(types.ErrorUpgrade, "upgraded stream lost its identity")
		}
		m.streams[newKey] = upgraded
	}
	return nil
}
