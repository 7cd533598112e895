package integration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modulemd/internal/adapters"
	"modulemd/internal/core"
	"modulemd/internal/types"
)

// S1 — simple round-trip: parse a defaults document, check its fields,
// re-emit it, and expect the bytes to match exactly.
func TestDefaultsRoundTrip(t *testing.T) {
	input := []byte(`---
document: modulemd-defaults
version: 1
data:
  module: foo
  stream: latest
  profiles:
    latest: [bar, baz]
    libonly: []
...
`)
	codec := adapters.NewStreamCodec(false)
	results := codec.ParseAll(input)
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)

	doc := results[0].Document
	require.NotNil(t, doc.Defaults)
	assert.Equal(t, "foo", doc.Defaults.ModuleName)
	assert.Equal(t, "latest", doc.Defaults.DefaultStream)
	assert.Equal(t, types.NewStringSet("bar", "baz"), doc.Defaults.ProfileDefaults["latest"])
	assert.Empty(t, doc.Defaults.ProfileDefaults["libonly"])

	out, err := codec.EmitDocument(doc)
	require.NoError(t, err)
	assert.Equal(t, string(input), string(out))

	again := codec.ParseAll(out)
	require.Len(t, again, 1)
	require.NoError(t, again[0].Err)
	assert.True(t, doc.Defaults.Equals(again[0].Document.Defaults))
}

// S2 — rpm-map consistency check.
func TestRpmMapConsistency(t *testing.T) {
	entry := types.RpmMapEntry{Name: "bar", Epoch: 0, Version: "1.23", Release: "1.module_el8+1+abc", Arch: "x86_64"}
	require.NoError(t, core.CheckNevraConsistency(entry, "bar-0:1.23-1.module_el8+1+abc.x86_64"))

	err := core.CheckNevraConsistency(entry, "bar-1:1.23-1.module_el8+1+abc.x86_64")
	require.Error(t, err)
}

// S3 — stream upgrade from V1 to V2.
func TestStreamUpgradeV1ToV2(t *testing.T) {
	id := types.StreamIdentity{Name: "foo", Stream: "latest"}
	v1 := types.NewModuleStreamV1(id)
	v1.Requires["platform"] = "f29"
	v1.BuildRequires["buildtools"] = "v1"

	upgraded, err := core.UpgradeStream(v1, types.StreamVersionV2)
	require.NoError(t, err)

	v2, ok := upgraded.(*types.ModuleStreamV2)
	require.True(t, ok)
	require.Len(t, v2.DependenciesList, 1)
	assert.Equal(t, types.NewStringSet("f29"), v2.DependenciesList[0].Runtime["platform"])
	assert.Equal(t, types.NewStringSet("v1"), v2.DependenciesList[0].Buildtime["buildtools"])
}

// S6 — quoting of numeric-looking stream names.
func TestQuotingOfNumericLookingStream(t *testing.T) {
	assert.True(t, core.NeedsQuoting("5.30"))
	assert.False(t, core.NeedsQuoting("latest"))

	defaults := types.NewDefaultsV1("foo")
	defaults.DefaultStream = "5.30"
	doc := adapters.WrapDefaults(defaults)

	codec := adapters.NewStreamCodec(false)
	out, err := codec.EmitDocument(doc)
	require.NoError(t, err)
	assert.Contains(t, string(out), `stream: "5.30"`)

	again := codec.ParseAll(out)
	require.Len(t, again, 1)
	require.NoError(t, again[0].Err)
	assert.Equal(t, "5.30", again[0].Document.Defaults.DefaultStream)
}

// C6 — a failing subdocument never aborts parsing of the rest of the
// stream; each gets its own diagnostic record.
func TestMultiDocumentStreamIsolatesFailures(t *testing.T) {
	input := []byte(`---
document: modulemd-defaults
version: 1
data:
  module: foo
  stream: latest
...
---
document: modulemd-defaults
version: 1
data:
  stream: latest
...
---
document: modulemd-defaults
version: 1
data:
  module: bar
  stream: earliest
...
`)
	codec := adapters.NewStreamCodec(false)
	results := codec.ParseAll(input)
	require.Len(t, results, 3)
	assert.NoError(t, results[0].Err)
	assert.Error(t, results[1].Err)
	assert.NoError(t, results[2].Err)
}
