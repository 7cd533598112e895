package integration

import (
	"context"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modulemd/internal/app"
	"modulemd/internal/types"
)

func defaultsWith(module, stream string, modified int64) *types.DefaultsV1 {
	d := types.NewDefaultsV1(module)
	d.DefaultStream = stream
	d.Modified = modified
	return d
}

// S4 — merge with different modified: the later document wins outright.
func TestMergeDefaultsDifferentModified(t *testing.T) {
	ctx := context.Background()

	a := app.NewModuleIndex()
	require.NoError(t, a.AddDefaults(ctx, defaultsWith("foo", "latest", 100)))

	b := app.NewModuleIndex()
	require.NoError(t, b.AddDefaults(ctx, defaultsWith("foo", "earliest", 200)))

	merger := app.NewIndexMerger(false)
	require.NoError(t, merger.Associate(a, 0))
	require.NoError(t, merger.Associate(b, 0))

	out, err := merger.Resolve()
	require.NoError(t, err)

	mod, ok := out.GetModule("foo")
	require.True(t, ok)
	require.NotNil(t, mod.Defaults())
	assert.Equal(t, "earliest", mod.Defaults().DefaultStream)
	assert.Equal(t, int64(200), mod.Defaults().Modified)
}

// S5 — merge conflict poison: equal modified, non-strict poisons the
// default stream; strict mode fails validation instead.
func TestMergeDefaultsEqualModifiedPoisons(t *testing.T) {
	ctx := context.Background()

	a := app.NewModuleIndex()
	require.NoError(t, a.AddDefaults(ctx, defaultsWith("foo", "latest", 100)))

	b := app.NewModuleIndex()
	require.NoError(t, b.AddDefaults(ctx, defaultsWith("foo", "earliest", 100)))

	merger := app.NewIndexMerger(false)
	require.NoError(t, merger.Associate(a, 0))
	require.NoError(t, merger.Associate(b, 0))

	out, err := merger.Resolve()
	require.NoError(t, err)

	mod, ok := out.GetModule("foo")
	require.True(t, ok)
	require.NotNil(t, mod.Defaults())
	assert.Empty(t, mod.Defaults().DefaultStream)
	assert.True(t, mod.Defaults().Poisoned)
}

func TestMergeDefaultsEqualModifiedStrictFails(t *testing.T) {
	ctx := context.Background()

	a := app.NewModuleIndex()
	require.NoError(t, a.AddDefaults(ctx, defaultsWith("foo", "latest", 100)))

	b := app.NewModuleIndex()
	require.NoError(t, b.AddDefaults(ctx, defaultsWith("foo", "earliest", 100)))

	merger := app.NewIndexMerger(true)
	require.NoError(t, merger.Associate(a, 0))
	require.NoError(t, merger.Associate(b, 0))

	_, err := merger.Resolve()
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

// Invariant 6: every module and NSVCA present in any input appears in
// the merged output.
func TestMergeUnionOfModulesAndStreams(t *testing.T) {
	ctx := context.Background()

	a := app.NewModuleIndex()
	require.NoError(t, a.AddModuleStream(ctx, types.NewModuleStreamV1(types.StreamIdentity{Name: "foo", Stream: "a"})))

	b := app.NewModuleIndex()
	require.NoError(t, b.AddModuleStream(ctx, types.NewModuleStreamV1(types.StreamIdentity{Name: "bar", Stream: "b"})))

	merger := app.NewIndexMerger(false)
	require.NoError(t, merger.Associate(a, 0))
	require.NoError(t, merger.Associate(b, 10))

	out, err := merger.Resolve()
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"bar", "foo"}, out.GetModuleNames())

	var nsvcas []string
	for _, s := range out.SearchStreams("", "", 0, "", "") {
		nsvca, _ := s.StreamIdentity().NSVCA()
		nsvcas = append(nsvcas, nsvca)
	}
	assert.ElementsMatch(t, []string{"bar:b:0::", "foo:a:0::"}, nsvcas)
}

// The merger is single-use: Resolve twice is a FAILED_PRECONDITION.
func TestMergerIsSingleUse(t *testing.T) {
	merger := app.NewIndexMerger(false)
	require.NoError(t, merger.Associate(app.NewModuleIndex(), 0))

	_, err := merger.Resolve()
	require.NoError(t, err)

	_, err = merger.Resolve()
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeFailedPrecondition, errbuilder.CodeOf(err))
}
