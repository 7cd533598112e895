package integration

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"modulemd/internal/app"
	"modulemd/internal/types"
)

func streamWithRpms(name, stream string, nevras ...string) *types.ModuleStreamV1 {
	s := types.NewModuleStreamV1(types.StreamIdentity{Name: name, Stream: stream})
	s.RpmArtifactSet = types.NewStringSet(nevras...)
	return s
}

// search_rpms orders matches by package name, then by version-release
// newest-first, per the comparator wired from core.RPMVersionComparator.
func TestSearchRpmsOrdersByVersion(t *testing.T) {
	ctx := context.Background()
	idx := app.NewModuleIndex()
	require.NoError(t, idx.AddModuleStream(ctx, streamWithRpms("foo", "latest",
		"bar-0:1.2-1.x86_64",
		"bar-0:1.10-1.x86_64",
		"bar-0:1.1-1.x86_64",
	)))

	got, err := idx.SearchRpms("bar-*")
	require.NoError(t, err)

	want := []string{
		"bar-0:1.10-1.x86_64",
		"bar-0:1.2-1.x86_64",
		"bar-0:1.1-1.x86_64",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected search_rpms order (-want +got):\n%s", diff)
	}
}

func TestSearchStreamsByNSVCAGlob(t *testing.T) {
	ctx := context.Background()
	idx := app.NewModuleIndex()
	require.NoError(t, idx.AddModuleStream(ctx, types.NewModuleStreamV1(types.StreamIdentity{Name: "foo", Stream: "latest", Context: "c1", Arch: "x86_64"})))
	require.NoError(t, idx.AddModuleStream(ctx, types.NewModuleStreamV1(types.StreamIdentity{Name: "foo", Stream: "earliest", Context: "c1", Arch: "x86_64"})))

	matches, err := idx.SearchStreamsByNSVCAGlob("foo:latest:*")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	nsvca, _ := matches[0].StreamIdentity().NSVCA()
	if diff := cmp.Diff("foo:latest:0:c1:x86_64", nsvca); diff != "" {
		t.Errorf("unexpected NSVCA (-want +got):\n%s", diff)
	}
}
