package cli

import (
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandHasSubcommands(t *testing.T) {
	root := newRootCommand()
	names := make([]string, 0, len(root.Commands()))
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	expected := []string{"validate", "merge", "dump", "search"}
	for _, name := range expected {
		assert.Contains(t, names, name, "missing subcommand: %s", name)
	}
}

func TestRootCommandVersion(t *testing.T) {
	root := newRootCommand()
	assert.Equal(t, "dev", root.Version)
}

func TestValidateCommandFlags(t *testing.T) {
	cmd := newValidateCommand()
	assert.NotNil(t, cmd.Flags().Lookup("strict"))
}

func TestMergeCommandFlags(t *testing.T) {
	cmd := newMergeCommand()
	for _, name := range []string{"output", "strict", "strict-default-streams"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing flag: %s", name)
	}
}

func TestDumpCommandFlags(t *testing.T) {
	cmd := newDumpCommand()
	for _, name := range []string{"output", "strict"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing flag: %s", name)
	}
}

func TestSearchCommandFlags(t *testing.T) {
	cmd := newSearchCommand()
	for _, name := range []string{"module", "stream", "version", "context", "arch", "nsvca", "rpm"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing flag: %s", name)
	}
}

func TestParseMergeInput(t *testing.T) {
	path, priority, err := parseMergeInput("a.yaml")
	require.NoError(t, err)
	assert.Equal(t, "a.yaml", path)
	assert.Equal(t, int32(0), priority)

	path, priority, err = parseMergeInput("b.yaml:500")
	require.NoError(t, err)
	assert.Equal(t, "b.yaml", path)
	assert.Equal(t, int32(500), priority)

	_, _, err = parseMergeInput("c.yaml:not-a-number")
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestExitCodeForError(t *testing.T) {
	cases := []struct {
		code errbuilder.Code
		want int
	}{
		{errbuilder.CodeInvalidArgument, 2},
		{errbuilder.CodeAlreadyExists, 2},
		{errbuilder.CodeFailedPrecondition, 3},
		{errbuilder.CodePermissionDenied, 4},
		{errbuilder.CodeNotFound, 5},
		{errbuilder.CodeInternal, 6},
	}
	for _, tc := range cases {
		err := errbuilder.New().WithCode(tc.code).WithMsg("boom")
		assert.Equal(t, tc.want, exitCodeForError(err))
	}
}

func TestErrorMessagePrefersBuilderMsg(t *testing.T) {
	err := errbuilder.New().WithCode(errbuilder.CodeInvalidArgument).WithMsg("nice message")
	assert.Equal(t, "nice message", errorMessage(err))
}

func TestFlagChangedUnknownFlag(t *testing.T) {
	cmd := newValidateCommand()
	assert.False(t, flagChanged(cmd, "does-not-exist"))
}
