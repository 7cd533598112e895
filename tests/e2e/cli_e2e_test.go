package e2e

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"modulemd/tests/testutil"
)

const fooStreamYAML = `---
document: modulemd
version: 1
data:
  name: foo
  stream: latest
  summary: an example module
  description: a longer description of foo
  license:
    module: [MIT]
  requires:
    platform: f29
  buildrequires:
    platform: f29
...
`

func TestValidateCommandE2E(t *testing.T) {
	root := testutil.RepoRoot(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "foo.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fooStreamYAML), 0o644))

	cmd := exec.Command("go", "run", "./cmd/modulemd", "validate", path)
	cmd.Dir = root
	cmd.Env = append(os.Environ(), "GO111MODULE=on")
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, string(out))
	require.Contains(t, string(out), "1/1 subdocuments valid")
}

func TestDumpCommandE2E(t *testing.T) {
	root := testutil.RepoRoot(t)
	dir := t.TempDir()
	inPath := filepath.Join(dir, "foo.yaml")
	outPath := filepath.Join(dir, "out.yaml")
	require.NoError(t, os.WriteFile(inPath, []byte(fooStreamYAML), 0o644))

	cmd := exec.Command("go", "run", "./cmd/modulemd", "dump", inPath, "--output", outPath)
	cmd.Dir = root
	cmd.Env = append(os.Environ(), "GO111MODULE=on")
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, string(out))
	require.FileExists(t, outPath)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	require.Contains(t, string(data), "document: modulemd")
	require.Contains(t, string(data), "name: foo")
}

func TestMergeCommandE2E(t *testing.T) {
	root := testutil.RepoRoot(t)
	dir := t.TempDir()
	aPath := filepath.Join(dir, "a.yaml")
	bPath := filepath.Join(dir, "b.yaml")
	require.NoError(t, os.WriteFile(aPath, []byte(fooStreamYAML), 0o644))
	require.NoError(t, os.WriteFile(bPath, []byte(fooStreamYAML), 0o644))

	cmd := exec.Command("go", "run", "./cmd/modulemd", "merge", aPath+":0", bPath+":10")
	cmd.Dir = root
	cmd.Env = append(os.Environ(), "GO111MODULE=on")
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, string(out))
	require.Contains(t, string(out), "name: foo")
}
