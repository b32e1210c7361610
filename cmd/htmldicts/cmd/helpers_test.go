package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const testEntries = `{"id":"doc_1","term":"tærqūs","definition":"hare","source":"Abaev.html"}
{"id":"doc_2","term":"dzhaba","definition":"coat","source":"Miller.html"}
{"id":"doc_3","term":"хъæд","definition":"forest","source":"Abaev.html"}
`

// isolateCLI points HOME, the user config dir and the index path into a temp
// directory so tests never touch the real user environment.
func isolateCLI(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, ".config"))

	indexPath := filepath.Join(tmpDir, "index.bleve")
	t.Setenv("HTMLDICTS_INDEX_PATH", indexPath)
	return indexPath
}

// runCLI executes the root command with args and returns stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

// buildTestIndex writes testEntries to a JSONL file and indexes it.
func buildTestIndex(t *testing.T) {
	t.Helper()

	entriesPath := filepath.Join(t.TempDir(), "entries.jsonl")
	require.NoError(t, os.WriteFile(entriesPath, []byte(testEntries), 0o644))

	_, err := runCLI(t, "index", entriesPath)
	require.NoError(t, err)
}
