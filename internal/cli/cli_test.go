package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	artifactrepo "wfcatalog/internal/gateway/repository/artifact"
)

const (
	apiDoc = `{"4": {"class_type": "CheckpointLoaderSimple", "inputs": {"ckpt_name": "sd.safetensors"}}}`
	uiDoc  = `{"nodes": [], "links": []}`
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return runWith(t, NewRootCmd(), args...)
}

func runWith(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
}

func TestConvertCommand(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeFiles(t, src, map[string]string{
		"txt2img.json": apiDoc,
		"editor.json":  uiDoc,
		"broken.json":  "{",
	})

	out, err := run(t, "convert", "--source", src, "--dest", dst)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Converted: 1 | UI-only (needs API export): 2", lines[0])

	var details map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &details))
	assert.Equal(t, []any{"txt2img.api.json"}, details["converted"])
	assert.Equal(t, []any{"broken.json", "editor.json"}, details["skipped_ui"])
	assert.Equal(t, src, details["source_dir"])
	assert.Equal(t, dst, details["dest_dir"])
	assert.NotContains(t, details, "invalid")
	assert.FileExists(t, filepath.Join(dst, "txt2img.api.json"))
}

func TestConvertCommandJSON(t *testing.T) {
	src := t.TempDir()
	writeFiles(t, src, map[string]string{"broken.json": "{"})

	out, err := run(t, "convert", "--source", src, "--dest", t.TempDir(), "--json")
	require.NoError(t, err)

	var res map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, []any{"broken.json"}, res["invalid"])
	assert.Equal(t, []any{}, res["converted"])
}

func TestListCommand(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.json":     uiDoc,
		"a.api.json": apiDoc,
	})

	out, err := run(t, "list", "--dir", dir, "--prefix", "/x")
	require.NoError(t, err)

	var entries []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "/x/workflows/a.api.json?format=api", entries[1]["template_url"])
	assert.Equal(t, "validated", entries[1]["companion_check"])
}

func TestClassifyCommand(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"api.json": apiDoc,
		"ui.json":  uiDoc,
		"bad.json": "nope",
	})
	api := filepath.Join(dir, "api.json")
	ui := filepath.Join(dir, "ui.json")
	bad := filepath.Join(dir, "bad.json")

	out, err := run(t, "classify", api, ui, bad)
	require.NoError(t, err)
	assert.Equal(t, api+"\tapi\n"+ui+"\tui\n"+bad+"\tinvalid\n", out)

	_, err = run(t, "classify", filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	_, err = run(t, "classify")
	assert.Error(t, err)
}

func withMirror(store artifactrepo.Store) *cobra.Command {
	return newRootCmd(func() (artifactrepo.Store, error) { return store, nil })
}

func TestConvertCommandMirror(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeFiles(t, src, map[string]string{
		"txt2img.json": apiDoc,
		"editor.json":  uiDoc,
	})
	store := artifactrepo.NewMemoryStore("exports")

	_, err := runWith(t, withMirror(store), "convert", "--source", src, "--dest", dst, "--mirror")
	require.NoError(t, err)

	names, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"txt2img.api.json"}, names)

	_, err = runWith(t, newRootCmd(func() (artifactrepo.Store, error) {
		return nil, errors.New("no export mirror configured")
	}), "convert", "--source", src, "--dest", t.TempDir(), "--mirror")
	assert.ErrorContains(t, err, "no export mirror configured")
}

func TestMirrorCommands(t *testing.T) {
	ctx := context.Background()
	store := artifactrepo.NewMemoryStore("exports")
	require.NoError(t, store.Put(ctx, "b.api.json", []byte(apiDoc)))
	require.NoError(t, store.Put(ctx, "a.api.json", []byte(`{}`)))

	out, err := runWith(t, withMirror(store), "mirror", "ls")
	require.NoError(t, err)
	assert.Equal(t, "a.api.json\nb.api.json\n", out)

	out, err = runWith(t, withMirror(store), "mirror", "get", "b.api.json")
	require.NoError(t, err)
	assert.Equal(t, apiDoc, out)

	_, err = runWith(t, withMirror(store), "mirror", "get", "missing.api.json")
	assert.EqualError(t, err, "missing.api.json: not in mirror")

	_, err = runWith(t, withMirror(store), "mirror", "get")
	assert.Error(t, err)

	_, err = runWith(t, newRootCmd(func() (artifactrepo.Store, error) {
		return nil, errors.New("no export mirror configured")
	}), "mirror", "ls")
	assert.ErrorContains(t, err, "no export mirror configured")
}
