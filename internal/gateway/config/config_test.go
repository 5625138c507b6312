package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var managedEnv = []string{
	"PORT", "APP_ENV", "COMFY_ROOT", "COMFY_USER", "COMFY_USER_DIR",
	"COMFY_WORKFLOWS_DIR", "COMFY_WORKFLOWS_API_DIR", "CVB_ROUTE_PREFIX",
	"CVB_CACHE_ENTRIES", "ARTIFACT_S3_ENDPOINT", "ARTIFACT_S3_REGION",
	"ARTIFACT_S3_ACCESS_KEY", "ARTIFACT_S3_SECRET_KEY", "ARTIFACT_S3_BUCKET",
	"ARTIFACT_S3_PREFIX", "ARTIFACT_S3_USE_SSL", "MINIO_ROOT_USER", "MINIO_ROOT_PASSWORD",
}

// cleanEnv runs the test from an empty directory with every variable Load
// reads unset, restoring them afterwards.
func cleanEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	for _, key := range managedEnv {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	return dir
}

func TestLoadDefaults(t *testing.T) {
	cleanEnv(t)

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, ":8081", cfg.Port)
	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, filepath.Join(".", "user", "default", "workflows"), cfg.WorkflowsDir)
	assert.Equal(t, filepath.Join(".", "user", "default", "workflows_api"), cfg.ExportDir)
	assert.Equal(t, "/cvb", cfg.RoutePrefix)
	assert.Equal(t, 0, cfg.CacheEntries)
	assert.False(t, cfg.Artifact.Enabled())
}

func TestLoadUserDirs(t *testing.T) {
	cleanEnv(t)

	t.Setenv("COMFY_ROOT", "/opt/comfy")
	t.Setenv("COMFY_USER", "alice")
	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "/opt/comfy/user/alice/workflows", cfg.WorkflowsDir)
	assert.Equal(t, "/opt/comfy/user/alice/workflows_api", cfg.ExportDir)

	t.Setenv("COMFY_USER_DIR", "/data/u")
	cfg, err = Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "/data/u/workflows", cfg.WorkflowsDir)

	t.Setenv("COMFY_WORKFLOWS_DIR", "/src")
	t.Setenv("COMFY_WORKFLOWS_API_DIR", "/dst")
	cfg, err = Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "/src", cfg.WorkflowsDir)
	assert.Equal(t, "/dst", cfg.ExportDir)
}

func TestLoadPrecedence(t *testing.T) {
	dir := cleanEnv(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("PORT=7000\nCVB_ROUTE_PREFIX=/dotenv\nCOMFY_WORKFLOWS_DIR=/from-dotenv\n"), 0o644))

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Port)
	assert.Equal(t, "/dotenv", cfg.RoutePrefix)
	assert.Equal(t, "/from-dotenv", cfg.WorkflowsDir)

	t.Setenv("PORT", "9000")
	t.Setenv("CVB_ROUTE_PREFIX", "api/")
	cfg, err = Load(nil)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Port)
	assert.Equal(t, "/api", cfg.RoutePrefix)

	cfg, err = Load([]string{"-port", "127.0.0.1:1234", "-prefix", "/", "-workflows-dir", "/flag", "-export-dir", "/out"})
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:1234", cfg.Port)
	assert.Equal(t, "", cfg.RoutePrefix)
	assert.Equal(t, "/flag", cfg.WorkflowsDir)
	assert.Equal(t, "/out", cfg.ExportDir)
}

func TestLoadCacheEntries(t *testing.T) {
	cleanEnv(t)

	t.Setenv("CVB_CACHE_ENTRIES", "128")
	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, 128, cfg.CacheEntries)

	t.Setenv("CVB_CACHE_ENTRIES", "lots")
	_, err = Load(nil)
	assert.Error(t, err)
}

func TestLoadArtifact(t *testing.T) {
	cleanEnv(t)

	t.Setenv("ARTIFACT_S3_ENDPOINT", "minio:9000")
	t.Setenv("MINIO_ROOT_USER", "user")
	t.Setenv("MINIO_ROOT_PASSWORD", "secret")
	t.Setenv("ARTIFACT_S3_PREFIX", "exports")
	t.Setenv("ARTIFACT_S3_USE_SSL", "false")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.True(t, cfg.Artifact.Enabled())
	assert.Equal(t, ArtifactConfig{
		Endpoint:  "minio:9000",
		Region:    "us-east-1",
		AccessKey: "user",
		SecretKey: "secret",
		Bucket:    "workflows-api",
		Prefix:    "exports",
		UseSSL:    false,
	}, cfg.Artifact)
}

func TestLoadRejectsUnknownFlag(t *testing.T) {
	cleanEnv(t)
	_, err := Load([]string{"-nope"})
	assert.Error(t, err)
}

func TestNormalizePrefix(t *testing.T) {
	assert.Equal(t, "/cvb", NormalizePrefix("cvb"))
	assert.Equal(t, "/a/b", NormalizePrefix(" /a/b/ "))
	assert.Equal(t, "", NormalizePrefix("/"))
}
