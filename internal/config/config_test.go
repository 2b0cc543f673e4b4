package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"capsule-bridge/pkg/position"
	_ "capsule-bridge/pkg/scene/sim"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_WithSections(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "capsule.yaml", "object_name: ${BRIDGE_TEST_OBJECT}\nprecision: float64\n")
	writeFile(t, dir, "scene.yaml", "default: editor\nhosts:\n  editor:\n    type: sim\n")
	mainPath := writeFile(t, dir, "bridge.yaml", ""+
		"Name: bridge-test\n"+
		"Env: dev\n"+
		"QueueCapacity: 8\n"+
		"Log:\n  Mode: console\n  Level: error\n"+
		"Capsule:\n  File: capsule.yaml\n"+
		"Scene:\n  File: scene.yaml\n")
	t.Setenv("BRIDGE_TEST_OBJECT", "Probe")

	cfg, err := Load(mainPath)
	require.NoError(t, err)
	assert.Equal(t, "bridge-test", cfg.Name)
	assert.Equal(t, "dev", cfg.Env)
	assert.False(t, cfg.IsTestEnv())
	assert.Equal(t, 8, cfg.QueueCapacity)
	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, "bridge-test", cfg.Log.ServiceName, "service name defaults to Name")
	assert.Equal(t, dir, cfg.BaseDir())
	assert.Equal(t, mainPath, cfg.MainPath())

	require.NotNil(t, cfg.Capsule.Value)
	assert.Equal(t, filepath.Join(dir, "capsule.yaml"), cfg.Capsule.File)
	assert.Equal(t, "Probe", cfg.CapsuleConfig().ObjectName)
	assert.Equal(t, position.Float64, cfg.CapsuleConfig().Precision)

	require.NotNil(t, cfg.Scene.Value)
	assert.Equal(t, "editor", cfg.Scene.Value.DefaultName())
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	mainPath := writeFile(t, dir, "bridge.yaml", "Name: minimal\n")

	cfg, err := Load(mainPath)
	require.NoError(t, err)
	assert.Equal(t, "test", cfg.Env)
	assert.True(t, cfg.IsTestEnv())
	assert.Equal(t, 64, cfg.QueueCapacity)
	assert.Nil(t, cfg.Capsule.Value)
	assert.Nil(t, cfg.Scene.Value)
	assert.Equal(t, "Capsule", cfg.CapsuleConfig().ObjectName)
}

func TestLoad_SectionError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "capsule.yaml", "precision: quad\n")
	mainPath := writeFile(t, dir, "bridge.yaml", "Capsule:\n  File: capsule.yaml\n")

	_, err := Load(mainPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load capsule config")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := &Config{Env: "staging", QueueCapacity: 1}
	require.Error(t, cfg.Validate())

	cfg = &Config{Env: "prod", QueueCapacity: 0}
	require.Error(t, cfg.Validate())

	cfg = &Config{Env: " ", QueueCapacity: 1, Name: "x"}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "test", cfg.Env)
	assert.Equal(t, "x", cfg.Log.ServiceName)
}

func TestRepositoryConfigLoads(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "etc", "bridge.yaml"))
	require.NoError(t, err)
	require.NotNil(t, cfg.Capsule.Value)
	require.NotNil(t, cfg.Scene.Value)
	assert.Equal(t, "Capsule", cfg.CapsuleConfig().ObjectName)
}
