package sources_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/SimonG96/LightweightIocContainer-sub000/core/configuration"
	"github.com/SimonG96/LightweightIocContainer-sub000/core/configuration/sources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func TestJsonSource(t *testing.T) {
	p := writeFile(t, "settings.json", `{
		// comments are stripped
		"Container": { "Name": "main", "Synchronized": true },
		"Ports": [80, 443],
		"Ratio": 0.5
	}`)

	manager := configuration.NewManager()
	manager.AddSource(&sources.JsonConfigurationSource{Path: p})

	assert.Equal(t, "main", manager.Get("Container:Name"))
	assert.Equal(t, "true", manager.Get("container:synchronized"), "keys are case-insensitive")
	assert.Equal(t, "443", manager.Get("Ports:1"))
	assert.Equal(t, "0.5", manager.Get("Ratio"))
}

func TestYamlSource(t *testing.T) {
	p := writeFile(t, "settings.yaml", "container:\n  name: yaml\n  synchronized: false\nlevels:\n  - info\n  - warn\n")

	manager := configuration.NewManager()
	manager.AddSource(&sources.YamlConfigurationSource{Path: p})

	assert.Equal(t, "yaml", manager.Get("Container:Name"))
	assert.Equal(t, "false", manager.Get("Container:Synchronized"))
	assert.Equal(t, "warn", manager.Get("Levels:1"))
}

func TestDotenvSource(t *testing.T) {
	p := writeFile(t, ".env", "APP_CONTAINER__NAME=env\nAPP_CONTAINER__SYNCHRONIZED=true\nOTHER=ignored\n")

	manager := configuration.NewManager()
	manager.AddSource(&sources.DotenvConfigurationSource{Path: p, Prefix: "APP_"})

	assert.Equal(t, "env", manager.Get("Container:Name"))
	assert.Equal(t, "true", manager.Get("Container:Synchronized"))
	_, ok := manager.TryGet("Other")
	assert.False(t, ok, "variables without the prefix are skipped")
}

func TestOptionalMissingFile(t *testing.T) {
	manager := configuration.NewManager()
	manager.AddSource(&sources.JsonConfigurationSource{Path: filepath.Join(t.TempDir(), "missing.json"), Optional: true})
	_, ok := manager.TryGet("Anything")
	assert.False(t, ok)

	assert.Panics(t, func() {
		manager.AddSource(&sources.JsonConfigurationSource{Path: filepath.Join(t.TempDir(), "missing.json")})
	}, "a required file must exist")
}

func TestSourcesOverride(t *testing.T) {
	manager := configuration.NewManager()
	manager.AddSource(&sources.MemoryConfigurationSource{InitData: map[string]string{"A": "1", "B": "1"}})
	manager.AddSource(&sources.MemoryConfigurationSource{InitData: map[string]string{"B": "2"}})

	assert.Equal(t, "1", manager.Get("A"))
	assert.Equal(t, "2", manager.Get("B"), "later sources override earlier ones")
}
