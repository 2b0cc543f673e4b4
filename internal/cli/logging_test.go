package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"capsule-bridge/internal/config"
	capsulepkg "capsule-bridge/pkg/capsule"
	"capsule-bridge/pkg/confkit"
)

func TestConfigSummaryLines(t *testing.T) {
	assert.Equal(t, []string{"Configuration: <nil>"}, ConfigSummaryLines(nil))

	cfg := &config.Config{
		Name:          "bridge",
		Env:           "dev",
		QueueCapacity: 16,
		Capsule: confkit.Section[capsulepkg.Config]{
			File:  "/etc/bridge/capsule.yaml",
			Value: capsulepkg.DefaultConfig(),
		},
	}
	lines := ConfigSummaryLines(cfg)
	assert.Contains(t, lines, "Service: bridge")
	assert.Contains(t, lines, "Environment: dev")
	assert.Contains(t, lines, "Queue capacity: 16")
	assert.Contains(t, lines, `Capsule: name="Capsule" precision=float32 select=true`)
	assert.Contains(t, lines, "Capsule config: /etc/bridge/capsule.yaml")
	assert.Contains(t, lines, "Scene config: defaults")
}

func TestSectionLineInline(t *testing.T) {
	section := confkit.Section[capsulepkg.Config]{Value: capsulepkg.DefaultConfig()}
	assert.Equal(t, "Capsule config: inline", sectionLine("Capsule config", section))
}
