package cli

import (
	"fmt"
	"io"

	"github.com/zeromicro/go-zero/core/logx"

	"capsule-bridge/internal/config"
	"capsule-bridge/pkg/confkit"
)

// SetupLogging configures logx from the loaded config. When w is non-nil all
// log output is redirected to it, which keeps stdout free for a protocol.
func SetupLogging(cfg *config.Config, w io.Writer) error {
	if cfg != nil {
		if err := logx.SetUp(cfg.Log); err != nil {
			return fmt.Errorf("setup logging: %w", err)
		}
	}
	if w != nil {
		logx.SetWriter(logx.NewWriter(w))
	}
	return nil
}

// ConfigSummaryLines returns human readable lines describing the loaded app config.
func ConfigSummaryLines(cfg *config.Config) []string {
	if cfg == nil {
		return []string{"Configuration: <nil>"}
	}

	capsuleCfg := cfg.CapsuleConfig()
	lines := []string{
		fmt.Sprintf("Service: %s", cfg.Name),
		fmt.Sprintf("Environment: %s", cfg.Env),
		fmt.Sprintf("Queue capacity: %d", cfg.QueueCapacity),
		fmt.Sprintf("Capsule: name=%q precision=%s select=%t", capsuleCfg.ObjectName, capsuleCfg.Precision, capsuleCfg.Select()),
		sectionLine("Capsule config", cfg.Capsule),
		sectionLine("Scene config", cfg.Scene),
	}

	return lines
}

// LogConfigSummary emits the configuration summary using logx.
func LogConfigSummary(cfg *config.Config) {
	lines := ConfigSummaryLines(cfg)
	if len(lines) == 0 {
		return
	}
	logx.Info("configuration summary")
	for _, line := range lines {
		logx.Infof("config • %s", line)
	}
}

func sectionLine[T any](name string, section confkit.Section[T]) string {
	return fmt.Sprintf("%s: %s", name, section.Origin())
}
