package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/core/logx"

	capsulepkg "capsule-bridge/pkg/capsule"
	"capsule-bridge/pkg/confkit"
	scenepkg "capsule-bridge/pkg/scene"
)

type Config struct {
	Name string `json:",default=capsule-bridge"`
	// Env indicates the running environment: test | dev | prod
	Env           string       `json:",default=test"`
	Log           logx.LogConf `json:",optional"`
	QueueCapacity int          `json:",default=64"`

	Capsule confkit.Section[capsulepkg.Config] `json:",optional"`
	Scene   confkit.Section[scenepkg.Config]   `json:",optional"`

	mainPath string
	baseDir  string
}

func (c *Config) IsTestEnv() bool {
	return c.Env == "test" || c.Env == ""
}

func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

func Load(path string) (*Config, error) {
	confkit.LoadDotenvOnce()

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path %s: %w", path, err)
	}

	var cfg Config
	if err := conf.Load(absPath, &cfg, conf.UseEnv()); err != nil {
		return nil, fmt.Errorf("load config %s: %w", absPath, err)
	}

	cfg.mainPath = absPath
	cfg.baseDir = filepath.Dir(absPath)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.hydrateSections(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Env)) {
	case "", "test", "dev", "prod":
		if strings.TrimSpace(c.Env) == "" {
			c.Env = "test"
		}
	default:
		return errors.New("config: env must be one of test|dev|prod")
	}
	if c.QueueCapacity <= 0 {
		return errors.New("config: queueCapacity must be positive")
	}
	if strings.TrimSpace(c.Log.ServiceName) == "" {
		c.Log.ServiceName = c.Name
	}
	return nil
}

func (c *Config) hydrateSections() error {
	base := c.baseDir

	if err := c.Capsule.Hydrate(base, capsulepkg.LoadConfig); err != nil {
		return fmt.Errorf("load capsule config: %w", err)
	}
	if err := c.Scene.Hydrate(base, scenepkg.LoadConfig); err != nil {
		return fmt.Errorf("load scene config: %w", err)
	}
	return nil
}

// CapsuleConfig returns the hydrated capsule section or the defaults.
func (c *Config) CapsuleConfig() *capsulepkg.Config {
	return c.Capsule.ValueOr(capsulepkg.DefaultConfig)
}

func (c *Config) MainPath() string {
	return c.mainPath
}

func (c *Config) BaseDir() string {
	return c.baseDir
}
