package capsule

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"capsule-bridge/pkg/confkit"
	"capsule-bridge/pkg/position"
)

const defaultObjectName = "Capsule"

// Config controls how generate_capsule parses input and names new objects.
type Config struct {
	ObjectName     string `yaml:"object_name"`
	PrecisionRaw   string `yaml:"precision"`
	SelectOnCreate *bool  `yaml:"select_on_create"`

	Precision position.Precision `yaml:"-"`
}

// DefaultConfig returns the configuration used when no capsule section is set.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	_ = cfg.parsePrecision()
	return cfg
}

// LoadConfig reads configuration from disk.
func LoadConfig(path string) (*Config, error) {
	confkit.LoadDotenvOnce()
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open capsule config: %w", err)
	}
	defer file.Close()
	return LoadConfigFromReader(file)
}

// LoadConfigFromReader constructs a Config from a reader.
func LoadConfigFromReader(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read capsule config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal capsule config: %w", err)
	}
	cfg.ObjectName = strings.TrimSpace(os.ExpandEnv(cfg.ObjectName))
	cfg.applyDefaults()
	if err := cfg.parsePrecision(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.ObjectName == "" {
		c.ObjectName = defaultObjectName
	}
	if c.SelectOnCreate == nil {
		v := true
		c.SelectOnCreate = &v
	}
}

func (c *Config) parsePrecision() error {
	p, err := position.ParsePrecision(c.PrecisionRaw)
	if err != nil {
		return fmt.Errorf("capsule config: %w", err)
	}
	c.Precision = p
	c.PrecisionRaw = p.String()
	return nil
}

// Validate ensures configuration sanity.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.ObjectName) == "" {
		return errors.New("capsule config: object_name is required")
	}
	if strings.ContainsAny(c.ObjectName, "/\n") {
		return fmt.Errorf("capsule config: object_name %q cannot contain '/' or newlines", c.ObjectName)
	}
	return nil
}

// Select reports whether new capsules become the active selection.
func (c *Config) Select() bool {
	return c.SelectOnCreate == nil || *c.SelectOnCreate
}
