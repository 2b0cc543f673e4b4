package scene

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"capsule-bridge/pkg/confkit"
)

// Config captures configuration for one or more scene hosts.
type Config struct {
	Default string                 `yaml:"default"`
	Hosts   map[string]*HostConfig `yaml:"hosts"`
}

// HostConfig describes how to construct a specific host instance.
type HostConfig struct {
	Type       string `yaml:"type"`
	MaxObjects int    `yaml:"max_objects"`
}

// HostBuilder constructs a Host from configuration.
type HostBuilder func(name string, cfg *HostConfig) (Host, error)

var (
	hostRegistry   = make(map[string]HostBuilder)
	hostRegistryMu sync.RWMutex
)

// RegisterHost associates a builder with a host type.
func RegisterHost(typeName string, builder HostBuilder) {
	hostRegistryMu.Lock()
	defer hostRegistryMu.Unlock()
	hostRegistry[strings.ToLower(strings.TrimSpace(typeName))] = builder
}

func lookupHostBuilder(typeName string) (HostBuilder, bool) {
	hostRegistryMu.RLock()
	defer hostRegistryMu.RUnlock()
	builder, ok := hostRegistry[strings.ToLower(strings.TrimSpace(typeName))]
	return builder, ok
}

// LoadConfig reads configuration from disk.
func LoadConfig(path string) (*Config, error) {
	confkit.LoadDotenvOnce()
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene config: %w", err)
	}
	defer file.Close()
	return LoadConfigFromReader(file)
}

// MustLoad reads etc/scene.yaml from the project root and panics on error.
func MustLoad() *Config {
	cfg, err := LoadConfig(confkit.MustProjectPath("etc/scene.yaml"))
	if err != nil {
		panic(err)
	}
	return cfg
}

// LoadConfigFromReader constructs a Config from an io.Reader.
func LoadConfigFromReader(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read scene config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal scene config: %w", err)
	}
	cfg.normalise()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalise() {
	c.Default = strings.TrimSpace(os.ExpandEnv(c.Default))
	if c.Hosts == nil {
		c.Hosts = make(map[string]*HostConfig)
	}
	for name, host := range c.Hosts {
		if host == nil {
			host = &HostConfig{}
			c.Hosts[name] = host
		}
		host.Type = strings.TrimSpace(os.ExpandEnv(host.Type))
	}
}

// Validate ensures all hosts have sane configuration.
func (c *Config) Validate() error {
	if len(c.Hosts) == 0 {
		return fmt.Errorf("scene config: hosts cannot be empty")
	}
	if c.Default != "" {
		if _, ok := c.Hosts[c.Default]; !ok {
			return fmt.Errorf("scene config: default host %q not defined", c.Default)
		}
	} else if len(c.Hosts) > 1 {
		return fmt.Errorf("scene config: default host is required when more than one host is defined")
	}

	for name, host := range c.Hosts {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("scene config: host name cannot be empty")
		}
		if err := host.validate(name); err != nil {
			return err
		}
	}
	return nil
}

func (h *HostConfig) validate(name string) error {
	if h == nil {
		return fmt.Errorf("scene config: host %s is nil", name)
	}
	if h.Type == "" {
		return fmt.Errorf("scene config: host %s must specify type", name)
	}
	if _, ok := lookupHostBuilder(h.Type); !ok {
		return fmt.Errorf("scene config: host %s has unsupported type %q", name, h.Type)
	}
	if h.MaxObjects < 0 {
		return fmt.Errorf("scene config: host %s max_objects cannot be negative", name)
	}
	return nil
}

// DefaultName returns the configured default host, or the only host when a
// single one is defined.
func (c *Config) DefaultName() string {
	if c.Default != "" {
		return c.Default
	}
	for name := range c.Hosts {
		return name
	}
	return ""
}

// BuildHosts instantiates hosts according to the configuration.
func (c *Config) BuildHosts() (map[string]Host, error) {
	result := make(map[string]Host, len(c.Hosts))
	for name, hostCfg := range c.Hosts {
		builder, ok := lookupHostBuilder(hostCfg.Type)
		if !ok {
			return nil, fmt.Errorf("scene host %s: unsupported type %q", name, hostCfg.Type)
		}
		host, err := builder(name, hostCfg)
		if err != nil {
			return nil, fmt.Errorf("scene host %s: %w", name, err)
		}
		result[name] = host
	}
	return result, nil
}
