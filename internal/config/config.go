package config

import (
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/vango-dev/toolbox/internal/errors"
	"github.com/vango-dev/toolbox/internal/logging"
	"github.com/vango-dev/toolbox/pkg/nav"
	"github.com/vango-dev/toolbox/pkg/router"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "toolbox.json"

	// DefaultPort is the default development server port.
	DefaultPort = 5173

	// DefaultHost is the default development server host.
	DefaultHost = "localhost"

	// DefaultMetricsPath is where Prometheus metrics are served.
	DefaultMetricsPath = "/metrics"
)

// Config represents the complete toolbox.json configuration.
type Config struct {
	// Name is the application name shown in the shell title.
	Name string `json:"name,omitempty"`

	// Dev contains development server configuration.
	Dev DevConfig `json:"dev,omitempty"`

	// Navigation configures the navigation controller.
	Navigation NavigationConfig `json:"navigation,omitempty"`

	// Routes configures where the route table comes from.
	Routes RoutesConfig `json:"routes,omitempty"`

	// Metrics configures the Prometheus endpoint.
	Metrics MetricsConfig `json:"metrics,omitempty"`

	// Log configures logging.
	Log LogConfig `json:"log,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// DevConfig contains development server settings.
type DevConfig struct {
	// Port is the port to run the dev server on.
	Port int `json:"port,omitempty"`

	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// Proxy maps URL prefixes to upstream APIs. An empty object disables
	// proxying; omitting it keeps the defaults.
	Proxy map[string]ProxyRule `json:"proxy,omitempty"`
}

// ProxyRule forwards one URL prefix to an upstream.
type ProxyRule struct {
	// Target is the upstream origin, e.g. "https://api.pearktrue.cn".
	Target string `json:"target"`

	// Rewrite replaces the matched prefix before forwarding. Empty keeps
	// the request path unchanged.
	Rewrite string `json:"rewrite,omitempty"`
}

// NavigationConfig configures the navigation controller.
type NavigationConfig struct {
	// Fallback is the route mounted when nothing matches.
	Fallback string `json:"fallback,omitempty"`

	// FallbackPolicy is "replace" or "keep".
	FallbackPolicy string `json:"fallbackPolicy,omitempty"`

	// DuplicatePolicy is "keep-first" or "reject".
	DuplicatePolicy string `json:"duplicatePolicy,omitempty"`
}

// RoutesConfig configures the route table source.
type RoutesConfig struct {
	// Manifest is an optional YAML or JSON route manifest. When empty the
	// built-in catalog is used.
	Manifest string `json:"manifest,omitempty"`
}

// MetricsConfig configures the metrics endpoint.
type MetricsConfig struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path,omitempty"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `json:"level,omitempty"`
}

// DefaultProxy returns the upstream APIs the feature views call.
func DefaultProxy() map[string]ProxyRule {
	return map[string]ProxyRule{
		"/api":     {Target: "https://api.pearktrue.cn"},
		"/old-api": {Target: "https://v2.xxapi.cn", Rewrite: "/api"},
	}
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Name: "Toolbox",
		Dev: DevConfig{
			Port:  DefaultPort,
			Host:  DefaultHost,
			Proxy: DefaultProxy(),
		},
		Navigation: NavigationConfig{
			Fallback:        nav.DefaultFallback,
			FallbackPolicy:  string(nav.FallbackReplace),
			DuplicatePolicy: string(router.DuplicateKeepFirst),
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    DefaultMetricsPath,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads toolbox.json from dir. A missing file yields the defaults.
func Load(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return New(), nil
	}
	return LoadFile(configPath)
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("C001").
				WithDetail("no %s found in %s", ConfigFileName, filepath.Dir(path)).
				Wrap(err)
		}
		return nil, errors.New("C001").Wrap(err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	cfg.configPath = path
	return cfg, nil
}

// Parse decodes a configuration document over the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := New()
	// The proxy map would otherwise merge with the defaults.
	cfg.Dev.Proxy = nil
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("C001").
			WithDetail("failed to parse %s: %s", ConfigFileName, err.Error()).
			WithSuggestion("Check that " + ConfigFileName + " is valid JSON")
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("C001").Wrap(err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("C001").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

func (c *Config) applyDefaults() {
	if c.Dev.Port == 0 {
		c.Dev.Port = DefaultPort
	}
	if c.Dev.Host == "" {
		c.Dev.Host = DefaultHost
	}
	if c.Dev.Proxy == nil {
		c.Dev.Proxy = DefaultProxy()
	}
	if c.Navigation.Fallback == "" {
		c.Navigation.Fallback = nav.DefaultFallback
	}
	if c.Navigation.FallbackPolicy == "" {
		c.Navigation.FallbackPolicy = string(nav.FallbackReplace)
	}
	if c.Navigation.DuplicatePolicy == "" {
		c.Navigation.DuplicatePolicy = string(router.DuplicateKeepFirst)
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Dev.Port < 0 || c.Dev.Port > 65535 {
		return errors.New("C002").
			WithDetail("dev.port must be between 0 and 65535, got %d", c.Dev.Port)
	}

	for _, prefix := range c.ProxyPrefixes() {
		rule := c.Dev.Proxy[prefix]
		if !strings.HasPrefix(prefix, "/") || prefix == "/" {
			return errors.New("C002").
				WithDetail("proxy prefix %q must start with / and not be the root", prefix)
		}
		u, err := url.Parse(rule.Target)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return errors.New("C002").
				WithDetail("proxy %q has invalid target %q", prefix, rule.Target).
				WithSuggestion("Use an absolute http(s) URL such as https://api.example.com")
		}
		if rule.Rewrite != "" && !strings.HasPrefix(rule.Rewrite, "/") {
			return errors.New("C002").
				WithDetail("proxy %q rewrite %q must start with /", prefix, rule.Rewrite)
		}
	}

	if _, ok := nav.ParseFallbackPolicy(c.Navigation.FallbackPolicy); !ok {
		return errors.New("C002").
			WithDetail("navigation.fallbackPolicy %q is not one of replace, keep", c.Navigation.FallbackPolicy)
	}
	if _, ok := router.ParseDuplicatePolicy(c.Navigation.DuplicatePolicy); !ok {
		return errors.New("C002").
			WithDetail("navigation.duplicatePolicy %q is not one of keep-first, reject", c.Navigation.DuplicatePolicy)
	}
	if !strings.HasPrefix(c.Metrics.Path, "/") {
		return errors.New("C002").WithDetail("metrics.path %q must start with /", c.Metrics.Path)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return errors.New("C002").WithDetail("log.level: %v", err)
	}
	return nil
}

// ProxyPrefixes returns the proxy prefixes, longest first, so that more
// specific prefixes are matched before shorter ones.
func (c *Config) ProxyPrefixes() []string {
	prefixes := make([]string, 0, len(c.Dev.Proxy))
	for p := range c.Dev.Proxy {
		prefixes = append(prefixes, p)
	}
	sort.Slice(prefixes, func(i, j int) bool {
		if len(prefixes[i]) != len(prefixes[j]) {
			return len(prefixes[i]) > len(prefixes[j])
		}
		return prefixes[i] < prefixes[j]
	})
	return prefixes
}

// DevAddress returns the address string for the dev server.
func (c *Config) DevAddress() string {
	return c.Dev.Host + ":" + strconv.Itoa(c.Dev.Port)
}

// DevURL returns the full URL for the dev server.
func (c *Config) DevURL() string {
	return "http://" + c.DevAddress()
}

// ManifestPath returns the route manifest path resolved against the
// config directory, or "" when the built-in catalog is used.
func (c *Config) ManifestPath() string {
	if c.Routes.Manifest == "" {
		return ""
	}
	if filepath.IsAbs(c.Routes.Manifest) {
		return c.Routes.Manifest
	}
	return filepath.Join(c.Dir(), c.Routes.Manifest)
}

// FallbackPolicy returns the parsed navigation fallback policy.
func (c *Config) FallbackPolicy() nav.FallbackPolicy {
	p, _ := nav.ParseFallbackPolicy(c.Navigation.FallbackPolicy)
	return p
}

// DuplicatePolicy returns the parsed duplicate-name policy.
func (c *Config) DuplicatePolicy() router.DuplicatePolicy {
	p, _ := router.ParseDuplicatePolicy(c.Navigation.DuplicatePolicy)
	return p
}
