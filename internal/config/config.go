package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

type CatalogConfig struct {
	// Source is a file path, file:// URL or s3:// URI. Relative paths are
	// resolved against the configuration directory.
	Source string `yaml:"source" json:"source"`
	// Schema is a builtin schema kind or the path of a schema file.
	Schema string `yaml:"schema" json:"schema"`
	Watch  bool   `yaml:"watch"  json:"watch"`
}

type LogConfig struct {
	Level  string `yaml:"level"  json:"level"`
	Format string `yaml:"format" json:"format"`
	File   string `yaml:"file"   json:"file"`
}

type PreviewConfig struct {
	Style string `yaml:"style" json:"style"`
	Width int    `yaml:"width" json:"width"`
}

type Config struct {
	Catalogs       map[string]*CatalogConfig `yaml:"catalogs"        json:"catalogs"`
	Order          []string                  `yaml:"order"           json:"order"`
	DefaultCatalog string                    `yaml:"default_catalog" json:"default_catalog"`
	Log            LogConfig                 `yaml:"log"             json:"log"`
	Preview        PreviewConfig             `yaml:"preview"         json:"preview"`

	path string `yaml:"-"`
}

const (
	defaultLogLevel     = "info"
	defaultLogFormat    = "text"
	defaultPreviewStyle = "dracula"
	defaultPreviewWidth = 100
)

var ValidLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var ValidLogFormats = map[string]bool{
	"text": true,
	"json": true,
}

func Load(home string) (*Config, error) {
	path := GetConfigPath(home)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if len(strings.TrimSpace(string(data))) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	cfg.path = path

	cfg.ensureDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.syncViper()
	return cfg, nil
}

func (cfg *Config) ensureDefaults() {
	if cfg.Catalogs == nil {
		cfg.Catalogs = make(map[string]*CatalogConfig)
	}
	for name, cc := range cfg.Catalogs {
		if cc == nil {
			cc = &CatalogConfig{}
			cfg.Catalogs[name] = cc
		}
		if cc.Schema == "" {
			cc.Schema = name
		}
	}

	// Catalogs missing from the order are appended alphabetically.
	var rest []string
	for name := range cfg.Catalogs {
		if !slices.Contains(cfg.Order, name) {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	cfg.Order = append(cfg.Order, rest...)

	if cfg.DefaultCatalog == "" && len(cfg.Order) > 0 {
		cfg.DefaultCatalog = cfg.Order[0]
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = defaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = defaultLogFormat
	}
	if cfg.Preview.Style == "" {
		cfg.Preview.Style = defaultPreviewStyle
	}
	if cfg.Preview.Width == 0 {
		cfg.Preview.Width = defaultPreviewWidth
	}
}

// Validate reports the first invalid setting as a *ConfigError.
func (cfg *Config) Validate() error {
	for _, name := range cfg.Order {
		cc, ok := cfg.Catalogs[name]
		if !ok {
			return &ConfigError{Key: "order", Msg: fmt.Sprintf("unknown catalog %q", name)}
		}
		if strings.TrimSpace(cc.Source) == "" {
			return &ConfigError{Key: "catalogs." + name + ".source", Msg: "must be set"}
		}
	}

	if cfg.DefaultCatalog != "" {
		if _, ok := cfg.Catalogs[cfg.DefaultCatalog]; !ok {
			return &ConfigError{
				Key: "default_catalog",
				Msg: fmt.Sprintf("unknown catalog %q", cfg.DefaultCatalog),
			}
		}
	}

	if !ValidLogLevels[cfg.Log.Level] {
		return &ConfigError{Key: "log.level", Msg: fmt.Sprintf("invalid level %q", cfg.Log.Level)}
	}
	if !ValidLogFormats[cfg.Log.Format] {
		return &ConfigError{Key: "log.format", Msg: fmt.Sprintf("invalid format %q", cfg.Log.Format)}
	}
	if cfg.Preview.Width < 0 {
		return &ConfigError{Key: "preview.width", Msg: "must not be negative"}
	}

	return nil
}

// Catalog returns the settings of the named catalog.
func (cfg *Config) Catalog(name string) (*CatalogConfig, error) {
	cc, ok := cfg.Catalogs[name]
	if !ok {
		return nil, fmt.Errorf("catalog %q is not configured", name)
	}
	return cc, nil
}

// ResolveSource returns the source location of the named catalog with
// relative file paths made absolute.
func (cfg *Config) ResolveSource(name string) (string, error) {
	cc, err := cfg.Catalog(name)
	if err != nil {
		return "", err
	}
	return cfg.resolve(cc.Source), nil
}

// ResolveSchema returns the schema reference of the named catalog: a builtin
// kind unchanged, or an absolute schema file path.
func (cfg *Config) ResolveSchema(name string) (string, error) {
	cc, err := cfg.Catalog(name)
	if err != nil {
		return "", err
	}
	if !isPath(cc.Schema) {
		return cc.Schema, nil
	}
	return cfg.resolve(cc.Schema), nil
}

func (cfg *Config) resolve(loc string) string {
	if strings.Contains(loc, "://") || filepath.IsAbs(loc) || cfg.path == "" {
		return loc
	}
	return filepath.Join(filepath.Dir(cfg.path), loc)
}

func isPath(s string) bool {
	return strings.ContainsAny(s, `/\`) ||
		strings.HasSuffix(s, ".yaml") ||
		strings.HasSuffix(s, ".yml")
}

func (cfg *Config) AddCatalog(name string, cc CatalogConfig) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return &ConfigError{Key: "catalogs", Msg: "catalog name must not be empty"}
	}
	if _, exists := cfg.Catalogs[name]; exists {
		return fmt.Errorf("catalog %q already exists", name)
	}
	if strings.TrimSpace(cc.Source) == "" {
		return &ConfigError{Key: "catalogs." + name + ".source", Msg: "must be set"}
	}

	cfg.Catalogs[name] = &cc
	cfg.Order = append(cfg.Order, name)
	if cfg.DefaultCatalog == "" {
		cfg.DefaultCatalog = name
	}
	cfg.ensureDefaults()
	return cfg.Save()
}

func (cfg *Config) RemoveCatalog(name string) error {
	if _, exists := cfg.Catalogs[name]; !exists {
		return fmt.Errorf("catalog %q is not configured", name)
	}

	delete(cfg.Catalogs, name)
	cfg.Order = slices.DeleteFunc(cfg.Order, func(n string) bool { return n == name })
	if cfg.DefaultCatalog == name {
		cfg.DefaultCatalog = ""
	}
	cfg.ensureDefaults()
	return cfg.Save()
}

func (cfg *Config) SetDefaultCatalog(name string) error {
	if _, exists := cfg.Catalogs[name]; !exists {
		return fmt.Errorf("catalog %q is not configured", name)
	}
	cfg.DefaultCatalog = name
	return cfg.Save()
}

// Path is the file the configuration was loaded from.
func (cfg *Config) Path() string {
	return cfg.path
}

// syncViper registers file values as defaults so bound flags still win.
func (cfg *Config) syncViper() {
	viper.SetDefault("catalog", cfg.DefaultCatalog)
	viper.SetDefault("log.level", cfg.Log.Level)
	viper.SetDefault("log.format", cfg.Log.Format)
	viper.SetDefault("preview.width", cfg.Preview.Width)
}

func (cfg *Config) Save() error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	cfg.syncViper()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}

	if cfg.path == "" {
		return &ConfigError{Key: "path", Msg: "configuration was not loaded from a file"}
	}
	if err := os.MkdirAll(filepath.Dir(cfg.path), 0o755); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}

	return os.WriteFile(cfg.path, data, 0o644)
}
