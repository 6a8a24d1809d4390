package state

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/Paintersrp/tome/internal/catalog"
	"github.com/Paintersrp/tome/internal/config"
	"github.com/Paintersrp/tome/internal/constants"
	"github.com/Paintersrp/tome/internal/correlate"
	"github.com/Paintersrp/tome/internal/logging"
	"github.com/Paintersrp/tome/internal/pathutil"
	"github.com/Paintersrp/tome/internal/schema"
)

// ErrNoCatalog is returned when no catalog was named and none is configured
// as the default.
var ErrNoCatalog = errors.New("no catalog selected")

type State struct {
	Config *config.Config
	Home   string
	Logger *slog.Logger

	open      func(ctx context.Context, location string) (catalog.Source, error)
	logCloser io.Closer

	mu       sync.Mutex
	catalogs map[string]*catalog.Catalog
	watcher  *CatalogWatcher
}

func NewState() (*State, error) {
	home, err := GetHomeDir()
	if err != nil {
		return nil, err
	}

	cfg, err := LoadConfig(home)
	if err != nil {
		return nil, err
	}

	logger, closer, err := logging.New(logging.Options{
		Level:  viper.GetString("log.level"),
		Format: viper.GetString("log.format"),
		File:   pathutil.ExpandHome(cfg.Log.File),
	}, os.Stderr)
	if err != nil {
		return nil, err
	}

	s := New(cfg, logger)
	s.Home = home
	s.logCloser = closer
	return s, nil
}

// Quiet drops log output unless a log file is configured. Interactive
// commands call it before taking over the terminal.
func (s *State) Quiet() {
	if s.Config.Log.File == "" {
		s.Logger = logging.Discard()
	}
}

// New returns a state over an already loaded configuration.
func New(cfg *config.Config, logger *slog.Logger) *State {
	if logger == nil {
		logger = logging.Discard()
	}
	return &State{
		Config:   cfg,
		Logger:   logger,
		open:     catalog.Open,
		catalogs: make(map[string]*catalog.Catalog),
	}
}

func GetHomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory. err: %s", err)
	}

	return home, nil
}

func LoadConfig(home string) (*config.Config, error) {
	viper.AddConfigPath(config.GetConfigDir(home))
	viper.SetConfigName(constants.ConfigFile)
	viper.SetConfigType(constants.ConfigFileType)
	viper.ReadInConfig()
	viper.SetEnvPrefix(constants.AppName)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// A fresh configuration without catalogs is usable: the catalogs
	// command can still add some.
	var initErr *config.ConfigInitError
	if err := config.EnsureConfigExists(home); err != nil && !errors.As(err, &initErr) {
		return nil, err
	}

	return config.Load(home)
}

// CatalogName picks the catalog a command operates on: the argument when
// given, otherwise the --catalog flag or configured default.
func (s *State) CatalogName(arg string) (string, error) {
	name := arg
	if name == "" {
		name = viper.GetString("catalog")
	}
	if name == "" {
		name = s.Config.DefaultCatalog
	}
	if name == "" {
		return "", ErrNoCatalog
	}
	if _, err := s.Config.Catalog(name); err != nil {
		return "", err
	}
	return name, nil
}

// Schema returns the facet schema of the named catalog.
func (s *State) Schema(name string) (*schema.Schema, error) {
	ref, err := s.Config.ResolveSchema(name)
	if err != nil {
		return nil, err
	}
	if sch, err := schema.Builtin(ref); err == nil {
		return sch, nil
	} else if !errors.Is(err, schema.ErrUnknownKind) {
		return nil, err
	}
	return schema.Load(pathutil.ExpandHome(ref))
}

// Catalog returns the named catalog, loading it on first use.
func (s *State) Catalog(ctx context.Context, name string) (*catalog.Catalog, error) {
	s.mu.Lock()
	c, ok := s.catalogs[name]
	s.mu.Unlock()
	if ok {
		return c, nil
	}

	c, err := s.load(ctx, name)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.catalogs[name]; ok {
		_ = c.Close()
		return existing, nil
	}
	s.catalogs[name] = c
	return c, nil
}

func (s *State) load(ctx context.Context, name string) (*catalog.Catalog, error) {
	sch, err := s.Schema(name)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", name, err)
	}
	loc, err := s.Config.ResolveSource(name)
	if err != nil {
		return nil, err
	}
	src, err := s.open(ctx, loc)
	if err != nil {
		return nil, err
	}
	c, err := catalog.Load(ctx, name, sch, src)
	if err != nil {
		src.Close()
		return nil, err
	}
	s.Logger.Info("catalog loaded", "catalog", name, "kind", sch.Kind, "records", c.Len(), "source", src.Name())
	return c, nil
}

// LoadAll loads every configured catalog concurrently and returns them in
// configured order.
func (s *State) LoadAll(ctx context.Context) ([]*catalog.Catalog, error) {
	out := make([]*catalog.Catalog, len(s.Config.Order))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range s.Config.Order {
		g.Go(func() error {
			c, err := s.Catalog(gctx, name)
			if err != nil {
				return err
			}
			out[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Resolver loads every catalog and indexes them for cross-references.
func (s *State) Resolver(ctx context.Context) (*correlate.Resolver, error) {
	all, err := s.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	return correlate.NewResolver(s.Logger, all...), nil
}

// Reload replaces the named catalog with a fresh load of its source. The
// previous catalog is closed only after the new one loads.
func (s *State) Reload(ctx context.Context, name string) (*catalog.Catalog, error) {
	c, err := s.load(ctx, name)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	old := s.catalogs[name]
	s.catalogs[name] = c
	s.mu.Unlock()

	if old != nil {
		if err := old.Close(); err != nil {
			s.Logger.Warn("closing replaced catalog", "catalog", name, "err", err)
		}
	}
	return c, nil
}

// Watcher returns a watcher over the local sources of catalogs configured
// with watch enabled, creating it on first use. It returns nil when no
// catalog is watched.
func (s *State) Watcher() (*CatalogWatcher, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.watcher != nil {
		return s.watcher, nil
	}

	files := make(map[string]string)
	for _, name := range s.Config.Order {
		cc := s.Config.Catalogs[name]
		if !cc.Watch {
			continue
		}
		loc, err := s.Config.ResolveSource(name)
		if err != nil {
			return nil, err
		}
		if !pathutil.IsLocal(loc) {
			s.Logger.Warn("watch ignored for remote catalog", "catalog", name, "source", loc)
			continue
		}
		files[name] = pathutil.LocalPath(loc)
	}
	if len(files) == 0 {
		return nil, nil
	}

	w, err := NewCatalogWatcher(files)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog watcher: %w", err)
	}
	w.OnChange(func(name string) {
		s.Logger.Debug("catalog changed", "catalog", name)
	})
	s.watcher = w
	return w, nil
}

// Close releases the watcher, every loaded catalog and the log file.
func (s *State) Close() error {
	if s == nil {
		return nil
	}

	var errs []error
	s.mu.Lock()
	if s.watcher != nil {
		if err := s.watcher.Close(); err != nil {
			errs = append(errs, err)
		}
		s.watcher = nil
	}
	for name, c := range s.catalogs {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("catalog %s: %w", name, err))
		}
		delete(s.catalogs, name)
	}
	s.mu.Unlock()

	if s.logCloser != nil {
		if err := s.logCloser.Close(); err != nil {
			errs = append(errs, err)
		}
		s.logCloser = nil
	}

	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}
