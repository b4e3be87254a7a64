// Package cli implements the autolayout command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/autolayout/pkg/buildinfo"
	"github.com/matzehuels/autolayout/pkg/cache"
	"github.com/matzehuels/autolayout/pkg/config"
	"github.com/matzehuels/autolayout/pkg/engine"
	"github.com/matzehuels/autolayout/pkg/engine/dot"
	"github.com/matzehuels/autolayout/pkg/errors"
)

const appName = "autolayout"

// Log levels for New and SetLogLevel.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI is the state shared by all commands: the logger and the global
// --config flag.
type CLI struct {
	Logger     *log.Logger
	configPath string
}

// New returns a CLI logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand builds the command tree.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Autolayout arranges node-and-edge diagrams",
		Long: `Autolayout computes positions for the nodes of a diagram and picks the
side of each node every edge attaches to. Layout is delegated to Graphviz;
when it fails the diagram is returned unchanged or, on request, with
connection sides chosen geometrically.`,
		Version:      buildinfo.Get().Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (.toml, .yaml); default $"+config.EnvPath)

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the configuration named by --config or $AUTOLAYOUT_CONFIG.
func (c *CLI) loadConfig() (config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return cfg, err
	}
	c.Logger.Debug("configuration loaded", "path", c.configPath, "cache", cfg.Cache.Backend)
	return cfg, nil
}

// newEngine returns the Graphviz engine wrapped in the configured cache.
// Keys carry the configured prefix whatever the backend.
// The returned close function releases the cache backend.
func (c *CLI) newEngine(ctx context.Context, cfg config.Config, noCache bool) (engine.Engine, func() error, error) {
	backend, err := c.newCache(ctx, cfg.Cache, noCache)
	if err != nil {
		return nil, nil, err
	}
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), cfg.Cache.Prefix)
	eng := engine.NewCachingEngine(dot.New(c.Logger), dot.Name, backend, keyer, c.Logger)
	eng.TTL = cfg.Cache.TTL
	return eng, backend.Close, nil
}

// newCache opens the configured backend. A file cache whose directory cannot
// be resolved degrades to no caching.
func (c *CLI) newCache(ctx context.Context, cfg config.CacheConfig, noCache bool) (cache.Cache, error) {
	switch {
	case noCache, cfg.Backend == config.BackendNone:
		return cache.NewNullCache(), nil
	case cfg.Backend == config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeCache, err, "connect to redis")
		}
		return rc, nil
	default:
		dir, err := cacheDir(cfg)
		if err != nil {
			c.Logger.Warn("caching disabled", "err", err)
			return cache.NewNullCache(), nil
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeCache, err, "open cache directory %s", dir)
		}
		c.Logger.Debug("using file cache", "dir", dir)
		return fc, nil
	}
}

// cacheDir returns the configured cache directory, or autolayout's directory
// under the user cache root ($XDG_CACHE_HOME or ~/.cache on Linux).
func cacheDir(cfg config.CacheConfig) (string, error) {
	if cfg.Dir != "" {
		return cfg.Dir, nil
	}
	root, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, appName), nil
}
