package main

import (
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"

	designsync "github.com/yacobolo/designsync"
	"github.com/yacobolo/designsync/internal/scancache"
	"github.com/yacobolo/designsync/internal/workspace"
)

const (
	defaultConfigName = ".designsync.yaml"
	defaultAddr       = "127.0.0.1:7357"
)

var k = koanf.New(".")

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags.
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		root, _ := cmd.Flags().GetString("root")
		configPath = filepath.Join(root, defaultConfigName)
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// only flags that were explicitly set
	if err := k.Load(posflag.Provider(cmd.Flags(), ".", k), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}
	return nil
}

// loadConfigFromPath loads a config file and DESIGNSYNC_* environment
// variables. A missing file is not an error.
func loadConfigFromPath(configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// DESIGNSYNC_SERVE_ADDR -> serve.addr, DESIGNSYNC_SELECTORS_DARK -> selectors.dark
	if err := k.Load(env.Provider("DESIGNSYNC_", ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "DESIGNSYNC_")),
			"_", ".",
		)
	}), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}
	return nil
}

// buildPatterns merges configured discovery globs over the defaults. A kind
// left out of the config keeps its default globs.
func buildPatterns() (workspace.Patterns, error) {
	p := workspace.DefaultPatterns()
	var configured workspace.Patterns
	if err := k.Unmarshal("discover", &configured); err != nil {
		return p, fmt.Errorf("reading discover settings: %w", err)
	}
	for _, pair := range []struct{ dst, src *[]string }{
		{&p.Stylesheets, &configured.Stylesheets},
		{&p.Sass, &configured.Sass},
		{&p.Tokens, &configured.Tokens},
		{&p.Components, &configured.Components},
		{&p.Exclude, &configured.Exclude},
	} {
		if len(*pair.src) > 0 {
			*pair.dst = *pair.src
		}
	}
	return p, p.Validate()
}

// newLogger returns a text logger on w, at debug level when verbose is set.
func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if getBoolWithFallback("verbose", "verbose", false) {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// newEngine builds an Engine for the configured root.
func newEngine(logger *slog.Logger) (*designsync.Engine, error) {
	patterns, err := buildPatterns()
	if err != nil {
		return nil, err
	}
	return designsync.New(
		getStringWithFallback("root", "root", "."),
		designsync.WithLogger(logger),
		designsync.WithPatterns(patterns),
		designsync.WithSelectors(
			getStringWithFallback("light", "selectors.light", ":root"),
			getStringWithFallback("dark", "selectors.dark", ".dark"),
		),
		designsync.WithCacheSize(getIntWithFallback("cache-size", "cache.size", scancache.DefaultSize)),
	)
}

// ServeConfig holds HTTP server settings.
type ServeConfig struct {
	Addr  string
	Token string
}

// Validate checks the listen address.
func (c *ServeConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Addr, validation.Required, validation.By(hostPort)),
	)
}

func hostPort(value any) error {
	s, _ := value.(string)
	if _, _, err := net.SplitHostPort(s); err != nil {
		return fmt.Errorf("must be host:port")
	}
	return nil
}

func buildServeConfig() ServeConfig {
	return ServeConfig{
		Addr:  getStringWithFallback("addr", "serve.addr", defaultAddr),
		Token: getStringWithFallback("token", "serve.token", ""),
	}
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}

// getIntWithFallback checks the flag key first, then the config file key, then
// returns the default. Zero counts as unset.
func getIntWithFallback(flagKey, configKey string, defaultVal int) int {
	if v := k.Int(flagKey); v != 0 {
		return v
	}
	if v := k.Int(configKey); v != 0 {
		return v
	}
	return defaultVal
}
