package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	designsync "github.com/yacobolo/designsync"
	"github.com/yacobolo/designsync/internal/report"
	"github.com/yacobolo/designsync/internal/workspace"
)

// resetKoanf creates a fresh koanf instance for each test.
func resetKoanf() {
	k = koanf.New(".")
}

func TestConfigFileLoading(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, defaultConfigName)
	configContent := `
verbose: true
selectors:
  light: "html"
  dark: "[data-theme=dark]"
cache:
  size: 4
serve:
  addr: "0.0.0.0:9000"
  token: secret
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))
	require.NoError(t, loadConfigFromPath(configPath))

	assert.True(t, k.Bool("verbose"))
	assert.Equal(t, "html", getStringWithFallback("light", "selectors.light", ":root"))
	assert.Equal(t, "[data-theme=dark]", getStringWithFallback("dark", "selectors.dark", ".dark"))
	assert.Equal(t, 4, getIntWithFallback("cache-size", "cache.size", 16))
	assert.Equal(t, ServeConfig{Addr: "0.0.0.0:9000", Token: "secret"}, buildServeConfig())
}

func TestConfigFileNotFound_UsesDefaults(t *testing.T) {
	resetKoanf()

	require.NoError(t, loadConfigFromPath("/nonexistent/"+defaultConfigName))

	assert.Equal(t, ServeConfig{Addr: defaultAddr}, buildServeConfig())
	patterns, err := buildPatterns()
	require.NoError(t, err)
	assert.Equal(t, workspace.DefaultPatterns(), patterns)
}

func TestEnvVarOverridesConfigFile(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, defaultConfigName)
	require.NoError(t, os.WriteFile(configPath, []byte("serve:\n  addr: \"127.0.0.1:1000\"\n"), 0644))

	t.Setenv("DESIGNSYNC_SERVE_ADDR", "127.0.0.1:2000")
	t.Setenv("DESIGNSYNC_CACHE_SIZE", "8")

	require.NoError(t, loadConfigFromPath(configPath))

	assert.Equal(t, "127.0.0.1:2000", buildServeConfig().Addr)
	assert.Equal(t, 8, getIntWithFallback("cache-size", "cache.size", 16))
}

func TestBuildPatterns_FromConfigFile(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, defaultConfigName)
	configContent := `
discover:
  stylesheets:
    - "src/styles/**/*.css"
  exclude:
    - "**/vendor"
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))
	require.NoError(t, loadConfigFromPath(configPath))

	patterns, err := buildPatterns()
	require.NoError(t, err)
	defaults := workspace.DefaultPatterns()
	assert.Equal(t, []string{"src/styles/**/*.css"}, patterns.Stylesheets)
	assert.Equal(t, []string{"**/vendor"}, patterns.Exclude)
	assert.Equal(t, defaults.Tokens, patterns.Tokens)
	assert.Equal(t, defaults.Components, patterns.Components)
}

func TestBuildPatterns_Invalid(t *testing.T) {
	resetKoanf()
	require.NoError(t, k.Set("discover.sass", []string{"[bad"}))

	_, err := buildPatterns()
	require.Error(t, err)
}

func TestServeConfigValidate(t *testing.T) {
	tests := []struct {
		addr    string
		wantErr bool
	}{
		{"127.0.0.1:7357", false},
		{":8080", false},
		{"", true},
		{"localhost", true},
	}
	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			cfg := ServeConfig{Addr: tt.addr}
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestGetWithFallback(t *testing.T) {
	resetKoanf()

	assert.Equal(t, "default", getStringWithFallback("flag-key", "config.key", "default"))
	assert.False(t, getBoolWithFallback("flag-key", "config.key", false))
	assert.True(t, getBoolWithFallback("flag-key", "config.key", true))
	assert.Equal(t, 42, getIntWithFallback("flag-key", "config.key", 42))

	require.NoError(t, k.Set("config.key", "from-config"))
	require.NoError(t, k.Set("flag-key", "from-flag"))
	assert.Equal(t, "from-flag", getStringWithFallback("flag-key", "config.key", "default"))
}

// execute runs the CLI with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetKoanf()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src"), 0o755))
	css := ":root {\n  --primary: oklch(0.6 0.2 250);\n  --shadow-card: 0 2px 8px rgb(0 0 0 / 0.12);\n}\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "app.css"), []byte(css), 0o644))
	return dir
}

func TestInitCommand_CreatesConfigFile(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "init", "--root", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Created")

	data, err := os.ReadFile(filepath.Join(dir, defaultConfigName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "selectors:")
	assert.Contains(t, string(data), "discover:")
	assert.Contains(t, string(data), "serve:")

	// the generated file must load
	resetKoanf()
	require.NoError(t, loadConfigFromPath(filepath.Join(dir, defaultConfigName)))
	patterns, err := buildPatterns()
	require.NoError(t, err)
	assert.Equal(t, workspace.DefaultPatterns(), patterns)
	assert.Equal(t, ServeConfig{Addr: defaultAddr}, buildServeConfig())
}

func TestInitCommand_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, defaultConfigName), []byte("verbose: false\n"), 0644))

	_, err := execute(t, "init", "--root", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInitCommand_ForceOverwrite(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, defaultConfigName), []byte("verbose: false\n"), 0644))

	_, err := execute(t, "init", "--root", dir, "--force")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, defaultConfigName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "discover:")
}

func TestVersionCommand(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "version", "--root", dir, "--format", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "designsync "+version+" (")
	assert.Contains(t, out, "scan schema: "+report.SchemaVersion)
	assert.Contains(t, out, "class-property")

	out, err = execute(t, "version", "--root", dir, "--format", "json")
	require.NoError(t, err)
	var info VersionInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, version, info.Version)
	assert.Len(t, info.EditKinds, len(designsync.Kinds))
}

func TestCompletionCommand(t *testing.T) {
	out, err := execute(t, "completion", "bash", "--root", t.TempDir(), "--format", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "designsync")

	kinds, directive := completeKinds(setCmd, nil, "")
	assert.Contains(t, kinds, "shadow-token")
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
}

func TestCacheSizeFlag(t *testing.T) {
	for _, cmd := range []*cobra.Command{serveCmd, mcpCmd} {
		t.Run(cmd.Name(), func(t *testing.T) {
			resetKoanf()
			t.Cleanup(func() { _ = cmd.Flags().Set("cache-size", "0") })

			require.NoError(t, cmd.ParseFlags([]string{"--root", t.TempDir(), "--cache-size", "5"}))
			require.NoError(t, loadConfig(cmd))
			assert.Equal(t, 5, getIntWithFallback("cache-size", "cache.size", 16))
		})
	}
}

func TestScanCommand_JSON(t *testing.T) {
	dir := writeProject(t)

	out, err := execute(t, "scan", "--root", dir, "--format", "json")
	require.NoError(t, err)

	var scan report.ScanOutput
	require.NoError(t, json.Unmarshal([]byte(out), &scan), out)
	assert.Equal(t, 2, scan.Summary.Tokens)
	assert.Equal(t, "shadow-card", scan.Shadows[0].Name)
}

func TestSetCommand(t *testing.T) {
	dir := writeProject(t)

	out, err := execute(t, "set", "css-variable", "src/app.css", "primary", "red", "--root", dir, "--format", "table")
	require.NoError(t, err)
	assert.Equal(t, "src/app.css: primary updated\n", out)

	data, err := os.ReadFile(filepath.Join(dir, "src", "app.css"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "--primary: red;")

	_, err = execute(t, "set", "font", "src/app.css", "primary", "red", "--root", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown kind")
}

func TestClassesForCommand(t *testing.T) {
	out, err := execute(t, "classes", "for", "padding", "16px", "--root", t.TempDir(), "--format", "table")
	require.NoError(t, err)
	assert.Equal(t, "p-4\n", out)
}
