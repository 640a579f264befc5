package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default " + defaultConfigName + " config file",
	Long:  `Create a ` + defaultConfigName + ` configuration file in the project root with the default settings.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")
		root, _ := cmd.Flags().GetString("root")
		path := filepath.Join(root, defaultConfigName)

		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		if err := os.WriteFile(path, []byte(defaultConfig), 0o644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
		return nil
	},
}

const defaultConfig = `# designsync configuration
# Every key can also be set with a DESIGNSYNC_ environment variable,
# e.g. DESIGNSYNC_SERVE_ADDR=127.0.0.1:8080.

verbose: false
color: false
format: table            # table | json

# Blocks holding light and dark token values
selectors:
  light: ":root"
  dark: ".dark"

# Globs relative to the project root. A kind left out keeps its defaults.
discover:
  stylesheets:
    - "**/*.css"
  sass:
    - "**/*.scss"
    - "**/*.sass"
  tokens:
    - "**/*.tokens"
    - "**/*.tokens.json"
    - "**/tokens.json"
    - "**/design-tokens.json"
  components:
    - "**/*.{tsx,jsx,vue,svelte,astro,html,templ}"
  exclude:
    - "**/node_modules"
    - "**/.git"
    - "**/dist"
    - "**/build"
    - "**/.next"

cache:
  size: 16               # scan results kept in memory

serve:
  addr: "127.0.0.1:7357"
  token: ""              # require "Authorization: Bearer <token>" when set
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
