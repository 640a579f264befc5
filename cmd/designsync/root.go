package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "designsync",
	Short: "Sync visually edited design values back into source files",
	Long: `designsync reads design tokens, shadows and utility classes from a web
project and rewrites exactly the edited value in the CSS, Sass, design-token
or component file it came from.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	f := rootCmd.PersistentFlags()
	f.StringP("root", "C", ".", "Project root directory")
	f.String("config", "", "Config file path (default <root>/"+defaultConfigName+")")
	f.BoolP("verbose", "v", false, "Enable debug logging")
	f.Bool("color", false, "Force color output")
	f.String("format", "table", "Output format: table|json")
	f.String("light", "", "Selector of the default token block (default :root)")
	f.String("dark", "", "Selector of the dark token block (default .dark)")
	_ = rootCmd.RegisterFlagCompletionFunc("format", completeFormats)

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(shadowsCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(classesCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}
