package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	designsync "github.com/yacobolo/designsync"
	"github.com/yacobolo/designsync/internal/report"
)

var setCmd = &cobra.Command{
	Use:   "set <kind> <file> <identifier> [value]",
	Short: "Rewrite one design value in a project file",
	Long: `Rewrite a single value in place. Kinds:

  css-variable     set --name inside a selector block (--selector, default :root)
  sass-variable    set a top-level $name
  design-token     set the $value at a dotted token path
  shadow-token     write a raw box-shadow to a token as layers
  class            replace a class on an element; no value removes it
  class-property   write a CSS value as a utility class (--property)
  component-class  rewrite a whole class string

A custom property may be given without its leading dashes.`,
	Example: `  designsync set css-variable src/app.css primary "oklch(0.6 0.2 250)"
  designsync set css-variable src/app.css shadow-md "0 4px 6px -1px rgb(0 0 0 / 0.1)" --create
  designsync set design-token tokens.json color.brand "#3b82f6"
  designsync set class-property src/Card.tsx rounded-lg 24px --property padding`,
	Args:              cobra.RangeArgs(3, 4),
	ValidArgsFunction: completeKinds,
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := buildRequest(cmd, args)
		if err != nil {
			return err
		}
		engine, err := newEngine(newLogger(cmd.ErrOrStderr()))
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
		defer cancel()
		resp, err := engine.Apply(ctx, req)
		if err != nil {
			return err
		}

		format, err := outputFormat()
		if err != nil {
			return err
		}
		if format == report.FormatJSON {
			return report.WriteJSON(cmd.OutOrStdout(), resp)
		}
		newReporter(cmd).PrintResponse(resp)
		return nil
	},
}

func init() {
	f := setCmd.Flags()
	f.String("selector", "", "Block of a css-variable (default :root)")
	f.Bool("create", false, "Insert the target when it does not exist")
	f.String("token-type", "", "$type of a created design token")
	f.Int("line", 0, "1-based line hint for class edits")
	f.String("context", "", "Text near the element or class string")
	f.String("eid", "", "Marker id of a marked element")
	f.String("property", "", "CSS property for class-property")
	f.String("variant", "", "Variant prefix for class-property, e.g. md:")
}

// buildRequest maps positional args and flags to a Request.
func buildRequest(cmd *cobra.Command, args []string) (designsync.Request, error) {
	kind, err := parseKind(args[0])
	if err != nil {
		return designsync.Request{}, err
	}
	f := cmd.Flags()
	req := designsync.Request{
		Kind:       kind,
		FilePath:   args[1],
		Identifier: args[2],
	}
	if len(args) == 4 {
		req.Value = args[3]
	}
	req.Selector, _ = f.GetString("selector")
	req.Create, _ = f.GetBool("create")
	req.TokenType, _ = f.GetString("token-type")
	req.Line, _ = f.GetInt("line")
	req.Context, _ = f.GetString("context")
	req.EID, _ = f.GetString("eid")
	req.Property, _ = f.GetString("property")
	req.Variant, _ = f.GetString("variant")
	return req, nil
}

func parseKind(s string) (designsync.Kind, error) {
	for _, k := range designsync.Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	names := make([]string, len(designsync.Kinds))
	for i, k := range designsync.Kinds {
		names[i] = string(k)
	}
	return "", fmt.Errorf("unknown kind %q (want one of %s)", s, strings.Join(names, ", "))
}

func completeKinds(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveDefault
	}
	names := make([]string, len(designsync.Kinds))
	for i, k := range designsync.Kinds {
		names[i] = string(k)
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
