package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yacobolo/designsync/internal/report"
	"github.com/yacobolo/designsync/internal/sourceloc"
	"github.com/yacobolo/designsync/internal/utility"
)

var classesCmd = &cobra.Command{
	Use:   "classes",
	Short: "Work with utility classes",
	Long:  `Parse class strings, map between classes and CSS values, and inspect or mark elements in component files.`,
}

var classesParseCmd = &cobra.Command{
	Use:   "parse <classes>...",
	Short: "Parse a class string into properties",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parsed := utility.ParseClasses(strings.Join(args, " "))
		return emit(cmd, parsed, func(r *report.Reporter) { r.PrintClasses(parsed) })
	},
}

var classesValueCmd = &cobra.Command{
	Use:   "value <class>",
	Short: "Print the CSS a class renders",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := utility.ValueForClass(args[0])
		if err != nil {
			return err
		}
		return emit(cmd, res, func(*report.Reporter) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", res.CSS, res.Value)
		})
	},
}

var classesForCmd = &cobra.Command{
	Use:     "for <css-property> <value>",
	Short:   "Print the class that renders a CSS value",
	Example: `  designsync classes for border-radius 8px --variant hover:`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		variant, _ := cmd.Flags().GetString("variant")
		class, err := utility.ClassForValue(args[0], args[1], variant)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), class)
		return nil
	},
}

var classesInspectCmd = &cobra.Command{
	Use:   "inspect <file> [identifier]",
	Short: "Locate an element and parse its classes",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine(newLogger(cmd.ErrOrStderr()))
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
		defer cancel()
		el, err := engine.Inspect(ctx, args[0], elementHints(cmd, args))
		if err != nil {
			return err
		}
		return emit(cmd, el, func(r *report.Reporter) { r.PrintElement(el) })
	},
}

var classesMarkCmd = &cobra.Command{
	Use:   "mark <file> <identifier>",
	Short: "Pin an element with a marker attribute and print its id",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine(newLogger(cmd.ErrOrStderr()))
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
		defer cancel()
		m, err := engine.Mark(ctx, args[0], elementHints(cmd, args))
		if err != nil {
			return err
		}
		return emit(cmd, m, func(*report.Reporter) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s:%d %s\n", args[0], m.Line, m.EID)
		})
	},
}

var classesUnmarkCmd = &cobra.Command{
	Use:   "unmark <file> <eid>",
	Short: "Remove a marker attribute",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine(newLogger(cmd.ErrOrStderr()))
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
		defer cancel()
		return engine.Unmark(ctx, args[0], args[1])
	},
}

func init() {
	classesForCmd.Flags().String("variant", "", "Variant prefix, e.g. md: or hover:")
	for _, c := range []*cobra.Command{classesInspectCmd, classesMarkCmd} {
		c.Flags().Int("line", 0, "1-based line hint")
		c.Flags().String("context", "", "Text near the element")
	}
	classesInspectCmd.Flags().String("eid", "", "Marker id of a marked element")

	classesCmd.AddCommand(classesParseCmd, classesValueCmd, classesForCmd,
		classesInspectCmd, classesMarkCmd, classesUnmarkCmd)
}

func elementHints(cmd *cobra.Command, args []string) sourceloc.Hints {
	var h sourceloc.Hints
	if len(args) > 1 {
		h.Identifier = args[1]
	}
	h.Line, _ = cmd.Flags().GetInt("line")
	h.Context, _ = cmd.Flags().GetString("context")
	if cmd.Flags().Lookup("eid") != nil {
		h.EID, _ = cmd.Flags().GetString("eid")
	}
	return h
}

// emit writes v as JSON or calls text with a reporter.
func emit(cmd *cobra.Command, v any, text func(*report.Reporter)) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}
	if format == report.FormatJSON {
		return report.WriteJSON(cmd.OutOrStdout(), v)
	}
	text(newReporter(cmd))
	return nil
}
