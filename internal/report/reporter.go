// Package report renders scan results, edit responses and parsed class lists
// for the terminal (lipgloss + tablewriter) or as JSON.
package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	designsync "github.com/yacobolo/designsync"
	"github.com/yacobolo/designsync/internal/shadows"
	"github.com/yacobolo/designsync/internal/tokens"
	"github.com/yacobolo/designsync/internal/utility"
)

// Format selects how results are written.
type Format string

// Output formats.
const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

// ParseFormat accepts "table", "json" or "" (table).
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatTable:
		return FormatTable, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unknown output format %q (want table or json)", s)
}

// Reporter writes human-readable output.
type Reporter struct {
	w         io.Writer
	useColors bool
}

// NewReporter returns a Reporter writing to w.
func NewReporter(w io.Writer, useColors bool) *Reporter {
	return &Reporter{w: w, useColors: useColors}
}

// UseColors returns whether colors are enabled.
func (r *Reporter) UseColors() bool {
	return r.useColors
}

// PrintTokens writes the tokens of res as a table, ordered by category and
// group. A non-empty category limits the rows.
func (r *Reporter) PrintTokens(res *designsync.ScanResult, category tokens.Category) {
	rows := make([][]string, 0, len(res.Tokens))
	for _, tok := range res.SortedTokens() {
		if category != "" && tok.Category != category {
			continue
		}
		rows = append(rows, []string{tok.Name, tok.LightValue, orDash(tok.DarkValue), string(tok.Category), tok.Group, tok.File})
	}

	r.header(fmt.Sprintf("Tokens (%d)", len(rows)))
	r.table([]string{"Name", "Light", "Dark", "Category", "Group", "File"}, rows)
}

// PrintShadows writes the shadows of res in display order. Overridden
// presets are flagged.
func (r *Reporter) PrintShadows(res *designsync.ScanResult) {
	defs := res.SortedShadows()
	rows := make([][]string, 0, len(defs))
	overridden := 0
	for _, d := range defs {
		name := d.Name
		if d.IsOverridden {
			overridden++
			name += " *"
		}
		rows = append(rows, []string{name, d.Value, string(d.Source), origin(d)})
	}

	r.header(fmt.Sprintf("Shadows (%d)", len(rows)))
	r.table([]string{"Name", "Value", "Source", "Defined in"}, rows)
	if overridden > 0 {
		fmt.Fprintln(r.w, RenderStyle(StyleYellow, fmt.Sprintf("* %s overridden by the project", pluralizeCount(overridden, "preset", "presets")), r.useColors))
	}
}

// PrintSummary writes one line of scan totals.
func (r *Reporter) PrintSummary(res *designsync.ScanResult) {
	scanned := res.Stats.Discovered - res.Stats.Skipped
	line := fmt.Sprintf("%s, %s from %s",
		pluralizeCount(len(res.Tokens), "token", "tokens"),
		pluralizeCount(len(res.Shadows), "shadow", "shadows"),
		pluralizeCount(scanned, "file", "files"))
	if res.Stats.Skipped > 0 {
		line += fmt.Sprintf(" (%d skipped)", res.Stats.Skipped)
	}
	fmt.Fprintln(r.w, RenderStyle(StyleGray, line, r.useColors))
}

// PrintResponse writes the outcome of an applied edit.
func (r *Reporter) PrintResponse(resp designsync.Response) {
	target := resp.Identifier
	if resp.Class != "" {
		target = resp.Class
	}
	location := RenderStyle(StyleCyan, resp.FilePath+":", r.useColors)
	if !resp.Changed {
		fmt.Fprintf(r.w, "%s %s %s\n", location, target, RenderStyle(StyleGray, "unchanged", r.useColors))
		return
	}
	fmt.Fprintf(r.w, "%s %s %s\n", location, target, RenderStyle(StyleGreen, "updated", r.useColors))
	if resp.StrippedInset {
		fmt.Fprintln(r.w, RenderStyle(StyleYellow, "inset was dropped: design tokens cannot express inset shadows", r.useColors))
	}
}

// PrintError writes a rejected edit or failed scan.
func (r *Reporter) PrintError(err error) {
	fmt.Fprintf(r.w, "%s %v\n", RenderStyle(StyleRed, "error:", r.useColors), err)
}

// PrintElement writes a located element, its source line with a caret under
// the identifier, and its parsed classes.
func (r *Reporter) PrintElement(el designsync.Element) {
	r.header(fmt.Sprintf("%s:%d:%d", el.File, el.Line, el.Column))
	if el.Source != "" {
		fmt.Fprintf(r.w, "\t%s\n", el.Source)
		fmt.Fprintf(r.w, "\t%s\n", RenderStyle(StyleYellow, caretIndicator(el.Source, el.Column), r.useColors))
	}
	fmt.Fprintln(r.w)
	r.PrintClasses(utility.Parsed{Properties: el.Properties, Other: el.Other})
}

// caretIndicator returns a "^" under the 1-based column, keeping the tabs of
// the line so the caret lines up.
func caretIndicator(sourceLine string, column int) string {
	if column <= 0 {
		return "^"
	}
	prefix := sourceLine[:min(column-1, len(sourceLine))]

	var padding strings.Builder
	for _, ch := range prefix {
		if ch == '\t' {
			padding.WriteRune('\t')
		} else {
			padding.WriteRune(' ')
		}
	}
	return padding.String() + "^"
}

// PrintClasses writes parsed class properties as a table followed by the
// classes that did not parse.
func (r *Reporter) PrintClasses(p utility.Parsed) {
	rows := make([][]string, len(p.Properties))
	for i, prop := range p.Properties {
		rows[i] = []string{prop.FullClassText, prop.Label, prop.Value, string(prop.Category), orDash(prop.VariantPrefix)}
	}
	r.table([]string{"Class", "Property", "Value", "Category", "Variant"}, rows)
	if len(p.Other) > 0 {
		fmt.Fprintf(r.w, "%s %s\n", RenderStyle(StyleGray, "unrecognized:", r.useColors), strings.Join(p.Other, " "))
	}
}

func (r *Reporter) header(title string) {
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, title, r.useColors))
}

func (r *Reporter) table(header []string, rows [][]string) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetHeaderLine(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.AppendBulk(rows)
	table.Render()
	_, _ = r.w.Write(buf.Bytes())
}

// origin names where a shadow is defined.
func origin(d shadows.Definition) string {
	switch {
	case d.File == "":
		return "built-in"
	case d.TokenPath != "":
		return d.File + " (" + d.TokenPath + ")"
	case d.Variable != "":
		return d.File + " (" + d.Variable + ")"
	}
	return d.File
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}
