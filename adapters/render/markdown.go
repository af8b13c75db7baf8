// Package render turns WOE tables and IV summaries into markdown and
// HTML reports.
package render

import (
	"fmt"
	"strings"

	"gowoe/domain/woe"
	"gowoe/ports"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// MarkdownRenderer renders reports as GitHub-flavored markdown tables
type MarkdownRenderer struct{}

var _ ports.ReportSinkPort = (*MarkdownRenderer)(nil)

// NewMarkdownRenderer creates a markdown report sink
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// RenderSummary renders the ranked IV summary as a markdown table
func (r *MarkdownRenderer) RenderSummary(rows []woe.SummaryRow) ([]byte, error) {
	var b strings.Builder
	b.WriteString("# Information Value Summary\n\n")
	b.WriteString("| Variable | IV | Bins | Zero Bins | Strength |\n")
	b.WriteString("|---|---|---|---|---|\n")
	for _, row := range rows {
		fmt.Fprintf(&b, "| %s | %.4f | %d | %d | %s |\n",
			row.Variable, row.InformationValue, row.Bins, row.ZeroBins, row.Strength)
	}
	return []byte(b.String()), nil
}

// RenderTable renders one variable's WOE table as markdown
func (r *MarkdownRenderer) RenderTable(t *woe.Table) ([]byte, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s (%s, IV=%.4f)\n\n", t.Variable, t.Kind, t.IV())
	b.WriteString("| Bin | Outcome 0 | Outcome 1 | Pct 0 | Pct 1 | Odds | WOE | MIV |\n")
	b.WriteString("|---|---|---|---|---|---|---|---|\n")
	for _, row := range t.Rows {
		fmt.Fprintf(&b, "| %s | %d | %d | %.4f | %.4f | %.4f | %.4f | %.4f |\n",
			row.Bin, row.Outcome0, row.Outcome1, row.Pct0, row.Pct1, row.Odds, row.WOE, row.MIV)
	}
	for _, w := range t.Warnings {
		fmt.Fprintf(&b, "\n> warning (%s): %s\n", w.Code, w.Message)
	}
	return []byte(b.String()), nil
}

// RenderReport renders a full run report: summary first, then each
// variable's table in summary order.
func (r *MarkdownRenderer) RenderReport(rows []woe.SummaryRow, tables []*woe.Table) ([]byte, error) {
	var b strings.Builder
	summary, err := r.RenderSummary(rows)
	if err != nil {
		return nil, err
	}
	b.Write(summary)
	b.WriteString("\n")
	byVariable := make(map[string]*woe.Table, len(tables))
	for _, t := range tables {
		byVariable[t.Variable.String()] = t
	}
	for _, row := range rows {
		t, ok := byVariable[row.Variable.String()]
		if !ok {
			continue
		}
		section, err := r.RenderTable(t)
		if err != nil {
			return nil, err
		}
		b.WriteString("\n")
		b.Write(section)
	}
	return []byte(b.String()), nil
}

// ToHTML converts a rendered markdown report into a standalone HTML
// fragment.
func ToHTML(md []byte) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.ToHTML(md, p, renderer)
}
