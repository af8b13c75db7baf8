package render

import (
	"strings"
	"testing"

	"gowoe/domain/woe"
)

func sampleTables() ([]woe.SummaryRow, []*woe.Table) {
	tables := []*woe.Table{
		{
			Variable: "city",
			Kind:     woe.KindCategorical,
			Rows: []woe.Row{
				{Variable: "city", Bin: "A", Outcome0: 1, Outcome1: 1, Pct0: 0.14, Pct1: 0.33, Odds: 0.43, WOE: -0.85, MIV: 0.16},
				{Variable: "city", Bin: "B", Outcome0: 4, Outcome1: 0, Odds: 1},
			},
			Warnings: []woe.Warning{
				{Code: woe.WarningDegenerateBin, Variable: "city", Bin: "B", Message: "bin B has outcome_1=0"},
			},
		},
	}
	return woe.Summarize(tables), tables
}

func TestRenderSummary(t *testing.T) {
	summary, _ := sampleTables()

	out, err := NewMarkdownRenderer().RenderSummary(summary)
	if err != nil {
		t.Fatalf("RenderSummary failed: %v", err)
	}
	text := string(out)

	if !strings.Contains(text, "| Variable | IV |") {
		t.Error("expected summary header row")
	}
	if !strings.Contains(text, "| city |") {
		t.Error("expected a city row")
	}
}

func TestRenderTableIncludesWarnings(t *testing.T) {
	_, tables := sampleTables()

	out, err := NewMarkdownRenderer().RenderTable(tables[0])
	if err != nil {
		t.Fatalf("RenderTable failed: %v", err)
	}
	text := string(out)

	if !strings.Contains(text, "## city") {
		t.Error("expected variable heading")
	}
	if !strings.Contains(text, "| A |") || !strings.Contains(text, "| B |") {
		t.Error("expected one row per bin")
	}
	if !strings.Contains(text, "DEGENERATE_BIN") {
		t.Error("expected the degenerate-bin warning to be rendered")
	}
}

func TestRenderReportOrdersByIV(t *testing.T) {
	summary, tables := sampleTables()

	out, err := NewMarkdownRenderer().RenderReport(summary, tables)
	if err != nil {
		t.Fatalf("RenderReport failed: %v", err)
	}
	text := string(out)

	if !strings.Contains(text, "# Information Value Summary") {
		t.Error("expected the summary section first")
	}
	if strings.Index(text, "# Information Value Summary") > strings.Index(text, "## city") {
		t.Error("expected summary before variable sections")
	}
}

func TestToHTML(t *testing.T) {
	summary, tables := sampleTables()
	md, err := NewMarkdownRenderer().RenderReport(summary, tables)
	if err != nil {
		t.Fatalf("RenderReport failed: %v", err)
	}

	html := string(ToHTML(md))
	if !strings.Contains(html, "<table>") {
		t.Error("expected markdown tables to render as HTML tables")
	}
	if !strings.Contains(html, "<h1") {
		t.Error("expected an h1 heading")
	}
}
