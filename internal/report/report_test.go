package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabscope/adapters/summary"
	"tabscope/domain/run"
	"tabscope/domain/table"
	"tabscope/internal/testkit"
)

func profileRun(t *testing.T, tbl *table.Table) *run.ProfileRun {
	t.Helper()
	rep := summary.NewSummaryEngine(nil).Profile(tbl)
	return run.NewProfileRun("sales.csv", tbl, rep, 1)
}

func TestMarkdownSections(t *testing.T) {
	md := Markdown(profileRun(t, testkit.SalesTable(t)))

	assert.Contains(t, md, "# Profile: sales.csv")
	assert.Contains(t, md, "| 7 | 4 | 2 | 1 |")
	assert.Contains(t, md, "| region | categorical | 6 | 1 |")
	assert.Contains(t, md, "| units | 7 | 7 | ")
	assert.Contains(t, md, "| active | 7 | 2 | true | 4 |")
	assert.NotContains(t, md, NA)
}

func TestMarkdownRendersNullStatisticsAsNA(t *testing.T) {
	tbl, err := table.New(
		table.NewColumn("empty_numeric", table.NewMissingValue(), table.NewMissingValue()),
		table.NewColumn("v", table.NewNumericValue(5), table.NewMissingValue()),
	)
	require.NoError(t, err)

	md := Markdown(profileRun(t, tbl))

	// one present value: std is 0, quartiles collapse to it
	assert.Contains(t, md, "| v | 1 | 5 | 0 | 5 | 5 | 5 | 5 | 5 |")
	// an all-absent column is categorical with no top value
	assert.Contains(t, md, "| empty_numeric | 0 | 0 | N/A | 0 |")
}

func TestMarkdownEscapesPipes(t *testing.T) {
	tbl := testkit.StringTable(t, []string{"a|b"}, []string{"x|y"})
	md := Markdown(profileRun(t, tbl))

	assert.Contains(t, md, `| a\|b |`)
	assert.Contains(t, md, `x\|y`)
}

func TestHTML(t *testing.T) {
	page := string(HTML(profileRun(t, testkit.SalesTable(t))))

	assert.Contains(t, page, "<!DOCTYPE html>")
	assert.Contains(t, page, "<title>Profile: sales.csv</title>")
	assert.Contains(t, page, "<table>")
	assert.Contains(t, page, "<td>region</td>")
}

func TestHTMLEscapesUserContent(t *testing.T) {
	tbl := testkit.StringTable(t,
		[]string{"<img src=x onerror=alert(1)>", "note"},
		[]string{"1", "2"},
		[]string{"<script>alert(2)</script>", "<script>alert(2)</script>"},
	)
	rep := summary.NewSummaryEngine(nil).Profile(tbl)
	page := string(HTML(run.NewProfileRun("<b>evil</b>.csv", tbl, rep, 1)))

	assert.NotContains(t, page, "<img")
	assert.NotContains(t, page, "<script>")
	assert.NotContains(t, page, "<b>evil")
	assert.Contains(t, page, "&lt;script&gt;alert(2)")
	assert.Contains(t, page, "&lt;b&gt;evil")
}

func TestMarkdownEscapesMarkup(t *testing.T) {
	tbl := testkit.StringTable(t, []string{`<a>[x](y)\`}, []string{"A & B"})
	md := Markdown(profileRun(t, tbl))

	assert.Contains(t, md, `| \<a\>\[x\](y)\\ |`)
	assert.Contains(t, md, `A \& B`)
}

func TestMarkdownRendersOverflowAsNA(t *testing.T) {
	tbl := testkit.NumericTable(t, []string{"huge"}, []float64{1e308, 1e308})
	md := Markdown(profileRun(t, tbl))

	assert.Contains(t, md, "| huge | 2 | N/A | N/A | 1e+308 | 1e+308 | 1e+308 | 1e+308 | 1e+308 |")
}
