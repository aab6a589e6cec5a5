package report

import (
	"fmt"
	"strconv"
	"strings"

	"tabscope/domain/profile"
	"tabscope/domain/run"
)

// NA is printed for statistics that are undefined
const NA = "N/A"

// Markdown renders a profile run as a Markdown document. Sections follow the
// report layout: overview, column info, numeric summary, categorical summary.
func Markdown(r *run.ProfileRun) string {
	var b strings.Builder
	rep := r.Report

	fmt.Fprintf(&b, "# Profile: %s\n\n", escape(r.Source))
	fmt.Fprintf(&b, "Run `%s` generated %s\n\n", r.ID, r.GeneratedAt.Time().Format("2006-01-02 15:04:05 MST"))

	b.WriteString("## Overview\n\n")
	b.WriteString("| Rows | Columns | Missing cells | Duplicate rows |\n")
	b.WriteString("|---:|---:|---:|---:|\n")
	fmt.Fprintf(&b, "| %d | %d | %d | %d |\n\n",
		rep.Dataset.RowCount, rep.Dataset.ColumnCount,
		rep.Dataset.MissingCellCount, rep.Dataset.DuplicateRowCount)

	b.WriteString("## Columns\n\n")
	b.WriteString("| Column | Type | Non-null | Missing |\n")
	b.WriteString("|---|---|---:|---:|\n")
	for _, info := range rep.Info {
		fmt.Fprintf(&b, "| %s | %s | %d | %d |\n", escape(info.Name), info.Type, info.NonNullCount, info.MissingCount)
	}
	b.WriteString("\n")

	writeNumeric(&b, rep)
	writeCategorical(&b, rep)

	return b.String()
}

func writeNumeric(b *strings.Builder, rep profile.Report) {
	b.WriteString("## Numeric summary\n\n")
	names := rep.NumericColumns()
	if len(names) == 0 {
		b.WriteString("No numeric columns.\n\n")
		return
	}

	b.WriteString("| Column | count | mean | std | min | 25% | 50% | 75% | max |\n")
	b.WriteString("|---|---:|---:|---:|---:|---:|---:|---:|---:|\n")
	for _, name := range names {
		s := rep.Columns[name].Numeric
		fmt.Fprintf(b, "| %s | %d | %s | %s | %s | %s | %s | %s | %s |\n",
			escape(name), s.Count,
			num(s.Mean), num(s.Std), num(s.Min), num(s.Q1), num(s.Median), num(s.Q3), num(s.Max))
	}
	b.WriteString("\n")
}

func writeCategorical(b *strings.Builder, rep profile.Report) {
	var names []string
	for _, name := range rep.ColumnOrder {
		if rep.Columns[name].Categorical != nil {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return
	}

	b.WriteString("## Categorical summary\n\n")
	b.WriteString("| Column | count | unique | top | freq |\n")
	b.WriteString("|---|---:|---:|---|---:|\n")
	for _, name := range names {
		s := rep.Columns[name].Categorical
		top := NA
		if s.TopValue != nil {
			top = escape(*s.TopValue)
		}
		fmt.Fprintf(b, "| %s | %d | %d | %s | %d |\n", escape(name), s.Count, s.UniqueCount, top, s.TopFrequency)
	}
	b.WriteString("\n")
}

func num(f *float64) string {
	if f == nil {
		return NA
	}
	return strconv.FormatFloat(*f, 'g', 6, 64)
}

// cellEscaper backslash-escapes table delimiters and anything that would
// otherwise be read as inline HTML or link syntax.
var cellEscaper = strings.NewReplacer(
	`\`, `\\`,
	"|", `\|`,
	"<", `\<`,
	">", `\>`,
	"&", `\&`,
	"[", `\[`,
	"]", `\]`,
	"\n", " ",
	"\r", " ",
)

func escape(s string) string {
	return cellEscaper.Replace(s)
}
