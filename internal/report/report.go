// Package report renders discovery results as markdown and HTML.
package report

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"github.com/battyone/beyond-correlation/domain/relate"
	"github.com/battyone/beyond-correlation/internal/profile"
)

// topPairLimit caps the ranked pair table
const topPairLimit = 25

// Input bundles everything a report covers
type Input struct {
	Run      *relate.Run
	Profiles []profile.ColumnProfile
}

// Markdown renders the full discovery report
func Markdown(in Input) string {
	var b strings.Builder
	run := in.Run

	b.WriteString("# Relationship Discovery Report\n\n")
	b.WriteString(fmt.Sprintf("- **Run**: %s\n", run.ID))
	b.WriteString(fmt.Sprintf("- **Source**: %s\n", run.Source))
	b.WriteString(fmt.Sprintf("- **Method**: %s\n", run.Method))
	if run.Seed != nil {
		b.WriteString(fmt.Sprintf("- **Seed**: %d\n", *run.Seed))
	}
	b.WriteString(fmt.Sprintf("- **Columns**: %s\n", strings.Join(run.Columns, ", ")))
	b.WriteString(fmt.Sprintf("- **Created**: %s\n\n", run.CreatedAt.Format("2006-01-02 15:04:05")))

	writeTopPairs(&b, run.Result)
	writeFailures(&b, run.Result)
	writeDropDiagnostics(&b, run.Result)
	writeProfiles(&b, in.Profiles)

	return b.String()
}

// HTML renders the report as a standalone HTML fragment
func HTML(in Input) []byte {
	md := []byte(Markdown(in))
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.ToHTML(md, p, renderer)
}

// writeTopPairs ranks scored pairs by absolute score, NaN scores last
func writeTopPairs(b *strings.Builder, result *relate.Result) {
	b.WriteString("## Strongest Relationships\n\n")
	if len(result.Scores) == 0 {
		b.WriteString("No pairs scored.\n\n")
		return
	}

	ranked := make([]relate.ScoreRecord, len(result.Scores))
	copy(ranked, result.Scores)
	sort.SliceStable(ranked, func(i, j int) bool {
		si, sj := ranked[i].Score, ranked[j].Score
		if math.IsNaN(si) {
			return false
		}
		if math.IsNaN(sj) {
			return true
		}
		return math.Abs(si) > math.Abs(sj)
	})

	b.WriteString("| Rank | Feature | Target | Score |\n")
	b.WriteString("|------|---------|--------|-------|\n")
	limit := len(ranked)
	if limit > topPairLimit {
		limit = topPairLimit
	}
	for i := 0; i < limit; i++ {
		s := ranked[i]
		b.WriteString(fmt.Sprintf("| %d | %s | %s | %s |\n", i+1, s.Feature, s.Target, formatScore(s.Score)))
	}
	b.WriteString("\n")
}

func writeFailures(b *strings.Builder, result *relate.Result) {
	if len(result.Failures) == 0 {
		return
	}
	b.WriteString("## Failed Pairs\n\n")
	for _, f := range result.Failures {
		b.WriteString(fmt.Sprintf("- `%s` → `%s`: %s\n", f.Feature, f.Target, f.Err))
	}
	b.WriteString("\n")
}

// writeDropDiagnostics lists only pairs that actually lost rows
func writeDropDiagnostics(b *strings.Builder, result *relate.Result) {
	if len(result.NaNInfo) == 0 {
		return
	}
	var dropped []relate.NaNInfo
	for _, n := range result.NaNInfo {
		if n.NDropped > 0 {
			dropped = append(dropped, n)
		}
	}
	b.WriteString("## Missing-Data Diagnostics\n\n")
	if len(dropped) == 0 {
		b.WriteString("No rows were dropped for any pair.\n\n")
		return
	}
	b.WriteString("| Feature | Target | Rows Dropped | Fraction |\n")
	b.WriteString("|---------|--------|--------------|----------|\n")
	for _, n := range dropped {
		b.WriteString(fmt.Sprintf("| %s | %s | %d | %.1f%% |\n", n.Feature, n.Target, n.NDropped, n.PctDropped*100))
	}
	b.WriteString("\n")
}

func writeProfiles(b *strings.Builder, profiles []profile.ColumnProfile) {
	if len(profiles) == 0 {
		return
	}
	b.WriteString("## Column Profiles\n\n")
	b.WriteString("| Column | Rows | Missing | Distinct | Mean | Std Dev | Min | Max |\n")
	b.WriteString("|--------|------|---------|----------|------|---------|-----|-----|\n")
	for _, p := range profiles {
		if p.Numeric {
			b.WriteString(fmt.Sprintf("| %s | %d | %d | %d | %s | %s | %s | %s |\n",
				p.Name, p.Rows, p.Missing, p.Distinct,
				formatScore(p.Mean), formatScore(p.StdDev), formatScore(p.Min), formatScore(p.Max)))
		} else {
			b.WriteString(fmt.Sprintf("| %s | %d | %d | %d | - | - | - | - |\n",
				p.Name, p.Rows, p.Missing, p.Distinct))
		}
	}
	b.WriteString("\n")
}

func formatScore(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return fmt.Sprintf("%.4f", v)
}
