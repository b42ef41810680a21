// Package report renders the latest analysis as a human-readable digest
// for the dashboard and the weekly studio email.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"studiopulse/domain/insight"
	"studiopulse/domain/pipeline"
	"studiopulse/internal/engine"
)

// BuildMarkdown assembles the digest as markdown: funnel overview, every
// insight, and the high-priority recommendations.
func BuildMarkdown(result *engine.AnalysisResult) string {
	var b strings.Builder

	b.WriteString("# Pipeline Digest\n\n")
	fmt.Fprintf(&b, "Generated %s for %d clients.\n\n",
		result.GeneratedAt.Time().Format("Jan 2, 2006 15:04"), result.Funnel.TotalClients)

	b.WriteString("## Funnel\n\n")
	fmt.Fprintf(&b, "- Total pipeline value: %s\n", engine.FormatUSD(result.Funnel.TotalPipelineValue))
	fmt.Fprintf(&b, "- Weighted pipeline value: %s\n", engine.FormatUSD(result.Funnel.WeightedPipelineValue))
	for _, stage := range pipeline.Stages {
		fmt.Fprintf(&b, "- %s: %d\n", stageLabel(stage), result.Funnel.StageCounts[stage])
	}
	b.WriteString("\n")

	if len(result.Insights) > 0 {
		b.WriteString("## Insights\n\n")
		for _, ins := range result.Insights {
			fmt.Fprintf(&b, "### %s\n\n", ins.Title)
			fmt.Fprintf(&b, "%s\n\n", ins.Description)
			fmt.Fprintf(&b, "**Next step:** %s _(confidence %.0f%%, %s impact)_\n\n",
				ins.Action, ins.Confidence*100, ins.Impact)
		}
	}

	high := highPriority(result.Recommendations)
	if len(high) > 0 {
		b.WriteString("## Do These First\n\n")
		for _, rec := range high {
			fmt.Fprintf(&b, "- **%s** — %s (by %s)\n",
				rec.Title, rec.Description, rec.SuggestedDate.Time().Format("Jan 2"))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// RenderHTML converts the markdown digest to HTML for the dashboard.
func RenderHTML(result *engine.AnalysisResult) []byte {
	md := []byte(BuildMarkdown(result))

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})

	return markdown.ToHTML(md, p, renderer)
}

func highPriority(recs []insight.Recommendation) []insight.Recommendation {
	var high []insight.Recommendation
	for _, rec := range recs {
		if rec.Priority == insight.PriorityHigh {
			high = append(high, rec)
		}
	}
	sort.SliceStable(high, func(i, j int) bool {
		return high[i].SuggestedDate.Before(high[j].SuggestedDate)
	})
	return high
}

func stageLabel(stage pipeline.Stage) string {
	if stage == "" {
		return "unknown"
	}
	return strings.ToUpper(string(stage[0])) + string(stage[1:])
}
