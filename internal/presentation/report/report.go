package report

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/penwyp/go-timeline-export/internal/analysis"
	"github.com/penwyp/go-timeline-export/internal/util"
)

// topEntries caps each ranking table.
const topEntries = 5

// Renderer prints a statistics summary to out in sections.
type Renderer struct {
	out   io.Writer
	width int
}

// NewRenderer creates a Renderer sized to the current terminal.
func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out, width: terminalWidth()}
}

// terminalWidth returns the usable report width with a fallback for
// non-terminal output.
func terminalWidth() int {
	termWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || termWidth < 60 {
		termWidth = 74
	}
	width := termWidth - 8
	if width > 100 {
		width = 100
	}
	return width
}

// Render prints the full statistics report for one run.
func (r *Renderer) Render(runID, inputDir string, summary *analysis.Summary) {
	separator := util.FormatSectionSeparator(r.width)

	fmt.Fprintln(r.out, separator)
	fmt.Fprintln(r.out, util.FormatHeaderTitle("=== Timeline Export Statistics ==="))
	fmt.Fprintf(r.out, "Run ID: %s\n", runID)
	fmt.Fprintf(r.out, "Input Directory: %s\n", inputDir)
	fmt.Fprintln(r.out, separator)

	r.renderOverview(summary)
	fmt.Fprintln(r.out, separator)

	r.renderActivities(summary)
	fmt.Fprintln(r.out, separator)

	r.renderVisits(summary)
	fmt.Fprintln(r.out, separator)
}

func (r *Renderer) renderOverview(summary *analysis.Summary) {
	fmt.Fprintln(r.out, util.FormatOverviewTitle("=== Overview ==="))
	fmt.Fprintf(r.out, "Files Scanned: %d\n", summary.Files)
	fmt.Fprintf(r.out, "Timeline Objects: %s\n", util.FormatCount(summary.Activities+summary.Visits))
	fmt.Fprintf(r.out, "Activity Segments: %s\n", util.FormatCount(summary.Activities))
	fmt.Fprintf(r.out, "Place Visits: %s\n", util.FormatCount(summary.Visits))
	if summary.MissingStartTimes > 0 {
		fmt.Fprintf(r.out, "Records Without Start Time: %d\n", summary.MissingStartTimes)
	}
}

func (r *Renderer) renderActivities(summary *analysis.Summary) {
	fmt.Fprintln(r.out, util.FormatDataTitle("=== Activity Segments ==="))
	if summary.Activities == 0 {
		fmt.Fprintln(r.out, "No activity segments found")
		return
	}

	r.renderRange(summary.ActivityRange)
	fmt.Fprintf(r.out, "Recorded Distance: %s\n", util.FormatDistance(summary.RecordedMeters))
	fmt.Fprintf(r.out, "Endpoint Displacement: %s\n", util.FormatDistance(summary.DisplacementMeters))
	r.renderRanking("Top Activity Types", summary.ActivityTypes, summary.Activities)
}

func (r *Renderer) renderVisits(summary *analysis.Summary) {
	fmt.Fprintln(r.out, util.FormatDataTitle("=== Place Visits ==="))
	if summary.Visits == 0 {
		fmt.Fprintln(r.out, "No place visits found")
		return
	}

	r.renderRange(summary.VisitRange)
	r.renderRanking("Top Places", summary.Places, summary.Visits)
}

func (r *Renderer) renderRange(rng analysis.TimeRange) {
	if rng.Earliest == "" {
		return
	}
	fmt.Fprintf(r.out, "Date Range: %s to %s\n", rng.Earliest, rng.Latest)
	if span, ok := rng.Span(); ok {
		fmt.Fprintf(r.out, "Span: %s\n", util.FormatDuration(span))
	}
}

func (r *Renderer) renderRanking(title string, entries []analysis.NameCount, total int) {
	if len(entries) == 0 {
		return
	}
	if len(entries) > topEntries {
		entries = entries[:topEntries]
	}

	nameWidth := r.nameColumnWidth(entries)

	fmt.Fprintf(r.out, "\n%s:\n", title)
	for _, entry := range entries {
		share := float64(entry.Count) / float64(total) * 100
		name := util.PadRight(util.TruncateText(entry.Name, nameWidth), nameWidth)
		fmt.Fprintf(r.out, "  %s  %8s  %5.1f%%\n", name, util.FormatCount(entry.Count), share)
	}
}

// nameColumnWidth sizes the name column to the longest entry, bounded by
// the report width minus the count and share columns.
func (r *Renderer) nameColumnWidth(entries []analysis.NameCount) int {
	maxWidth := r.width - 20
	if maxWidth < 12 {
		maxWidth = 12
	}

	longest := 0
	for _, entry := range entries {
		if w := util.GetDisplayWidth(entry.Name); w > longest {
			longest = w
		}
	}
	if longest < 1 {
		longest = 1
	}
	if longest > maxWidth {
		return maxWidth
	}
	return longest
}
