package diagram

import (
	"fmt"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"
)

// Point represents a 2D plot coordinate (in)
type Point struct {
	X float64
	Y float64
}

// MemberData holds what the diagrams need to know about one member
type MemberData struct {
	Name         string
	Points       []Point
	SafetyFactor float64
	MaxLoad      float64 // kips
	Governs      bool
}

// FigureData holds data for drawing the assembly and safety-factor panels
type FigureData struct {
	Members       []MemberData
	AllowableLoad float64 // kips
	TargetFactor  float64
}

// Governing returns the names of the governing members
func (d FigureData) Governing() []string {
	var names []string
	for _, m := range d.Members {
		if m.Governs {
			names = append(names, m.Name)
		}
	}
	return names
}

// SuperTitle is the heading of the figure
func (d FigureData) SuperTitle() string {
	return fmt.Sprintf("First Member(s) to Fail: [%s]", strings.Join(d.Governing(), ", "))
}

// DrawSafetyFactorBars creates a horizontal ASCII bar chart of the safety
// factors with the target factor marked
func DrawSafetyFactorBars(data FigureData) string {
	var sb strings.Builder

	width := 40
	top := data.TargetFactor
	nameWidth := 4
	for _, m := range data.Members {
		top = math.Max(top, m.SafetyFactor)
		if len(m.Name) > nameWidth {
			nameWidth = len(m.Name)
		}
	}
	if top <= 0 {
		return ""
	}
	scale := float64(width) / top
	targetCol := int(math.Round(data.TargetFactor * scale))

	sb.WriteString("\n")
	sb.WriteString("  SAFETY FACTOR BY MEMBER\n")
	sb.WriteString("  ───────────────────────\n\n")

	for _, m := range data.Members {
		n := int(math.Round(m.SafetyFactor * scale))
		bar := []rune(strings.Repeat("█", n) + strings.Repeat(" ", width-n))
		if targetCol > 0 && targetCol <= width && targetCol > n {
			bar[targetCol-1] = '┆'
		}
		mark := ""
		if m.Governs {
			mark = "  ◄ governs"
		}
		sb.WriteString(fmt.Sprintf("  %-*s │%s %.3f%s\n", nameWidth, m.Name, string(bar), m.SafetyFactor, mark))
	}

	if data.TargetFactor > 0 {
		sb.WriteString(fmt.Sprintf("\n  %-*s  ┆ = target safety factor %.2f\n", nameWidth, "", data.TargetFactor))
	}
	return sb.String()
}

// SweepSeries holds one curve of a safety-factor sweep
type SweepSeries struct {
	Name   string
	Values []float64
}

// DrawSweep plots safety factor against load scale in the terminal
func DrawSweep(series []SweepSeries, caption string) string {
	var data [][]float64
	var names []string
	for _, s := range series {
		if len(s.Values) == 0 {
			continue
		}
		data = append(data, s.Values)
		names = append(names, s.Name)
	}
	if len(data) == 0 {
		return ""
	}

	colors := []asciigraph.AnsiColor{asciigraph.Red, asciigraph.Green, asciigraph.Blue, asciigraph.Yellow}
	graph := asciigraph.PlotMany(data,
		asciigraph.Height(12),
		asciigraph.Width(70),
		asciigraph.Precision(2),
		asciigraph.SeriesColors(colors[:min(len(data), len(colors))]...),
		asciigraph.Caption(fmt.Sprintf("%s (series: %s)", caption, strings.Join(names, ", "))),
	)
	return graph
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := len([]rune(title))
	for _, line := range lines {
		if n := len([]rune(line)); n > maxLen {
			maxLen = n
		}
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(title, maxLen-4)))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(line, maxLen-4)))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}

// pad right-pads s with spaces to n runes
func pad(s string, n int) string {
	if k := len([]rune(s)); k < n {
		return s + strings.Repeat(" ", n-k)
	}
	return s
}
