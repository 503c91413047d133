package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	StatusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d2b48c")).
			Background(lipgloss.Color("#1a1208"))

	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899"))

	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffd700")).
			Bold(true)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff8c00")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("#556b2f"))
)

func metric(label, value string) string {
	return MetricLabel.Render(label+" ") + MetricValue.Render(value)
}

var sparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// sparkline renders the last width values scaled between their min and max.
func sparkline(data []float64, width int) string {
	if len(data) == 0 {
		return ""
	}
	if len(data) > width {
		data = data[len(data)-width:]
	}
	minVal, maxVal := data[0], data[0]
	for _, v := range data {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	rang := maxVal - minVal
	if rang == 0 {
		rang = 1
	}
	var sb strings.Builder
	for _, v := range data {
		idx := int((v - minVal) / rang * 7)
		sb.WriteRune(sparkChars[max(0, min(idx, 7))])
	}
	return sb.String()
}

// gauge renders v as a bar of width cells that is full at full.
func gauge(v, full float64, width int) string {
	n := max(0, min(width, int(math.Round(v/full*float64(width)))))
	return "[" + strings.Repeat("=", n) + strings.Repeat(" ", width-n) + "]"
}
