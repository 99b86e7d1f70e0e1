package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ResponseRow is one line of a frequency response table. Measured is NaN
// when no measurement was taken.
type ResponseRow struct {
	FreqHz   float64
	Model    float64
	Measured float64
}

// ResponseTable renders magnitude responses as aligned columns with a bar
// showing boost or cut.
type ResponseTable struct {
	Rows []ResponseRow
	// BarRange is the dB value that fills half the bar. Zero means 24.
	BarRange float64
	// BarWidth is the bar width in cells per side. Zero means 20.
	BarWidth int
}

// String renders the table. The measured column is only shown if any row
// has a measurement.
func (t *ResponseTable) String() string {
	if len(t.Rows) == 0 {
		return ""
	}

	measured := false
	for _, r := range t.Rows {
		if !math.IsNaN(r.Measured) {
			measured = true
			break
		}
	}

	cell := lipgloss.NewStyle().Width(12).Align(lipgloss.Right)

	var sb strings.Builder
	sb.WriteString(HeaderStyle.Render(cell.Render("Frequency") + cell.Render("Model")))
	if measured {
		sb.WriteString(HeaderStyle.Render(cell.Render("Measured")))
	}
	sb.WriteString("\n")

	for _, r := range t.Rows {
		sb.WriteString(cell.Render(FormatFrequency(r.FreqHz)))
		sb.WriteString(cell.Render(fmt.Sprintf("%+.2f dB", r.Model)))
		if measured {
			v := "-"
			if !math.IsNaN(r.Measured) {
				v = fmt.Sprintf("%+.2f dB", r.Measured)
			}
			sb.WriteString(cell.Render(v))
		}
		sb.WriteString("  ")
		sb.WriteString(t.bar(r.Model))
		sb.WriteString("\n")
	}

	return sb.String()
}

func (t *ResponseTable) bar(db float64) string {
	rng := t.BarRange
	if rng <= 0 {
		rng = 24
	}
	width := t.BarWidth
	if width <= 0 {
		width = 20
	}

	n := int(math.Round(math.Min(math.Abs(db)/rng, 1) * float64(width)))
	if math.IsNaN(db) {
		n = 0
	}

	left := strings.Repeat(" ", width)
	right := ""
	switch {
	case db < 0:
		left = strings.Repeat(" ", width-n) + CutStyle.Render(strings.Repeat("█", n))
	case db > 0:
		right = BoostStyle.Render(strings.Repeat("█", n))
	}

	return left + KeyStyle.Render("│") + right
}

// FormatFrequency renders Hz values as "750 Hz" or "2.5 kHz".
func FormatFrequency(hz float64) string {
	if hz >= 1000 {
		return strings.TrimSuffix(strings.TrimSuffix(fmt.Sprintf("%.2f", hz/1000), "0"), ".0") + " kHz"
	}

	return fmt.Sprintf("%.0f Hz", hz)
}
