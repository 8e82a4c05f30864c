package history

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/delvin02/decision-maker/internal/model"
)

const sparkChars = " .:-=+*#%@"

const terminalWidthBackup = 80

// TerminalWidth returns the current terminal width or a fixed fallback.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

// RenderReport prints the plain-text history report.
func RenderReport(w io.Writer, report Report) error {
	if err := RenderDecisions(w, report); err != nil {
		return err
	}
	if err := RenderFrequencies(w, report); err != nil {
		return err
	}
	return RenderActivity(w, report)
}

// RenderDecisions prints the decision log table.
func RenderDecisions(w io.Writer, report Report) error {
	if len(report.Records) == 0 {
		_, err := fmt.Fprintln(w, "No decisions recorded yet.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Decisions"); err != nil {
		return err
	}
	headers := []string{"When", "Mode", "Result", "Category", "Weight"}
	rows := make([][]string, 0, len(report.Records))
	for _, rec := range report.Records {
		category := string(rec.Category)
		weight := fmt.Sprintf("%d/%d", rec.Weight, rec.TotalWeight)
		if rec.Mode != model.ModeWheel {
			category = "-"
			weight = "-"
		}
		rows = append(rows, []string{
			rec.DecidedAt.Local().Format("2006-01-02 15:04"),
			rec.Mode,
			rec.Label,
			category,
			weight,
		})
	}
	rightAlign := map[int]bool{4: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderFrequencies prints per-label observed vs expected selection shares.
func RenderFrequencies(w io.Writer, report Report) error {
	if len(report.Aggregates) == 0 {
		return nil
	}
	total := 0
	for _, agg := range report.Aggregates {
		total += agg.Count
	}
	if _, err := fmt.Fprintln(w, "Wheel Frequencies"); err != nil {
		return err
	}
	headers := []string{"Label", "Picks", "Observed", "Expected"}
	rows := make([][]string, 0, len(report.Aggregates))
	for _, agg := range report.Aggregates {
		rows = append(rows, []string{
			agg.Label,
			fmt.Sprintf("%d", agg.Count),
			fmt.Sprintf("%.1f%%", ObservedShare(agg, total)*100),
			fmt.Sprintf("%.1f%%", ExpectedShare(agg)*100),
		})
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderActivity prints a per-day decision count sparkline.
func RenderActivity(w io.Writer, report Report) error {
	counts := CountPerDay(report.Records)
	if len(counts) < 2 {
		return nil
	}
	if len(counts) > TerminalWidth() {
		counts = counts[len(counts)-TerminalWidth():]
	}
	if _, err := fmt.Fprintln(w, "Decisions per day"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, Sparkline(counts)); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}
