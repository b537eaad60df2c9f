package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/imamik/dwhctl/internal/ui/benchmarks"
)

// styleFunc is a single-string styling function.
type styleFunc func(string) string

// sf wraps a lipgloss.Style into a styleFunc.
func sf(s lipgloss.Style) styleFunc {
	return func(str string) string { return s.Render(str) }
}

func renderView(m Model) string {
	var b strings.Builder

	// Header
	renderHeader(&b, m)

	// Progress bar
	renderProgressBar(&b, m)

	// Phase checklist
	renderPhases(&b, m)

	// Recorded attributes
	if len(m.Recorded) > 0 {
		renderRecorded(&b, m)
	}

	// Footer
	renderFooter(&b, m)

	return b.String()
}

func renderHeader(b *strings.Builder, m Model) {
	title := fmt.Sprintf("dwhctl: %s", m.ClusterID)
	if m.Region != "" {
		title += fmt.Sprintf(" (%s)", m.Region)
	}
	b.WriteString(titleStyle.Render(title))

	status := " "
	switch {
	case m.Err != nil:
		status += failedStyle.Render(fmt.Sprintf("Error: %v", m.Err))
	case m.Done && m.Mode == "destroy":
		status += readyStyle.Render("Destroyed")
	case m.Done:
		status += readyStyle.Render("Ready")
	default:
		if phase, ok := activePhase(m); ok {
			status += activeStyle.Render(currentSpinner(m.SpinnerFrame)+" ") + warningStyle.Render(phase.Name)
		} else {
			status += dimStyle.Render("Starting...")
		}
	}
	b.WriteString(status)
	b.WriteString("\n")
}

func renderProgressBar(b *strings.Builder, m Model) {
	progress := calculateProgress(m)
	barWidth := 40
	if m.Width > 0 && m.Width < 80 {
		barWidth = m.Width - 30
		if barWidth < 10 {
			barWidth = 10
		}
	}
	filled := int(float64(barWidth) * progress)
	if filled > barWidth {
		filled = barWidth
	}

	bar := progressBarFull.Render(strings.Repeat("█", filled)) +
		progressBarEmpty.Render(strings.Repeat("░", barWidth-filled))

	pct := int(progress * 100)
	eta := ""
	if m.EstimatedRemaining > 0 {
		eta = fmt.Sprintf(" ETA %s", formatDuration(m.EstimatedRemaining))
	}
	if m.PerformanceScale != 0 && m.PerformanceScale != 1.0 {
		eta += fmt.Sprintf("  speed x%.2f", m.PerformanceScale)
	}

	fmt.Fprintf(b, "  %s %d%%%s\n", bar, pct, eta)
}

func renderPhases(b *strings.Builder, m Model) {
	section := "  Provisioning"
	if m.Mode == "destroy" {
		section = "  Teardown"
	}
	b.WriteString(sectionStyle.Render(section))
	b.WriteString("\n")

	for _, phase := range m.Phases {
		var icon string
		var style styleFunc
		switch {
		case phase.Err != nil:
			icon = crossMark
			style = sf(failedStyle)
		case phase.Done:
			icon = checkMark
			style = sf(readyStyle)
		case phase.Active:
			icon = currentSpinner(m.SpinnerFrame)
			style = sf(activeStyle)
		default:
			icon = pending
			style = sf(dimStyle)
		}

		extra := ""
		key := m.benchmarkKey(phase.Key)
		switch {
		case phase.Done:
			if d, ok := m.completed[key]; ok {
				extra = dimStyle.Render(formatDuration(d))
			}
		case phase.Active:
			extra = dimStyle.Render(formatDuration(time.Since(m.phaseStart))) + " " + phaseMiniBar(m, key)
		}

		fmt.Fprintf(b, "    %s %-20s %s\n", style(icon), style(phase.Name), extra)

		if phase.Active && m.LastStatus != "" {
			fmt.Fprintf(b, "         %s\n", subtitleStyle.Render(m.LastStatus))
		}
	}
}

func renderRecorded(b *strings.Builder, m Model) {
	b.WriteString(sectionStyle.Render("  Recorded"))
	b.WriteString("\n")

	for _, attr := range m.Recorded {
		fmt.Fprintf(b, "    %s %s\n", dimStyle.Render(fmt.Sprintf("%-10s", attr.Key)), attr.Value)
	}
}

func renderFooter(b *strings.Builder, m Model) {
	elapsed := formatDuration(time.Since(m.StartTime))
	pulse := ""
	if !m.Done && m.Err == nil {
		pulse = "  |  " + currentSpinner(m.SpinnerFrame) + " working"
	}
	b.WriteString(footerStyle.Render(fmt.Sprintf("  elapsed: %s%s  |  q: quit", elapsed, pulse)))
	b.WriteString("\n")
}

// Helper functions

func activePhase(m Model) (Phase, bool) {
	for _, phase := range m.Phases {
		if phase.Active && !phase.Done {
			return phase, true
		}
	}
	return Phase{}, false
}

func currentSpinner(frame int) string {
	if len(spinnerFrames) == 0 {
		return spinner
	}
	if frame < 0 {
		frame = -frame
	}
	return spinnerFrames[frame%len(spinnerFrames)]
}

// phaseMiniBar renders a small progress bar for the active phase against
// its benchmark duration.
func phaseMiniBar(m Model, key string) string {
	expected, ok := benchmarks.ExpectedDuration(key)
	if !ok {
		return ""
	}
	if m.PerformanceScale > 0 {
		expected = time.Duration(float64(expected) * m.PerformanceScale)
	}

	const width = 10
	progress := float64(time.Since(m.phaseStart)) / float64(expected)
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	filled := int(progress * width)
	if filled > width {
		filled = width
	}
	return progressBarFull.Render(strings.Repeat("█", filled)) + progressBarEmpty.Render(strings.Repeat("░", width-filled))
}

func calculateProgress(m Model) float64 {
	if m.Done {
		return 1.0
	}

	total := benchmarks.TotalEstimate(m.order())
	if total == 0 {
		return 0
	}

	// Weight each phase by its benchmark duration
	var done time.Duration
	for _, phase := range m.Phases {
		expected, ok := benchmarks.ExpectedDuration(m.benchmarkKey(phase.Key))
		if !ok {
			continue
		}
		switch {
		case phase.Done:
			done += expected
		case phase.Active:
			elapsed := time.Since(m.phaseStart)
			if elapsed > expected {
				elapsed = expected
			}
			done += elapsed
		}
	}

	progress := float64(done) / float64(total)
	if progress > 1.0 {
		progress = 1.0
	}
	return progress
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
}
