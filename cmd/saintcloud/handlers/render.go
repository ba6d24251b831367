package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/saintcloud/saintcloud/internal/audit"
)

var (
	colorGreen = lipgloss.Color("#22c55e")
	colorRed   = lipgloss.Color("#ef4444")
	colorBlue  = lipgloss.Color("#3b82f6")
	colorDim   = lipgloss.Color("#6b7280")
)

// renderer formats audit results. A plain renderer emits unstyled text for
// pipes and log files.
type renderer struct {
	title   lipgloss.Style
	dim     lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
}

func newRenderer(styled bool) renderer {
	if !styled {
		plain := lipgloss.NewStyle()
		return renderer{title: plain, dim: plain, success: plain, failure: plain}
	}
	return renderer{
		title:   lipgloss.NewStyle().Bold(true).Foreground(colorBlue),
		dim:     lipgloss.NewStyle().Foreground(colorDim),
		success: lipgloss.NewStyle().Foreground(colorGreen),
		failure: lipgloss.NewStyle().Foreground(colorRed),
	}
}

// orphans lists versions without instances.
func (r renderer) orphans(orphans []audit.OrphanCandidate) string {
	var b strings.Builder

	b.WriteString(r.title.Render("Versions with no instances:"))
	b.WriteString("\n")
	for _, o := range orphans {
		b.WriteString(fmt.Sprintf(" - project: %s, service: %s, version: %s ", o.ProjectID, o.ServiceID, o.VersionID))
		b.WriteString(r.dim.Render("(" + describeAge(o) + ")"))
		b.WriteString("\n")
	}

	return b.String()
}

// deletion summarises a deletion batch.
func (r renderer) deletion(result audit.DeletionReport) string {
	var b strings.Builder

	b.WriteString(r.success.Render(fmt.Sprintf("%d versions successfully deleted", result.SuccessCount)))
	b.WriteString("\n")
	if len(result.Failures) > 0 {
		b.WriteString(r.failure.Render(fmt.Sprintf("%d errors:", len(result.Failures))))
		b.WriteString("\n")
		for _, f := range result.Failures {
			b.WriteString(fmt.Sprintf(" - project: %s, service: %s, version: %s: %v\n",
				f.Ref.ProjectID, f.Ref.ServiceID, f.Ref.VersionID, f.Err))
		}
	}

	return b.String()
}

func describeAge(o audit.OrphanCandidate) string {
	if !o.AgeKnown {
		return "creation time unknown"
	}
	return "created " + formatAge(o.Age) + " ago"
}

// formatAge renders d with its two most significant units, e.g. "5d 3h".
func formatAge(d time.Duration) string {
	if d < 0 {
		return "0s"
	}
	days := int(d / (24 * time.Hour))
	hours := int(d % (24 * time.Hour) / time.Hour)
	minutes := int(d % time.Hour / time.Minute)
	seconds := int(d % time.Minute / time.Second)

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}
