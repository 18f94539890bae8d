package handlers

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ironbatch/ironbatch/internal/platform/openstack"
	"github.com/ironbatch/ironbatch/internal/provisioning"
)

var (
	summaryColorGreen = lipgloss.Color("#22c55e")
	summaryColorRed   = lipgloss.Color("#ef4444")
	summaryColorAmber = lipgloss.Color("#f59e0b")
	summaryColorDim   = lipgloss.Color("#6b7280")
	summaryColorWhite = lipgloss.Color("#f9fafb")
)

var (
	summaryTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(summaryColorWhite)

	summaryDimStyle = lipgloss.NewStyle().
			Foreground(summaryColorDim)

	summaryGreenStyle = lipgloss.NewStyle().
				Foreground(summaryColorGreen)

	summaryRedStyle = lipgloss.NewStyle().
			Foreground(summaryColorRed)

	summaryAmberStyle = lipgloss.NewStyle().
				Foreground(summaryColorAmber)
)

// renderRunSummary produces the styled per-instance report and totals line
// for a finished run.
func renderRunSummary(result provisioning.RunResult) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(summaryTitleStyle.Render("  ironbatch run summary"))
	b.WriteString("\n")
	b.WriteString(summaryDimStyle.Render("  " + strings.Repeat("═", 30)))
	b.WriteString("\n")

	for _, o := range result.Outcomes {
		b.WriteString(renderOutcomeLine(o))
		b.WriteString("\n")
	}

	b.WriteString(summaryDimStyle.Render("  " + strings.Repeat("─", 30)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s  %s  %s\n",
		summaryGreenStyle.Render(fmt.Sprintf("%d created", result.Created)),
		summaryRedStyle.Render(fmt.Sprintf("%d failed", result.Failed)),
		summaryAmberStyle.Render(fmt.Sprintf("%d timed out", result.TimedOut)),
	))

	return b.String()
}

func renderOutcomeLine(o provisioning.Outcome) string {
	switch o.Kind {
	case provisioning.OutcomeCreated:
		detail := o.InstanceID
		if detail == "" {
			detail = "(dry run)"
		}
		return fmt.Sprintf("  %s %s %s",
			summaryGreenStyle.Render("✓"), o.Allocation.Name, summaryDimStyle.Render(detail))
	case provisioning.OutcomeTimedOut:
		return fmt.Sprintf("  %s %s %s",
			summaryAmberStyle.Render("⧖"), o.Allocation.Name, summaryDimStyle.Render("timed out"))
	default:
		return fmt.Sprintf("  %s %s %s",
			summaryRedStyle.Render("✗"), o.Allocation.Name, summaryDimStyle.Render(o.Err.Error()))
	}
}

// renderNodeList produces the styled allocatable-node listing for the nodes
// command.
func renderNodeList(pool []openstack.Node, resourceClass string) string {
	var b strings.Builder

	title := "  allocatable nodes"
	if resourceClass != "" {
		title += fmt.Sprintf(" (resource class %s)", resourceClass)
	}

	b.WriteString("\n")
	b.WriteString(summaryTitleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(summaryDimStyle.Render("  " + strings.Repeat("═", 30)))
	b.WriteString("\n")

	if len(pool) == 0 {
		b.WriteString(summaryDimStyle.Render("  none"))
		b.WriteString("\n")
		return b.String()
	}

	for _, n := range pool {
		name := n.Name
		if name == "" {
			name = "(unnamed)"
		}
		b.WriteString(fmt.Sprintf("  %s %s %s\n",
			summaryGreenStyle.Render("●"), name, summaryDimStyle.Render(n.ID)))
	}
	b.WriteString(summaryDimStyle.Render(fmt.Sprintf("  %d node(s)", len(pool))))
	b.WriteString("\n")

	return b.String()
}
