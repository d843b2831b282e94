package projectlist

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/project-dashboard/internal/format"
	"github.com/nhle/project-dashboard/internal/model"
	"github.com/nhle/project-dashboard/internal/theme"
)

// maxTagBadges is how many tags a row shows before eliding the rest.
const maxTagBadges = 2

// ProjectItem wraps a model.Project so it can be used in a bubbles/list.
type ProjectItem struct {
	Project model.Project
}

// FilterValue returns the string used for fuzzy filtering.
func (i ProjectItem) FilterValue() string { return i.Project.Name }

// Title returns the project name for the list.
func (i ProjectItem) Title() string { return i.Project.Name }

// Description returns a short summary line for the list.
func (i ProjectItem) Description() string {
	parts := []string{
		i.Project.Status.Label(),
		format.Percent(i.Project.Progress),
		i.Project.Owner,
	}
	return strings.Join(parts, " | ")
}

// ItemDelegate implements list.ItemDelegate for rendering project rows.
type ItemDelegate struct {
	now func() time.Time
}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused for now).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single project row.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	pi, ok := item.(ProjectItem)
	if !ok {
		return
	}
	fmt.Fprint(w, d.renderRow(pi.Project, index == m.Index()))
}

func (d ItemDelegate) renderRow(p model.Project, isSelected bool) string {
	prefix := "○"
	if p.Status == model.StatusCompleted {
		prefix = "✓"
	}

	statusBadge := theme.StatusStyle(p.Status).Render(fmt.Sprintf("%-11s", p.Status.Label()))
	bar := theme.ProgressBar(p.Progress, 10)

	tagBadge := ""
	if len(p.Tags) > 0 {
		display := p.Tags
		if len(display) > maxTagBadges {
			display = append(display[:maxTagBadges:maxTagBadges], "…")
		}
		tagBadge = lipgloss.NewStyle().
			Foreground(theme.ColorMagenta).
			Render(" #" + strings.Join(display, ","))
	}

	timeStr := ""
	if d.now != nil {
		timeStr = "  " + lipgloss.NewStyle().
			Foreground(theme.ColorGray).
			Render(format.RelativeTime(p.UpdatedAt, d.now()))
	}

	line := fmt.Sprintf(
		"%s %s %s %4s %s%s%s",
		prefix, statusBadge, bar, format.Percent(p.Progress), p.Name, tagBadge, timeStr,
	)

	if p.Status == model.StatusCompleted && !isSelected {
		line = theme.DimmedStyle.Render(line)
	}

	if isSelected {
		return theme.SelectedItemStyle.Render(line)
	}
	return theme.ListItemStyle.Render(line)
}
