package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/nhle/project-dashboard/internal/dashboard"
	"github.com/nhle/project-dashboard/internal/format"
	"github.com/nhle/project-dashboard/internal/model"
	"github.com/nhle/project-dashboard/internal/theme"
)

const progressWidth = 10

func printSuccess(w io.Writer, msg string) {
	fmt.Fprintln(w, theme.SuccessStyle.Render(msg))
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.ColorBorder)).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return theme.TableHeaderStyle
			}
			return theme.TableCellStyle
		})
}

func field(label, value string) string {
	return theme.LabelStyle.Render(label) + value
}

func renderProfile(w io.Writer, u model.User) {
	lines := []string{
		theme.HeaderStyle.Render(u.Name),
		"",
		field("Email", u.Email),
		field("Contact", u.ContactNumber),
		field("Address", u.Address),
	}
	if u.Bio != "" {
		lines = append(lines, field("Bio", u.Bio))
	}
	for _, key := range []string{model.SocialGitHub, model.SocialLinkedIn, model.SocialTwitter, model.SocialFacebook, model.SocialWebsite} {
		if url := u.SocialLinks[key]; url != "" {
			lines = append(lines, field(strings.ToUpper(key[:1])+key[1:], url))
		}
	}
	fmt.Fprintln(w, theme.PanelStyle.Render(strings.Join(lines, "\n")))
}

func renderAnalytics(w io.Writer, a model.Analytics) {
	completion := 0
	if a.TotalProjects > 0 {
		completion = a.CompletedProjects * 100 / a.TotalProjects
	}
	lines := []string{
		theme.HeaderStyle.Render("Analytics"),
		"",
		field("Projects", format.Count(a.TotalProjects)),
		field("Completed", theme.StatusStyle(model.StatusCompleted).Render(format.Count(a.CompletedProjects))),
		field("In Progress", theme.StatusStyle(model.StatusInProgress).Render(format.Count(a.InProgressProjects))),
		field("On Hold", theme.StatusStyle(model.StatusOnHold).Render(format.Count(a.OnHoldProjects))),
		field("Planned", theme.StatusStyle(model.StatusPlanned).Render(format.Count(a.PlannedProjects()))),
		field("Tasks", format.Count(a.TotalTasks)),
		field("Earnings", format.Currency(a.Earnings)),
		field("Completion", theme.ProgressBar(completion, progressWidth)+" "+format.Percent(completion)),
	}
	fmt.Fprintln(w, theme.PanelStyle.Render(strings.Join(lines, "\n")))
}

func renderActivity(w io.Writer, activity []dashboard.Activity, unread int, now time.Time) {
	fmt.Fprintln(w, theme.HeaderStyle.Render(fmt.Sprintf("Recent activity (%d unread)", unread)))
	if len(activity) == 0 {
		fmt.Fprintln(w, theme.HelpStyle.Render("No recent activity"))
		return
	}
	for _, a := range activity {
		line := fmt.Sprintf("%s  %s  %s",
			theme.NotificationStyle(a.Type).Render(fmt.Sprintf("%-9s", a.Type)),
			a.ProjectName,
			theme.HelpStyle.Render(format.RelativeTime(a.Timestamp, now)),
		)
		fmt.Fprintln(w, line)
	}
}

func renderProjects(w io.Writer, projects []model.Project) {
	t := newTable("ID", "NAME", "STATUS", "PROGRESS", "TASKS", "TAGS")
	for _, p := range projects {
		t.Row(
			p.ID,
			p.Name,
			theme.StatusStyle(p.Status).Render(p.Status.Label()),
			theme.ProgressBar(p.Progress, progressWidth)+" "+format.Percent(p.Progress),
			fmt.Sprintf("%d/%d", p.CompletedTasks(), len(p.Tasks)),
			strings.Join(p.Tags, ", "),
		)
	}
	fmt.Fprintln(w, t.Render())
}

func renderProject(w io.Writer, p model.Project, now time.Time) {
	lines := []string{
		theme.HeaderStyle.Render(p.Name),
		"",
		field("ID", p.ID),
		field("Status", theme.StatusStyle(p.Status).Render(p.Status.Label())),
		field("Progress", theme.ProgressBar(p.Progress, progressWidth)+" "+format.Percent(p.Progress)),
		field("Owner", p.Owner),
		field("Tags", strings.Join(p.Tags, ", ")),
		field("Created", format.Date(p.CreatedAt)),
		field("Updated", format.RelativeTime(p.UpdatedAt, now)),
	}
	if p.Description != "" {
		lines = append(lines, "", p.Description)
	}
	if len(p.Tasks) > 0 {
		lines = append(lines, "", fmt.Sprintf("Tasks (%d/%d done)", p.CompletedTasks(), len(p.Tasks)))
		for _, t := range p.Tasks {
			box := "[ ]"
			if t.Completed {
				box = theme.SuccessStyle.Render("[x]")
			}
			lines = append(lines, box+" "+t.Name)
		}
	}
	fmt.Fprintln(w, theme.PanelStyle.Render(strings.Join(lines, "\n")))
}

func renderNotifications(w io.Writer, notifications []model.Notification, now time.Time) {
	if len(notifications) == 0 {
		fmt.Fprintln(w, theme.HelpStyle.Render("No notifications"))
		return
	}
	t := newTable("", "ID", "TITLE", "MESSAGE", "WHEN")
	for _, n := range notifications {
		marker := theme.UnreadStyle.Render("●")
		title := theme.NotificationStyle(n.Type).Render(n.Title)
		msg := n.Message
		if n.Read {
			marker = " "
			msg = theme.DimmedStyle.Render(msg)
		}
		t.Row(marker, n.ID, title, msg, format.RelativeTime(n.Timestamp, now))
	}
	fmt.Fprintln(w, t.Render())
}
