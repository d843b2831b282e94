// Package projectlist is the interactive project browser: a scrollable list
// of the signed-in user's projects with search, a status filter and quick
// status changes.
package projectlist

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/project-dashboard/internal/dashboard"
	"github.com/nhle/project-dashboard/internal/format"
	"github.com/nhle/project-dashboard/internal/keys"
	"github.com/nhle/project-dashboard/internal/model"
	"github.com/nhle/project-dashboard/internal/theme"
)

// Source is the slice of the project data store the browser needs.
type Source interface {
	Filter(f dashboard.ProjectFilter) []model.Project
	UpdateProject(ctx context.Context, id string, patch dashboard.ProjectPatch) (model.Project, error)
}

// ProjectsLoadedMsg is sent when projects have been read from the store.
type ProjectsLoadedMsg struct {
	Projects []model.Project
}

// ProjectUpdatedMsg reports the outcome of a quick status change.
type ProjectUpdatedMsg struct {
	Project model.Project
	Err     error
}

// statusFilters is the cycle walked by the status filter key; the empty
// status shows every project.
var statusFilters = []model.ProjectStatus{
	"",
	model.StatusPlanned,
	model.StatusInProgress,
	model.StatusOnHold,
	model.StatusCompleted,
}

// Model is the project browser view.
type Model struct {
	ctx         context.Context
	list        list.Model
	src         Source
	keys        *keys.KeyMap
	help        help.Model
	filter      dashboard.ProjectFilter
	statusIndex int
	searchMode  bool
	searchInput textinput.Model
	detail      *model.Project
	flash       string
	now         func() time.Time
	width       int
	height      int
}

// New creates a project browser reading from src.
func New(ctx context.Context, src Source, k *keys.KeyMap, width, height int) Model {
	delegate := ItemDelegate{now: time.Now}
	l := list.New([]list.Item{}, delegate, width, height-3)
	l.Title = "Projects"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	si := textinput.New()
	si.Placeholder = "search projects..."
	si.Prompt = "/ "
	si.Width = width - 4

	h := help.New()
	h.Width = width

	return Model{
		ctx:         ctx,
		list:        l,
		src:         src,
		keys:        k,
		help:        h,
		searchInput: si,
		now:         time.Now,
		width:       width,
		height:      height,
	}
}

// Init returns a command that loads the initial set of projects.
func (m Model) Init() tea.Cmd {
	return m.LoadProjects()
}

// Update handles messages for the browser.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ProjectsLoadedMsg:
		items := make([]list.Item, len(msg.Projects))
		for i, p := range msg.Projects {
			items[i] = ProjectItem{Project: p}
		}
		cmd := m.list.SetItems(items)
		return m, cmd

	case ProjectUpdatedMsg:
		if msg.Err != nil {
			m.flash = theme.ErrorStyle.Render(msg.Err.Error())
			return m, nil
		}
		m.flash = theme.SuccessStyle.Render(fmt.Sprintf("%s is now %s", msg.Project.Name, msg.Project.Status.Label()))
		if m.detail != nil && m.detail.ID == msg.Project.ID {
			p := msg.Project
			m.detail = &p
		}
		return m, m.LoadProjects()

	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if m.searchMode {
			return m.handleSearchKeys(msg)
		}
		return m.handleNormalKeys(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		m.filter.Query = strings.TrimSpace(m.searchInput.Value())
		return m, m.LoadProjects()

	case "esc":
		m.searchMode = false
		m.searchInput.Reset()
		m.filter.Query = ""
		return m, m.LoadProjects()
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Back):
		m.detail = nil
		m.flash = ""
		return m, nil

	case key.Matches(msg, m.keys.Select):
		if p, ok := m.selected(); ok {
			m.detail = &p
		}
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.detail = nil
		m.searchMode = true
		m.searchInput.Reset()
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.CycleStatus):
		m.statusIndex = (m.statusIndex + 1) % len(statusFilters)
		m.filter.Status = statusFilters[m.statusIndex]
		return m, m.LoadProjects()

	case key.Matches(msg, m.keys.Refresh):
		return m, m.LoadProjects()

	case key.Matches(msg, m.keys.Complete):
		return m, m.setStatus(model.StatusCompleted)

	case key.Matches(msg, m.keys.Hold):
		return m, m.setStatus(model.StatusOnHold)
	}

	if m.detail != nil {
		return m, nil
	}

	// Navigation keys (up/down/pgup/pgdn) go to the list.
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// selected returns the project in the detail pane, or the focused row.
func (m Model) selected() (model.Project, bool) {
	if m.detail != nil {
		return *m.detail, true
	}
	item, ok := m.list.SelectedItem().(ProjectItem)
	if !ok {
		return model.Project{}, false
	}
	return item.Project, true
}

func (m Model) setStatus(status model.ProjectStatus) tea.Cmd {
	p, ok := m.selected()
	if !ok || p.Status == status {
		return nil
	}
	ctx, src := m.ctx, m.src
	return func() tea.Msg {
		updated, err := src.UpdateProject(ctx, p.ID, dashboard.ProjectPatch{Status: &status})
		return ProjectUpdatedMsg{Project: updated, Err: err}
	}
}

// LoadProjects returns a tea.Cmd that queries the store with the current
// filter.
func (m Model) LoadProjects() tea.Cmd {
	filter := m.filter
	src := m.src
	return func() tea.Msg {
		return ProjectsLoadedMsg{Projects: src.Filter(filter)}
	}
}

// View renders the browser.
func (m Model) View() string {
	var body string
	switch {
	case m.detail != nil:
		body = m.renderDetail(*m.detail)
	case m.searchMode:
		searchBar := lipgloss.NewStyle().
			Foreground(theme.ColorWhite).
			Padding(0, 1).
			Render(m.searchInput.View())
		body = lipgloss.JoinVertical(lipgloss.Left, searchBar, m.list.View())
	case len(m.list.Items()) == 0:
		body = m.renderEmptyState()
	default:
		body = m.list.View()
	}

	footer := []string{m.renderFilterLine()}
	if m.flash != "" {
		footer = append(footer, m.flash)
	}
	footer = append(footer, m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, body, strings.Join(footer, "\n"))
}

func (m Model) renderFilterLine() string {
	status := "all"
	if m.filter.Status != "" {
		status = m.filter.Status.Label()
	}
	line := "status: " + status
	if m.filter.Query != "" {
		line += fmt.Sprintf("  search: %q", m.filter.Query)
	}
	return theme.HelpStyle.Render(line)
}

func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(max(m.height-4, 1)).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if m.filter.Query != "" || m.filter.Status != "" {
		return style.Render("No matching projects.\nTry adjusting your filters.")
	}
	return style.Render("No projects yet.\n\nRun `dashboard add` to create one.")
}

func (m Model) renderDetail(p model.Project) string {
	row := func(label, value string) string {
		return theme.LabelStyle.Render(label) + value
	}

	lines := []string{
		theme.HeaderStyle.Render(p.Name),
		"",
		row("Status", theme.StatusStyle(p.Status).Render(p.Status.Label())),
		row("Progress", theme.ProgressBar(p.Progress, 20)+" "+format.Percent(p.Progress)),
		row("Owner", p.Owner),
		row("Tags", strings.Join(p.Tags, ", ")),
		row("Created", format.Date(p.CreatedAt)),
		row("Updated", format.RelativeTime(p.UpdatedAt, m.now())),
		"",
		p.Description,
		"",
		theme.LabelStyle.Render(fmt.Sprintf("Tasks %d/%d", p.CompletedTasks(), len(p.Tasks))),
	}
	for _, t := range p.Tasks {
		mark := "[ ]"
		if t.Completed {
			mark = "[x]"
		}
		lines = append(lines, "  "+mark+" "+t.Name)
	}

	return theme.PanelStyle.
		Width(max(m.width-4, 20)).
		Render(strings.Join(lines, "\n"))
}

// SetSize updates the browser dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-3)
	m.searchInput.Width = width - 4
	m.help.Width = width
}
