package projectlist

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/project-dashboard/internal/dashboard"
	"github.com/nhle/project-dashboard/internal/keys"
	"github.com/nhle/project-dashboard/internal/model"
)

type fakeSource struct {
	projects []model.Project
	filters  []dashboard.ProjectFilter
	updates  map[string]model.ProjectStatus
	err      error
}

func (f *fakeSource) Filter(fl dashboard.ProjectFilter) []model.Project {
	f.filters = append(f.filters, fl)
	var out []model.Project
	for _, p := range f.projects {
		if fl.Status == "" || p.Status == fl.Status {
			out = append(out, p)
		}
	}
	return out
}

func (f *fakeSource) UpdateProject(_ context.Context, id string, patch dashboard.ProjectPatch) (model.Project, error) {
	if f.err != nil {
		return model.Project{}, f.err
	}
	if f.updates == nil {
		f.updates = map[string]model.ProjectStatus{}
	}
	for i := range f.projects {
		if f.projects[i].ID == id {
			f.projects[i].Status = *patch.Status
			f.updates[id] = *patch.Status
			return f.projects[i], nil
		}
	}
	return model.Project{}, dashboard.ErrProjectNotFound
}

func newSource() *fakeSource {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return &fakeSource{projects: []model.Project{
		{ID: "p1", Name: "Quantum Analytics", Status: model.StatusInProgress, Progress: 40, UpdatedAt: now,
			Tags: []string{"AI/ML", "Backend", "Cloud"},
			Tasks: []model.Task{{ID: "t1", Name: "Design Review 1", Completed: true}, {ID: "t2", Name: "Testing 1"}}},
		{ID: "p2", Name: "Neural Network", Status: model.StatusPlanned, UpdatedAt: now},
		{ID: "p3", Name: "Cloud Migration", Status: model.StatusCompleted, Progress: 100, UpdatedAt: now},
	}}
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// step feeds msg to m and runs the resulting command once.
func step(t *testing.T, m tea.Model, msg tea.Msg) (Model, tea.Msg) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	if cmd == nil {
		return out, nil
	}
	return out, cmd()
}

// send feeds msg to m without running the resulting command.
func send(t *testing.T, m tea.Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func loaded(t *testing.T, src *fakeSource) Model {
	t.Helper()
	m := New(context.Background(), src, keys.DefaultKeyMap(), 100, 30)
	msg := m.Init()()
	m, _ = step(t, m, msg)
	return m
}

func TestInitLoadsEveryProject(t *testing.T) {
	src := newSource()
	m := loaded(t, src)

	assert.Len(t, m.list.Items(), 3)
	require.Len(t, src.filters, 1)
	assert.Equal(t, dashboard.ProjectFilter{}, src.filters[0])
	assert.Contains(t, m.View(), "Quantum Analytics")
}

func TestCycleStatusFilter(t *testing.T) {
	src := newSource()
	m := loaded(t, src)

	m, msg := step(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.IsType(t, ProjectsLoadedMsg{}, msg)
	assert.Equal(t, model.StatusPlanned, src.filters[len(src.filters)-1].Status)

	m, _ = step(t, m, msg)
	require.Len(t, m.list.Items(), 1)
	assert.Equal(t, "p2", m.list.Items()[0].(ProjectItem).Project.ID)
	assert.Contains(t, m.View(), "status: Planned")

	for range len(statusFilters) - 1 {
		m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyTab})
	}
	assert.Equal(t, model.ProjectStatus(""), m.filter.Status)
}

func TestSearchMode(t *testing.T) {
	src := newSource()
	m := loaded(t, src)

	m = send(t, m, keyRune('/'))
	require.True(t, m.searchMode)

	for _, r := range "cloud" {
		m = send(t, m, keyRune(r))
	}
	m, msg := step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.searchMode)
	require.IsType(t, ProjectsLoadedMsg{}, msg)
	assert.Equal(t, "cloud", src.filters[len(src.filters)-1].Query)

	m = send(t, m, keyRune('/'))
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Empty(t, m.filter.Query)
}

func TestSelectOpensDetail(t *testing.T) {
	m := loaded(t, newSource())

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, m.detail)
	assert.Equal(t, "p1", m.detail.ID)

	view := m.View()
	assert.Contains(t, view, "Tasks 1/2")
	assert.Contains(t, view, "[x] Design Review 1")
	assert.Contains(t, view, "[ ] Testing 1")

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, m.detail)
}

func TestCompleteSelectedProject(t *testing.T) {
	src := newSource()
	m := loaded(t, src)

	m, msg := step(t, m, keyRune('c'))
	require.IsType(t, ProjectUpdatedMsg{}, msg)
	assert.Equal(t, model.StatusCompleted, src.updates["p1"])

	m, reload := step(t, m, msg)
	assert.IsType(t, ProjectsLoadedMsg{}, reload)
	assert.Contains(t, m.View(), "Quantum Analytics is now Completed")
}

func TestStatusChangeNoopWhenUnchanged(t *testing.T) {
	src := newSource()
	src.projects = src.projects[2:]
	m := loaded(t, src)

	_, msg := step(t, m, keyRune('c'))
	assert.Nil(t, msg)
	assert.Empty(t, src.updates)
}

func TestStatusChangeErrorShowsFlash(t *testing.T) {
	src := newSource()
	src.err = errors.New("store closed")
	m := loaded(t, src)

	m, msg := step(t, m, keyRune('h'))
	m, _ = step(t, m, msg)
	assert.Contains(t, m.View(), "store closed")
}

func TestEmptyState(t *testing.T) {
	m := loaded(t, &fakeSource{})
	assert.Contains(t, m.View(), "No projects yet.")
}

func TestQuit(t *testing.T) {
	m := loaded(t, newSource())
	_, cmd := m.Update(keyRune('q'))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestRenderRowTags(t *testing.T) {
	d := ItemDelegate{}
	row := d.renderRow(newSource().projects[0], false)
	assert.Contains(t, row, "Quantum Analytics")
	assert.Contains(t, row, "#AI/ML,Backend,…")
	assert.Contains(t, row, "40%")
}
