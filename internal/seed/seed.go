// Package seed fabricates first-run data for a user who has nothing
// stored yet. All randomness comes from an injectable source so that a
// seeded Generator is reproducible.
package seed

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strconv"
	"time"

	"github.com/nhle/project-dashboard/internal/model"
)

const (
	day = 24 * time.Hour

	ProjectCount      = 50
	NotificationCount = 10

	minTasks = 3
	maxTasks = 10
	maxTags  = 4

	taskCompletedRate = 0.6
	notificationRead  = 0.7

	minEarnings   = 50_000
	earningsRange = 100_000

	projectAge      = 180 * day
	taskAge         = 30 * day
	notificationAge = 7 * day
)

// Generator produces projects, analytics and notifications.
type Generator struct {
	rng *rand.Rand
	now func() time.Time
}

// New returns a Generator with a randomly seeded source and the wall clock.
func New() *Generator {
	return &Generator{
		rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now: time.Now,
	}
}

// NewSeeded returns a deterministic Generator. Every timestamp is derived
// from now.
func NewSeeded(seed uint64, now time.Time) *Generator {
	return &Generator{
		rng: rand.New(rand.NewPCG(seed, seed)),
		now: func() time.Time { return now },
	}
}

// Projects generates ProjectCount projects for userID.
func (g *Generator) Projects(userID, owner string) []model.Project {
	now := g.clock()
	projects := make([]model.Project, 0, ProjectCount)

	for i := range ProjectCount {
		id := fmt.Sprintf("%s-project-%d", userID, i)
		status := model.ProjectStatuses[g.rng.IntN(len(model.ProjectStatuses))]

		// Non-terminal statuses get 10..89 so they never look finished or
		// untouched.
		progress := 10 + g.rng.IntN(80)

		createdAt := g.before(now, projectAge)
		p := model.Project{
			ID:          id,
			UserID:      userID,
			Name:        projectName(i),
			Status:      status,
			Description: Descriptions[g.rng.IntN(len(Descriptions))],
			Tags:        g.tags(),
			Tasks:       g.tasks(id, now),
			Progress:    progress,
			CreatedAt:   createdAt,
			UpdatedAt:   g.between(createdAt, now),
			Owner:       owner,
		}
		p.NormalizeProgress()
		projects = append(projects, p)
	}
	return projects
}

// Analytics derives counts from projects and picks random earnings.
func (g *Generator) Analytics(userID string, projects []model.Project) model.Analytics {
	return model.DeriveAnalytics(userID, projects, minEarnings+g.rng.IntN(earningsRange))
}

// Notifications generates NotificationCount notifications about random
// projects, newest first. No projects means no notifications.
func (g *Generator) Notifications(userID string, projects []model.Project) []model.Notification {
	if len(projects) == 0 {
		return []model.Notification{}
	}

	now := g.clock()
	out := make([]model.Notification, 0, NotificationCount)
	for i := range NotificationCount {
		p := projects[g.rng.IntN(len(projects))]
		typ := model.NotificationTypes[g.rng.IntN(len(model.NotificationTypes))]

		out = append(out, model.Notification{
			ID:        fmt.Sprintf("%s-notification-%d", userID, i),
			UserID:    userID,
			Type:      typ,
			Title:     fmt.Sprintf("Project %s", typ),
			Message:   fmt.Sprintf("%s has been %s", p.Name, typ),
			Timestamp: g.before(now, notificationAge),
			Read:      g.rng.Float64() < notificationRead,
			ProjectID: p.ID,
		})
	}

	slices.SortStableFunc(out, func(a, b model.Notification) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	return out
}

func (g *Generator) tasks(projectID string, now time.Time) []model.Task {
	n := minTasks + g.rng.IntN(maxTasks-minTasks+1)
	tasks := make([]model.Task, 0, n)
	for i := range n {
		tasks = append(tasks, model.Task{
			ID:        projectID + "-task-" + strconv.Itoa(i),
			Name:      TaskNames[i%len(TaskNames)] + " " + strconv.Itoa(i/len(TaskNames)+1),
			Completed: g.rng.Float64() < taskCompletedRate,
			CreatedAt: g.before(now, taskAge),
		})
	}
	return tasks
}

// tags picks 1..maxTags distinct tags.
func (g *Generator) tags() []string {
	n := 1 + g.rng.IntN(maxTags)
	perm := g.rng.Perm(len(Tags))[:n]
	tags := make([]string, 0, n)
	for _, idx := range perm {
		tags = append(tags, Tags[idx])
	}
	return tags
}

// before returns a random instant in (now-span, now].
func (g *Generator) before(now time.Time, span time.Duration) time.Time {
	return now.Add(-time.Duration(g.rng.Int64N(int64(span)))).Truncate(time.Millisecond)
}

// between returns a random instant in [from, to].
func (g *Generator) between(from, to time.Time) time.Time {
	span := to.Sub(from)
	if span <= 0 {
		return from
	}
	t := from.Add(time.Duration(g.rng.Int64N(int64(span) + 1))).Truncate(time.Millisecond)
	if t.Before(from) {
		return from
	}
	return t
}

func (g *Generator) clock() time.Time {
	return g.now().UTC().Truncate(time.Millisecond)
}

func projectName(i int) string {
	name := ProjectNames[i%len(ProjectNames)]
	if round := i / len(ProjectNames); round > 0 {
		name += " " + strconv.Itoa(round+1)
	}
	return name
}
