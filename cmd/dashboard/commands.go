package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/project-dashboard/internal/app"
	"github.com/nhle/project-dashboard/internal/dashboard"
	"github.com/nhle/project-dashboard/internal/keys"
	"github.com/nhle/project-dashboard/internal/model"
	"github.com/nhle/project-dashboard/internal/ui/form"
	"github.com/nhle/project-dashboard/internal/ui/projectlist"
	"github.com/nhle/project-dashboard/internal/validate"
)

var (
	errNotLoggedIn  = errors.New("not logged in; run `dashboard login` first")
	errInvalidLogin = errors.New("invalid email or password")
	errEmailExists  = errors.New("email already exists")
)

// recentActivityLimit is how many notifications the overview shows.
const recentActivityLimit = 8

type cli struct {
	app         *app.App
	out         io.Writer
	now         func() time.Time
	interactive bool
}

type command struct {
	name    string
	summary string
	auth    bool
	run     func(c *cli, ctx context.Context, args []string) error
}

var commands []command

func init() {
	commands = []command{
		{"login", "sign in", false, (*cli).login},
		{"signup", "create an account", false, (*cli).signup},
		{"logout", "sign out", false, (*cli).logout},
		{"whoami", "show the signed-in profile", true, (*cli).whoami},
		{"profile", "edit the signed-in profile", true, (*cli).profile},
		{"overview", "analytics and recent activity", true, (*cli).overview},
		{"projects", "list projects [-search -status -tag]", true, (*cli).projects},
		{"show", "show a project <id>", true, (*cli).show},
		{"search", "quick search <query>", true, (*cli).search},
		{"tags", "list tags in use", true, (*cli).tags},
		{"browse", "browse projects interactively", true, (*cli).browse},
		{"add", "create a project", true, (*cli).add},
		{"update", "update a project <id>", true, (*cli).update},
		{"delete", "delete a project <id>", true, (*cli).deleteProject},
		{"notifications", "list notifications", true, (*cli).notifications},
		{"read", "mark notifications read <id|all>", true, (*cli).read},
		{"analytics", "show or override analytics", true, (*cli).analytics},
		{"dark-mode", "toggle dark mode [on|off]", false, (*cli).darkMode},
	}
}

func (c *cli) dispatch(ctx context.Context, name string, args []string) error {
	for _, cmd := range commands {
		if cmd.name != name {
			continue
		}
		if cmd.auth && !c.app.Session.Authenticated() {
			return errNotLoggedIn
		}
		return cmd.run(c, ctx, args)
	}
	return fmt.Errorf("unknown command %q", name)
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	return fs
}

// setFlags returns the names of the flags given on the command line.
func setFlags(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

func (c *cli) login(ctx context.Context, args []string) error {
	fs := newFlagSet("login")
	v := form.LoginValues{}
	fs.StringVar(&v.Email, "email", "", "account email")
	fs.StringVar(&v.Password, "password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if (v.Email == "" || v.Password == "") && c.interactive {
		if err := form.Login(&v).RunWithContext(ctx); err != nil {
			return err
		}
	}
	if err := validate.Login(v.Email, v.Password); err != nil {
		return err
	}

	if !c.app.Login(ctx, strings.TrimSpace(v.Email), v.Password) {
		return errInvalidLogin
	}
	user, _ := c.app.Session.User()
	printSuccess(c.out, "Welcome back, "+user.Name)
	return nil
}

func (c *cli) signup(ctx context.Context, args []string) error {
	fs := newFlagSet("signup")
	v := form.SignupValues{}
	fs.StringVar(&v.Name, "name", "", "full name")
	fs.StringVar(&v.Email, "email", "", "gmail address")
	fs.StringVar(&v.Password, "password", "", "password")
	fs.StringVar(&v.ContactNumber, "phone", "", "contact number")
	fs.StringVar(&v.Address, "address", "", "address")
	if err := fs.Parse(args); err != nil {
		return err
	}
	v.ConfirmPassword = v.Password

	if len(setFlags(fs)) == 0 && c.interactive {
		v.ConfirmPassword = ""
		if err := form.Signup(&v).RunWithContext(ctx); err != nil {
			return err
		}
	}
	if err := v.Validate(); err != nil {
		return err
	}

	if !c.app.Signup(ctx, v.Input()) {
		return errEmailExists
	}
	printSuccess(c.out, "Account created. Welcome, "+strings.TrimSpace(v.Name))
	return nil
}

func (c *cli) logout(ctx context.Context, _ []string) error {
	c.app.Logout(ctx)
	printSuccess(c.out, "Logged out")
	return nil
}

func (c *cli) whoami(_ context.Context, _ []string) error {
	user, _ := c.app.Session.User()
	renderProfile(c.out, user)
	return nil
}

func (c *cli) profile(ctx context.Context, args []string) error {
	user, _ := c.app.Session.User()
	v := form.ProfileValuesFrom(user)

	fs := newFlagSet("profile")
	fs.StringVar(&v.Name, "name", v.Name, "full name")
	fs.StringVar(&v.ContactNumber, "phone", v.ContactNumber, "contact number")
	fs.StringVar(&v.Address, "address", v.Address, "address")
	fs.StringVar(&v.Bio, "bio", v.Bio, "short bio")
	fs.StringVar(&v.GitHub, "github", v.GitHub, "GitHub URL")
	fs.StringVar(&v.LinkedIn, "linkedin", v.LinkedIn, "LinkedIn URL")
	fs.StringVar(&v.Twitter, "twitter", v.Twitter, "Twitter URL")
	fs.StringVar(&v.Facebook, "facebook", v.Facebook, "Facebook URL")
	fs.StringVar(&v.Website, "website", v.Website, "website URL")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if len(setFlags(fs)) == 0 {
		if !c.interactive {
			return errors.New("nothing to update")
		}
		if err := form.Profile(&v).RunWithContext(ctx); err != nil {
			return err
		}
	}
	if err := validate.Name(strings.TrimSpace(v.Name)); err != nil {
		return err
	}
	if strings.TrimSpace(v.ContactNumber) != "" {
		if err := validate.Phone(v.ContactNumber); err != nil {
			return err
		}
	}

	c.app.UpdateProfile(ctx, v.Patch())
	user, _ = c.app.Session.User()
	renderProfile(c.out, user)
	return nil
}

func (c *cli) overview(_ context.Context, _ []string) error {
	a, err := c.app.Data.Analytics()
	if err != nil {
		return err
	}
	renderAnalytics(c.out, a)
	renderActivity(c.out, c.app.Data.RecentActivity(recentActivityLimit), c.app.Data.UnreadCount(), c.now())
	return nil
}

func (c *cli) projects(_ context.Context, args []string) error {
	fs := newFlagSet("projects")
	var f dashboard.ProjectFilter
	var status string
	fs.StringVar(&f.Query, "search", "", "match name, description or task names")
	fs.StringVar(&status, "status", "", "planned, in-progress, on-hold or completed")
	fs.StringVar(&f.Tag, "tag", "", "exact tag")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if status != "" && status != "all" {
		f.Status = model.ProjectStatus(status)
		if !f.Status.Valid() {
			return fmt.Errorf("%w: %q", dashboard.ErrInvalidStatus, status)
		}
	}

	list := c.app.Data.Filter(f)
	renderProjects(c.out, list)
	fmt.Fprintf(c.out, "%d of %d projects\n", len(list), len(c.app.Data.Projects()))
	return nil
}

func (c *cli) show(_ context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: dashboard show <project-id>")
	}
	p, err := c.app.Data.Project(args[0])
	if err != nil {
		return err
	}
	renderProject(c.out, p, c.now())
	return nil
}

func (c *cli) search(_ context.Context, args []string) error {
	results := c.app.Data.Search(strings.Join(args, " "))
	if len(results) == 0 {
		fmt.Fprintln(c.out, "No projects found")
		return nil
	}
	renderProjects(c.out, results)
	return nil
}

func (c *cli) tags(_ context.Context, _ []string) error {
	for _, t := range c.app.Data.Tags() {
		fmt.Fprintln(c.out, t)
	}
	return nil
}

func (c *cli) browse(ctx context.Context, _ []string) error {
	if !c.interactive {
		return errors.New("browse needs an interactive terminal")
	}
	m := projectlist.New(ctx, c.app.Data, keys.DefaultKeyMap(), 80, 24)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

func (c *cli) add(ctx context.Context, args []string) error {
	fs := newFlagSet("add")
	v := form.ProjectValues{}
	var status, tags string
	fs.StringVar(&v.Name, "name", "", "project name")
	fs.StringVar(&status, "status", string(model.StatusPlanned), "project status")
	fs.StringVar(&v.Description, "desc", "", "description")
	fs.StringVar(&v.Progress, "progress", "", "progress 0-100")
	fs.StringVar(&tags, "tags", "", "comma separated tags")
	var tasks string
	fs.StringVar(&tasks, "tasks", "", "comma separated task names")
	if err := fs.Parse(args); err != nil {
		return err
	}
	v.Status = model.ProjectStatus(status)
	v.ExtraTags = tags
	v.Tasks = strings.Join(form.SplitList(tasks, ","), "\n")

	if v.Name == "" && c.interactive {
		if err := form.Project(&v, c.app.Data.Tags()).RunWithContext(ctx); err != nil {
			return err
		}
	}
	if err := validate.Required(v.Name, "Name"); err != nil {
		return err
	}
	if err := form.ValidateProgress(v.Progress); err != nil {
		return err
	}

	p, err := c.app.Data.AddProject(ctx, v.Input(c.now()))
	if err != nil {
		return err
	}
	printSuccess(c.out, fmt.Sprintf("Created %s (%s)", p.Name, p.ID))
	return nil
}

func (c *cli) update(ctx context.Context, args []string) error {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return errors.New("usage: dashboard update <project-id> [flags]")
	}
	id := args[0]

	fs := newFlagSet("update")
	name := fs.String("name", "", "project name")
	status := fs.String("status", "", "project status")
	desc := fs.String("desc", "", "description")
	progress := fs.Int("progress", 0, "progress 0-100")
	tags := fs.String("tags", "", "comma separated tags, replacing the current ones")
	owner := fs.String("owner", "", "owner display name")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	set := setFlags(fs)
	if len(set) == 0 {
		return errors.New("nothing to update")
	}

	var patch dashboard.ProjectPatch
	if set["name"] {
		patch.Name = name
	}
	if set["status"] {
		s := model.ProjectStatus(*status)
		patch.Status = &s
	}
	if set["desc"] {
		patch.Description = desc
	}
	if set["progress"] {
		patch.Progress = progress
	}
	if set["tags"] {
		list := form.SplitList(*tags, ",")
		patch.Tags = &list
	}
	if set["owner"] {
		patch.Owner = owner
	}

	p, err := c.app.Data.UpdateProject(ctx, id, patch)
	if err != nil {
		return err
	}
	renderProject(c.out, p, c.now())
	return nil
}

func (c *cli) deleteProject(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: dashboard delete <project-id>")
	}
	if err := c.app.Data.DeleteProject(ctx, args[0]); err != nil {
		return err
	}
	printSuccess(c.out, "Deleted "+args[0])
	return nil
}

func (c *cli) notifications(_ context.Context, _ []string) error {
	renderNotifications(c.out, c.app.Data.Notifications(), c.now())
	return nil
}

func (c *cli) read(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: dashboard read <notification-id|all>")
	}
	if args[0] == "all" {
		return c.app.Data.MarkAllNotificationsAsRead(ctx)
	}
	return c.app.Data.MarkNotificationAsRead(ctx, args[0])
}

func (c *cli) analytics(ctx context.Context, args []string) error {
	fs := newFlagSet("analytics")
	total := fs.Int("total", 0, "total projects")
	completed := fs.Int("completed", 0, "completed projects")
	onHold := fs.Int("on-hold", 0, "on-hold projects")
	inProgress := fs.Int("in-progress", 0, "in-progress projects")
	earnings := fs.Int("earnings", 0, "earnings in dollars")
	tasks := fs.Int("tasks", 0, "total tasks")
	if err := fs.Parse(args); err != nil {
		return err
	}

	set := setFlags(fs)
	if len(set) > 0 {
		var patch dashboard.AnalyticsPatch
		pick := func(name string, v *int) *int {
			if set[name] {
				return v
			}
			return nil
		}
		patch.TotalProjects = pick("total", total)
		patch.CompletedProjects = pick("completed", completed)
		patch.OnHoldProjects = pick("on-hold", onHold)
		patch.InProgressProjects = pick("in-progress", inProgress)
		patch.Earnings = pick("earnings", earnings)
		patch.TotalTasks = pick("tasks", tasks)
		if err := c.app.Data.UpdateAnalytics(ctx, patch); err != nil {
			return err
		}
	}

	a, err := c.app.Data.Analytics()
	if err != nil {
		return err
	}
	renderAnalytics(c.out, a)
	return nil
}

func (c *cli) darkMode(ctx context.Context, args []string) error {
	var on bool
	switch {
	case len(args) == 0:
		on = c.app.Prefs.ToggleDarkMode(ctx)
	case args[0] == "on":
		on = true
		c.app.Prefs.SetDarkMode(ctx, on)
	case args[0] == "off":
		c.app.Prefs.SetDarkMode(ctx, on)
	default:
		return errors.New("usage: dashboard dark-mode [on|off]")
	}

	state := "off"
	if on {
		state = "on"
	}
	fmt.Fprintln(c.out, "Dark mode "+state)
	return nil
}
