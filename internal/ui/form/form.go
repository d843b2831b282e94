// Package form builds the interactive huh forms used by the CLI. Each form
// binds to a values struct owned by the caller; after the form completes the
// struct holds the answers.
package form

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/nhle/project-dashboard/internal/dashboard"
	"github.com/nhle/project-dashboard/internal/model"
	"github.com/nhle/project-dashboard/internal/session"
	"github.com/nhle/project-dashboard/internal/validate"
)

const formWidth = 60

// LoginValues holds login answers.
type LoginValues struct {
	Email    string
	Password string
}

// Login asks for credentials.
func Login(v *LoginValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Placeholder("you@gmail.com").
				Value(&v.Email).
				Validate(validate.Email),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&v.Password).
				Validate(validate.Password),
		),
	).WithWidth(formWidth)
}

// SignupValues holds signup answers.
type SignupValues struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	ContactNumber   string
	Address         string
}

// Input converts the answers for the session manager.
func (v SignupValues) Input() session.SignupInput {
	return session.SignupInput{
		Name:          strings.TrimSpace(v.Name),
		Email:         strings.TrimSpace(v.Email),
		Password:      v.Password,
		ContactNumber: strings.TrimSpace(v.ContactNumber),
		Address:       strings.TrimSpace(v.Address),
	}
}

// Validate checks every field at once.
func (v SignupValues) Validate() error {
	return validate.Signup(validate.SignupInput{
		Name:            v.Name,
		Email:           v.Email,
		Password:        v.Password,
		ConfirmPassword: v.ConfirmPassword,
		ContactNumber:   v.ContactNumber,
		Address:         v.Address,
	})
}

// Signup asks for a new account's details.
func Signup(v *SignupValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Full name").Value(&v.Name).Validate(validate.Name),
			huh.NewInput().Title("Email").Placeholder("you@gmail.com").Value(&v.Email).Validate(validate.Email),
			huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&v.Password).Validate(validate.Password),
			huh.NewInput().Title("Confirm password").EchoMode(huh.EchoModePassword).Value(&v.ConfirmPassword).
				Validate(func(s string) error {
					if s != v.Password {
						return errors.New("Passwords do not match")
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewInput().Title("Contact number").Placeholder("+923001234567").Value(&v.ContactNumber).Validate(validate.Phone),
			huh.NewInput().Title("Address").Value(&v.Address).Validate(required("Address")),
		),
	).WithWidth(formWidth)
}

// ProjectValues holds project answers. Progress is kept as text so the
// input field can bind to it.
type ProjectValues struct {
	Name        string
	Description string
	Status      model.ProjectStatus
	Progress    string
	Tags        []string
	ExtraTags   string
	Tasks       string
}

// Input converts the answers into a new project. Tasks are read one per
// line, extra tags are comma separated.
func (v ProjectValues) Input(now time.Time) dashboard.ProjectInput {
	progress, _ := strconv.Atoi(strings.TrimSpace(v.Progress))
	return dashboard.ProjectInput{
		Name:        strings.TrimSpace(v.Name),
		Status:      v.Status,
		Description: strings.TrimSpace(v.Description),
		Tags:        MergeTags(v.Tags, SplitList(v.ExtraTags, ",")),
		Tasks:       model.NewTasks(SplitList(v.Tasks, "\n"), now),
		Progress:    progress,
	}
}

// Project asks for a new project's details. knownTags are offered as a
// multi-select.
func Project(v *ProjectValues, knownTags []string) *huh.Form {
	if v.Status == "" {
		v.Status = model.StatusPlanned
	}

	statusOpts := make([]huh.Option[model.ProjectStatus], 0, len(model.ProjectStatuses))
	for _, s := range model.ProjectStatuses {
		statusOpts = append(statusOpts, huh.NewOption(s.Label(), s))
	}

	fields := []huh.Field{
		huh.NewInput().Title("Name").Value(&v.Name).Validate(required("Name")),
		huh.NewText().Title("Description").Placeholder("Optional details...").Value(&v.Description),
		huh.NewSelect[model.ProjectStatus]().Title("Status").Options(statusOpts...).Value(&v.Status),
		huh.NewInput().Title("Progress").Placeholder("0-100").Value(&v.Progress).Validate(ValidateProgress),
	}
	if len(knownTags) > 0 {
		fields = append(fields, huh.NewMultiSelect[string]().
			Title("Tags").
			Options(huh.NewOptions(knownTags...)...).
			Value(&v.Tags))
	}
	fields = append(fields,
		huh.NewInput().Title("New tags").Placeholder("comma separated (optional)").Value(&v.ExtraTags),
		huh.NewText().Title("Tasks").Placeholder("one per line (optional)").Value(&v.Tasks),
	)

	return huh.NewForm(huh.NewGroup(fields...)).WithWidth(formWidth)
}

// ProfileValues holds profile answers. The form is submitted whole, so an
// empty answer clears the field.
type ProfileValues struct {
	Name          string
	ContactNumber string
	Address       string
	Bio           string
	GitHub        string
	LinkedIn      string
	Twitter       string
	Facebook      string
	Website       string
}

// ProfileValuesFrom prefills the form with the current profile.
func ProfileValuesFrom(u model.User) ProfileValues {
	return ProfileValues{
		Name:          u.Name,
		ContactNumber: u.ContactNumber,
		Address:       u.Address,
		Bio:           u.Bio,
		GitHub:        u.SocialLinks[model.SocialGitHub],
		LinkedIn:      u.SocialLinks[model.SocialLinkedIn],
		Twitter:       u.SocialLinks[model.SocialTwitter],
		Facebook:      u.SocialLinks[model.SocialFacebook],
		Website:       u.SocialLinks[model.SocialWebsite],
	}
}

// Patch converts the answers into a profile patch that sets every field;
// blank social links are removed.
func (v ProfileValues) Patch() session.ProfilePatch {
	trimmed := func(s string) *string {
		s = strings.TrimSpace(s)
		return &s
	}
	return session.ProfilePatch{
		Name:          trimmed(v.Name),
		ContactNumber: trimmed(v.ContactNumber),
		Address:       trimmed(v.Address),
		Bio:           trimmed(v.Bio),
		SocialLinks: map[string]string{
			model.SocialGitHub:   strings.TrimSpace(v.GitHub),
			model.SocialLinkedIn: strings.TrimSpace(v.LinkedIn),
			model.SocialTwitter:  strings.TrimSpace(v.Twitter),
			model.SocialFacebook: strings.TrimSpace(v.Facebook),
			model.SocialWebsite:  strings.TrimSpace(v.Website),
		},
	}
}

// Profile edits the signed-in user's profile.
func Profile(v *ProfileValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Full name").Value(&v.Name).Validate(validate.Name),
			huh.NewInput().Title("Contact number").Value(&v.ContactNumber).Validate(validate.Phone),
			huh.NewInput().Title("Address").Value(&v.Address),
			huh.NewText().Title("Bio").Value(&v.Bio),
		),
		huh.NewGroup(
			huh.NewInput().Title("GitHub").Value(&v.GitHub),
			huh.NewInput().Title("LinkedIn").Value(&v.LinkedIn),
			huh.NewInput().Title("Twitter").Value(&v.Twitter),
			huh.NewInput().Title("Facebook").Value(&v.Facebook),
			huh.NewInput().Title("Website").Value(&v.Website),
		).Title("Social links"),
	).WithWidth(formWidth)
}

// ValidateProgress accepts an empty string or a whole number in 0..100.
func ValidateProgress(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 100 {
		return errors.New("progress must be a number between 0 and 100")
	}
	return nil
}

// SplitList splits s on sep and drops blank entries.
func SplitList(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// MergeTags appends extra to tags, skipping duplicates and keeping the
// first-seen order.
func MergeTags(tags, extra []string) []string {
	seen := make(map[string]bool, len(tags)+len(extra))
	out := make([]string, 0, len(tags)+len(extra))
	for _, t := range append(append([]string{}, tags...), extra...) {
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

func required(field string) func(string) error {
	return func(s string) error {
		return validate.Required(s, field)
	}
}
