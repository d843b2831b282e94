package directory

import (
	"fmt"

	"github.com/nhle/project-dashboard/internal/model"
)

// DefaultPassword is the password shared by the built-in demo accounts.
const DefaultPassword = "password123"

// DefaultUsers returns the built-in demo accounts.
func DefaultUsers() []model.User {
	return []model.User{
		{
			ID:            "1",
			Name:          "Hafiz Muhammad Faizan",
			Email:         "thehmfpk@gmail.com",
			ContactNumber: "+923274877206",
			Address:       "Lahore, Pakistan",
			Bio:           "Full Stack Developer passionate about creating amazing user experiences",
			SocialLinks: map[string]string{
				model.SocialGitHub:   "https://github.com/faizanpk",
				model.SocialLinkedIn: "https://linkedin.com/in/faizanpk",
				model.SocialTwitter:  "https://twitter.com/faizanpk",
			},
		},
		{
			ID:            "2",
			Name:          "Huma",
			Email:         "huma@gmail.com",
			ContactNumber: "+923044594915",
			Address:       "Lahore, Pakistan",
			Bio:           "UI/UX Designer with a focus on modern design principles",
			SocialLinks: map[string]string{
				model.SocialLinkedIn: "https://linkedin.com/in/huma",
				model.SocialWebsite:  "https://huma.design",
			},
		},
		{
			ID:            "3",
			Name:          "Sofia",
			Email:         "sofia@gmail.com",
			ContactNumber: "+923000000001",
			Address:       "Lahore, Pakistan",
			Bio:           "Project Manager specializing in agile methodologies",
			SocialLinks: map[string]string{
				model.SocialLinkedIn: "https://linkedin.com/in/sofia",
				model.SocialFacebook: "https://facebook.com/sofia",
			},
		},
	}
}

// DefaultRecords hashes DefaultPassword for every built-in account.
func DefaultRecords(cost int) ([]Record, error) {
	users := DefaultUsers()
	records := make([]Record, 0, len(users))
	for _, u := range users {
		rec, err := NewRecord(u, DefaultPassword, cost)
		if err != nil {
			return nil, fmt.Errorf("hashing password for %s: %w", u.Email, err)
		}
		records = append(records, rec)
	}
	return records, nil
}
