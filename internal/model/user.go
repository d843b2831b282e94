package model

// User is an account record. Password is only populated inside the signup
// flow; copies held by a session or written to storage are redacted.
type User struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Email          string            `json:"email"`
	Password       string            `json:"password,omitempty"`
	ContactNumber  string            `json:"contactNumber"`
	Address        string            `json:"address"`
	Bio            string            `json:"bio,omitempty"`
	ProfilePicture string            `json:"profilePicture,omitempty"`
	SocialLinks    map[string]string `json:"socialLinks,omitempty"`
}

// Well-known social link keys.
const (
	SocialFacebook = "facebook"
	SocialTwitter  = "twitter"
	SocialLinkedIn = "linkedin"
	SocialGitHub   = "github"
	SocialWebsite  = "website"
)

// Redacted returns a copy of u without the password.
func (u User) Redacted() User {
	out := u
	out.Password = ""
	if u.SocialLinks != nil {
		out.SocialLinks = make(map[string]string, len(u.SocialLinks))
		for k, v := range u.SocialLinks {
			out.SocialLinks[k] = v
		}
	}
	return out
}
