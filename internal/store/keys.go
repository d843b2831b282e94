package store

// Application storage keys. Per-user collections are stored under
// "<base>_<userID>"; see UserKey.
const (
	KeyAuthToken     = "auth_token"
	KeyUserData      = "user_data"
	KeyDarkMode      = "dark_mode"
	KeyProjects      = "projects"
	KeyAnalytics     = "analytics"
	KeyNotifications = "notifications"
)

// ApplicationKeys is the fixed key set removed by KV.Clear.
var ApplicationKeys = []string{
	KeyAuthToken,
	KeyUserData,
	KeyDarkMode,
	KeyProjects,
	KeyAnalytics,
	KeyNotifications,
}

// SessionKeys are the keys that describe the signed-in user.
var SessionKeys = []string{
	KeyAuthToken,
	KeyUserData,
}

// UserKey scopes base to a single user.
func UserKey(base, userID string) string {
	return base + "_" + userID
}
