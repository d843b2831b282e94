package model

// Analytics holds per-user aggregate figures. All counts are derivable from
// the project collection; Earnings is stored independently.
type Analytics struct {
	UserID             string `json:"userId"`
	TotalProjects      int    `json:"totalProjects"`
	CompletedProjects  int    `json:"completedProjects"`
	OnHoldProjects     int    `json:"onHoldProjects"`
	InProgressProjects int    `json:"inProgressProjects"`
	Earnings           int    `json:"earnings"`
	TotalTasks         int    `json:"totalTasks"`
}

// DeriveAnalytics counts projects by status and sums their tasks.
func DeriveAnalytics(userID string, projects []Project, earnings int) Analytics {
	a := Analytics{
		UserID:        userID,
		TotalProjects: len(projects),
		Earnings:      earnings,
	}
	for _, p := range projects {
		switch p.Status {
		case StatusCompleted:
			a.CompletedProjects++
		case StatusOnHold:
			a.OnHoldProjects++
		case StatusInProgress:
			a.InProgressProjects++
		}
		a.TotalTasks += len(p.Tasks)
	}
	return a
}

// PlannedProjects is the remainder of TotalProjects not covered by the other
// status counts. Manual overrides can make the subtraction negative, so the
// result is floored at zero.
func (a Analytics) PlannedProjects() int {
	return max(a.TotalProjects-a.CompletedProjects-a.OnHoldProjects-a.InProgressProjects, 0)
}
