package models

import "time"

type ProjectStatus string

const (
	ProjectPlanned   ProjectStatus = "Planned"
	ProjectOngoing   ProjectStatus = "Ongoing"
	ProjectOnHold    ProjectStatus = "On Hold"
	ProjectCompleted ProjectStatus = "Completed"
)

type Project struct {
	ID          string        `json:"_id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Status      ProjectStatus `json:"status"`
	StartDate   time.Time     `json:"startDate"`
	EndDate     time.Time     `json:"endDate"`
	Budget      Budget        `json:"budget"`
	Milestones  []Milestone   `json:"milestones"`
	TeamMembers []TeamMember  `json:"teamMembers"`
	Files       []FileRef     `json:"files"`
}

type Budget struct {
	Allocated    float64 `json:"allocated"`
	Currency     string  `json:"currency"`
	CostIncurred float64 `json:"costIncurred"`
}

type Milestone struct {
	Name      string    `json:"name"`
	Date      time.Time `json:"date"`
	Completed bool      `json:"completed"`
}

type TeamMember struct {
	Name string `json:"name"`
}

type FileRef struct {
	FileName string `json:"fileName"`
	FileType string `json:"fileType"`
	URL      string `json:"url"`
}

// Progress returns the completed/total milestone ratio as a percentage,
// rounded down. Zero milestones means zero progress.
func (p Project) Progress() int {
	if len(p.Milestones) == 0 {
		return 0
	}
	done := 0
	for _, m := range p.Milestones {
		if m.Completed {
			done++
		}
	}
	return done * 100 / len(p.Milestones)
}
