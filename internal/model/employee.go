package model

// JobTitle is the closed set of job titles an employee can hold.
type JobTitle string

const (
	JobTitleProjectEngineer JobTitle = "ProjectEngineer"
	JobTitleProjectLead     JobTitle = "ProjectLead"
	JobTitleProjectManager  JobTitle = "ProjectManager"
)

// DefaultJobTitle is applied when a request omits the job title.
const DefaultJobTitle = JobTitleProjectEngineer

// JobTitles lists every valid JobTitle in declaration order.
var JobTitles = []JobTitle{
	JobTitleProjectEngineer,
	JobTitleProjectLead,
	JobTitleProjectManager,
}

// Valid reports whether j is a member of the closed set.
func (j JobTitle) Valid() bool {
	for _, v := range JobTitles {
		if j == v {
			return true
		}
	}
	return false
}

// OrDefault returns j, or DefaultJobTitle when j is empty.
func (j JobTitle) OrDefault() JobTitle {
	if j == "" {
		return DefaultJobTitle
	}
	return j
}

// Mission is the closed set of missions an employee can be assigned to.
type Mission string

const (
	MissionSCV Mission = "SCV"
	MissionGUI Mission = "GUI"
	MissionD2T Mission = "D2T"
)

// DefaultMission is applied when a request omits the mission.
const DefaultMission = MissionSCV

// Missions lists every valid Mission in declaration order.
var Missions = []Mission{
	MissionSCV,
	MissionGUI,
	MissionD2T,
}

// Valid reports whether m is a member of the closed set.
func (m Mission) Valid() bool {
	for _, v := range Missions {
		if m == v {
			return true
		}
	}
	return false
}

// OrDefault returns m, or DefaultMission when m is empty.
func (m Mission) OrDefault() Mission {
	if m == "" {
		return DefaultMission
	}
	return m
}

// Employee is a stored employee record. The ID is assigned by the store on creation.
type Employee struct {
	ID          int
	Name        string
	MailID      string
	JobTitle    JobTitle
	Mission     Mission
	ProjectName string
	ReportsTo   string
}
