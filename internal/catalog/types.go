package catalog

type Category string

const (
	CategoryTech      Category = "Tech"
	CategoryAcademics Category = "Academics"
	CategoryBusiness  Category = "Business"
	CategoryContent   Category = "Content"
	CategoryFitness   Category = "Fitness"
	CategoryPersonal  Category = "Personal"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryTech, CategoryAcademics, CategoryBusiness, CategoryContent, CategoryFitness, CategoryPersonal:
		return true
	default:
		return false
	}
}

// DefaultCategory is used when input is missing/invalid.
const DefaultCategory Category = CategoryPersonal

type Frequency string

const (
	FrequencyDaily     Frequency = "daily"
	FrequencyWeekly    Frequency = "weekly"
	FrequencyMilestone Frequency = "milestone"
)

func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMilestone:
		return true
	default:
		return false
	}
}

type Difficulty string

const (
	DifficultyBasic        Difficulty = "basic"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyElite        Difficulty = "elite"
)

func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyBasic, DifficultyIntermediate, DifficultyElite:
		return true
	default:
		return false
	}
}

// Role identifiers drive template filtering.
const (
	RoleStudent      = "student"
	RoleDeveloper    = "developer"
	RoleEntrepreneur = "entrepreneur"
	RoleCreator      = "creator"
	RoleAthlete      = "athlete"
	RoleMindful      = "mindful"
)

// Fitness sub-disciplines. Only meaningful together with RoleAthlete.
const (
	FitnessGym          = "gym"
	FitnessRunning      = "running"
	FitnessYoga         = "yoga"
	FitnessCalisthenics = "calisthenics"
	FitnessCycling      = "cycling"
)

type UnlockRequirement struct {
	Level  int
	Streak int
}

type SubtaskTemplate struct {
	ID                 string
	Title              string
	Description        string
	EstimatedPomodoros int
}

// Template is a quest blueprint. Instantiated habits reuse the template ID.
type Template struct {
	ID           string
	Title        string
	Description  string
	Category     Category
	XPReward     int
	Frequency    Frequency
	Difficulty   Difficulty
	Tier         int
	Roles        []string
	FitnessTypes []string
	Unlock       *UnlockRequirement
	Subtasks     []SubtaskTemplate
}

func (t Template) clone() Template {
	out := t
	out.Roles = append([]string(nil), t.Roles...)
	out.FitnessTypes = append([]string(nil), t.FitnessTypes...)
	out.Subtasks = append([]SubtaskTemplate(nil), t.Subtasks...)
	if t.Unlock != nil {
		u := *t.Unlock
		out.Unlock = &u
	}
	return out
}
