package task

type Cadence string

const (
	Daily   Cadence = "daily"
	Weekly  Cadence = "weekly"
	Special Cadence = "special"
)

type RequirementType string

const (
	TravelCount   RequirementType = "travel_count"
	CarbonSaved   RequirementType = "carbon_saved"
	Streak        RequirementType = "streak"
	SpecificRoute RequirementType = "specific_route"
)

// Pseudo-modes understood by travel_count requirements besides real modes.
const (
	ModeGreen       = "green"
	ModeRainyGreen  = "rainy_green"
	ModeExploration = "exploration"
)

type Requirement struct {
	Type  RequirementType `json:"type"`
	Value float64         `json:"value"`
	Mode  string          `json:"mode,omitempty"`
	Route string          `json:"route,omitempty"`
}

type Reward struct {
	Points int    `json:"points"`
	Badge  string `json:"badge,omitempty"`
}

type Task struct {
	ID          int         `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Type        Cadence     `json:"type"`
	Requirement Requirement `json:"requirement"`
	Reward      Reward      `json:"reward"`
	Completed   bool        `json:"completed"`
	Progress    float64     `json:"progress"`
}

// Rewards is the batch earned by tasks completed in one evaluation.
type Rewards struct {
	Points    int      `json:"points"`
	Badges    []string `json:"badges"`
	Completed []int    `json:"completed"`
}

func (r Rewards) Empty() bool {
	return len(r.Completed) == 0
}
