package model

import "time"

// GoalType is the temporal horizon of a goal.
type GoalType string

const (
	Immediate  GoalType = "immediate"
	ShortTerm  GoalType = "short_term"
	MediumTerm GoalType = "medium_term"
	LongTerm   GoalType = "long_term"
)

// Rank gives a strict ordering for tie-breaking (lower = more urgent),
// matching spec.md §4.6's {Immediate<Short<Medium<Long}.
func (t GoalType) Rank() int {
	switch t {
	case Immediate:
		return 0
	case ShortTerm:
		return 1
	case MediumTerm:
		return 2
	case LongTerm:
		return 3
	default:
		return 4
	}
}

// GoalStatus is the lifecycle state of a goal.
type GoalStatus string

const (
	GoalPending   GoalStatus = "pending"
	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
	GoalFailed    GoalStatus = "failed"
)

// ResourceRequirement names a resource a goal needs present in
// GameState before it is feasible.
type ResourceRequirement struct {
	Kind  string // "money" | "badges" | "level" | "pokemon_species"
	Value string // numeric requirements are stringified; species are names
}

// GoalVariant is the sum-type payload distinguishing goal subtypes
// (spec.md §9 design note: "a sum type Goal = DefeatGym{..} | ... with a
// single decompose(state) function that matches on the variant").
type GoalVariant interface {
	isGoalVariant()
}

type DefeatGymVariant struct {
	GymLocation    string
	RequiredLevel  int
	LeaderName     string
}

type CatchPokemonVariant struct {
	Species  string
	Location string // "" means unspecified / anywhere
}

type ReachLocationVariant struct {
	Location string
}

type HealPartyVariant struct{}

type TrainPokemonVariant struct {
	TargetLevel      int
	TrainingLocation string
}

type ObtainItemVariant struct {
	Item     ItemType
	Quantity int
}

func (DefeatGymVariant) isGoalVariant()     {}
func (CatchPokemonVariant) isGoalVariant()  {}
func (ReachLocationVariant) isGoalVariant() {}
func (HealPartyVariant) isGoalVariant()     {}
func (TrainPokemonVariant) isGoalVariant()  {}
func (ObtainItemVariant) isGoalVariant()    {}

// Goal is a declarative objective the GOAP layer can plan against.
type Goal struct {
	GoalID       string
	Name         string
	Description  string
	Type         GoalType
	Priority     float64 // single floating-point representation throughout (spec.md §9)
	Status       GoalStatus
	Progress     float64 // [0,1]
	Prerequisites []string // goal ids
	Dependencies  []string // goal ids
	RequiredResources []ResourceRequirement
	EstimatedCost  float64
	EstimatedValue float64
	Deadline       *time.Time
	RetryCount     int
	MaxRetries     int
	Variant        GoalVariant
}

// DefaultMaxRetries matches spec.md §5's per-action retry default; goals
// reuse it unless the caller overrides.
const DefaultMaxRetries = 3

// IsTerminal reports whether the goal has reached Completed or Failed.
func (g *Goal) IsTerminal() bool {
	return g.Status == GoalCompleted || g.Status == GoalFailed
}
