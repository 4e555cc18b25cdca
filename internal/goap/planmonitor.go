package goap

import (
	"time"

	"github.com/wojons/ptp-core/internal/model"
)

// MaxReplans bounds how many times a single run will replan before
// surrendering the active plan (spec.md §4.6).
const MaxReplans = 10

// InterruptionKind names the kinds of mid-plan interruption
// PlanMonitor.HandleInterruption understands.
type InterruptionKind string

const (
	InterruptRandomBattle InterruptionKind = "random_battle"
	InterruptLowHP        InterruptionKind = "low_hp"
	InterruptSoftlock     InterruptionKind = "softlock"
)

// ActionOutcome is one recorded tick-level execution result.
type ActionOutcome struct {
	Timestamp  time.Time
	ActionType model.ActionType
	Success    bool
	State      map[string]interface{}
}

// TickResult reports what PlanMonitor did on one Tick call.
type TickResult struct {
	Advanced       bool
	PlanCompleted  bool
	GoalFailed     bool
	Replanned      bool
	Surrendered    bool
	Paused         bool
	Outcome        *ActionOutcome
}

// Executor runs one Action against the live game and reports whether
// it succeeded; supplied by the loop controller's collaborators.
type Executor interface {
	Execute(action *model.Action, state *model.GameState) bool
}

// PlanMonitor drives a single active plan tick by tick: checking
// preconditions, executing, recording outcomes, advancing, retrying or
// replanning on failure (spec.md §4.6).
type PlanMonitor struct {
	planner      *Planner
	executor     Executor
	replanCount  int
	history      []ActionOutcome
}

// NewPlanMonitor wires a planner (for replanning) and an executor.
func NewPlanMonitor(planner *Planner, executor Executor) *PlanMonitor {
	return &PlanMonitor{planner: planner, executor: executor}
}

// History returns every recorded action outcome so far.
func (m *PlanMonitor) History() []ActionOutcome { return m.history }

// Tick advances the plan by one step, per spec.md §4.6's five-step
// loop:
//  1. fetch current action; over-retry triggers failure handling.
//  2. unmet preconditions increment retry and wait a tick.
//  3. execute; record the outcome.
//  4. on success, advance (or complete the plan).
//  5. on failure, increment the goal's retry; drop or replan.
func (m *PlanMonitor) Tick(plan *model.Plan, goal *model.Goal, state *model.GameState, now time.Time) TickResult {
	action := plan.CurrentAction()
	if action == nil {
		plan.Status = model.PlanCompleted
		goal.Status = model.GoalCompleted
		return TickResult{PlanCompleted: true}
	}

	if action.ExceededRetries() {
		return m.handleFailure(plan, goal, state, now)
	}

	fields := applyHypotheticalEffects(state, nil)
	for _, pre := range action.Preconditions {
		if !predicateHolds(pre, fields) {
			action.RetryCount++
			return TickResult{}
		}
	}

	success := m.executor.Execute(action, state)
	outcome := ActionOutcome{Timestamp: now, ActionType: action.Type, Success: success, State: fields}
	m.history = append(m.history, outcome)

	if success {
		action.Status = model.ActionSucceeded
		plan.Advance()
		if plan.IsComplete() {
			plan.Status = model.PlanCompleted
			goal.Status = model.GoalCompleted
			return TickResult{Advanced: true, PlanCompleted: true, Outcome: &outcome}
		}
		return TickResult{Advanced: true, Outcome: &outcome}
	}

	action.Status = model.ActionFailed
	return m.handleFailure(plan, goal, state, now)
}

func (m *PlanMonitor) handleFailure(plan *model.Plan, goal *model.Goal, state *model.GameState, now time.Time) TickResult {
	goal.RetryCount++
	if goal.RetryCount > goal.MaxRetries {
		plan.Status = model.PlanFailed
		goal.Status = model.GoalFailed
		return TickResult{GoalFailed: true}
	}

	if m.replanCount >= MaxReplans {
		plan.Status = model.PlanAborted
		return TickResult{Surrendered: true}
	}
	m.replanCount++
	actions, err := m.planner.Decompose(goal, state)
	if err != nil {
		plan.Status = model.PlanFailed
		goal.Status = model.GoalFailed
		return TickResult{GoalFailed: true}
	}
	plan.Actions = actions
	plan.CurrentIndex = 0
	plan.Status = model.PlanExecuting
	return TickResult{Replanned: true}
}

// HandleInterruption implements the three named interruption kinds:
// random_battle pauses the plan; low_hp produces a pre-empting
// Critical HealParty goal; softlock aborts the plan (the caller is
// expected to trigger an emergency snapshot).
func (m *PlanMonitor) HandleInterruption(kind InterruptionKind, plan *model.Plan) (*model.Goal, TickResult) {
	switch kind {
	case InterruptRandomBattle:
		return nil, TickResult{Paused: true}
	case InterruptLowHP:
		healGoal := &model.Goal{
			GoalID:   "heal_party_interrupt",
			Name:     "Emergency heal",
			Type:     model.Immediate,
			Priority: 100,
			Status:   model.GoalPending,
			Variant:  model.HealPartyVariant{},
		}
		return healGoal, TickResult{Paused: true}
	case InterruptSoftlock:
		plan.Status = model.PlanAborted
		return nil, TickResult{Surrendered: true}
	default:
		return nil, TickResult{}
	}
}
