package goap

import (
	"fmt"
	"time"

	"github.com/wojons/ptp-core/internal/model"
)

// HierarchicalPlanner composes a prioritizer, a planner and a monitor
// into the single surface the loop controller drives (spec.md §4.6).
type HierarchicalPlanner struct {
	Prioritizer *GoalPrioritizer
	planner     *Planner
	monitor     *PlanMonitor

	activeGoal *model.Goal
	activePlan *model.Plan
	planSeq    int
}

// NewHierarchicalPlanner wires a fresh prioritizer/planner/monitor
// triple around the given action executor.
func NewHierarchicalPlanner(executor Executor) *HierarchicalPlanner {
	planner := NewPlanner()
	return &HierarchicalPlanner{
		Prioritizer: NewGoalPrioritizer(),
		planner:     planner,
		monitor:     NewPlanMonitor(planner, executor),
	}
}

// AddGoal registers a new goal with the prioritizer.
func (h *HierarchicalPlanner) AddGoal(g *model.Goal, state *model.GameState) {
	h.Prioritizer.AddGoal(g, time.Now())
}

// Plan selects the next feasible goal (if none is active) and
// decomposes it into a Plan.
func (h *HierarchicalPlanner) Plan(state *model.GameState) (*model.Plan, error) {
	if h.activeGoal == nil {
		h.activeGoal = h.Prioritizer.SelectNextGoal(state)
		if h.activeGoal == nil {
			return nil, nil
		}
	}
	actions, err := h.planner.Decompose(h.activeGoal, state)
	if err != nil {
		return nil, fmt.Errorf("goap: decompose %s: %w", h.activeGoal.GoalID, err)
	}
	h.planSeq++
	plan := model.NewPlan(fmt.Sprintf("plan_%d", h.planSeq), h.activeGoal.GoalID, actions)
	if valid, verr := ValidatePlan(plan, state); !valid {
		return nil, fmt.Errorf("goap: invalid plan for %s: %w", h.activeGoal.GoalID, verr)
	}
	h.activeGoal.Status = model.GoalActive
	plan.Status = model.PlanExecuting
	h.activePlan = plan
	return plan, nil
}

// ExecuteStep advances the active plan by one tick.
func (h *HierarchicalPlanner) ExecuteStep(state *model.GameState) TickResult {
	if h.activePlan == nil || h.activeGoal == nil {
		return TickResult{}
	}
	result := h.monitor.Tick(h.activePlan, h.activeGoal, state, time.Now())
	if result.PlanCompleted || result.GoalFailed || result.Surrendered {
		h.activeGoal = nil
		h.activePlan = nil
	}
	return result
}

// HandleInterruption routes a mid-plan interruption through the
// monitor, pre-empting the active plan with an emergency goal when the
// interruption demands it (e.g. low_hp).
func (h *HierarchicalPlanner) HandleInterruption(kind InterruptionKind, state *model.GameState) TickResult {
	if h.activePlan == nil {
		return TickResult{}
	}
	preempt, result := h.monitor.HandleInterruption(kind, h.activePlan)
	if preempt != nil {
		priority := preempt.Priority
		h.Prioritizer.AddGoal(preempt, time.Now())
		if priority > preempt.Priority {
			preempt.Priority = priority
			h.Prioritizer.Queue.UpdatePriority(preempt, priority)
		}
		h.activeGoal = nil
		h.activePlan = nil
	}
	return result
}

// Status is the HierarchicalPlanner's externally observable state.
type Status struct {
	HasActiveGoal bool
	ActiveGoalID  string
	PlanStatus    model.PlanStatus
	CurrentIndex  int
	TotalActions  int
}

// GetStatus reports the current active goal/plan progress.
func (h *HierarchicalPlanner) GetStatus() Status {
	if h.activeGoal == nil || h.activePlan == nil {
		return Status{}
	}
	return Status{
		HasActiveGoal: true,
		ActiveGoalID:  h.activeGoal.GoalID,
		PlanStatus:    h.activePlan.Status,
		CurrentIndex:  h.activePlan.CurrentIndex,
		TotalActions:  len(h.activePlan.Actions),
	}
}
