package goap

import (
	"testing"
	"time"

	"github.com/wojons/ptp-core/internal/model"
)

func TestGoalStackDedupTakesMaxPriority(t *testing.T) {
	s := NewGoalStack()
	s.Push(&model.Goal{GoalID: "g1", Priority: 5})
	s.Push(&model.Goal{GoalID: "g1", Priority: 9})
	g, ok := s.Get("g1")
	if !ok || g.Priority != 9 {
		t.Fatalf("expected priority raised to 9, got %+v ok=%v", g, ok)
	}
	if s.Len() != 1 {
		t.Errorf("expected a single entry after dedup push, got %d", s.Len())
	}
}

func TestGoalStackOverflowDropsOldest(t *testing.T) {
	s := NewGoalStackWithCapacity(2)
	s.Push(&model.Goal{GoalID: "a"})
	s.Push(&model.Goal{GoalID: "b"})
	s.Push(&model.Goal{GoalID: "c"})
	if _, ok := s.Get("a"); ok {
		t.Error("expected the oldest entry dropped on overflow")
	}
	if s.Len() != 2 {
		t.Errorf("expected capacity-bound length 2, got %d", s.Len())
	}
}

func TestGoalStackGetAllGoalsOrdering(t *testing.T) {
	s := NewGoalStack()
	s.Push(&model.Goal{GoalID: "a", Priority: 5, Type: model.LongTerm})
	s.Push(&model.Goal{GoalID: "b", Priority: 5, Type: model.Immediate})
	s.Push(&model.Goal{GoalID: "c", Priority: 9, Type: model.LongTerm})
	all := s.GetAllGoals()
	if all[0].GoalID != "c" {
		t.Errorf("expected highest priority first, got %s", all[0].GoalID)
	}
	if all[1].GoalID != "b" {
		t.Errorf("expected Immediate to break the priority=5 tie, got %s", all[1].GoalID)
	}
}

func TestGoalDAGCycleDetection(t *testing.T) {
	g := NewGoalDAG()
	if err := g.AddEdge("b", "a"); err != nil {
		t.Fatalf("AddEdge b->a: %v", err)
	}
	if err := g.AddEdge("c", "b"); err != nil {
		t.Fatalf("AddEdge c->b: %v", err)
	}
	if err := g.AddEdge("a", "c"); err == nil {
		t.Error("expected a->c to be rejected as a cycle (c already depends on a transitively via b)")
	}
}

func TestGoalDAGCriticalPath(t *testing.T) {
	g := NewGoalDAG()
	_ = g.AddEdge("defeat_gym", "train")
	_ = g.AddEdge("train", "reach_route")
	path := g.CriticalPath("defeat_gym")
	want := []string{"defeat_gym", "train", "reach_route"}
	if len(path) != len(want) {
		t.Fatalf("expected path length %d, got %d (%v)", len(want), len(path), path)
	}
	for i := range want {
		if path[i] != want[i] {
			t.Errorf("path[%d] = %s, want %s", i, path[i], want[i])
		}
	}
}

func TestPriorityQueueStaleEntrySkipped(t *testing.T) {
	q := NewPriorityQueue()
	g1 := &model.Goal{GoalID: "g1"}
	g2 := &model.Goal{GoalID: "g2"}
	q.Push(g1, 5)
	q.Push(g2, 10)
	q.UpdatePriority(g1, 50) // g1 should now outrank g2

	first := q.Pop()
	if first.GoalID != "g1" {
		t.Fatalf("expected g1 (updated priority 50) to pop first, got %s", first.GoalID)
	}
	second := q.Pop()
	if second.GoalID != "g2" {
		t.Fatalf("expected g2 second, got %s", second.GoalID)
	}
	if q.Pop() != nil {
		t.Error("expected the queue empty after popping both live goals")
	}
}

func TestGoalPriorityCalculatorClampsToRange(t *testing.T) {
	c := NewGoalPriorityCalculator()
	now := time.Now()
	soon := now.Add(30 * time.Second)
	g := &model.Goal{EstimatedValue: 1000, EstimatedCost: 1, Deadline: &soon}
	got := c.Compute(now, g, 5, HistoricalOutcome{SuccessCount: 10, TotalCount: 10}, FailureRisk(0))
	if got != 100 {
		t.Errorf("expected priority clamped to 100, got %v", got)
	}

	g2 := &model.Goal{EstimatedValue: 0.001, EstimatedCost: 1000}
	got2 := c.Compute(now, g2, 0, HistoricalOutcome{}, RiskHigh)
	if got2 != 0 {
		t.Errorf("expected priority clamped to 0, got %v", got2)
	}
}

func TestGoalPrioritizerSelectNextGoalSkipsInfeasible(t *testing.T) {
	p := NewGoalPrioritizer()
	now := time.Now()
	expensive := &model.Goal{
		GoalID: "buy_master_ball", EstimatedValue: 10, EstimatedCost: 1,
		RequiredResources: []model.ResourceRequirement{{Kind: "money", Value: "100000"}},
		Variant:           model.ObtainItemVariant{Item: "Master Ball", Quantity: 1},
	}
	cheap := &model.Goal{
		GoalID: "heal", EstimatedValue: 5, EstimatedCost: 1,
		Variant: model.HealPartyVariant{},
	}
	p.AddGoal(expensive, now)
	p.AddGoal(cheap, now)

	state := &model.GameState{Money: 50, Party: model.NewTeam("t", "t")}
	got := p.SelectNextGoal(state)
	if got == nil || got.GoalID != "heal" {
		t.Fatalf("expected the feasible 'heal' goal selected, got %+v", got)
	}
}

func TestPlannerDecomposeHealParty(t *testing.T) {
	p := NewPlanner()
	actions, err := p.Decompose(&model.Goal{GoalID: "heal", Variant: model.HealPartyVariant{}}, &model.GameState{})
	if err != nil {
		t.Fatalf("Decompose: %v", err)
	}
	if len(actions) != 2 {
		t.Fatalf("expected 2 actions (navigate, dialog), got %d", len(actions))
	}
	if actions[0].Type != model.ActionNavigation || actions[1].Type != model.ActionDialog {
		t.Errorf("unexpected action types: %s, %s", actions[0].Type, actions[1].Type)
	}
}

func TestPlannerDecomposeTrainPokemonBounded(t *testing.T) {
	p := NewPlanner()
	state := &model.GameState{Party: model.NewTeam("t", "t")}
	actions, err := p.Decompose(&model.Goal{
		GoalID:  "train",
		Variant: model.TrainPokemonVariant{TargetLevel: 1000, TrainingLocation: "Route 1"},
	}, state)
	if err != nil {
		t.Fatalf("Decompose: %v", err)
	}
	// 1 navigate + at most MaxTrainBattles battle actions
	if len(actions) > MaxTrainBattles+1 {
		t.Errorf("expected training battles bounded by %d, got %d actions", MaxTrainBattles, len(actions)-1)
	}
}

func TestValidatePlanDetectsUnmetPrecondition(t *testing.T) {
	action := model.NewAction("a1", model.ActionNavigation, 1)
	action.Preconditions = []model.Predicate{{Field: "badges", Op: ">=", Value: 5}}
	plan := model.NewPlan("p1", "g1", []*model.Action{action})
	state := &model.GameState{Badges: 1}

	valid, err := ValidatePlan(plan, state)
	if valid {
		t.Error("expected plan invalid due to unmet badges precondition")
	}
	if err == nil {
		t.Error("expected a combined validation error")
	}
}

type stubExecutor struct{ succeed bool }

func (s stubExecutor) Execute(action *model.Action, state *model.GameState) bool { return s.succeed }

func TestPlanMonitorTickAdvancesOnSuccess(t *testing.T) {
	planner := NewPlanner()
	monitor := NewPlanMonitor(planner, stubExecutor{succeed: true})
	a1 := model.NewAction("a1", model.ActionNavigation, 1)
	a2 := model.NewAction("a2", model.ActionDialog, 1)
	plan := model.NewPlan("p1", "g1", []*model.Action{a1, a2})
	goal := &model.Goal{GoalID: "g1", MaxRetries: 3}
	state := &model.GameState{}

	result := monitor.Tick(plan, goal, state, time.Now())
	if !result.Advanced {
		t.Fatal("expected the first tick to advance the plan")
	}
	if plan.CurrentIndex != 1 {
		t.Errorf("expected current index 1, got %d", plan.CurrentIndex)
	}

	result2 := monitor.Tick(plan, goal, state, time.Now())
	if !result2.PlanCompleted {
		t.Error("expected the plan to complete after the second action")
	}
}

func TestPlanMonitorTickReplansOnFailure(t *testing.T) {
	planner := NewPlanner()
	monitor := NewPlanMonitor(planner, stubExecutor{succeed: false})
	a1 := model.NewAction("a1", model.ActionDialog, 1)
	plan := model.NewPlan("p1", "g1", []*model.Action{a1})
	goal := &model.Goal{GoalID: "g1", MaxRetries: 3, Variant: model.HealPartyVariant{}}
	state := &model.GameState{}

	result := monitor.Tick(plan, goal, state, time.Now())
	if !result.Replanned {
		t.Fatalf("expected a replan after the first failure, got %+v", result)
	}
	if plan.Status != model.PlanExecuting {
		t.Errorf("expected plan re-entered Executing after replan, got %s", plan.Status)
	}
}

func TestHierarchicalPlannerFullCycle(t *testing.T) {
	h := NewHierarchicalPlanner(stubExecutor{succeed: true})
	goal := &model.Goal{
		GoalID: "heal1", EstimatedValue: 10, EstimatedCost: 1,
		MaxRetries: 3, Variant: model.HealPartyVariant{},
	}
	state := &model.GameState{Party: model.NewTeam("t", "t")}
	h.AddGoal(goal, state)

	plan, err := h.Plan(state)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if plan == nil {
		t.Fatal("expected a plan to be produced")
	}

	status := h.GetStatus()
	if !status.HasActiveGoal || status.ActiveGoalID != "heal1" {
		t.Fatalf("expected active goal heal1, got %+v", status)
	}

	for i := 0; i < len(plan.Actions); i++ {
		h.ExecuteStep(state)
	}
	finalStatus := h.GetStatus()
	if finalStatus.HasActiveGoal {
		t.Error("expected no active goal once the plan completes")
	}
}
