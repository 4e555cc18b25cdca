package loop

import (
	"context"
	"testing"
	"time"

	"github.com/wojons/ptp-core/internal/collab"
	"github.com/wojons/ptp-core/internal/goap"
	"github.com/wojons/ptp-core/internal/memory"
	"github.com/wojons/ptp-core/internal/model"
	"github.com/wojons/ptp-core/internal/savestate"
)

func newTestController(t *testing.T) (*Controller, *collab.InMemoryEmulator) {
	t.Helper()
	emulator := collab.NewInMemoryEmulator()
	vision := &collab.InMemoryVision{}
	dialogue := collab.NewDefaultDialogueAdaptor()
	snapshots, err := savestate.NewManager(t.TempDir(), 5)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	planner := goap.NewHierarchicalPlanner(NewActionDispatcher(context.Background(), emulator, dialogue))
	observer := memory.NewObserverMemory()
	strategist := memory.NewStrategistMemory("session-1")
	tactician := memory.NewTacticianMemory()

	c := NewController(emulator, vision, dialogue, planner, observer, strategist, tactician, snapshots,
		TickRate{BaseHz: 1000, BattleHz: 1000},
		Limits{MaxTicks: 3, OnLimit: OnLimitSaveAndExit})
	return c, emulator
}

func TestControllerTickOrderingAdvancesOnHealGoal(t *testing.T) {
	c, _ := newTestController(t)
	c.State().Party = model.NewTeam("t", "t")

	c.Planner.AddGoal(&model.Goal{
		GoalID: "heal1", EstimatedValue: 10, EstimatedCost: 1,
		MaxRetries: 3, Variant: model.HealPartyVariant{},
	}, c.State())

	c.tickOnce(context.Background())
	if c.State().Tick != 1 {
		t.Fatalf("expected tick count advanced to 1, got %d", c.State().Tick)
	}
	events := c.EventLog().Events()
	if len(events) == 0 {
		t.Fatal("expected at least one structured event recorded")
	}
}

func TestControllerRunStopsAtTickLimit(t *testing.T) {
	c, _ := newTestController(t)
	c.State().Party = model.NewTeam("t", "t")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	result := c.Run(ctx)
	if result.Reason != "max_ticks" {
		t.Fatalf("expected the run to stop at max_ticks, got %+v", result)
	}
	if result.TicksRun < 3 {
		t.Errorf("expected at least 3 ticks run, got %d", result.TicksRun)
	}
	if _, ok := c.EventLog().Last(); !ok {
		t.Error("expected a final event recorded on limit trip")
	}
}

func TestControllerHandleSoftlockSavesEmergencySnapshot(t *testing.T) {
	c, _ := newTestController(t)
	c.HandleSoftlock()

	snaps, err := c.Snapshots.GetEmergencySnapshots()
	if err != nil {
		t.Fatalf("GetEmergencySnapshots: %v", err)
	}
	if len(snaps) != 1 {
		t.Fatalf("expected one emergency snapshot, got %d", len(snaps))
	}
}

func TestBudgetAccountExceeded(t *testing.T) {
	b := &BudgetAccount{LimitUSD: 1.0}
	b.Spend(0.5)
	if b.Exceeded() {
		t.Error("expected not yet exceeded at 0.5/1.0")
	}
	b.Spend(0.5)
	if !b.Exceeded() {
		t.Error("expected exceeded at 1.0/1.0")
	}
}

func TestLimitsLimitReached(t *testing.T) {
	l := Limits{MaxBadges: 8}
	if got := l.LimitReached(0, 0, 0, 7, 0); got != "" {
		t.Errorf("expected no limit reached at 7 badges, got %q", got)
	}
	if got := l.LimitReached(0, 0, 0, 8, 0); got != "max_badges" {
		t.Errorf("expected max_badges reached at 8, got %q", got)
	}
}
