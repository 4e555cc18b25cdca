package loop

import (
	"context"
	"fmt"
	"time"

	"github.com/wojons/ptp-core/internal/collab"
	"github.com/wojons/ptp-core/internal/goap"
	"github.com/wojons/ptp-core/internal/memory"
	"github.com/wojons/ptp-core/internal/model"
	"github.com/wojons/ptp-core/internal/savestate"
)

// TickRate is the controller's cooperative scheduling configuration
// (spec.md §5/§6): overworld and battle each have a base rate, an
// optional adaptive mode scales the effective rate by recent decision
// latency. TimeoutMS carries the configured per-tick timeout; Run does
// not enforce it.
type TickRate struct {
	BaseHz    float64
	BattleHz  float64
	TimeoutMS int64
	Adaptive  bool
}

func (r TickRate) interval(inBattle bool) time.Duration {
	hz := r.BaseHz
	if inBattle {
		hz = r.BattleHz
	}
	if hz <= 0 {
		hz = 10
	}
	return time.Duration(float64(time.Second) / hz)
}

// Controller is the tick-driven core: a single-threaded cooperative
// loop pumping emulator ticks at a configurable rate, driving
// sensor -> observer -> reprioritize -> plan -> dispatch -> record in
// strict order every tick (spec.md §5). It never spawns background
// goroutines of its own and never blocks on I/O without yielding back
// to the caller's context.
type Controller struct {
	Emulator   collab.Emulator
	Vision     collab.VisionAdaptor
	Dialogue   collab.DialogueAdaptor
	Planner    *goap.HierarchicalPlanner
	Observer   *memory.ObserverMemory
	Strategist *memory.StrategistMemory
	Tactician  *memory.TacticianMemory
	Consolidator *memory.Consolidator
	Snapshots  *savestate.Manager

	Rate   TickRate
	Budget BudgetAccount
	Limits Limits

	lastSnapshotTick int64
	snapshotInterval int64
	saveOnEvents     []string

	state *model.GameState
	log   EventLog
}

// NewController wires every collaborator and subsystem the tick loop
// needs. Callers build the emulator/vision/dialogue collaborators
// (real or in-memory doubles) and the memory tiers/planner separately.
func NewController(
	emulator collab.Emulator,
	vision collab.VisionAdaptor,
	dialogue collab.DialogueAdaptor,
	planner *goap.HierarchicalPlanner,
	observer *memory.ObserverMemory,
	strategist *memory.StrategistMemory,
	tactician *memory.TacticianMemory,
	snapshots *savestate.Manager,
	rate TickRate,
	limits Limits,
) *Controller {
	return &Controller{
		Emulator:     emulator,
		Vision:       vision,
		Dialogue:     dialogue,
		Planner:      planner,
		Observer:     observer,
		Strategist:   strategist,
		Tactician:    tactician,
		Consolidator: memory.NewConsolidator(),
		Snapshots:    snapshots,
		Rate:         rate,
		Limits:       limits,
		state:        model.NewGameState(),
		snapshotInterval: 1000,
	}
}

// State returns the controller's live GameState.
func (c *Controller) State() *model.GameState { return c.state }

// EventLog returns every structured event recorded so far.
func (c *Controller) EventLog() *EventLog { return &c.log }

// RunResult is what Run returns once the loop exits, whether by
// completing naturally, hitting a limit, or the context being
// canceled.
type RunResult struct {
	Reason    string
	ExitCode  int
	TicksRun  int64
}

// Run drives the tick loop until ctx is canceled or a configured
// limit trips. Each iteration executes exactly one tick, checks the
// limits, then waits for the configured tick interval (raised to the
// last tick's latency when Rate.Adaptive is set and that latency is
// longer).
func (c *Controller) Run(ctx context.Context) RunResult {
	var lastLatency time.Duration
	for {
		select {
		case <-ctx.Done():
			return RunResult{Reason: "context_canceled", ExitCode: 0, TicksRun: c.state.Tick}
		default:
		}

		interval := c.Rate.interval(c.state.IsBattle)
		if c.Rate.Adaptive && lastLatency > interval {
			interval = lastLatency
		}

		start := time.Now()
		c.tickOnce(ctx)
		lastLatency = time.Since(start)

		if reason := c.Limits.LimitReached(c.state.Tick, c.Budget.SpentUSD, c.state.PokedexCaught, c.state.Badges, int(c.state.AvgPartyLevel())); reason != "" {
			return c.handleLimit(reason)
		}

		select {
		case <-ctx.Done():
			return RunResult{Reason: "context_canceled", ExitCode: 0, TicksRun: c.state.Tick}
		case <-time.After(interval):
		}
	}
}

// handleLimit applies the configured on_limit policy once a resource
// limit has tripped (spec.md §7).
func (c *Controller) handleLimit(reason string) RunResult {
	switch c.Limits.OnLimit {
	case OnLimitSaveAndExit:
		c.Snapshots.CreateSnapshot(c.Emulator, model.ReasonManual, c.state.Tick, "limit:"+reason, c.state.Location, c.state.Badges, c.state.PartyHPFraction())
		c.log.Record(Event{Tick: c.state.Tick, Timestamp: time.Now(), Kind: EventSnapshot, Detail: "save-and-exit: " + reason})
		return RunResult{Reason: reason, ExitCode: 0, TicksRun: c.state.Tick}
	case OnLimitSaveOnly:
		c.Snapshots.CreateSnapshot(c.Emulator, model.ReasonManual, c.state.Tick, "limit:"+reason, c.state.Location, c.state.Badges, c.state.PartyHPFraction())
		c.log.Record(Event{Tick: c.state.Tick, Timestamp: time.Now(), Kind: EventSnapshot, Detail: "save-only: " + reason})
		return RunResult{Reason: reason, ExitCode: 1, TicksRun: c.state.Tick}
	default: // OnLimitAbort
		c.log.Record(Event{Tick: c.state.Tick, Timestamp: time.Now(), Kind: EventFailure, Detail: "abort: " + reason})
		return RunResult{Reason: reason, ExitCode: 1, TicksRun: c.state.Tick}
	}
}

// tickOnce runs the strict per-tick ordering spec.md §5 requires:
// sensor -> observer update -> goal reprioritize -> planner advance ->
// action dispatch -> outcome record. No later stage sees state derived
// from a later stage of the same tick.
func (c *Controller) tickOnce(ctx context.Context) {
	if err := c.Emulator.Tick(ctx); err != nil {
		c.log.Record(Event{Tick: c.state.Tick, Timestamp: time.Now(), Kind: EventFailure, Detail: fmt.Sprintf("emulator tick: %v", err)})
		return
	}
	c.state.Tick++

	frame, err := c.Emulator.CaptureScreen(ctx)
	if err != nil {
		c.log.Record(Event{Tick: c.state.Tick, Timestamp: time.Now(), Kind: EventFailure, Detail: fmt.Sprintf("capture screen: %v", err)})
		return
	}
	obs := c.Vision.Analyze(frame)

	c.Observer.SetTickState(memory.TickState{Tick: c.state.Tick, Location: c.state.Location, InBattle: c.state.IsBattle, PartyHP: c.state.PartyHPFraction()})
	if obs.IsScreenTypeTrusted() && obs.Location != "" {
		c.state.Location = obs.Location
	}

	plan, err := c.Planner.Plan(c.state)
	if err != nil {
		c.log.Record(Event{Tick: c.state.Tick, Timestamp: time.Now(), Kind: EventFailure, Detail: err.Error()})
		return
	}
	if plan == nil && !c.Planner.GetStatus().HasActiveGoal {
		// no feasible goal queued this tick; nothing to reprioritize or
		// advance.
		return
	}

	result := c.Planner.ExecuteStep(c.state)
	c.recordTickResult(result)

	if ShouldSnapshotInterval(c.state.Tick, c.lastSnapshotTick, c.snapshotInterval) {
		if id, ok := c.Snapshots.CreateSnapshot(c.Emulator, model.ReasonInterval, c.state.Tick, "interval", c.state.Location, c.state.Badges, c.state.PartyHPFraction()); ok {
			c.lastSnapshotTick = c.state.Tick
			c.log.Record(Event{Tick: c.state.Tick, Timestamp: time.Now(), Kind: EventSnapshot, Detail: id})
		}
	}

	if c.Consolidator.ShouldRun(c.state.Tick) {
		c.Consolidator.Consolidate(c.state.Tick, c.Observer, c.Strategist, c.Tactician)
	}
}

func (c *Controller) recordTickResult(result goap.TickResult) {
	now := time.Now()
	switch {
	case result.PlanCompleted:
		c.log.Record(Event{Tick: c.state.Tick, Timestamp: now, Kind: EventSuccess, Detail: "plan completed"})
	case result.Replanned:
		c.log.Record(Event{Tick: c.state.Tick, Timestamp: now, Kind: EventRetry, Detail: "replanned after failure"})
	case result.GoalFailed:
		c.log.Record(Event{Tick: c.state.Tick, Timestamp: now, Kind: EventFailure, Detail: "goal failed"})
	case result.Surrendered:
		c.log.Record(Event{Tick: c.state.Tick, Timestamp: now, Kind: EventFailure, Detail: "plan surrendered"})
	case result.Advanced:
		c.log.Record(Event{Tick: c.state.Tick, Timestamp: now, Kind: EventSuccess, Detail: "action advanced"})
	case result.Paused:
		c.log.Record(Event{Tick: c.state.Tick, Timestamp: now, Kind: EventPaused, Detail: "plan paused"})
	}
}

// HandleSoftlock triggers an emergency snapshot and abandons the
// active plan (spec.md §5's cancellation/timeout policy).
func (c *Controller) HandleSoftlock() {
	id, ok := c.Snapshots.SaveEmergencySnapshot(c.Emulator, c.state.Tick, "softlock")
	if ok {
		c.log.Record(Event{Tick: c.state.Tick, Timestamp: time.Now(), Kind: EventSnapshot, Detail: "emergency: " + id})
	}
	c.Planner.HandleInterruption(goap.InterruptSoftlock, c.state)
	c.log.Record(Event{Tick: c.state.Tick, Timestamp: time.Now(), Kind: EventFailure, Detail: "softlock: plan abandoned"})
}

// RollbackTo loads a prior snapshot and records the rollback event.
func (c *Controller) RollbackTo(id string) error {
	ok, err := c.Snapshots.LoadSnapshot(id, c.Emulator)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("loop: emulator rejected snapshot %s", id)
	}
	c.log.Record(Event{Tick: c.state.Tick, Timestamp: time.Now(), Kind: EventRollback, Detail: id})
	return nil
}
