// Package memory implements the tri-tier memory architecture:
// ObserverMemory (per-tick, ephemeral), StrategistMemory (per-session)
// and TacticianMemory (cross-session, durable), plus the Consolidator
// that promotes facts upward between tiers (spec.md §4.7).
package memory

import "github.com/wojons/ptp-core/internal/model"

// ObserverRingSize is the fixed capacity of the action ring buffer.
const ObserverRingSize = 10

// ActionRecord is one executed action as the observer saw it.
type ActionRecord struct {
	Tick       int64
	ActionID   string
	ActionType model.ActionType
	Succeeded  bool
	Confidence float64
	Outcome    string
}

// TickState is the observer's current single-tick snapshot.
type TickState struct {
	Tick      int64
	Location  string
	InBattle  bool
	PartyHP   float64
}

// SensoryInput is the latest raw observation the observer has on hand
// (e.g. a parsed screen/dialogue read), opaque beyond a few routing
// fields since its shape comes from the vision/emulator collaborators.
type SensoryInput struct {
	Tick   int64
	Kind   string
	Fields map[string]interface{}
}

// ObserverMemory is an append-only ring buffer of the last
// ObserverRingSize actions plus the current tick-level working set.
// All ephemeral state is destroyed by Clear at session end.
type ObserverMemory struct {
	ring      [ObserverRingSize]ActionRecord
	count     int
	next      int
	current   TickState
	context   map[string]interface{}
	sensory   SensoryInput
}

// NewObserverMemory builds an empty observer.
func NewObserverMemory() *ObserverMemory {
	return &ObserverMemory{context: make(map[string]interface{})}
}

// Push appends an action record, overwriting the oldest entry once the
// ring is full. O(1).
func (o *ObserverMemory) Push(rec ActionRecord) {
	o.ring[o.next] = rec
	o.next = (o.next + 1) % ObserverRingSize
	if o.count < ObserverRingSize {
		o.count++
	}
}

// SetTickState replaces the current tick-level state.
func (o *ObserverMemory) SetTickState(s TickState) { o.current = s }

// TickState returns the current tick-level state.
func (o *ObserverMemory) TickState() TickState { return o.current }

// SetSensoryInput stores the latest raw observation.
func (o *ObserverMemory) SetSensoryInput(s SensoryInput) { o.sensory = s }

// SensoryInput returns the latest raw observation.
func (o *ObserverMemory) SensoryInput() SensoryInput { return o.sensory }

// SetDecisionContext stores an arbitrary key in the decision context
// map, used by the planner to stash scratch values between ticks.
func (o *ObserverMemory) SetDecisionContext(key string, value interface{}) {
	o.context[key] = value
}

// DecisionContext returns the current decision context map.
func (o *ObserverMemory) DecisionContext() map[string]interface{} { return o.context }

// Actions returns the buffered action records in chronological order,
// oldest first. O(N).
func (o *ObserverMemory) Actions() []ActionRecord {
	out := make([]ActionRecord, 0, o.count)
	start := (o.next - o.count + ObserverRingSize) % ObserverRingSize
	for i := 0; i < o.count; i++ {
		out = append(out, o.ring[(start+i)%ObserverRingSize])
	}
	return out
}

// Summary is the O(N) aggregate query over the action ring buffer.
type Summary struct {
	SuccessRate    float64
	AvgConfidence  float64
	RecentOutcomes []string
}

// Summarize computes success_rate, avg_confidence and recent_outcomes
// over the current ring buffer contents.
func (o *ObserverMemory) Summarize() Summary {
	if o.count == 0 {
		return Summary{}
	}
	var successes int
	var confSum float64
	outcomes := make([]string, 0, o.count)
	for _, a := range o.Actions() {
		if a.Succeeded {
			successes++
		}
		confSum += a.Confidence
		outcomes = append(outcomes, a.Outcome)
	}
	return Summary{
		SuccessRate:    float64(successes) / float64(o.count),
		AvgConfidence:  confSum / float64(o.count),
		RecentOutcomes: outcomes,
	}
}

// Clear wipes all ephemeral state, leaving a zero-value observer.
func (o *ObserverMemory) Clear() {
	o.ring = [ObserverRingSize]ActionRecord{}
	o.count = 0
	o.next = 0
	o.current = TickState{}
	o.sensory = SensoryInput{}
	o.context = make(map[string]interface{})
}
