package goap

import (
	"time"

	"github.com/wojons/ptp-core/internal/model"
)

// HistoricalOutcome is the learned success/total count behind the
// "success" multiplier for a goal's subtype.
type HistoricalOutcome struct {
	SuccessCount int
	TotalCount   int
}

// SuccessFactor returns success_count/total_count, defaulting to a
// neutral 1.0 when there's no history yet.
func (h HistoricalOutcome) SuccessFactor() float64 {
	if h.TotalCount == 0 {
		return 1.0
	}
	return float64(h.SuccessCount) / float64(h.TotalCount)
}

// FailureRisk is the estimated probability a goal fails outright,
// driving a flat priority penalty (spec.md §4.6).
type FailureRisk float64

const (
	RiskLow  FailureRisk = 0.2
	RiskHigh FailureRisk = 0.5
)

// GoalPriorityCalculator computes a goal's numeric priority from base
// value, deadline pressure, dependent count, value/cost efficiency,
// learned success rate, and estimated risk (spec.md §4.6).
type GoalPriorityCalculator struct{}

// NewGoalPriorityCalculator builds a stateless calculator.
func NewGoalPriorityCalculator() *GoalPriorityCalculator {
	return &GoalPriorityCalculator{}
}

// temporalFactor rises as the deadline shrinks: ×2.0 under a minute,
// ×1.5 under ten minutes, ×1.2 under an hour, ×1.0 otherwise or with
// no deadline at all.
func (c *GoalPriorityCalculator) temporalFactor(now time.Time, deadline *time.Time) float64 {
	if deadline == nil {
		return 1.0
	}
	remaining := deadline.Sub(now)
	switch {
	case remaining < time.Minute:
		return 2.0
	case remaining < 10*time.Minute:
		return 1.5
	case remaining < time.Hour:
		return 1.2
	default:
		return 1.0
	}
}

// dependencyFactor grows with the number of goals that depend on this
// one: ×1.5 at 3 or more dependents, ×1.2 at 1 or more, ×1.0 otherwise.
func (c *GoalPriorityCalculator) dependencyFactor(dependentCount int) float64 {
	switch {
	case dependentCount >= 3:
		return 1.5
	case dependentCount >= 1:
		return 1.2
	default:
		return 1.0
	}
}

// efficiencyFactor scales with estimated value per unit cost.
func (c *GoalPriorityCalculator) efficiencyFactor(value, cost float64) float64 {
	if cost <= 0 {
		return value
	}
	return value / cost
}

// riskPenalty is a flat subtraction keyed to a coarse risk bucket: 20
// for high risk (≥0.5), 10 for low risk (≥0.2), 0 otherwise.
func (c *GoalPriorityCalculator) riskPenalty(risk FailureRisk) float64 {
	switch {
	case risk >= RiskHigh:
		return 20
	case risk >= RiskLow:
		return 10
	default:
		return 0
	}
}

// Compute implements:
//
//	priority = base * temporal * dependency * efficiency * success - risk
//
// clamped to [0, 100] (spec.md §4.6).
func (c *GoalPriorityCalculator) Compute(now time.Time, g *model.Goal, dependentCount int, history HistoricalOutcome, risk FailureRisk) float64 {
	base := g.EstimatedValue
	if base == 0 {
		base = 1.0
	}
	temporal := c.temporalFactor(now, g.Deadline)
	dependency := c.dependencyFactor(dependentCount)
	efficiency := c.efficiencyFactor(g.EstimatedValue, g.EstimatedCost)
	success := history.SuccessFactor()

	priority := base*temporal*dependency*efficiency*success - c.riskPenalty(risk)
	if priority < 0 {
		priority = 0
	}
	if priority > 100 {
		priority = 100
	}
	return priority
}
