package goap

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/wojons/ptp-core/internal/model"
)

// MaxTrainBattles bounds the repeated Battle(wild, "train") actions a
// TrainPokemon decomposition emits, so a goal can never generate an
// unbounded plan (spec.md §4.6).
const MaxTrainBattles = 20

// Planner decomposes a Goal into an ordered Action sequence, one
// decomposition rule per subtype (spec.md §4.6).
type Planner struct {
	actionSeq int
}

// NewPlanner builds a planner with its own action-id counter.
func NewPlanner() *Planner { return &Planner{} }

func (p *Planner) nextActionID(prefix string) string {
	p.actionSeq++
	return fmt.Sprintf("%s_%d", prefix, p.actionSeq)
}

func (p *Planner) navigate(to string) *model.Action {
	a := model.NewAction(p.nextActionID("navigate"), model.ActionNavigation, 1.0)
	a.Description = "navigate to " + to
	a.Params["destination"] = to
	return a
}

func (p *Planner) dialog(target, topic string) *model.Action {
	a := model.NewAction(p.nextActionID("dialog"), model.ActionDialog, 0.5)
	a.Description = fmt.Sprintf("talk to %s (%s)", target, topic)
	a.Params["target"] = target
	a.Params["topic"] = topic
	return a
}

func (p *Planner) battle(kind, detail string) *model.Action {
	a := model.NewAction(p.nextActionID("battle"), model.ActionBattle, 2.0)
	a.Description = fmt.Sprintf("battle (%s): %s", kind, detail)
	a.Params["kind"] = kind
	a.Params["detail"] = detail
	return a
}

func (p *Planner) menu(target, action string, extra map[string]interface{}) *model.Action {
	a := model.NewAction(p.nextActionID("menu"), model.ActionMenu, 0.5)
	a.Description = fmt.Sprintf("menu %s: %s", target, action)
	a.Params["target"] = target
	a.Params["action"] = action
	for k, v := range extra {
		a.Params[k] = v
	}
	return a
}

// Decompose builds the action list for a goal by dispatching on its
// variant, per the rules in spec.md §4.6.
func (p *Planner) Decompose(g *model.Goal, state *model.GameState) ([]*model.Action, error) {
	switch v := g.Variant.(type) {
	case model.DefeatGymVariant:
		return p.decomposeDefeatGym(v, state), nil
	case model.CatchPokemonVariant:
		return p.decomposeCatchPokemon(v), nil
	case model.HealPartyVariant:
		return p.decomposeHealParty(), nil
	case model.TrainPokemonVariant:
		return p.decomposeTrainPokemon(v, state), nil
	case model.ObtainItemVariant:
		return p.decomposeObtainItem(v), nil
	case model.ReachLocationVariant:
		return p.decomposeReachLocation(v), nil
	default:
		return nil, fmt.Errorf("goap: unknown goal variant for %s", g.GoalID)
	}
}

func (p *Planner) decomposeDefeatGym(v model.DefeatGymVariant, state *model.GameState) []*model.Action {
	var actions []*model.Action
	if state != nil && state.AvgPartyLevel() < float64(v.RequiredLevel) {
		trainGoal := model.TrainPokemonVariant{TargetLevel: v.RequiredLevel, TrainingLocation: v.GymLocation}
		actions = append(actions, p.decomposeTrainPokemon(trainGoal, state)...)
	}
	actions = append(actions,
		p.navigate(v.GymLocation),
		p.dialog(v.LeaderName, "gym_challenge"),
		p.battle("trainer", "gym_strategy"),
	)
	return actions
}

func (p *Planner) decomposeCatchPokemon(v model.CatchPokemonVariant) []*model.Action {
	var actions []*model.Action
	if v.Location != "" {
		actions = append(actions, p.navigate(v.Location))
	}
	actions = append(actions,
		p.battle("wild", "catch:"+v.Species),
		p.menu("bag", "use_item", map[string]interface{}{"item": "Poke Ball"}),
	)
	return actions
}

func (p *Planner) decomposeHealParty() []*model.Action {
	return []*model.Action{
		p.navigate("nearest:" + string(model.POIPokemonCenter)),
		p.dialog("Nurse", "heal"),
	}
}

func (p *Planner) decomposeTrainPokemon(v model.TrainPokemonVariant, state *model.GameState) []*model.Action {
	actions := []*model.Action{p.navigate(v.TrainingLocation)}
	currentLevel := 0.0
	if state != nil {
		currentLevel = state.AvgPartyLevel()
	}
	for i := 0; i < MaxTrainBattles && currentLevel < float64(v.TargetLevel); i++ {
		actions = append(actions, p.battle("wild", "train"))
		currentLevel++ // optimistic per-battle level estimate, bounded by MaxTrainBattles regardless
	}
	return actions
}

func (p *Planner) decomposeObtainItem(v model.ObtainItemVariant) []*model.Action {
	return []*model.Action{
		p.navigate("nearest:" + string(model.POIMart)),
		p.menu("shop", "buy", map[string]interface{}{"item": v.Item, "quantity": v.Quantity}),
	}
}

func (p *Planner) decomposeReachLocation(v model.ReachLocationVariant) []*model.Action {
	return []*model.Action{p.navigate(v.Location)}
}

// ValidatePlan walks a plan's actions in order, checking each
// precondition against state with the hypothetical application of
// every prior action's effects (spec.md §4.6). Returns every violated
// precondition, combined via multierr so callers can report them all
// at once instead of failing fast on the first.
func ValidatePlan(plan *model.Plan, state *model.GameState) (bool, error) {
	var accumulated []model.Effect
	hypothetical := applyHypotheticalEffects(state, accumulated)
	var errs error
	valid := true
	for i, action := range plan.Actions {
		for _, pre := range action.Preconditions {
			if !predicateHolds(pre, hypothetical) {
				valid = false
				errs = multierr.Append(errs, fmt.Errorf("action %d (%s): precondition %s %s %v not met", i, action.ActionID, pre.Field, pre.Op, pre.Value))
			}
		}
		accumulated = append(accumulated, action.Effects...)
		hypothetical = applyHypotheticalEffects(state, accumulated)
	}
	return valid, errs
}

// applyHypotheticalEffects returns a shallow field map representing
// state with a sequence of effects notionally applied, without
// mutating the real GameState.
func applyHypotheticalEffects(state *model.GameState, effects []model.Effect) map[string]interface{} {
	fields := map[string]interface{}{
		"location": state.Location,
		"money":    state.Money,
		"badges":   state.Badges,
		"is_battle": state.IsBattle,
	}
	for _, e := range effects {
		switch e.Op {
		case "set":
			fields[e.Field] = e.Value
		case "add":
			fields[e.Field] = toFloat(fields[e.Field]) + toFloat(e.Value)
		case "sub":
			fields[e.Field] = toFloat(fields[e.Field]) - toFloat(e.Value)
		}
	}
	return fields
}

func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case int:
		return float64(n)
	case float64:
		return n
	default:
		return 0
	}
}

func predicateHolds(pre model.Predicate, fields map[string]interface{}) bool {
	actual, ok := fields[pre.Field]
	if !ok {
		return false
	}
	switch pre.Op {
	case "==":
		return actual == pre.Value
	case "!=":
		return actual != pre.Value
	case ">=":
		return toFloat(actual) >= toFloat(pre.Value)
	case "<=":
		return toFloat(actual) <= toFloat(pre.Value)
	case ">":
		return toFloat(actual) > toFloat(pre.Value)
	case "<":
		return toFloat(actual) < toFloat(pre.Value)
	default:
		return false
	}
}
