package loop

import (
	"context"

	"github.com/wojons/ptp-core/internal/collab"
	"github.com/wojons/ptp-core/internal/model"
)

// directionOf returns the button that moves from a to b, assuming
// they're orthogonally adjacent; returns ("", false) otherwise.
func directionOf(a, b model.Position) (collab.Button, bool) {
	switch {
	case b.MapID == a.MapID && b.Y == a.Y-1 && b.X == a.X:
		return collab.ButtonUp, true
	case b.MapID == a.MapID && b.Y == a.Y+1 && b.X == a.X:
		return collab.ButtonDown, true
	case b.MapID == a.MapID && b.X == a.X-1 && b.Y == a.Y:
		return collab.ButtonLeft, true
	case b.MapID == a.MapID && b.X == a.X+1 && b.Y == a.Y:
		return collab.ButtonRight, true
	default:
		return "", false
	}
}

// ActionDispatcher implements goap.Executor by translating a decomposed
// Action into Emulator button presses and dialogue/menu navigation
// (spec.md §5's action-dispatch tick stage).
type ActionDispatcher struct {
	Emulator collab.Emulator
	Dialogue collab.DialogueAdaptor
	Ctx      context.Context
}

// NewActionDispatcher wires an emulator and dialogue adaptor together.
func NewActionDispatcher(ctx context.Context, emulator collab.Emulator, dialogue collab.DialogueAdaptor) *ActionDispatcher {
	return &ActionDispatcher{Emulator: emulator, Dialogue: dialogue, Ctx: ctx}
}

// Execute dispatches one Action per its Type, returning whether the
// dispatch itself succeeded (precondition/effect bookkeeping is the
// planner/monitor's job, not the dispatcher's).
func (d *ActionDispatcher) Execute(action *model.Action, state *model.GameState) bool {
	switch action.Type {
	case model.ActionNavigation:
		return d.dispatchNavigation(action)
	case model.ActionDialog:
		return d.dispatchDialog(action)
	case model.ActionMenu:
		return d.dispatchMenu(action)
	case model.ActionBattle:
		return d.dispatchBattle(action)
	case model.ActionWait:
		return true
	default:
		return false
	}
}

func (d *ActionDispatcher) dispatchNavigation(action *model.Action) bool {
	path, ok := action.Params["path"].([]model.Position)
	if !ok || len(path) < 2 {
		// No concrete path supplied (e.g. a symbolic "nearest:pokemon_center"
		// target the caller resolves elsewhere); treat as a no-op success.
		return true
	}
	for i := 1; i < len(path); i++ {
		button, ok := directionOf(path[i-1], path[i])
		if !ok {
			return false
		}
		if err := d.Emulator.PressButton(d.Ctx, button); err != nil {
			return false
		}
	}
	return true
}

func (d *ActionDispatcher) dispatchDialog(action *model.Action) bool {
	if err := d.Emulator.PressButton(d.Ctx, collab.ButtonA); err != nil {
		return false
	}
	topic, _ := action.Params["topic"].(string)
	d.Dialogue.ParseDialog(action.Description, map[string]string{"topic": topic})
	return true
}

func (d *ActionDispatcher) dispatchMenu(action *model.Action) bool {
	menuTarget, _ := action.Params["target"].(string)
	option, _ := action.Params["action"].(string)
	ok, sequence := d.Dialogue.NavigateToOption(collab.MenuType(menuTarget), option)
	if !ok {
		return false
	}
	for _, button := range sequence {
		if err := d.Emulator.PressButton(d.Ctx, button); err != nil {
			return false
		}
	}
	return true
}

func (d *ActionDispatcher) dispatchBattle(action *model.Action) bool {
	ok, sequence := d.Dialogue.NavigateToOption(collab.MenuBattle, "fight")
	if !ok {
		return true // battle menu navigation is best-effort; the battle itself is resolved by the emulator
	}
	for _, button := range sequence {
		if err := d.Emulator.PressButton(d.Ctx, button); err != nil {
			return false
		}
	}
	return true
}
