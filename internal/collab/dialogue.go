package collab

import "strings"

// MenuType enumerates the menu screens the dialogue/menu adaptor can
// detect and navigate; coordinate tables below are fixed per type
// (spec.md §6: "menu coordinate tables are fixed per MenuType").
type MenuType string

const (
	MenuMain     MenuType = "main"
	MenuBag      MenuType = "bag"
	MenuPokemon  MenuType = "pokemon"
	MenuShop     MenuType = "shop"
	MenuPC       MenuType = "pc"
	MenuBattle   MenuType = "battle"
)

// menuCoordinates maps each MenuType to a fixed option->button-sequence
// table. These are the canonical cursor paths for a freshly opened
// menu of that type; NavigateToOption looks up the target option here.
var menuCoordinates = map[MenuType]map[string][]Button{
	MenuMain: {
		"pokemon": {ButtonDown, ButtonA},
		"bag":     {ButtonDown, ButtonDown, ButtonA},
		"save":    {ButtonDown, ButtonDown, ButtonDown, ButtonA},
		"exit":    {ButtonB},
	},
	MenuBag: {
		"use_item": {ButtonA},
		"toss":     {ButtonDown, ButtonA},
		"exit":     {ButtonB},
	},
	MenuPokemon: {
		"summary": {ButtonA},
		"switch":  {ButtonDown, ButtonA},
		"item":    {ButtonDown, ButtonDown, ButtonA},
		"exit":    {ButtonB},
	},
	MenuShop: {
		"buy":  {ButtonA},
		"sell": {ButtonDown, ButtonA},
		"exit": {ButtonB},
	},
	MenuPC: {
		"withdraw": {ButtonA},
		"deposit":  {ButtonDown, ButtonA},
		"exit":     {ButtonB},
	},
	MenuBattle: {
		"fight":  {ButtonA},
		"bag":    {ButtonRight, ButtonA},
		"pokemon": {ButtonDown, ButtonA},
		"run":    {ButtonDown, ButtonRight, ButtonA},
	},
}

// menuKeywords is scanned case-insensitively by DetectMenu against raw
// OCR'd screen text to guess the active MenuType: the type with the
// most keyword hits wins, ties going to the earlier type in the const
// block above.
var menuKeywords = map[MenuType][]string{
	MenuMain:    {"pokedex", "pokemon", "bag", "save"},
	MenuBag:     {"use", "toss", "items"},
	MenuPokemon: {"summary", "switch", "cancel"},
	MenuShop:    {"buy", "sell", "how many"},
	MenuPC:      {"withdraw", "deposit", "box"},
	MenuBattle:  {"fight", "run", "pkmn"},
}

// DialogEntry is a parsed line of in-game dialogue.
type DialogEntry struct {
	Speaker string
	Text    string
	Topic   string
}

// DialogueAdaptor parses dialogue text and navigates fixed menu
// coordinate tables (spec.md §6).
type DialogueAdaptor interface {
	ParseDialog(text string, context map[string]string) DialogEntry
	DetectMenu(text string) (MenuType, bool)
	NavigateToOption(menuState MenuType, target string) (bool, []Button)
}

// DefaultDialogueAdaptor implements DialogueAdaptor with the fixed
// keyword/coordinate tables above; a vision-backed adaptor can layer
// real OCR in front of the same NavigateToOption coordinate lookup.
type DefaultDialogueAdaptor struct{}

// NewDefaultDialogueAdaptor builds a dialogue adaptor over the fixed
// coordinate tables.
func NewDefaultDialogueAdaptor() DefaultDialogueAdaptor { return DefaultDialogueAdaptor{} }

func (DefaultDialogueAdaptor) ParseDialog(text string, context map[string]string) DialogEntry {
	entry := DialogEntry{Text: strings.TrimSpace(text)}
	if speaker, ok := context["speaker"]; ok {
		entry.Speaker = speaker
	}
	if topic, ok := context["topic"]; ok {
		entry.Topic = topic
	}
	return entry
}

func (DefaultDialogueAdaptor) DetectMenu(text string) (MenuType, bool) {
	lower := strings.ToLower(text)
	order := []MenuType{MenuMain, MenuBag, MenuPokemon, MenuShop, MenuPC, MenuBattle}
	best, bestHits := MenuType(""), 0
	for _, menu := range order {
		hits := 0
		for _, kw := range menuKeywords[menu] {
			if strings.Contains(lower, kw) {
				hits++
			}
		}
		if hits > bestHits {
			best, bestHits = menu, hits
		}
	}
	return best, bestHits > 0
}

func (DefaultDialogueAdaptor) NavigateToOption(menuState MenuType, target string) (bool, []Button) {
	table, ok := menuCoordinates[menuState]
	if !ok {
		return false, nil
	}
	seq, ok := table[target]
	if !ok {
		return false, nil
	}
	return true, seq
}
