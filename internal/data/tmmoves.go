package data

import (
	_ "embed"
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/wojons/ptp-core/internal/model"
)

//go:embed tmmoves.toml
var tmMovesTOML []byte

type tmMoveFile struct {
	Move []tmMoveRow `toml:"move"`
}

type tmMoveRow struct {
	Item     string `toml:"item"`
	Name     string `toml:"name"`
	Type     string `toml:"type"`
	Power    int    `toml:"power"`
	Accuracy int    `toml:"accuracy"`
	Category string `toml:"category"`
	HmMove   string `toml:"hm_move"`
}

// TMHMEntry pairs the move a TM/HM teaches with the HM capability it
// grants, if any.
type TMHMEntry struct {
	Item   model.ItemType
	Move   model.Move
	HmMove model.HmMove // "" for ordinary TMs
}

// TMHMCatalog is the static TM/HM move table, keyed by item name.
type TMHMCatalog struct {
	byItem map[model.ItemType]TMHMEntry
	tmOnly []TMHMEntry
	hmOnly []TMHMEntry
}

// LoadTMHMMoves parses the embedded TM/HM move table.
func LoadTMHMMoves() (*TMHMCatalog, error) {
	var f tmMoveFile
	if _, err := toml.Decode(string(tmMovesTOML), &f); err != nil {
		return nil, fmt.Errorf("data: decode tmmoves.toml: %w", err)
	}
	cat := &TMHMCatalog{byItem: make(map[model.ItemType]TMHMEntry, len(f.Move))}
	for _, row := range f.Move {
		it := model.ItemType(row.Item)
		if _, dup := cat.byItem[it]; dup {
			return nil, fmt.Errorf("data: duplicate tm/hm entry %q", row.Item)
		}
		entry := TMHMEntry{
			Item: it,
			Move: model.Move{
				ID:       row.Item,
				Name:     row.Name,
				Type:     row.Type,
				Power:    row.Power,
				Accuracy: row.Accuracy,
				MaxPP:    defaultPPFor(row.Category),
				Category: model.MoveCategory(row.Category),
			},
			HmMove: model.HmMove(row.HmMove),
		}
		entry.Move.CurrentPP = entry.Move.MaxPP
		cat.byItem[it] = entry
		if entry.HmMove != "" {
			cat.hmOnly = append(cat.hmOnly, entry)
		} else {
			cat.tmOnly = append(cat.tmOnly, entry)
		}
	}
	if len(cat.hmOnly) != 7 {
		return nil, fmt.Errorf("data: expected 7 HM entries, got %d", len(cat.hmOnly))
	}
	if len(cat.tmOnly) != 50 {
		return nil, fmt.Errorf("data: expected 50 TM entries, got %d", len(cat.tmOnly))
	}
	return cat, nil
}

func defaultPPFor(category string) int {
	if category == "status" {
		return 20
	}
	return 15
}

// Lookup returns the move metadata taught by a TM/HM item.
func (c *TMHMCatalog) Lookup(item model.ItemType) (TMHMEntry, bool) {
	e, ok := c.byItem[item]
	return e, ok
}

// HMs returns every HM entry, in catalog order.
func (c *TMHMCatalog) HMs() []TMHMEntry { return c.hmOnly }

// TMs returns every TM entry, in catalog order.
func (c *TMHMCatalog) TMs() []TMHMEntry { return c.tmOnly }
