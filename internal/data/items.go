// Package data owns the static, immutable domain tables: item
// catalogs, TM/HM moves, route needs, gym prep, evolution conditions
// and rarity weights. Everything here is loaded once from embedded
// TOML and handed out as read-only references, the way the teacher's
// own config package loads its game-data files (grounded on
// rdtc8822-debug-L1JGO-Whale's internal/config/config.go).
package data

import (
	_ "embed"
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/wojons/ptp-core/internal/model"
)

//go:embed items.toml
var itemsTOML []byte

// itemFile is the on-disk TOML shape; Validate builds the typed,
// deduplicated ItemData table from it.
type itemFile struct {
	Item []itemRow `toml:"item"`
}

type itemRow struct {
	Name              string   `toml:"name"`
	Category          string   `toml:"category"`
	BasePrice         int      `toml:"base_price"`
	HealingPower      int      `toml:"healing_power"`
	IsTM              bool     `toml:"is_tm"`
	CompatibleSpecies []string `toml:"compatible_species"`
}

// ItemCatalog is the static, deduplicated item table, keyed by
// model.ItemType.
type ItemCatalog struct {
	byType map[model.ItemType]model.ItemData
}

// LoadItems parses the embedded item table, rejecting duplicate entries
// per spec.md §9 ("construct the table from an explicit schema and
// treat duplicates as an error" — the original Python source's
// `_initialize_item_database` had duplicate rows and inconsistent
// tuple arities; we do not carry that defect forward).
func LoadItems() (*ItemCatalog, error) {
	var f itemFile
	if _, err := toml.Decode(string(itemsTOML), &f); err != nil {
		return nil, fmt.Errorf("data: decode items.toml: %w", err)
	}
	cat := &ItemCatalog{byType: make(map[model.ItemType]model.ItemData, len(f.Item))}
	for _, row := range f.Item {
		t := model.ItemType(row.Name)
		if _, dup := cat.byType[t]; dup {
			return nil, fmt.Errorf("data: duplicate item entry %q", row.Name)
		}
		cat.byType[t] = model.ItemData{
			Name:              row.Name,
			Category:          model.ItemCategory(row.Category),
			BasePrice:         row.BasePrice,
			HealingPower:      row.HealingPower,
			IsTM:              row.IsTM,
			CompatibleSpecies: row.CompatibleSpecies,
		}
	}
	return cat, nil
}

// Lookup returns the static data for an item type.
func (c *ItemCatalog) Lookup(t model.ItemType) (model.ItemData, bool) {
	d, ok := c.byType[t]
	return d, ok
}

// Len reports how many distinct items the catalog holds.
func (c *ItemCatalog) Len() int { return len(c.byType) }

// All returns every catalog entry; callers must not mutate the
// returned slice's contents as shared backing fields.
func (c *ItemCatalog) All() []model.ItemData {
	out := make([]model.ItemData, 0, len(c.byType))
	for _, d := range c.byType {
		out = append(out, d)
	}
	return out
}
