// Package typechart owns the single, immutable 18x18 type-effectiveness
// table. It is built once and consumers only ever hold a read-only
// reference, per spec.md §9's "global/module-level table" design note.
package typechart

// Type18 enumerates the eighteen elemental types in a fixed, indexable
// order so the table can be a plain 2D array rather than a map.
type Type18 string

const (
	Normal   Type18 = "normal"
	Fire     Type18 = "fire"
	Water    Type18 = "water"
	Electric Type18 = "electric"
	Grass    Type18 = "grass"
	Ice      Type18 = "ice"
	Fighting Type18 = "fighting"
	Poison   Type18 = "poison"
	Ground   Type18 = "ground"
	Flying   Type18 = "flying"
	Psychic  Type18 = "psychic"
	Bug      Type18 = "bug"
	Rock     Type18 = "rock"
	Ghost    Type18 = "ghost"
	Dragon   Type18 = "dragon"
	Dark     Type18 = "dark"
	Steel    Type18 = "steel"
	Fairy    Type18 = "fairy"
)

// Order fixes the row/column index of each type in the dense table.
var Order = []Type18{
	Normal, Fire, Water, Electric, Grass, Ice, Fighting, Poison, Ground,
	Flying, Psychic, Bug, Rock, Ghost, Dragon, Dark, Steel, Fairy,
}

var indexOf = buildIndex()

func buildIndex() map[Type18]int {
	m := make(map[Type18]int, len(Order))
	for i, t := range Order {
		m[t] = i
	}
	return m
}

// Chart is the dense 18x18 single-defender multiplier table. Values are
// drawn from {0.0, 0.5, 1.0, 2.0} per spec.md §8.
type Chart struct {
	table [18][18]float64
}

// New builds the canonical Gen-III-shaped effectiveness chart.
func New() *Chart {
	c := &Chart{}
	for i := range c.table {
		for j := range c.table[i] {
			c.table[i][j] = 1.0
		}
	}
	for _, e := range entries {
		ai, aok := indexOf[e.attacker]
		di, dok := indexOf[e.defender]
		if !aok || !dok {
			continue
		}
		c.table[ai][di] = e.multiplier
	}
	return c
}

type entry struct {
	attacker, defender Type18
	multiplier         float64
}

// entries lists only the non-1.0 relationships; everything else defaults
// to neutral (1.0).
var entries = []entry{
	{Normal, Rock, 0.5}, {Normal, Steel, 0.5}, {Normal, Ghost, 0.0},
	{Fire, Water, 0.5}, {Fire, Grass, 2.0}, {Fire, Fire, 0.5}, {Fire, Ice, 2.0}, {Fire, Bug, 2.0}, {Fire, Rock, 0.5}, {Fire, Dragon, 0.5}, {Fire, Steel, 2.0},
	{Water, Fire, 2.0}, {Water, Water, 0.5}, {Water, Grass, 0.5}, {Water, Ground, 2.0}, {Water, Rock, 2.0}, {Water, Dragon, 0.5},
	{Electric, Water, 2.0}, {Electric, Electric, 0.5}, {Electric, Grass, 0.5}, {Electric, Ground, 0.0}, {Electric, Flying, 2.0}, {Electric, Dragon, 0.5},
	{Grass, Fire, 0.5}, {Grass, Water, 2.0}, {Grass, Grass, 0.5}, {Grass, Poison, 0.5}, {Grass, Ground, 2.0}, {Grass, Flying, 0.5}, {Grass, Bug, 0.5}, {Grass, Rock, 2.0}, {Grass, Dragon, 0.5}, {Grass, Steel, 0.5},
	{Ice, Fire, 0.5}, {Ice, Water, 0.5}, {Ice, Grass, 2.0}, {Ice, Ice, 0.5}, {Ice, Ground, 2.0}, {Ice, Flying, 2.0}, {Ice, Dragon, 2.0}, {Ice, Steel, 0.5},
	{Fighting, Normal, 2.0}, {Fighting, Ice, 2.0}, {Fighting, Poison, 0.5}, {Fighting, Flying, 0.5}, {Fighting, Psychic, 0.5}, {Fighting, Bug, 0.5}, {Fighting, Rock, 2.0}, {Fighting, Ghost, 0.0}, {Fighting, Dark, 2.0}, {Fighting, Steel, 2.0}, {Fighting, Fairy, 0.5},
	{Poison, Grass, 2.0}, {Poison, Poison, 0.5}, {Poison, Ground, 0.5}, {Poison, Rock, 0.5}, {Poison, Ghost, 0.5}, {Poison, Steel, 0.0}, {Poison, Fairy, 2.0},
	{Ground, Fire, 2.0}, {Ground, Electric, 2.0}, {Ground, Grass, 0.5}, {Ground, Poison, 2.0}, {Ground, Flying, 0.0}, {Ground, Bug, 0.5}, {Ground, Rock, 2.0}, {Ground, Steel, 2.0},
	{Flying, Electric, 0.5}, {Flying, Grass, 2.0}, {Flying, Fighting, 2.0}, {Flying, Bug, 2.0}, {Flying, Rock, 0.5}, {Flying, Steel, 0.5},
	{Psychic, Fighting, 2.0}, {Psychic, Poison, 2.0}, {Psychic, Psychic, 0.5}, {Psychic, Dark, 0.0}, {Psychic, Steel, 0.5},
	{Bug, Fire, 0.5}, {Bug, Grass, 2.0}, {Bug, Fighting, 0.5}, {Bug, Poison, 0.5}, {Bug, Flying, 0.5}, {Bug, Psychic, 2.0}, {Bug, Ghost, 0.5}, {Bug, Dark, 2.0}, {Bug, Steel, 0.5}, {Bug, Fairy, 0.5},
	{Rock, Fire, 2.0}, {Rock, Ice, 2.0}, {Rock, Fighting, 0.5}, {Rock, Ground, 0.5}, {Rock, Flying, 2.0}, {Rock, Bug, 2.0}, {Rock, Steel, 0.5},
	{Ghost, Normal, 0.0}, {Ghost, Psychic, 2.0}, {Ghost, Ghost, 2.0}, {Ghost, Dark, 0.5},
	{Dragon, Dragon, 2.0}, {Dragon, Steel, 0.5}, {Dragon, Fairy, 0.0},
	{Dark, Fighting, 0.5}, {Dark, Psychic, 2.0}, {Dark, Ghost, 2.0}, {Dark, Dark, 0.5}, {Dark, Fairy, 0.5},
	{Steel, Fire, 0.5}, {Steel, Water, 0.5}, {Steel, Electric, 0.5}, {Steel, Ice, 2.0}, {Steel, Rock, 2.0}, {Steel, Steel, 0.5}, {Steel, Fairy, 2.0},
	{Fairy, Fighting, 2.0}, {Fairy, Poison, 0.5}, {Fairy, Dragon, 2.0}, {Fairy, Dark, 2.0}, {Fairy, Steel, 0.5},
}

// Single returns the attacker-vs-defender multiplier, one of
// {0.0, 0.5, 1.0, 2.0}.
func (c *Chart) Single(attacker, defender Type18) float64 {
	ai, aok := indexOf[attacker]
	di, dok := indexOf[defender]
	if !aok || !dok {
		return 1.0
	}
	return c.table[ai][di]
}

// Dual returns the product of the per-type multipliers against a
// (primary, secondary) defender tuple; secondary == "" is treated as no
// second type. The result is one of
// {0, 0.25, 0.5, 1.0, 2.0, 4.0}.
func (c *Chart) Dual(attacker Type18, primary, secondary Type18) float64 {
	mult := c.Single(attacker, primary)
	if secondary != "" && secondary != primary {
		mult *= c.Single(attacker, secondary)
	}
	return mult
}

// IsImmune reports a dual-defender multiplier of exactly zero.
func (c *Chart) IsImmune(attacker Type18, primary, secondary Type18) bool {
	return c.Dual(attacker, primary, secondary) == 0
}

// IsSuperEffective reports a dual-defender multiplier greater than 1.0.
func (c *Chart) IsSuperEffective(attacker Type18, primary, secondary Type18) bool {
	return c.Dual(attacker, primary, secondary) > 1.0
}
