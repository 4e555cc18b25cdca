package data

import (
	_ "embed"
	"fmt"
)

//go:embed species.toml
var speciesTOML []byte

//go:embed evolution.toml
var evolutionTOML []byte

//go:embed preevolutionmoves.toml
var preEvoMovesTOML []byte

// SpeciesInfo is the static rarity/typing record for one species.
type SpeciesInfo struct {
	Name          string
	RarityTier    RarityTier
	PrimaryType   string
	SecondaryType string
}

// EvolutionCondition describes what a species needs to evolve.
type EvolutionCondition struct {
	Species     string
	EvolvesTo   string
	Condition   string // "level" | "item" | "friendship" | "trade"
	Level       int
	Item        string
	Friendship  int
}

// PreEvolutionMove is the move a species would learn if it stayed
// unevolved a while longer.
type PreEvolutionMove struct {
	Species    string
	Move       string
	Power      int
	LearnLevel int
}

// SpeciesCatalog bundles the three species-keyed tables the entity
// package consumes.
type SpeciesCatalog struct {
	species    map[string]SpeciesInfo
	evolutions map[string]EvolutionCondition
	preMoves   map[string]PreEvolutionMove
}

type speciesFile struct {
	Species []struct {
		Name          string `toml:"name"`
		RarityTier    string `toml:"rarity_tier"`
		PrimaryType   string `toml:"primary_type"`
		SecondaryType string `toml:"secondary_type"`
	} `toml:"species"`
}

type evolutionFile struct {
	Evolution []struct {
		Species    string `toml:"species"`
		EvolvesTo  string `toml:"evolves_to"`
		Condition  string `toml:"condition"`
		Level      int    `toml:"level"`
		Item       string `toml:"item"`
		Friendship int    `toml:"friendship"`
	} `toml:"evolution"`
}

type preEvoMoveFile struct {
	Move []struct {
		Species    string `toml:"species"`
		Move       string `toml:"move"`
		Power      int    `toml:"power"`
		LearnLevel int    `toml:"learn_level"`
	} `toml:"move"`
}

// LoadSpecies parses the embedded species, evolution and pre-evolution
// move tables into one catalog.
func LoadSpecies() (*SpeciesCatalog, error) {
	cat := &SpeciesCatalog{
		species:    make(map[string]SpeciesInfo),
		evolutions: make(map[string]EvolutionCondition),
		preMoves:   make(map[string]PreEvolutionMove),
	}

	var sf speciesFile
	if _, err := tomlDecode(speciesTOML, &sf); err != nil {
		return nil, fmt.Errorf("data: decode species.toml: %w", err)
	}
	for _, row := range sf.Species {
		if _, dup := cat.species[row.Name]; dup {
			return nil, fmt.Errorf("data: duplicate species entry %q", row.Name)
		}
		cat.species[row.Name] = SpeciesInfo{
			Name:          row.Name,
			RarityTier:    RarityTier(row.RarityTier),
			PrimaryType:   row.PrimaryType,
			SecondaryType: row.SecondaryType,
		}
	}

	var ef evolutionFile
	if _, err := tomlDecode(evolutionTOML, &ef); err != nil {
		return nil, fmt.Errorf("data: decode evolution.toml: %w", err)
	}
	for _, row := range ef.Evolution {
		if _, dup := cat.evolutions[row.Species]; dup {
			return nil, fmt.Errorf("data: duplicate evolution entry %q", row.Species)
		}
		cat.evolutions[row.Species] = EvolutionCondition{
			Species:    row.Species,
			EvolvesTo:  row.EvolvesTo,
			Condition:  row.Condition,
			Level:      row.Level,
			Item:       row.Item,
			Friendship: row.Friendship,
		}
	}

	var pf preEvoMoveFile
	if _, err := tomlDecode(preEvoMovesTOML, &pf); err != nil {
		return nil, fmt.Errorf("data: decode preevolutionmoves.toml: %w", err)
	}
	for _, row := range pf.Move {
		if _, dup := cat.preMoves[row.Species]; dup {
			return nil, fmt.Errorf("data: duplicate pre-evolution move entry %q", row.Species)
		}
		cat.preMoves[row.Species] = PreEvolutionMove{
			Species:    row.Species,
			Move:       row.Move,
			Power:      row.Power,
			LearnLevel: row.LearnLevel,
		}
	}

	return cat, nil
}

// Species returns static info for a species name.
func (c *SpeciesCatalog) Species(name string) (SpeciesInfo, bool) {
	s, ok := c.species[name]
	return s, ok
}

// Evolution returns the evolution condition for a species, if any.
func (c *SpeciesCatalog) Evolution(species string) (EvolutionCondition, bool) {
	e, ok := c.evolutions[species]
	return e, ok
}

// PreEvolutionMove returns the held-back move for a species, if any.
func (c *SpeciesCatalog) PreEvolutionMove(species string) (PreEvolutionMove, bool) {
	m, ok := c.preMoves[species]
	return m, ok
}
