package data

import (
	_ "embed"
	"fmt"
)

//go:embed shopping.toml
var shoppingTOML []byte

// PriorityTier is the shopping heuristic's item-urgency ladder.
type PriorityTier string

const (
	PriorityCritical PriorityTier = "CRITICAL"
	PriorityHigh     PriorityTier = "HIGH"
	PriorityMedium   PriorityTier = "MEDIUM"
	PriorityLow      PriorityTier = "LOW"
)

// Rank gives CRITICAL the lowest number so a priority sort (ascending)
// puts it first.
func (p PriorityTier) Rank() int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}

// RouteNeeds is the expected-encounter profile for one route, driving
// the shopping heuristic's pre-route recommendations.
type RouteNeeds struct {
	Name                string
	ExpectedLevel       int
	EncounterType        string
	RecommendedPotions  int
	RecommendedBalls    int
}

// GymPrep is the recommended loadout ahead of one gym leader.
type GymPrep struct {
	Name                    string
	Location                string
	LeaderLevel             int
	LeaderType              string
	RecommendedPotions      int
	RecommendedStatusCures  int
}

// ShoppingCatalog bundles route needs, gym prep, essentials lists and
// the item-priority table.
type ShoppingCatalog struct {
	routes     map[string]RouteNeeds
	gyms       map[string]GymPrep
	essEarly   []string
	essLate    []string
	priority   map[string]PriorityTier
}

type shoppingFile struct {
	Route []struct {
		Name                string `toml:"name"`
		ExpectedLevel       int    `toml:"expected_level"`
		EncounterType       string `toml:"encounter_type"`
		RecommendedPotions  int    `toml:"recommended_potions"`
		RecommendedBalls    int    `toml:"recommended_balls"`
	} `toml:"route"`
	Gym []struct {
		Name                   string `toml:"name"`
		Location               string `toml:"location"`
		LeaderLevel            int    `toml:"leader_level"`
		LeaderType             string `toml:"leader_type"`
		RecommendedPotions     int    `toml:"recommended_potions"`
		RecommendedStatusCures int    `toml:"recommended_status_cures"`
	} `toml:"gym"`
	Essentials struct {
		Early []string `toml:"early"`
		Late  []string `toml:"late"`
	} `toml:"essentials"`
	Priority []struct {
		Item string `toml:"item"`
		Tier string `toml:"tier"`
	} `toml:"priority"`
}

// LoadShopping parses the embedded route/gym/essentials/priority
// tables.
func LoadShopping() (*ShoppingCatalog, error) {
	var f shoppingFile
	if _, err := tomlDecode(shoppingTOML, &f); err != nil {
		return nil, fmt.Errorf("data: decode shopping.toml: %w", err)
	}
	cat := &ShoppingCatalog{
		routes:   make(map[string]RouteNeeds, len(f.Route)),
		gyms:     make(map[string]GymPrep, len(f.Gym)),
		priority: make(map[string]PriorityTier, len(f.Priority)),
		essEarly: f.Essentials.Early,
		essLate:  f.Essentials.Late,
	}
	for _, r := range f.Route {
		if _, dup := cat.routes[r.Name]; dup {
			return nil, fmt.Errorf("data: duplicate route entry %q", r.Name)
		}
		cat.routes[r.Name] = RouteNeeds{
			Name:               r.Name,
			ExpectedLevel:      r.ExpectedLevel,
			EncounterType:      r.EncounterType,
			RecommendedPotions: r.RecommendedPotions,
			RecommendedBalls:   r.RecommendedBalls,
		}
	}
	for _, g := range f.Gym {
		if _, dup := cat.gyms[g.Name]; dup {
			return nil, fmt.Errorf("data: duplicate gym entry %q", g.Name)
		}
		cat.gyms[g.Name] = GymPrep{
			Name:                   g.Name,
			Location:               g.Location,
			LeaderLevel:            g.LeaderLevel,
			LeaderType:             g.LeaderType,
			RecommendedPotions:     g.RecommendedPotions,
			RecommendedStatusCures: g.RecommendedStatusCures,
		}
	}
	for _, p := range f.Priority {
		if _, dup := cat.priority[p.Item]; dup {
			return nil, fmt.Errorf("data: duplicate priority entry %q", p.Item)
		}
		cat.priority[p.Item] = PriorityTier(p.Tier)
	}
	return cat, nil
}

// Route returns the needs profile for a named route.
func (c *ShoppingCatalog) Route(name string) (RouteNeeds, bool) {
	r, ok := c.routes[name]
	return r, ok
}

// Gym returns the prep profile for a named gym leader.
func (c *ShoppingCatalog) Gym(name string) (GymPrep, bool) {
	g, ok := c.gyms[name]
	return g, ok
}

// Essentials returns the early- or late-game baseline item list.
func (c *ShoppingCatalog) Essentials(lateGame bool) []string {
	if lateGame {
		return c.essLate
	}
	return c.essEarly
}

// Priority returns the shopping-priority tier for an item name,
// defaulting to LOW when the item is not in the table.
func (c *ShoppingCatalog) Priority(item string) PriorityTier {
	if t, ok := c.priority[item]; ok {
		return t
	}
	return PriorityLow
}
