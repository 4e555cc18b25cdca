package entity

import (
	"math"

	"github.com/wojons/ptp-core/internal/data"
	"github.com/wojons/ptp-core/internal/model"
	"github.com/wojons/ptp-core/internal/typechart"
)

// BenchStatus is the carry-score band a Pokemon falls into.
type BenchStatus string

const (
	BenchProtect        BenchStatus = "protect"
	BenchConditional     BenchStatus = "conditional"
	BenchBench          BenchStatus = "bench"
	BenchImmediateBench BenchStatus = "immediate_bench"
)

// CarryContext is everything the carry-score formula needs beyond the
// Pokemon itself: the rest of the party (for type-uniqueness), the
// upcoming boss's types (for coverage credit), and the expected wild
// encounter level for this point in the run.
type CarryContext struct {
	PartyOthers          []*model.PokemonData
	UpcomingBossTypes    []typechart.Type18
	ExpectedEncounterLevel int
}

// CarryScoreCalculator is the algorithmic heart of bench decisions
// (spec.md §4.4): a per-Pokemon scalar built from level relevance,
// type uniqueness, move coverage and stat efficiency, then scaled by
// rarity and sentimental multipliers.
type CarryScoreCalculator struct {
	chart   *typechart.Chart
	species *data.SpeciesCatalog
}

// NewCarryScoreCalculator wires the type chart and species catalog
// needed to score a Pokemon.
func NewCarryScoreCalculator(chart *typechart.Chart, species *data.SpeciesCatalog) *CarryScoreCalculator {
	return &CarryScoreCalculator{chart: chart, species: species}
}

// CarryScoreResult is the breakdown returned alongside the final
// score, useful for explaining a bench decision.
type CarryScoreResult struct {
	LevelRelevance   float64
	TypeUniqueness   float64
	MoveCoverage     float64
	StatEfficiency   float64
	Base             float64
	RarityMultiplier float64
	SentimentalMult  float64
	FinalScore       float64
	BenchStatus      BenchStatus
}

// Score computes the full carry-score breakdown for p within ctx.
func (c *CarryScoreCalculator) Score(p *model.PokemonData, ctx CarryContext) CarryScoreResult {
	level := c.levelRelevance(p.Level, ctx.ExpectedEncounterLevel)
	typeUniq := c.typeUniqueness(p, ctx)
	coverage := c.moveCoverage(p, ctx)
	statEff := c.statEfficiency(p, ctx.ExpectedEncounterLevel)

	base := 0.25*level + 0.30*typeUniq + 0.25*coverage + 0.20*statEff

	rarity := c.rarityMultiplier(p.SpeciesID)
	sentimental := sentimentalMultiplier(p)

	final := base * rarity * sentimental

	return CarryScoreResult{
		LevelRelevance:   level,
		TypeUniqueness:   typeUniq,
		MoveCoverage:     coverage,
		StatEfficiency:   statEff,
		Base:             base,
		RarityMultiplier: rarity,
		SentimentalMult:  sentimental,
		FinalScore:       final,
		BenchStatus:      benchStatus(final),
	}
}

// levelRelevance scores the signed difference between the Pokemon's
// level and the expected encounter level for this point in the run:
// exactly on pace scores highest, being over-leveled degrades slower
// than being under-leveled (spec.md §4.4, component 1).
func (c *CarryScoreCalculator) levelRelevance(level, expected int) float64 {
	const ceiling = 25.0
	if expected <= 0 {
		return 15.0
	}

	diff := level - expected
	var score float64
	switch {
	case diff == 0:
		score = 22.0
	case diff > 0:
		switch {
		case diff <= 3:
			score = 22.0 - float64(diff)*0.5
		case diff <= 8:
			score = 20.0 - float64(diff)*0.3
		default:
			score = 15.0 - float64(diff)*0.1
			if score < 8.0 {
				score = 8.0
			}
		}
	default:
		deficit := -diff
		switch {
		case deficit <= 2:
			score = 18.0 - float64(deficit)*1.5
		case deficit <= 5:
			score = 12.0 - float64(deficit)*0.8
		default:
			score = 5.0 - float64(deficit)*0.2
			if score < 2.0 {
				score = 2.0
			}
		}
	}
	if score < 0 {
		score = 0
	}
	if score > ceiling {
		score = ceiling
	}
	return score
}

// typeUniqueness rewards types the rest of the party doesn't carry and
// boss-type coverage (spec.md §4.4, component 2).
func (c *CarryScoreCalculator) typeUniqueness(p *model.PokemonData, ctx CarryContext) float64 {
	const ceiling = 30.0
	held := make(map[typechart.Type18]bool)
	for _, other := range ctx.PartyOthers {
		if other == nil || other == p {
			continue
		}
		held[typechart.Type18(other.PrimaryType)] = true
		if other.SecondaryType != "" {
			held[typechart.Type18(other.SecondaryType)] = true
		}
	}

	score := 0.0
	myTypes := []typechart.Type18{typechart.Type18(p.PrimaryType)}
	if p.SecondaryType != "" {
		myTypes = append(myTypes, typechart.Type18(p.SecondaryType))
	}
	for _, t := range myTypes {
		if !held[t] {
			score += 8
		}
		score += data.QualityWeight(t) * 4
	}

	coverage := 0.0
	for _, boss := range ctx.UpcomingBossTypes {
		for _, t := range myTypes {
			if c.chart.IsSuperEffective(t, boss, "") {
				coverage += 2
				break
			}
		}
	}
	if coverage > 6 {
		coverage = 6
	}
	score += coverage

	if score > ceiling {
		score = ceiling
	}
	return score
}

// moveCoverage rewards super-effective move spread against the rest of
// the type chart, with STAB and power bonuses (spec.md §4.4, component
// 3).
func (c *CarryScoreCalculator) moveCoverage(p *model.PokemonData, ctx CarryContext) float64 {
	const ceiling = 25.0
	score := 0.0
	for _, m := range p.Moves {
		if m.Category == model.Status || m.CurrentPP <= 0 {
			continue
		}
		moveScore := 0.0
		for _, defType := range typechart.Order {
			mult := c.chart.Single(typechart.Type18(m.Type), defType)
			switch {
			case mult > 1.0:
				moveScore += 3.0
			case mult == 1.0:
				moveScore += 0.5
			case mult >= 0.5:
				moveScore += 0.1
			}
		}
		if m.Power >= 90 {
			moveScore += 1
		} else if m.Power >= 70 {
			moveScore += 0.5
		}
		stab := m.Type == p.PrimaryType || (p.SecondaryType != "" && m.Type == p.SecondaryType)
		if stab {
			moveScore *= 1.2
		}
		score += moveScore
	}
	if score > ceiling {
		score = ceiling
	}
	return score
}

// statEfficiency compares current DPS potential to what the species'
// own base stats would produce at the expected encounter level (spec.md
// §4.4, component 4).
func (c *CarryScoreCalculator) statEfficiency(p *model.PokemonData, expectedLevel int) float64 {
	const ceiling = 20.0
	current := DPSPotential(p)
	expected := expectedDPS(p, expectedLevel)
	if expected <= 0 {
		expected = 1
	}
	ratio := current / expected

	var score float64
	switch {
	case ratio < 0.6:
		score = 20 * ratio * 0.5
	case ratio < 0.8:
		score = 20 * ratio * 0.8
	default:
		score = 20 * ratio
		if score > 30 {
			score = 30
		}
	}
	if score < 0 {
		score = 0
	}
	if score > ceiling {
		score = ceiling
	}
	return score
}

// expectedDPS derives the baseline from the Pokemon's own species base
// attack/special-attack and speed stats (its "potential" at this
// level), rather than a level-linear stand-in.
func expectedDPS(p *model.PokemonData, level int) float64 {
	if level <= 0 {
		level = 22
	}
	multiplier := 1.0 + float64(level)/100.0
	bestBase := math.Max(float64(p.Base.PhysicalAttack), float64(p.Base.SpecialAttack))
	speed := float64(p.Base.Speed) + float64(p.IVs.Speed) + float64(p.EVs.Speed)/4
	return (bestBase * multiplier) * math.Sqrt(speed/100)
}

func (c *CarryScoreCalculator) rarityMultiplier(speciesID string) float64 {
	if c.species == nil {
		return 1.0
	}
	info, ok := c.species.Species(speciesID)
	if !ok {
		return 1.0
	}
	return data.RarityMultiplier(info.RarityTier)
}

// sentimentalMultiplier computes the history-driven bonus, decayed by
// level and capped at 1.3 exactly per spec.md §9's redesign note (the
// original's intermediate hero_score can exceed 1.3 before the cap;
// we preserve only the final cap, never an uncapped intermediate).
func sentimentalMultiplier(p *model.PokemonData) float64 {
	bonus := 1.0
	h := p.History
	if h.CriticalBattleWins > 3 {
		bonus += 1
	}
	bonus += float64(h.SoloGymWins) * 2
	if h.IsShiny {
		bonus += 1.5
	}
	if p.Level < 20 && (h.Victories+h.SoloGymWins) > 5 {
		bonus += 0.8
	}

	decay := 1.0
	switch {
	case p.Level > 50:
		decay = 0.3
	case p.Level > 35:
		decay = 0.5
	case p.Level > 20:
		decay = 0.7
	}
	// bonus itself starts at 1.0 (neutral); only the accrued excess
	// above 1.0 decays with level, per spec.md §4.4's "decayed by
	// level" phrasing applied to the sentimental component.
	mult := 1.0 + (bonus-1.0)*decay
	if mult > 1.3 {
		mult = 1.3
	}
	return mult
}

func benchStatus(final float64) BenchStatus {
	switch {
	case final > 70:
		return BenchProtect
	case final > 50:
		return BenchConditional
	case final > 35:
		return BenchBench
	default:
		return BenchImmediateBench
	}
}
