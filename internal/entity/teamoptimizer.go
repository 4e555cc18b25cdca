package entity

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/wojons/ptp-core/internal/model"
	"github.com/wojons/ptp-core/internal/typechart"
)

// Role is the battle archetype a carry-score breakdown assigns a
// Pokemon within the party.
type Role string

const (
	RoleSweeper Role = "sweeper"
	RoleTank    Role = "tank"
	RoleSupport Role = "support"
	RoleMixed   Role = "mixed"
)

// BattleType selects the slot-ordering scoring function in
// OptimizePartyOrder.
type BattleType string

const (
	BattleWild     BattleType = "wild"
	BattleTrainer  BattleType = "trainer"
	BattleGym      BattleType = "gym"
	BattleElite4   BattleType = "elite4"
	BattleLegendary BattleType = "legendary"
)

// TeamAnalysis is the TeamCompositionOptimizer's report for a party
// (spec.md §4.4).
type TeamAnalysis struct {
	TypeCoverage    map[typechart.Type18]bool
	CarryScores     map[string]CarryScoreResult // keyed by PokemonID
	RoleAssignments map[string]Role
	StatDistribution map[string]float64 // per-PokemonID DPS potential
	MoveOverlap     map[string]int      // move name -> count of party members carrying it
	Recommendations []string
	TeamScore       float64
}

// TeamCompositionOptimizer builds TeamAnalysis reports and ranks slot
// order for specific battle types (spec.md §4.4).
type TeamCompositionOptimizer struct {
	carry *CarryScoreCalculator
	chart *typechart.Chart
}

// NewTeamCompositionOptimizer wires the carry-score calculator and
// type chart used by Analyze and OptimizePartyOrder.
func NewTeamCompositionOptimizer(carry *CarryScoreCalculator, chart *typechart.Chart) *TeamCompositionOptimizer {
	return &TeamCompositionOptimizer{carry: carry, chart: chart}
}

// Analyze scores every party member concurrently — one goroutine per
// Pokemon, no shared mutable state beyond the result slots each owns —
// then aggregates into a TeamAnalysis (spec.md §9 design note:
// "task-per-pokemon with no shared mutable state").
func (o *TeamCompositionOptimizer) Analyze(ctx context.Context, t *model.Team, upcomingBossTypes []typechart.Type18, expectedLevel int) (*TeamAnalysis, error) {
	members := activeMembers(t)

	scores := make([]CarryScoreResult, len(members))
	g, _ := errgroup.WithContext(ctx)
	for i, p := range members {
		i, p := i, p
		g.Go(func() error {
			others := make([]*model.PokemonData, 0, len(members)-1)
			for _, other := range members {
				if other != p {
					others = append(others, other)
				}
			}
			scores[i] = o.carryScoreCtx(p, others, upcomingBossTypes, expectedLevel)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	analysis := &TeamAnalysis{
		TypeCoverage:     make(map[typechart.Type18]bool),
		CarryScores:      make(map[string]CarryScoreResult, len(members)),
		RoleAssignments:  make(map[string]Role, len(members)),
		StatDistribution: make(map[string]float64, len(members)),
		MoveOverlap:      make(map[string]int),
	}

	var scoreSum float64
	for i, p := range members {
		analysis.CarryScores[p.PokemonID] = scores[i]
		analysis.RoleAssignments[p.PokemonID] = assignRole(p)
		analysis.StatDistribution[p.PokemonID] = DPSPotential(p)
		scoreSum += scores[i].FinalScore

		for _, defType := range typechart.Order {
			if analysis.TypeCoverage[defType] {
				continue
			}
			if o.chart.IsSuperEffective(typechart.Type18(p.PrimaryType), defType, "") {
				analysis.TypeCoverage[defType] = true
				continue
			}
			if p.SecondaryType != "" && o.chart.IsSuperEffective(typechart.Type18(p.SecondaryType), defType, "") {
				analysis.TypeCoverage[defType] = true
			}
		}
		for _, m := range p.Moves {
			analysis.MoveOverlap[m.Name]++
		}
	}
	if len(members) > 0 {
		analysis.TeamScore = scoreSum / float64(len(members))
	}

	analysis.Recommendations = buildRecommendations(analysis, members)
	return analysis, nil
}

func (o *TeamCompositionOptimizer) carryScoreCtx(p *model.PokemonData, others []*model.PokemonData, bossTypes []typechart.Type18, expectedLevel int) CarryScoreResult {
	return o.carry.Score(p, CarryContext{
		PartyOthers:            others,
		UpcomingBossTypes:      bossTypes,
		ExpectedEncounterLevel: expectedLevel,
	})
}

// assignRole classifies a Pokemon by offense/defense/speed ratios and
// whether it carries status/utility moves.
func assignRole(p *model.PokemonData) Role {
	off := OffensiveStat(p)
	def := DefensiveStat(p)
	speed := SpeedStat(p)

	statusMoves := 0
	for _, m := range p.Moves {
		if m.Category == model.Status {
			statusMoves++
		}
	}

	switch {
	case statusMoves >= 2:
		return RoleSupport
	case off > def*1.3 && speed > def:
		return RoleSweeper
	case def > off*1.3:
		return RoleTank
	default:
		return RoleMixed
	}
}

func buildRecommendations(a *TeamAnalysis, members []*model.PokemonData) []string {
	var recs []string
	uncovered := 0
	for _, t := range typechart.Order {
		if !a.TypeCoverage[t] {
			uncovered++
		}
	}
	if uncovered > 10 {
		recs = append(recs, "party lacks broad type coverage; consider diversifying types")
	}
	for move, count := range a.MoveOverlap {
		if count >= 3 {
			recs = append(recs, "move \""+move+"\" is redundant across "+itoa(count)+" party members")
		}
	}
	if len(members) < model.PartySize {
		recs = append(recs, "party has open slots; consider catching or withdrawing a sixth member")
	}
	return recs
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// OptimizePartyOrder ranks active party slots for a given battle type,
// weighting carry score by current HP fraction, with a battle-type
// specific twist (spec.md §4.4): gym/elite4/legendary battles favor
// type coverage against the upcoming target more heavily than a wild
// encounter would.
func (o *TeamCompositionOptimizer) OptimizePartyOrder(t *model.Team, battleType BattleType, opponentTypes []typechart.Type18) []*model.PokemonData {
	members := activeMembers(t)
	type scored struct {
		p     *model.PokemonData
		score float64
	}
	ranked := make([]scored, 0, len(members))
	for _, p := range members {
		base := o.carry.Score(p, CarryContext{PartyOthers: members, UpcomingBossTypes: opponentTypes}).FinalScore
		weight := battleTypeWeight(battleType)
		coverageBonus := 0.0
		for _, opp := range opponentTypes {
			if o.chart.IsSuperEffective(typechart.Type18(p.PrimaryType), opp, "") ||
				(p.SecondaryType != "" && o.chart.IsSuperEffective(typechart.Type18(p.SecondaryType), opp, "")) {
				coverageBonus += 10 * weight
			}
		}
		ranked = append(ranked, scored{p: p, score: (base + coverageBonus) * p.HPFraction()})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })
	out := make([]*model.PokemonData, len(ranked))
	for i, r := range ranked {
		out[i] = r.p
	}
	return out
}

func battleTypeWeight(bt BattleType) float64 {
	switch bt {
	case BattleGym, BattleElite4, BattleLegendary:
		return 1.5
	case BattleTrainer:
		return 1.2
	default:
		return 1.0
	}
}

func activeMembers(t *model.Team) []*model.PokemonData {
	out := make([]*model.PokemonData, 0, model.PartySize)
	for _, p := range t.Party {
		if p != nil && !p.IsFainted() {
			out = append(out, p)
		}
	}
	return out
}
