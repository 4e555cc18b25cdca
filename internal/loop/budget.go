package loop

// OnLimitPolicy names what the controller does when a resource limit
// trips (spec.md §6/§7).
type OnLimitPolicy string

const (
	OnLimitSaveAndExit OnLimitPolicy = "save-and-exit"
	OnLimitSaveOnly    OnLimitPolicy = "save-only"
	OnLimitAbort       OnLimitPolicy = "abort"
)

// BudgetWindow names the accounting period a dollar budget resets on.
type BudgetWindow string

const (
	BudgetHourly BudgetWindow = "hourly"
	BudgetDaily  BudgetWindow = "daily"
	BudgetRun    BudgetWindow = "run"
)

// Limits is the single set of run-limit configuration fields:
// max_ticks/cost/pokemon/badges/level, the on_limit policy, and its
// grace period. It has no wall-clock time limit; the configuration's
// max_time is not carried here.
type Limits struct {
	MaxTicks   int64
	MaxCostUSD float64
	MaxPokemon int
	MaxBadges  int
	MaxLevel   int
	OnLimit    OnLimitPolicy
	GracePeriodTicks int64
}

// BudgetAccount is the controller's single counter checked before
// every dispatch (spec.md §5's shared-resource policy).
type BudgetAccount struct {
	Window     BudgetWindow
	LimitUSD   float64
	SpentUSD   float64
	TickCount  int64
}

// Spend records cost incurred by one dispatch.
func (b *BudgetAccount) Spend(usd float64) {
	b.SpentUSD += usd
	b.TickCount++
}

// Exceeded reports whether the account has crossed its dollar limit.
func (b *BudgetAccount) Exceeded() bool {
	return b.LimitUSD > 0 && b.SpentUSD >= b.LimitUSD
}

// LimitReached evaluates Limits against the controller's running
// counters, returning the name of the first limit that's tripped, or
// "" if none has.
func (l Limits) LimitReached(tickCount int64, spentUSD float64, pokemonCaught, badges, highestLevel int) string {
	switch {
	case l.MaxTicks > 0 && tickCount >= l.MaxTicks:
		return "max_ticks"
	case l.MaxCostUSD > 0 && spentUSD >= l.MaxCostUSD:
		return "max_cost"
	case l.MaxPokemon > 0 && pokemonCaught >= l.MaxPokemon:
		return "max_pokemon"
	case l.MaxBadges > 0 && badges >= l.MaxBadges:
		return "max_badges"
	case l.MaxLevel > 0 && highestLevel >= l.MaxLevel:
		return "max_level"
	default:
		return ""
	}
}
