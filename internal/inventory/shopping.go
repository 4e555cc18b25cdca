// Package inventory implements shopping, healing and item-usage
// heuristics over model.Inventory (spec.md §4.5).
package inventory

import (
	"sort"

	"github.com/wojons/ptp-core/internal/data"
	"github.com/wojons/ptp-core/internal/model"
)

// ShoppingHeuristic picks what to buy at a mart ahead of a route or
// gym, greedily by priority then cost, splitting budget 80/20 between
// available spend and an emergency reserve (spec.md §4.5).
type ShoppingHeuristic struct {
	catalog *data.ShoppingCatalog
	items   *data.ItemCatalog
}

// NewShoppingHeuristic wires the static shopping and item catalogs.
func NewShoppingHeuristic(catalog *data.ShoppingCatalog, items *data.ItemCatalog) *ShoppingHeuristic {
	return &ShoppingHeuristic{catalog: catalog, items: items}
}

// ShoppingPlan is a proposed set of purchases and what they cost.
type ShoppingPlan struct {
	Purchases      map[string]int
	TotalSpent     int
	AvailableBudget int
	EmergencyReserve int
}

// PurchaseRequest is one candidate line item with its desired
// quantity, before budget constraints are applied.
type PurchaseRequest struct {
	Item     string
	Quantity int
}

// Plan builds a greedy shopping list from a set of candidate requests
// (typically derived from route-needs, gym-prep and essentials),
// spending at most 80% of money and reserving 20% (spec.md §4.5).
func (h *ShoppingHeuristic) Plan(money int, requests []PurchaseRequest) ShoppingPlan {
	available := (money * 80) / 100
	reserve := money - available

	sort.SliceStable(requests, func(i, j int) bool {
		pi, pj := h.catalog.Priority(requests[i].Item), h.catalog.Priority(requests[j].Item)
		if pi != pj {
			return pi.Rank() < pj.Rank()
		}
		return h.price(requests[i].Item) < h.price(requests[j].Item)
	})

	plan := ShoppingPlan{
		Purchases:        make(map[string]int),
		AvailableBudget:  available,
		EmergencyReserve: reserve,
	}

	spent := 0
	for i, req := range requests {
		unitPrice := h.price(req.Item)
		if unitPrice <= 0 {
			continue
		}
		affordableQty := (available - spent) / unitPrice
		if affordableQty <= 0 {
			break
		}
		qty := req.Quantity
		isLast := i == len(requests)-1
		if qty > affordableQty {
			if isLast {
				qty = affordableQty // partial purchase of the last item when budget permits
			} else {
				continue
			}
		}
		if qty <= 0 {
			continue
		}
		plan.Purchases[req.Item] += qty
		spent += qty * unitPrice
	}
	plan.TotalSpent = spent
	return plan
}

func (h *ShoppingHeuristic) price(item string) int {
	d, ok := h.items.Lookup(model.ItemType(item))
	if !ok {
		return 0
	}
	return d.BasePrice
}

// RouteRequests turns a route's needs profile into purchase requests.
func (h *ShoppingHeuristic) RouteRequests(routeName string) []PurchaseRequest {
	route, ok := h.catalog.Route(routeName)
	if !ok {
		return nil
	}
	return []PurchaseRequest{
		{Item: "Potion", Quantity: route.RecommendedPotions},
		{Item: "Poke Ball", Quantity: route.RecommendedBalls},
	}
}

// GymRequests turns a gym's prep profile into purchase requests.
func (h *ShoppingHeuristic) GymRequests(gymName string) []PurchaseRequest {
	gym, ok := h.catalog.Gym(gymName)
	if !ok {
		return nil
	}
	reqs := []PurchaseRequest{{Item: "Super Potion", Quantity: gym.RecommendedPotions}}
	if gym.RecommendedStatusCures > 0 {
		reqs = append(reqs, PurchaseRequest{Item: "Full Heal", Quantity: gym.RecommendedStatusCures})
	}
	return reqs
}

// EssentialsRequests returns the baseline early/late game item list as
// quantity-1 requests.
func (h *ShoppingHeuristic) EssentialsRequests(lateGame bool) []PurchaseRequest {
	names := h.catalog.Essentials(lateGame)
	reqs := make([]PurchaseRequest, len(names))
	for i, n := range names {
		reqs[i] = PurchaseRequest{Item: n, Quantity: 1}
	}
	return reqs
}
