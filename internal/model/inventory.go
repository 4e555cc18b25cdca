package model

import "fmt"

// ItemCategory classifies items for shopping/usage heuristics.
type ItemCategory string

const (
	CategoryPotion     ItemCategory = "potion"
	CategoryPokeball   ItemCategory = "pokeball"
	CategoryStatusCure ItemCategory = "status_cure"
	CategoryBattleItem ItemCategory = "battle_item"
	CategoryKeyItem    ItemCategory = "key_item"
	CategoryTmHm       ItemCategory = "tm_hm"
	CategoryBerry      ItemCategory = "berry"
	CategoryMisc       ItemCategory = "misc"
)

// ItemType names a specific item.
type ItemType string

// ItemData is the static, immutable description of an item, built once
// from internal/data's table.
type ItemData struct {
	Name               string
	Category           ItemCategory
	BasePrice          int
	HealingPower       int // 0 for non-healing items
	IsTM               bool
	CompatibleSpecies  []string // empty means universally compatible
}

// InventoryItem is a held stack of one item type.
type InventoryItem struct {
	Type     ItemType
	Quantity int // 0..99
}

// Validate enforces the [0,99] quantity invariant.
func (i InventoryItem) Validate() error {
	if i.Quantity < 0 || i.Quantity > 99 {
		return fmt.Errorf("item %s: quantity %d out of [0,99]", i.Type, i.Quantity)
	}
	return nil
}

// KeyItemRecord tracks when/where a key item was obtained and last used.
type KeyItemRecord struct {
	Item            ItemType
	ObtainedAt      int64 // unix tick or timestamp
	ObtainedLoc     string
	LastUsedAt      int64
	LastUsedLoc     string
}

// DefaultBagCapacity is the default total-quantity cap across all items.
const DefaultBagCapacity = 20

// Inventory is the mutable bag: item stacks plus key items.
type Inventory struct {
	Items        map[ItemType]*InventoryItem
	KeyItems     map[ItemType]*KeyItemRecord
	BagCapacity  int
}

// NewInventory builds an empty inventory honoring the default capacity.
func NewInventory() *Inventory {
	return &Inventory{
		Items:       make(map[ItemType]*InventoryItem),
		KeyItems:    make(map[ItemType]*KeyItemRecord),
		BagCapacity: DefaultBagCapacity,
	}
}

// TotalQuantity sums quantities across all non-key items.
func (inv *Inventory) TotalQuantity() int {
	total := 0
	for _, it := range inv.Items {
		total += it.Quantity
	}
	return total
}

// Validate enforces per-item and aggregate bag invariants.
func (inv *Inventory) Validate() error {
	total := 0
	for t, it := range inv.Items {
		if it.Quantity < 0 || it.Quantity > 99 {
			return fmt.Errorf("item %s: quantity %d out of [0,99]", t, it.Quantity)
		}
		total += it.Quantity
	}
	if total > inv.BagCapacity {
		return fmt.Errorf("inventory: total quantity %d exceeds bag capacity %d", total, inv.BagCapacity)
	}
	return nil
}

// Add increases quantity for itemType by n, rejecting overflow past 99
// or past bag capacity.
func (inv *Inventory) Add(itemType ItemType, n int) error {
	if n <= 0 {
		return fmt.Errorf("add: n must be positive")
	}
	it, ok := inv.Items[itemType]
	if !ok {
		it = &InventoryItem{Type: itemType}
		inv.Items[itemType] = it
	}
	if it.Quantity+n > 99 {
		return fmt.Errorf("add: %s would exceed 99 (have %d, adding %d)", itemType, it.Quantity, n)
	}
	if inv.TotalQuantity()+n > inv.BagCapacity {
		return fmt.Errorf("add: bag capacity %d exceeded", inv.BagCapacity)
	}
	it.Quantity += n
	return nil
}

// Remove decreases quantity for itemType by n, rejecting underflow.
func (inv *Inventory) Remove(itemType ItemType, n int) error {
	it, ok := inv.Items[itemType]
	if !ok || it.Quantity < n {
		return fmt.Errorf("remove: insufficient %s", itemType)
	}
	it.Quantity -= n
	return nil
}

// Quantity returns the current stack size for itemType (0 if absent).
func (inv *Inventory) Quantity(itemType ItemType) int {
	if it, ok := inv.Items[itemType]; ok {
		return it.Quantity
	}
	return 0
}
