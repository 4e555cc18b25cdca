package data

import "fmt"

// Catalogs bundles every static table this package loads, the single
// handle most callers wire through their constructors.
type Catalogs struct {
	Items    *ItemCatalog
	TMHM     *TMHMCatalog
	Species  *SpeciesCatalog
	Shopping *ShoppingCatalog
}

// Load builds every static table once. Any malformed or duplicate row
// in the embedded TOML fails the whole load rather than limping along
// with a partially built table.
func Load() (*Catalogs, error) {
	items, err := LoadItems()
	if err != nil {
		return nil, fmt.Errorf("data: %w", err)
	}
	tmhm, err := LoadTMHMMoves()
	if err != nil {
		return nil, fmt.Errorf("data: %w", err)
	}
	species, err := LoadSpecies()
	if err != nil {
		return nil, fmt.Errorf("data: %w", err)
	}
	shopping, err := LoadShopping()
	if err != nil {
		return nil, fmt.Errorf("data: %w", err)
	}
	return &Catalogs{Items: items, TMHM: tmhm, Species: species, Shopping: shopping}, nil
}
