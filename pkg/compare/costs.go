// Package compare matches a job's equipped gear against its best-in-slot
// target and totals the currencies, books and upgrade materials still needed.
package compare

import (
	"strings"
	"sync"

	"github.com/aventurescence/gearplan/internal/utils"
	"github.com/aventurescence/gearplan/pkg/catalog"
	"github.com/aventurescence/gearplan/pkg/tier"
)

// Floors is the number of savage floors per tier.
const Floors = 4

// Costs accumulates everything still needed to finish a set. Books always
// carries all four floors, zero-valued when nothing is needed. Costs are
// recomputed on every comparison run and never persisted.
type Costs struct {
	Tomestones          int
	UniversalTomestones int
	Books               map[int]int
	Twine               int
	Glaze               int
	Solvent             int
}

// NewCosts returns a zeroed accumulator with all four floors present.
func NewCosts() Costs {
	books := make(map[int]int, Floors)
	for floor := 1; floor <= Floors; floor++ {
		books[floor] = 0
	}
	return Costs{Books: books}
}

// Fallback tomestone prices by slot, used when the catalog has no offer for
// the exact item.
func fallbackTomestoneCost(slot catalog.SlotID) int {
	switch slot {
	case catalog.SlotMainHand:
		return 500
	case catalog.SlotBody, catalog.SlotLegs:
		return 825
	case catalog.SlotHead, catalog.SlotHands, catalog.SlotFeet:
		return 495
	default:
		return 375
	}
}

// leftSideSlot reports whether a slot takes twine rather than glaze when
// upgrading augmented gear.
func leftSideSlot(slot catalog.SlotID) bool {
	switch slot {
	case catalog.SlotHead, catalog.SlotBody, catalog.SlotHands, catalog.SlotLegs, catalog.SlotFeet:
		return true
	}
	return false
}

// Engine computes comparisons against one catalog snapshot and tier profile.
// Its unit-cost maps are built once, lazily, from a full offer scan and are
// read-only afterwards.
type Engine struct {
	cat     catalog.Catalog
	profile *tier.Profile

	costsOnce sync.Once
	tomeCosts map[uint32]int // received item id -> tomestone quantity
	bookCosts map[uint32]int // received item id -> book quantity
}

// NewEngine returns an Engine bound to a catalog snapshot and tier profile.
func NewEngine(cat catalog.Catalog, profile *tier.Profile) *Engine {
	return &Engine{cat: cat, profile: profile}
}

// buildCostMaps scans every exchange offer once: offers paying with a
// tomestone-named currency feed the tome-cost map, offers paying with a
// floor book feed the book-cost map. First offer found for an item wins.
func (e *Engine) buildCostMaps() {
	e.costsOnce.Do(func() {
		e.tomeCosts = make(map[uint32]int)
		e.bookCosts = make(map[uint32]int)

		for _, offer := range e.cat.Offers() {
			for _, cost := range offer.Costs {
				it, ok := e.cat.Item(cost.ItemID)
				if !ok || cost.Quantity <= 0 {
					continue
				}
				var target map[uint32]int
				switch {
				// The universal tomestone has its own counter and must not
				// shadow the regular tomestone price of the weapon.
				case cost.ItemID == e.profile.UniversalTomestoneID && e.profile.UniversalTomestoneID != 0:
					continue
				case strings.Contains(it.Name, "Tomestone"):
					target = e.tomeCosts
				case e.profile.BookKeyword != "" && strings.Contains(it.Name, e.profile.BookKeyword):
					target = e.bookCosts
				default:
					continue
				}
				for _, id := range offer.Receives {
					if _, seen := target[id]; !seen {
						target[id] = cost.Quantity
					}
				}
			}
		}

		utils.Log.Debugf("compare: cost maps built, %d tome prices, %d book prices",
			len(e.tomeCosts), len(e.bookCosts))
	})
}
