// Package simulate computes character sub-stat totals for items, melded
// materia and food, honoring the per-stat caps implied by item level and
// equip slot.
package simulate

import (
	"sync"

	"github.com/aventurescence/gearplan/internal/utils"
	"github.com/aventurescence/gearplan/pkg/catalog"
	"github.com/aventurescence/gearplan/pkg/gearset"
)

// MateriaDetail records what one meld slot actually contributed. Applied is
// the effective bonus after cap clamping; Capped flags melds that lost value.
type MateriaDetail struct {
	ItemID  uint32
	Stat    catalog.StatID
	Raw     int
	Applied int
	Capped  bool
}

type materiaStat struct {
	stat  catalog.StatID
	value int
}

// Engine is the stat simulator for one catalog snapshot. The materia lookup
// is built once, lazily, and read-only afterwards.
type Engine struct {
	cat catalog.Catalog

	materiaOnce sync.Once
	materia     map[uint32]materiaStat // materia item id -> (stat, bonus)
}

// NewEngine returns an Engine bound to a catalog snapshot.
func NewEngine(cat catalog.Catalog) *Engine {
	return &Engine{cat: cat}
}

func (e *Engine) buildMateriaMap() {
	e.materiaOnce.Do(func() {
		e.materia = make(map[uint32]materiaStat)
		for _, row := range e.cat.MateriaRows() {
			for _, g := range row.Grades {
				if g.ItemID == 0 || g.Value == 0 {
					continue
				}
				e.materia[g.ItemID] = materiaStat{stat: g.Stat, value: g.Value}
			}
		}
		utils.Log.Debugf("simulate: materia map built, %d grades", len(e.materia))
	})
}

// BaseStats reads an item's sparse base-stat table, skipping zero entries.
func (e *Engine) BaseStats(item catalog.Item) map[catalog.StatID]int {
	out := make(map[catalog.StatID]int, len(item.BaseStats))
	for stat, v := range item.BaseStats {
		if stat <= 0 || v == 0 {
			continue
		}
		out[stat] = v
	}
	return out
}

// MeldedStats applies up to five materia to an item's base stats. Materia
// are applied in slot order; each one sees only the headroom left under the
// per-stat cap by the base value and earlier melds of the same stat. An
// undeterminable cap (missing budget or percent data) is unbounded.
func (e *Engine) MeldedStats(item catalog.Item, materia [gearset.MateriaSlots]uint32) (map[catalog.StatID]int, []MateriaDetail) {
	e.buildMateriaMap()
	totals := e.BaseStats(item)

	var details []MateriaDetail
	for _, meldID := range materia {
		if meldID == 0 {
			continue
		}
		ms, ok := e.materia[meldID]
		if !ok {
			continue
		}

		applied := ms.value
		if limit, bounded := e.statCap(item, ms.stat); bounded {
			headroom := limit - totals[ms.stat]
			if headroom < 0 {
				headroom = 0
			}
			if applied > headroom {
				applied = headroom
			}
		}
		totals[ms.stat] += applied
		details = append(details, MateriaDetail{
			ItemID:  meldID,
			Stat:    ms.stat,
			Raw:     ms.value,
			Applied: applied,
			Capped:  applied < ms.value,
		})
	}
	return totals, details
}

// statCap computes cap = budget(itemLevel, stat) * slotPercent(category,
// stat) / 1000. The second return is false when the cap cannot be
// determined.
func (e *Engine) statCap(item catalog.Item, stat catalog.StatID) (int, bool) {
	budget, ok := e.cat.StatBudget(item.ItemLevel)
	if !ok {
		return 0, false
	}
	b, ok := budget[stat]
	if !ok || b <= 0 {
		return 0, false
	}
	row, ok := e.cat.SlotPercent(stat)
	if !ok {
		return 0, false
	}
	percent := slotPercentFor(item.Slots, row)
	if percent <= 0 {
		return 0, false
	}
	return b * percent / 1000, true
}

// slotPercentFor picks the equip category percentage for an item's slot
// mask. First matching category wins, in fixed priority order; a weapon
// occupying both hand slots is two-handed.
func slotPercentFor(slots catalog.SlotFlags, row catalog.SlotPercentRow) int {
	switch {
	case slots.Has(catalog.SlotMainHand) && !slots.Has(catalog.SlotOffHand):
		return row.OneHandWeapon
	case slots.Has(catalog.SlotMainHand):
		return row.TwoHandWeapon
	case slots.Has(catalog.SlotOffHand):
		return row.OffHand
	case slots.Has(catalog.SlotHead):
		return row.Head
	case slots.Has(catalog.SlotBody):
		return row.Chest
	case slots.Has(catalog.SlotHands):
		return row.Hands
	case slots.Has(catalog.SlotLegs):
		return row.Legs
	case slots.Has(catalog.SlotFeet):
		return row.Feet
	case slots.Has(catalog.SlotEars):
		return row.Earring
	case slots.Has(catalog.SlotNeck):
		return row.Necklace
	case slots.Has(catalog.SlotWrists):
		return row.Bracelet
	case slots.Has(catalog.SlotRingR), slots.Has(catalog.SlotRingL):
		return row.Ring
	}
	return 0
}
