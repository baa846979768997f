package simulate

import (
	"github.com/aventurescence/gearplan/pkg/catalog"
	"github.com/aventurescence/gearplan/pkg/gearset"
)

// FoodStats computes the bonuses a food item grants on top of the given
// pre-food totals. Relative parameters scale the eater's existing stat and
// clamp to the HQ maximum; flat parameters grant the maximum outright. Zero
// bonuses are dropped.
func (e *Engine) FoodStats(foodID uint32, preFood map[catalog.StatID]int) map[catalog.StatID]int {
	out := make(map[catalog.StatID]int)
	effect, ok := e.cat.FoodEffect(foodID)
	if !ok {
		return out
	}
	for _, p := range effect.Params {
		var bonus int
		if p.Relative {
			bonus = preFood[p.Stat] * p.Percent / 100
			if bonus > p.MaxHQ {
				bonus = p.MaxHQ
			}
		} else {
			bonus = p.MaxHQ
		}
		if bonus != 0 {
			out[p.Stat] = bonus
		}
	}
	return out
}

// FullSetStats sums melded stats across an entire set and applies food last,
// against the pre-food gear+materia totals. Food never compounds on itself.
func (e *Engine) FullSetStats(slots map[catalog.SlotID]*gearset.BiSItem, foodID uint32) map[catalog.StatID]int {
	totals := make(map[catalog.StatID]int)
	for _, bis := range slots {
		if bis == nil {
			continue
		}
		item, ok := e.cat.Item(bis.ItemID)
		if !ok {
			continue
		}
		melded, _ := e.MeldedStats(item, bis.Materia)
		for stat, v := range melded {
			totals[stat] += v
		}
	}
	if foodID != 0 {
		for stat, v := range e.FoodStats(foodID, totals) {
			totals[stat] += v
		}
	}
	return totals
}
