package compare

import (
	"fmt"
	"sort"

	"github.com/aventurescence/gearplan/pkg/catalog"
	"github.com/aventurescence/gearplan/pkg/gearset"
)

// SlotComparison is the per-slot outcome of one comparison run.
type SlotComparison struct {
	Slot    catalog.SlotID
	Target  *gearset.BiSItem
	Current *gearset.EquippedItem
	Owned   bool
	// Label is a short human-readable acquisition hint, empty when owned.
	Label string
}

// Compare walks every slot of the target set, decides ownership against the
// equipped snapshot and accumulates the acquisition cost of everything still
// missing. Both inputs are treated as immutable snapshots; calling Compare
// twice with the same inputs yields the same output.
func (e *Engine) Compare(equipped []gearset.EquippedItem, bis *gearset.Set) ([]SlotComparison, Costs) {
	costs := NewCosts()
	if bis == nil || len(bis.Slots) == 0 {
		return nil, costs
	}
	e.buildCostMaps()

	bySlot := make(map[catalog.SlotID]*gearset.EquippedItem, len(equipped))
	var equippedRings []*gearset.EquippedItem
	for i := range equipped {
		it := &equipped[i]
		if it.Slot == catalog.SlotRingR || it.Slot == catalog.SlotRingL {
			equippedRings = append(equippedRings, it)
			continue
		}
		bySlot[it.Slot] = it
	}

	var ringTargets []*gearset.BiSItem
	slots := make([]catalog.SlotID, 0, len(bis.Slots))
	for slot, target := range bis.Slots {
		if slot == catalog.SlotRingR || slot == catalog.SlotRingL {
			ringTargets = append(ringTargets, target)
		}
		slots = append(slots, slot)
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i] < slots[j] })

	ringAssignment := assignRings(ringTargets, equippedRings)

	var out []SlotComparison
	for _, slot := range slots {
		target := bis.Slots[slot]
		var current *gearset.EquippedItem
		if slot == catalog.SlotRingR || slot == catalog.SlotRingL {
			current = ringAssignment[slot]
		} else {
			current = bySlot[slot]
		}

		sc := SlotComparison{Slot: slot, Target: target, Current: current}
		sc.Owned = current != nil && current.ItemID == target.ItemID
		if !sc.Owned {
			sc.Label = e.accumulate(&costs, target)
		}
		out = append(out, sc)
	}
	return out, costs
}

// assignRings binds equipped rings to target ring slots. Rings are
// interchangeable positions in-game, but one physical ring only counts once:
// exact id matches bind first, in ascending target slot order, each
// consuming its equipped ring; leftover targets then take leftover rings
// first-available. Pure function over two lists of at most two elements.
func assignRings(targets []*gearset.BiSItem, rings []*gearset.EquippedItem) map[catalog.SlotID]*gearset.EquippedItem {
	out := make(map[catalog.SlotID]*gearset.EquippedItem, len(targets))
	if len(targets) == 0 {
		return out
	}
	sort.Slice(targets, func(i, j int) bool { return targets[i].Slot < targets[j].Slot })

	taken := make([]bool, len(rings))
	for _, t := range targets {
		for i, r := range rings {
			if !taken[i] && r.ItemID == t.ItemID {
				out[t.Slot] = r
				taken[i] = true
				break
			}
		}
	}
	for _, t := range targets {
		if _, bound := out[t.Slot]; bound {
			continue
		}
		for i, r := range rings {
			if !taken[i] {
				out[t.Slot] = r
				taken[i] = true
				break
			}
		}
	}
	return out
}

// accumulate adds the acquisition cost of one missing piece and returns its
// label.
func (e *Engine) accumulate(costs *Costs, target *gearset.BiSItem) string {
	switch target.Source {
	case gearset.SourceSavage:
		floor := target.Floor
		if floor == 0 {
			floor = gearset.FloorForSlot(target.Slot)
		}
		qty, ok := e.bookCosts[target.ItemID]
		if !ok {
			qty = 1
		}
		costs.Books[floor] += qty
		return fmt.Sprintf("%d Savage", floor)

	case gearset.SourceTomestone:
		n := e.tomestonePrice(target)
		costs.Tomestones += n
		if target.Slot == catalog.SlotMainHand {
			costs.UniversalTomestones++
		}
		return fmt.Sprintf("%d Tomes", n)

	case gearset.SourceAugmented:
		costs.Tomestones += e.tomestonePrice(target)
		switch {
		case target.Slot == catalog.SlotMainHand:
			costs.Solvent++
		case leftSideSlot(target.Slot):
			costs.Twine++
		default:
			costs.Glaze++
		}
		return "Tomes + Upgrade"
	}
	return "Unknown"
}

func (e *Engine) tomestonePrice(target *gearset.BiSItem) int {
	if n, ok := e.tomeCosts[target.ItemID]; ok {
		return n
	}
	return fallbackTomestoneCost(target.Slot)
}
