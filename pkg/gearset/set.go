package gearset

import (
	"time"

	"github.com/aventurescence/gearplan/pkg/catalog"
	"github.com/aventurescence/gearplan/pkg/tier"
)

// ClassifyAndStore is the set's single mutation entry point for gear slots:
// it classifies the item against the tier profile and stores it. Items with
// a zero id or an invalid slot are rejected as a no-op; malformed imports
// must never corrupt a set.
func (s *Set) ClassifyAndStore(slot catalog.SlotID, itemID uint32, name string, itemLevel uint32, materia [MateriaSlots]uint32, p *tier.Profile) bool {
	if itemID == 0 || !catalog.ValidSlot(slot) {
		return false
	}
	item := &BiSItem{
		ItemID:    itemID,
		Name:      name,
		ItemLevel: itemLevel,
		Slot:      slot,
		Source:    Classify(name, p),
		Materia:   materia,
	}
	if item.Source == SourceSavage {
		item.Floor = FloorForSlot(slot)
	}
	s.Slots[slot] = item
	s.UpdatedAt = time.Now().UTC()
	return true
}

// SetFood records the set's consumable. A zero id clears it.
func (s *Set) SetFood(itemID uint32) {
	s.FoodID = itemID
	s.UpdatedAt = time.Now().UTC()
}

// ClearSlot removes a single slot from the set.
func (s *Set) ClearSlot(slot catalog.SlotID) {
	if _, ok := s.Slots[slot]; !ok {
		return
	}
	delete(s.Slots, slot)
	s.UpdatedAt = time.Now().UTC()
}
