package gearset

import (
	"strings"

	"github.com/aventurescence/gearplan/pkg/catalog"
	"github.com/aventurescence/gearplan/pkg/tier"
)

// Classify tags an item name with its acquisition source using the
// discovered tier prefixes. Priority is fixed: the raid prefix wins over the
// augmented prefix, which wins over the base tome prefix. Augmented names
// usually contain the base prefix as a substring, so the order matters.
// An empty prefix (failed discovery) never matches.
func Classify(name string, p *tier.Profile) Source {
	switch {
	case containsPrefix(name, p.RaidGearPrefix):
		return SourceSavage
	case containsPrefix(name, p.AugmentedGearPrefix):
		return SourceAugmented
	case containsPrefix(name, p.BaseTomeGearPrefix):
		return SourceTomestone
	}
	return SourceUnknown
}

func containsPrefix(name, prefix string) bool {
	return prefix != "" && strings.Contains(name, prefix)
}

// FloorForSlot maps an equipment slot to the savage floor that drops it.
// This is a stable drop-table convention across tiers, not something tier
// discovery regenerates.
func FloorForSlot(slot catalog.SlotID) int {
	switch slot {
	case catalog.SlotMainHand:
		return 4
	case catalog.SlotBody, catalog.SlotLegs:
		return 3
	case catalog.SlotHead, catalog.SlotHands, catalog.SlotFeet:
		return 2
	default:
		return 1
	}
}
