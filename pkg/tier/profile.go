// Package tier discovers, from catalog data alone, which items belong to the
// current raid tier: gear name prefixes, upgrade materials, floor-clear books
// and raid content names. Nothing in here hardcodes item ids.
package tier

// Profile is the discovered snapshot of "what is current". It is immutable
// once Discover returns; a catalog-version change calls for a whole new
// Discover run, never a partial update. Every field degrades to its zero
// value when its discovery phase finds nothing.
type Profile struct {
	RaidGearPrefix      string
	AugmentedGearPrefix string
	BaseTomeGearPrefix  string

	BookKeyword     string
	MaterialKeyword string

	TomeGearItemLevel uint32
	FoodMinItemLevel  uint32

	// BookItems maps raid floor (1-4) to the floor-clear book item.
	BookItems map[int]uint32
	BookIcons map[int]uint32

	TwineID   uint32
	TwineIcon uint32

	GlazeID   uint32
	GlazeIcon uint32

	SolventID   uint32
	SolventIcon uint32

	UniversalTomestoneID   uint32
	UniversalTomestoneIcon uint32

	// RaidNames holds up to four content names in floor order 1-4.
	RaidNames []string
}
