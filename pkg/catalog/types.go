// Package catalog provides read-only, keyed access to the game's item,
// exchange-shop, materia, stat-budget and food records. Everything here is an
// immutable snapshot: callers never mutate a record they got from a Catalog.
package catalog

// StatID identifies a character sub-stat. Values follow the game's own
// parameter ids so catalog dumps can be used as-is.
type StatID int

const (
	StatStrength     StatID = 1
	StatDexterity    StatID = 2
	StatVitality     StatID = 3
	StatIntelligence StatID = 4
	StatMind         StatID = 5
	StatPiety        StatID = 6
	StatTenacity     StatID = 19
	StatDirectHit    StatID = 22
	StatCriticalHit  StatID = 27
	StatDetermination StatID = 44
	StatSkillSpeed   StatID = 45
	StatSpellSpeed   StatID = 46
)

// SlotID identifies a body equipment position. Slot 5 (waist) is retired and
// never produced by current content.
type SlotID int

const (
	SlotMainHand SlotID = 0
	SlotOffHand  SlotID = 1
	SlotHead     SlotID = 2
	SlotBody     SlotID = 3
	SlotHands    SlotID = 4
	SlotWaist    SlotID = 5
	SlotLegs     SlotID = 6
	SlotFeet     SlotID = 7
	SlotEars     SlotID = 8
	SlotNeck     SlotID = 9
	SlotWrists   SlotID = 10
	SlotRingR    SlotID = 11
	SlotRingL    SlotID = 12
)

// ValidSlot reports whether s is a slot current content can produce gear for.
func ValidSlot(s SlotID) bool {
	return s >= SlotMainHand && s <= SlotRingL && s != SlotWaist
}

// SlotFlags is a bitmask of the slots an item can occupy. A two-handed weapon
// carries both the main-hand and off-hand bits.
type SlotFlags uint32

// Flag returns the bitmask flag for a single slot.
func Flag(s SlotID) SlotFlags { return 1 << uint(s) }

// Has reports whether the mask includes the given slot.
func (f SlotFlags) Has(s SlotID) bool { return f&Flag(s) != 0 }

// Item is a single tradeable-item record. BaseStats is sparse: stats the item
// does not carry are simply absent.
type Item struct {
	ID        uint32
	Name      string
	ItemLevel uint32
	Slots     SlotFlags
	Icon      uint32
	BaseStats map[StatID]int
}

// OfferCost is one cost entry of an exchange offer.
type OfferCost struct {
	ItemID   uint32
	Quantity int
}

// ExchangeOffer is a single shop exchange: pay all Costs, receive Receives.
type ExchangeOffer struct {
	Costs    []OfferCost
	Receives []uint32
}

// MateriaGrade maps one materia item to the stat bonus it melds.
type MateriaGrade struct {
	ItemID uint32
	Stat   StatID
	Value  int
}

// MateriaRow groups the grade tiers of one materia family.
type MateriaRow struct {
	Grades []MateriaGrade
}

// SlotPercentRow holds, for one stat, the per-equip-category percentage of
// the item-level stat budget that gear in that category may carry.
// Values are permille-of-ten, i.e. cap = budget * percent / 1000.
type SlotPercentRow struct {
	Stat          StatID
	OneHandWeapon int
	TwoHandWeapon int
	OffHand       int
	Head          int
	Chest         int
	Hands         int
	Legs          int
	Feet          int
	Earring       int
	Necklace      int
	Bracelet      int
	Ring          int
}

// FoodParam is one stat bonus granted by a consumable. Relative bonuses are a
// percentage of the eater's pre-food total, clamped to MaxHQ.
type FoodParam struct {
	Stat     StatID
	Relative bool
	Percent  int
	MaxHQ    int
}

// FoodEffectRow is the HQ effect record linked from a food item.
type FoodEffectRow struct {
	ItemID uint32
	Params []FoodParam
}

// ContentEntry is one row of the game's content listing, used to resolve raid
// floor names.
type ContentEntry struct {
	Name    string
	SortKey int
	Savage  bool
}

// Job is a playable job and the equipment slots its gear planner cares about.
type Job struct {
	Abbrev string
	Slots  SlotFlags
}
