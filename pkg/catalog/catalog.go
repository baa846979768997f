package catalog

// Catalog is the read-only query surface the engines run against. Lookups by
// id report absence with a false second return, never an error: partial
// catalogs are expected on content-version mismatches and the engines degrade
// per-field instead of failing.
type Catalog interface {
	// Item returns the item record for id, or (zero, false) if absent.
	Item(id uint32) (Item, bool)
	// Items returns every item record. Callers must not mutate the slice.
	Items() []Item
	// Offers returns every exchange offer.
	Offers() []ExchangeOffer
	// MateriaRows returns every materia family row.
	MateriaRows() []MateriaRow
	// StatBudget returns the per-stat budget table for an item level, or
	// (nil, false) when the level has no row.
	StatBudget(itemLevel uint32) (map[StatID]int, bool)
	// SlotPercent returns the per-category percent row for a stat.
	SlotPercent(stat StatID) (SlotPercentRow, bool)
	// FoodEffect returns the HQ effect record linked from a food item id.
	FoodEffect(itemID uint32) (FoodEffectRow, bool)
	// ContentEntries returns the content listing rows.
	ContentEntries() []ContentEntry
}

// Memory is an in-memory Catalog, filled either by LoadDump or directly by
// tests.
type Memory struct {
	items        []Item
	itemsByID    map[uint32]Item
	offers       []ExchangeOffer
	materia      []MateriaRow
	budgets      map[uint32]map[StatID]int
	slotPercents map[StatID]SlotPercentRow
	foods        map[uint32]FoodEffectRow
	content      []ContentEntry
	jobs         []Job
}

// NewMemory returns an empty in-memory catalog.
func NewMemory() *Memory {
	return &Memory{
		itemsByID:    make(map[uint32]Item),
		budgets:      make(map[uint32]map[StatID]int),
		slotPercents: make(map[StatID]SlotPercentRow),
		foods:        make(map[uint32]FoodEffectRow),
	}
}

func (m *Memory) Item(id uint32) (Item, bool) {
	it, ok := m.itemsByID[id]
	return it, ok
}

func (m *Memory) Items() []Item             { return m.items }
func (m *Memory) Offers() []ExchangeOffer   { return m.offers }
func (m *Memory) MateriaRows() []MateriaRow { return m.materia }

func (m *Memory) StatBudget(itemLevel uint32) (map[StatID]int, bool) {
	b, ok := m.budgets[itemLevel]
	return b, ok
}

func (m *Memory) SlotPercent(stat StatID) (SlotPercentRow, bool) {
	r, ok := m.slotPercents[stat]
	return r, ok
}

func (m *Memory) FoodEffect(itemID uint32) (FoodEffectRow, bool) {
	f, ok := m.foods[itemID]
	return f, ok
}

func (m *Memory) ContentEntries() []ContentEntry { return m.content }

// Jobs returns the job records carried by the dump, if any.
func (m *Memory) Jobs() []Job { return m.jobs }

// AddItem registers an item record.
func (m *Memory) AddItem(it Item) {
	m.items = append(m.items, it)
	m.itemsByID[it.ID] = it
}

// AddOffer registers an exchange offer.
func (m *Memory) AddOffer(o ExchangeOffer) { m.offers = append(m.offers, o) }

// AddMateriaRow registers a materia family.
func (m *Memory) AddMateriaRow(r MateriaRow) { m.materia = append(m.materia, r) }

// SetStatBudget registers the budget table for one item level.
func (m *Memory) SetStatBudget(itemLevel uint32, budget map[StatID]int) {
	m.budgets[itemLevel] = budget
}

// SetSlotPercent registers the per-category percent row for one stat.
func (m *Memory) SetSlotPercent(r SlotPercentRow) { m.slotPercents[r.Stat] = r }

// SetFoodEffect registers the HQ effect record for a food item.
func (m *Memory) SetFoodEffect(f FoodEffectRow) { m.foods[f.ItemID] = f }

// AddContentEntry registers a content listing row.
func (m *Memory) AddContentEntry(e ContentEntry) { m.content = append(m.content, e) }

// AddJob registers a job record.
func (m *Memory) AddJob(j Job) { m.jobs = append(m.jobs, j) }

// JobSlotMap precomputes, once, the slot mask of every job in the catalog so
// callers can validate imported gear without any name-based dynamic lookup.
func JobSlotMap(jobs []Job) map[string]SlotFlags {
	out := make(map[string]SlotFlags, len(jobs))
	for _, j := range jobs {
		out[j.Abbrev] = j.Slots
	}
	return out
}
