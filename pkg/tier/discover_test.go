package tier

import (
	"strings"
	"testing"

	"github.com/aventurescence/gearplan/pkg/catalog"
)

const (
	tomestoneID = 100
	universalID = 101

	tomeBladeID = 200
	tomeCapID   = 201
	tomeCoatID  = 202
	tomeRingID  = 203

	augBladeID = 210
	augCapID   = 211
	augCoatID  = 212
	augRingID  = 213

	savageBladeID = 220
	savageCapID   = 221
	savageCoatID  = 222
	savageRingID  = 223

	book1ID = 301
	book2ID = 302
	book3ID = 303
	book4ID = 304

	oldBookID = 311
	oldGearID = 230

	twineID   = 401
	glazeID   = 402
	solventID = 403
)

func item(id uint32, name string, il uint32, slots ...catalog.SlotID) catalog.Item {
	it := catalog.Item{ID: id, Name: name, ItemLevel: il, Icon: id + 50000}
	for _, s := range slots {
		it.Slots |= catalog.Flag(s)
	}
	return it
}

func offer(costs []catalog.OfferCost, receives ...uint32) catalog.ExchangeOffer {
	return catalog.ExchangeOffer{Costs: costs, Receives: receives}
}

func cost(id uint32, qty int) catalog.OfferCost {
	return catalog.OfferCost{ItemID: id, Quantity: qty}
}

// fixtureCatalog builds a small but complete tier: tomestone shop, augment
// exchanges, savage book exchanges, one stale prior-tier book and the
// content listing.
func fixtureCatalog() *catalog.Memory {
	m := catalog.NewMemory()

	m.AddItem(item(tomestoneID, "Allagan Tomestone of Heliometry", 1))
	m.AddItem(item(universalID, "Universal Tomestone", 1))

	m.AddItem(item(tomeBladeID, "Quetzalli Blade", 740, catalog.SlotMainHand))
	m.AddItem(item(tomeCapID, "Quetzalli Cap", 740, catalog.SlotHead))
	m.AddItem(item(tomeCoatID, "Quetzalli Coat", 740, catalog.SlotBody))
	m.AddItem(item(tomeRingID, "Quetzalli Ring", 740, catalog.SlotRingR, catalog.SlotRingL))

	m.AddItem(item(augBladeID, "Augmented Quetzalli Blade", 750, catalog.SlotMainHand))
	m.AddItem(item(augCapID, "Augmented Quetzalli Cap", 750, catalog.SlotHead))
	m.AddItem(item(augCoatID, "Augmented Quetzalli Coat", 750, catalog.SlotBody))
	m.AddItem(item(augRingID, "Augmented Quetzalli Ring", 750, catalog.SlotRingR, catalog.SlotRingL))

	m.AddItem(item(savageBladeID, "Grand Champion's Blade", 755, catalog.SlotMainHand))
	m.AddItem(item(savageCapID, "Grand Champion's Cap", 755, catalog.SlotHead))
	m.AddItem(item(savageCoatID, "Grand Champion's Coat", 755, catalog.SlotBody))
	m.AddItem(item(savageRingID, "Grand Champion's Ring", 755, catalog.SlotRingR, catalog.SlotRingL))

	m.AddItem(item(book1ID, "Mythos Tome I", 1))
	m.AddItem(item(book2ID, "Mythos Tome II", 1))
	m.AddItem(item(book3ID, "Mythos Tome III", 1))
	m.AddItem(item(book4ID, "Mythos Tome IV", 1))
	m.AddItem(item(oldBookID, "Epic Tome I", 1))
	m.AddItem(item(oldGearID, "Forgotten Band", 700, catalog.SlotRingR, catalog.SlotRingL))

	m.AddItem(item(twineID, "Moonshine Twine", 1))
	m.AddItem(item(glazeID, "Moonshine Glaze", 1))
	m.AddItem(item(solventID, "Moonshine Solvent", 1))

	// Tomestone shop.
	m.AddOffer(offer([]catalog.OfferCost{cost(tomestoneID, 500), cost(universalID, 1)}, tomeBladeID))
	m.AddOffer(offer([]catalog.OfferCost{cost(tomestoneID, 495)}, tomeCapID))
	m.AddOffer(offer([]catalog.OfferCost{cost(tomestoneID, 825)}, tomeCoatID))
	m.AddOffer(offer([]catalog.OfferCost{cost(tomestoneID, 375)}, tomeRingID))

	// Augment exchanges: tome piece + material.
	m.AddOffer(offer([]catalog.OfferCost{cost(tomeBladeID, 1), cost(solventID, 1)}, augBladeID))
	m.AddOffer(offer([]catalog.OfferCost{cost(tomeCapID, 1), cost(twineID, 1)}, augCapID))
	m.AddOffer(offer([]catalog.OfferCost{cost(tomeCoatID, 1), cost(twineID, 1)}, augCoatID))
	m.AddOffer(offer([]catalog.OfferCost{cost(tomeRingID, 1), cost(glazeID, 1)}, augRingID))

	// Book exchanges, plus one stale offer from the previous tier.
	m.AddOffer(offer([]catalog.OfferCost{cost(book4ID, 8)}, savageBladeID))
	m.AddOffer(offer([]catalog.OfferCost{cost(book2ID, 6)}, savageCapID))
	m.AddOffer(offer([]catalog.OfferCost{cost(book3ID, 6)}, savageCoatID))
	m.AddOffer(offer([]catalog.OfferCost{cost(book1ID, 4)}, savageRingID))
	m.AddOffer(offer([]catalog.OfferCost{cost(oldBookID, 4)}, oldGearID))

	m.AddContentEntry(catalog.ContentEntry{Name: "Grand Champion's Arena M1 (Savage)", SortKey: 10, Savage: true})
	m.AddContentEntry(catalog.ContentEntry{Name: "Grand Champion's Arena M2 (Savage)", SortKey: 20, Savage: true})
	m.AddContentEntry(catalog.ContentEntry{Name: "Grand Champion's Arena M3 (Savage)", SortKey: 30, Savage: true})
	m.AddContentEntry(catalog.ContentEntry{Name: "Grand Champion's Arena M4 (Savage)", SortKey: 40, Savage: true})
	m.AddContentEntry(catalog.ContentEntry{Name: "Grand Champion's Arena M1", SortKey: 11, Savage: false})

	return m
}

func TestDiscoverFixtureTier(t *testing.T) {
	p := Discover(fixtureCatalog())

	if p.TomeGearItemLevel != 740 {
		t.Fatalf("tome gear item level = %d, want 740", p.TomeGearItemLevel)
	}
	if p.FoodMinItemLevel != 650 {
		t.Fatalf("food min item level = %d, want 650", p.FoodMinItemLevel)
	}
	if p.BaseTomeGearPrefix != "Quetzalli" {
		t.Fatalf("base tome prefix = %q, want %q", p.BaseTomeGearPrefix, "Quetzalli")
	}
	if p.AugmentedGearPrefix != "Augmented Quetzalli" {
		t.Fatalf("augmented prefix = %q, want %q", p.AugmentedGearPrefix, "Augmented Quetzalli")
	}
	if p.RaidGearPrefix != "Grand Champion's" {
		t.Fatalf("raid prefix = %q, want %q", p.RaidGearPrefix, "Grand Champion's")
	}
	if p.UniversalTomestoneID != universalID {
		t.Fatalf("universal tomestone = %d, want %d", p.UniversalTomestoneID, universalID)
	}
	if p.TwineID != twineID || p.GlazeID != glazeID || p.SolventID != solventID {
		t.Fatalf("materials = %d/%d/%d, want %d/%d/%d",
			p.TwineID, p.GlazeID, p.SolventID, twineID, glazeID, solventID)
	}
	if p.MaterialKeyword != "Moonshine" {
		t.Fatalf("material family = %q, want %q", p.MaterialKeyword, "Moonshine")
	}
}

func TestDiscoverBooks(t *testing.T) {
	p := Discover(fixtureCatalog())

	want := map[int]uint32{1: book1ID, 2: book2ID, 3: book3ID, 4: book4ID}
	for floor, id := range want {
		if p.BookItems[floor] != id {
			t.Fatalf("floor %d book = %d, want %d", floor, p.BookItems[floor], id)
		}
	}
	// The prior-tier book only appears in an offer yielding old gear.
	for floor, id := range p.BookItems {
		if id == oldBookID {
			t.Fatalf("stale book %d retained at floor %d", id, floor)
		}
	}
}

func TestDiscoverRaidNames(t *testing.T) {
	p := Discover(fixtureCatalog())

	if len(p.RaidNames) != 4 {
		t.Fatalf("expected 4 raid names, got %d: %v", len(p.RaidNames), p.RaidNames)
	}
	for i, want := range []string{"M1", "M2", "M3", "M4"} {
		if !strings.Contains(p.RaidNames[i], want) {
			t.Fatalf("raid name %d = %q, want it to contain %q", i+1, p.RaidNames[i], want)
		}
	}
}

func TestDiscoverMaterialFallbackByFamily(t *testing.T) {
	m := fixtureCatalog()
	// Rebuild without the glaze and solvent offers: only twine is reachable
	// through the offer scan, the rest must come from the family-prefix scan.
	trimmed := catalog.NewMemory()
	for _, it := range m.Items() {
		trimmed.AddItem(it)
	}
	for _, o := range m.Offers() {
		skip := false
		for _, c := range o.Costs {
			if c.ItemID == glazeID || c.ItemID == solventID {
				skip = true
			}
		}
		if !skip {
			trimmed.AddOffer(o)
		}
	}

	p := Discover(trimmed)
	if p.TwineID != twineID {
		t.Fatalf("twine = %d, want %d", p.TwineID, twineID)
	}
	if p.GlazeID != glazeID {
		t.Fatalf("glaze not recovered by family scan: got %d, want %d", p.GlazeID, glazeID)
	}
	if p.SolventID != solventID {
		t.Fatalf("solvent not recovered by family scan: got %d, want %d", p.SolventID, solventID)
	}
}

func TestDiscoverMaterialFallbackByIDProbe(t *testing.T) {
	m := catalog.NewMemory()
	m.AddItem(item(tomestoneID, "Allagan Tomestone of Heliometry", 1))
	m.AddItem(item(tomeCapID, "Quetzalli Cap", 740, catalog.SlotHead))
	m.AddItem(item(augCapID, "Augmented Quetzalli Cap", 750, catalog.SlotHead))
	// No shared family prefix: only the id probe can find the glaze.
	m.AddItem(item(450, "Sacred Twine", 1))
	m.AddItem(item(452, "Blessed Glaze", 1))
	m.AddOffer(offer([]catalog.OfferCost{cost(tomestoneID, 495)}, tomeCapID))
	m.AddOffer(offer([]catalog.OfferCost{cost(tomeCapID, 1), cost(450, 1)}, augCapID))

	p := Discover(m)
	if p.TwineID != 450 {
		t.Fatalf("twine = %d, want 450", p.TwineID)
	}
	if p.GlazeID != 452 {
		t.Fatalf("glaze not recovered by id probe: got %d, want 452", p.GlazeID)
	}
}

func TestDiscoverEmptyCatalog(t *testing.T) {
	p := Discover(catalog.NewMemory())

	if p.RaidGearPrefix != "" || p.AugmentedGearPrefix != "" || p.BaseTomeGearPrefix != "" {
		t.Fatalf("expected empty prefixes, got %q/%q/%q",
			p.RaidGearPrefix, p.AugmentedGearPrefix, p.BaseTomeGearPrefix)
	}
	if p.TomeGearItemLevel != 0 || p.FoodMinItemLevel != 0 {
		t.Fatalf("expected zero item levels, got %d/%d", p.TomeGearItemLevel, p.FoodMinItemLevel)
	}
	if len(p.BookItems) != 0 {
		t.Fatalf("expected no books, got %v", p.BookItems)
	}
	if len(p.RaidNames) != 0 {
		t.Fatalf("expected no raid names, got %v", p.RaidNames)
	}
}

func TestDiscoverRaidNamesFallback(t *testing.T) {
	m := catalog.NewMemory()
	// No offers at all: prefix discovery fails, the four newest savage
	// entries win.
	m.AddContentEntry(catalog.ContentEntry{Name: "Old Arena (Savage)", SortKey: 1, Savage: true})
	for i, name := range []string{"Arena M1 (Savage)", "Arena M2 (Savage)", "Arena M3 (Savage)", "Arena M4 (Savage)"} {
		m.AddContentEntry(catalog.ContentEntry{Name: name, SortKey: 10 + i, Savage: true})
	}

	p := Discover(m)
	if len(p.RaidNames) != 4 {
		t.Fatalf("expected 4 raid names, got %d: %v", len(p.RaidNames), p.RaidNames)
	}
	if p.RaidNames[0] != "Arena M1 (Savage)" {
		t.Fatalf("floor 1 = %q, want the oldest of the four newest", p.RaidNames[0])
	}
}
