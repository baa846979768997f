package compare

import (
	"reflect"
	"testing"

	"github.com/aventurescence/gearplan/pkg/catalog"
	"github.com/aventurescence/gearplan/pkg/gearset"
	"github.com/aventurescence/gearplan/pkg/tier"
)

func emptyProfile() *tier.Profile {
	return &tier.Profile{BookItems: map[int]uint32{}, BookIcons: map[int]uint32{}}
}

func bisSet(items ...*gearset.BiSItem) *gearset.Set {
	set := gearset.NewSet("DRG")
	for _, it := range items {
		set.Slots[it.Slot] = it
	}
	return set
}

func bis(slot catalog.SlotID, id uint32, source gearset.Source) *gearset.BiSItem {
	item := &gearset.BiSItem{ItemID: id, Slot: slot, Source: source}
	if source == gearset.SourceSavage {
		item.Floor = gearset.FloorForSlot(slot)
	}
	return item
}

func worn(slot catalog.SlotID, id uint32) gearset.EquippedItem {
	return gearset.EquippedItem{ItemID: id, Slot: slot}
}

// Tomestone item missing from the cost map falls back to the slot table and
// a main-hand purchase also needs one universal tomestone.
func TestCompareTomestoneFallback(t *testing.T) {
	engine := NewEngine(catalog.NewMemory(), emptyProfile())

	comparisons, costs := engine.Compare(nil, bisSet(bis(catalog.SlotMainHand, 500, gearset.SourceTomestone)))

	if len(comparisons) != 1 || comparisons[0].Owned {
		t.Fatalf("expected one unowned comparison, got %+v", comparisons)
	}
	if comparisons[0].Label != "500 Tomes" {
		t.Fatalf("label = %q, want %q", comparisons[0].Label, "500 Tomes")
	}
	if costs.Tomestones != 500 {
		t.Fatalf("tomestones = %d, want 500", costs.Tomestones)
	}
	if costs.UniversalTomestones != 1 {
		t.Fatalf("universal tomestones = %d, want 1", costs.UniversalTomestones)
	}
}

func TestCompareTomestoneSlotFallbacks(t *testing.T) {
	tests := []struct {
		slot catalog.SlotID
		want int
	}{
		{catalog.SlotMainHand, 500},
		{catalog.SlotBody, 825},
		{catalog.SlotLegs, 825},
		{catalog.SlotHead, 495},
		{catalog.SlotHands, 495},
		{catalog.SlotFeet, 495},
		{catalog.SlotEars, 375},
		{catalog.SlotRingL, 375},
	}
	for _, tt := range tests {
		engine := NewEngine(catalog.NewMemory(), emptyProfile())
		_, costs := engine.Compare(nil, bisSet(bis(tt.slot, 42, gearset.SourceTomestone)))
		if costs.Tomestones != tt.want {
			t.Fatalf("slot %d tomestones = %d, want %d", tt.slot, costs.Tomestones, tt.want)
		}
	}
}

// One ring matches exactly and binds; the other target gets the leftover
// ring, which does not match.
func TestCompareRingMatching(t *testing.T) {
	engine := NewEngine(catalog.NewMemory(), emptyProfile())

	set := bisSet(
		bis(catalog.SlotRingR, 1001, gearset.SourceUnknown), // item A
		bis(catalog.SlotRingL, 1002, gearset.SourceUnknown), // item B
	)
	equipped := []gearset.EquippedItem{
		worn(catalog.SlotRingR, 1002), // item B on the other physical slot
		worn(catalog.SlotRingL, 1003), // item C
	}

	comparisons, _ := engine.Compare(equipped, set)
	byWhat := map[catalog.SlotID]SlotComparison{}
	for _, c := range comparisons {
		byWhat[c.Slot] = c
	}

	if !byWhat[catalog.SlotRingL].Owned {
		t.Fatalf("ring L (item B) should be owned via cross-slot match")
	}
	if byWhat[catalog.SlotRingR].Owned {
		t.Fatalf("ring R (item A) should not be owned, only item C was left")
	}
	if byWhat[catalog.SlotRingR].Current == nil || byWhat[catalog.SlotRingR].Current.ItemID != 1003 {
		t.Fatalf("ring R should have been assigned the leftover ring, got %+v", byWhat[catalog.SlotRingR].Current)
	}
}

// Exact-match precedence is commutative: when both targets are worn, both
// are owned no matter which physical slot carries which ring.
func TestCompareRingMatchingCommutative(t *testing.T) {
	engine := NewEngine(catalog.NewMemory(), emptyProfile())
	set := bisSet(
		bis(catalog.SlotRingR, 1001, gearset.SourceUnknown),
		bis(catalog.SlotRingL, 1002, gearset.SourceUnknown),
	)

	straight := []gearset.EquippedItem{worn(catalog.SlotRingR, 1001), worn(catalog.SlotRingL, 1002)}
	crossed := []gearset.EquippedItem{worn(catalog.SlotRingR, 1002), worn(catalog.SlotRingL, 1001)}

	for _, equipped := range [][]gearset.EquippedItem{straight, crossed} {
		comparisons, _ := engine.Compare(equipped, set)
		for _, c := range comparisons {
			if !c.Owned {
				t.Fatalf("expected both rings owned, got %+v", comparisons)
			}
		}
	}
}

func TestCompareIdempotent(t *testing.T) {
	engine := NewEngine(catalog.NewMemory(), emptyProfile())
	set := bisSet(
		bis(catalog.SlotMainHand, 500, gearset.SourceTomestone),
		bis(catalog.SlotHead, 501, gearset.SourceAugmented),
		bis(catalog.SlotRingR, 502, gearset.SourceSavage),
	)
	equipped := []gearset.EquippedItem{worn(catalog.SlotHead, 999)}

	c1, costs1 := engine.Compare(equipped, set)
	c2, costs2 := engine.Compare(equipped, set)

	if !reflect.DeepEqual(c1, c2) {
		t.Fatalf("comparisons differ between identical runs:\n%+v\n%+v", c1, c2)
	}
	if !reflect.DeepEqual(costs1, costs2) {
		t.Fatalf("costs differ between identical runs:\n%+v\n%+v", costs1, costs2)
	}
}

func TestCompareBooksAlwaysFourFloors(t *testing.T) {
	engine := NewEngine(catalog.NewMemory(), emptyProfile())

	_, costs := engine.Compare(nil, bisSet(bis(catalog.SlotHead, 42, gearset.SourceTomestone)))
	if len(costs.Books) != Floors {
		t.Fatalf("books map has %d keys, want %d", len(costs.Books), Floors)
	}
	for floor := 1; floor <= Floors; floor++ {
		if n, ok := costs.Books[floor]; !ok || n != 0 {
			t.Fatalf("floor %d = %d (present=%v), want 0", floor, n, ok)
		}
	}
}

func TestCompareAugmentedMaterials(t *testing.T) {
	tests := []struct {
		slot    catalog.SlotID
		twine   int
		glaze   int
		solvent int
	}{
		{catalog.SlotMainHand, 0, 0, 1},
		{catalog.SlotHead, 1, 0, 0},
		{catalog.SlotBody, 1, 0, 0},
		{catalog.SlotLegs, 1, 0, 0},
		{catalog.SlotFeet, 1, 0, 0},
		{catalog.SlotEars, 0, 1, 0},
		{catalog.SlotRingR, 0, 1, 0},
	}
	for _, tt := range tests {
		engine := NewEngine(catalog.NewMemory(), emptyProfile())
		comparisons, costs := engine.Compare(nil, bisSet(bis(tt.slot, 42, gearset.SourceAugmented)))
		if costs.Twine != tt.twine || costs.Glaze != tt.glaze || costs.Solvent != tt.solvent {
			t.Fatalf("slot %d materials = %d/%d/%d, want %d/%d/%d",
				tt.slot, costs.Twine, costs.Glaze, costs.Solvent, tt.twine, tt.glaze, tt.solvent)
		}
		if comparisons[0].Label != "Tomes + Upgrade" {
			t.Fatalf("slot %d label = %q, want %q", tt.slot, comparisons[0].Label, "Tomes + Upgrade")
		}
	}
}

func TestCompareSavageUsesCatalogBookCost(t *testing.T) {
	cat := catalog.NewMemory()
	cat.AddItem(catalog.Item{ID: 304, Name: "Mythos Tome IV"})
	cat.AddItem(catalog.Item{ID: 220, Name: "Grand Champion's Blade", ItemLevel: 755})
	cat.AddOffer(catalog.ExchangeOffer{
		Costs:    []catalog.OfferCost{{ItemID: 304, Quantity: 8}},
		Receives: []uint32{220},
	})
	profile := emptyProfile()
	profile.BookKeyword = "Mythos Tome"

	engine := NewEngine(cat, profile)
	comparisons, costs := engine.Compare(nil, bisSet(bis(catalog.SlotMainHand, 220, gearset.SourceSavage)))

	if costs.Books[4] != 8 {
		t.Fatalf("floor 4 books = %d, want 8", costs.Books[4])
	}
	if comparisons[0].Label != "4 Savage" {
		t.Fatalf("label = %q, want %q", comparisons[0].Label, "4 Savage")
	}
}

func TestCompareSavageFallbackQuantity(t *testing.T) {
	engine := NewEngine(catalog.NewMemory(), emptyProfile())
	_, costs := engine.Compare(nil, bisSet(bis(catalog.SlotEars, 42, gearset.SourceSavage)))
	if costs.Books[1] != 1 {
		t.Fatalf("floor 1 books = %d, want fallback 1", costs.Books[1])
	}
}

func TestCompareOwnedSlotContributesNothing(t *testing.T) {
	engine := NewEngine(catalog.NewMemory(), emptyProfile())
	set := bisSet(bis(catalog.SlotHead, 42, gearset.SourceTomestone))

	comparisons, costs := engine.Compare([]gearset.EquippedItem{worn(catalog.SlotHead, 42)}, set)
	if !comparisons[0].Owned {
		t.Fatalf("expected head slot owned")
	}
	if comparisons[0].Label != "" {
		t.Fatalf("owned slot label = %q, want empty", comparisons[0].Label)
	}
	if costs.Tomestones != 0 {
		t.Fatalf("owned slot must not cost, got %d tomestones", costs.Tomestones)
	}
}

func TestCompareUnknownSource(t *testing.T) {
	engine := NewEngine(catalog.NewMemory(), emptyProfile())
	comparisons, costs := engine.Compare(nil, bisSet(bis(catalog.SlotHead, 42, gearset.SourceCrafted)))

	if comparisons[0].Label != "Unknown" {
		t.Fatalf("crafted label = %q, want %q", comparisons[0].Label, "Unknown")
	}
	if costs.Tomestones != 0 || costs.Twine+costs.Glaze+costs.Solvent != 0 {
		t.Fatalf("crafted gear must not cost, got %+v", costs)
	}
}
