package tier

import (
	"sort"
	"strings"

	"github.com/aventurescence/gearplan/internal/utils"
	"github.com/aventurescence/gearplan/pkg/catalog"
)

const (
	tomestoneKeyword = "Tomestone"
	universalKeyword = "universal tomestone"

	// Current-tier tome gear sits 90 item levels above the food ceiling.
	foodItemLevelGap = 90

	// Books from an older tier still appear in leftover shop offers; an
	// offer has to yield gear within this distance of the tier's max item
	// level for its book to count as current.
	staleBookItemLevelSlack = 10

	// Fallback probe distance around a known material id.
	materialIDProbe = 10
)

var materialSuffixes = []struct {
	suffix string
	kind   materialKind
}{
	{" Twine", materialTwine},
	{" Glaze", materialGlaze},
	{" Solvent", materialSolvent},
	{" Ester", materialSolvent},
}

type materialKind int

const (
	materialTwine materialKind = iota
	materialGlaze
	materialSolvent
)

// Discover mines the catalog once and returns the tier profile. It is a pure
// function of the catalog snapshot and safe to cache for the process
// lifetime. Every phase is best-effort: a phase that finds nothing leaves its
// fields zeroed and never prevents later phases from running.
func Discover(cat catalog.Catalog) *Profile {
	p := &Profile{
		BookItems: make(map[int]uint32),
		BookIcons: make(map[int]uint32),
	}

	tomeGear := discoverTomeGear(cat, p)
	discoverUniversalTomestone(cat, p, tomeGear)
	discoverMaterials(cat, p, tomeGear)
	discoverSavageGear(cat, p)
	discoverRaidNames(cat, p)

	return p
}

// discoverTomeGear finds the current tomestone-purchased gear set: every item
// received from an offer paying with a tomestone-named currency, keeping the
// item level with the most appearances (ties broken towards the higher
// level, the current tier being the larger and newer set).
func discoverTomeGear(cat catalog.Catalog, p *Profile) map[uint32]catalog.Item {
	candidates := make(map[uint32]catalog.Item)
	levelHits := make(map[uint32]int)

	for _, offer := range cat.Offers() {
		if !offerCostNameContains(cat, offer, tomestoneKeyword, false) {
			continue
		}
		for _, id := range offer.Receives {
			it, ok := cat.Item(id)
			if !ok || it.ItemLevel == 0 {
				continue
			}
			candidates[id] = it
			levelHits[it.ItemLevel]++
		}
	}

	var bestLevel uint32
	for level, hits := range levelHits {
		if hits > levelHits[bestLevel] || (hits == levelHits[bestLevel] && level > bestLevel) {
			bestLevel = level
		}
	}

	current := make(map[uint32]catalog.Item)
	var names []string
	for id, it := range candidates {
		if it.ItemLevel == bestLevel {
			current[id] = it
			names = append(names, it.Name)
		}
	}

	p.TomeGearItemLevel = bestLevel
	p.BaseTomeGearPrefix = longestCommonPrefix(names)
	if bestLevel > foodItemLevelGap {
		p.FoodMinItemLevel = bestLevel - foodItemLevelGap
	} else if bestLevel > 0 {
		p.FoodMinItemLevel = 1
	}

	utils.Log.Debugf("tier: %d tome gear candidates, %d at item level %d, prefix %q",
		len(candidates), len(current), bestLevel, p.BaseTomeGearPrefix)

	return current
}

// discoverUniversalTomestone finds the once-per-week currency that gates the
// tome weapon: any offer that receives a current tome main-hand and costs an
// item named like a universal tomestone.
func discoverUniversalTomestone(cat catalog.Catalog, p *Profile, tomeGear map[uint32]catalog.Item) {
	for id, it := range tomeGear {
		if !it.Slots.Has(catalog.SlotMainHand) {
			continue
		}
		for _, offer := range cat.Offers() {
			if !offerReceives(offer, id) {
				continue
			}
			for _, cost := range offer.Costs {
				costItem, ok := cat.Item(cost.ItemID)
				if !ok {
					continue
				}
				if strings.Contains(strings.ToLower(costItem.Name), universalKeyword) {
					p.UniversalTomestoneID = costItem.ID
					p.UniversalTomestoneIcon = costItem.Icon
					utils.Log.Debugf("tier: universal tomestone %d (%s)", costItem.ID, costItem.Name)
					return
				}
			}
		}
	}
}

// discoverMaterials finds the augmented gear prefix and the three upgrade
// materials: offers paying with a current tome gear piece plus at least one
// other cost item receive augmented gear, and those other cost items are the
// materials.
func discoverMaterials(cat catalog.Catalog, p *Profile, tomeGear map[uint32]catalog.Item) {
	var augmentedNames []string
	found := make(map[materialKind]catalog.Item)

	for _, offer := range cat.Offers() {
		hasTomePiece := false
		var others []catalog.Item
		for _, cost := range offer.Costs {
			if _, ok := tomeGear[cost.ItemID]; ok {
				hasTomePiece = true
				continue
			}
			if cost.Quantity <= 0 {
				continue
			}
			if it, ok := cat.Item(cost.ItemID); ok {
				others = append(others, it)
			}
		}
		if !hasTomePiece || len(others) == 0 {
			continue
		}

		for _, id := range offer.Receives {
			if it, ok := cat.Item(id); ok {
				augmentedNames = append(augmentedNames, it.Name)
			}
		}
		for _, it := range others {
			lower := strings.ToLower(it.Name)
			switch {
			case strings.Contains(lower, "twine"):
				found[materialTwine] = it
			case strings.Contains(lower, "glaze"):
				found[materialGlaze] = it
			case strings.Contains(lower, "solvent"), strings.Contains(lower, "ester"):
				found[materialSolvent] = it
			}
		}
	}

	p.AugmentedGearPrefix = longestCommonPrefix(augmentedNames)

	if len(found) > 0 && len(found) < 3 {
		fillMissingMaterials(cat, found)
	}

	if it, ok := found[materialTwine]; ok {
		p.TwineID, p.TwineIcon = it.ID, it.Icon
	}
	if it, ok := found[materialGlaze]; ok {
		p.GlazeID, p.GlazeIcon = it.ID, it.Icon
	}
	if it, ok := found[materialSolvent]; ok {
		p.SolventID, p.SolventIcon = it.ID, it.Icon
	}
	p.MaterialKeyword = materialFamilyPrefix(found)

	utils.Log.Debugf("tier: augmented prefix %q, %d/3 materials, family %q",
		p.AugmentedGearPrefix, len(found), p.MaterialKeyword)
}

// materialFamilyPrefix strips the known suffix off any discovered material to
// recover the family name shared by all three (e.g. a tier's crafting line).
func materialFamilyPrefix(found map[materialKind]catalog.Item) string {
	for _, it := range found {
		for _, ms := range materialSuffixes {
			if strings.HasSuffix(it.Name, ms.suffix) {
				return strings.TrimSuffix(it.Name, ms.suffix)
			}
		}
	}
	return ""
}

// fillMissingMaterials recovers materials the offer scan missed. First pass:
// the known materials share a family prefix, so scan the whole catalog for
// siblings carrying that prefix and a known suffix. Second pass: probe ids
// close to a known material, since the three are printed as adjacent rows.
func fillMissingMaterials(cat catalog.Catalog, found map[materialKind]catalog.Item) {
	family := materialFamilyPrefix(found)
	if family != "" {
		for _, it := range cat.Items() {
			if !strings.HasPrefix(it.Name, family) {
				continue
			}
			for _, ms := range materialSuffixes {
				if _, have := found[ms.kind]; have {
					continue
				}
				if strings.HasSuffix(it.Name, ms.suffix) {
					found[ms.kind] = it
				}
			}
		}
	}
	if len(found) == 3 {
		return
	}

	var knownID uint32
	for _, it := range found {
		knownID = it.ID
		break
	}
	for delta := -materialIDProbe; delta <= materialIDProbe; delta++ {
		probe := int64(knownID) + int64(delta)
		if probe <= 0 {
			continue
		}
		it, ok := cat.Item(uint32(probe))
		if !ok {
			continue
		}
		for _, ms := range materialSuffixes {
			if _, have := found[ms.kind]; have {
				continue
			}
			if strings.HasSuffix(it.Name, ms.suffix) {
				found[ms.kind] = it
			}
		}
	}
}

// discoverSavageGear finds the floor-clear book currencies and the savage
// gear prefix. A book offer pays with no tomestone currency and at least one
// item whose name ends in a Roman numeral; the highest item level received
// across book offers defines the current savage set, and books whose offers
// only yield older gear are dropped.
func discoverSavageGear(cat catalog.Catalog, p *Profile) {
	type bookOffer struct {
		books      []catalog.Item
		maxGearIL  uint32
		gearByItem map[uint32]catalog.Item
	}
	var bookOffers []bookOffer

	for _, offer := range cat.Offers() {
		if offerCostNameContains(cat, offer, tomestoneKeyword, false) {
			continue
		}
		var books []catalog.Item
		for _, cost := range offer.Costs {
			it, ok := cat.Item(cost.ItemID)
			if !ok {
				continue
			}
			if romanFloor(it.Name) > 0 {
				books = append(books, it)
			}
		}
		if len(books) == 0 {
			continue
		}

		bo := bookOffer{books: books, gearByItem: make(map[uint32]catalog.Item)}
		for _, id := range offer.Receives {
			it, ok := cat.Item(id)
			if !ok {
				continue
			}
			bo.gearByItem[id] = it
			if it.ItemLevel > bo.maxGearIL {
				bo.maxGearIL = it.ItemLevel
			}
		}
		bookOffers = append(bookOffers, bo)
	}

	var maxIL uint32
	for _, bo := range bookOffers {
		if bo.maxGearIL > maxIL {
			maxIL = bo.maxGearIL
		}
	}
	if maxIL == 0 {
		utils.Log.Debugf("tier: no savage book offers found")
		return
	}

	var savageNames []string
	for _, bo := range bookOffers {
		for _, it := range bo.gearByItem {
			if it.ItemLevel == maxIL {
				savageNames = append(savageNames, it.Name)
			}
		}
	}
	p.RaidGearPrefix = longestCommonPrefix(savageNames)

	var bookNames []string
	for _, bo := range bookOffers {
		if bo.maxGearIL+staleBookItemLevelSlack < maxIL {
			continue
		}
		for _, book := range bo.books {
			floor := romanFloor(book.Name)
			if floor == 0 {
				continue
			}
			p.BookItems[floor] = book.ID
			p.BookIcons[floor] = book.Icon
			bookNames = append(bookNames, book.Name)
		}
	}
	p.BookKeyword = longestCommonPrefix(bookNames)

	utils.Log.Debugf("tier: %d book offers, savage item level %d, prefix %q, %d books",
		len(bookOffers), maxIL, p.RaidGearPrefix, len(p.BookItems))
}

// discoverRaidNames resolves floor names from the content listing: savage
// entries whose name carries the raid gear prefix, falling back to the four
// newest savage entries when prefix discovery came up empty. The final four
// are ordered by ascending sort key, which is floor order 1-4.
func discoverRaidNames(cat catalog.Catalog, p *Profile) {
	var entries []catalog.ContentEntry
	for _, e := range cat.ContentEntries() {
		if !e.Savage {
			continue
		}
		if p.RaidGearPrefix == "" || strings.Contains(e.Name, p.RaidGearPrefix) {
			entries = append(entries, e)
		}
	}

	if p.RaidGearPrefix == "" {
		// Keep only the four highest sort keys.
		sort.Slice(entries, func(i, j int) bool { return entries[i].SortKey > entries[j].SortKey })
		if len(entries) > 4 {
			entries = entries[:4]
		}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].SortKey < entries[j].SortKey })
	if len(entries) > 4 {
		entries = entries[:4]
	}
	for _, e := range entries {
		p.RaidNames = append(p.RaidNames, e.Name)
	}

	utils.Log.Debugf("tier: %d raid names", len(p.RaidNames))
}

func offerCostNameContains(cat catalog.Catalog, offer catalog.ExchangeOffer, keyword string, fold bool) bool {
	for _, cost := range offer.Costs {
		it, ok := cat.Item(cost.ItemID)
		if !ok {
			continue
		}
		name := it.Name
		if fold {
			name = strings.ToLower(name)
			keyword = strings.ToLower(keyword)
		}
		if strings.Contains(name, keyword) {
			return true
		}
	}
	return false
}

func offerReceives(offer catalog.ExchangeOffer, itemID uint32) bool {
	for _, id := range offer.Receives {
		if id == itemID {
			return true
		}
	}
	return false
}
