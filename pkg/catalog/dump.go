package catalog

import (
	"fmt"
	"os"

	"github.com/tidwall/gjson"
)

// LoadDump reads a catalog dump JSON file into a Memory catalog.
//
// The dump format is a single object with "items", "offers", "materia",
// "budgets", "slotPercents", "foods", "content" and "jobs" arrays. Records
// with a zero id are skipped; unknown fields are ignored so dumps from newer
// extract tooling keep loading.
func LoadDump(path string) (*Memory, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog dump: %w", err)
	}
	if !gjson.ValidBytes(b) {
		return nil, fmt.Errorf("catalog dump %s is not valid JSON", path)
	}
	return ParseDump(string(b)), nil
}

// ParseDump fills a Memory catalog from a dump JSON document.
func ParseDump(doc string) *Memory {
	m := NewMemory()

	gjson.Get(doc, "items").ForEach(func(_, v gjson.Result) bool {
		id := uint32(v.Get("id").Uint())
		if id == 0 {
			return true
		}
		it := Item{
			ID:        id,
			Name:      v.Get("name").String(),
			ItemLevel: uint32(v.Get("itemLevel").Uint()),
			Icon:      uint32(v.Get("icon").Uint()),
		}
		v.Get("slots").ForEach(func(_, s gjson.Result) bool {
			it.Slots |= Flag(SlotID(s.Int()))
			return true
		})
		stats := v.Get("stats")
		if stats.Exists() {
			it.BaseStats = make(map[StatID]int)
			stats.ForEach(func(k, sv gjson.Result) bool {
				it.BaseStats[StatID(k.Int())] = int(sv.Int())
				return true
			})
		}
		m.AddItem(it)
		return true
	})

	gjson.Get(doc, "offers").ForEach(func(_, v gjson.Result) bool {
		var o ExchangeOffer
		v.Get("costs").ForEach(func(_, c gjson.Result) bool {
			o.Costs = append(o.Costs, OfferCost{
				ItemID:   uint32(c.Get("id").Uint()),
				Quantity: int(c.Get("qty").Int()),
			})
			return true
		})
		v.Get("receives").ForEach(func(_, r gjson.Result) bool {
			o.Receives = append(o.Receives, uint32(r.Uint()))
			return true
		})
		if len(o.Costs) > 0 || len(o.Receives) > 0 {
			m.AddOffer(o)
		}
		return true
	})

	gjson.Get(doc, "materia").ForEach(func(_, v gjson.Result) bool {
		var row MateriaRow
		v.Get("grades").ForEach(func(_, g gjson.Result) bool {
			row.Grades = append(row.Grades, MateriaGrade{
				ItemID: uint32(g.Get("id").Uint()),
				Stat:   StatID(g.Get("stat").Int()),
				Value:  int(g.Get("value").Int()),
			})
			return true
		})
		if len(row.Grades) > 0 {
			m.AddMateriaRow(row)
		}
		return true
	})

	gjson.Get(doc, "budgets").ForEach(func(_, v gjson.Result) bool {
		il := uint32(v.Get("itemLevel").Uint())
		if il == 0 {
			return true
		}
		budget := make(map[StatID]int)
		v.Get("stats").ForEach(func(k, sv gjson.Result) bool {
			budget[StatID(k.Int())] = int(sv.Int())
			return true
		})
		m.SetStatBudget(il, budget)
		return true
	})

	gjson.Get(doc, "slotPercents").ForEach(func(_, v gjson.Result) bool {
		m.SetSlotPercent(SlotPercentRow{
			Stat:          StatID(v.Get("stat").Int()),
			OneHandWeapon: int(v.Get("oneHandWeapon").Int()),
			TwoHandWeapon: int(v.Get("twoHandWeapon").Int()),
			OffHand:       int(v.Get("offHand").Int()),
			Head:          int(v.Get("head").Int()),
			Chest:         int(v.Get("chest").Int()),
			Hands:         int(v.Get("hands").Int()),
			Legs:          int(v.Get("legs").Int()),
			Feet:          int(v.Get("feet").Int()),
			Earring:       int(v.Get("earring").Int()),
			Necklace:      int(v.Get("necklace").Int()),
			Bracelet:      int(v.Get("bracelet").Int()),
			Ring:          int(v.Get("ring").Int()),
		})
		return true
	})

	gjson.Get(doc, "foods").ForEach(func(_, v gjson.Result) bool {
		row := FoodEffectRow{ItemID: uint32(v.Get("id").Uint())}
		if row.ItemID == 0 {
			return true
		}
		v.Get("params").ForEach(func(_, p gjson.Result) bool {
			row.Params = append(row.Params, FoodParam{
				Stat:     StatID(p.Get("stat").Int()),
				Relative: p.Get("relative").Bool(),
				Percent:  int(p.Get("percent").Int()),
				MaxHQ:    int(p.Get("maxHQ").Int()),
			})
			return true
		})
		m.SetFoodEffect(row)
		return true
	})

	gjson.Get(doc, "content").ForEach(func(_, v gjson.Result) bool {
		m.AddContentEntry(ContentEntry{
			Name:    v.Get("name").String(),
			SortKey: int(v.Get("sortKey").Int()),
			Savage:  v.Get("savage").Bool(),
		})
		return true
	})

	gjson.Get(doc, "jobs").ForEach(func(_, v gjson.Result) bool {
		j := Job{Abbrev: v.Get("abbrev").String()}
		v.Get("slots").ForEach(func(_, s gjson.Result) bool {
			j.Slots |= Flag(SlotID(s.Int()))
			return true
		})
		if j.Abbrev != "" {
			m.AddJob(j)
		}
		return true
	})

	return m
}
