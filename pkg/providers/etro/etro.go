// Package etro imports gearsets from the etro.gg JSON API.
package etro

import (
	"context"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/aventurescence/gearplan/pkg/catalog"
	"github.com/aventurescence/gearplan/pkg/gearset"
	"github.com/aventurescence/gearplan/pkg/providers"
	"github.com/aventurescence/gearplan/pkg/whttp"
)

const apiBase = "https://etro.gg/api/gearsets/"

// slotFields maps etro's payload field names to equipment slots.
var slotFields = []struct {
	field string
	slot  catalog.SlotID
}{
	{"weapon", catalog.SlotMainHand},
	{"offHand", catalog.SlotOffHand},
	{"head", catalog.SlotHead},
	{"body", catalog.SlotBody},
	{"hands", catalog.SlotHands},
	{"legs", catalog.SlotLegs},
	{"feet", catalog.SlotFeet},
	{"ears", catalog.SlotEars},
	{"neck", catalog.SlotNeck},
	{"wrists", catalog.SlotWrists},
	{"fingerR", catalog.SlotRingR},
	{"fingerL", catalog.SlotRingL},
}

type Provider struct{}

func (p *Provider) Name() string { return "etro" }

func (p *Provider) Match(rawURL string) bool {
	return strings.Contains(rawURL, "etro.gg/gearset/")
}

func (p *Provider) Fetch(ctx context.Context, rawURL string, opts providers.FetchOptions) (*providers.Gearset, error) {
	id := gearsetID(rawURL)
	if id == "" {
		return nil, fmt.Errorf("etro: no gearset id in url %q", rawURL)
	}

	client := whttp.NewClient(opts.Proxy)
	res, err := whttp.Send(ctx, &whttp.Request{URL: apiBase + id}, client)
	if err != nil {
		return nil, fmt.Errorf("etro: fetching gearset %s: %w", id, err)
	}
	if res.StatusCode != 200 {
		return nil, fmt.Errorf("etro: gearset %s returned status %d", id, res.StatusCode)
	}

	gs, err := ParseGearset(res.BodyString)
	if err != nil {
		return nil, err
	}
	gs.OriginURL = rawURL
	return gs, nil
}

// gearsetID extracts the uuid path segment after /gearset/.
func gearsetID(rawURL string) string {
	const marker = "/gearset/"
	i := strings.Index(rawURL, marker)
	if i < 0 {
		return ""
	}
	id := rawURL[i+len(marker):]
	if j := strings.IndexAny(id, "/?#"); j >= 0 {
		id = id[:j]
	}
	return id
}

// ParseGearset converts an etro API payload into the normalized DTO.
// Materia melds live in a separate map keyed by item id, with an R/L suffix
// disambiguating the two rings.
func ParseGearset(doc string) (*providers.Gearset, error) {
	if !gjson.Valid(doc) {
		return nil, fmt.Errorf("etro: response is not valid JSON")
	}

	gs := &providers.Gearset{
		Provider: "etro",
		Name:     gjson.Get(doc, "name").String(),
		Job:      gjson.Get(doc, "jobAbbrev").String(),
		FoodID:   uint32(gjson.Get(doc, "food").Uint()),
	}

	materia := gjson.Get(doc, "materia")
	for _, sf := range slotFields {
		itemID := uint32(gjson.Get(doc, sf.field).Uint())
		if itemID == 0 {
			continue
		}
		entry := providers.SlotEntry{Slot: sf.slot, ItemID: itemID}

		key := fmt.Sprintf("%d", itemID)
		switch sf.slot {
		case catalog.SlotRingR:
			key += "R"
		case catalog.SlotRingL:
			key += "L"
		}
		melds := materia.Get(key)
		if !melds.Exists() {
			melds = materia.Get(fmt.Sprintf("%d", itemID))
		}
		for i := 0; i < gearset.MateriaSlots; i++ {
			entry.Materia[i] = uint32(melds.Get(fmt.Sprintf("%d", i+1)).Uint())
		}
		gs.Slots = append(gs.Slots, entry)
	}

	if len(gs.Slots) == 0 {
		return nil, fmt.Errorf("etro: gearset %q has no items", gs.Name)
	}
	return gs, nil
}
