// Package xivgear imports gearsets from the xivgear.app shortlink API.
package xivgear

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/aventurescence/gearplan/pkg/catalog"
	"github.com/aventurescence/gearplan/pkg/gearset"
	"github.com/aventurescence/gearplan/pkg/providers"
	"github.com/aventurescence/gearplan/pkg/whttp"
)

const apiBase = "https://api.xivgear.app/shortlink/"

var slotFields = []struct {
	field string
	slot  catalog.SlotID
}{
	{"Weapon", catalog.SlotMainHand},
	{"OffHand", catalog.SlotOffHand},
	{"Head", catalog.SlotHead},
	{"Body", catalog.SlotBody},
	{"Hand", catalog.SlotHands},
	{"Legs", catalog.SlotLegs},
	{"Feet", catalog.SlotFeet},
	{"Ears", catalog.SlotEars},
	{"Neck", catalog.SlotNeck},
	{"Wrist", catalog.SlotWrists},
	{"RingRight", catalog.SlotRingR},
	{"RingLeft", catalog.SlotRingL},
}

type Provider struct{}

func (p *Provider) Name() string { return "xivgear" }

func (p *Provider) Match(rawURL string) bool {
	return strings.Contains(rawURL, "xivgear.app")
}

func (p *Provider) Fetch(ctx context.Context, rawURL string, opts providers.FetchOptions) (*providers.Gearset, error) {
	id := shareID(rawURL)
	if id == "" {
		return nil, fmt.Errorf("xivgear: no share id in url %q", rawURL)
	}

	client := whttp.NewClient(opts.Proxy)
	res, err := whttp.Send(ctx, &whttp.Request{URL: apiBase + id}, client)
	if err != nil {
		return nil, fmt.Errorf("xivgear: fetching set %s: %w", id, err)
	}
	if res.StatusCode != 200 {
		return nil, fmt.Errorf("xivgear: set %s returned status %d", id, res.StatusCode)
	}

	gs, err := ParseGearset(res.BodyString, opts.Job)
	if err != nil {
		return nil, err
	}
	gs.OriginURL = rawURL

	// Older share payloads carry no set name; the share page title does.
	if gs.Name == "" {
		if page, err := whttp.Send(ctx, &whttp.Request{URL: rawURL}, client); err == nil && page.HTMLTitle != "" {
			gs.Name = page.HTMLTitle
		}
	}
	return gs, nil
}

// shareID extracts the page=sl|<id> query parameter or the trailing path
// segment of a share URL.
func shareID(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	if page := u.Query().Get("page"); page != "" {
		return strings.TrimPrefix(page, "sl|")
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) > 0 {
		return segments[len(segments)-1]
	}
	return ""
}

// ParseGearset converts a xivgear shortlink payload into the normalized DTO.
// Sheet payloads hold multiple sets; job selects among them, defaulting to
// the first.
func ParseGearset(doc, job string) (*providers.Gearset, error) {
	if !gjson.Valid(doc) {
		return nil, fmt.Errorf("xivgear: response is not valid JSON")
	}

	set := gjson.Parse(doc)
	if sets := set.Get("sets"); sets.IsArray() {
		arr := sets.Array()
		if len(arr) == 0 {
			return nil, fmt.Errorf("xivgear: sheet has no sets")
		}
		set = arr[0]
		if job != "" {
			for _, candidate := range arr {
				if strings.EqualFold(candidate.Get("job").String(), job) {
					set = candidate
					break
				}
			}
		}
	}

	gs := &providers.Gearset{
		Provider: "xivgear",
		Name:     set.Get("name").String(),
		Job:      set.Get("job").String(),
		FoodID:   uint32(set.Get("food").Uint()),
	}
	if gs.Job == "" {
		gs.Job = gjson.Get(doc, "job").String()
	}

	items := set.Get("items")
	for _, sf := range slotFields {
		item := items.Get(sf.field)
		itemID := uint32(item.Get("id").Uint())
		if itemID == 0 {
			continue
		}
		entry := providers.SlotEntry{Slot: sf.slot, ItemID: itemID}
		i := 0
		item.Get("materia").ForEach(func(_, m gjson.Result) bool {
			if i >= gearset.MateriaSlots {
				return false
			}
			entry.Materia[i] = uint32(m.Get("id").Uint())
			i++
			return true
		})
		gs.Slots = append(gs.Slots, entry)
	}

	if len(gs.Slots) == 0 {
		return nil, fmt.Errorf("xivgear: set %q has no items", gs.Name)
	}
	return gs, nil
}
