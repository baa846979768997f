// Package armory scrapes a character armory profile page into an
// equipped-gear snapshot. This stands in for reading gear out of the running
// game: the core only ever sees the resolved snapshot.
package armory

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/aventurescence/gearplan/pkg/catalog"
	"github.com/aventurescence/gearplan/pkg/gearset"
	"github.com/aventurescence/gearplan/pkg/providers"
	"github.com/aventurescence/gearplan/pkg/whttp"
)

// Fetch downloads a character profile page and parses its gear list.
func Fetch(ctx context.Context, profileURL string, opts providers.FetchOptions) (*gearset.EquippedGear, error) {
	client := whttp.NewClient(opts.Proxy)
	res, err := whttp.Send(ctx, &whttp.Request{URL: profileURL}, client)
	if err != nil {
		return nil, fmt.Errorf("armory: fetching profile: %w", err)
	}
	if res.StatusCode != 200 {
		return nil, fmt.Errorf("armory: profile returned status %d", res.StatusCode)
	}
	return ParseProfile(res.BodyString, opts.Job)
}

// ParseProfile extracts worn items from a profile page. Each gear piece is a
// node with data-slot / data-item-id / data-item-level attributes and
// children carrying melded materia ids. Pieces with missing or malformed
// attributes are skipped.
func ParseProfile(body, job string) (*gearset.EquippedGear, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("armory: parsing profile HTML: %w", err)
	}

	gear := &gearset.EquippedGear{Job: job}
	if job == "" {
		gear.Job = strings.TrimSpace(doc.Find(".character__job").First().Text())
	}

	doc.Find("[data-slot][data-item-id]").Each(func(_ int, s *goquery.Selection) {
		slot, ok := intAttr(s, "data-slot")
		if !ok || !catalog.ValidSlot(catalog.SlotID(slot)) {
			return
		}
		itemID, ok := intAttr(s, "data-item-id")
		if !ok || itemID == 0 {
			return
		}
		itemLevel, _ := intAttr(s, "data-item-level")

		item := gearset.EquippedItem{
			ItemID:    uint32(itemID),
			Name:      strings.TrimSpace(s.AttrOr("data-name", s.Find(".db-tooltip__item__name").First().Text())),
			ItemLevel: uint32(itemLevel),
			Slot:      catalog.SlotID(slot),
		}
		i := 0
		s.Find("[data-materia-id]").Each(func(_ int, m *goquery.Selection) {
			if i >= gearset.MateriaSlots {
				return
			}
			if id, ok := intAttr(m, "data-materia-id"); ok && id > 0 {
				item.Materia[i] = uint32(id)
				i++
			}
		})
		gear.Items = append(gear.Items, item)
	})

	if len(gear.Items) == 0 {
		return nil, fmt.Errorf("armory: no gear found on profile page")
	}
	gear.RecomputeAverage()
	return gear, nil
}

func intAttr(s *goquery.Selection, name string) (int, bool) {
	raw, exists := s.Attr(name)
	if !exists {
		return 0, false
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	return v, true
}
