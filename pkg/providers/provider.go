// Package providers contains the adapters that turn third-party gearset
// representations into the core's normalized shape. Each adapter validates
// at its own boundary; malformed slots never reach the core's mutation entry
// points.
package providers

import (
	"context"

	"github.com/aventurescence/gearplan/pkg/catalog"
	"github.com/aventurescence/gearplan/pkg/gearset"
	"github.com/aventurescence/gearplan/pkg/tier"
)

// FetchOptions carries optional controls shared by all providers.
type FetchOptions struct {
	// Job filters multi-job payloads down to one job where the provider
	// supports it.
	Job string
	// Proxy is an optional HTTP proxy URL, useful for debugging.
	Proxy string
}

// SlotEntry is one imported gear slot. Item names and levels are resolved
// against the catalog later, in Apply; providers only carry ids.
type SlotEntry struct {
	Slot    catalog.SlotID
	ItemID  uint32
	Materia [gearset.MateriaSlots]uint32
}

// Gearset is the validated import DTO handed to the core.
type Gearset struct {
	Provider  string
	Name      string
	Job       string
	OriginURL string
	FoodID    uint32
	Slots     []SlotEntry
}

// Provider defines a common interface for gearset import adapters,
// abstracting away transport and payload details per third-party site.
type Provider interface {
	Name() string
	// Match reports whether this provider recognizes the URL.
	Match(rawURL string) bool
	Fetch(ctx context.Context, rawURL string, opts FetchOptions) (*Gearset, error)
}

// Resolve picks the first provider that recognizes the URL.
func Resolve(rawURL string, available ...Provider) (Provider, bool) {
	for _, p := range available {
		if p.Match(rawURL) {
			return p, true
		}
	}
	return nil, false
}

// Apply writes the imported gearset into a set through the core's mutation
// entry points, resolving names and item levels from the catalog. Slots the
// core rejects are counted out. Returns how many slots were stored.
func (g *Gearset) Apply(set *gearset.Set, profile *tier.Profile, cat catalog.Catalog) int {
	set.Name = g.Name
	set.SourceKind = gearset.SetImported
	set.OriginURL = g.OriginURL

	stored := 0
	for _, entry := range g.Slots {
		var name string
		var itemLevel uint32
		if it, ok := cat.Item(entry.ItemID); ok {
			name = it.Name
			itemLevel = it.ItemLevel
		}
		if set.ClassifyAndStore(entry.Slot, entry.ItemID, name, itemLevel, entry.Materia, profile) {
			stored++
		}
	}
	set.SetFood(g.FoodID)
	return stored
}
