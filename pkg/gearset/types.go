// Package gearset holds the normalized gear models shared by the matching
// and stat engines: target best-in-slot sets, equipped-gear snapshots and the
// acquisition-source classification built on a discovered tier profile.
package gearset

import (
	"time"

	"github.com/aventurescence/gearplan/pkg/catalog"
)

// MateriaSlots is the fixed number of meld slots an item can carry.
const MateriaSlots = 5

// Source tags how a piece of gear is acquired.
type Source int

const (
	SourceUnknown Source = iota
	SourceSavage
	SourceTomestone
	SourceAugmented
	SourceCrafted
)

func (s Source) String() string {
	switch s {
	case SourceSavage:
		return "savage"
	case SourceTomestone:
		return "tomestone"
	case SourceAugmented:
		return "augmented"
	case SourceCrafted:
		return "crafted"
	}
	return "unknown"
}

// ParseSource is the inverse of Source.String; unrecognized input maps to
// SourceUnknown.
func ParseSource(s string) Source {
	switch s {
	case "savage":
		return SourceSavage
	case "tomestone":
		return SourceTomestone
	case "augmented":
		return SourceAugmented
	case "crafted":
		return SourceCrafted
	}
	return SourceUnknown
}

// BiSItem is one target slot of a best-in-slot set. Materia entries are item
// ids, zero meaning an empty meld slot.
type BiSItem struct {
	ItemID    uint32
	Name      string
	ItemLevel uint32
	Slot      catalog.SlotID
	Source    Source
	Floor     int
	Materia   [MateriaSlots]uint32
}

// SourceKind describes how a Set came to exist.
const (
	SetManual   = "manual"
	SetImported = "imported"
)

// Set is a per-job best-in-slot target. Re-imports overwrite the whole set;
// manual edits touch single slots.
type Set struct {
	Job        string
	Name       string
	SourceKind string
	OriginURL  string
	Slots      map[catalog.SlotID]*BiSItem
	FoodID     uint32
	UpdatedAt  time.Time
}

// NewSet returns an empty set for a job.
func NewSet(job string) *Set {
	return &Set{
		Job:        job,
		SourceKind: SetManual,
		Slots:      make(map[catalog.SlotID]*BiSItem),
	}
}

// EquippedItem is one currently-worn piece from a gear snapshot.
type EquippedItem struct {
	ItemID    uint32
	Name      string
	ItemLevel uint32
	Slot      catalog.SlotID
	Materia   [MateriaSlots]uint32
}

// EquippedGear is a snapshot of a job's worn gear. AvgItemLevel is derived
// and recomputed on every snapshot; the engines only read it.
type EquippedGear struct {
	Job          string
	AvgItemLevel float64
	Items        []EquippedItem
}

// RecomputeAverage refreshes AvgItemLevel from the snapshot's items.
func (g *EquippedGear) RecomputeAverage() {
	if len(g.Items) == 0 {
		g.AvgItemLevel = 0
		return
	}
	var sum uint64
	for _, it := range g.Items {
		sum += uint64(it.ItemLevel)
	}
	g.AvgItemLevel = float64(sum) / float64(len(g.Items))
}
