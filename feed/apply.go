package feed

import (
	"fmt"
	"sort"

	"github.com/brensch/hypersonic/game"
	"github.com/brensch/hypersonic/rules"
)

// Apply ingests t into b. Entities are stamped in a fixed order: our own
// character, then items, then devices from the most imminent to the least so
// that a cell covered by two blasts keeps the earlier one.
func Apply(b *game.Board, t Tick, myID int) error {
	if err := b.Ingest(t.Rows); err != nil {
		return err
	}

	var items, devices []Entity
	for _, e := range t.Entities {
		switch e.Type {
		case EntityCharacter:
			if e.Owner != myID {
				continue
			}
			p := game.Position{Row: e.Y, Col: e.X}
			if !b.InBounds(p) {
				return fmt.Errorf("character at %d,%d is off the board", e.X, e.Y)
			}
			b.MarkCharacter(p)
		case EntityItem:
			items = append(items, e)
		case EntityDevice:
			devices = append(devices, e)
		}
	}

	for _, e := range items {
		b.PlaceItem(game.Position{Row: e.Y, Col: e.X}, game.ItemKind(e.Param1))
	}

	sort.SliceStable(devices, func(i, j int) bool {
		return devices[i].Param1 < devices[j].Param1
	})
	for _, e := range devices {
		p := game.Position{Row: e.Y, Col: e.X}
		if !b.InBounds(p) {
			continue
		}
		rules.PlaceDevice(b.Current, p, e.Param2-1, e.Param1)
	}
	return nil
}
