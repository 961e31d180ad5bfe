// Package rules projects device blasts onto a grid.
//
// Projection walks each axis away from the device and stops at the first
// cell that absorbs or blocks the explosion. The same walk is used
// destructively by PlaceDevice and read-only by CountCaught.
package rules

import "github.com/brensch/hypersonic/game"

const (
	// FullCountdown is the number of ticks between placing a device and its detonation.
	FullCountdown = 8
	// ImminentWindow is the last stretch of a countdown during which blast cells
	// are marked AboutToBlast instead of Blast.
	ImminentWindow = 3
)

// axes are the four projection directions, in the order the referee resolves them.
var axes = [4]game.Position{{Row: 1}, {Row: -1}, {Col: 1}, {Col: -1}}

// project calls visit for each cell along the four axes of a device at pos,
// up to rng cells away. visit returns true to stop that axis; the cell passed
// to that call is the last one affected. Off-board cells stop an axis without
// being visited.
func project(g *game.Grid, pos game.Position, rng int, visit func(p game.Position, s game.Symbol) bool) {
	for _, d := range axes {
		for step := 1; step <= rng; step++ {
			p := game.Position{Row: pos.Row + d.Row*step, Col: pos.Col + d.Col*step}
			s, ok := g.Get(p)
			if !ok || visit(p, s) {
				break
			}
		}
	}
}

// stops reports whether s blocks a blast without being affected by it. A
// doomed box still stands until its blast resolves, and a device is never
// overwritten by another one's blast.
func stops(s game.Symbol) bool {
	return s == game.Wall || s.IsItem() || s.IsHazard() || s == game.Device || s == game.BoxBlasted
}

// PlaceDevice marks a device at pos and the cells its blast will cover.
// A cell that already holds a Device is left untouched and false is returned.
func PlaceDevice(g *game.Grid, pos game.Position, rng, countdown int) bool {
	if s, ok := g.Get(pos); !ok || s == game.Device {
		return false
	}
	g.Set(pos, game.Device)

	marker := game.Blast
	if countdown <= ImminentWindow {
		marker = game.AboutToBlast
	}

	project(g, pos, rng, func(p game.Position, s game.Symbol) bool {
		switch {
		case stops(s):
			return true
		case s.IsBox():
			g.Set(p, game.BoxBlasted)
			return true
		}
		g.Set(p, marker)
		return false
	})
	return true
}

// CountCaught returns how many intact boxes a device at pos would destroy.
// Devices cannot sit on a box or a wall, so those cells score zero.
func CountCaught(g *game.Grid, pos game.Position, rng int) int {
	s, ok := g.Get(pos)
	if !ok || s.IsBox() || s == game.Wall {
		return 0
	}
	boxes := 0
	project(g, pos, rng, func(_ game.Position, s game.Symbol) bool {
		switch {
		case stops(s):
			return true
		case s.IsBox():
			boxes++
			return true
		}
		return false
	})
	return boxes
}

// InBlastRange reports whether pos is covered by a pending blast or holds a device.
func InBlastRange(g *game.Grid, pos game.Position) bool {
	s, ok := g.Get(pos)
	return ok && (s.IsHazard() || s == game.Device)
}

// BlastDanger reports whether pos will explode within the imminent window.
func BlastDanger(g *game.Grid, pos game.Position) bool {
	return g.Is(pos, game.AboutToBlast)
}

// DangerNearby reports whether pos or one of its neighbours is in imminent danger.
func DangerNearby(g *game.Grid, pos game.Position) bool {
	if BlastDanger(g, pos) {
		return true
	}
	for _, n := range pos.Neighbours() {
		if BlastDanger(g, n) {
			return true
		}
	}
	return false
}
