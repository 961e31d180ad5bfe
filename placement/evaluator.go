// Package placement scores where to put a device and answers the spatial
// questions the agent asks each tick: which boxes are closest, is a cell
// reachable, and where is the nearest safe tile.
package placement

import (
	"github.com/brensch/hypersonic/game"
	"github.com/brensch/hypersonic/rules"
	"github.com/brensch/hypersonic/search"
)

// DefaultTargetLimit caps how many boxes ClosestTargets reports.
const DefaultTargetLimit = 5

// Targets is the result of ClosestTargets.
//
// Marks lists cells reclassified as caught by the pending blast. They are
// staged in the search's working copy only; the caller decides whether to
// apply them to the board.
type Targets struct {
	Boxes []game.Position
	Marks []game.Mark
}

// Evaluator answers placement queries against one board.
type Evaluator struct {
	Board *game.Board
	Limit int
}

func New(board *game.Board, limit int) *Evaluator {
	if limit <= 0 {
		limit = DefaultTargetLimit
	}
	return &Evaluator{Board: board, Limit: limit}
}

// ClosestTargets returns up to Limit boxes reachable from `from`, nearest first.
//
// When pendingRange is positive, cells on from's row or column within that
// range are treated as destroyed by a device about to be placed at from.
func (e *Evaluator) ClosestTargets(from game.Position, pendingRange int) Targets {
	var out Targets
	search.Run(e.Board.Current, from, func(p game.Position, work *game.Grid) search.Decision {
		s, _ := work.Get(p)
		if s == game.Wall || s == game.BoxBlasted || s == game.ItemBlasted {
			return search.Ignore
		}
		if s == game.Device && p != from {
			return search.Ignore
		}

		if pendingRange > 0 && inLine(from, p, pendingRange) {
			var caught game.Symbol
			switch {
			case s.IsBox():
				caught = game.BoxBlasted
			case s == game.ItemRangeUpgrade || s == game.ItemCountUpgrade:
				caught = game.ItemBlasted
			}
			if caught != 0 {
				work.Set(p, caught)
				out.Marks = append(out.Marks, game.Mark{Pos: p, Symbol: caught})
				return search.Ignore
			}
		}

		if s.IsBox() {
			out.Boxes = append(out.Boxes, p)
			if len(out.Boxes) >= e.Limit {
				return search.Found
			}
			// Recorded boxes absorb the search like they absorb a blast.
			work.Set(p, game.BoxBlasted)
			return search.Ignore
		}
		return search.Continue
	})
	return out
}

func inLine(from, p game.Position, rng int) bool {
	switch {
	case p.Row == from.Row:
		return abs(p.Col-from.Col) <= rng
	case p.Col == from.Col:
		return abs(p.Row-from.Row) <= rng
	}
	return false
}

// BestPlacementAround returns the reachable cell in line with target where a
// device of range rng destroys the most boxes. Column candidates are scanned
// before row candidates and ties keep the earlier cell. Nowhere means no
// candidate catches anything.
func (e *Evaluator) BestPlacementAround(target game.Position, rng int) game.Position {
	return e.bestPlacement(target, rng, nil)
}

// BestSafePlacementAround is BestPlacementAround restricted to cells that
// SafeToBomb accepts.
func (e *Evaluator) BestSafePlacementAround(target game.Position, rng int) game.Position {
	return e.bestPlacement(target, rng, func(c game.Position) bool {
		return e.SafeToBomb(c, rng)
	})
}

func (e *Evaluator) bestPlacement(target game.Position, rng int, accept func(game.Position) bool) game.Position {
	g := e.Board.Current
	best := game.Nowhere
	bestCount := 0

	consider := func(c game.Position) {
		if !g.InBounds(c) {
			return
		}
		n := rules.CountCaught(g, c, rng)
		if n <= bestCount || !e.applicable(c) {
			return
		}
		if accept != nil && !accept(c) {
			return
		}
		best = c
		bestCount = n
	}

	for r := target.Row - rng; r <= target.Row+rng; r++ {
		if r != target.Row {
			consider(game.Position{Row: r, Col: target.Col})
		}
	}
	for c := target.Col - rng; c <= target.Col+rng; c++ {
		if c != target.Col {
			consider(game.Position{Row: target.Row, Col: c})
		}
	}
	return best
}

func (e *Evaluator) applicable(c game.Position) bool {
	if c == e.Board.Character {
		return false
	}
	s, _ := e.Board.Get(c)
	if s.IsObstacle() || s.IsHazard() || s == game.Character {
		return false
	}
	return e.HasPath(e.Board.Character, c)
}

// HasPath reports whether to can be walked to from `from`. The character's
// own cell is never an obstacle, even while a device sits on it.
func (e *Evaluator) HasPath(from, to game.Position) bool {
	g := e.Board.Current
	if !g.InBounds(from) || !g.InBounds(to) {
		return false
	}
	res := search.Run(g, from, func(p game.Position, work *game.Grid) search.Decision {
		s, _ := work.Get(p)
		if s.IsObstacle() && p != e.Board.Character {
			return search.Ignore
		}
		if p == to {
			return search.Found
		}
		return search.Continue
	})
	return res.Found && res.Pos == to
}

// ClosestSafeSpot returns the nearest reachable cell outside every pending
// blast. It returns from both when from is already safe and when no safe cell
// can be reached; use FindSafeSpot to tell the two apart.
func (e *Evaluator) ClosestSafeSpot(from game.Position) game.Position {
	p, _ := closestSafeSpot(e.Board.Current, from)
	return p
}

// FindSafeSpot is ClosestSafeSpot with an explicit found flag.
func (e *Evaluator) FindSafeSpot(from game.Position) (game.Position, bool) {
	return closestSafeSpot(e.Board.Current, from)
}

func closestSafeSpot(g *game.Grid, from game.Position) (game.Position, bool) {
	res := search.Run(g, from, func(p game.Position, work *game.Grid) search.Decision {
		s, _ := work.Get(p)
		if s.IsObstacle() && p != from {
			return search.Ignore
		}
		if !s.IsHazard() && s != game.Device {
			return search.Found
		}
		return search.Continue
	})
	return res.Pos, res.Found
}

// SafeToBomb reports whether a device placed at pos now would leave an escape
// route. The simulation runs on a copy; the board is never modified.
func (e *Evaluator) SafeToBomb(pos game.Position, rng int) bool {
	sim := e.Board.Current.Clone()
	rules.PlaceDevice(sim, pos, rng, rules.FullCountdown)
	spot, found := closestSafeSpot(sim, pos)
	return found && spot != pos
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
