// Package search runs breadth-first searches over a private copy of a grid.
//
// The caller steers the search with a Decide function. Decide may write to
// the working copy it receives (to stage markers or remember visits); those
// writes never reach the grid passed to Run.
package search

import "github.com/brensch/hypersonic/game"

// Decision tells the search what to do with a visited cell.
type Decision int

const (
	// Ignore dead-ends the cell: it is neither expanded nor marked Processed.
	Ignore Decision = iota
	// Found stops the search and reports the cell.
	Found
	// Continue marks the cell Processed and enqueues its neighbours.
	Continue
)

func (d Decision) String() string {
	switch d {
	case Ignore:
		return "ignore"
	case Found:
		return "found"
	case Continue:
		return "continue"
	}
	return "unknown"
}

// Decide is consulted once per dequeued, in-bounds, unprocessed cell.
type Decide func(p game.Position, work *game.Grid) Decision

// Result is the outcome of a search. When nothing was found Pos is the start
// position, so call sites that treat "start" as a no-op keep working.
type Result struct {
	Pos   game.Position
	Found bool
}

// Run searches g from start, expanding neighbours up, left, down, right.
func Run(g *game.Grid, start game.Position, decide Decide) Result {
	work := g.Clone()
	queue := make([]game.Position, 0, len(work.Cells))
	queue = append(queue, start)

	for head := 0; head < len(queue); head++ {
		next := queue[head]

		s, ok := work.Get(next)
		if !ok || s == game.Processed {
			continue
		}

		switch decide(next, work) {
		case Found:
			return Result{Pos: next, Found: true}
		case Ignore:
			continue
		}

		work.Set(next, game.Processed)
		for _, n := range next.Neighbours() {
			queue = append(queue, n)
		}
	}

	return Result{Pos: start}
}
