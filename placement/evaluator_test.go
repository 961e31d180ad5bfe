package placement

import (
	"testing"

	"github.com/brensch/hypersonic/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pos(r, c int) game.Position { return game.Position{Row: r, Col: c} }

// board builds a board from rows and marks the character at char.
func board(t *testing.T, char game.Position, rows ...string) *game.Board {
	t.Helper()
	b := game.NewBoard(len(rows[0]), len(rows))
	require.NoError(t, b.Ingest(rows))
	if char != game.Nowhere {
		b.MarkCharacter(char)
	}
	return b
}

func TestClosestTargets_SingleBox(t *testing.T) {
	b := board(t, pos(0, 0),
		".....",
		".....",
		"..0..",
		".....",
		".....",
	)
	e := New(b, 0)
	got := e.ClosestTargets(pos(0, 0), 0)
	assert.Equal(t, []game.Position{pos(2, 2)}, got.Boxes)
	assert.Empty(t, got.Marks)
}

func TestClosestTargets_NearestFirstAndCapped(t *testing.T) {
	b := board(t, pos(1, 3),
		"0.....0",
		".......",
		"0.0.0.0",
	)
	e := New(b, DefaultTargetLimit)
	got := e.ClosestTargets(pos(1, 3), 0)

	// (2,6) is as close as (2,0) but the cap is reached first.
	assert.Equal(t, []game.Position{pos(2, 2), pos(2, 4), pos(0, 0), pos(0, 6), pos(2, 0)}, got.Boxes)

	e.Limit = 2
	assert.Equal(t, []game.Position{pos(2, 2), pos(2, 4)}, e.ClosestTargets(pos(1, 3), 0).Boxes)
}

func TestClosestTargets_NeverBehindWallsOrBlasted(t *testing.T) {
	b := board(t, pos(0, 0),
		"..X0",
		".aX.",
		"X0..",
	)
	e := New(b, 0)
	got := e.ClosestTargets(pos(0, 0), 0)
	assert.Empty(t, got.Boxes)

	b2 := board(t, pos(0, 0), ".a0")
	assert.Empty(t, New(b2, 0).ClosestTargets(pos(0, 0), 0).Boxes)
}

func TestClosestTargets_NoDuplicates(t *testing.T) {
	b := board(t, pos(1, 1),
		"...",
		"...",
		".0.",
		"...",
	)
	got := New(b, 0).ClosestTargets(pos(1, 1), 0)
	assert.Equal(t, []game.Position{pos(2, 1)}, got.Boxes)
}

func TestClosestTargets_PendingBlast(t *testing.T) {
	b := board(t, pos(1, 1),
		".0...",
		"0....",
		".....",
		".R...",
		"....0",
	)
	before := b.Current.Clone()
	e := New(b, 0)
	got := e.ClosestTargets(pos(1, 1), 2)

	assert.Equal(t, []game.Position{pos(4, 4)}, got.Boxes)
	assert.ElementsMatch(t, []game.Mark{
		{Pos: pos(0, 1), Symbol: game.BoxBlasted},
		{Pos: pos(1, 0), Symbol: game.BoxBlasted},
		{Pos: pos(3, 1), Symbol: game.ItemBlasted},
	}, got.Marks)
	assert.True(t, before.Equal(b.Current), "marks are only applied by the caller")

	b.Apply(got.Marks)
	assert.Equal(t, []string{".a...", "a!...", ".....", ".b...", "....0"}, b.Current.Rows())
}

func TestBestPlacementAround_Scenario(t *testing.T) {
	rows := []string{
		".....",
		".....",
		"..0..",
		".....",
		".....",
	}

	t.Run("range 2 picks the first column candidate", func(t *testing.T) {
		b := board(t, pos(0, 0), rows...)
		e := New(b, 0)
		best := e.BestPlacementAround(pos(2, 2), 2)
		assert.Equal(t, pos(0, 2), best)
		assert.NotEqual(t, pos(2, 2), best)
	})

	t.Run("range 1 picks the adjacent cell above", func(t *testing.T) {
		b := board(t, pos(0, 0), rows...)
		e := New(b, 0)
		assert.Equal(t, pos(1, 2), e.BestPlacementAround(pos(2, 2), 1))
	})
}

func TestBestPlacementAround_PrefersMoreBoxes(t *testing.T) {
	b := board(t, pos(4, 0),
		".....",
		"..0..",
		".0.0.",
		".....",
		".....",
	)
	e := New(b, 0)
	// (2,2) sits between three boxes and lies in the target's column.
	assert.Equal(t, pos(2, 2), e.BestPlacementAround(pos(1, 2), 2))
}

func TestBestPlacementAround_RejectsUnusableCells(t *testing.T) {
	t.Run("unreachable", func(t *testing.T) {
		b := board(t, pos(0, 0),
			".X...",
			"XX...",
			"..0..",
			".....",
		)
		assert.Equal(t, game.Nowhere, New(b, 0).BestPlacementAround(pos(2, 2), 2))
	})
	t.Run("character cell and blast cells", func(t *testing.T) {
		b := board(t, pos(1, 0),
			"#..",
			".0.",
			"...",
		)
		// (1,0) is the character, (0,1)/(2,1)/(1,2) remain.
		assert.Equal(t, pos(0, 1), New(b, 0).BestPlacementAround(pos(1, 1), 1))

		b2 := board(t, pos(1, 0),
			"###",
			".0#",
			"###",
		)
		assert.Equal(t, game.Nowhere, New(b2, 0).BestPlacementAround(pos(1, 1), 1))
	})
	t.Run("no boxes", func(t *testing.T) {
		b := board(t, pos(0, 0), "...", "...")
		assert.Equal(t, game.Nowhere, New(b, 0).BestPlacementAround(pos(1, 1), 2))
	})
}

func TestHasPath(t *testing.T) {
	b := board(t, pos(0, 0),
		"..X.",
		"0.X.",
		"..@.",
		"....",
	)
	e := New(b, 0)

	assert.True(t, e.HasPath(pos(0, 0), pos(0, 0)))
	assert.True(t, e.HasPath(pos(3, 3), pos(3, 3)))
	assert.True(t, e.HasPath(pos(0, 0), pos(0, 3)))
	assert.False(t, e.HasPath(pos(0, 0), pos(1, 0)), "boxes are obstacles")
	assert.False(t, e.HasPath(pos(0, 0), pos(2, 2)), "devices are obstacles")
	assert.False(t, e.HasPath(pos(0, 0), pos(9, 9)))
	assert.False(t, e.HasPath(game.Nowhere, pos(0, 0)))
}

func TestHasPath_CharacterStandsOnOwnDevice(t *testing.T) {
	b := board(t, pos(0, 1), "X.X", "...")
	b.Set(pos(0, 1), game.Device)
	e := New(b, 0)
	assert.True(t, e.HasPath(pos(0, 1), pos(1, 2)))
}

func TestClosestSafeSpot(t *testing.T) {
	b := board(t, game.Nowhere,
		"##X.",
		"X#X.",
		"X#..",
	)
	e := New(b, 0)

	assert.Equal(t, pos(0, 3), e.ClosestSafeSpot(pos(0, 3)), "already safe returns itself")
	spot, ok := e.FindSafeSpot(pos(0, 3))
	assert.True(t, ok)
	assert.Equal(t, pos(0, 3), spot)

	assert.Equal(t, pos(2, 2), e.ClosestSafeSpot(pos(0, 0)))
}

func TestClosestSafeSpot_Trapped(t *testing.T) {
	b := board(t, game.Nowhere, "#X.", "X..")
	e := New(b, 0)
	spot, ok := e.FindSafeSpot(pos(0, 0))
	assert.False(t, ok)
	assert.Equal(t, pos(0, 0), spot)
	assert.Equal(t, pos(0, 0), e.ClosestSafeSpot(pos(0, 0)))
}

func TestSafeToBomb(t *testing.T) {
	t.Run("open board has an escape", func(t *testing.T) {
		b := board(t, pos(2, 2), ".....", ".....", ".....", ".....", ".....")
		before := b.Current.Clone()
		assert.True(t, New(b, 0).SafeToBomb(pos(2, 2), 2))
		assert.True(t, before.Equal(b.Current))
	})
	t.Run("dead-end corridor has none", func(t *testing.T) {
		b := board(t, pos(0, 0), "...X")
		before := b.Current.Clone()
		assert.False(t, New(b, 0).SafeToBomb(pos(0, 0), 3))
		assert.True(t, before.Equal(b.Current))
	})
	t.Run("corner escape around a turn", func(t *testing.T) {
		b := board(t, pos(0, 0), "..0", "X..")
		assert.True(t, New(b, 0).SafeToBomb(pos(0, 0), 2))
	})
}

func TestBestSafePlacementAround_RejectsDeadEnds(t *testing.T) {
	b := board(t, pos(2, 1),
		"X0X",
		"X.X",
		"X.X",
	)
	e := New(b, 0)
	assert.Equal(t, pos(1, 1), e.BestPlacementAround(pos(0, 1), 2))
	assert.Equal(t, game.Nowhere, e.BestSafePlacementAround(pos(0, 1), 2))

	open := board(t, pos(2, 1),
		"X0XXX",
		"X....",
		"X.XXX",
	)
	before := open.Current.Clone()
	e = New(open, 0)
	assert.Equal(t, pos(1, 1), e.BestSafePlacementAround(pos(0, 1), 2))
	assert.True(t, before.Equal(open.Current), "escape checks run on copies")
}
