package game

import "fmt"

// Mark is a cell reclassification produced by a search for the caller to apply.
type Mark struct {
	Pos    Position
	Symbol Symbol
}

// Board is the authoritative grid model for one game session.
//
// Current is rebuilt every tick. Previous holds the prior tick's Current as
// the feed left it, without cells reclassified by Apply, and is nil only
// before the second Ingest; it exists to detect pickups.
type Board struct {
	Width     int
	Height    int
	Current   *Grid
	Previous  *Grid
	Character Position

	// overwritten holds the cells Apply replaced, oldest first.
	overwritten []Mark
	started     bool
}

// NewBoard returns an empty board of fixed dimensions.
func NewBoard(width, height int) *Board {
	return &Board{
		Width:     width,
		Height:    height,
		Current:   NewGrid(width, height),
		Character: Nowhere,
	}
}

// Ingest archives the current snapshot and replaces it with rows. The
// character must be marked again for the new snapshot.
func (b *Board) Ingest(rows []string) error {
	if len(rows) != b.Height {
		return fmt.Errorf("ingest: got %d rows, want %d", len(rows), b.Height)
	}
	g, err := ParseGrid(rows)
	if err != nil {
		return fmt.Errorf("ingest: %w", err)
	}
	if g.Width != b.Width {
		return fmt.Errorf("ingest: %w", &RowWidthError{Row: 0, Got: g.Width, Want: b.Width})
	}
	if b.started {
		b.restore()
		b.Previous = b.Current
	}
	b.Current = g
	b.overwritten = b.overwritten[:0]
	b.Character = Nowhere
	b.started = true
	return nil
}

func (b *Board) InBounds(p Position) bool      { return b.Current.InBounds(p) }
func (b *Board) Get(p Position) (Symbol, bool) { return b.Current.Get(p) }
func (b *Board) Set(p Position, s Symbol)      { b.Current.Set(p, s) }
func (b *Board) Is(p Position, s Symbol) bool  { return b.Current.Is(p, s) }

// MarkCharacter records p as the character's position and stamps it on the grid.
func (b *Board) MarkCharacter(p Position) {
	b.Character = p
	b.Current.Set(p, Character)
}

// Apply writes reclassified cells into the current snapshot. Marks off the
// board are skipped. Applied marks are undone before the snapshot is archived.
func (b *Board) Apply(marks []Mark) {
	for _, m := range marks {
		old, ok := b.Current.Get(m.Pos)
		if !ok {
			continue
		}
		b.overwritten = append(b.overwritten, Mark{Pos: m.Pos, Symbol: old})
		b.Current.Set(m.Pos, m.Symbol)
	}
}

func (b *Board) restore() {
	for i := len(b.overwritten) - 1; i >= 0; i-- {
		m := b.overwritten[i]
		b.Current.Set(m.Pos, m.Symbol)
	}
	b.overwritten = b.overwritten[:0]
}

func (b *Board) String() string {
	return b.Current.String()
}
