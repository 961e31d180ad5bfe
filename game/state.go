// Package game defines the board types for the Hypersonic agent.
//
// A Grid is a flat row-major slice of cell symbols. It is cheap to clone so
// searches and what-if simulations can work on private copies without
// touching the authoritative board.
package game

import "strings"

// Position is a board coordinate. Row grows downward, Col grows rightward.
type Position struct {
	Row int
	Col int
}

// Nowhere marks an unset destination.
var Nowhere = Position{Row: -1, Col: -1}

// Up, Left, Down and Right return the 4-connected neighbours.
func (p Position) Up() Position    { return Position{Row: p.Row - 1, Col: p.Col} }
func (p Position) Left() Position  { return Position{Row: p.Row, Col: p.Col - 1} }
func (p Position) Down() Position  { return Position{Row: p.Row + 1, Col: p.Col} }
func (p Position) Right() Position { return Position{Row: p.Row, Col: p.Col + 1} }

// Neighbours returns the neighbours in search expansion order: up, left, down, right.
func (p Position) Neighbours() [4]Position {
	return [4]Position{p.Up(), p.Left(), p.Down(), p.Right()}
}

// Symbol is the content of one cell. Values that appear in the feed rows use
// the same byte the referee sends.
type Symbol byte

const (
	Empty            Symbol = '.'
	Wall             Symbol = 'X'
	Box              Symbol = '0'
	BoxWithRange     Symbol = '1'
	BoxWithCount     Symbol = '2'
	BoxBlasted       Symbol = 'a'
	ItemRangeUpgrade Symbol = 'R'
	ItemCountUpgrade Symbol = 'C'
	ItemBlasted      Symbol = 'b'
	Character        Symbol = '!'
	Device           Symbol = '@'
	Blast            Symbol = '#'
	AboutToBlast     Symbol = '*'
	// Processed only ever lives in search working copies.
	Processed Symbol = ','
)

// IsBox reports whether s is an intact box of any variant.
func (s Symbol) IsBox() bool {
	return s == Box || s == BoxWithRange || s == BoxWithCount
}

// IsItem reports whether s is an item lying on the floor, destroyed or not.
func (s Symbol) IsItem() bool {
	return s == ItemRangeUpgrade || s == ItemCountUpgrade || s == ItemBlasted
}

// IsObstacle reports whether a character cannot walk onto s.
func (s Symbol) IsObstacle() bool {
	return s.IsBox() || s == Wall || s == BoxBlasted || s == Device
}

// IsHazard reports whether s is covered by a pending explosion.
func (s Symbol) IsHazard() bool {
	return s == Blast || s == AboutToBlast
}

// Grid is a fixed-size rectangular board.
type Grid struct {
	Width  int
	Height int
	Cells  []Symbol
}

// NewGrid returns a width x height grid filled with Empty.
func NewGrid(width, height int) *Grid {
	g := &Grid{Width: width, Height: height, Cells: make([]Symbol, width*height)}
	for i := range g.Cells {
		g.Cells[i] = Empty
	}
	return g
}

// ParseGrid builds a grid from feed rows. All rows must share the first row's width.
func ParseGrid(rows []string) (*Grid, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyBoard
	}
	width := len(rows[0])
	g := &Grid{Width: width, Height: len(rows), Cells: make([]Symbol, 0, width*len(rows))}
	for i, row := range rows {
		if len(row) != width {
			return nil, &RowWidthError{Row: i, Got: len(row), Want: width}
		}
		for j := 0; j < len(row); j++ {
			g.Cells = append(g.Cells, Symbol(row[j]))
		}
	}
	return g, nil
}

// InBounds reports whether p lies on the grid.
func (g *Grid) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < g.Height && p.Col >= 0 && p.Col < g.Width
}

// Get returns the symbol at p. The second result is false when p is off the board.
func (g *Grid) Get(p Position) (Symbol, bool) {
	if !g.InBounds(p) {
		return 0, false
	}
	return g.Cells[p.Row*g.Width+p.Col], true
}

// Is reports whether p is on the board and holds s.
func (g *Grid) Is(p Position, s Symbol) bool {
	got, ok := g.Get(p)
	return ok && got == s
}

// Set writes s at p. Writing off the board is a caller bug and panics.
func (g *Grid) Set(p Position, s Symbol) {
	if !g.InBounds(p) {
		panic(&OutOfBoundsError{Pos: p, Width: g.Width, Height: g.Height})
	}
	g.Cells[p.Row*g.Width+p.Col] = s
}

// Clone performs a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	if g == nil {
		return nil
	}
	out := &Grid{Width: g.Width, Height: g.Height, Cells: make([]Symbol, len(g.Cells))}
	copy(out.Cells, g.Cells)
	return out
}

// Equal reports whether both grids have the same shape and cells.
func (g *Grid) Equal(other *Grid) bool {
	if g == nil || other == nil {
		return g == other
	}
	if g.Width != other.Width || g.Height != other.Height || len(g.Cells) != len(other.Cells) {
		return false
	}
	for i := range g.Cells {
		if g.Cells[i] != other.Cells[i] {
			return false
		}
	}
	return true
}

// Rows renders the grid back into one string per row.
func (g *Grid) Rows() []string {
	rows := make([]string, g.Height)
	buf := make([]byte, g.Width)
	for r := 0; r < g.Height; r++ {
		for c := 0; c < g.Width; c++ {
			buf[c] = byte(g.Cells[r*g.Width+c])
		}
		rows[r] = string(buf)
	}
	return rows
}

func (g *Grid) String() string {
	return strings.Join(g.Rows(), "\n")
}
