package game

import (
	"errors"
	"fmt"
)

// ErrEmptyBoard is returned when a tick carries no rows.
var ErrEmptyBoard = errors.New("empty board")

// RowWidthError reports a feed row whose length differs from the board width.
type RowWidthError struct {
	Row  int
	Got  int
	Want int
}

func (e *RowWidthError) Error() string {
	return fmt.Sprintf("row %d has width %d, want %d", e.Row, e.Got, e.Want)
}

// OutOfBoundsError is the panic value of Grid.Set on an invalid coordinate.
type OutOfBoundsError struct {
	Pos    Position
	Width  int
	Height int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("position (%d,%d) outside %dx%d board", e.Pos.Row, e.Pos.Col, e.Width, e.Height)
}
