package feed

import (
	"fmt"
	"io"

	"github.com/brensch/hypersonic/game"
)

// Format renders a as a single protocol line without the newline. The
// coordinates are the destination as x (column) then y (row).
func Format(a game.Action) string {
	return fmt.Sprintf("%s %d %d", a.Kind, a.Target.Col, a.Target.Row)
}

// Writer is the action sink. Each action is written with a single Write call.
type Writer struct {
	w io.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (w *Writer) Write(a game.Action) error {
	if _, err := io.WriteString(w.w, Format(a)+"\n"); err != nil {
		return fmt.Errorf("writing action: %w", err)
	}
	return nil
}
