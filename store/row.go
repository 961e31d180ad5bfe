// Package store records agent sessions as Parquet files, one row per tick,
// and reads them back for replay.
package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/brensch/hypersonic/agent"
	"github.com/brensch/hypersonic/game"
)

// TickRow is one decision: the board the agent saw after its own marks were
// applied, and what it chose to do.
//
// Coordinates are row/col with (0,0) at the top-left.
type TickRow struct {
	SessionID string `parquet:"session_id,dict"`
	Tick      int32  `parquet:"tick"`
	Width     int32  `parquet:"width"`
	Height    int32  `parquet:"height"`

	Rows []string `parquet:"rows"`

	CharRow int32 `parquet:"char_row"`
	CharCol int32 `parquet:"char_col"`

	Action    string `parquet:"action,dict"`
	TargetRow int32  `parquet:"target_row"`
	TargetCol int32  `parquet:"target_col"`
	Mode      string `parquet:"mode,dict"`

	Range     int32 `parquet:"range"`
	Capacity  int32 `parquet:"capacity"`
	Available int32 `parquet:"available"`

	ElapsedMicros int64 `parquet:"elapsed_us"`
}

// NewTickRow captures the outcome of one controller tick.
func NewTickRow(session uuid.UUID, tick int, b *game.Board, a game.Action, st agent.State, elapsed time.Duration) TickRow {
	return TickRow{
		SessionID:     session.String(),
		Tick:          int32(tick),
		Width:         int32(b.Width),
		Height:        int32(b.Height),
		Rows:          b.Current.Rows(),
		CharRow:       int32(b.Character.Row),
		CharCol:       int32(b.Character.Col),
		Action:        a.Kind.String(),
		TargetRow:     int32(a.Target.Row),
		TargetCol:     int32(a.Target.Col),
		Mode:          st.Mode().String(),
		Range:         int32(st.Range),
		Capacity:      int32(st.Capacity),
		Available:     int32(st.Available),
		ElapsedMicros: elapsed.Microseconds(),
	}
}

// Grid rebuilds the recorded board.
func (r TickRow) Grid() (*game.Grid, error) {
	return game.ParseGrid(r.Rows)
}

func (r TickRow) Character() game.Position {
	return game.Position{Row: int(r.CharRow), Col: int(r.CharCol)}
}

func (r TickRow) Target() game.Position {
	return game.Position{Row: int(r.TargetRow), Col: int(r.TargetCol)}
}
