package store

import (
	"fmt"
	"sort"

	"github.com/parquet-go/parquet-go"
)

// ReadTicks loads every row of a session file ordered by tick.
func ReadTicks(path string) ([]TickRow, error) {
	rows, err := parquet.ReadFile[TickRow](path)
	if err != nil {
		return nil, fmt.Errorf("read parquet %s: %w", path, err)
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Tick < rows[j].Tick })
	return rows, nil
}
