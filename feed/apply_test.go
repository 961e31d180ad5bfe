package feed

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brensch/hypersonic/game"
)

func TestApply_StampsEntities(t *testing.T) {
	r := NewReader(strings.NewReader(session))
	h, err := r.Header()
	require.NoError(t, err)
	tick, err := r.Next()
	require.NoError(t, err)

	b := game.NewBoard(h.Width, h.Height)
	require.NoError(t, Apply(b, tick, h.MyID))

	assert.Equal(t, game.Position{Row: 0, Col: 0}, b.Character)
	assert.Equal(t, []string{
		"!....",
		".0X..",
		".R@##",
	}, b.Current.Rows())
}

func TestApply_ImminentDevicesGoFirst(t *testing.T) {
	b := game.NewBoard(7, 1)
	tick := Tick{
		Rows: []string{"......."},
		Entities: []Entity{
			{Type: EntityDevice, X: 0, Y: 0, Param1: 8, Param2: 4},
			{Type: EntityDevice, Owner: 1, X: 6, Y: 0, Param1: 2, Param2: 4},
		},
	}
	require.NoError(t, Apply(b, tick, 0))
	assert.Equal(t, "@##***@", b.String())
}

func TestApply_IgnoresOtherCharacters(t *testing.T) {
	b := game.NewBoard(3, 1)
	tick := Tick{
		Rows: []string{"..."},
		Entities: []Entity{
			{Type: EntityCharacter, Owner: 1, X: 2, Y: 0},
		},
	}
	require.NoError(t, Apply(b, tick, 0))
	assert.Equal(t, game.Nowhere, b.Character)
	assert.Equal(t, "...", b.String())
}

func TestApply_Errors(t *testing.T) {
	b := game.NewBoard(3, 1)
	assert.Error(t, Apply(b, Tick{Rows: []string{".."}}, 0))
	assert.Error(t, Apply(b, Tick{
		Rows:     []string{"..."},
		Entities: []Entity{{Type: EntityCharacter, X: 3, Y: 0}},
	}, 0))
}
