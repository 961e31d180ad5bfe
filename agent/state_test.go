package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brensch/hypersonic/game"
	"github.com/brensch/hypersonic/rules"
)

func TestTickCooldowns_ChargeReturnsWhenTimerGoesNegative(t *testing.T) {
	s := newState(2, 1)
	require.True(t, s.Spend())
	require.Equal(t, 0, s.Available)
	require.Equal(t, []int{rules.FullCountdown}, s.Cooldowns)

	for i := 0; i < rules.FullCountdown; i++ {
		assert.Zero(t, s.TickCooldowns(), "tick %d", i+1)
		assert.Equal(t, 0, s.Available, "tick %d", i+1)
	}
	assert.Equal(t, []int{0}, s.Cooldowns)

	assert.Equal(t, 1, s.TickCooldowns())
	assert.Equal(t, 1, s.Available)
	assert.Empty(t, s.Cooldowns)
}

func TestTickCooldowns_OnlyFrontTimersPop(t *testing.T) {
	s := newState(2, 3)
	s.Available = 0
	s.Cooldowns = []int{0, 0, 4}

	assert.Equal(t, 2, s.TickCooldowns())
	assert.Equal(t, 2, s.Available)
	assert.Equal(t, []int{3}, s.Cooldowns)
}

func TestSpend_NoChargeLeft(t *testing.T) {
	s := newState(2, 1)
	require.True(t, s.Spend())
	assert.False(t, s.Spend())
	assert.Len(t, s.Cooldowns, 1)
}

func TestMode(t *testing.T) {
	here := game.Position{Row: 1, Col: 1}
	there := game.Position{Row: 2, Col: 3}

	cases := []struct {
		name     string
		target   game.Position
		safeSpot game.Position
		want     Mode
	}{
		{"no target", game.Nowhere, game.Nowhere, NoTarget},
		{"walking", there, game.Nowhere, Targeting},
		{"arrived", here, game.Nowhere, Bombing},
		{"retreat wins", here, there, Retreating},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newState(2, 1)
			s.Position = here
			s.Target = tc.target
			s.SafeSpot = tc.safeSpot
			assert.Equal(t, tc.want, s.Mode())
			assert.NotEqual(t, "unknown", s.Mode().String())
		})
	}
}
