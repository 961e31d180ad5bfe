package agent

import (
	"github.com/brensch/hypersonic/game"
	"github.com/brensch/hypersonic/rules"
)

// Mode is the controller's coarse state, derived from State.
type Mode int

const (
	NoTarget Mode = iota
	Targeting
	Bombing
	Retreating
)

func (m Mode) String() string {
	switch m {
	case NoTarget:
		return "no_target"
	case Targeting:
		return "targeting"
	case Bombing:
		return "bombing"
	case Retreating:
		return "retreating"
	}
	return "unknown"
}

// State is everything the agent remembers between ticks.
type State struct {
	Position game.Position
	Target   game.Position
	// SafeSpot is the retreat override; Nowhere when inactive.
	SafeSpot game.Position

	Range     int
	Capacity  int
	Available int
	// Cooldowns holds one timer per device still on the field, oldest first.
	Cooldowns []int
}

func newState(initialRange, initialCapacity int) State {
	return State{
		Position:  game.Nowhere,
		Target:    game.Nowhere,
		SafeSpot:  game.Nowhere,
		Range:     initialRange,
		Capacity:  initialCapacity,
		Available: initialCapacity,
	}
}

// Mode reports which phase of the policy the state is in.
func (s *State) Mode() Mode {
	switch {
	case s.SafeSpot != game.Nowhere:
		return Retreating
	case s.Target == game.Nowhere:
		return NoTarget
	case s.Target == s.Position:
		return Bombing
	}
	return Targeting
}

// TickCooldowns ages every timer by one tick and returns a charge for each
// device that has left the field. A timer at zero still counts as present.
func (s *State) TickCooldowns() int {
	for i := range s.Cooldowns {
		s.Cooldowns[i]--
	}
	returned := 0
	for len(s.Cooldowns) > 0 && s.Cooldowns[0] < 0 {
		s.Cooldowns = s.Cooldowns[1:]
		s.Available++
		returned++
	}
	return returned
}

// Spend consumes a charge and starts its cooldown.
func (s *State) Spend() bool {
	if s.Available <= 0 {
		return false
	}
	s.Available--
	s.Cooldowns = append(s.Cooldowns, rules.FullCountdown)
	return true
}
