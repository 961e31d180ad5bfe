// Package agent holds the per-tick decision policy: pick a box to clear, walk
// to the best spot for it, drop a device when an escape exists and retreat
// from anything about to blow.
package agent

import (
	"go.uber.org/zap"

	"github.com/brensch/hypersonic/game"
	"github.com/brensch/hypersonic/placement"
	"github.com/brensch/hypersonic/rules"
)

// Config carries the starting stats and search limits.
type Config struct {
	InitialRange    int
	InitialCapacity int
	TargetLimit     int
}

// DefaultConfig matches the referee's starting loadout.
func DefaultConfig() Config {
	return Config{
		InitialRange:    2,
		InitialCapacity: 1,
		TargetLimit:     placement.DefaultTargetLimit,
	}
}

// Controller turns board snapshots into actions. It is not safe for
// concurrent use; one controller drives one character.
type Controller struct {
	cfg   Config
	log   *zap.Logger
	state State
	tick  int
}

func New(cfg Config, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.TargetLimit <= 0 {
		cfg.TargetLimit = placement.DefaultTargetLimit
	}
	return &Controller{
		cfg:   cfg,
		log:   log,
		state: newState(cfg.InitialRange, cfg.InitialCapacity),
	}
}

// State returns a copy of the controller's memory.
func (c *Controller) State() State {
	s := c.state
	s.Cooldowns = append([]int(nil), c.state.Cooldowns...)
	return s
}

func (c *Controller) Mode() Mode {
	return c.state.Mode()
}

// Tick decides the action for the snapshot currently held by b. The board
// must already carry this tick's entities. Tick may apply blast marks to b.
func (c *Controller) Tick(b *game.Board) game.Action {
	c.tick++
	s := &c.state

	if b.Character == game.Nowhere || !b.InBounds(b.Character) {
		fallback := s.Position
		if fallback == game.Nowhere {
			fallback = game.Position{}
		}
		c.log.Warn("character missing from snapshot", zap.Int("tick", c.tick), zap.Any("holding", fallback))
		return game.MoveTo(fallback)
	}
	s.Position = b.Character
	eval := placement.New(b, c.cfg.TargetLimit)

	if b.DetectedPickup(s.Position, game.RangeUpgrade) {
		s.Range++
		c.log.Info("picked up range upgrade", zap.Int("range", s.Range))
	}
	if b.DetectedPickup(s.Position, game.CountUpgrade) {
		s.Capacity++
		s.Available++
		c.log.Info("picked up count upgrade", zap.Int("capacity", s.Capacity))
	}

	if n := s.TickCooldowns(); n > 0 {
		c.log.Debug("charges returned", zap.Int("returned", n), zap.Int("available", s.Available))
	}

	if s.Target == game.Nowhere || rules.InBlastRange(b.Current, s.Target) {
		c.replan(b, eval, 0)
	}

	if (s.Target == game.Nowhere || rules.InBlastRange(b.Current, s.Target)) && s.SafeSpot == game.Nowhere {
		s.SafeSpot = eval.ClosestSafeSpot(s.Position)
	}

	hold := false
	if rules.DangerNearby(b.Current, s.Position) {
		spot, ok := eval.FindSafeSpot(s.Position)
		switch {
		case ok:
			s.SafeSpot = spot
			hold = spot == s.Position
		default:
			c.log.Warn("trapped, no safe cell reachable",
				zap.Int("tick", c.tick),
				zap.Any("position", s.Position),
			)
		}
	}

	action := c.act(b, eval, hold)
	c.log.Debug("tick",
		zap.Int("tick", c.tick),
		zap.Stringer("mode", s.Mode()),
		zap.Stringer("action", action.Kind),
		zap.Any("position", s.Position),
		zap.Any("target", s.Target),
		zap.Any("safe_spot", s.SafeSpot),
		zap.Int("range", s.Range),
		zap.Int("available", s.Available),
	)
	return action
}

func (c *Controller) act(b *game.Board, eval *placement.Evaluator, hold bool) game.Action {
	s := &c.state

	if s.SafeSpot != game.Nowhere {
		if s.SafeSpot != s.Position {
			return game.MoveTo(s.SafeSpot)
		}
		s.SafeSpot = game.Nowhere
	}

	if s.Target == s.Position && s.Available > 0 {
		if eval.SafeToBomb(s.Position, s.Range) {
			s.Spend()
			c.replan(b, eval, s.Range)
			return game.PlaceAt(s.Position, s.Target)
		}
		c.log.Debug("no escape from target, replanning", zap.Any("target", s.Target))
		s.Target = game.Nowhere
		c.replan(b, eval, 0)
	}

	if hold || s.Target == game.Nowhere {
		return game.MoveTo(s.Position)
	}
	return game.MoveTo(s.Target)
}

// replan picks the first of the closest boxes that has a placement with an
// escape route.
// A positive pendingRange treats a device at the character's cell as already
// placed and writes its casualties to the board.
func (c *Controller) replan(b *game.Board, eval *placement.Evaluator, pendingRange int) {
	s := &c.state
	targets := eval.ClosestTargets(s.Position, pendingRange)
	b.Apply(targets.Marks)

	s.Target = game.Nowhere
	for _, box := range targets.Boxes {
		if p := eval.BestSafePlacementAround(box, s.Range); p != game.Nowhere {
			s.Target = p
			return
		}
	}
}
