package game

// ActionKind is the verb of an emitted action.
type ActionKind int

const (
	Move ActionKind = iota
	Place
)

func (k ActionKind) String() string {
	if k == Place {
		return "BOMB"
	}
	return "MOVE"
}

// Action is the single command the agent emits per tick. For Place, At is the
// cell the device is dropped on and Target is where the character heads next.
type Action struct {
	Kind   ActionKind
	At     Position
	Target Position
}

// MoveTo returns a move action toward p.
func MoveTo(p Position) Action {
	return Action{Kind: Move, At: p, Target: p}
}

// PlaceAt returns a place action dropping a device at p and heading toward next.
func PlaceAt(p, next Position) Action {
	if next == Nowhere {
		next = p
	}
	return Action{Kind: Place, At: p, Target: next}
}
