package game

// ItemKind is the feed's item parameter.
type ItemKind int

const (
	RangeUpgrade ItemKind = 1
	CountUpgrade ItemKind = 2
)

// Symbol returns the cell symbol an intact item of this kind is drawn with.
func (k ItemKind) Symbol() (Symbol, bool) {
	switch k {
	case RangeUpgrade:
		return ItemRangeUpgrade, true
	case CountUpgrade:
		return ItemCountUpgrade, true
	}
	return 0, false
}

func (k ItemKind) String() string {
	switch k {
	case RangeUpgrade:
		return "range"
	case CountUpgrade:
		return "count"
	}
	return "unknown"
}

// PlaceItem stamps an item of the given kind at p. Unknown kinds are ignored.
func (b *Board) PlaceItem(p Position, kind ItemKind) bool {
	s, ok := kind.Symbol()
	if !ok || !b.Current.InBounds(p) {
		return false
	}
	b.Current.Set(p, s)
	return true
}

// DetectedPickup reports whether the previous snapshot had an item of kind at p.
// On the first tick there is no history and nothing is ever reported.
func (b *Board) DetectedPickup(p Position, kind ItemKind) bool {
	if b.Previous == nil {
		return false
	}
	s, ok := kind.Symbol()
	if !ok {
		return false
	}
	return b.Previous.Is(p, s)
}
