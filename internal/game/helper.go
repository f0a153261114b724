package game

import "math/rand/v2"

// RandomlyChooseFirstPlayer picks which mark opens the game.
func RandomlyChooseFirstPlayer() PlayerMark {
	if rand.IntN(2) == 0 {
		return PlayerX
	}
	return PlayerO
}

// Opponent returns the other player's mark. None has no opponent.
func (m PlayerMark) Opponent() PlayerMark {
	switch m {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return None
	}
}

// IsPlayer reports whether m is X or O.
func (m PlayerMark) IsPlayer() bool {
	return m == PlayerX || m == PlayerO
}

// Symbol is the single character used when printing a cell.
func (m PlayerMark) Symbol() string {
	if m == None {
		return EmptySymbol
	}
	return string(m)
}
