package game

// CoordinateToSquare parses a two-character coordinate such as "a2" or
// "2A": one column letter a-c and one row digit 1-3, in either order.
// Anything else yields NoSquare.
func CoordinateToSquare(text string) int {
	if len(text) != 2 {
		return NoSquare
	}

	col, row := -1, -1
	for i := range 2 {
		c := text[i]
		switch {
		case c >= 'a' && c <= 'c':
			col = int(c - 'a')
		case c >= 'A' && c <= 'C':
			col = int(c - 'A')
		case c >= '1' && c <= '3':
			row = int(c - '1')
		}
	}
	if col < 0 || row < 0 {
		return NoSquare
	}
	return row*Size + col
}

// SquareToCoordinate is the inverse of CoordinateToSquare, always in
// letter-digit order. Off-board squares give "".
func SquareToCoordinate(square int) string {
	if !validSquare(square) {
		return ""
	}
	return string([]byte{byte('a' + square%Size), byte('1' + square/Size)})
}
