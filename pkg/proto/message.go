package proto

import (
	"ctchen222/tictactoe-engine/internal/game"
	"ctchen222/tictactoe-engine/internal/search"
)

// AnalysisReport is the JSON printed by `tictactoe -analyze`.
type AnalysisReport struct {
	Board      string          `json:"board" validate:"required,len=9"`
	ToMove     game.PlayerMark `json:"to_move" validate:"required,oneof=X O"`
	Score      int             `json:"score"`
	Square     int             `json:"square"`
	Coordinate string          `json:"coordinate,omitempty"`
	Nodes      int             `json:"nodes"`
	ElapsedMS  float64         `json:"elapsed_ms"`
	// Outcome is the result under perfect play from here: X, O or Draw.
	Outcome game.GameResult `json:"outcome"`
}

// NewAnalysisReport describes the search result res for board b.
func NewAnalysisReport(b *game.Board, toMove game.PlayerMark, res search.Result) AnalysisReport {
	outcome := game.Draw
	switch {
	case res.Score > 0:
		outcome = game.XWins
	case res.Score < 0:
		outcome = game.OWins
	}

	return AnalysisReport{
		Board:      b.String(),
		ToMove:     toMove,
		Score:      res.Score,
		Square:     res.Square,
		Coordinate: game.SquareToCoordinate(res.Square),
		Nodes:      res.Nodes,
		ElapsedMS:  float64(res.Elapsed.Microseconds()) / 1000,
		Outcome:    outcome,
	}
}
