package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"ctchen222/tictactoe-engine/internal/game"
)

const (
	cellSeparator = " | "
	rowSeparator  = "---------"

	colorX = "#E06C75"
	colorO = "#61AFEF"
)

// Renderer prints boards. With termenv.Ascii the output is plain text.
type Renderer struct {
	profile termenv.Profile
}

// NewRenderer picks the colour profile of the terminal behind w when color
// is set, plain text otherwise.
func NewRenderer(w io.Writer, color bool) *Renderer {
	profile := termenv.Ascii
	if color {
		profile = termenv.NewOutput(w).EnvColorProfile()
	}
	return &Renderer{profile: profile}
}

// Render writes the board as three rows of cells joined by " | ", with a
// dashed line between rows.
func (r *Renderer) Render(w io.Writer, b *game.Board) error {
	var sb strings.Builder
	for row := range game.Size {
		cells := make([]string, game.Size)
		for col := range game.Size {
			cells[col] = r.cell(b.Cell(row*game.Size + col))
		}
		sb.WriteString(strings.Join(cells, cellSeparator))
		sb.WriteByte('\n')
		if row < game.Size-1 {
			sb.WriteString(rowSeparator)
			sb.WriteByte('\n')
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func (r *Renderer) cell(mark game.PlayerMark) string {
	if r.profile == termenv.Ascii {
		return mark.Symbol()
	}
	switch mark {
	case game.PlayerX:
		return r.profile.String(mark.Symbol()).Foreground(r.profile.Color(colorX)).Bold().String()
	case game.PlayerO:
		return r.profile.String(mark.Symbol()).Foreground(r.profile.Color(colorO)).Bold().String()
	default:
		return mark.Symbol()
	}
}

// Announce prints the outcome of a finished game from the human's side.
func Announce(w io.Writer, result game.GameResult, human game.PlayerMark) error {
	var msg string
	switch {
	case result == game.Draw:
		msg = "It's a draw."
	case string(result) == string(human):
		msg = fmt.Sprintf("%s wins. You beat the bot!", result)
	default:
		msg = fmt.Sprintf("%s wins.", result)
	}
	_, err := fmt.Fprintln(w, msg)
	return err
}
