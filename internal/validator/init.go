package validator

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"ctchen222/tictactoe-engine/internal/game"
)

var validate *validator.Validate

func init() {
	// Initialize validation
	validate = validator.New(validator.WithRequiredStructEnabled())

	if err := validate.RegisterValidation("player_mark", isPlayerMark); err != nil {
		panic(err)
	}
}

func GetValidator() *validator.Validate {
	return validate
}

// isPlayerMark accepts "x" or "o" in either case.
func isPlayerMark(fl validator.FieldLevel) bool {
	return game.PlayerMark(strings.ToUpper(fl.Field().String())).IsPlayer()
}
