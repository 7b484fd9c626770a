package game

import "errors"

// PlayError is the reason a turn could not be completed. It is the only
// legitimate way for a game to stop.
type PlayError string

// Error implements the error interface
func (e PlayError) Error() string {
	return string(e)
}

const (
	ErrPlayerInsufficientCoin PlayError = "player has not enough coin"
	ErrPotInsufficientCoin    PlayError = "pot has not enough coin"
)

var (
	// ErrInvalidConfig is wrapped by every construction-time validation failure.
	ErrInvalidConfig = errors.New("invalid game config")

	// ErrGameFinished is returned when Simulate is called on a game that has
	// already been played.
	ErrGameFinished = errors.New("game already simulated")
)

// asPlayError reports whether err carries one of the two stopping reasons.
func asPlayError(err error) (PlayError, bool) {
	var pe PlayError
	if errors.As(err, &pe) {
		return pe, true
	}
	return "", false
}
