package game

import "errors"

// Action rejections. Every rejection leaves the state untouched; callers
// surface them to the player and carry on.
var (
	ErrInsufficientEnergy = errors.New("not enough energy")
	ErrInsufficientGeno   = errors.New("not enough geno")
	ErrInsufficientStars  = errors.New("not enough stars")
	ErrUnknownUpgrade     = errors.New("unknown upgrade")
	ErrUnknownBooster     = errors.New("unknown booster")
	ErrUnknownTask        = errors.New("unknown task")
	ErrTaskNotReady       = errors.New("task requirement not met")
)

// IsInsufficient reports whether an error is a resource rejection as
// opposed to a bad-reference error.
func IsInsufficient(err error) bool {
	return errors.Is(err, ErrInsufficientEnergy) ||
		errors.Is(err, ErrInsufficientGeno) ||
		errors.Is(err, ErrInsufficientStars)
}
