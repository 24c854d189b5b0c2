package model

import "errors"

// Common errors used across the application.
//
// Client-usage errors are returned to callers unchanged and mutate no
// state. Internal-consistency errors indicate a broken invariant
// elsewhere in the system and map to an internal error at the boundary.
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Round errors (client usage)
	ErrRoundNotFound     = errors.New("round not found")
	ErrAlreadyInRound    = errors.New("player is already taking part in another round")
	ErrNoActiveRound     = errors.New("player has no active round")
	ErrRoundNotCreated   = errors.New("round is not in created state")
	ErrRoundNotStarted   = errors.New("round is not in started state")
	ErrIncompleteGuesses = errors.New("all participants must provide their guess")
	ErrInvalidNumber     = errors.New("number is out of range or not step aligned")

	// Internal-consistency errors
	ErrRoundNotFinished = errors.New("only a finished round can be archived")
	ErrMissingGuess     = errors.New("participant has no recorded guess")
	ErrRoundConflict    = errors.New("round was modified concurrently")

	// Archive errors
	ErrArchiveNotFound = errors.New("archived round not found")
)
