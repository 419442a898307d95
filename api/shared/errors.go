/* errors.go
 * Contains the error taxonomy used by the api, logic, web and bot packages. Every specific error wraps exactly
 * one of the kind errors so callers can branch with errors.Is on either level
 * Authors: Zachary Bower
 */

package shared

import (
	"errors"
	"fmt"
)

// Error kinds
var (
	ErrValidation    = errors.New("validation failed")
	ErrNotFound      = errors.New("not found")
	ErrInvalidState  = errors.New("invalid state")
	ErrAuthorization = errors.New("not authorized")
)

// Validation errors
var (
	ErrInvalidID                = fmt.Errorf("%w: invalid id format", ErrValidation)
	ErrInvalidDate              = fmt.Errorf("%w: date must be formatted YYYY-MM-DD", ErrValidation)
	ErrInvalidGame              = fmt.Errorf("%w: unknown game", ErrValidation)
	ErrMissingField             = fmt.Errorf("%w: missing required field", ErrValidation)
	ErrInvalidParticipantCount  = fmt.Errorf("%w: a bracket needs at least 2 distinct participants", ErrValidation)
	ErrInsufficientParticipants = fmt.Errorf("%w: tournament needs at least 2 participants to start", ErrValidation)
	ErrInvalidWinner            = fmt.Errorf("%w: winner is not part of this match", ErrValidation)
	ErrEmptyReport              = fmt.Errorf("%w: a winner or both scores are required", ErrValidation)
)

// Not found errors
var (
	ErrTournamentNotFound = fmt.Errorf("%w: tournament not found", ErrNotFound)
	ErrFixtureNotFound    = fmt.Errorf("%w: daily tournament not found", ErrNotFound)
	ErrMatchNotFound      = fmt.Errorf("%w: match not found", ErrNotFound)
	ErrInvalidRound       = fmt.Errorf("%w: round not found", ErrNotFound)
)

// Invalid state errors
var (
	ErrTournamentStarted      = fmt.Errorf("%w: tournament already started", ErrInvalidState)
	ErrTournamentNotRunning   = fmt.Errorf("%w: tournament is not running", ErrInvalidState)
	ErrMatchAlreadyDecided    = fmt.Errorf("%w: match already decided", ErrInvalidState)
	ErrNotAllDecided          = fmt.Errorf("%w: not all matches in the round are decided", ErrInvalidState)
	ErrRoundAlreadyAdvanced   = fmt.Errorf("%w: round already advanced", ErrInvalidState)
	ErrAlreadyLocked          = fmt.Errorf("%w: daily tournament is locked", ErrInvalidState)
	ErrConcurrentModification = fmt.Errorf("%w: tournament was modified concurrently, try again", ErrInvalidState)
)

// Authorization errors
var (
	ErrUnauthenticated = fmt.Errorf("%w: authentication required", ErrAuthorization)
	ErrAdminRequired   = fmt.Errorf("%w: admin role required", ErrAuthorization)
)
