package challenge

import "github.com/iov-one/crosspile/errors"

var (
	ErrDuplicateChallenge = errors.Register(400, "challenge already open")
	ErrAlreadyMatched     = errors.Register(401, "challenge already matched")
	ErrAlreadyApproved    = errors.Register(402, "acceptor wager already approved")
	ErrNotMatched         = errors.Register(403, "challenge not matched")
	ErrNotApproved        = errors.Register(404, "acceptor wager not approved")
	ErrRandomnessNotReady = errors.Register(405, "randomness not ready")
)

// IsInvalidState returns true if the error was caused by a transition
// attempted from a state that does not permit it.
func IsInvalidState(err error) bool {
	for _, kind := range []*errors.Error{
		ErrDuplicateChallenge,
		ErrAlreadyMatched,
		ErrAlreadyApproved,
		ErrNotMatched,
		ErrNotApproved,
		errors.ErrState,
	} {
		if kind.Is(err) {
			return true
		}
	}
	return false
}
