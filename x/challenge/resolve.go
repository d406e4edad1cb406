package challenge

import (
	"github.com/iov-one/crosspile/errors"
)

// Party of a challenge.
type Party uint8

const (
	Initiator Party = iota
	Acceptor
)

func (p Party) String() string {
	if p == Acceptor {
		return "acceptor"
	}
	return "initiator"
}

// Winner selects the winner from a published random value. The least
// significant bit of the first byte decides: set means the acceptor wins.
func Winner(random []byte) (Party, error) {
	if len(random) == 0 {
		return Initiator, errors.Wrap(errors.ErrInput, "empty random value")
	}
	if random[0]&1 == 1 {
		return Acceptor, nil
	}
	return Initiator, nil
}
