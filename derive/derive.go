package derive

import (
	"crypto/sha256"
	"encoding/binary"

	"filippo.io/edwards25519"
	"github.com/iov-one/crosspile"
	"github.com/iov-one/crosspile/errors"
)

const (
	// MaxSeeds is the maximum number of seeds accepted by a derivation.
	MaxSeeds = 16
	// MaxSeedLength is the maximum length of a single seed.
	MaxSeedLength = 32

	marker = "crosspile/derived"
)

// Well known namespace seeds.
var (
	SeedChallenge      = []byte("challenge")
	SeedInitiatorVault = []byte("initiator_tokens_vault")
	SeedAcceptorVault  = []byte("acceptor_tokens_vault")
	SeedRequester      = []byte("requester")
	SeedTokenAccount   = []byte("token_account")
	SeedMint           = []byte("mint")
)

var (
	ErrInvalidSeeds  = errors.Register(200, "invalid derivation seeds")
	ErrOnCurve       = errors.Register(201, "derived address is on curve")
	ErrNoViableNonce = errors.Register(202, "no viable derivation nonce")
)

// FindAddress searches for the highest nonce that produces an off curve
// candidate and returns the derived address together with that nonce.
func FindAddress(seeds ...[]byte) (crosspile.Address, uint8, error) {
	if err := validateSeeds(seeds); err != nil {
		return nil, 0, err
	}
	for n := 255; n >= 0; n-- {
		nonce := uint8(n)
		h := candidate(nonce, seeds)
		if isOnCurve(h) {
			continue
		}
		return crosspile.Address(h[:crosspile.AddressLength]), nonce, nil
	}
	return nil, 0, errors.Wrap(ErrNoViableNonce, "all nonces produce a curve point")
}

// CreateAddress computes the address for an explicit nonce. It fails if the
// candidate is a curve point, so it can be used to verify a stored nonce.
func CreateAddress(nonce uint8, seeds ...[]byte) (crosspile.Address, error) {
	if err := validateSeeds(seeds); err != nil {
		return nil, err
	}
	h := candidate(nonce, seeds)
	if isOnCurve(h) {
		return nil, errors.Wrapf(ErrOnCurve, "nonce %d", nonce)
	}
	return crosspile.Address(h[:crosspile.AddressLength]), nil
}

// Verify returns nil if the address was derived from given seeds and nonce.
func Verify(addr crosspile.Address, nonce uint8, seeds ...[]byte) error {
	want, err := CreateAddress(nonce, seeds...)
	if err != nil {
		return err
	}
	if !want.Equals(addr) {
		return errors.Wrapf(errors.ErrInput, "address %s is not derived with nonce %d", addr, nonce)
	}
	return nil
}

// Uint64Seed returns a big endian encoded seed.
func Uint64Seed(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}

func validateSeeds(seeds [][]byte) error {
	if len(seeds) == 0 {
		return errors.Wrap(ErrInvalidSeeds, "no seeds")
	}
	if len(seeds) > MaxSeeds {
		return errors.Wrapf(ErrInvalidSeeds, "%d seeds, max %d", len(seeds), MaxSeeds)
	}
	for i, s := range seeds {
		if len(s) > MaxSeedLength {
			return errors.Wrapf(ErrInvalidSeeds, "seed %d is %d bytes long, max %d", i, len(s), MaxSeedLength)
		}
	}
	return nil
}

func candidate(nonce uint8, seeds [][]byte) []byte {
	h := sha256.New()
	for _, s := range seeds {
		h.Write(s)
	}
	h.Write([]byte{nonce})
	h.Write([]byte(marker))
	return h.Sum(nil)
}

// isOnCurve returns true if the 32 bytes are a valid point encoding, which
// means a private key could exist for it.
func isOnCurve(b []byte) bool {
	_, err := new(edwards25519.Point).SetBytes(b)
	return err == nil
}
