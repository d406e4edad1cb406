package weavetest

import (
	"crypto/rand"
	"encoding/hex"
	"testing"

	"github.com/iov-one/crosspile"
)

// ParseAddress decodes an address in any of the crosspile.ParseAddress
// formats and fails the test on error.
func ParseAddress(t testing.TB, encoded string) crosspile.Address {
	t.Helper()
	addr, err := crosspile.ParseAddress(encoded)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encoded, err)
	}
	return addr
}

// RandomAddr returns a valid random address.
func RandomAddr(t testing.TB) crosspile.Address {
	t.Helper()
	raw := make([]byte, crosspile.AddressLength)
	if _, err := rand.Read(raw); err != nil {
		t.Fatalf("cannot generate a random address: %s", err)
	}
	return crosspile.Address(raw)
}

// DecodeAddr takes a hex encoded address and returns its raw form,
// ensuring the result is a valid address.
func DecodeAddr(t testing.TB, encoded string) crosspile.Address {
	t.Helper()
	raw, err := hex.DecodeString(encoded)
	if err != nil {
		t.Fatalf("cannot decode hex string: %s", err)
	}
	a := crosspile.Address(raw)
	if err := a.Validate(); err != nil {
		t.Fatalf("decoded string is not a valid address: %s", err)
	}
	return a
}
