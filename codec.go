package crosspile

import (
	amino "github.com/tendermint/go-amino"
)

// Codec is the binary codec shared by all records, messages and
// transactions. Every message type must be registered as a concrete
// implementation of Msg before the first transaction is decoded.
var Codec = amino.NewCodec()

func init() {
	Codec.RegisterInterface((*Msg)(nil), nil)
}

// RegisterMsg makes the message available for decoding from a Tx. The name
// is the amino route and must be unique across the application.
func RegisterMsg(msg Msg, name string) {
	Codec.RegisterConcrete(msg, name, nil)
}

// MustMarshal serializes any value with the Codec and panics on failure.
// Use only with values that are known to be valid.
func MustMarshal(o interface{}) []byte {
	return Codec.MustMarshalBinaryBare(o)
}
