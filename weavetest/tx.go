package weavetest

import "github.com/iov-one/crosspile"

// Tx is a transaction mock that carries a single message.
type Tx struct {
	// Msg is the message that is to be processed by this transaction.
	Msg crosspile.Msg
	// Err if set is returned by any method call.
	Err error
}

var _ crosspile.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (crosspile.Msg, error) {
	return tx.Msg, tx.Err
}

func (tx *Tx) Unmarshal([]byte) error {
	panic("not implemented")
}

func (tx *Tx) Marshal() ([]byte, error) {
	panic("not implemented")
}

// Msg is a message mock. Its route is configurable so it can be used to
// test the router and the decorators.
type Msg struct {
	// RoutePath is returned by the Path method.
	RoutePath string
	// Serialized represents the serialized form of this message.
	Serialized []byte
	// Err if set is returned by any method call.
	Err error
}

var _ crosspile.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}

func (m *Msg) Unmarshal(b []byte) error {
	m.Serialized = b
	return m.Err
}

func (m *Msg) Marshal() ([]byte, error) {
	return m.Serialized, m.Err
}
