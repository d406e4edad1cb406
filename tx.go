package crosspile

import (
	"reflect"
	"regexp"

	"github.com/iov-one/crosspile/errors"
)

var isMsgPath = regexp.MustCompile(`^[a-zA-Z0-9_\-/]+$`).MatchString

// Msg is message for the blockchain to take an action
// (Make a state transition). It is just the request, and
// must be validated by the Handlers. All authentication
// information is in the wrapping Tx.
type Msg interface {
	Persistent

	// Path returns the message path.
	// This is used by the Router to locate the proper Handler.
	// Msg should be created alongside the Handler that corresponds to them.
	//
	// Multiple types may have the same value, and will end up at the
	// same Handler.
	//
	// Must be alphanumeric [0-9A-Za-z_\-/]+
	Path() string

	// Validate performs a sanity checks on this message. It returns an
	// error if at least one test does not pass and message is considered
	// invalid.
	// This validation is performed before the state is loaded.
	Validate() error
}

// Marshaller is anything that can be represented in binary
//
// Marshal may validate the data before serializing it and
// unless you previously validated the struct,
// errors should be expected.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent supports Marshal and Unmarshal
//
// This is separated from Marshal, as this almost always requires
// a pointer, and functions that only need to marshal bytes can
// use the Marshaller interface to access non-pointers.
//
// As with Marshaller, this may do internal validation on the data
// and errors should be expected.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Tx represent the data sent from the user to the chain.
// It includes the actual message, along with information needed
// to authenticate the sender (cryptographic signatures),
// and anything else needed to pass through middleware.
//
// Each Application must define their own tx type, which
// embeds all the middlewares that we wish to use.
type Tx interface {
	Persistent

	// GetMsg returns the action we wish to communicate
	GetMsg() (Msg, error)
}

// GetPath returns the path of the message, or (missing) if no message
func GetPath(tx Tx) string {
	msg, err := tx.GetMsg()
	if err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// TxDecoder can parse bytes into a Tx
type TxDecoder func(txBytes []byte) (Tx, error)

// LoadMsg extracts the message represented by given transaction into given
// destination. Before returning message validation method is called.
func LoadMsg(tx Tx, destination interface{}) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get transaction message")
	}
	if err := assignMsg(msg, destination); err != nil {
		return err
	}
	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}
	return nil
}

// ValidMsgPath returns an error if the path cannot be routed.
func ValidMsgPath(path string) error {
	if !isMsgPath(path) {
		return errors.Wrapf(errors.ErrInput, "invalid message path %q", path)
	}
	return nil
}

// assignMsg sets the value of msg into destination. Destination must be a
// pointer to a variable of the same type as msg.
func assignMsg(msg Msg, destination interface{}) error {
	dest := reflect.ValueOf(destination)
	if dest.Kind() != reflect.Ptr || dest.IsNil() {
		return errors.Wrap(errors.ErrType, "destination must be a non nil pointer")
	}
	src := reflect.ValueOf(msg)
	// Both *T and **T destinations are accepted.
	if src.Type() == dest.Elem().Type() {
		dest.Elem().Set(src)
		return nil
	}
	if src.Kind() == reflect.Ptr && src.Elem().Type() == dest.Elem().Type() {
		dest.Elem().Set(src.Elem())
		return nil
	}
	return errors.Wrapf(errors.ErrType, "cannot assign %T to %T", msg, destination)
}
