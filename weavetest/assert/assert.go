// Package assert holds the few fatal assertions used across crosspile
// tests. Each helper stops the test on the first mismatch.
package assert

import (
	"reflect"

	"github.com/iov-one/crosspile/errors"
)

// Tester is satisfied by *testing.T, *testing.B and testing.TB.
type Tester interface {
	Helper()
	Logf(string, ...interface{})
	Fatalf(string, ...interface{})
}

// Nil fails unless value is nil or a nil pointer, slice, map, chan, func
// or interface. Errors are printed with %+v to show their stack.
func Nil(t Tester, value interface{}) {
	t.Helper()
	if !isNil(value) {
		t.Fatalf("want nil, got %+v", value)
	}
}

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	switch v := reflect.ValueOf(value); v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		return v.IsNil()
	}
	return false
}

// Equal compares with reflect.DeepEqual, so the types must match too.
func Equal(t Tester, want, got interface{}) {
	t.Helper()
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("not equal\nwant %T %v\n got %T %v", want, want, got, got)
	}
}

// Panics fails if fn returns normally.
func Panics(t Tester, fn func()) {
	t.Helper()
	panicked := func() (p bool) {
		defer func() { p = recover() != nil }()
		fn()
		return
	}()
	if !panicked {
		t.Fatalf("function did not panic")
	}
}

// IsErr fails unless got is want or is wrapping it. A nil want only
// matches a nil got.
func IsErr(t Tester, want, got error) {
	t.Helper()
	if want == got {
		return
	}
	if w, ok := want.(interface{ Is(error) bool }); ok && w.Is(got) {
		return
	}
	t.Fatalf("want %q error, got %+v", want, got)
}

// FieldError checks the validation errors err carries for fieldName. With
// a nil want the field must be valid, otherwise one of its errors must be
// want.
func FieldError(t Tester, err error, fieldName string, want *errors.Error) {
	t.Helper()
	errs := errors.FieldErrors(err, fieldName)
	if want == nil {
		if len(errs) != 0 {
			logErrors(t, errs)
			t.Fatalf("want %q to be valid, got %d errors", fieldName, len(errs))
		}
		return
	}
	for _, e := range errs {
		if want.Is(e) {
			return
		}
	}
	logErrors(t, errs)
	t.Fatalf("want %q error for %q", want, fieldName)
}

func logErrors(t Tester, errs []error) {
	t.Helper()
	for i, e := range errs {
		t.Logf("error %d: %+v", i+1, e)
	}
}
