package errors

import (
	stdlib "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestCause(t *testing.T) {
	std := stdlib.New("this is a stdlib error")

	cases := map[string]struct {
		err  error
		root error
	}{
		"Errors are self-causing": {
			err:  ErrNotFound,
			root: ErrNotFound,
		},
		"Wrap reveals root cause": {
			err:  Wrap(ErrNotFound, "foo"),
			root: ErrNotFound,
		},
		"Cause works for stderr as root": {
			err:  Wrap(std, "Some helpful text"),
			root: std,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := errors.Cause(tc.err); got != tc.root {
				t.Fatal("unexpected result")
			}
		})
	}
}

func TestErrorIs(t *testing.T) {
	cases := map[string]struct {
		a      *Error
		b      error
		wantIs bool
	}{
		"instance of the same error": {
			a:      ErrNotFound,
			b:      ErrNotFound,
			wantIs: true,
		},
		"two different coded errors": {
			a:      ErrNotFound,
			b:      ErrModel,
			wantIs: false,
		},
		"successful comparison to a wrapped error": {
			a:      ErrNotFound,
			b:      errors.Wrap(ErrNotFound, "gone"),
			wantIs: true,
		},
		"unsuccessful comparison to a wrapped error": {
			a:      ErrNotFound,
			b:      errors.Wrap(ErrInput, "too big"),
			wantIs: false,
		},
		"not equal to stdlib error": {
			a:      ErrNotFound,
			b:      fmt.Errorf("stdlib error"),
			wantIs: false,
		},
		"nil is nil": {
			a:      nil,
			b:      nil,
			wantIs: true,
		},
		"nil is any error nil": {
			a:      nil,
			b:      (*wrappedError)(nil),
			wantIs: true,
		},
		"nil is not not-nil": {
			a:      nil,
			b:      ErrNotFound,
			wantIs: false,
		},
		"multi error with a match": {
			a:      ErrState,
			b:      Append(ErrInput, Wrap(ErrState, "oops")),
			wantIs: true,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := tc.a.Is(tc.b); got != tc.wantIs {
				t.Fatalf("unexpected result - got: %v", got)
			}
		})
	}
}

func TestRegisterPanicsOnDuplicatedCode(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("duplicated code registration must panic")
		}
	}()
	Register(ErrNotFound.ABCICode(), "another not found")
}

func TestWrapAttachesStackOnce(t *testing.T) {
	err := Wrap(Wrap(ErrState, "inner"), "outer")
	if got := err.Error(); got != "outer: inner: invalid state" {
		t.Fatalf("unexpected message: %q", got)
	}
	full := fmt.Sprintf("%+v", err)
	if !strings.Contains(full, "errors_test.go") {
		t.Fatalf("stacktrace missing: %s", full)
	}
	if Wrap(nil, "nothing") != nil {
		t.Fatal("wrapping nil must return nil")
	}
}

func TestRecover(t *testing.T) {
	fn := func() (err error) {
		defer Recover(&err)
		panic("boom")
	}
	if err := fn(); !ErrPanic.Is(err) {
		t.Fatalf("want panic error, got %v", err)
	}
}

func TestFieldErrors(t *testing.T) {
	err := AppendField(nil, "Amount", ErrAmount)
	err = AppendField(err, "Mint", ErrEmpty)
	err = AppendField(err, "Owner", nil)

	if errs := FieldErrors(err, "Amount"); len(errs) != 1 || !ErrAmount.Is(errs[0]) {
		t.Fatalf("unexpected amount errors: %v", errs)
	}
	if errs := FieldErrors(err, "Mint"); len(errs) != 1 || !ErrEmpty.Is(errs[0]) {
		t.Fatalf("unexpected mint errors: %v", errs)
	}
	if errs := FieldErrors(err, "Owner"); len(errs) != 0 {
		t.Fatalf("unexpected owner errors: %v", errs)
	}
	if code, _ := ABCIInfo(err, false); code != ErrAmount.ABCICode() {
		t.Fatalf("want code of the first error, got %d", code)
	}
}
