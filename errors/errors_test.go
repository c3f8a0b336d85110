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
			b:      Wrap(ErrNotFound, "gone"),
			wantIs: true,
		},
		"successful comparison to a pkg/errors wrapped error": {
			a:      ErrNotFound,
			b:      errors.Wrap(ErrNotFound, "gone"),
			wantIs: true,
		},
		"unsuccessful comparison to a wrapped error": {
			a:      ErrNotFound,
			b:      Wrap(ErrOverflow, "too big"),
			wantIs: false,
		},
		"not equal to stdlib error": {
			a:      ErrNotFound,
			b:      fmt.Errorf("stdlib error"),
			wantIs: false,
		},
		"not equal to a wrapped stdlib error": {
			a:      ErrNotFound,
			b:      Wrap(fmt.Errorf("stdlib error"), "wrapped"),
			wantIs: false,
		},
		"nil is nil": {
			a:      nil,
			b:      nil,
			wantIs: true,
		},
		"nil is any error nil": {
			a:      nil,
			b:      (*customError)(nil),
			wantIs: true,
		},
		"nil is not not-nil": {
			a:      nil,
			b:      ErrNotFound,
			wantIs: false,
		},
		"not-nil is not nil": {
			a:      ErrNotFound,
			b:      nil,
			wantIs: false,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := tc.a.Is(tc.b); got != tc.wantIs {
				t.Fatalf("unexpected result - got:%v want: %v", got, tc.wantIs)
			}
		})
	}
}

type customError struct {
}

func (customError) Error() string {
	return "custom error"
}

func TestWrapEmpty(t *testing.T) {
	if err := Wrap(nil, "wrapping <nil>"); err != nil {
		t.Fatal(err)
	}
}

func TestWrapMessage(t *testing.T) {
	err := Wrapf(Wrap(ErrAmount, "insufficient funds"), "transfer %d", 42)
	if got, want := err.Error(), "transfer 42: insufficient funds: invalid amount"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
	if got := fmt.Sprintf("%s", err); got != err.Error() {
		t.Fatalf("unexpected %%s format: %q", got)
	}
}

func TestStackTraceIsAttachedOnce(t *testing.T) {
	err := Wrap(Wrap(ErrNotFound, "inner"), "outer")
	full := fmt.Sprintf("%+v", err)
	if !strings.HasPrefix(full, "outer: inner: not found") {
		t.Fatalf("unexpected message: %q", full)
	}
	if !strings.Contains(full, "TestStackTraceIsAttachedOnce") {
		t.Fatalf("stack trace missing: %q", full)
	}
	if n := strings.Count(full, "TestStackTraceIsAttachedOnce"); n != 1 {
		t.Fatalf("want a single stack trace, got %d frames referencing the test", n)
	}
}

func TestRegisterDuplicatedCodePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("panic expected")
		}
	}()
	Register(ErrNotFound.ABCICode(), "another not found")
}

func TestRecover(t *testing.T) {
	fn := func() (err error) {
		defer Recover(&err)
		panic("boom")
	}
	err := fn()
	if !ErrPanic.Is(err) {
		t.Fatalf("want panic error, got %+v", err)
	}
}

func TestWrapAs(t *testing.T) {
	cause := Wrap(ErrAmount, "insufficient funds")
	err := WrapAs(ErrState, cause, "payee")

	if !ErrState.Is(err) {
		t.Fatal("kind must match")
	}
	if !ErrAmount.Is(err) {
		t.Fatal("cause must match")
	}
	if ErrNotFound.Is(err) {
		t.Fatal("unrelated error must not match")
	}
	if got, want := err.Error(), "payee: invalid state: insufficient funds: invalid amount"; got != want {
		t.Fatalf("want %q message, got %q", want, got)
	}
	if code, _ := ABCIInfo(err, false); code != ErrState.code {
		t.Fatalf("want %d code, got %d", ErrState.code, code)
	}
	if WrapAs(ErrState, nil, "nothing") != nil {
		t.Fatal("wrapping nil must return nil")
	}
	if stackTrace(err) == nil {
		t.Fatal("stack trace must be attached")
	}
}
