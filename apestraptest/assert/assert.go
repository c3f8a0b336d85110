// Package assert holds fatal assertions for table driven tests. A failed
// assertion stops the test case.
package assert

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Nil stops the test unless value is nil. Errors are printed with %+v so
// that a stack trace is shown when available.
func Nil(t testing.TB, value interface{}) {
	t.Helper()
	require.Nil(t, value, "%+v", value)
}

// Equal stops the test unless want and got are deeply equal.
func Equal(t testing.TB, want, got interface{}) {
	t.Helper()
	require.Equal(t, want, got)
}

// IsErr stops the test unless got matches want. A registered error kind
// matches every error wrapping it. A nil want only matches a nil got.
func IsErr(t testing.TB, want, got error) {
	t.Helper()
	if matches(want, got) {
		return
	}
	t.Fatalf("want %q error, got %+v", want, got)
}

func matches(want, got error) bool {
	if want == got {
		return true
	}
	kind, ok := want.(interface{ Is(error) bool })
	return ok && kind.Is(got)
}
