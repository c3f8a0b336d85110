package errors

import "fmt"

const (
	// SuccessABCICode is the code of a successful result.
	SuccessABCICode uint32 = 0

	internalABCICode uint32 = 1
	internalABCILog         = "internal error"
)

// ABCIInfo returns the code and log of err the way a node exposes them to
// its clients. An error with no registered code in its cause chain is
// internal and gets code 1. Outside of debug mode the log of internal errors
// and of recovered panics is replaced by a generic message.
func ABCIInfo(err error, debug bool) (uint32, string) {
	if errIsNil(err) {
		return SuccessABCICode, ""
	}
	if debug {
		return abciCode(err), fmt.Sprintf("%+v", err)
	}
	if IsInternal(err) {
		return internalABCICode, internalABCILog
	}
	return abciCode(err), err.Error()
}

// IsInternal returns true if err is not meant to be shown to a client: it
// either carries no registered code or it is a recovered panic.
func IsInternal(err error) bool {
	if errIsNil(err) {
		return false
	}
	return ErrPanic.Is(err) || abciCode(err) == internalABCICode
}

// abciCode returns the first code found walking the cause chain of err.
func abciCode(err error) uint32 {
	for !errIsNil(err) {
		if c, ok := err.(interface{ ABCICode() uint32 }); ok {
			return c.ABCICode()
		}
		c, ok := err.(causer)
		if !ok {
			break
		}
		err = c.Cause()
	}
	return internalABCICode
}
