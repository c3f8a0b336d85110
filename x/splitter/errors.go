package splitter

import "github.com/iov-one/apestrap/errors"

// splitter reserves 2000~2009 error codes
var (
	ErrBalanceTooLow  = errors.Register(2000, "balance too low")
	ErrNotInAgreement = errors.Register(2001, "apes not in agreement")
	ErrTransferFailed = errors.Register(2002, "transfer failed")
	ErrArityMismatch  = errors.Register(2003, "payees and percentages length mismatch")
	ErrNotAPayee      = errors.Register(2004, "not a payee")
)
