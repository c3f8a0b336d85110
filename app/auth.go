package app

import (
	"context"

	"github.com/iov-one/apestrap"
	"github.com/iov-one/apestrap/x"
)

type contextKey int // local to the app module

const contextKeySigners contextKey = iota

// SignedTx is implemented by transactions that carry the conditions of
// their signers.
type SignedTx interface {
	apestrap.Tx
	GetSigners() []apestrap.Condition
}

// SignerDecorator exposes the signers of a SignedTx to the handlers. The
// host is trusted to have verified them.
type SignerDecorator struct{}

var _ apestrap.Decorator = SignerDecorator{}

// NewSignerDecorator returns a decorator that makes the tx signers
// available through the Authenticator.
func NewSignerDecorator() SignerDecorator {
	return SignerDecorator{}
}

func (SignerDecorator) Check(ctx apestrap.Context, store apestrap.KVStore, tx apestrap.Tx, next apestrap.Checker) (*apestrap.CheckResult, error) {
	return next.Check(withSigners(ctx, tx), store, tx)
}

func (SignerDecorator) Deliver(ctx apestrap.Context, store apestrap.KVStore, tx apestrap.Tx, next apestrap.Deliverer) (*apestrap.DeliverResult, error) {
	return next.Deliver(withSigners(ctx, tx), store, tx)
}

func withSigners(ctx apestrap.Context, tx apestrap.Tx) apestrap.Context {
	stx, ok := tx.(SignedTx)
	if !ok {
		return ctx
	}
	return context.WithValue(ctx, contextKeySigners, stx.GetSigners())
}

// Authenticator reads the signers set by the SignerDecorator.
type Authenticator struct{}

var _ x.Authenticator = Authenticator{}

// GetConditions returns the signers of the current transaction.
func (Authenticator) GetConditions(ctx apestrap.Context) []apestrap.Condition {
	val, _ := ctx.Value(contextKeySigners).([]apestrap.Condition)
	return val
}

// HasAddress returns true if any signer has the given address.
func (a Authenticator) HasAddress(ctx apestrap.Context, addr apestrap.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
