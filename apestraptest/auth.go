package apestraptest

import (
	"context"

	"github.com/iov-one/apestrap"
)

// Auth is a mock x.Authenticator over a fixed set of signers.
//
// Signer, if set, is the main signer and is reported first. Signers follow
// in the given order.
type Auth struct {
	Signer  apestrap.Condition
	Signers []apestrap.Condition
}

func (a *Auth) GetConditions(apestrap.Context) []apestrap.Condition {
	if a.Signer == nil {
		return a.Signers
	}
	conds := make([]apestrap.Condition, 0, len(a.Signers)+1)
	conds = append(conds, a.Signer)
	return append(conds, a.Signers...)
}

func (a *Auth) HasAddress(ctx apestrap.Context, addr apestrap.Address) bool {
	return hasAddress(a.GetConditions(ctx), addr)
}

// CtxAuth is a mock x.Authenticator reading the signers from the context,
// the same way transaction signers are passed down the handler chain.
// Authenticators with a different Name do not see each other's signers.
type CtxAuth struct {
	Name string
}

type ctxKey string

// WithSigners returns a context carrying the given signers. The first one
// is the main signer.
func (a *CtxAuth) WithSigners(ctx apestrap.Context, signers ...apestrap.Condition) apestrap.Context {
	return context.WithValue(ctx, ctxKey(a.Name), signers)
}

func (a *CtxAuth) GetConditions(ctx apestrap.Context) []apestrap.Condition {
	conds, _ := ctx.Value(ctxKey(a.Name)).([]apestrap.Condition)
	return conds
}

func (a *CtxAuth) HasAddress(ctx apestrap.Context, addr apestrap.Address) bool {
	return hasAddress(a.GetConditions(ctx), addr)
}

func hasAddress(conds []apestrap.Condition, addr apestrap.Address) bool {
	for _, c := range conds {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}
