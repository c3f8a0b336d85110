package app

import (
	"reflect"

	"github.com/iov-one/apestrap"
)

// Decorators holds a chain of decorators, not yet resolved by a Handler
type Decorators struct {
	chain []apestrap.Decorator
}

// ChainDecorators takes a chain of decorators, and upon adding a final
// Handler (often a Router), returns a Handler that will execute this
// whole stack.
//
//	app.ChainDecorators(
//		app.NewLogging(),
//		app.NewRecovery(),
//		app.NewSignerDecorator(),
//		app.NewSavepoint().OnDeliver(),
//	).WithHandler(
//		router,
//	)
func ChainDecorators(chain ...apestrap.Decorator) Decorators {
	return Decorators{}.Chain(chain...)
}

// Chain allows us to keep adding more Decorators to the chain
func (d Decorators) Chain(chain ...apestrap.Decorator) Decorators {
	chain = cutoffNil(chain)
	newChain := make([]apestrap.Decorator, 0, len(d.chain)+len(chain))
	newChain = append(newChain, d.chain...)
	newChain = append(newChain, chain...)
	return Decorators{newChain}
}

// cutoffNil returns a copy of the given slice without nil values.
func cutoffNil(ds []apestrap.Decorator) []apestrap.Decorator {
	res := make([]apestrap.Decorator, 0, len(ds))
	for _, d := range ds {
		if d == nil {
			continue
		}
		if v := reflect.ValueOf(d); v.Kind() == reflect.Ptr && v.IsNil() {
			continue
		}
		res = append(res, d)
	}
	return res
}

// WithHandler resolves the stack and returns a concrete Handler
// that will pass through the chain of decorators before calling
// the final Handler.
func (d Decorators) WithHandler(h apestrap.Handler) apestrap.Handler {
	// start wrapping the handler from last decorator to first one
	// as the top of the chain is understood to be executed first
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = step{d: d.chain[i], next: h}
	}
	return h
}

// step captures one step executing a decorator around a
// specific Handler. Simplified version of a closure.
type step struct {
	d    apestrap.Decorator
	next apestrap.Handler
}

var _ apestrap.Handler = step{}

// Check passes the handler into the decorator, implements Handler
func (s step) Check(ctx apestrap.Context, store apestrap.KVStore, tx apestrap.Tx) (*apestrap.CheckResult, error) {
	return s.d.Check(ctx, store, tx, s.next)
}

// Deliver passes the handler into the decorator, implements Handler
func (s step) Deliver(ctx apestrap.Context, store apestrap.KVStore, tx apestrap.Tx) (*apestrap.DeliverResult, error) {
	return s.d.Deliver(ctx, store, tx, s.next)
}
