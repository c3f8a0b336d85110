package apestraptest

import "github.com/iov-one/apestrap"

// Decorator is a mock apestrap.Decorator that passes every transaction on
// to the next handler. Set CheckErr or DeliverErr to stop the chain with
// that error instead.
type Decorator struct {
	recorder

	CheckErr   error
	DeliverErr error
}

var _ apestrap.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx apestrap.Context, db apestrap.KVStore, tx apestrap.Tx, next apestrap.Checker) (*apestrap.CheckResult, error) {
	d.record(tx, false)
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx apestrap.Context, db apestrap.KVStore, tx apestrap.Tx, next apestrap.Deliverer) (*apestrap.DeliverResult, error) {
	d.record(tx, true)
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}
