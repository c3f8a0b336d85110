package splitter

import (
	"github.com/iov-one/apestrap"
	"github.com/iov-one/apestrap/errors"
)

// ApprovalTracker keeps the approval flag of every payee of every pool.
type ApprovalTracker struct {
	pools     PoolBucket
	approvals ApprovalBucket
	sink      EventSink
}

// Approve marks the current allocation of the pool as approved by the
// caller. It returns true if the flag changed. Approving twice is a no-op
// and emits no event.
func (a ApprovalTracker) Approve(ctx apestrap.Context, db apestrap.KVStore, poolID []byte, caller apestrap.Address) (bool, error) {
	if err := caller.Validate(); err != nil {
		return false, errors.Wrap(err, "caller")
	}
	pool, err := a.pools.GetPool(db, poolID)
	if err != nil {
		return false, err
	}
	conf, err := loadConf(db)
	if err != nil {
		return false, err
	}
	if conf.RejectNonPayeeApproval && !pool.IsPayee(caller) {
		return false, errors.Wrapf(ErrNotAPayee, "address %s", caller)
	}

	approved, err := a.approvals.IsApproved(db, poolID, caller)
	if err != nil {
		return false, err
	}
	if approved {
		return false, nil
	}
	if err := a.approvals.SetApproved(db, poolID, caller, true); err != nil {
		return false, errors.Wrap(err, "save approval")
	}
	a.sink.Emit(ctx, ApeApproved{PoolID: poolID, Payee: caller, Value: true})
	return true, nil
}

// IsApproved returns the approval flag of a single address.
func (a ApprovalTracker) IsApproved(db apestrap.ReadOnlyKVStore, poolID []byte, addr apestrap.Address) (bool, error) {
	return a.approvals.IsApproved(db, poolID, addr)
}

// AllApproved returns true if every current payee approved. A pool
// without payees is always approved.
func (a ApprovalTracker) AllApproved(db apestrap.ReadOnlyKVStore, poolID []byte) (bool, error) {
	pool, err := a.pools.GetPool(db, poolID)
	if err != nil {
		return false, err
	}
	return a.allApproved(db, poolID, pool)
}

func (a ApprovalTracker) allApproved(db apestrap.ReadOnlyKVStore, poolID []byte, pool *Pool) (bool, error) {
	for _, payee := range pool.Payees {
		ok, err := a.approvals.IsApproved(db, poolID, payee)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// Reset clears the approval of all given addresses.
func (a ApprovalTracker) Reset(db apestrap.KVStore, poolID []byte, payees []apestrap.Address) error {
	for _, payee := range payees {
		if err := a.approvals.SetApproved(db, poolID, payee, false); err != nil {
			return errors.Wrapf(err, "reset %s", payee)
		}
	}
	return nil
}
