package splitter

import (
	"math/bits"

	"github.com/iov-one/apestrap"
	"github.com/iov-one/apestrap/errors"
)

const (
	// ShareScale is the fixed point factor applied to a raw percentage
	// when it is stored as a share.
	ShareScale uint64 = 10000000000

	// Decimals is the number of fractional decimal digits of a share
	// once the percentage and ShareScale are combined.
	Decimals = 12
)

// Allocation is a single row of an allocation table.
type Allocation struct {
	Payee apestrap.Address `json:"payee"`
	Share uint64           `json:"share"`
}

// ScaleShare converts a raw percentage into a share.
func ScaleShare(pct uint64) (uint64, error) {
	hi, lo := bits.Mul64(pct, ShareScale)
	if hi != 0 {
		return 0, errors.Wrapf(errors.ErrOverflow, "percentage %d", pct)
	}
	return lo, nil
}

// AllocationTable maintains who gets what share of a pool.
type AllocationTable struct {
	pools     PoolBucket
	approvals ApprovalTracker
	sink      EventSink
}

// SetAllocation replaces the payees and shares of a pool and resets the
// approval of every old and new payee. The caller is only used for the
// emitted event, authorization is up to the caller of this method.
func (t AllocationTable) SetAllocation(
	ctx apestrap.Context,
	db apestrap.KVStore,
	poolID []byte,
	caller apestrap.Address,
	payees []apestrap.Address,
	percentages []uint64,
) error {
	if len(payees) != len(percentages) {
		return errors.Wrapf(ErrArityMismatch, "%d payees, %d percentages", len(payees), len(percentages))
	}
	if err := validatePayees(payees); err != nil {
		return err
	}
	shares := make([]uint64, len(percentages))
	for i, pct := range percentages {
		share, err := ScaleShare(pct)
		if err != nil {
			return errors.Wrapf(err, "payee %s", payees[i])
		}
		shares[i] = share
	}

	pool, err := t.pools.GetPool(db, poolID)
	if err != nil {
		return err
	}
	previous := pool.Payees
	pool.Payees = clonePayees(payees)
	pool.Shares = shares
	if err := t.pools.SavePool(db, poolID, pool); err != nil {
		return errors.Wrap(err, "save pool")
	}

	if err := t.approvals.Reset(db, poolID, previous); err != nil {
		return err
	}
	if err := t.approvals.Reset(db, poolID, pool.Payees); err != nil {
		return err
	}

	t.sink.Emit(ctx, AllocationSet{
		PoolID:     poolID,
		Caller:     caller,
		PayeeCount: len(payees),
	})
	return nil
}

// Allocations returns the table of a pool in table order.
func (t AllocationTable) Allocations(db apestrap.ReadOnlyKVStore, poolID []byte) ([]Allocation, error) {
	pool, err := t.pools.GetPool(db, poolID)
	if err != nil {
		return nil, err
	}
	res := make([]Allocation, len(pool.Payees))
	for i, payee := range pool.Payees {
		var share uint64
		if i < len(pool.Shares) {
			share = pool.Shares[i]
		}
		res[i] = Allocation{Payee: payee, Share: share}
	}
	return res, nil
}

func clonePayees(payees []apestrap.Address) []apestrap.Address {
	cpy := make([]apestrap.Address, len(payees))
	for i, p := range payees {
		cpy[i] = p.Clone()
	}
	return cpy
}
