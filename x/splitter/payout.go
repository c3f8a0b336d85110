package splitter

import (
	"fmt"
	"math/bits"

	"github.com/iov-one/apestrap"
	"github.com/iov-one/apestrap/errors"
)

// Ledger holds the pool balances and moves funds on behalf of the pool.
type Ledger interface {
	Balance(db apestrap.ReadOnlyKVStore, account apestrap.Address) (uint64, error)
	MinimumReserve(db apestrap.ReadOnlyKVStore) (uint64, error)
	Transfer(db apestrap.KVStore, src, dst apestrap.Address, amount uint64) error
}

// decimalsFactor is 10^Decimals.
const decimalsFactor uint64 = 1000000000000

// PayoutEngine distributes the pool balance between the payees.
type PayoutEngine struct {
	pools     PoolBucket
	approvals ApprovalTracker
	ledger    Ledger
	sink      EventSink
}

// Execute pays out the safe balance of the pool. The balance is checked
// before the approvals. All amounts are computed before the first transfer
// is requested. A failed transfer aborts the payout without undoing the
// transfers that were already made.
func (e PayoutEngine) Execute(ctx apestrap.Context, db apestrap.KVStore, poolID []byte, caller apestrap.Address) (uint64, error) {
	pool, err := e.pools.GetPool(db, poolID)
	if err != nil {
		return 0, err
	}
	account := PoolAccount(poolID)

	safe, err := e.safeBalance(db, account)
	if err != nil {
		return 0, err
	}
	if safe < 1 {
		return 0, errors.Wrapf(ErrBalanceTooLow, "pool %X", poolID)
	}

	switch ok, err := e.approvals.allApproved(db, poolID, pool); {
	case err != nil:
		return 0, err
	case !ok:
		return 0, errors.Wrapf(ErrNotInAgreement, "pool %X", poolID)
	}

	amounts, total, err := Split(safe, pool.Shares)
	if err != nil {
		return 0, err
	}
	for i, payee := range pool.Payees {
		if err := e.ledger.Transfer(db, account, payee, amounts[i]); err != nil {
			return 0, errors.WrapAs(ErrTransferFailed, err, fmt.Sprintf("payee %s", payee))
		}
	}

	e.sink.Emit(ctx, PayoutExecuted{PoolID: poolID, Caller: caller, TotalPaid: total})
	return total, nil
}

func (e PayoutEngine) safeBalance(db apestrap.ReadOnlyKVStore, account apestrap.Address) (uint64, error) {
	balance, err := e.ledger.Balance(db, account)
	if err != nil {
		return 0, errors.Wrap(err, "balance")
	}
	reserve, err := e.ledger.MinimumReserve(db)
	if err != nil {
		return 0, errors.Wrap(err, "minimum reserve")
	}
	if balance <= reserve {
		return 0, nil
	}
	return balance - reserve, nil
}

// Split computes floor(safe * share / 10^Decimals) for every share and the
// sum of all amounts. It fails with ErrOverflow if an amount or the sum
// does not fit into 64 bits.
func Split(safe uint64, shares []uint64) ([]uint64, uint64, error) {
	amounts := make([]uint64, len(shares))
	var total uint64
	for i, share := range shares {
		hi, lo := bits.Mul64(safe, share)
		if hi >= decimalsFactor {
			return nil, 0, errors.Wrapf(errors.ErrOverflow, "share %d of %d", share, safe)
		}
		amount, _ := bits.Div64(hi, lo, decimalsFactor)
		sum, carry := bits.Add64(total, amount, 0)
		if carry != 0 {
			return nil, 0, errors.Wrap(errors.ErrOverflow, "total paid")
		}
		amounts[i] = amount
		total = sum
	}
	return amounts, total, nil
}
