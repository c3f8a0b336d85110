package splitter

import (
	"context"
	"testing"

	"github.com/iov-one/apestrap"
	"github.com/iov-one/apestrap/apestraptest"
	"github.com/iov-one/apestrap/apestraptest/assert"
	"github.com/iov-one/apestrap/errors"
	"github.com/iov-one/apestrap/gconf"
	"github.com/iov-one/apestrap/store"
	"github.com/iov-one/apestrap/x/ledger"
)

func TestSplit(t *testing.T) {
	const maxUint64 = ^uint64(0)

	cases := map[string]struct {
		safe        uint64
		shares      []uint64
		wantAmounts []uint64
		wantTotal   uint64
		wantErr     *errors.Error
	}{
		"half each": {
			safe:        1000,
			shares:      []uint64{50 * ShareScale, 50 * ShareScale},
			wantAmounts: []uint64{500, 500},
			wantTotal:   1000,
		},
		"odd balance is rounded down": {
			safe:        1001,
			shares:      []uint64{50 * ShareScale, 50 * ShareScale},
			wantAmounts: []uint64{500, 500},
			wantTotal:   1000,
		},
		"thirds": {
			safe:        100,
			shares:      []uint64{33 * ShareScale, 33 * ShareScale, 34 * ShareScale},
			wantAmounts: []uint64{33, 33, 34},
			wantTotal:   100,
		},
		"single unit": {
			safe:        1,
			shares:      []uint64{50 * ShareScale, 50 * ShareScale},
			wantAmounts: []uint64{0, 0},
			wantTotal:   0,
		},
		"more than hundred percent": {
			safe:        10,
			shares:      []uint64{150 * ShareScale},
			wantAmounts: []uint64{15},
			wantTotal:   15,
		},
		"no shares": {
			safe:        10,
			wantAmounts: []uint64{},
		},
		"whole maximum balance": {
			safe:        maxUint64,
			shares:      []uint64{100 * ShareScale},
			wantAmounts: []uint64{maxUint64},
			wantTotal:   maxUint64,
		},
		"amount does not fit": {
			safe:    maxUint64,
			shares:  []uint64{200 * ShareScale},
			wantErr: errors.ErrOverflow,
		},
		"total does not fit": {
			safe:    maxUint64,
			shares:  []uint64{60 * ShareScale, 60 * ShareScale},
			wantErr: errors.ErrOverflow,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			amounts, total, err := Split(tc.safe, tc.shares)
			assert.IsErr(t, tc.wantErr, err)
			if tc.wantErr != nil {
				return
			}
			assert.Equal(t, tc.wantAmounts, amounts)
			assert.Equal(t, tc.wantTotal, total)
		})
	}
}

func TestExecuteWithLedger(t *testing.T) {
	bob := apestraptest.RandomAddr()
	charlie := apestraptest.RandomAddr()

	cases := map[string]struct {
		reserve     *uint64
		balance     uint64
		approved    []apestrap.Address
		wantErr     *errors.Error
		wantTotal   uint64
		wantBob     uint64
		wantCharlie uint64
		wantPool    uint64
	}{
		"both approved": {
			balance:     1000,
			approved:    []apestrap.Address{bob, charlie},
			wantTotal:   1000,
			wantBob:     500,
			wantCharlie: 500,
		},
		"remainder stays in the pool": {
			balance:     1001,
			approved:    []apestrap.Address{bob, charlie},
			wantTotal:   1000,
			wantBob:     500,
			wantCharlie: 500,
			wantPool:    1,
		},
		"reserve is kept": {
			reserve:     u64(100),
			balance:     1100,
			approved:    []apestrap.Address{bob, charlie},
			wantTotal:   1000,
			wantBob:     500,
			wantCharlie: 500,
			wantPool:    100,
		},
		"empty pool is checked before approvals": {
			balance: 0,
			wantErr: ErrBalanceTooLow,
		},
		"balance equal to reserve": {
			reserve:  u64(500),
			balance:  500,
			approved: []apestrap.Address{bob, charlie},
			wantErr:  ErrBalanceTooLow,
			wantPool: 500,
		},
		"balance below reserve": {
			reserve:  u64(500),
			balance:  20,
			approved: []apestrap.Address{bob, charlie},
			wantErr:  ErrBalanceTooLow,
			wantPool: 20,
		},
		"missing approval": {
			balance:  1000,
			approved: []apestrap.Address{bob},
			wantErr:  ErrNotInAgreement,
			wantPool: 1000,
		},
		"nobody approved": {
			balance:  1000,
			wantErr:  ErrNotInAgreement,
			wantPool: 1000,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			if tc.reserve != nil {
				conf := ledger.Configuration{MinimumReserve: *tc.reserve}
				assert.Nil(t, gconf.Save(db, "ledger", &conf))
			}
			ctrl := ledger.NewController()
			tags := NewTagCollector()
			s := NewSplitter(ctrl, tags)
			id := newPool(t, db, s, []apestrap.Address{bob, charlie}, []uint64{50, 50})
			approveAll(t, db, s, id, tc.approved...)
			if tc.balance > 0 {
				assert.Nil(t, ctrl.Mint(db, PoolAccount(id), tc.balance))
			}
			before := len(tags.Tags())

			total, err := s.Execute(context.Background(), db, id, bob)
			assert.IsErr(t, tc.wantErr, err)
			assert.Equal(t, tc.wantTotal, total)

			assertBalance(t, db, ctrl, bob, tc.wantBob)
			assertBalance(t, db, ctrl, charlie, tc.wantCharlie)
			assertBalance(t, db, ctrl, PoolAccount(id), tc.wantPool)

			emitted := tags.Tags()[before:]
			if tc.wantErr != nil {
				assert.Equal(t, 0, len(emitted))
				return
			}
			assert.Equal(t, 1, len(emitted))
			assert.Equal(t, "splitter/payout_executed", string(emitted[0].Key))
		})
	}
}

func TestExecuteWithMockLedger(t *testing.T) {
	bob := apestraptest.RandomAddr()
	charlie := apestraptest.RandomAddr()
	dave := apestraptest.RandomAddr()

	cases := map[string]struct {
		ledger    *mockLedger
		payees    []apestrap.Address
		pcts      []uint64
		wantErr   *errors.Error
		wantTotal uint64
		wantPaid  []payment
	}{
		"transfers follow table order": {
			ledger:    &mockLedger{balance: 1000, failAt: -1},
			payees:    []apestrap.Address{dave, bob, charlie},
			pcts:      []uint64{10, 20, 70},
			wantTotal: 1000,
			wantPaid: []payment{
				{dst: dave, amount: 100},
				{dst: bob, amount: 200},
				{dst: charlie, amount: 700},
			},
		},
		"zero amounts are transferred": {
			ledger:   &mockLedger{balance: 101, reserve: 100, failAt: -1},
			payees:   []apestrap.Address{bob, charlie},
			pcts:     []uint64{50, 50},
			wantPaid: []payment{{dst: bob}, {dst: charlie}},
		},
		"empty table pays nothing": {
			ledger: &mockLedger{balance: 1000, failAt: -1},
		},
		"failed transfer keeps earlier transfers": {
			ledger:   &mockLedger{balance: 1000, failAt: 1},
			payees:   []apestrap.Address{dave, bob, charlie},
			pcts:     []uint64{10, 20, 70},
			wantErr:  ErrTransferFailed,
			wantPaid: []payment{{dst: dave, amount: 100}},
		},
		"failed first transfer": {
			ledger:  &mockLedger{balance: 1000, failAt: 0},
			payees:  []apestrap.Address{bob},
			pcts:    []uint64{100},
			wantErr: ErrTransferFailed,
		},
		"overflow happens before any transfer": {
			ledger:  &mockLedger{balance: ^uint64(0), failAt: -1},
			payees:  []apestrap.Address{bob, charlie},
			pcts:    []uint64{10, 200},
			wantErr: errors.ErrOverflow,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			s := NewSplitter(tc.ledger, nil)
			id := newPool(t, db, s, tc.payees, tc.pcts)
			approveAll(t, db, s, id, tc.payees...)

			total, err := s.Execute(context.Background(), db, id, nil)
			assert.IsErr(t, tc.wantErr, err)
			assert.Equal(t, tc.wantTotal, total)
			assert.Equal(t, len(tc.wantPaid), len(tc.ledger.paid))
			for i, want := range tc.wantPaid {
				got := tc.ledger.paid[i]
				if !want.dst.Equals(got.dst) || want.amount != got.amount {
					t.Fatalf("payment %d: want %d to %s, got %d to %s",
						i, want.amount, want.dst, got.amount, got.dst)
				}
			}
		})
	}
}

func TestTransferFailureKeepsLedgerError(t *testing.T) {
	db := store.MemStore()
	s := NewSplitter(&mockLedger{balance: 1000, failAt: 0}, nil)
	bob := apestraptest.RandomAddr()
	id := newPool(t, db, s, []apestrap.Address{bob}, []uint64{100})
	approveAll(t, db, s, id, bob)

	_, err := s.Execute(context.Background(), db, id, nil)
	assert.IsErr(t, ErrTransferFailed, err)
	assert.IsErr(t, errors.ErrAmount, err)

	code, _ := errors.ABCIInfo(err, false)
	assert.Equal(t, uint32(2002), code)
}

func TestExecuteUnknownPool(t *testing.T) {
	db := store.MemStore()
	s := NewSplitter(&mockLedger{balance: 10, failAt: -1}, nil)
	_, err := s.Execute(context.Background(), db, apestraptest.SequenceID(5), nil)
	assert.IsErr(t, errors.ErrNotFound, err)
}

func assertBalance(t testing.TB, db apestrap.ReadOnlyKVStore, ctrl ledger.Controller, addr apestrap.Address, want uint64) {
	t.Helper()
	got, err := ctrl.Balance(db, addr)
	assert.Nil(t, err)
	assert.Equal(t, want, got)
}

func u64(n uint64) *uint64 {
	return &n
}
