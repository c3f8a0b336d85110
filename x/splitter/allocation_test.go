package splitter

import (
	"context"
	"testing"

	"github.com/iov-one/apestrap"
	"github.com/iov-one/apestrap/apestraptest"
	"github.com/iov-one/apestrap/apestraptest/assert"
	"github.com/iov-one/apestrap/errors"
	"github.com/iov-one/apestrap/store"
	"github.com/iov-one/apestrap/x/ledger"
)

func TestSetAllocation(t *testing.T) {
	bob := apestraptest.RandomAddr()
	charlie := apestraptest.RandomAddr()
	dave := apestraptest.RandomAddr()

	cases := map[string]struct {
		payees  []apestrap.Address
		pcts    []uint64
		wantErr *errors.Error
		want    []Allocation
	}{
		"two payees half each": {
			payees: []apestrap.Address{bob, charlie},
			pcts:   []uint64{50, 50},
			want: []Allocation{
				{Payee: bob, Share: 50 * ShareScale},
				{Payee: charlie, Share: 50 * ShareScale},
			},
		},
		"table order is kept": {
			payees: []apestrap.Address{dave, bob, charlie},
			pcts:   []uint64{10, 70, 20},
			want: []Allocation{
				{Payee: dave, Share: 10 * ShareScale},
				{Payee: bob, Share: 70 * ShareScale},
				{Payee: charlie, Share: 20 * ShareScale},
			},
		},
		"shares do not have to sum up to 100": {
			payees: []apestrap.Address{bob, charlie},
			pcts:   []uint64{80, 80},
			want: []Allocation{
				{Payee: bob, Share: 80 * ShareScale},
				{Payee: charlie, Share: 80 * ShareScale},
			},
		},
		"zero percentage": {
			payees: []apestrap.Address{bob},
			pcts:   []uint64{0},
			want:   []Allocation{{Payee: bob, Share: 0}},
		},
		"empty table": {
			want: []Allocation{},
		},
		"more payees than percentages": {
			payees:  []apestrap.Address{bob, charlie},
			pcts:    []uint64{50},
			wantErr: ErrArityMismatch,
		},
		"more percentages than payees": {
			payees:  []apestrap.Address{bob},
			pcts:    []uint64{50, 50},
			wantErr: ErrArityMismatch,
		},
		"duplicated payee": {
			payees:  []apestrap.Address{bob, charlie, bob},
			pcts:    []uint64{30, 30, 40},
			wantErr: errors.ErrDuplicate,
		},
		"invalid payee": {
			payees:  []apestrap.Address{bob, apestrap.Address("short")},
			pcts:    []uint64{50, 50},
			wantErr: errors.ErrInput,
		},
		"percentage overflows when scaled": {
			payees:  []apestrap.Address{bob},
			pcts:    []uint64{^uint64(0) / 1000},
			wantErr: errors.ErrOverflow,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			tags := NewTagCollector()
			s := NewSplitter(ledger.NewController(), tags)
			id, err := s.CreatePool(db, apestraptest.RandomAddr())
			assert.Nil(t, err)

			err = s.SetAllocation(context.Background(), db, id, bob, tc.payees, tc.pcts)
			assert.IsErr(t, tc.wantErr, err)

			got, err := s.Allocations(db, id)
			assert.Nil(t, err)
			if tc.wantErr != nil {
				assert.Equal(t, []Allocation{}, got)
				assert.Equal(t, 0, len(tags.Tags()))
				return
			}
			assert.Equal(t, tc.want, got)
			assert.Equal(t, 1, len(tags.Tags()))
			assert.Equal(t, "splitter/allocation_set", string(tags.Tags()[0].Key))
		})
	}
}

func TestSetAllocationUnknownPool(t *testing.T) {
	db := store.MemStore()
	s := NewSplitter(ledger.NewController(), nil)
	err := s.SetAllocation(context.Background(), db, apestraptest.SequenceID(7), nil,
		[]apestrap.Address{apestraptest.RandomAddr()}, []uint64{100})
	assert.IsErr(t, errors.ErrNotFound, err)

	_, err = s.Allocations(db, apestraptest.SequenceID(7))
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestSetAllocationResetsApprovals(t *testing.T) {
	db := store.MemStore()
	s := NewSplitter(ledger.NewController(), nil)

	bob := apestraptest.RandomAddr()
	charlie := apestraptest.RandomAddr()
	dave := apestraptest.RandomAddr()
	payees := []apestrap.Address{bob, charlie}
	id := newPool(t, db, s, payees, []uint64{50, 50})
	approveAll(t, db, s, id, bob, charlie)

	ok, err := s.AllApproved(db, id)
	assert.Nil(t, err)
	assert.Equal(t, true, ok)

	// Even an identical table must be approved again.
	assert.Nil(t, s.SetAllocation(context.Background(), db, id, nil, payees, []uint64{50, 50}))
	for _, p := range payees {
		approved, err := s.IsApproved(db, id, p)
		assert.Nil(t, err)
		assert.Equal(t, false, approved)
	}
	ok, err = s.AllApproved(db, id)
	assert.Nil(t, err)
	assert.Equal(t, false, ok)

	// Removed payees lose their approval as well.
	approveAll(t, db, s, id, bob)
	assert.Nil(t, s.SetAllocation(context.Background(), db, id, nil, []apestrap.Address{dave}, []uint64{100}))
	approved, err := s.IsApproved(db, id, bob)
	assert.Nil(t, err)
	assert.Equal(t, false, approved)
}

func TestSetAllocationIsRepeatable(t *testing.T) {
	db := store.MemStore()
	s := NewSplitter(ledger.NewController(), nil)

	payees := []apestrap.Address{apestraptest.RandomAddr(), apestraptest.RandomAddr()}
	pcts := []uint64{25, 75}
	id := newPool(t, db, s, payees, pcts)
	first, err := s.Allocations(db, id)
	assert.Nil(t, err)

	assert.Nil(t, s.SetAllocation(context.Background(), db, id, nil, payees, pcts))
	second, err := s.Allocations(db, id)
	assert.Nil(t, err)
	assert.Equal(t, first, second)
}

func TestSetAllocationDoesNotAliasInput(t *testing.T) {
	db := store.MemStore()
	s := NewSplitter(ledger.NewController(), nil)

	bob := apestraptest.RandomAddr()
	payees := []apestrap.Address{bob.Clone()}
	id := newPool(t, db, s, payees, []uint64{100})
	payees[0][0] ^= 0xFF

	got, err := s.Allocations(db, id)
	assert.Nil(t, err)
	assert.Equal(t, bob, got[0].Payee)
}
