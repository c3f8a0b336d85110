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

func TestApprove(t *testing.T) {
	bob := apestraptest.RandomAddr()
	charlie := apestraptest.RandomAddr()
	stranger := apestraptest.RandomAddr()

	cases := map[string]struct {
		conf        *Configuration
		caller      apestrap.Address
		poolID      []byte
		wantErr     *errors.Error
		wantChanged bool
		wantAll     bool
	}{
		"payee approves": {
			caller:      bob,
			wantChanged: true,
		},
		"non payee approval is allowed by default": {
			caller:      stranger,
			wantChanged: true,
		},
		"non payee approval can be rejected": {
			conf:    &Configuration{MaxPayees: 10, RejectNonPayeeApproval: true},
			caller:  stranger,
			wantErr: ErrNotAPayee,
		},
		"payee approves with strict configuration": {
			conf:        &Configuration{MaxPayees: 10, RejectNonPayeeApproval: true},
			caller:      charlie,
			wantChanged: true,
		},
		"unknown pool": {
			caller:  bob,
			poolID:  apestraptest.SequenceID(99),
			wantErr: errors.ErrNotFound,
		},
		"missing caller": {
			wantErr: errors.ErrEmpty,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			if tc.conf != nil {
				assert.Nil(t, gconf.Save(db, confPkg, tc.conf))
			}
			s := NewSplitter(ledger.NewController(), nil)
			id := newPool(t, db, s, []apestrap.Address{bob, charlie}, []uint64{50, 50})
			if tc.poolID != nil {
				id = tc.poolID
			}

			changed, err := s.Approve(context.Background(), db, id, tc.caller)
			assert.IsErr(t, tc.wantErr, err)
			assert.Equal(t, tc.wantChanged, changed)
			if tc.wantErr != nil {
				return
			}
			approved, err := s.IsApproved(db, id, tc.caller)
			assert.Nil(t, err)
			assert.Equal(t, true, approved)

			all, err := s.AllApproved(db, id)
			assert.Nil(t, err)
			assert.Equal(t, false, all)
		})
	}
}

func TestApproveIsIdempotent(t *testing.T) {
	db := store.MemStore()
	tags := NewTagCollector()
	s := NewSplitter(ledger.NewController(), tags)

	bob := apestraptest.RandomAddr()
	id := newPool(t, db, s, []apestrap.Address{bob}, []uint64{100})
	before := len(tags.Tags())

	changed, err := s.Approve(context.Background(), db, id, bob)
	assert.Nil(t, err)
	assert.Equal(t, true, changed)
	changed, err = s.Approve(context.Background(), db, id, bob)
	assert.Nil(t, err)
	assert.Equal(t, false, changed)

	collected := tags.Tags()[before:]
	assert.Equal(t, 1, len(collected))
	assert.Equal(t, "splitter/ape_approved", string(collected[0].Key))

	ok, err := s.AllApproved(db, id)
	assert.Nil(t, err)
	assert.Equal(t, true, ok)
}

func TestAllApproved(t *testing.T) {
	bob := apestraptest.RandomAddr()
	charlie := apestraptest.RandomAddr()

	cases := map[string]struct {
		payees   []apestrap.Address
		approved []apestrap.Address
		want     bool
	}{
		"empty table is always approved": {
			want: true,
		},
		"nobody approved": {
			payees: []apestrap.Address{bob, charlie},
			want:   false,
		},
		"one of two approved": {
			payees:   []apestrap.Address{bob, charlie},
			approved: []apestrap.Address{charlie},
			want:     false,
		},
		"everyone approved": {
			payees:   []apestrap.Address{bob, charlie},
			approved: []apestrap.Address{charlie, bob},
			want:     true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			s := NewSplitter(ledger.NewController(), nil)
			pcts := make([]uint64, len(tc.payees))
			id := newPool(t, db, s, tc.payees, pcts)
			approveAll(t, db, s, id, tc.approved...)

			got, err := s.AllApproved(db, id)
			assert.Nil(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestApprovalsArePerPool(t *testing.T) {
	db := store.MemStore()
	s := NewSplitter(ledger.NewController(), nil)

	bob := apestraptest.RandomAddr()
	first := newPool(t, db, s, []apestrap.Address{bob}, []uint64{100})
	second := newPool(t, db, s, []apestrap.Address{bob}, []uint64{100})
	approveAll(t, db, s, first, bob)

	ok, err := s.AllApproved(db, first)
	assert.Nil(t, err)
	assert.Equal(t, true, ok)
	ok, err = s.AllApproved(db, second)
	assert.Nil(t, err)
	assert.Equal(t, false, ok)
}
