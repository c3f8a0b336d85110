package ledger

import (
	"context"
	"testing"

	"github.com/iov-one/apestrap"
	"github.com/iov-one/apestrap/apestraptest"
	"github.com/iov-one/apestrap/apestraptest/assert"
	"github.com/iov-one/apestrap/errors"
	"github.com/iov-one/apestrap/gconf"
	"github.com/iov-one/apestrap/store"
)

func TestMintHandler(t *testing.T) {
	issuer := apestraptest.NewCondition()
	stranger := apestraptest.NewCondition()
	dst := apestraptest.RandomAddr()

	cases := map[string]struct {
		conf        *Configuration
		signer      apestrap.Condition
		msg         apestrap.Msg
		wantErr     *errors.Error
		wantBalance uint64
	}{
		"issuer can mint": {
			conf:        &Configuration{Issuer: issuer.Address()},
			signer:      issuer,
			msg:         &MintMsg{Destination: dst, Amount: 300},
			wantBalance: 300,
		},
		"stranger cannot mint": {
			conf:    &Configuration{Issuer: issuer.Address()},
			signer:  stranger,
			msg:     &MintMsg{Destination: dst, Amount: 300},
			wantErr: errors.ErrUnauthorized,
		},
		"no issuer configured": {
			conf:    &Configuration{},
			signer:  issuer,
			msg:     &MintMsg{Destination: dst, Amount: 300},
			wantErr: errors.ErrUnauthorized,
		},
		"no configuration": {
			signer:  issuer,
			msg:     &MintMsg{Destination: dst, Amount: 300},
			wantErr: errors.ErrUnauthorized,
		},
		"zero amount": {
			conf:    &Configuration{Issuer: issuer.Address()},
			signer:  issuer,
			msg:     &MintMsg{Destination: dst},
			wantErr: errors.ErrAmount,
		},
		"wrong message": {
			conf:    &Configuration{Issuer: issuer.Address()},
			signer:  issuer,
			msg:     &SendMsg{Source: dst, Destination: dst, Amount: 1},
			wantErr: errors.ErrType,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			if tc.conf != nil {
				assert.Nil(t, gconf.Save(db, confPkg, tc.conf))
			}
			auth := &apestraptest.Auth{Signer: tc.signer}
			ctrl := NewController()
			h := NewMintHandler(auth, ctrl)
			tx := &apestraptest.Tx{Msg: tc.msg}

			_, err := h.Check(context.Background(), db.CacheWrap(), tx)
			assert.IsErr(t, tc.wantErr, err)
			_, err = h.Deliver(context.Background(), db, tx)
			assert.IsErr(t, tc.wantErr, err)

			got, err := ctrl.Balance(db, dst)
			assert.Nil(t, err)
			assert.Equal(t, tc.wantBalance, got)
		})
	}
}

func TestSendHandler(t *testing.T) {
	owner := apestraptest.NewCondition()
	stranger := apestraptest.NewCondition()
	dst := apestraptest.RandomAddr()

	cases := map[string]struct {
		signer    apestrap.Condition
		msg       apestrap.Msg
		wantErr   *errors.Error
		wantOwner uint64
		wantDst   uint64
	}{
		"owner can send": {
			signer:    owner,
			msg:       &SendMsg{Source: owner.Address(), Destination: dst, Amount: 30, Memo: "apes"},
			wantOwner: 70,
			wantDst:   30,
		},
		"stranger cannot send": {
			signer:    stranger,
			msg:       &SendMsg{Source: owner.Address(), Destination: dst, Amount: 30},
			wantErr:   errors.ErrUnauthorized,
			wantOwner: 100,
		},
		"insufficient funds": {
			signer:    owner,
			msg:       &SendMsg{Source: owner.Address(), Destination: dst, Amount: 101},
			wantErr:   errors.ErrAmount,
			wantOwner: 100,
		},
		"missing destination": {
			signer:    owner,
			msg:       &SendMsg{Source: owner.Address(), Amount: 1},
			wantErr:   errors.ErrEmpty,
			wantOwner: 100,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctrl := NewController()
			assert.Nil(t, ctrl.Mint(db, owner.Address(), 100))

			auth := &apestraptest.Auth{Signer: tc.signer}
			h := NewSendHandler(auth, ctrl)
			tx := &apestraptest.Tx{Msg: tc.msg}

			// insufficient funds are only detected on delivery
			if _, err := h.Check(context.Background(), db.CacheWrap(), tx); !errors.ErrAmount.Is(tc.wantErr) {
				assert.IsErr(t, tc.wantErr, err)
			}
			_, err := h.Deliver(context.Background(), db, tx)
			assert.IsErr(t, tc.wantErr, err)

			got, err := ctrl.Balance(db, owner.Address())
			assert.Nil(t, err)
			assert.Equal(t, tc.wantOwner, got)
			got, err = ctrl.Balance(db, dst)
			assert.Nil(t, err)
			assert.Equal(t, tc.wantDst, got)
		})
	}
}
