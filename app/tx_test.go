package app

import (
	"testing"

	"github.com/iov-one/apestrap"
	"github.com/iov-one/apestrap/apestraptest"
	"github.com/iov-one/apestrap/errors"
	"github.com/iov-one/apestrap/x/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTxCodec(t *testing.T) {
	signer := apestraptest.NewCondition()
	tx := &Tx{
		Signers: []apestrap.Condition{signer},
		Msg: &ledger.SendMsg{
			Source:      signer.Address(),
			Destination: apestraptest.RandomAddr(),
			Amount:      12,
			Memo:        "bananas",
		},
	}
	raw, err := EncodeTx(tx)
	require.NoError(t, err)

	got, err := DecodeTx(raw)
	require.NoError(t, err)
	assert.Equal(t, tx.Signers, got.GetSigners())
	var msg ledger.SendMsg
	require.NoError(t, apestrap.LoadMsg(got, &msg))
	assert.Equal(t, tx.Msg, &msg)

	_, err = DecodeTx([]byte("not a transaction"))
	assert.True(t, errors.ErrModel.Is(err))

	_, err = (&Tx{}).GetMsg()
	assert.True(t, errors.ErrMsg.Is(err))
}
