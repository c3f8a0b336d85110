package app

import (
	"github.com/iov-one/apestrap"
	"github.com/iov-one/apestrap/errors"
	"github.com/iov-one/apestrap/orm"
)

// Tx is the transaction format understood by the Host. The signers are
// provided by the host environment and trusted verbatim.
type Tx struct {
	Signers []apestrap.Condition
	Msg     apestrap.Msg
}

var _ SignedTx = (*Tx)(nil)

// GetMsg returns the carried message.
func (tx *Tx) GetMsg() (apestrap.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrMsg, "no message")
	}
	return tx.Msg, nil
}

// GetSigners returns the conditions that signed this transaction.
func (tx *Tx) GetSigners() []apestrap.Condition {
	return tx.Signers
}

// EncodeTx serializes the transaction with the orm codec. The message
// type must be registered with orm.RegisterMsg.
func EncodeTx(tx *Tx) ([]byte, error) {
	return orm.Marshal(tx)
}

// DecodeTx parses a transaction encoded with EncodeTx.
func DecodeTx(raw []byte) (*Tx, error) {
	var tx Tx
	if err := orm.Unmarshal(raw, &tx); err != nil {
		return nil, errors.Wrap(err, "decode tx")
	}
	return &tx, nil
}
