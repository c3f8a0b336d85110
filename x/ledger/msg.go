package ledger

import (
	"github.com/iov-one/apestrap"
	"github.com/iov-one/apestrap/errors"
	"github.com/iov-one/apestrap/orm"
)

const (
	pathMintMsg = "ledger/mint"
	pathSendMsg = "ledger/send"

	maxMemoSize = 128
)

func init() {
	orm.RegisterMsg(&MintMsg{}, pathMintMsg)
	orm.RegisterMsg(&SendMsg{}, pathSendMsg)
}

// MintMsg creates new tokens on the destination account. It must be
// signed by the configured issuer.
type MintMsg struct {
	Destination apestrap.Address `json:"destination"`
	Amount      uint64           `json:"amount"`
}

var _ apestrap.Msg = (*MintMsg)(nil)

// Path returns the routing path for this message
func (MintMsg) Path() string {
	return pathMintMsg
}

// Validate makes sure that this is sensible
func (m *MintMsg) Validate() error {
	if err := m.Destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if m.Amount == 0 {
		return errors.Wrap(errors.ErrAmount, "non-positive amount")
	}
	return nil
}

// SendMsg moves tokens from the source to the destination. It must be
// signed by the source.
type SendMsg struct {
	Source      apestrap.Address `json:"source"`
	Destination apestrap.Address `json:"destination"`
	Amount      uint64           `json:"amount"`
	Memo        string           `json:"memo"`
}

var _ apestrap.Msg = (*SendMsg)(nil)

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return pathSendMsg
}

// Validate makes sure that this is sensible
func (m *SendMsg) Validate() error {
	if err := m.Source.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := m.Destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if m.Amount == 0 {
		return errors.Wrap(errors.ErrAmount, "non-positive amount")
	}
	if len(m.Memo) > maxMemoSize {
		return errors.Wrapf(errors.ErrInput, "memo longer than %d", maxMemoSize)
	}
	return nil
}
