package splitter

import (
	"github.com/iov-one/apestrap"
	"github.com/iov-one/apestrap/errors"
	"github.com/iov-one/apestrap/orm"
)

const (
	pathCreatePoolMsg    = "splitter/create_pool"
	pathSetAllocationMsg = "splitter/set_allocation"
	pathApproveMsg       = "splitter/approve"
	pathPayoutMsg        = "splitter/payout"
)

func init() {
	orm.RegisterMsg(&CreatePoolMsg{}, pathCreatePoolMsg)
	orm.RegisterMsg(&SetAllocationMsg{}, pathSetAllocationMsg)
	orm.RegisterMsg(&ApproveMsg{}, pathApproveMsg)
	orm.RegisterMsg(&PayoutMsg{}, pathPayoutMsg)
}

// CreatePoolMsg creates a pool without payees, administrated by Admin.
type CreatePoolMsg struct {
	Admin apestrap.Address `json:"admin"`
}

var _ apestrap.Msg = (*CreatePoolMsg)(nil)

func (CreatePoolMsg) Path() string {
	return pathCreatePoolMsg
}

func (m *CreatePoolMsg) Validate() error {
	if err := m.Admin.Validate(); err != nil {
		return errors.Wrap(err, "admin")
	}
	return nil
}

// SetAllocationMsg replaces the allocation table of a pool. Percentages
// are parallel to Payees.
type SetAllocationMsg struct {
	PoolID      []byte             `json:"pool_id"`
	Payees      []apestrap.Address `json:"payees"`
	Percentages []uint64           `json:"percentages"`
}

var _ apestrap.Msg = (*SetAllocationMsg)(nil)

func (SetAllocationMsg) Path() string {
	return pathSetAllocationMsg
}

func (m *SetAllocationMsg) Validate() error {
	if err := validatePoolID(m.PoolID); err != nil {
		return err
	}
	if len(m.Payees) != len(m.Percentages) {
		return errors.Wrapf(ErrArityMismatch, "%d payees, %d percentages", len(m.Payees), len(m.Percentages))
	}
	if err := validatePayees(m.Payees); err != nil {
		return err
	}
	for i, pct := range m.Percentages {
		if _, err := ScaleShare(pct); err != nil {
			return errors.Wrapf(err, "percentage %d", i)
		}
	}
	return nil
}

// ApproveMsg approves the current allocation of a pool by the signer.
type ApproveMsg struct {
	PoolID []byte `json:"pool_id"`
}

var _ apestrap.Msg = (*ApproveMsg)(nil)

func (ApproveMsg) Path() string {
	return pathApproveMsg
}

func (m *ApproveMsg) Validate() error {
	return validatePoolID(m.PoolID)
}

// PayoutMsg requests the payout of a pool.
type PayoutMsg struct {
	PoolID []byte `json:"pool_id"`
}

var _ apestrap.Msg = (*PayoutMsg)(nil)

func (PayoutMsg) Path() string {
	return pathPayoutMsg
}

func (m *PayoutMsg) Validate() error {
	return validatePoolID(m.PoolID)
}

func validatePoolID(id []byte) error {
	if len(id) == 0 {
		return errors.Wrap(errors.ErrEmpty, "pool id")
	}
	n, err := orm.DecodeID(id)
	if err != nil {
		return errors.Wrap(err, "pool id")
	}
	if n == 0 {
		return errors.Wrap(errors.ErrInput, "pool id zero")
	}
	return nil
}
