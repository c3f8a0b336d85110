package ledger

import (
	"math/bits"

	"github.com/iov-one/apestrap"
	"github.com/iov-one/apestrap/errors"
)

// Controller is the functionality needed by other extensions to move
// tokens.
type Controller interface {
	Balance(db apestrap.ReadOnlyKVStore, account apestrap.Address) (uint64, error)
	MinimumReserve(db apestrap.ReadOnlyKVStore) (uint64, error)
	Transfer(db apestrap.KVStore, src, dst apestrap.Address, amount uint64) error
	Mint(db apestrap.KVStore, dst apestrap.Address, amount uint64) error
}

// BaseController is a simple implementation of the Controller, storing
// balances in the account bucket.
type BaseController struct {
	bucket AccountBucket
}

var _ Controller = BaseController{}

// NewController returns a controller using the default account bucket.
func NewController() BaseController {
	return BaseController{bucket: NewAccountBucket()}
}

// Balance returns the current balance of the account. Unknown accounts
// hold nothing.
func (c BaseController) Balance(db apestrap.ReadOnlyKVStore, account apestrap.Address) (uint64, error) {
	return c.bucket.Balance(db, account)
}

// MinimumReserve returns the configured reserve. Without a configuration
// there is no reserve.
func (c BaseController) MinimumReserve(db apestrap.ReadOnlyKVStore) (uint64, error) {
	conf, err := loadConf(db)
	switch {
	case errors.ErrNotFound.Is(err):
		return 0, nil
	case err != nil:
		return 0, err
	}
	return conf.MinimumReserve, nil
}

// Transfer moves amount from src to dst. A zero amount is a no-op.
// It fails if src doesn't have sufficient funds.
func (c BaseController) Transfer(db apestrap.KVStore, src, dst apestrap.Address, amount uint64) error {
	if err := src.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := dst.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if amount == 0 {
		return nil
	}

	have, err := c.bucket.Balance(db, src)
	if err != nil {
		return err
	}
	if have < amount {
		return errors.Wrapf(errors.ErrAmount, "insufficient funds: %d < %d", have, amount)
	}
	if src.Equals(dst) {
		return nil
	}

	recipient, err := c.bucket.Balance(db, dst)
	if err != nil {
		return err
	}
	total, carry := bits.Add64(recipient, amount, 0)
	if carry != 0 {
		return errors.Wrap(errors.ErrOverflow, "recipient balance")
	}
	if err := c.bucket.SetBalance(db, src, have-amount); err != nil {
		return err
	}
	return c.bucket.SetBalance(db, dst, total)
}

// Mint adds new tokens to the destination account. Fails if it overflows
// the balance.
func (c BaseController) Mint(db apestrap.KVStore, dst apestrap.Address, amount uint64) error {
	if err := dst.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	have, err := c.bucket.Balance(db, dst)
	if err != nil {
		return err
	}
	total, carry := bits.Add64(have, amount, 0)
	if carry != 0 {
		return errors.Wrap(errors.ErrOverflow, "balance")
	}
	return c.bucket.SetBalance(db, dst, total)
}
