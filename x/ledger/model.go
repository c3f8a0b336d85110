package ledger

import (
	"github.com/iov-one/apestrap"
	"github.com/iov-one/apestrap/errors"
	"github.com/iov-one/apestrap/orm"
)

// BucketName is where we store the balances
const BucketName = "ledger"

// Account holds the balance of a single address.
type Account struct {
	Balance uint64
}

var _ orm.Model = (*Account)(nil)

// Validate is a noop, every balance is valid.
func (a *Account) Validate() error {
	return nil
}

// AccountBucket is a type-safe wrapper around orm.Bucket
type AccountBucket struct {
	orm.Bucket
}

// NewAccountBucket initializes a AccountBucket with default name
func NewAccountBucket() AccountBucket {
	return AccountBucket{
		Bucket: orm.NewBucket(BucketName, orm.NewSimpleObj(nil, &Account{})),
	}
}

// Save enforces the proper type and a valid address key.
func (b AccountBucket) Save(db apestrap.KVStore, obj orm.Object) error {
	if _, ok := obj.Value().(*Account); !ok {
		return errors.WithType(errors.ErrModel, obj.Value())
	}
	if err := apestrap.Address(obj.Key()).Validate(); err != nil {
		return errors.Wrap(err, "account address")
	}
	return b.Bucket.Save(db, obj)
}

// Balance returns the balance of the address. A missing account has
// a zero balance.
func (b AccountBucket) Balance(db apestrap.ReadOnlyKVStore, addr apestrap.Address) (uint64, error) {
	obj, err := b.Get(db, addr)
	if err != nil {
		return 0, err
	}
	if obj == nil {
		return 0, nil
	}
	return AsAccount(obj).Balance, nil
}

// SetBalance overwrites the balance of the address. An account with a zero
// balance is removed.
func (b AccountBucket) SetBalance(db apestrap.KVStore, addr apestrap.Address, amount uint64) error {
	if amount == 0 {
		if err := addr.Validate(); err != nil {
			return errors.Wrap(err, "account address")
		}
		return b.Delete(db, addr)
	}
	return b.Save(db, orm.NewSimpleObj(addr, &Account{Balance: amount}))
}

// AsAccount will safely type-cast any value from Bucket to an Account
func AsAccount(obj orm.Object) *Account {
	if obj == nil || obj.Value() == nil {
		return nil
	}
	return obj.Value().(*Account)
}
