package ledger

import (
	"github.com/iov-one/apestrap"
	"github.com/iov-one/apestrap/errors"
	"github.com/iov-one/apestrap/gconf"
)

const optKey = "ledger"

// GenesisAccount is used to parse the json from genesis file
// use apestrap.Address, so address in hex, not base64
type GenesisAccount struct {
	Address apestrap.Address `json:"address"`
	Balance uint64           `json:"balance"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ apestrap.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis
// and save it to the database. The "conf.ledger" section is optional.
func (Initializer) FromGenesis(opts apestrap.Options, db apestrap.KVStore) error {
	var conf Configuration
	if err := gconf.InitConfig(db, opts, confPkg, &conf); err != nil && !errors.ErrNotFound.Is(err) {
		return errors.Wrap(err, "init config")
	}

	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	bucket := NewAccountBucket()
	for i, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
		if ok, err := bucket.Has(db, acct.Address); err != nil {
			return err
		} else if ok {
			return errors.Wrapf(errors.ErrDuplicate, "account %s", acct.Address)
		}
		if err := bucket.SetBalance(db, acct.Address, acct.Balance); err != nil {
			return err
		}
	}
	return nil
}
