package splitter

import (
	"github.com/iov-one/apestrap"
	"github.com/iov-one/apestrap/errors"
	"github.com/iov-one/apestrap/gconf"
)

const optKey = "splitter"

// GenesisPayee is a single row of a genesis allocation table.
type GenesisPayee struct {
	Address    apestrap.Address `json:"address"`
	Percentage uint64           `json:"percentage"`
}

// GenesisPool is used to parse the pools declared in the genesis file.
type GenesisPool struct {
	Admin  apestrap.Address `json:"admin"`
	Payees []GenesisPayee   `json:"payees"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ apestrap.Initializer = Initializer{}

// FromGenesis creates the genesis pools in declaration order, so that
// the first pool gets the ID 1. The "conf.splitter" section is optional.
func (Initializer) FromGenesis(opts apestrap.Options, db apestrap.KVStore) error {
	var conf Configuration
	if err := gconf.InitConfig(db, opts, confPkg, &conf); err != nil && !errors.ErrNotFound.Is(err) {
		return errors.Wrap(err, "init config")
	}

	var pools []GenesisPool
	if err := opts.ReadOptions(optKey, &pools); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	bucket := NewPoolBucket()
	for i, gp := range pools {
		pool := Pool{
			Admin:  gp.Admin,
			Payees: make([]apestrap.Address, len(gp.Payees)),
			Shares: make([]uint64, len(gp.Payees)),
		}
		for j, p := range gp.Payees {
			share, err := ScaleShare(p.Percentage)
			if err != nil {
				return errors.Wrapf(err, "pool %d, payee %d", i, j)
			}
			pool.Payees[j] = p.Address
			pool.Shares[j] = share
		}
		if err := pool.Validate(); err != nil {
			return errors.Wrapf(err, "pool %d", i)
		}
		if _, err := bucket.Create(db, &pool); err != nil {
			return errors.Wrapf(err, "pool %d", i)
		}
	}
	return nil
}
