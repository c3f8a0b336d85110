package ledger

import (
	"github.com/iov-one/apestrap"
	"github.com/iov-one/apestrap/errors"
	"github.com/iov-one/apestrap/gconf"
)

const confPkg = "ledger"

// Configuration is stored in the database under the "ledger" package
// key and loaded from the genesis "conf" section.
type Configuration struct {
	// Issuer is the only address allowed to mint new tokens.
	Issuer apestrap.Address `json:"issuer"`
	// MinimumReserve is the amount an extension must leave on an account
	// it controls.
	MinimumReserve uint64 `json:"minimum_reserve"`
}

// Validate requires a valid issuer address when one is set.
func (c *Configuration) Validate() error {
	if len(c.Issuer) != 0 {
		if err := c.Issuer.Validate(); err != nil {
			return errors.Wrap(err, "issuer address")
		}
	}
	return nil
}

func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, confPkg, &conf); err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	return &conf, nil
}
