package splitter

import (
	"github.com/iov-one/apestrap/errors"
	"github.com/iov-one/apestrap/gconf"
)

const (
	confPkg = "splitter"

	// MaxPayeesCap is the upper bound of the max_payees setting and the
	// default when no configuration is stored.
	MaxPayeesCap = 200
)

// Configuration is stored in the database under the "splitter" package
// key and loaded from the genesis "conf" section.
type Configuration struct {
	// MaxPayees limits the size of an allocation table.
	MaxPayees uint32 `json:"max_payees"`
	// RejectNonPayeeApproval makes approving a pool by an address that is
	// not a payee fail with ErrNotAPayee.
	RejectNonPayeeApproval bool `json:"reject_non_payee_approval"`
}

// Validate ensures the payee limit is within bounds.
func (c *Configuration) Validate() error {
	if c.MaxPayees == 0 {
		return errors.Wrap(errors.ErrInput, "max payees must be positive")
	}
	if c.MaxPayees > MaxPayeesCap {
		return errors.Wrapf(errors.ErrInput, "max payees cannot exceed %d", MaxPayeesCap)
	}
	return nil
}

// DefaultConfiguration is used when no configuration is stored.
func DefaultConfiguration() Configuration {
	return Configuration{MaxPayees: MaxPayeesCap}
}

func loadConf(db gconf.ReadStore) (Configuration, error) {
	var conf Configuration
	switch err := gconf.Load(db, confPkg, &conf); {
	case errors.ErrNotFound.Is(err):
		return DefaultConfiguration(), nil
	case err != nil:
		return conf, errors.Wrap(err, "load configuration")
	}
	return conf, nil
}
