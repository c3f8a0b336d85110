package splitter

import (
	"math/big"
	"strings"

	"github.com/iov-one/apestrap/errors"
	"github.com/shopspring/decimal"
)

// maxPercentage is the largest raw percentage that can be scaled without
// overflow.
var maxPercentage = decimal.NewFromBigInt(new(big.Int).SetUint64(^uint64(0)/ShareScale), 0)

// FormatShare returns the percentage a share represents, for example
// "50" or "33.3333333333".
func FormatShare(share uint64) string {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(share), -10).String()
}

// ParsePercentage reads a raw percentage as accepted by SetAllocation. A
// trailing percent sign is allowed. Fractions are rejected since they
// cannot be represented.
func ParsePercentage(s string) (uint64, error) {
	raw := strings.TrimSuffix(strings.TrimSpace(s), "%")
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrInput, "percentage %q", s)
	}
	if d.IsNegative() {
		return 0, errors.Wrapf(errors.ErrInput, "negative percentage %q", s)
	}
	if !d.Equal(d.Truncate(0)) {
		return 0, errors.Wrapf(errors.ErrInput, "fractional percentage %q", s)
	}
	if d.GreaterThan(maxPercentage) {
		return 0, errors.Wrapf(errors.ErrOverflow, "percentage %q", s)
	}
	return d.BigInt().Uint64(), nil
}
