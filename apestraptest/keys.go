package apestraptest

import (
	"crypto/rand"

	"github.com/iov-one/apestrap"
	"github.com/iov-one/apestrap/orm"
)

// NewCondition returns a random condition. Each call returns a different
// value.
func NewCondition() apestrap.Condition {
	data := make([]byte, 16)
	if _, err := rand.Read(data); err != nil {
		panic(err)
	}
	return apestrap.NewCondition("test", "rand", data)
}

// RandomAddr returns the address of a random condition.
func RandomAddr() apestrap.Address {
	return NewCondition().Address()
}

// SequenceID returns the identifier the n-th call to an orm sequence
// hands out.
func SequenceID(n uint64) []byte {
	return orm.EncodeID(n)
}
