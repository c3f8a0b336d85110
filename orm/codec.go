package orm

import (
	"github.com/iov-one/apestrap"
	"github.com/iov-one/apestrap/errors"
	amino "github.com/tendermint/go-amino"
)

// Codec is the binary codec shared by all stored models and transactions.
// Extensions register their messages with RegisterMsg during init.
var Codec = amino.NewCodec()

func init() {
	Codec.RegisterInterface((*apestrap.Msg)(nil), nil)
}

// RegisterMsg registers a concrete message type so that it can be carried
// inside a transaction. Use a pointer to the message type.
func RegisterMsg(msg apestrap.Msg, name string) {
	Codec.RegisterConcrete(msg, name, nil)
}

// Marshal serializes any model or message with the shared codec. The
// result is length prefixed, so that even a zero value encodes to a non
// empty slice and can be told apart from a missing key.
func Marshal(o interface{}) ([]byte, error) {
	bz, err := Codec.MarshalBinaryLengthPrefixed(o)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "marshal: %s", err)
	}
	return bz, nil
}

// Unmarshal loads data serialized with Marshal into the given pointer.
func Unmarshal(bz []byte, ptr interface{}) error {
	if len(bz) == 0 {
		return errors.Wrap(errors.ErrModel, "unmarshal: no data")
	}
	if err := Codec.UnmarshalBinaryLengthPrefixed(bz, ptr); err != nil {
		return errors.Wrapf(errors.ErrModel, "unmarshal: %s", err)
	}
	return nil
}
