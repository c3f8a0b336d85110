package orm

import (
	"reflect"

	"github.com/iov-one/apestrap/errors"
)

// Model is the value stored in a bucket. It is encoded with Codec and must
// be a pointer to a struct.
type Model interface {
	Validate() error
}

// Object binds a Model to its key within a bucket.
type Object interface {
	Key() []byte
	Value() Model
	Validate() error
}

// Cloneable hands out empty objects of a single model type. A bucket
// decodes stored values into them.
type Cloneable interface {
	Clone() Object
}

// SimpleObj is the Object kept by every bucket of this module.
type SimpleObj struct {
	key   []byte
	value Model
}

var (
	_ Object    = (*SimpleObj)(nil)
	_ Cloneable = (*SimpleObj)(nil)
)

// NewSimpleObj returns value stored under key. Bucket prototypes use a nil
// key.
func NewSimpleObj(key []byte, value Model) *SimpleObj {
	return &SimpleObj{key: key, value: value}
}

func (o *SimpleObj) Key() []byte { return o.key }

func (o *SimpleObj) Value() Model { return o.value }

// Validate requires a key and a valid value.
func (o *SimpleObj) Validate() error {
	switch {
	case len(o.key) == 0:
		return errors.Wrap(errors.ErrEmpty, "key")
	case o.value == nil:
		return errors.Wrap(errors.ErrEmpty, "value")
	}
	if err := o.value.Validate(); err != nil {
		return errors.Wrapf(err, "value of %X", o.key)
	}
	return nil
}

// Clone returns an object without a key, holding the zero value of the
// same model type.
func (o *SimpleObj) Clone() Object {
	zero := reflect.New(reflect.TypeOf(o.value).Elem()).Interface().(Model)
	return &SimpleObj{value: zero}
}
