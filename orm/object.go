package orm

import (
	"reflect"

	"github.com/iov-one/safesend"
	"github.com/iov-one/safesend/errors"
	"github.com/iov-one/safesend/x"
)

var _ x.Validater = (*SimpleObj)(nil)

// SimpleObj wraps a key and a value together
// It can be used as a template for type-safe objects
type SimpleObj struct {
	key   []byte
	value Model
}

// NewSimpleObj will combine a key and value into an object
func NewSimpleObj(key []byte, value Model) *SimpleObj {
	return &SimpleObj{
		key:   key,
		value: value,
	}
}

// Value gets the value stored in the object
func (o SimpleObj) Value() safesend.Persistent {
	return o.value
}

// Key returns the key to store the object under
func (o SimpleObj) Key() []byte {
	return o.key
}

// Validate makes sure the fields aren't empty.
// And delegates to the value validator if present
func (o SimpleObj) Validate() error {
	if len(o.key) == 0 {
		return errors.Field("Key", errors.ErrEmpty, "missing key")
	}
	if o.value == nil {
		return errors.Field("Value", errors.ErrEmpty, "missing value")
	}
	return errors.Field("Value", o.value.Validate(), "invalid value")
}

// SetKey may be used to update a simple obj key
func (o *SimpleObj) SetKey(key []byte) {
	o.key = key
}

// Clone will make a copy of this object. Values that know how to copy
// themselves do so, anything else gets a fresh zero value of the same
// type to unmarshal into.
func (o *SimpleObj) Clone() Object {
	res := &SimpleObj{
		value: cloneValue(o.value),
	}
	// only copy key if non-nil
	if len(o.key) > 0 {
		res.key = append([]byte(nil), o.key...)
	}
	return res
}

func cloneValue(value Model) Model {
	if c, ok := value.(CloneableData); ok {
		return c.Copy()
	}
	return reflect.New(reflect.TypeOf(value).Elem()).Interface().(Model)
}
