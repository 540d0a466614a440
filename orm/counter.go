package orm

import (
	"github.com/iov-one/safesend/errors"
)

var _ Model = (*Counter)(nil)

// Counter is a trivial model, mainly used as a proto for
// buckets in tests.
type Counter struct {
	Count int64 `json:"count"`
}

// Marshal implements the Persistent interface
func (c *Counter) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(c)
}

// Unmarshal implements the Persistent interface
func (c *Counter) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, c)
}

// Copy produces a new copy to fulfill the CloneableData interface
func (c *Counter) Copy() CloneableData {
	return &Counter{Count: c.Count}
}

// Validate requires a non-negative count
func (c *Counter) Validate() error {
	if c.Count < 0 {
		return errors.Wrap(errors.ErrInvalidState, "count must be non-negative")
	}
	return nil
}

// NewCounterObj wraps a counter value in a storable object
func NewCounterObj(key []byte, count int64) Object {
	return NewSimpleObj(key, &Counter{Count: count})
}
