package utils

import (
	"github.com/iov-one/safesend"
	"github.com/iov-one/safesend/errors"
)

// Recovery converts a panic raised by the wrapped handler into a
// regular coded error. A buggy handler then fails its own transaction
// instead of taking the process down with it. Combined with Savepoint
// the failed transaction leaves no writes behind.
type Recovery struct{}

var _ safesend.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator
func NewRecovery() Recovery {
	return Recovery{}
}

// Check passes through, turning panics into normal errors
func (r Recovery) Check(ctx safesend.Context, store safesend.KVStore, tx safesend.Tx, next safesend.Checker) (_ *safesend.CheckResult, err error) {
	defer errors.Recover(&err)
	return next.Check(ctx, store, tx)
}

// Deliver passes through, turning panics into normal errors
func (r Recovery) Deliver(ctx safesend.Context, store safesend.KVStore, tx safesend.Tx, next safesend.Deliverer) (_ *safesend.DeliverResult, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, store, tx)
}
