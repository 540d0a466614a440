package cheque

import (
	"github.com/iov-one/safesend/errors"
)

// Cheque reserves 1000~1099 error codes.
var (
	// ErrFinalized is returned when acting on a cheque that already
	// left the active state.
	ErrFinalized = errors.Register(1000, "already finalized")

	// ErrNotExpired is returned when trying to expire a cheque that
	// has no timeout or whose timeout did not pass yet.
	ErrNotExpired = errors.Register(1001, "not yet expired")
)
