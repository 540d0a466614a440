package username

import (
	"github.com/iov-one/safesend"
	"github.com/iov-one/safesend/errors"
	"github.com/iov-one/safesend/x"
)

// RegisterRoutes will instantiate and register
// all handlers in this package.
func RegisterRoutes(r safesend.Registry, auth x.Authenticator) {
	bucket := NewBucket()
	r.Handle(RegisterUsernameMsg{}.Path(), RegisterUsernameHandler{auth: auth, bucket: bucket})
	r.Handle(TransferUsernameMsg{}.Path(), TransferUsernameHandler{auth: auth, bucket: bucket})
}

// RegisterUsernameHandler registers names first-come first-served.
type RegisterUsernameHandler struct {
	auth   x.Authenticator
	bucket Bucket
}

var _ safesend.Handler = RegisterUsernameHandler{}

func (h RegisterUsernameHandler) Check(ctx safesend.Context, db safesend.KVStore, tx safesend.Tx) (*safesend.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &safesend.CheckResult{GasAllocated: registerCost}, nil
}

func (h RegisterUsernameHandler) Deliver(ctx safesend.Context, db safesend.KVStore, tx safesend.Tx) (*safesend.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	obj := NewToken(msg.Username, msg.Owner)
	if err := h.bucket.Save(db, obj); err != nil {
		return nil, err
	}
	return &safesend.DeliverResult{Data: []byte(msg.Username)}, nil
}

func (h RegisterUsernameHandler) validate(ctx safesend.Context, db safesend.KVStore, tx safesend.Tx) (*RegisterUsernameMsg, error) {
	var msg RegisterUsernameMsg
	if err := safesend.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	// The registered owner must consent to being bound to the name.
	if !h.auth.HasAddress(ctx, msg.Owner) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "owner signature missing")
	}
	obj, err := h.bucket.Get(db, msg.Username)
	if err != nil {
		return nil, err
	}
	if obj != nil {
		return nil, errors.Wrapf(errors.ErrDuplicate, "username %q", msg.Username)
	}
	return &msg, nil
}

// TransferUsernameHandler lets the current owner reassign a name.
type TransferUsernameHandler struct {
	auth   x.Authenticator
	bucket Bucket
}

var _ safesend.Handler = TransferUsernameHandler{}

func (h TransferUsernameHandler) Check(ctx safesend.Context, db safesend.KVStore, tx safesend.Tx) (*safesend.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &safesend.CheckResult{GasAllocated: transferCost}, nil
}

func (h TransferUsernameHandler) Deliver(ctx safesend.Context, db safesend.KVStore, tx safesend.Tx) (*safesend.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	obj := NewToken(msg.Username, msg.NewOwner)
	if err := h.bucket.Save(db, obj); err != nil {
		return nil, err
	}
	return &safesend.DeliverResult{}, nil
}

func (h TransferUsernameHandler) validate(ctx safesend.Context, db safesend.KVStore, tx safesend.Tx) (*TransferUsernameMsg, error) {
	var msg TransferUsernameMsg
	if err := safesend.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	obj, err := h.bucket.Get(db, msg.Username)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "username %q", msg.Username)
	}
	if !h.auth.HasAddress(ctx, AsToken(obj).Owner) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "only the current owner may transfer")
	}
	return &msg, nil
}
