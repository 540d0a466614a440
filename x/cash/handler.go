package cash

import (
	"github.com/iov-one/safesend"
	"github.com/iov-one/safesend/errors"
	"github.com/iov-one/safesend/x"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r safesend.Registry, auth x.Authenticator, control CoinMover) {
	r.Handle(SendMsg{}.Path(), NewSendHandler(auth, control))
}

// SendHandler will handle sending coins
type SendHandler struct {
	auth    x.Authenticator
	control CoinMover
}

var _ safesend.Handler = SendHandler{}

// NewSendHandler creates a handler for SendMsg
func NewSendHandler(auth x.Authenticator, control CoinMover) SendHandler {
	return SendHandler{
		auth:    auth,
		control: control,
	}
}

// Check just verifies it is properly formed and returns
// the cost of executing it
func (h SendHandler) Check(ctx safesend.Context, store safesend.KVStore, tx safesend.Tx) (*safesend.CheckResult, error) {
	var msg SendMsg
	if err := safesend.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}

	// Make sure we have permission from the source.
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "account owner signature missing")
	}

	return &safesend.CheckResult{GasAllocated: sendTxCost}, nil
}

// Deliver moves the tokens from source to destination if
// all preconditions are met
func (h SendHandler) Deliver(ctx safesend.Context, store safesend.KVStore, tx safesend.Tx) (*safesend.DeliverResult, error) {
	var msg SendMsg
	if err := safesend.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}

	// Make sure we have permission from the source.
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "account owner signature missing")
	}

	if err := h.control.MoveCoins(store, msg.Source, msg.Destination, *msg.Amount); err != nil {
		return nil, err
	}
	return &safesend.DeliverResult{}, nil
}
