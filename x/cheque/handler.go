package cheque

import (
	"github.com/iov-one/safesend"
	"github.com/iov-one/safesend/errors"
	"github.com/iov-one/safesend/gconf"
	"github.com/iov-one/safesend/x"
	"github.com/iov-one/safesend/x/cash"
)

const (
	createChequeCost  int64 = 300
	collectChequeCost int64 = 0
	cancelChequeCost  int64 = 0
	expireChequeCost  int64 = 0
)

// RegisterRoutes will instantiate and register
// all handlers in this package.
func RegisterRoutes(r safesend.Registry, auth x.Authenticator, ctrl cash.Controller, resolver NameResolver) {
	bucket := NewBucket()
	gate := NewGate(resolver)

	r.Handle(CreateChequeMsg{}.Path(), CreateChequeHandler{auth: auth, bucket: bucket, bank: ctrl})
	r.Handle(CollectChequeMsg{}.Path(), CollectChequeHandler{auth: auth, bucket: bucket, bank: ctrl, gate: gate})
	r.Handle(CancelChequeMsg{}.Path(), CancelChequeHandler{auth: auth, bucket: bucket, bank: ctrl})
	r.Handle(ExpireChequeMsg{}.Path(), ExpireChequeHandler{bucket: bucket, bank: ctrl})
	r.Handle(UpdateConfigurationMsg{}.Path(), NewConfigHandler(auth))
}

// CreateChequeHandler funds a new cheque from the sender wallet.
type CreateChequeHandler struct {
	auth   x.Authenticator
	bucket Bucket
	bank   cash.CoinMover
}

var _ safesend.Handler = CreateChequeHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h CreateChequeHandler) Check(ctx safesend.Context, db safesend.KVStore, tx safesend.Tx) (*safesend.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &safesend.CheckResult{GasAllocated: createChequeCost}, nil
}

// Deliver debits the fee and the escrowed amount from the sender and
// stores the new record. A failed debit aborts, no record is written.
func (h CreateChequeHandler) Deliver(ctx safesend.Context, db safesend.KVStore, tx safesend.Tx) (*safesend.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	// Apply a default for the sender.
	sender := msg.Sender
	if sender == nil {
		sender = x.MainSigner(ctx, h.auth).Address()
	}

	id, err := h.bucket.NextID(db)
	if err != nil {
		return nil, err
	}

	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	if !conf.Fee.IsZero() {
		// The fee must be payable together with the escrowed asset.
		if conf.Fee.Ticker != msg.Amount.Ticker {
			return nil, errors.Wrapf(errors.ErrCurrency, "fee is %s, cheque is %s", conf.Fee.Ticker, msg.Amount.Ticker)
		}
		// The fee goes straight to the owner. It is never part of
		// the custody balance.
		if err := h.bank.MoveCoins(db, sender, conf.Owner, conf.Fee); err != nil {
			return nil, errors.Wrap(err, "cannot charge fee")
		}
	}

	custody := ChequeCondition(id).Address()
	if err := h.bank.MoveCoins(db, sender, custody, msg.Amount); err != nil {
		return nil, errors.Wrap(err, "cannot fund cheque")
	}

	blockTime, err := safesend.BlockTime(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "block time")
	}
	cheque := &Cheque{
		Sender:    sender,
		Target:    msg.Target,
		Amount:    msg.Amount,
		Memo:      msg.Memo,
		CreatedAt: safesend.AsUnixTime(blockTime),
		Timeout:   msg.Timeout,
		Status:    StatusActive,
	}
	if err := h.bucket.Save(db, id, cheque); err != nil {
		return nil, errors.Wrap(err, "cannot store cheque")
	}

	return &safesend.DeliverResult{Data: id}, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h CreateChequeHandler) validate(ctx safesend.Context, db safesend.KVStore, tx safesend.Tx) (*CreateChequeMsg, error) {
	var msg CreateChequeMsg
	if err := safesend.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}

	if !msg.Timeout.IsZero() && safesend.IsExpired(ctx, msg.Timeout) {
		return nil, errors.Wrap(errors.ErrInvalidInput, "timeout in the past")
	}

	// Sender must authorize this (if not set, defaults to the main
	// signer).
	if msg.Sender != nil {
		if !h.auth.HasAddress(ctx, msg.Sender) {
			return nil, errors.Wrap(errors.ErrUnauthorized, "sender signature missing")
		}
	} else if x.MainSigner(ctx, h.auth) == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}

	return &msg, nil
}

// CollectChequeHandler pays an active cheque out to an authorized
// claimant.
type CollectChequeHandler struct {
	auth   x.Authenticator
	bucket Bucket
	bank   cash.CoinMover
	gate   Gate
}

var _ safesend.Handler = CollectChequeHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h CollectChequeHandler) Check(ctx safesend.Context, db safesend.KVStore, tx safesend.Tx) (*safesend.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &safesend.CheckResult{GasAllocated: collectChequeCost}, nil
}

// Deliver marks the cheque collected and then credits the claimant
// from the custody account. The status write happens before the
// credit on purpose: a ledger that reenters this handler during the
// credit finds the cheque finalized.
func (h CollectChequeHandler) Deliver(ctx safesend.Context, db safesend.KVStore, tx safesend.Tx) (*safesend.DeliverResult, error) {
	msg, cheque, claimant, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	cheque.Status = StatusCollected
	if err := h.bucket.Save(db, msg.ChequeID, cheque); err != nil {
		return nil, errors.Wrap(err, "cannot finalize cheque")
	}

	custody := ChequeCondition(msg.ChequeID).Address()
	if err := h.bank.MoveCoins(db, custody, claimant, cheque.Amount); err != nil {
		// The caller discards all writes of this transaction,
		// including the status flip above.
		return nil, errors.Wrap(err, "cannot pay out")
	}
	return &safesend.DeliverResult{Data: msg.ChequeID}, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h CollectChequeHandler) validate(ctx safesend.Context, db safesend.KVStore, tx safesend.Tx) (*CollectChequeMsg, *Cheque, safesend.Address, error) {
	var msg CollectChequeMsg
	if err := safesend.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}

	cheque, err := h.bucket.GetCheque(db, msg.ChequeID)
	if err != nil {
		return nil, nil, nil, err
	}
	if cheque.Status != StatusActive {
		return nil, nil, nil, errors.Wrapf(ErrFinalized, "status %s", cheque.Status)
	}
	if !cheque.Timeout.IsZero() && safesend.IsExpired(ctx, cheque.Timeout) {
		return nil, nil, nil, errors.Wrapf(errors.ErrExpired, "cheque expired %v", cheque.Timeout)
	}

	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, nil, nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	claimant := signer.Address()
	if !h.gate.Authorize(db, cheque.Target, claimant) {
		return nil, nil, nil, errors.Wrapf(errors.ErrUnauthorized, "claimant does not satisfy target %s", cheque.Target)
	}

	return &msg, cheque, claimant, nil
}

// CancelChequeHandler refunds an active cheque to its sender.
type CancelChequeHandler struct {
	auth   x.Authenticator
	bucket Bucket
	bank   cash.CoinMover
}

var _ safesend.Handler = CancelChequeHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h CancelChequeHandler) Check(ctx safesend.Context, db safesend.KVStore, tx safesend.Tx) (*safesend.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &safesend.CheckResult{GasAllocated: cancelChequeCost}, nil
}

// Deliver marks the cheque cancelled and then refunds the sender.
// Status before credit, same reentrancy contract as collection.
func (h CancelChequeHandler) Deliver(ctx safesend.Context, db safesend.KVStore, tx safesend.Tx) (*safesend.DeliverResult, error) {
	msg, cheque, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	cheque.Status = StatusCancelled
	if err := h.bucket.Save(db, msg.ChequeID, cheque); err != nil {
		return nil, errors.Wrap(err, "cannot finalize cheque")
	}

	custody := ChequeCondition(msg.ChequeID).Address()
	if err := h.bank.MoveCoins(db, custody, cheque.Sender, cheque.Amount); err != nil {
		return nil, errors.Wrap(err, "cannot refund")
	}
	return &safesend.DeliverResult{Data: msg.ChequeID}, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h CancelChequeHandler) validate(ctx safesend.Context, db safesend.KVStore, tx safesend.Tx) (*CancelChequeMsg, *Cheque, error) {
	var msg CancelChequeMsg
	if err := safesend.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}

	cheque, err := h.bucket.GetCheque(db, msg.ChequeID)
	if err != nil {
		return nil, nil, err
	}
	if cheque.Status != StatusActive {
		return nil, nil, errors.Wrapf(ErrFinalized, "status %s", cheque.Status)
	}
	if !h.auth.HasAddress(ctx, cheque.Sender) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "only the sender may cancel")
	}

	return &msg, cheque, nil
}

// ExpireChequeHandler sweeps a timed-out cheque back to its sender.
// There is no authorization, anyone may trigger the sweep, the funds
// always return to the sender.
type ExpireChequeHandler struct {
	bucket Bucket
	bank   cash.CoinMover
}

var _ safesend.Handler = ExpireChequeHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h ExpireChequeHandler) Check(ctx safesend.Context, db safesend.KVStore, tx safesend.Tx) (*safesend.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &safesend.CheckResult{GasAllocated: expireChequeCost}, nil
}

// Deliver marks the cheque expired and then refunds the sender.
func (h ExpireChequeHandler) Deliver(ctx safesend.Context, db safesend.KVStore, tx safesend.Tx) (*safesend.DeliverResult, error) {
	msg, cheque, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	cheque.Status = StatusExpired
	if err := h.bucket.Save(db, msg.ChequeID, cheque); err != nil {
		return nil, errors.Wrap(err, "cannot finalize cheque")
	}

	custody := ChequeCondition(msg.ChequeID).Address()
	if err := h.bank.MoveCoins(db, custody, cheque.Sender, cheque.Amount); err != nil {
		return nil, errors.Wrap(err, "cannot refund")
	}
	return &safesend.DeliverResult{Data: msg.ChequeID}, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h ExpireChequeHandler) validate(ctx safesend.Context, db safesend.KVStore, tx safesend.Tx) (*ExpireChequeMsg, *Cheque, error) {
	var msg ExpireChequeMsg
	if err := safesend.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}

	cheque, err := h.bucket.GetCheque(db, msg.ChequeID)
	if err != nil {
		return nil, nil, err
	}
	if cheque.Status != StatusActive {
		return nil, nil, errors.Wrapf(ErrFinalized, "status %s", cheque.Status)
	}
	if cheque.Timeout.IsZero() {
		return nil, nil, errors.Wrap(ErrNotExpired, "cheque has no timeout")
	}
	if !safesend.IsExpired(ctx, cheque.Timeout) {
		return nil, nil, errors.Wrapf(ErrNotExpired, "timeout %v", cheque.Timeout)
	}

	return &msg, cheque, nil
}

// NewConfigHandler returns the handler processing configuration
// updates, authorized by the current configuration owner.
func NewConfigHandler(auth x.Authenticator) safesend.Handler {
	var conf Configuration
	return gconf.NewUpdateConfigurationHandler(pkgName, &conf, auth)
}
