package cash

import (
	"github.com/iov-one/safesend"
	"github.com/iov-one/safesend/coin"
	"github.com/iov-one/safesend/errors"
)

const (
	sendTxCost int64 = 100

	maxMemoSize int = 128
	maxRefSize  int = 64
)

// SendMsg transfers funds between two wallets.
type SendMsg struct {
	Source      safesend.Address `json:"source"`
	Destination safesend.Address `json:"destination"`
	Amount      *coin.Coin       `json:"amount"`

	// Memo is a free-form human readable message.
	Memo string `json:"memo,omitempty"`
	// Ref is a binary reference to an external document.
	Ref []byte `json:"ref,omitempty"`
}

var _ safesend.Msg = (*SendMsg)(nil)

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return "cash/send"
}

// Validate makes sure that this is sensible
func (msg *SendMsg) Validate() error {
	var err error
	if coin.IsEmpty(msg.Amount) || !msg.Amount.IsPositive() {
		err = errors.Wrapf(errors.ErrInvalidAmount, "non-positive amount: %#v", msg.Amount)
	} else {
		err = errors.Append(err, errors.Wrap(msg.Amount.Validate(), "amount"))
	}
	err = errors.Append(err, errors.Field("Source", msg.Source.Validate(), "invalid source"))
	err = errors.Append(err, errors.Field("Destination", msg.Destination.Validate(), "invalid destination"))
	if len(msg.Memo) > maxMemoSize {
		err = errors.Append(err, errors.Wrap(errors.ErrInvalidState, "memo too long"))
	}
	if len(msg.Ref) > maxRefSize {
		err = errors.Append(err, errors.Wrap(errors.ErrInvalidState, "ref too long"))
	}
	return err
}

// Marshal encodes the message into binary form.
func (msg *SendMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(msg)
}

// Unmarshal decodes the message from binary form.
func (msg *SendMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, msg)
}

// DefaultSource makes sure there is a payer.
// If it was already set, returns msg.
// If none was set, returns a new SendMsg with the source set
func (msg *SendMsg) DefaultSource(addr []byte) *SendMsg {
	if len(msg.Source) != 0 {
		return msg
	}
	return &SendMsg{
		Source:      addr,
		Destination: msg.Destination,
		Amount:      msg.Amount,
		Memo:        msg.Memo,
		Ref:         msg.Ref,
	}
}
