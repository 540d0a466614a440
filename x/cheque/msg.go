package cheque

import (
	"github.com/iov-one/safesend"
	"github.com/iov-one/safesend/coin"
	"github.com/iov-one/safesend/errors"
	"github.com/iov-one/safesend/orm"
)

// CreateChequeMsg funds a new cheque. The sender pays the escrowed
// amount plus the configured fee. Sender may be left empty, the main
// signer is used then.
type CreateChequeMsg struct {
	Sender  safesend.Address  `json:"sender,omitempty"`
	Target  Target            `json:"target"`
	Amount  coin.Coin         `json:"amount"`
	Memo    string            `json:"memo,omitempty"`
	Timeout safesend.UnixTime `json:"timeout,omitempty"`
}

var _ safesend.Msg = (*CreateChequeMsg)(nil)

// Path returns the routing path for this message.
func (CreateChequeMsg) Path() string {
	return "cheque/create"
}

// Validate makes sure that this is sensible.
func (msg *CreateChequeMsg) Validate() error {
	var err error
	if msg.Sender != nil {
		err = errors.AppendField(err, "Sender", msg.Sender.Validate())
	}
	err = errors.Append(err, errors.Wrap(validateTarget(msg.Target), "target"))
	if !msg.Amount.IsPositive() {
		err = errors.Append(err, errors.Wrapf(errors.ErrInvalidAmount, "non-positive amount: %#v", &msg.Amount))
	} else {
		err = errors.Append(err, errors.Wrap(msg.Amount.Validate(), "amount"))
	}
	if len(msg.Memo) > maxMemoSize {
		err = errors.Append(err, errors.Wrap(errors.ErrInvalidInput, "memo too long"))
	}
	err = errors.Append(err, errors.Wrap(msg.Timeout.Validate(), "timeout"))
	return err
}

// Marshal encodes the message into binary form.
func (msg *CreateChequeMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(msg)
}

// Unmarshal decodes the message from binary form.
func (msg *CreateChequeMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, msg)
}

// CollectChequeMsg claims an active cheque. The main signer is the
// claimant and must satisfy the cheque target.
type CollectChequeMsg struct {
	ChequeID []byte `json:"cheque_id"`
}

var _ safesend.Msg = (*CollectChequeMsg)(nil)

// Path returns the routing path for this message.
func (CollectChequeMsg) Path() string {
	return "cheque/collect"
}

// Validate makes sure that this is sensible.
func (msg *CollectChequeMsg) Validate() error {
	return validateChequeID(msg.ChequeID)
}

// Marshal encodes the message into binary form.
func (msg *CollectChequeMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(msg)
}

// Unmarshal decodes the message from binary form.
func (msg *CollectChequeMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, msg)
}

// CancelChequeMsg returns the escrowed funds to the sender. Only the
// sender may cancel and only while the cheque is active.
type CancelChequeMsg struct {
	ChequeID []byte `json:"cheque_id"`
}

var _ safesend.Msg = (*CancelChequeMsg)(nil)

// Path returns the routing path for this message.
func (CancelChequeMsg) Path() string {
	return "cheque/cancel"
}

// Validate makes sure that this is sensible.
func (msg *CancelChequeMsg) Validate() error {
	return validateChequeID(msg.ChequeID)
}

// Marshal encodes the message into binary form.
func (msg *CancelChequeMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(msg)
}

// Unmarshal decodes the message from binary form.
func (msg *CancelChequeMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, msg)
}

// ExpireChequeMsg sweeps a timed-out cheque back to its sender.
// Anyone may send it, the refund always goes to the cheque sender.
type ExpireChequeMsg struct {
	ChequeID []byte `json:"cheque_id"`
}

var _ safesend.Msg = (*ExpireChequeMsg)(nil)

// Path returns the routing path for this message.
func (ExpireChequeMsg) Path() string {
	return "cheque/expire"
}

// Validate makes sure that this is sensible.
func (msg *ExpireChequeMsg) Validate() error {
	return validateChequeID(msg.ChequeID)
}

// Marshal encodes the message into binary form.
func (msg *ExpireChequeMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(msg)
}

// Unmarshal decodes the message from binary form.
func (msg *ExpireChequeMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, msg)
}

// UpdateConfigurationMsg replaces fields of the package
// configuration. Only the current configuration owner is authorized.
type UpdateConfigurationMsg struct {
	Patch *Configuration `json:"patch"`
}

var _ safesend.Msg = (*UpdateConfigurationMsg)(nil)

// Path returns the routing path for this message.
func (UpdateConfigurationMsg) Path() string {
	return "cheque/update_configuration"
}

// Validate makes sure that this is sensible.
func (msg *UpdateConfigurationMsg) Validate() error {
	if msg.Patch == nil {
		return errors.Wrap(errors.ErrEmpty, "patch")
	}
	return msg.Patch.Validate()
}

// Marshal encodes the message into binary form.
func (msg *UpdateConfigurationMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(msg)
}

// Unmarshal decodes the message from binary form.
func (msg *UpdateConfigurationMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, msg)
}

func validateChequeID(id []byte) error {
	return errors.Field("ChequeID", orm.ValidateSequence(id), "invalid cheque id")
}
