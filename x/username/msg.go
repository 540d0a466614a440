package username

import (
	"github.com/iov-one/safesend"
	"github.com/iov-one/safesend/errors"
)

const (
	registerCost int64 = 100
	transferCost int64 = 50
)

// RegisterUsernameMsg registers a free name to the given owner.
type RegisterUsernameMsg struct {
	Username string           `json:"username"`
	Owner    safesend.Address `json:"owner"`
}

var _ safesend.Msg = (*RegisterUsernameMsg)(nil)

// Path returns the routing path for this message.
func (RegisterUsernameMsg) Path() string {
	return "username/register"
}

// Validate ensures the name is valid and the owner is a proper address.
func (msg *RegisterUsernameMsg) Validate() error {
	var err error
	if !IsUsername(msg.Username) {
		err = errors.Wrapf(errors.ErrInvalidInput, "invalid username: %q", msg.Username)
	}
	return errors.Append(err, errors.Field("Owner", msg.Owner.Validate(), "invalid owner"))
}

// Marshal encodes the message into binary form.
func (msg *RegisterUsernameMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(msg)
}

// Unmarshal decodes the message from binary form.
func (msg *RegisterUsernameMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, msg)
}

// TransferUsernameMsg moves a registered name to a new owner.
type TransferUsernameMsg struct {
	Username string           `json:"username"`
	NewOwner safesend.Address `json:"new_owner"`
}

var _ safesend.Msg = (*TransferUsernameMsg)(nil)

// Path returns the routing path for this message.
func (TransferUsernameMsg) Path() string {
	return "username/transfer"
}

// Validate ensures the name is valid and the new owner is a proper address.
func (msg *TransferUsernameMsg) Validate() error {
	var err error
	if !IsUsername(msg.Username) {
		err = errors.Wrapf(errors.ErrInvalidInput, "invalid username: %q", msg.Username)
	}
	return errors.Append(err, errors.Field("NewOwner", msg.NewOwner.Validate(), "invalid new owner"))
}

// Marshal encodes the message into binary form.
func (msg *TransferUsernameMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(msg)
}

// Unmarshal decodes the message from binary form.
func (msg *TransferUsernameMsg) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, msg)
}
