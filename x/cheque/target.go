package cheque

import (
	"fmt"
	"regexp"

	"github.com/iov-one/safesend"
	"github.com/iov-one/safesend/errors"
)

// IsTargetName checks that a name has the format the username registry
// accepts. Whether the name is actually registered is not checked until
// collection time.
var IsTargetName = regexp.MustCompile(`^[a-z0-9_.-]{3,64}$`).MatchString

// Target declares who may collect a cheque. It is a closed set of
// three variants: a plain address, a registered name, or both at once.
// Resolution of a name happens when the cheque is collected.
type Target interface {
	Validate() error

	// sealed keeps the variant set closed. Authorization logic type
	// switches over the variants and a type from outside this package
	// must not slip through unseen.
	sealed()
}

var _ Target = AddressTarget{}
var _ Target = NameTarget{}
var _ Target = BothTarget{}

// AddressTarget is collectable by whoever controls the address.
type AddressTarget struct {
	Address safesend.Address `json:"address"`
}

func (t AddressTarget) Validate() error {
	return errors.Field("Address", t.Address.Validate(), "invalid target address")
}

func (t AddressTarget) sealed() {}

func (t AddressTarget) String() string {
	return fmt.Sprintf("address %s", t.Address)
}

// NameTarget is collectable by whoever owns the name in the registry
// at collection time.
type NameTarget struct {
	Name string `json:"name"`
}

func (t NameTarget) Validate() error {
	if !IsTargetName(t.Name) {
		return errors.Wrapf(errors.ErrInvalidInput, "invalid target name: %q", t.Name)
	}
	return nil
}

func (t NameTarget) sealed() {}

func (t NameTarget) String() string {
	return fmt.Sprintf("name %q", t.Name)
}

// BothTarget requires the address and the resolved name owner to be
// the same claimant. Conjunctive, not alternative.
type BothTarget struct {
	Address safesend.Address `json:"address"`
	Name    string           `json:"name"`
}

func (t BothTarget) Validate() error {
	var err error
	err = errors.AppendField(err, "Address", t.Address.Validate())
	if !IsTargetName(t.Name) {
		err = errors.Append(err, errors.Wrapf(errors.ErrInvalidInput, "invalid target name: %q", t.Name))
	}
	return err
}

func (t BothTarget) sealed() {}

func (t BothTarget) String() string {
	return fmt.Sprintf("address %s and name %q", t.Address, t.Name)
}

// validateTarget rejects a missing target before the variant check.
func validateTarget(t Target) error {
	if t == nil {
		return errors.Wrap(errors.ErrEmpty, "target")
	}
	return t.Validate()
}
