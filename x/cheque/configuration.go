package cheque

import (
	"github.com/iov-one/safesend"
	"github.com/iov-one/safesend/coin"
	"github.com/iov-one/safesend/errors"
	"github.com/iov-one/safesend/gconf"
)

// pkgName is the gconf namespace this package stores its
// configuration under.
const pkgName = "cheque"

// Configuration is the package-wide setup. Owner may replace the
// configuration and receives the creation fee.
type Configuration struct {
	Owner safesend.Address `json:"owner"`
	// Fee is charged on every cheque creation on top of the escrowed
	// amount and credited to the owner right away. A zero coin
	// disables the fee.
	Fee coin.Coin `json:"fee"`
}

var _ gconf.OwnedConfig = (*Configuration)(nil)

// GetOwner returns the address allowed to modify the configuration.
func (c *Configuration) GetOwner() safesend.Address {
	return c.Owner
}

// Validate ensures the configuration is sane.
func (c *Configuration) Validate() error {
	var err error
	err = errors.AppendField(err, "Owner", c.Owner.Validate())
	if !c.Fee.IsZero() {
		if !c.Fee.IsPositive() {
			err = errors.Append(err, errors.Wrap(errors.ErrInvalidAmount, "negative fee"))
		} else {
			err = errors.Append(err, errors.Wrap(c.Fee.Validate(), "fee"))
		}
	}
	return err
}

// Marshal encodes the configuration into binary form.
func (c *Configuration) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(c)
}

// Unmarshal decodes the configuration from binary form.
func (c *Configuration) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, c)
}

func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, pkgName, &conf); err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	return &conf, nil
}

// Initializer fulfils the Initializer interface to load configuration
// from the genesis file.
type Initializer struct{}

var _ safesend.Initializer = Initializer{}

// FromGenesis will parse the initial configuration from genesis and
// save it to the database.
func (Initializer) FromGenesis(opts safesend.Options, kv safesend.KVStore) error {
	return gconf.InitConfig(kv, opts, pkgName, &Configuration{})
}
