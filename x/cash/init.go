package cash

import (
	"github.com/iov-one/safesend"
	"github.com/iov-one/safesend/coin"
	"github.com/iov-one/safesend/errors"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from genesis file
// use safesend.Address, so address in hex, not base64
type GenesisAccount struct {
	Address safesend.Address `json:"address"`
	Coins   coin.Coins       `json:"coins"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ safesend.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis
// and save it to the database
func (Initializer) FromGenesis(opts safesend.Options, kv safesend.KVStore) error {
	accts := []GenesisAccount{}
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return err
	}
	bucket := NewBucket()
	for _, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrapf(err, "address %q", acct.Address)
		}
		wallet, err := WalletWith(acct.Address, acct.Coins...)
		if err != nil {
			return err
		}
		if err := bucket.Save(kv, wallet); err != nil {
			return err
		}
	}
	return nil
}
