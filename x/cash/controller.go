package cash

import (
	"github.com/iov-one/safesend"
	"github.com/iov-one/safesend/coin"
	"github.com/iov-one/safesend/errors"
)

// CoinMover is an interface for moving coins between accounts.
type CoinMover interface {
	// MoveCoins removes funds from the source account and adds them to
	// the destination account. This operation is atomic.
	MoveCoins(store safesend.KVStore, src safesend.Address, dest safesend.Address, amount coin.Coin) error
}

// Balancer is an interface to query the amount of coins on an account.
type Balancer interface {
	Balance(safesend.ReadOnlyKVStore, safesend.Address) (coin.Coins, error)
}

// CoinMinter is an interface to create new coins out of thin air.
type CoinMinter interface {
	// IssueCoins increase the amount of funds on given account by a
	// specified amount.
	IssueCoins(safesend.KVStore, safesend.Address, coin.Coin) error
}

// Controller is the functionality needed by other extensions that keep
// balances in this ledger. This limits the potential interactions to a
// subset of all the bucket methods.
type Controller interface {
	CoinMover
	Balancer
}

// BaseController implements Controller interface, using WalletBucket as the
// storage engine. Wallet ethics such as managing validation, are handled
// here.
type BaseController struct {
	bucket WalletBucket
}

var _ Controller = BaseController{}
var _ CoinMinter = BaseController{}

// NewController returns a base controller implementation.
func NewController(bucket WalletBucket) BaseController {
	return BaseController{bucket: bucket}
}

// Balance returns the amount of funds stored under given account address.
func (c BaseController) Balance(store safesend.ReadOnlyKVStore, src safesend.Address) (coin.Coins, error) {
	wallet, err := c.bucket.Get(store, src)
	if err != nil {
		return nil, errors.Wrap(err, "cannot get wallet")
	}
	if wallet == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "no wallet")
	}
	return wallet.Coins(), nil
}

// MoveCoins moves the given amount from src to dest.
// If src doesn't exist, or doesn't have sufficient
// coins, it fails.
func (c BaseController) MoveCoins(store safesend.KVStore, src safesend.Address, dest safesend.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrInvalidAmount, "non-positive amount: %#v", &amount)
	}

	sender, err := c.bucket.Get(store, src)
	if err != nil {
		return err
	}
	if sender == nil {
		return errors.Wrapf(errors.ErrEmpty, "empty account %s", src)
	}
	if !sender.Coins().Contains(amount) {
		return errors.Wrap(errors.ErrInsufficientAmount, "funds")
	}

	recipient, err := c.bucket.GetOrCreate(store, dest)
	if err != nil {
		return err
	}
	if err := sender.Subtract(amount); err != nil {
		return err
	}
	if err := recipient.Add(amount); err != nil {
		return err
	}

	if err := c.bucket.Save(store, sender); err != nil {
		return err
	}
	return c.bucket.Save(store, recipient)
}

// IssueCoins attempts to add the given amount of coins to
// the destination address. Fails if it overflows the wallet.
//
// Note the amount may also be negative:
// "the lord giveth and the lord taketh away"
func (c BaseController) IssueCoins(store safesend.KVStore, dest safesend.Address, amount coin.Coin) error {
	recipient, err := c.bucket.GetOrCreate(store, dest)
	if err != nil {
		return err
	}
	if err := recipient.Add(amount); err != nil {
		return err
	}
	return c.bucket.Save(store, recipient)
}
