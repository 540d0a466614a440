package cash

import (
	"testing"

	"github.com/iov-one/safesend"
	"github.com/iov-one/safesend/coin"
	"github.com/iov-one/safesend/errors"
	"github.com/iov-one/safesend/safesendtest"
	"github.com/iov-one/safesend/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getWallet(t testing.TB, kv safesend.KVStore, addr safesend.Address) *Wallet {
	t.Helper()
	bucket := NewBucket()
	res, err := bucket.Get(kv, addr)
	require.NoError(t, err)
	return res
}

func mustCombineCoins(cs ...coin.Coin) coin.Coins {
	s, err := coin.CombineCoins(cs...)
	if err != nil {
		panic(err)
	}
	return s
}

func TestIssueCoins(t *testing.T) {
	kv := store.MemStore()
	addr := safesendtest.NewCondition().Address()
	addr2 := safesendtest.NewCondition().Address()

	controller := NewController(NewBucket())

	plus := coin.NewCoin(500, 1000, "FOO")
	minus := coin.NewCoin(-400, -600, "FOO")
	total := coin.NewCoin(100, 400, "FOO")
	other := coin.NewCoin(1, 0, "DING")

	assert.Nil(t, getWallet(t, kv, addr))
	assert.Nil(t, getWallet(t, kv, addr2))

	// issue positive
	err := controller.IssueCoins(kv, addr, plus)
	require.NoError(t, err)
	w := getWallet(t, kv, addr)
	require.NotNil(t, w)
	assert.True(t, w.Coins().Contains(plus), "%#v", w.Coins())
	assert.True(t, w.Coins().Contains(total))
	assert.False(t, w.Coins().Contains(other))
	assert.Nil(t, getWallet(t, kv, addr2))

	// issue negative
	err = controller.IssueCoins(kv, addr, minus)
	require.NoError(t, err)
	w = getWallet(t, kv, addr)
	require.NotNil(t, w)
	assert.False(t, w.Coins().Contains(plus))
	assert.True(t, w.Coins().Contains(total))
	assert.Nil(t, getWallet(t, kv, addr2))

	// issue to other wallet
	err = controller.IssueCoins(kv, addr2, other)
	require.NoError(t, err)
	w2 := getWallet(t, kv, addr2)
	require.NotNil(t, w2)
	assert.False(t, w2.Coins().Contains(total))
	assert.True(t, w2.Coins().Contains(other))

	// set to zero is fine
	err = controller.IssueCoins(kv, addr2, other.Negative())
	require.NoError(t, err)
	w2 = getWallet(t, kv, addr2)
	require.NotNil(t, w2)
	assert.True(t, w2.Coins().IsEmpty())

	// overflow is rejected
	err = controller.IssueCoins(kv, addr, coin.NewCoin(coin.MaxInt, 0, "FOO"))
	assert.Error(t, err)
	w = getWallet(t, kv, addr)
	require.NotNil(t, w)
	assert.True(t, w.Coins().Equals(mustCombineCoins(total)))
}

func TestMoveCoins(t *testing.T) {
	kv := store.MemStore()
	addr := safesendtest.NewCondition().Address()
	addr2 := safesendtest.NewCondition().Address()
	addr3 := safesendtest.NewCondition().Address()

	controller := NewController(NewBucket())

	cc := "MONY"
	bank := coin.NewCoin(50000, 0, cc)
	send := coin.NewCoin(300, 0, cc)

	// cannot send from empty wallet
	err := controller.MoveCoins(kv, addr, addr2, send)
	require.Error(t, err)
	assert.True(t, errors.ErrEmpty.Is(err))
	// so we issue money
	err = controller.IssueCoins(kv, addr, bank)
	require.NoError(t, err)

	// proper move
	err = controller.MoveCoins(kv, addr, addr2, send)
	require.NoError(t, err)
	w := getWallet(t, kv, addr)
	require.NotNil(t, w)
	assert.True(t, w.Coins().Contains(coin.NewCoin(49700, 0, cc)))
	w2 := getWallet(t, kv, addr2)
	require.NotNil(t, w2)
	assert.True(t, w2.Coins().Contains(send))
	w3 := getWallet(t, kv, addr3)
	require.Nil(t, w3)

	// cannot send negative, zero
	err = controller.MoveCoins(kv, addr2, addr3, send.Negative())
	assert.True(t, errors.ErrInvalidAmount.Is(err))
	err = controller.MoveCoins(kv, addr2, addr3, coin.NewCoin(0, 0, cc))
	assert.True(t, errors.ErrInvalidAmount.Is(err))
	w2 = getWallet(t, kv, addr2)
	assert.True(t, w2.Coins().Contains(send))

	// cannot send too much or no currency
	err = controller.MoveCoins(kv, addr2, addr3, bank)
	assert.True(t, errors.ErrInsufficientAmount.Is(err))
	err = controller.MoveCoins(kv, addr2, addr3, coin.NewCoin(5, 0, "BAD"))
	assert.True(t, errors.ErrInsufficientAmount.Is(err))
	w2 = getWallet(t, kv, addr2)
	assert.True(t, w2.Coins().Contains(send))

	// send all coins
	err = controller.MoveCoins(kv, addr2, addr3, send)
	assert.NoError(t, err)
	w2 = getWallet(t, kv, addr2)
	assert.True(t, w2.Coins().IsEmpty())
	w3 = getWallet(t, kv, addr3)
	assert.True(t, w3.Coins().Contains(send))
}

func TestBalance(t *testing.T) {
	kv := store.MemStore()
	ctrl := NewController(NewBucket())

	addr := safesendtest.NewCondition().Address()
	coin1 := coin.NewCoin(1, 20, "BTC")
	require.NoError(t, ctrl.IssueCoins(kv, addr, coin1))

	cases := map[string]struct {
		addr      safesend.Address
		wantCoins coin.Coins
		wantErr   *errors.Error
	}{
		"existing wallet": {
			addr:      addr,
			wantCoins: coin.Coins{&coin1},
		},
		"missing wallet": {
			addr:    safesendtest.NewCondition().Address(),
			wantErr: errors.ErrEmpty,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			coins, err := ctrl.Balance(kv, tc.addr)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr != nil {
				return
			}
			assert.True(t, tc.wantCoins.Equals(coins))
		})
	}
}
