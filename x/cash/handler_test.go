package cash

import (
	"context"
	"testing"

	"github.com/iov-one/safesend"
	"github.com/iov-one/safesend/coin"
	"github.com/iov-one/safesend/errors"
	"github.com/iov-one/safesend/safesendtest"
	"github.com/iov-one/safesend/store"
)

func TestSendHandler(t *testing.T) {
	foo := coin.NewCoin(100, 0, "FOO")
	some := coin.NewCoin(300, 0, "SOME")

	perm1 := safesendtest.NewCondition()
	perm2 := safesendtest.NewCondition()
	addr1 := perm1.Address()
	addr2 := perm2.Address()

	cases := map[string]struct {
		signers        []safesend.Condition
		initState      []*Wallet
		msg            safesend.Msg
		wantCheckErr   *errors.Error
		wantDeliverErr *errors.Error
	}{
		"nil message": {
			msg:            nil,
			wantCheckErr:   errors.ErrInvalidState,
			wantDeliverErr: errors.ErrInvalidState,
		},
		"empty message": {
			msg:            &SendMsg{},
			wantCheckErr:   errors.ErrInvalidAmount,
			wantDeliverErr: errors.ErrInvalidAmount,
		},
		"unauthorized": {
			msg: &SendMsg{
				Source:      addr1,
				Destination: addr2,
				Amount:      &foo,
			},
			wantCheckErr:   errors.ErrUnauthorized,
			wantDeliverErr: errors.ErrUnauthorized,
		},
		"source has no account": {
			signers: []safesend.Condition{perm1},
			msg: &SendMsg{
				Source:      addr1,
				Destination: addr2,
				Amount:      &foo,
			},
			wantDeliverErr: errors.ErrEmpty,
		},
		"source has money": {
			signers:   []safesend.Condition{perm1},
			initState: []*Wallet{mustWalletWith(addr1, &foo)},
			msg: &SendMsg{
				Source:      addr1,
				Destination: addr2,
				Amount:      &foo,
			},
		},
		"missing currency": {
			signers:   []safesend.Condition{perm1},
			initState: []*Wallet{mustWalletWith(addr1, &some)},
			msg: &SendMsg{
				Source:      addr1,
				Destination: addr2,
				Amount:      &foo,
			},
			wantDeliverErr: errors.ErrInsufficientAmount,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			auth := &safesendtest.Auth{Signers: tc.signers}
			controller := NewController(NewBucket())
			h := NewSendHandler(auth, controller)

			kv := store.MemStore()
			bucket := NewBucket()
			for _, wallet := range tc.initState {
				if err := bucket.Save(kv, wallet); err != nil {
					t.Fatalf("cannot set up initial state: %s", err)
				}
			}

			tx := &safesendtest.Tx{Msg: tc.msg}
			ctx := context.Background()

			cache := kv.CacheWrap()
			if _, err := h.Check(ctx, cache, tx); !tc.wantCheckErr.Is(err) {
				t.Fatalf("unexpected check error: %+v", err)
			}
			cache.Discard()

			if _, err := h.Deliver(ctx, kv, tx); !tc.wantDeliverErr.Is(err) {
				t.Fatalf("unexpected deliver error: %+v", err)
			}

			if tc.wantDeliverErr == nil {
				// A successful send must credit the destination.
				dest := getWallet(t, kv, addr2)
				if dest == nil || !dest.Coins().Contains(foo) {
					t.Fatalf("destination was not credited: %v", dest)
				}
			}
		})
	}
}

func mustWalletWith(addr safesend.Address, coins ...*coin.Coin) *Wallet {
	w, err := WalletWith(addr, coins...)
	if err != nil {
		panic(err)
	}
	return w
}
