package cheque

import (
	"testing"

	"github.com/iov-one/safesend/coin"
	"github.com/iov-one/safesend/errors"
	"github.com/iov-one/safesend/safesendtest"
	"github.com/iov-one/safesend/safesendtest/assert"
	"github.com/iov-one/safesend/store"
)

func TestChequeValidate(t *testing.T) {
	sender := safesendtest.NewCondition().Address()
	target := AddressTarget{Address: safesendtest.NewCondition().Address()}

	cases := map[string]struct {
		mutate  func(*Cheque)
		wantErr *errors.Error
	}{
		"valid record": {
			mutate: func(*Cheque) {},
		},
		"missing sender": {
			mutate:  func(c *Cheque) { c.Sender = nil },
			wantErr: errors.ErrInvalidInput,
		},
		"missing target": {
			mutate:  func(c *Cheque) { c.Target = nil },
			wantErr: errors.ErrEmpty,
		},
		"zero amount": {
			mutate:  func(c *Cheque) { c.Amount = coin.NewCoin(0, 0, "IOV") },
			wantErr: errors.ErrInvalidAmount,
		},
		"invalid status": {
			mutate:  func(c *Cheque) { c.Status = StatusInvalid },
			wantErr: errors.ErrInvalidState,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			c := &Cheque{
				Sender:    sender,
				Target:    target,
				Amount:    coin.NewCoin(10, 0, "IOV"),
				CreatedAt: 500,
				Status:    StatusActive,
			}
			tc.mutate(c)
			if err := c.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}

func TestBucketRoundTrip(t *testing.T) {
	db := store.MemStore()
	bucket := NewBucket()

	sender := safesendtest.NewCondition().Address()
	cheque := &Cheque{
		Sender:    sender,
		Target:    NameTarget{Name: "alice"},
		Amount:    coin.NewCoin(10, 0, "IOV"),
		CreatedAt: 500,
		Timeout:   900,
		Status:    StatusActive,
	}

	id, err := bucket.NextID(db)
	assert.Nil(t, err)
	assert.Equal(t, safesendtest.SequenceID(1), id)
	assert.Nil(t, bucket.Save(db, id, cheque))

	got, err := bucket.GetCheque(db, id)
	assert.Nil(t, err)
	assert.Equal(t, cheque, got)

	_, err = bucket.GetCheque(db, safesendtest.SequenceID(42))
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestBucketBySender(t *testing.T) {
	db := store.MemStore()
	bucket := NewBucket()

	alice := safesendtest.NewCondition().Address()
	bob := safesendtest.NewCondition().Address()

	for _, sender := range []struct {
		addr   []byte
		amount int64
	}{
		{alice, 1},
		{alice, 2},
		{bob, 3},
	} {
		id, err := bucket.NextID(db)
		assert.Nil(t, err)
		c := &Cheque{
			Sender:    sender.addr,
			Target:    NameTarget{Name: "carl"},
			Amount:    coin.NewCoin(sender.amount, 0, "IOV"),
			CreatedAt: 500,
			Status:    StatusActive,
		}
		assert.Nil(t, bucket.Save(db, id, c))
	}

	mine, err := bucket.BySender(db, alice)
	assert.Nil(t, err)
	assert.Equal(t, 2, len(mine))

	theirs, err := bucket.BySender(db, bob)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(theirs))

	nobody, err := bucket.BySender(db, safesendtest.NewCondition().Address())
	assert.Nil(t, err)
	assert.Equal(t, 0, len(nobody))
}

func TestChequeCondition(t *testing.T) {
	a := ChequeCondition(safesendtest.SequenceID(1)).Address()
	b := ChequeCondition(safesendtest.SequenceID(2)).Address()

	assert.Nil(t, a.Validate())
	assert.Nil(t, b.Validate())
	if a.Equals(b) {
		t.Fatal("custody addresses must differ per cheque")
	}
	// Derivation is deterministic.
	assert.Equal(t, a, ChequeCondition(safesendtest.SequenceID(1)).Address())
}

func TestStatusString(t *testing.T) {
	cases := map[Status]string{
		StatusActive:    "active",
		StatusCollected: "collected",
		StatusCancelled: "cancelled",
		StatusExpired:   "expired",
		Status(99):      "invalid(99)",
	}
	for status, want := range cases {
		if got := status.String(); got != want {
			t.Errorf("status %d: want %q, got %q", status, want, got)
		}
	}
}
