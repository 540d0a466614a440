package utils

import (
	"context"
	"testing"

	"github.com/iov-one/safesend"
	"github.com/iov-one/safesend/errors"
	"github.com/iov-one/safesend/safesendtest"
	"github.com/iov-one/safesend/store"
)

// writeHandler writes the given key/value on every call and then
// returns its configured error.
type writeHandler struct {
	key   []byte
	value []byte
	err   error
}

func (h writeHandler) Check(ctx safesend.Context, db safesend.KVStore, tx safesend.Tx) (*safesend.CheckResult, error) {
	if err := db.Set(h.key, h.value); err != nil {
		return nil, err
	}
	return &safesend.CheckResult{}, h.err
}

func (h writeHandler) Deliver(ctx safesend.Context, db safesend.KVStore, tx safesend.Tx) (*safesend.DeliverResult, error) {
	if err := db.Set(h.key, h.value); err != nil {
		return nil, err
	}
	return &safesend.DeliverResult{}, h.err
}

func TestSavepoint(t *testing.T) {
	nk, nv := []byte{1, 2, 3}, []byte{4, 5, 6}
	derr := errors.Wrap(errors.ErrHuman, "something went wrong")

	cases := map[string]struct {
		save    safesend.Decorator
		handler safesend.Handler
		check   bool // whether to call Check or Deliver
		wantErr bool
		written bool // whether nk must survive in the store
	}{
		"deactivated savepoint keeps writes of a failed check": {
			save:    NewSavepoint(),
			handler: writeHandler{nk, nv, derr},
			check:   true,
			wantErr: true,
			written: true,
		},
		"activated savepoint discards writes of a failed check": {
			save:    NewSavepoint().OnCheck(),
			handler: writeHandler{nk, nv, derr},
			check:   true,
			wantErr: true,
			written: false,
		},
		"activated savepoint discards writes of a failed deliver": {
			save:    NewSavepoint().OnDeliver(),
			handler: writeHandler{nk, nv, derr},
			check:   false,
			wantErr: true,
			written: false,
		},
		"check savepoint does not affect deliver": {
			save:    NewSavepoint().OnCheck(),
			handler: writeHandler{nk, nv, derr},
			check:   false,
			wantErr: true,
			written: true,
		},
		"no rollback on success": {
			save:    NewSavepoint().OnCheck().OnDeliver(),
			handler: writeHandler{nk, nv, nil},
			check:   false,
			wantErr: false,
			written: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctx := context.Background()
			tx := &safesendtest.Tx{}

			var err error
			if tc.check {
				_, err = tc.save.Check(ctx, db, tx, tc.handler)
			} else {
				_, err = tc.save.Deliver(ctx, db, tx, tc.handler)
			}
			if gotErr := err != nil; gotErr != tc.wantErr {
				t.Fatalf("unexpected error: %+v", err)
			}

			has, err := db.Has(nk)
			if err != nil {
				t.Fatalf("cannot query store: %s", err)
			}
			if has != tc.written {
				t.Fatalf("want written=%v, got %v", tc.written, has)
			}
		})
	}
}

func TestRecovery(t *testing.T) {
	db := store.MemStore()
	var rec Recovery

	h := panicHandler{}
	if _, err := rec.Deliver(context.Background(), db, &safesendtest.Tx{}, h); !errors.ErrPanic.Is(err) {
		t.Fatalf("want a panic error, got %+v", err)
	}
	if _, err := rec.Check(context.Background(), db, &safesendtest.Tx{}, h); !errors.ErrPanic.Is(err) {
		t.Fatalf("want a panic error, got %+v", err)
	}
}

type panicHandler struct{}

func (panicHandler) Check(safesend.Context, safesend.KVStore, safesend.Tx) (*safesend.CheckResult, error) {
	panic("check boom")
}

func (panicHandler) Deliver(safesend.Context, safesend.KVStore, safesend.Tx) (*safesend.DeliverResult, error) {
	panic("deliver boom")
}
