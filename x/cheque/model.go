package cheque

import (
	"fmt"

	"github.com/iov-one/safesend"
	"github.com/iov-one/safesend/coin"
	"github.com/iov-one/safesend/errors"
	"github.com/iov-one/safesend/orm"
)

// BucketName is where we store the cheques.
const BucketName = "cheque"

const maxMemoSize = 128

// Status describes where in its lifecycle a cheque is. A cheque starts
// Active and moves exactly once into one of the terminal states.
// Records are never deleted, the terminal record stays for auditing.
type Status int32

const (
	StatusInvalid Status = iota
	StatusActive
	StatusCollected
	StatusCancelled
	StatusExpired
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusCollected:
		return "collected"
	case StatusCancelled:
		return "cancelled"
	case StatusExpired:
		return "expired"
	default:
		return fmt.Sprintf("invalid(%d)", int32(s))
	}
}

// Validate ensures the status is a member of the lifecycle set.
func (s Status) Validate() error {
	if s < StatusActive || s > StatusExpired {
		return errors.Wrapf(errors.ErrInvalidState, "status %d", int32(s))
	}
	return nil
}

// Cheque is the stored record. Amount is held on the custody account
// derived from the record id (see ChequeCondition) while the status is
// Active and on no account otherwise.
type Cheque struct {
	Sender    safesend.Address  `json:"sender"`
	Target    Target            `json:"target"`
	Amount    coin.Coin         `json:"amount"`
	Memo      string            `json:"memo,omitempty"`
	CreatedAt safesend.UnixTime `json:"created_at"`
	// Timeout of zero means the cheque never expires. A non-zero
	// timeout is inclusive: at the timeout collection is no longer
	// possible and expiry is.
	Timeout safesend.UnixTime `json:"timeout,omitempty"`
	Status  Status            `json:"status"`
}

var _ orm.CloneableData = (*Cheque)(nil)

// Validate ensures the cheque is valid.
func (c *Cheque) Validate() error {
	var err error
	err = errors.AppendField(err, "Sender", c.Sender.Validate())
	err = errors.Append(err, errors.Wrap(validateTarget(c.Target), "target"))
	if !c.Amount.IsPositive() {
		err = errors.Append(err, errors.Wrapf(errors.ErrInvalidAmount, "non-positive amount: %#v", &c.Amount))
	} else {
		err = errors.Append(err, errors.Wrap(c.Amount.Validate(), "amount"))
	}
	if len(c.Memo) > maxMemoSize {
		err = errors.Append(err, errors.Wrap(errors.ErrInvalidInput, "memo too long"))
	}
	err = errors.Append(err, errors.Wrap(c.CreatedAt.Validate(), "created at"))
	err = errors.Append(err, errors.Wrap(c.Timeout.Validate(), "timeout"))
	err = errors.Append(err, errors.Wrap(c.Status.Validate(), "status"))
	return err
}

// Copy produces an independent copy of the record.
func (c *Cheque) Copy() orm.CloneableData {
	return &Cheque{
		Sender:    c.Sender.Clone(),
		Target:    c.Target,
		Amount:    c.Amount,
		Memo:      c.Memo,
		CreatedAt: c.CreatedAt,
		Timeout:   c.Timeout,
		Status:    c.Status,
	}
}

// Marshal encodes the cheque into binary form.
func (c *Cheque) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(c)
}

// Unmarshal decodes the cheque from binary form.
func (c *Cheque) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, c)
}

// AsCheque extracts a *Cheque value or nil from the object.
func AsCheque(obj orm.Object) *Cheque {
	if obj == nil || obj.Value() == nil {
		return nil
	}
	return obj.Value().(*Cheque)
}

// ChequeCondition calculates the custody account condition for a
// cheque id. Funds escrowed by the cheque are held on the address of
// this condition. No signer controls it, only this package's handlers
// move funds out.
func ChequeCondition(id []byte) safesend.Condition {
	return safesend.NewCondition("cheque", "seq", id)
}

// Bucket is a type-safe wrapper around orm.Bucket, maintaining a
// secondary index on the sender address.
type Bucket struct {
	orm.Bucket
	idSeq orm.Sequence
}

// NewBucket initializes a cheque.Bucket with default name.
func NewBucket() Bucket {
	b := orm.NewBucket(BucketName, orm.NewSimpleObj(nil, new(Cheque))).
		WithIndex("sender", idxSender, false)
	return Bucket{
		Bucket: b,
		idSeq:  b.Sequence("id"),
	}
}

func idxSender(obj orm.Object) ([]byte, error) {
	if obj == nil {
		return nil, errors.Wrap(errors.ErrHuman, "cannot take index of nil")
	}
	c, ok := obj.Value().(*Cheque)
	if !ok {
		return nil, errors.Wrap(errors.ErrHuman, "can only take index of Cheque")
	}
	return c.Sender, nil
}

// NextID reserves the next sequence id. The custody address of a
// cheque derives from its id, so the id is acquired before any funds
// move.
func (b Bucket) NextID(db safesend.KVStore) ([]byte, error) {
	id, err := b.idSeq.NextVal(db)
	if err != nil {
		return nil, errors.Wrap(err, "cannot acquire id")
	}
	return id, nil
}

// GetCheque loads the cheque with the given id, or ErrNotFound.
func (b Bucket) GetCheque(db safesend.ReadOnlyKVStore, id []byte) (*Cheque, error) {
	obj, err := b.Bucket.Get(db, id)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "cheque %x", id)
	}
	return AsCheque(obj), nil
}

// Save persists a cheque under an existing id.
func (b Bucket) Save(db safesend.KVStore, id []byte, c *Cheque) error {
	return b.Bucket.Save(db, orm.NewSimpleObj(id, c))
}

// BySender returns all cheques ever written by this sender, any
// status.
func (b Bucket) BySender(db safesend.ReadOnlyKVStore, sender safesend.Address) ([]*Cheque, error) {
	objs, err := b.GetIndexed(db, "sender", sender)
	if err != nil {
		return nil, err
	}
	cheques := make([]*Cheque, 0, len(objs))
	for _, obj := range objs {
		if c := AsCheque(obj); c != nil {
			cheques = append(cheques, c)
		}
	}
	return cheques, nil
}
