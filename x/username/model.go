package username

import (
	"regexp"

	"github.com/iov-one/safesend"
	"github.com/iov-one/safesend/errors"
	"github.com/iov-one/safesend/orm"
)

// BucketName is where we store the username tokens.
const BucketName = "usernames"

// IsUsername checks that the name is an acceptable registry key.
var IsUsername = regexp.MustCompile(`^[a-z0-9_.-]{3,64}$`).MatchString

// Token is the value stored under each registered name. It only
// carries the owner, the name itself is the bucket key.
type Token struct {
	Owner safesend.Address `json:"owner"`
}

var _ orm.CloneableData = (*Token)(nil)

// Validate ensures the token is valid.
func (t *Token) Validate() error {
	return errors.Wrap(t.Owner.Validate(), "owner")
}

// Copy makes a new token with the same owner.
func (t *Token) Copy() orm.CloneableData {
	return &Token{
		Owner: t.Owner.Clone(),
	}
}

// Marshal encodes the token into binary form.
func (t *Token) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(t)
}

// Unmarshal decodes the token from binary form.
func (t *Token) Unmarshal(raw []byte) error {
	return cdc.UnmarshalBinaryBare(raw, t)
}

// NewToken generates a new token object, using the name as key.
func NewToken(name string, owner safesend.Address) orm.Object {
	return orm.NewSimpleObj([]byte(name), &Token{Owner: owner})
}

// AsToken safely extracts a Token value from the object.
func AsToken(obj orm.Object) *Token {
	if obj == nil || obj.Value() == nil {
		return nil
	}
	return obj.Value().(*Token)
}

// Bucket is a type-safe wrapper around orm.Bucket.
type Bucket struct {
	orm.Bucket
}

// NewBucket initializes a username.Bucket with default name.
func NewBucket() Bucket {
	return Bucket{
		Bucket: orm.NewBucket(BucketName, orm.NewSimpleObj(nil, new(Token))),
	}
}

// Get takes the name and converts it to a byte key.
func (b Bucket) Get(db safesend.ReadOnlyKVStore, name string) (orm.Object, error) {
	return b.Bucket.Get(db, []byte(name))
}

// Save enforces the proper type and name format.
func (b Bucket) Save(db safesend.KVStore, obj orm.Object) error {
	if _, ok := obj.Value().(*Token); !ok {
		return errors.Wrapf(errors.ErrInvalidModel, "invalid type: %T", obj.Value())
	}
	if !IsUsername(string(obj.Key())) {
		return errors.Wrapf(errors.ErrInvalidInput, "invalid username: %q", obj.Key())
	}
	return b.Bucket.Save(db, obj)
}

// Resolver resolves registered names to their current owner address.
// It implements the cheque package's NameResolver interface.
type Resolver struct {
	bucket Bucket
}

// NewResolver returns a resolver reading from the default bucket.
func NewResolver() Resolver {
	return Resolver{bucket: NewBucket()}
}

// Resolve returns the address the name is registered to. A name that
// was never registered returns ErrNotFound.
func (r Resolver) Resolve(db safesend.ReadOnlyKVStore, name string) (safesend.Address, error) {
	obj, err := r.bucket.Get(db, name)
	if err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "username %q", name)
	}
	return AsToken(obj).Owner, nil
}
