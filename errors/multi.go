package errors

import (
	"strings"
)

// Append clubs together the given errors. Nil values are ignored. The
// result is nil when all given errors are nil as well.
//
// The result supports both the Unpack and the Cause protocols, so kind
// tests using Is work on each member.
func Append(errs ...error) error {
	var collection multiError
	for _, err := range errs {
		switch e := err.(type) {
		case nil:
			// Ignore.
		case multiError:
			collection = append(collection, e...)
		default:
			if !isNilErr(err) {
				collection = append(collection, err)
			}
		}
	}

	switch len(collection) {
	case 0:
		return nil
	case 1:
		return collection[0]
	default:
		return collection
	}
}

type multiError []error

var _ unpacker = (multiError)(nil)

func (e multiError) Unpack() []error {
	return e
}

func (e multiError) Error() string {
	switch len(e) {
	case 0:
		return "<nil>"
	case 1:
		return e[0].Error()
	}
	chunks := make([]string, len(e))
	for i, err := range e {
		chunks[i] = err.Error()
	}
	return strings.Join(chunks, "; ")
}
