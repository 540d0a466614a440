package cheque

import (
	"github.com/iov-one/safesend"
)

// NameResolver looks up the current owner of a registered name. The
// username extension provides the production implementation.
type NameResolver interface {
	// Resolve returns the address the name points at. An unregistered
	// name must return a non-nil error.
	Resolve(db safesend.ReadOnlyKVStore, name string) (safesend.Address, error)
}

// Gate decides whether a claimant may collect a cheque with a given
// target. It is stateless, all registry state is read through the
// resolver at call time.
type Gate struct {
	resolver NameResolver
}

// NewGate returns a gate using the given resolver for name targets.
func NewGate(resolver NameResolver) Gate {
	return Gate{resolver: resolver}
}

// Authorize returns true if the claimant satisfies the target at this
// moment. Any resolver failure, including an unregistered name, means
// not authorized. The caller cannot distinguish a failed lookup from a
// mismatch, there is only one negative answer.
func (g Gate) Authorize(db safesend.ReadOnlyKVStore, target Target, claimant safesend.Address) bool {
	switch t := target.(type) {
	case AddressTarget:
		return claimant.Equals(t.Address)
	case NameTarget:
		return g.resolvesTo(db, t.Name, claimant)
	case BothTarget:
		return claimant.Equals(t.Address) && g.resolvesTo(db, t.Name, claimant)
	default:
		// Unknown variant, never authorized.
		return false
	}
}

func (g Gate) resolvesTo(db safesend.ReadOnlyKVStore, name string, claimant safesend.Address) bool {
	owner, err := g.resolver.Resolve(db, name)
	if err != nil {
		return false
	}
	return claimant.Equals(owner)
}
