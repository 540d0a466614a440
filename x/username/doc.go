/*
Package username implements a first-come first-served name registry.

Each registered name points at exactly one owner address. The owner
may transfer the name at any time. Other extensions resolve names
through the Resolver, always reading the registry state at the moment
of the call, so a transferred name immediately resolves to the new
owner.
*/
package username
