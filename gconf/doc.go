/*

Package gconf implements a configuration store intended to be used as a
global, in-database configuration.

Each package keeps its configuration in a single entity, stored under a
key unique to that package. Configuration is initialized from the genesis
and can later be patched with an update message, authorized by the
configuration owner.

*/
package gconf
