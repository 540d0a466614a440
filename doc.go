/*
Package safesend defines the common interfaces that tie the safesend
packages together: addresses and conditions, the key-value store
contracts, messages, transactions and handlers, and the context helpers
used to thread block information (height, time) through message
execution.

State is threaded explicitly. Every handler receives the store it may
read and write, and all writes happen inside a cache-wrap that the
caller commits only on success. There are no ambient globals.
*/
package safesend
