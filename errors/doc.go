/*
Package errors implements custom error interfaces for safesend.

The idea is to reuse as many errors from this package as possible and
define custom package errors only when an error code must be exposed to
the client. Register is ensuring uniqueness of the error codes, so two
packages can never claim the same code.

Use Wrap or Wrapf to add context to an error without destroying the
original error type, and Is (declared on every registered error) to test
what kind of an error you are dealing with.
*/
package errors
