/*
Package cheque implements custodial cheques: funds are taken from the
sender at creation and held on a per-cheque custody account until the
cheque is collected, cancelled or expired.

Each cheque names a target, which is an address, a registered name, or
both. Name resolution happens when the cheque is collected, not when
it is created, so a name may be registered or transferred while the
cheque is outstanding and the current holder of the name collects.

A cheque is finalized exactly once. Every finalizing handler persists
the terminal status before crediting funds out of custody, so a ledger
that reenters this package during the credit observes the cheque as
already finalized.
*/
package cheque
