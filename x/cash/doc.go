/*
Package cash defines a simple implementation of sending coins
between multi-signature wallets.

There is no logic in the coins, just moving them around.

This is the ledger that common extensions, like the cheque
custody accounts, debit and credit.
*/
package cash
