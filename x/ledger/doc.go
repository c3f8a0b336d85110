/*
Package ledger implements a single asset balance ledger.

Every account holds a single non negative uint64 balance. Balances can only
be moved between accounts or minted by the configured issuer. The ledger
also defines a minimum reserve, an amount that extensions must leave
untouched when spending from an account they control.
*/
package ledger
