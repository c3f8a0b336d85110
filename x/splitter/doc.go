/*
Package splitter implements pools that split their balance between a set of
payees once every payee agreed on how the split looks like.

A pool administrator sets the allocation table, an ordered list of payees
with a percentage each. Setting a table resets all approvals. Each payee
approves the current table for themself. Once every payee approved, anyone
can execute the payout: the pool balance above the ledger reserve is split
proportionally, rounded down, and transferred to each payee in table order.

Percentages are stored scaled by ShareScale and amounts are computed as

	floor(safe * share / 10^Decimals)

in 128 bit arithmetic. Percentages are not required to sum up to 100.
*/
package splitter
