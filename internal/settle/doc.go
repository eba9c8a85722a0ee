// Package settle computes who owes whom within a group.
//
// It derives per-participant net balances from a set of expenses, then
// produces two settlement plans: the traditional plan mirrors each expense's
// payer/beneficiary relationship directly (the auditable baseline), and the
// optimized plan nets all balances and matches creditors with debtors
// greedily to cut the number of transfers.
//
// Everything in this package is a pure function over its inputs: no I/O, no
// shared state, no mutation of the expenses or participants passed in.
// Concurrent calls need no coordination. Amounts are plain float64 in a
// single caller-resolved currency; all near-zero comparisons use Epsilon
// instead of exact equality to keep floating-point drift from producing
// phantom settlements or infinite loops.
package settle
