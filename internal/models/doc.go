// Package models defines the core domain models for Settleup.
//
// # Models
//
//   - Group: A set of people who share expenses (a trip, a flat, a project)
//   - Participant: One member of a group
//   - Expense: A single shared payment, split among beneficiaries
//   - Split: The rule dividing an expense (equal, percentage, custom, items)
//
// # Design Principles
//
// 1. **Sealed split variants**: Split is a closed interface; every variant
// computes its own per-person shares, so a new split rule cannot compile
// without defining how it divides money.
// 2. **Immutable inputs**: the settle package never mutates these models;
// balances and settlements are derived values with no lifecycle of their own.
// 3. **Boundary validation**: Validate catches malformed expenses (empty
// beneficiary lists, non-positive amounts) before they reach the calculators,
// which stay total and never error.
// 4. **Avoid circular references**: relationships use ID strings, not pointers.
package models
