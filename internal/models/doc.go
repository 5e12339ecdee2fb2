// Package models defines the core domain models for KindNest circles.
//
// # Entities
//
// The ledger owns every entity below; clients only ever hold copies:
//   - Group: a named circle with a creator and a pause flag
//   - Member: one identity's row in a circle, with netted debt aggregates
//   - Expense: an immutable shared cost split equally among participants
//   - Balance: the directed, netted debt between two members
//   - Settlement: an immutable value transfer that reduced a Balance
//   - Account: spendable value held by an identity, moved by settlements
//   - Receipt: the confirmation record of a submitted operation
//
// # Design Principles
//
// 1. **Integer money**: every amount is an int64 in the smallest currency unit
// 2. **Identities are addresses**: members are keyed by address strings, never pointers
// 3. **Append-only history**: expenses and settlements are never updated or deleted
// 4. **Derived aggregates**: Member.TotalOwed/TotalOwing always equal the sum of Balances
package models
