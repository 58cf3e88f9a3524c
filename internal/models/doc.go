// Package models defines the core domain models for Splitmate.
//
// # Models
//
//   - Expense: a personal or group expense with its payer and split structure
//   - Group: a named group with an ordered list of member display-names
//   - User: a registered account; supplies the authenticated {id, name} pair
//
// # Design Principles
//
// Group membership and expense participation are keyed by member
// display-name strings, not by user IDs. Membership checks are string
// equality after trimming. This keeps groups usable by members without
// accounts, at the cost of no protection against renames or name
// collisions.
package models
