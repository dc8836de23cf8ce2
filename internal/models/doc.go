// Package models defines the core domain models for billsplit.
//
// # Models
//
//   - User: a registered account; owns friends and receipts
//   - Friend: a person who can be put on a receipt
//   - Receipt: a purchase with items, tax, tip and participants
//   - Item: a line on a receipt, split whole or per unit
//   - Payment: money a friend handed over for a receipt
//
// # Design Principles
//
//  1. Amounts are decimal.Decimal, never float64
//  2. Relationships are ID strings, not pointers
//  3. Each user has one "self" friend so the owner can appear on receipts
//  4. Storage assigns IDs and timestamps
package models
