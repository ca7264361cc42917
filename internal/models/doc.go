// Package models defines the core domain models for Splitroom.
//
// # Models
//
//   - User: a verified account, identified by phone number
//   - Room: a shared group with a generated join code and hashed password
//   - Receipt: a purchase with monetary totals and itemized lines
//   - Item: a line entry on a receipt, assignable to many users
//   - Share: a user's settled portion of one receipt (derived, cached)
//
// # Design Principles
//
// Relationships are expressed with ID strings instead of embedded object
// graphs, so entities stay flat and free of circular references. Share is a
// distinct entity rather than a bare join row because it carries derived
// state (the settled amount) with its own write discipline: it is only ever
// written by a settlement run, never directly by a user action.
package models
