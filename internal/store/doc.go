// Package store provides SQLite-backed storage for food listings, contacts
// and the externally seeded reference tables (providers, receivers, claims).
//
// # Ownership
//
//   - food_listings: written only through this package (create, update, delete)
//   - contacts: created through this package, never updated
//   - providers, receivers, claims: created and filled by Import (the seeding
//     path); read-only everywhere else
//
// # Critical Patterns
//
// Explicit handle: callers open a *Store and pass it down. There is no
// package-level connection.
//
// Atomic writes: every mutating call runs in its own transaction and
// commits before returning. Validation happens before the transaction is
// opened, so a rejected call never touches the database.
//
// Deterministic reads: listing reads order by Food_ID ascending and return
// empty slices (not nil) when there are no rows.
//
// No referential enforcement: claims may reference deleted listings or
// unknown receivers. Reports decide through their join kind whether such
// rows count.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: No foreign keys are declared; kept for parity with
//     externally created tables that might declare them
//   - One open connection: access is serialized through database/sql
package store
