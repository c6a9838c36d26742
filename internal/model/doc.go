// Package model defines the food-donation entities shared by the store,
// the report catalog and the CLI, together with the typed errors every
// layer returns.
//
// # Entities
//
//   - FoodListing: the only entity this module writes (food_listings)
//   - Contact: free-form directory entry (contacts)
//   - Provider, Receiver, Claim: reference data seeded from outside and
//     read-only for the store
//
// Column names in struct tags match the SQLite schema exactly so the
// report catalog's joins and the seed files line up with the stored rows.
//
// # Text normalization
//
// Free-text fields are trimmed and NFC-normalized before they are written.
// Two spellings of the same city that differ only in Unicode composition
// then group together in aggregate reports.
package model
