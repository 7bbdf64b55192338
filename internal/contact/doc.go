// Package contact provides the core data model for the kith contact store.
//
// This package contains type definitions and pure operations only. All
// other internal packages import contact; contact imports nothing internal.
//
// Key design constraints:
//   - Contact names are unique, case-sensitive primary keys
//   - Updates are append-only and kept in non-decreasing timestamp order
//   - Tag/characteristic/url mutation is merge (set union), never replace
//   - Collection iteration order matches the store file's document order
package contact
