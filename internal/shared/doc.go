// Package shared holds helpers used across the asset library packages.
//
// The testutil subpackage provides:
//
//   - BufferedSlogHandler for asserting on structured log output
//   - FaultyStore, a storage.Store that fails loads or saves on demand
//   - NewCatalog, a seeded catalog over a FaultyStore
//
// It must not contain business logic.
package shared
