// Package testutils provides helpers shared by package tests: a migrated
// SQLite database per test and fixture builders for catalog rows, users
// and questions.
//
// Helper functions follow these naming conventions:
//   - Create*: build entities in memory
//   - MustInsert*: insert entities and fail the test on error
//   - CountRows: count rows matching a condition
package testutils
