// Package testing provides test utilities and builders shared by command
// and handler tests.
//
//   - AccountBuilder: fluent builder for an App Engine account served by an
//     audit.MockDirectory
//   - DirectoryFixture: failure scenarios layered over a MockDirectory
//   - MockOutputs: testify mock for the report and metrics writers
//   - TestContext: a context bounded to the test's lifetime
//
// Usage:
//
//	dir := testing.NewAccountBuilder().
//	    WithVersion("shop", "default", "live", "2026-10-19T00:00:00Z", "i-1").
//	    WithVersion("shop", "default", "old", "2026-10-14T12:00:00Z").
//	    Build()
//
// Packages under internal/audit cannot import this package from their own
// tests; they use local fixtures instead.
package testing
