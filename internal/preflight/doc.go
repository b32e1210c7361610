// Package preflight validates the environment before an index build so a
// rebuild fails early instead of halfway through.
//
// The checks cover:
//   - The entries file exists and is readable
//   - The index directory is writable
//   - Free disk space for the new index next to the old one
//
//	checker := preflight.New()
//	results := checker.RunIndexChecks(ctx, "entries.jsonl", "/path/to/index.bleve")
//	if checker.HasCriticalFailures(results) {
//	    // Handle failures
//	}
package preflight
