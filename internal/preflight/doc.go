// Package preflight provides readiness checks that run before btl starts
// work: the move destination must be a writable directory and the download
// manager must be installed.
//
// Checks return Result values so the CLI can render them; Err folds the
// failures into a single error.
package preflight
