// Package fileutil moves and copies regular files.
//
// MoveFile never replaces an existing destination: it hard-links src to dst
// and removes src, or, where linking is impossible, copies with O_EXCL and
// verifies the result before removing src.
package fileutil
