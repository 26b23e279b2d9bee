// Package relocate flattens media files from source trees into a single
// destination directory.
//
// Each matching file has its leading "[group]" tag removed and the last
// character of the remaining name dropped before it is renamed into the
// destination. Walks are synchronous per source tree; MoveAll runs one walk
// per tree and waits for all of them.
package relocate
