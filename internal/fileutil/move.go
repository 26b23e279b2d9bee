package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// link is swapped in tests to simulate filesystems without hard links.
var link = os.Link

// MoveFile moves src to dst without ever replacing an existing dst. The
// new name is created with a hard link, which fails if dst exists, and src is
// removed afterwards. Where linking is impossible (EXDEV, or a filesystem
// without hard links) src is copied with O_EXCL and then removed.
//
// An existing dst yields an error matching fs.ErrExist.
func MoveFile(src, dst string) error {
	if linkErr := link(src, dst); linkErr != nil {
		if errors.Is(linkErr, fs.ErrExist) || errors.Is(linkErr, fs.ErrNotExist) {
			return fmt.Errorf("link: %w", linkErr)
		}
		if err := CopyFileVerified(src, dst); err != nil {
			return fmt.Errorf("copy after failed link (%v): %w", linkErr, err)
		}
	}

	if err := os.Remove(src); err != nil {
		return fmt.Errorf("remove source: %w", err)
	}
	return nil
}
