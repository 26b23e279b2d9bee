package relocate

import "fmt"

// ListError reports a directory that could not be listed. It stops the walk.
type ListError struct {
	Dir string
	Err error
}

func (e *ListError) Error() string {
	return fmt.Sprintf("list directory %s: %v", e.Dir, e.Err)
}

func (e *ListError) Unwrap() error {
	return e.Err
}

// CollisionError reports a file left in place because its destination name
// is already taken.
type CollisionError struct {
	Source      string
	Destination string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("destination %s already exists, not moving %s", e.Destination, e.Source)
}

// MoveError wraps a failed rename of a single file.
type MoveError struct {
	Source      string
	Destination string
	Err         error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("move %s to %s: %v", e.Source, e.Destination, e.Err)
}

func (e *MoveError) Unwrap() error {
	return e.Err
}
