// Package repository defines the data access layer.  Every error coming back
// from the database driver is wrapped in a StorageError so that handlers can
// tell storage failures apart from domain outcomes such as "no row matched",
// which repositories report through return values rather than errors.
package repository

import "fmt"

// StorageError carries the failing operation and the underlying driver
// error.  Handlers translate it into HTTP 500 and pass Err's message through.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// storageErr wraps err for op, returning nil when err is nil.
func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}
