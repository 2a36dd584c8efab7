// Package sys wraps the handful of filesystem primitives the tool uses so
// tests can swap the implementation.
package sys

import (
	"os"
	"sync/atomic"
)

// File is the set of filesystem primitives the tool needs.
type File interface {
	Open(name string) (*os.File, error)
	OpenFile(name string, flag int, perm os.FileMode) (*os.File, error)
	Mkdir(name string, perm os.FileMode) error
}

type osFile struct{}

func (osFile) Open(name string) (*os.File, error) { return os.Open(name) }

func (osFile) OpenFile(name string, flag int, perm os.FileMode) (*os.File, error) {
	return os.OpenFile(name, flag, perm)
}

func (osFile) Mkdir(name string, perm os.FileMode) error { return os.Mkdir(name, perm) }

// fileWrapper gives atomic.Value a stable concrete type to store; the
// interface value itself may have varying dynamic types.
type fileWrapper struct {
	f File
}

var defaultFile atomic.Value // stores fileWrapper

func init() {
	defaultFile.Store(fileWrapper{f: osFile{}})
}

// SetDefaultFile swaps the filesystem implementation. Tests use this to
// inject failures; pass nil to restore the real one.
func SetDefaultFile(f File) {
	if f == nil {
		f = osFile{}
	}
	defaultFile.Store(fileWrapper{f: f})
}

func current() File {
	return defaultFile.Load().(fileWrapper).f
}

// Open opens a file read-only through the current implementation.
func Open(name string) (*os.File, error) {
	return current().Open(name)
}

// OpenFile is the generalized open through the current implementation.
func OpenFile(name string, flag int, perm os.FileMode) (*os.File, error) {
	return current().OpenFile(name, flag, perm)
}

// Mkdir creates a directory through the current implementation.
func Mkdir(name string, perm os.FileMode) error {
	return current().Mkdir(name, perm)
}
