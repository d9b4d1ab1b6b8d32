package types

import (
	"io/fs"
)

// FS is the filesystem interface required for icicle operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Symlink operations
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)
	Lstat(name string) (fs.FileInfo, error)

	// EvalSymlinks follows every link in path and returns the absolute,
	// canonical result. It fails if any link in the chain dangles.
	EvalSymlinks(path string) (string, error)

	// Other operations
	Remove(name string) error
	RemoveAll(path string) error
	Rename(oldpath, newpath string) error
}

// Layout exposes the directories a Pointer is resolved against.
type Layout interface {
	ToolchainsDir() string
	AliasesDir() string
}
