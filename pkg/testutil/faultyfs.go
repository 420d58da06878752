package testutil

import (
	"fmt"
	"io/fs"
	"time"

	"github.com/arthur-debert/dotlink/pkg/types"
)

// FaultyFS wraps a types.FS and fails the operations named in Fail. Keys
// are method names ("Symlink", "RemoveAll", ...); a path-specific failure
// uses "Method:path".
type FaultyFS struct {
	types.FS
	Fail map[string]error
}

// NewFaultyFS wraps inner with no failures configured
func NewFaultyFS(inner types.FS) *FaultyFS {
	return &FaultyFS{FS: inner, Fail: make(map[string]error)}
}

// FailOn makes method fail for every path
func (f *FaultyFS) FailOn(method string) {
	f.Fail[method] = fmt.Errorf("injected %s failure", method)
}

// FailOnPath makes method fail only for path
func (f *FaultyFS) FailOnPath(method, path string) {
	f.Fail[method+":"+path] = fmt.Errorf("injected %s failure for %s", method, path)
}

func (f *FaultyFS) fault(method, path string) error {
	if err, ok := f.Fail[method+":"+path]; ok {
		return err
	}
	return f.Fail[method]
}

func (f *FaultyFS) Stat(name string) (fs.FileInfo, error) {
	if err := f.fault("Stat", name); err != nil {
		return nil, err
	}
	return f.FS.Stat(name)
}

func (f *FaultyFS) Lstat(name string) (fs.FileInfo, error) {
	if err := f.fault("Lstat", name); err != nil {
		return nil, err
	}
	return f.FS.Lstat(name)
}

func (f *FaultyFS) ReadFile(name string) ([]byte, error) {
	if err := f.fault("ReadFile", name); err != nil {
		return nil, err
	}
	return f.FS.ReadFile(name)
}

func (f *FaultyFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	if err := f.fault("WriteFile", name); err != nil {
		return err
	}
	return f.FS.WriteFile(name, data, perm)
}

func (f *FaultyFS) Chtimes(name string, atime, mtime time.Time) error {
	if err := f.fault("Chtimes", name); err != nil {
		return err
	}
	return f.FS.Chtimes(name, atime, mtime)
}

func (f *FaultyFS) MkdirAll(path string, perm fs.FileMode) error {
	if err := f.fault("MkdirAll", path); err != nil {
		return err
	}
	return f.FS.MkdirAll(path, perm)
}

func (f *FaultyFS) Symlink(oldname, newname string) error {
	if err := f.fault("Symlink", newname); err != nil {
		return err
	}
	return f.FS.Symlink(oldname, newname)
}

func (f *FaultyFS) Remove(name string) error {
	if err := f.fault("Remove", name); err != nil {
		return err
	}
	return f.FS.Remove(name)
}

func (f *FaultyFS) RemoveAll(path string) error {
	if err := f.fault("RemoveAll", path); err != nil {
		return err
	}
	return f.FS.RemoveAll(path)
}
