package walkwalk

import (
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

// NativeFS is a billy.Filesystem over the host filesystem without a chroot,
// so relative roots resolve against the working directory and ".." is
// allowed.
type NativeFS struct {
	osfs.ChrootOS
}

// Chroot returns a filesystem bound to path.
//
//nolint:ireturn // signature dictated by billy.Filesystem.
func (n *NativeFS) Chroot(path string) (billy.Filesystem, error) {
	return osfs.New(path), nil
}

// Root returns the root path for this filesystem.
func (n *NativeFS) Root() string {
	return ""
}

// NewNativeFS returns a filesystem backed by the process working directory.
func NewNativeFS() *NativeFS {
	return &NativeFS{}
}
