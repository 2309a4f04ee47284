//go:build unix

package commands

import "golang.org/x/sys/unix"

// fileIdentity is the device and inode pair of a directory after symlink resolution.
type fileIdentity struct {
	device uint64
	inode  uint64
}

func identityOf(path string) (fileIdentity, error) {
	var status unix.Stat_t
	if statError := unix.Stat(path, &status); statError != nil {
		return fileIdentity{}, statError
	}
	return fileIdentity{device: uint64(status.Dev), inode: uint64(status.Ino)}, nil
}
