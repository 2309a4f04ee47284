//go:build !unix

package commands

import "path/filepath"

// fileIdentity falls back to the canonical path where device and inode numbers are unavailable.
type fileIdentity struct {
	canonicalPath string
}

func identityOf(path string) (fileIdentity, error) {
	canonicalPath, resolveError := filepath.EvalSymlinks(path)
	if resolveError != nil {
		return fileIdentity{}, resolveError
	}
	return fileIdentity{canonicalPath: canonicalPath}, nil
}
