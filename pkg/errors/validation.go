package errors

import (
	"os"
	"strings"
	"unicode"
)

// ValidateFolderName checks that a sequence folder name can be embedded in an
// output filename. The name becomes part of Contact-Sheet_<name>.NNN.jpg, so
// it must be a single path segment without control characters.
func ValidateFolderName(name string) error {
	if name == "" || name == "." || name == ".." {
		return New(ErrCodeInvalidPath, "invalid sequence folder name: %q", name)
	}

	if len(name) > 255 {
		return New(ErrCodeInvalidPath, "sequence folder name too long (max 255 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "sequence folder name contains invalid control characters")
		}
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidPath, "sequence folder name cannot contain path separators: %q", name)
	}

	return nil
}

// ValidateDir checks that path exists and is a directory.
func ValidateDir(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}
	if strings.ContainsRune(path, 0) {
		return New(ErrCodeInvalidPath, "path contains null bytes")
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return New(ErrCodeNotFound, "folder not found: %s", path)
	}
	if err != nil {
		return Wrap(ErrCodeInvalidPath, err, "stat %s", path)
	}
	if !info.IsDir() {
		return New(ErrCodeInvalidPath, "not a folder: %s", path)
	}
	return nil
}
