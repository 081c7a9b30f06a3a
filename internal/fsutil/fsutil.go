package fsutil

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// NormalizePath cleans a path and converts "\" → "/".
func NormalizePath(path string) string {
	if path == "" {
		return ""
	}
	clean := filepath.Clean(path)
	return strings.ReplaceAll(clean, "\\", "/")
}

func Exists(path string) bool {
	path = NormalizePath(path)
	_, err := os.Stat(path)
	return err == nil
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	path = NormalizePath(path)
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func CreateDir(path string) error {
	path = NormalizePath(path)
	if err := os.MkdirAll(path, 0755); err != nil {
		return errors.New("failed to create directory " + path + ": " + err.Error())
	}
	return nil
}
