package util

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// CopyFile copies a file atomically using a .part temporary file.
// The destination directory is created if it does not exist.
func CopyFile(srcPath, destPath string) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return 0, fmt.Errorf("failed to create directory: %w", err)
	}

	src, err := os.Open(srcPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open source: %w", err)
	}
	defer src.Close()

	tempPath := destPath + ".part"
	dest, err := os.Create(tempPath)
	if err != nil {
		return 0, fmt.Errorf("failed to create temp file: %w", err)
	}

	bytesWritten, err := io.Copy(dest, src)
	dest.Close()

	if err != nil {
		os.Remove(tempPath) // Clean up on error
		return 0, fmt.Errorf("failed to copy: %w", err)
	}

	if err := os.Rename(tempPath, destPath); err != nil {
		os.Remove(tempPath)
		return 0, fmt.Errorf("failed to rename: %w", err)
	}

	return bytesWritten, nil
}

// MoveFile moves a file. It first tries an in-place rename; if the rename
// fails because source and destination are on different storage devices it
// falls back to copy + delete source.
func MoveFile(srcPath, destPath string) error {
	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	err := os.Rename(srcPath, destPath)
	if err == nil {
		return nil
	}
	if !IsCrossDevice(err) {
		return err
	}

	// Different filesystem, fall back to copy + delete
	if _, err := CopyFile(srcPath, destPath); err != nil {
		return err
	}
	if err := os.Remove(srcPath); err != nil {
		WarnLog("Failed to delete source file %s: %v", srcPath, err)
		// Don't return error - file was copied successfully
	}
	return nil
}

// LinkOrCopy creates a hard link, falling back to a plain copy when the
// filesystem does not support links or the paths are on different devices.
func LinkOrCopy(srcPath, destPath string) error {
	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.Link(srcPath, destPath); err == nil {
		return nil
	}

	_, err := CopyFile(srcPath, destPath)
	return err
}

// AvailableName returns a collision-safe file name for name within dir,
// appending _1, _2, ... before the extension until the name is free both
// on disk and in the reserved set. The chosen name is added to reserved.
func AvailableName(dir, name string, reserved map[string]bool) string {
	candidate := name
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	for counter := 1; ; counter++ {
		path := filepath.Join(dir, candidate)
		_, statErr := os.Lstat(path)
		if os.IsNotExist(statErr) && !reserved[path] {
			reserved[path] = true
			return candidate
		}
		candidate = fmt.Sprintf("%s_%d%s", stem, counter, ext)
	}
}
