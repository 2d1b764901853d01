package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateExtension validates a file extension such as ".lua" or ".md".
//
// The validation rules:
//   - Extension cannot be empty
//   - Must start with a single dot
//   - Only letters, digits, '_' and '-' after the dot, plus inner dots
func ValidateExtension(ext string) error {
	if ext == "" {
		return New(ErrCodeInvalidConfig, "extension cannot be empty")
	}
	if !extensionRegex.MatchString(ext) {
		return New(ErrCodeInvalidConfig, "invalid extension: %q (expected e.g. \".lua\")", ext)
	}
	return nil
}

// extensionRegex matches ".ext" and multi-part forms like ".d.lua".
var extensionRegex = regexp.MustCompile(`^(\.[A-Za-z0-9_-]+)+$`)

// ValidateRoot validates a directory setting (source, output or site root).
// Roots may be absolute or relative but must be non-empty and free of
// control characters.
func ValidateRoot(name, root string) error {
	if strings.TrimSpace(root) == "" {
		return New(ErrCodeInvalidConfig, "%s cannot be empty", name)
	}
	for _, r := range root {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidConfig, "%s contains invalid characters", name)
		}
	}
	return nil
}

// ValidatePath validates a path relative to a root for safety.
// It prevents discovered files from mapping outside the output tree.
//
// Validation rules:
//   - Path cannot be empty
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No parent directory segments
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	for _, seg := range strings.Split(path, "/") {
		if seg == ".." {
			return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
		}
	}

	return nil
}
