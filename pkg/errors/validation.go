package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxPackageName matches the crates.io limit on crate name length.
const maxPackageName = 64

// ValidatePackageName validates a package name for safety.
// It rejects names that could be used for path traversal or injection into
// registry URLs:
//   - No empty names
//   - No control characters or null bytes
//   - No path separators or traversal sequences
//   - Maximum length of 64 characters
func ValidatePackageName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPackage, "package name cannot be empty")
	}

	if len(name) > maxPackageName {
		return New(ErrCodeInvalidPackage, "package name too long (max %d characters)", maxPackageName)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPackage, "package name contains invalid control characters")
		}
	}

	for _, pattern := range []string{"..", "/", "\\", "\x00"} {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidPackage, "package name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// cratesPackageNameRegex matches valid crates.io package names.
var cratesPackageNameRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]*$`)

// ValidateCratesPackageName validates a crates.io package name.
func ValidateCratesPackageName(name string) error {
	if err := ValidatePackageName(name); err != nil {
		return err
	}

	if !cratesPackageNameRegex.MatchString(name) {
		return New(ErrCodeInvalidPackage, "invalid crates.io package name: %q", name)
	}

	return nil
}

// ValidateLevels checks a user-supplied traversal depth.
func ValidateLevels(levels int) error {
	if levels < 0 {
		return New(ErrCodeInvalidInput, "levels must not be negative (got %d)", levels)
	}
	return nil
}
