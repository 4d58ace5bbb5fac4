package storage

import (
	"path/filepath"
	"regexp"
	"strings"
)

// DefaultProfile is used when no profile is configured.
const DefaultProfile = "default"

var unsafePathChars = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// SanitizePath converts a profile name or path to a safe directory name.
// "Work / Side Projects" -> "Work-Side-Projects"
func SanitizePath(path string) string {
	result := strings.TrimPrefix(path, "/")
	result = unsafePathChars.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

// ProfileDir returns the directory holding one profile's records.
func ProfileDir(dataDir, profile string) string {
	name := SanitizePath(profile)
	if name == "" {
		name = DefaultProfile
	}
	return filepath.Join(dataDir, name)
}
