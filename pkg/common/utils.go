package common

import (
	"path"
	"path/filepath"
	"strings"
)

// FileNameWithoutExtension returns the base name of an asset path with its
// extension removed. Both '/' and '\' are treated as separators since
// authoring tools export Windows paths.
func FileNameWithoutExtension(assetPath string) string {
	normalized := strings.ReplaceAll(assetPath, "\\", "/")
	base := path.Base(normalized)
	if base == "." || base == "/" {
		return ""
	}
	return strings.TrimSuffix(base, path.Ext(base))
}

// IsSQLitePath reports whether filename has an extension that selects the
// SQLite exporter.
func IsSQLitePath(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}

// EnsureExtension appends ext to filename when it has no extension.
func EnsureExtension(filename, ext string) string {
	if filepath.Ext(filename) != "" {
		return filename
	}
	return filename + ext
}
