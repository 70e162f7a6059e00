package collection

import "regexp"

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// SanitizeName maps a collection name onto the filesystem-safe subset used
// for on-disk filenames. The mapping is lossy: names differing only in
// stripped characters collide.
func SanitizeName(name string) string {
	return unsafeNameChars.ReplaceAllString(name, "_")
}
