package report

import "strings"

// IsSupportedImage reports whether name ends with one of extensions.
// The comparison is case-sensitive.
func IsSupportedImage(name string, extensions []string) bool {
	for _, ext := range extensions {
		if ext != "" && strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
