package build

import (
	"path"
	"strings"
)

// ExecutableDir returns where built sample executables live, relative to
// the cloned tree. Collections nest Bin under the test set; Windows adds the
// x64/<Release|Debug> subpath selected by configuration.
//
// The result uses goos's separator, not the host's: backslashes for
// "windows" and forward slashes otherwise. testSet may use either.
func ExecutableDir(configuration, testSet string, asCollection bool, goos string) string {
	dir := "Bin"
	if asCollection {
		dir = path.Join(strings.ReplaceAll(testSet, `\`, "/"), "Bin")
	}
	if goos != "windows" {
		return dir
	}

	sub := "Debug"
	switch strings.ToLower(configuration) {
	case "released3d12", "releasevk":
		sub = "Release"
	}
	return strings.ReplaceAll(path.Join(dir, "x64", sub), "/", `\`)
}
