package utils

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime/debug"
	"strings"
)

const (
	unknownVersion    = "unknown"
	develBuildVersion = "(devel)"
	gitExecutableName = "git"
)

var gitDescribeArgumentSets = [][]string{
	{"describe", "--tags", "--exact-match"},
	{"describe", "--tags", "--long", "--dirty"},
}

// GetApplicationVersion reports the module version recorded at build time.
// Development builds fall back to git describe when run inside a checkout.
func GetApplicationVersion() string {
	buildInfo, buildInfoAvailable := debug.ReadBuildInfo()
	if buildInfoAvailable && buildInfo.Main.Version != "" && buildInfo.Main.Version != develBuildVersion {
		return buildInfo.Main.Version
	}
	checkoutDirectory := findCheckoutDirectory(".")
	if checkoutDirectory == "" {
		return unknownVersion
	}
	for _, describeArguments := range gitDescribeArgumentSets {
		// #nosec G204
		describeCommand := exec.Command(gitExecutableName, describeArguments...)
		describeCommand.Dir = checkoutDirectory
		describeOutput, describeError := describeCommand.Output()
		if describeError == nil && len(describeOutput) > 0 {
			return strings.TrimSpace(string(describeOutput))
		}
	}
	return unknownVersion
}

// findCheckoutDirectory walks upward from startDirectory to the first directory holding a .git folder.
func findCheckoutDirectory(startDirectory string) string {
	currentDirectory, absoluteError := filepath.Abs(startDirectory)
	if absoluteError != nil {
		return ""
	}
	for {
		gitInformation, statError := os.Stat(filepath.Join(currentDirectory, GitDirectoryName))
		if statError == nil && gitInformation.IsDir() {
			return currentDirectory
		}
		parentDirectory := filepath.Dir(currentDirectory)
		if parentDirectory == currentDirectory {
			return ""
		}
		currentDirectory = parentDirectory
	}
}
