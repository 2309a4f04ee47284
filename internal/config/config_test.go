package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeTestFile(testingHandle *testing.T, filePath string, content string) {
	testingHandle.Helper()
	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		testingHandle.Fatalf("mkdir %s: %v", filepath.Dir(filePath), err)
	}
	if err := os.WriteFile(filePath, []byte(content), 0o600); err != nil {
		testingHandle.Fatalf("write %s: %v", filePath, err)
	}
}

func TestLoadExclusionFile(testingHandle *testing.T) {
	temporaryDirectory := testingHandle.TempDir()
	exclusionPath := filepath.Join(temporaryDirectory, "excludes.txt")
	writeTestFile(testingHandle, exclusionPath, "# generated\n\nbuild\n  dist  \n#cache\ncoverage.out\n")

	names, err := LoadExclusionFile(exclusionPath)
	if err != nil {
		testingHandle.Fatalf("LoadExclusionFile error: %v", err)
	}
	expected := []string{"build", "dist", "coverage.out"}
	if !reflect.DeepEqual(names, expected) {
		testingHandle.Fatalf("unexpected names: got %v want %v", names, expected)
	}
}

func TestLoadExclusionFileMissing(testingHandle *testing.T) {
	_, err := LoadExclusionFile(filepath.Join(testingHandle.TempDir(), "absent"))
	if err == nil {
		testingHandle.Fatalf("expected error for missing exclusion file")
	}
}

func TestBuildExclusionSet(testingHandle *testing.T) {
	temporaryDirectory := testingHandle.TempDir()
	exclusionPath := filepath.Join(temporaryDirectory, "excludes.txt")
	writeTestFile(testingHandle, exclusionPath, "dist\nnode_modules\n")

	testCases := []struct {
		name        string
		useDefaults bool
		names       []string
		filePath    string
		expected    []string
	}{
		{
			name:        "defaults only",
			useDefaults: true,
			expected:    DefaultExcludes,
		},
		{
			name:     "no defaults and no extras",
			expected: nil,
		},
		{
			name:     "explicit names are trimmed and deduplicated",
			names:    []string{"build", " build ", "", "tmp"},
			expected: []string{"build", "tmp"},
		},
		{
			name:        "file names follow defaults and explicit names",
			useDefaults: true,
			names:       []string{"dist"},
			filePath:    exclusionPath,
			expected:    append(append([]string{}, DefaultExcludes...), "dist"),
		},
	}

	for _, testCase := range testCases {
		testingHandle.Run(testCase.name, func(subTest *testing.T) {
			actual, err := BuildExclusionSet(testCase.useDefaults, testCase.names, testCase.filePath)
			if err != nil {
				subTest.Fatalf("BuildExclusionSet error: %v", err)
			}
			if len(actual) == 0 && len(testCase.expected) == 0 {
				return
			}
			if !reflect.DeepEqual(actual, testCase.expected) {
				subTest.Fatalf("unexpected set: got %v want %v", actual, testCase.expected)
			}
		})
	}
}
