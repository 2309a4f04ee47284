package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInitializeConfigurationLocal(testingHandle *testing.T) {
	workingDirectory := testingHandle.TempDir()

	destinationPath, err := InitializeConfiguration(InitOptions{Target: InitTargetLocal, WorkingDirectory: workingDirectory})
	if err != nil {
		testingHandle.Fatalf("InitializeConfiguration error: %v", err)
	}
	if destinationPath != filepath.Join(workingDirectory, ".treesense.yaml") {
		testingHandle.Fatalf("unexpected destination %s", destinationPath)
	}

	if _, err := InitializeConfiguration(InitOptions{Target: InitTargetLocal, WorkingDirectory: workingDirectory}); err == nil {
		testingHandle.Fatalf("expected error when configuration already exists")
	}
	if _, err := InitializeConfiguration(InitOptions{Target: InitTargetLocal, WorkingDirectory: workingDirectory, Force: true}); err != nil {
		testingHandle.Fatalf("expected forced overwrite to succeed: %v", err)
	}

	homeDirectory := testingHandle.TempDir()
	testingHandle.Setenv("HOME", homeDirectory)
	testingHandle.Setenv("USERPROFILE", homeDirectory)
	configuration, err := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: workingDirectory})
	if err != nil {
		testingHandle.Fatalf("template must load: %v", err)
	}
	if configuration.Suggestions.Model != "gpt-4o-mini" {
		testingHandle.Fatalf("unexpected template model %q", configuration.Suggestions.Model)
	}
	if configuration.Tree.Pretty == nil || !*configuration.Tree.Pretty {
		testingHandle.Fatalf("expected template pretty true")
	}
}

func TestInitializeConfigurationGlobal(testingHandle *testing.T) {
	homeDirectory := testingHandle.TempDir()
	testingHandle.Setenv("HOME", homeDirectory)
	testingHandle.Setenv("USERPROFILE", homeDirectory)

	destinationPath, err := InitializeConfiguration(InitOptions{Target: InitTargetGlobal})
	if err != nil {
		testingHandle.Fatalf("InitializeConfiguration error: %v", err)
	}
	if _, statErr := os.Stat(destinationPath); statErr != nil {
		testingHandle.Fatalf("expected configuration at %s: %v", destinationPath, statErr)
	}
	if filepath.Dir(destinationPath) != filepath.Join(homeDirectory, ".treesense") {
		testingHandle.Fatalf("unexpected global destination %s", destinationPath)
	}
}

func TestInitializeConfigurationUnsupportedTarget(testingHandle *testing.T) {
	if _, err := InitializeConfiguration(InitOptions{Target: "remote"}); err == nil {
		testingHandle.Fatalf("expected error for unsupported target")
	}
}
