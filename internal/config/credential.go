package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const (
	// DefaultAPIKeyEnvironmentVariable names the variable holding the suggestion-service key.
	DefaultAPIKeyEnvironmentVariable = "OPENAI_API_KEY"

	dotEnvFileName = ".env"
)

// ErrMissingCredential reports that the credential variable is unset or empty.
var ErrMissingCredential = errors.New("credential is not set")

// LoadDotEnv loads workingDirectory/.env into the process environment when the file exists.
// Variables that are already set keep their values.
func LoadDotEnv(workingDirectory string) error {
	dotEnvPath := filepath.Join(workingDirectory, dotEnvFileName)
	if _, statError := os.Stat(dotEnvPath); statError != nil {
		if os.IsNotExist(statError) {
			return nil
		}
		return fmt.Errorf("stat %s: %w", dotEnvPath, statError)
	}
	if loadError := godotenv.Load(dotEnvPath); loadError != nil {
		return fmt.Errorf("load %s: %w", dotEnvPath, loadError)
	}
	return nil
}

// ResolveAPIKey reads the credential from the named environment variable.
func ResolveAPIKey(variableName string) (string, error) {
	if strings.TrimSpace(variableName) == "" {
		variableName = DefaultAPIKeyEnvironmentVariable
	}
	apiKey := strings.TrimSpace(os.Getenv(variableName))
	if apiKey == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingCredential, variableName)
	}
	return apiKey, nil
}
