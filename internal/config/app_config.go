package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/temirov/treesense/internal/utils"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// ApplicationConfiguration holds defaults that command line flags override.
type ApplicationConfiguration struct {
	Tree        TreeConfiguration       `mapstructure:"tree"`
	Suggestions SuggestionConfiguration `mapstructure:"suggestions"`
}

// TreeConfiguration configures the walk and the JSON artifact.
type TreeConfiguration struct {
	MaxDepth        *int     `mapstructure:"max_depth"`
	IncludeHidden   *bool    `mapstructure:"include_hidden"`
	Sizes           *bool    `mapstructure:"sizes"`
	FollowSymlinks  *bool    `mapstructure:"follow_symlinks"`
	DefaultExcludes *bool    `mapstructure:"default_excludes"`
	Exclude         []string `mapstructure:"exclude"`
	Pretty          *bool    `mapstructure:"pretty"`
	JSONOut         *string  `mapstructure:"json_out"`
}

// SuggestionConfiguration configures the suggestion service and its artifact.
type SuggestionConfiguration struct {
	Model     string `mapstructure:"model"`
	MaxChars  *int   `mapstructure:"max_chars"`
	APIKeyEnv string `mapstructure:"api_key_env"`
	BaseURL   string `mapstructure:"base_url"`
	Output    string `mapstructure:"output"`
	Copy      *bool  `mapstructure:"copy"`
}

// LoadApplicationConfiguration loads configuration from the global file and then the local or explicit file.
// Missing files contribute nothing.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, err := os.Getwd()
		if err != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", err)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	if homeDirectory, err := os.UserHomeDir(); err == nil && homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.ConfigFileName)
		globalConfig, loadErr := loadConfigurationFromPath(globalPath, false)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(globalConfig)
	}

	localPath := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	localConfig, loadErr := loadConfigurationFromPath(localPath, options.ExplicitFilePath != "")
	if loadErr != nil {
		return ApplicationConfiguration{}, loadErr
	}
	merged = merged.Merge(localConfig)

	if len(merged.Tree.Exclude) > 0 {
		merged.Tree.Exclude = utils.DeduplicatePatterns(merged.Tree.Exclude)
	}
	return merged, nil
}

func resolveLocalConfigPath(workingDirectory, explicitPath string) string {
	if explicitPath == "" {
		return filepath.Join(workingDirectory, utils.LocalConfigFileName)
	}
	if filepath.IsAbs(explicitPath) {
		return explicitPath
	}
	return filepath.Join(workingDirectory, explicitPath)
}

// loadConfigurationFromPath reads one configuration file. A missing file is an error only when required.
func loadConfigurationFromPath(path string, required bool) (ApplicationConfiguration, error) {
	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) && !required {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statErr)
	}
	if info.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	if filepath.Ext(path) == "" {
		reader.SetConfigType("yaml")
	}
	if readErr := reader.ReadInConfig(); readErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readErr)
	}
	var config ApplicationConfiguration
	if decodeErr := reader.Unmarshal(&config); decodeErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeErr)
	}
	return config, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
func (config ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := config
	result.Tree = result.Tree.merge(override.Tree)
	result.Suggestions = result.Suggestions.merge(override.Suggestions)
	return result
}

func (config TreeConfiguration) merge(override TreeConfiguration) TreeConfiguration {
	result := config
	if override.MaxDepth != nil {
		result.MaxDepth = cloneInt(override.MaxDepth)
	}
	if override.IncludeHidden != nil {
		result.IncludeHidden = cloneBool(override.IncludeHidden)
	}
	if override.Sizes != nil {
		result.Sizes = cloneBool(override.Sizes)
	}
	if override.FollowSymlinks != nil {
		result.FollowSymlinks = cloneBool(override.FollowSymlinks)
	}
	if override.DefaultExcludes != nil {
		result.DefaultExcludes = cloneBool(override.DefaultExcludes)
	}
	if len(override.Exclude) > 0 {
		result.Exclude = append([]string{}, utils.DeduplicatePatterns(override.Exclude)...)
	}
	if override.Pretty != nil {
		result.Pretty = cloneBool(override.Pretty)
	}
	if override.JSONOut != nil {
		result.JSONOut = cloneString(override.JSONOut)
	}
	return result
}

func (config SuggestionConfiguration) merge(override SuggestionConfiguration) SuggestionConfiguration {
	result := config
	if override.Model != "" {
		result.Model = override.Model
	}
	if override.MaxChars != nil {
		result.MaxChars = cloneInt(override.MaxChars)
	}
	if override.APIKeyEnv != "" {
		result.APIKeyEnv = override.APIKeyEnv
	}
	if override.BaseURL != "" {
		result.BaseURL = override.BaseURL
	}
	if override.Output != "" {
		result.Output = override.Output
	}
	if override.Copy != nil {
		result.Copy = cloneBool(override.Copy)
	}
	return result
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}

func cloneInt(value *int) *int {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}

func cloneString(value *string) *string {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
