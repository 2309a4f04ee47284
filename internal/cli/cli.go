// Package cli provides the command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/treesense/internal/commands"
	"github.com/temirov/treesense/internal/config"
	"github.com/temirov/treesense/internal/llm"
	"github.com/temirov/treesense/internal/output"
	"github.com/temirov/treesense/internal/services/clipboard"
	"github.com/temirov/treesense/internal/suggest"
	"github.com/temirov/treesense/internal/tokenizer"
	"github.com/temirov/treesense/internal/utils"
)

const (
	jsonOutFlagName           = "json-out"
	suggestionsOutFlagName    = "suggestions-out"
	markdownOutFlagName       = "markdown-out"
	prettyFlagName            = "pretty"
	maxDepthFlagName          = "max-depth"
	includeHiddenFlagName     = "include-hidden"
	sizesFlagName             = "sizes"
	followSymlinksFlagName    = "follow-symlinks"
	noDefaultExcludesFlagName = "no-default-excludes"
	excludeFlagName           = "exclude"
	excludeFlagShorthand      = "e"
	excludeFromFlagName       = "exclude-from"
	modelFlagName             = "model"
	maxCharsFlagName          = "max-chars"
	apiKeyEnvFlagName         = "api-key-env"
	baseURLFlagName           = "base-url"
	copyFlagName              = "copy"
	configFlagName            = "config"
	verboseFlagName           = "verbose"
	versionFlagName           = "version"
	globalFlagName            = "global"
	forceFlagName             = "force"

	defaultPath           = "."
	defaultJSONOut        = "tree.json"
	defaultSuggestionsOut = "llm_suggestions.md"
	defaultModel          = "gpt-4o-mini"
	defaultMaxChars       = 12000

	rootUse              = "treesense [path]"
	rootShortDescription = "describe a directory tree and ask a language model how to tidy it"
	rootLongDescription  = `treesense walks a directory, writes its structure as JSON and sends the
compact JSON, split into bounded chunks, to an OpenAI-compatible Responses API.
The service answers with unclear names and reorganization suggestions, which are
written to a Markdown file.

Defaults come from ~/.treesense/config.yaml and ./.treesense.yaml (or --config);
flags given on the command line win. The API key is read from the variable named
by --api-key-env, after loading ./.env when present.`
	rootUsageExample = `  # Describe the current directory with sizes, two levels deep
  treesense --sizes --max-depth 2

  # Print the tree to stdout and use a local gateway
  treesense --json-out "" --base-url http://localhost:8080/v1 ~/projects/app`
	initUse              = "init"
	initShortDescription = "write a default configuration file"

	versionTemplate = "treesense version: %s\n"

	jsonOutFlagDescription           = "JSON tree destination; empty prints the tree to stdout"
	suggestionsOutFlagDescription    = "suggestions destination"
	markdownOutFlagDescription       = "also write the tree as a Markdown list to this path"
	prettyFlagDescription            = "indent the JSON file"
	maxDepthFlagDescription          = "deepest directory level to expand; 0 means unlimited"
	includeHiddenFlagDescription     = "include entries whose name starts with a dot"
	sizesFlagDescription             = "annotate files with their size"
	followSymlinksFlagDescription    = "descend into symlinked directories"
	noDefaultExcludesFlagDescription = "do not skip the built-in excluded names"
	excludeFlagDescription           = "skip entries with this name (repeatable)"
	excludeFromFlagDescription       = "file listing names to skip, one per line"
	modelFlagDescription             = "model used for suggestions"
	maxCharsFlagDescription          = "maximum characters of tree JSON per request"
	apiKeyEnvFlagDescription         = "environment variable holding the API key"
	baseURLFlagDescription           = "base URL of the Responses API"
	copyFlagDescription              = "copy the suggestions to the clipboard"
	configFlagDescription            = "configuration file replacing ./.treesense.yaml"
	verboseFlagDescription           = "log debug details such as chunk token estimates"
	versionFlagDescription           = "display application version"
	globalFlagDescription            = "write ~/.treesense/config.yaml instead of ./.treesense.yaml"
	forceFlagDescription             = "overwrite an existing configuration file"

	errorNegativeMaxDepthFormat = "--%s must not be negative, got %d"
	errorMaxCharsFormat         = "--%s must be positive, got %d"
	errorLoadConfiguration      = "load configuration: %w"
	errorWorkingDirectoryFormat = "unable to determine working directory: %w"
	errorLoggerFormat           = "initialize logger: %w"
	errorBuildTree              = "describe %s: %w"
	errorExclusions             = "resolve exclusions: %w"
	errorRenderTree             = "render tree: %w"
	errorSuggestionClient       = "configure suggestion client: %w"
	errorSuggestions            = "request suggestions: %w"

	logWroteJSON         = "wrote JSON tree"
	logWroteMarkdown     = "wrote Markdown tree"
	logWroteSuggestions  = "wrote suggestions"
	logDotEnvFailed      = "unable to load .env"
	logTokenizerMissing  = "token estimates unavailable"
	logTokenizerSelected = "token estimates enabled"
	logConfigInitialized = "wrote configuration"
)

// Dependencies are the collaborators a run uses. Zero values select the production implementations.
type Dependencies struct {
	Logger           *zap.Logger
	Stdout           io.Writer
	Clipboard        clipboard.Copier
	HTTPClient       *http.Client
	WorkingDirectory string
}

// runOptions is the fully resolved configuration of one run.
type runOptions struct {
	rootPath          string
	jsonOut           string
	suggestionsOut    string
	markdownOut       string
	pretty            bool
	maxDepth          int
	includeHidden     bool
	sizes             bool
	followSymlinks    bool
	noDefaultExcludes bool
	excludes          []string
	excludeFrom       string
	model             string
	maxChars          int
	apiKeyEnv         string
	baseURL           string
	copy              bool
	configPath        string
	verbose           bool
	showVersion       bool
}

// Execute runs the treesense application with production dependencies.
func Execute(ctx context.Context, arguments []string) error {
	return ExecuteWithDependencies(ctx, arguments, Dependencies{})
}

// ExecuteWithDependencies runs the treesense application with the provided collaborators.
func ExecuteWithDependencies(ctx context.Context, arguments []string, dependencies Dependencies) error {
	if dependencies.Stdout == nil {
		dependencies.Stdout = os.Stdout
	}
	rootCommand := createRootCommand(dependencies)
	rootCommand.SetArgs(normalizeBooleanFlagArguments(rootCommand, arguments))
	rootCommand.SetOut(dependencies.Stdout)
	return rootCommand.ExecuteContext(ctx)
}

// createRootCommand builds the root Cobra command.
func createRootCommand(dependencies Dependencies) *cobra.Command {
	var options runOptions

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		Example:       rootUsageExample,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if options.showVersion {
				_, printError := fmt.Fprintf(dependencies.Stdout, versionTemplate, utils.GetApplicationVersion())
				return printError
			}
			options.rootPath = defaultPath
			if len(arguments) > 0 {
				options.rootPath = arguments[0]
			}
			return runDescribe(command, options, dependencies)
		},
	}

	flagSet := rootCommand.Flags()
	flagSet.StringVar(&options.jsonOut, jsonOutFlagName, defaultJSONOut, jsonOutFlagDescription)
	flagSet.StringVar(&options.suggestionsOut, suggestionsOutFlagName, defaultSuggestionsOut, suggestionsOutFlagDescription)
	flagSet.StringVar(&options.markdownOut, markdownOutFlagName, utils.EmptyString, markdownOutFlagDescription)
	registerBooleanFlag(flagSet, &options.pretty, prettyFlagName, true, prettyFlagDescription)
	flagSet.IntVar(&options.maxDepth, maxDepthFlagName, 0, maxDepthFlagDescription)
	registerBooleanFlag(flagSet, &options.includeHidden, includeHiddenFlagName, false, includeHiddenFlagDescription)
	registerBooleanFlag(flagSet, &options.sizes, sizesFlagName, false, sizesFlagDescription)
	registerBooleanFlag(flagSet, &options.followSymlinks, followSymlinksFlagName, false, followSymlinksFlagDescription)
	registerBooleanFlag(flagSet, &options.noDefaultExcludes, noDefaultExcludesFlagName, false, noDefaultExcludesFlagDescription)
	flagSet.StringArrayVarP(&options.excludes, excludeFlagName, excludeFlagShorthand, nil, excludeFlagDescription)
	flagSet.StringVar(&options.excludeFrom, excludeFromFlagName, utils.EmptyString, excludeFromFlagDescription)
	flagSet.StringVar(&options.model, modelFlagName, defaultModel, modelFlagDescription)
	flagSet.IntVar(&options.maxChars, maxCharsFlagName, defaultMaxChars, maxCharsFlagDescription)
	flagSet.StringVar(&options.apiKeyEnv, apiKeyEnvFlagName, config.DefaultAPIKeyEnvironmentVariable, apiKeyEnvFlagDescription)
	flagSet.StringVar(&options.baseURL, baseURLFlagName, llm.DefaultBaseURL, baseURLFlagDescription)
	registerBooleanFlag(flagSet, &options.copy, copyFlagName, false, copyFlagDescription)
	flagSet.StringVar(&options.configPath, configFlagName, utils.EmptyString, configFlagDescription)
	registerBooleanFlag(flagSet, &options.verbose, verboseFlagName, false, verboseFlagDescription)
	registerBooleanFlag(flagSet, &options.showVersion, versionFlagName, false, versionFlagDescription)

	rootCommand.AddCommand(createInitCommand(dependencies))
	return rootCommand
}

// createInitCommand returns the init subcommand.
func createInitCommand(dependencies Dependencies) *cobra.Command {
	var writeGlobal bool
	var overwrite bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if writeGlobal {
				target = config.InitTargetGlobal
			}
			destinationPath, initError := config.InitializeConfiguration(config.InitOptions{
				Target:           target,
				Force:            overwrite,
				WorkingDirectory: dependencies.WorkingDirectory,
			})
			if initError != nil {
				return newExitError(ExitCodeTreeOutput, initError)
			}
			_, printError := fmt.Fprintf(dependencies.Stdout, "%s: %s\n", logConfigInitialized, destinationPath)
			return printError
		},
	}
	registerBooleanFlag(initCommand.Flags(), &writeGlobal, globalFlagName, false, globalFlagDescription)
	registerBooleanFlag(initCommand.Flags(), &overwrite, forceFlagName, false, forceFlagDescription)
	return initCommand
}

// runDescribe builds the tree, writes it, requests suggestions and writes them, in that order.
func runDescribe(command *cobra.Command, options runOptions, dependencies Dependencies) error {
	workingDirectory := dependencies.WorkingDirectory
	if workingDirectory == utils.EmptyString {
		currentDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			return newExitError(ExitCodeTreeOutput, fmt.Errorf(errorWorkingDirectoryFormat, workingDirectoryError))
		}
		workingDirectory = currentDirectory
	}

	applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: workingDirectory,
		ExplicitFilePath: options.configPath,
	})
	if configurationError != nil {
		return newExitError(ExitCodeTreeOutput, fmt.Errorf(errorLoadConfiguration, configurationError))
	}
	options = applyConfiguration(command, options, applicationConfiguration)
	if validationError := validateOptions(options); validationError != nil {
		return newExitError(ExitCodeTreeOutput, validationError)
	}

	logger := dependencies.Logger
	if logger == nil {
		applicationLogger, loggerError := utils.NewApplicationLogger(options.verbose)
		if loggerError != nil {
			return newExitError(ExitCodeTreeOutput, fmt.Errorf(errorLoggerFormat, loggerError))
		}
		defer func() { _ = applicationLogger.Sync() }()
		logger = applicationLogger
	}

	exclusionNames, exclusionError := config.BuildExclusionSet(!options.noDefaultExcludes, options.excludes, resolvePath(workingDirectory, options.excludeFrom))
	if exclusionError != nil {
		return newExitError(ExitCodeTreeOutput, fmt.Errorf(errorExclusions, exclusionError))
	}

	treeBuilder := &commands.TreeBuilder{
		MaxDepth:       options.maxDepth,
		IncludeHidden:  options.includeHidden,
		ShowSizes:      options.sizes,
		Excludes:       exclusionNames,
		FollowSymlinks: options.followSymlinks,
		Logger:         logger,
	}
	tree, buildError := treeBuilder.Build(resolvePath(workingDirectory, options.rootPath))
	if buildError != nil {
		return newExitError(ExitCodeTreeOutput, fmt.Errorf(errorBuildTree, options.rootPath, buildError))
	}

	if options.jsonOut == utils.EmptyString {
		renderedTree, renderError := output.RenderTreeJSON(tree, true)
		if renderError != nil {
			return newExitError(ExitCodeTreeOutput, renderError)
		}
		if _, printError := fmt.Fprintln(dependencies.Stdout, renderedTree); printError != nil {
			return newExitError(ExitCodeTreeOutput, printError)
		}
	} else {
		renderedTree, renderError := output.RenderTreeJSON(tree, options.pretty)
		if renderError != nil {
			return newExitError(ExitCodeTreeOutput, renderError)
		}
		jsonPath := resolvePath(workingDirectory, options.jsonOut)
		if writeError := output.WriteArtifact(jsonPath, renderedTree); writeError != nil {
			return newExitError(ExitCodeTreeOutput, writeError)
		}
		logger.Info(logWroteJSON, zap.String("path", jsonPath))
	}

	if options.markdownOut != utils.EmptyString {
		markdownPath := resolvePath(workingDirectory, options.markdownOut)
		if writeError := output.WriteArtifact(markdownPath, output.RenderMarkdownTree(tree)); writeError != nil {
			return newExitError(ExitCodeTreeOutput, writeError)
		}
		logger.Info(logWroteMarkdown, zap.String("path", markdownPath))
	}

	compactTree, compactError := output.RenderTreeJSON(tree, false)
	if compactError != nil {
		return newExitError(ExitCodeTreeOutput, fmt.Errorf(errorRenderTree, compactError))
	}

	suggestions, suggestionError := requestSuggestions(command.Context(), compactTree, options, workingDirectory, dependencies, logger)
	if suggestionError != nil {
		return newExitError(ExitCodeSuggestionService, suggestionError)
	}

	suggestionsPath := resolvePath(workingDirectory, options.suggestionsOut)
	if writeError := output.WriteArtifact(suggestionsPath, suggestions); writeError != nil {
		return newExitError(ExitCodeSuggestionsOutput, writeError)
	}
	logger.Info(logWroteSuggestions, zap.String("path", suggestionsPath))

	if options.copy {
		clipboard.CopyBestEffort(dependencies.Clipboard, suggestions, logger)
	}
	return nil
}

// requestSuggestions resolves the credential and sends the compact tree to the suggestion service.
func requestSuggestions(ctx context.Context, compactTree string, options runOptions, workingDirectory string, dependencies Dependencies, logger *zap.Logger) (string, error) {
	if dotEnvError := config.LoadDotEnv(workingDirectory); dotEnvError != nil {
		logger.Warn(logDotEnvFailed, zap.Error(dotEnvError))
	}
	apiKey, credentialError := config.ResolveAPIKey(options.apiKeyEnv)
	if credentialError != nil {
		return "", credentialError
	}

	var client *llm.Client
	var clientError error
	if dependencies.HTTPClient != nil {
		client, clientError = llm.NewClient(apiKey, options.model, options.baseURL, dependencies.HTTPClient)
	} else {
		client, clientError = llm.NewClient(apiKey, options.model, options.baseURL, nil)
	}
	if clientError != nil {
		return "", fmt.Errorf(errorSuggestionClient, clientError)
	}

	tokenCounter, tokenizerName, tokenizerError := tokenizer.NewCounter(client.Model())
	if tokenizerError != nil {
		logger.Debug(logTokenizerMissing, zap.String("model", client.Model()), zap.Error(tokenizerError))
	} else {
		logger.Debug(logTokenizerSelected, zap.String("tokenizer", tokenizerName))
	}

	suggestions, requestError := suggest.NewRequester(client, tokenCounter, logger).Request(ctx, compactTree, options.maxChars)
	if requestError != nil {
		return "", fmt.Errorf(errorSuggestions, requestError)
	}
	return suggestions, nil
}

// applyConfiguration fills every option whose flag was not given on the command line from the loaded files.
func applyConfiguration(command *cobra.Command, options runOptions, applicationConfiguration config.ApplicationConfiguration) runOptions {
	flagSet := command.Flags()
	notSet := func(flagName string) bool {
		return !flagSet.Changed(flagName)
	}

	treeConfiguration := applicationConfiguration.Tree
	if treeConfiguration.MaxDepth != nil && notSet(maxDepthFlagName) {
		options.maxDepth = *treeConfiguration.MaxDepth
	}
	if treeConfiguration.IncludeHidden != nil && notSet(includeHiddenFlagName) {
		options.includeHidden = *treeConfiguration.IncludeHidden
	}
	if treeConfiguration.Sizes != nil && notSet(sizesFlagName) {
		options.sizes = *treeConfiguration.Sizes
	}
	if treeConfiguration.FollowSymlinks != nil && notSet(followSymlinksFlagName) {
		options.followSymlinks = *treeConfiguration.FollowSymlinks
	}
	if treeConfiguration.DefaultExcludes != nil && notSet(noDefaultExcludesFlagName) {
		options.noDefaultExcludes = !*treeConfiguration.DefaultExcludes
	}
	if len(treeConfiguration.Exclude) > 0 && notSet(excludeFlagName) {
		options.excludes = append([]string{}, treeConfiguration.Exclude...)
	}
	if treeConfiguration.Pretty != nil && notSet(prettyFlagName) {
		options.pretty = *treeConfiguration.Pretty
	}
	if treeConfiguration.JSONOut != nil && notSet(jsonOutFlagName) {
		options.jsonOut = *treeConfiguration.JSONOut
	}

	suggestionConfiguration := applicationConfiguration.Suggestions
	if suggestionConfiguration.Model != utils.EmptyString && notSet(modelFlagName) {
		options.model = suggestionConfiguration.Model
	}
	if suggestionConfiguration.MaxChars != nil && notSet(maxCharsFlagName) {
		options.maxChars = *suggestionConfiguration.MaxChars
	}
	if suggestionConfiguration.APIKeyEnv != utils.EmptyString && notSet(apiKeyEnvFlagName) {
		options.apiKeyEnv = suggestionConfiguration.APIKeyEnv
	}
	if suggestionConfiguration.BaseURL != utils.EmptyString && notSet(baseURLFlagName) {
		options.baseURL = suggestionConfiguration.BaseURL
	}
	if suggestionConfiguration.Output != utils.EmptyString && notSet(suggestionsOutFlagName) {
		options.suggestionsOut = suggestionConfiguration.Output
	}
	if suggestionConfiguration.Copy != nil && notSet(copyFlagName) {
		options.copy = *suggestionConfiguration.Copy
	}
	return options
}

func validateOptions(options runOptions) error {
	if options.maxDepth < 0 {
		return fmt.Errorf(errorNegativeMaxDepthFormat, maxDepthFlagName, options.maxDepth)
	}
	if options.maxChars <= 0 {
		return fmt.Errorf(errorMaxCharsFormat, maxCharsFlagName, options.maxChars)
	}
	if options.suggestionsOut == utils.EmptyString {
		return errors.New("--" + suggestionsOutFlagName + " must not be empty")
	}
	return nil
}

// resolvePath anchors relative paths at the working directory. Empty paths and "~" paths pass through.
func resolvePath(workingDirectory string, path string) string {
	if path == utils.EmptyString || workingDirectory == utils.EmptyString {
		return path
	}
	expandedPath, expandError := utils.ExpandHomeDirectory(path)
	if expandError != nil {
		return path
	}
	if filepath.IsAbs(expandedPath) {
		return expandedPath
	}
	return filepath.Join(workingDirectory, expandedPath)
}
