package utils

// EmptyString represents a reusable empty string constant.
const EmptyString = ""

// LoggerInitializationFailedMessageFormat reports a logger that could not be built.
const LoggerInitializationFailedMessageFormat = "initialize logger: %w"

// ApplicationExecutionFailedMessage prefixes the fatal error logged by main.
const ApplicationExecutionFailedMessage = "treesense failed"

// GlobalConfigDirectoryName is the directory under the user home holding the global configuration.
const GlobalConfigDirectoryName = ".treesense"

// ConfigFileName is the name of the global configuration file.
const ConfigFileName = "config.yaml"

// LocalConfigFileName is the configuration file looked up in the working directory.
const LocalConfigFileName = ".treesense.yaml"
