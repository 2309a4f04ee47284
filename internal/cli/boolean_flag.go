package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	booleanFlagTypeName              = "bool"
	booleanFlagTrueLiteral           = "true"
	booleanFlagAcceptedValuesListing = "true, false, yes, no, on, off, 1, 0"
	booleanFlagInvalidValueFormat    = "invalid boolean value %q for --%s; accepted values: %s"
	flagPrefix                       = "--"
	argumentTerminator               = "--"
)

var booleanFlagLiterals = map[string]bool{
	"true":  true,
	"t":     true,
	"1":     true,
	"yes":   true,
	"y":     true,
	"on":    true,
	"false": false,
	"f":     false,
	"0":     false,
	"no":    false,
	"n":     false,
	"off":   false,
}

func parseBooleanLiteral(input string) (bool, bool) {
	parsed, known := booleanFlagLiterals[strings.ToLower(strings.TrimSpace(input))]
	return parsed, known
}

// booleanFlagValue is a pflag.Value accepting the literals listed in booleanFlagLiterals.
type booleanFlagValue struct {
	target   *bool
	flagName string
}

func (value *booleanFlagValue) Set(input string) error {
	if strings.TrimSpace(input) == "" {
		input = booleanFlagTrueLiteral
	}
	parsed, known := parseBooleanLiteral(input)
	if !known {
		return fmt.Errorf(booleanFlagInvalidValueFormat, input, value.flagName, booleanFlagAcceptedValuesListing)
	}
	*value.target = parsed
	return nil
}

func (value *booleanFlagValue) String() string {
	if value == nil || value.target == nil {
		return strconv.FormatBool(false)
	}
	return strconv.FormatBool(*value.target)
}

func (value *booleanFlagValue) Type() string {
	return booleanFlagTypeName
}

func registerBooleanFlag(flagSet *pflag.FlagSet, target *bool, name string, defaultValue bool, usage string) {
	*target = defaultValue
	flagSet.Var(&booleanFlagValue{target: target, flagName: name}, name, usage)
	registeredFlag := flagSet.Lookup(name)
	registeredFlag.DefValue = strconv.FormatBool(defaultValue)
	registeredFlag.NoOptDefVal = booleanFlagTrueLiteral
}

// normalizeBooleanFlagArguments rewrites "--flag value" into "--flag=value" for boolean flags
// whose next argument is a boolean literal, so "--pretty false" does not leave "false" as a path.
func normalizeBooleanFlagArguments(command *cobra.Command, arguments []string) []string {
	booleanFlagNames := map[string]struct{}{}
	collectBooleanFlagNames(command, booleanFlagNames)
	if len(booleanFlagNames) == 0 {
		return arguments
	}

	normalized := make([]string, 0, len(arguments))
	for index := 0; index < len(arguments); index++ {
		currentArgument := arguments[index]
		if currentArgument == argumentTerminator {
			normalized = append(normalized, arguments[index:]...)
			break
		}
		if strings.HasPrefix(currentArgument, flagPrefix) && !strings.Contains(currentArgument, "=") && index+1 < len(arguments) {
			flagName := strings.TrimPrefix(currentArgument, flagPrefix)
			nextArgument := arguments[index+1]
			if _, isBoolean := booleanFlagNames[flagName]; isBoolean && !strings.HasPrefix(nextArgument, "-") {
				if _, known := parseBooleanLiteral(nextArgument); known {
					normalized = append(normalized, currentArgument+"="+nextArgument)
					index++
					continue
				}
			}
		}
		normalized = append(normalized, currentArgument)
	}
	return normalized
}

func collectBooleanFlagNames(command *cobra.Command, target map[string]struct{}) {
	collect := func(flag *pflag.Flag) {
		if flag.Value != nil && flag.Value.Type() == booleanFlagTypeName {
			target[flag.Name] = struct{}{}
		}
	}
	command.PersistentFlags().VisitAll(collect)
	command.Flags().VisitAll(collect)
	for _, child := range command.Commands() {
		collectBooleanFlagNames(child, target)
	}
}
