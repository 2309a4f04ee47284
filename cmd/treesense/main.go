package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/temirov/treesense/internal/cli"
	"github.com/temirov/treesense/internal/utils"
)

// main is the entry point for the treesense command.
func main() {
	loggerInstance, loggerInitializationError := utils.NewApplicationLogger(false)
	if loggerInitializationError != nil {
		panic(fmt.Errorf(utils.LoggerInitializationFailedMessageFormat, loggerInitializationError))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	applicationExecutionError := cli.Execute(ctx, os.Args[1:])
	stop()
	if applicationExecutionError == nil {
		_ = loggerInstance.Sync()
		return
	}

	exitCode := cli.ExitCodeTreeOutput
	var exitError *cli.ExitError
	if errors.As(applicationExecutionError, &exitError) {
		exitCode = exitError.Code
	}
	loggerInstance.Error(utils.ApplicationExecutionFailedMessage, zap.Error(applicationExecutionError), zap.Int("exit_code", exitCode))
	_ = loggerInstance.Sync()
	os.Exit(exitCode)
}
