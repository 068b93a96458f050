// homesim - smart-home device simulator
//
// homesim keeps a simulated home of lights, thermostats, locks, cameras and
// televisions in a local state store. Each invocation runs one command
// against that home and prints the result as JSON on stdout.
//
// Usage:
//
//	homesim create <name> [type] [room]
//	homesim exec <id> <action> [key=value ...]
//	homesim list [room | --type <type>]
//
// Run "homesim help" for the full command list.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/nerrad567/homesim/internal/infrastructure/config"
	"github.com/nerrad567/homesim/internal/infrastructure/logging"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"
	commit  = "unknown"
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

// envFiles are loaded into the environment when present.
var envFiles = []string{".env"}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Command output goes to stdout; logs go where the logging config says.
func run(ctx context.Context, args []string, stdout io.Writer) error {
	if len(args) == 0 || isHelp(args[0]) {
		return writeUsage(stdout)
	}

	cmd, ok := lookupCommand(args[0])
	if !ok {
		_ = writeUsage(os.Stderr)
		return fmt.Errorf("unknown command %q", args[0])
	}
	if err := cmd.checkArgs(args[1:]); err != nil {
		return err
	}

	configPath, optional := getConfigPath()
	cfg, err := config.Load(configPath, optional, envFiles...)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logging.New(cfg.Logging, version)
	log.Debug("starting homesim",
		"version", version,
		"commit", commit,
		"command", cmd.name,
		"config", configPath,
	)

	a, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.close()

	return cmd.run(ctx, a, args[1:], stdout)
}

// getConfigPath returns the configuration file path and whether it may be
// missing. Only the default path is optional.
func getConfigPath() (string, bool) {
	if path := os.Getenv(config.EnvPrefix + "CONFIG"); path != "" {
		return path, false
	}
	return defaultConfigPath, true
}

func isHelp(arg string) bool {
	switch arg {
	case "help", "-h", "--help":
		return true
	}
	return false
}
