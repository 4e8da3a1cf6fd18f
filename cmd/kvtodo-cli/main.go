package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/sagarc03/kvtodo/clientcli"
	"github.com/spf13/cobra"
)

var (
	version = "dev"

	cfgFile     string
	profileName string
	endpoint    string
	prefix      string
	jsonOutput  bool
	quiet       bool
)

var rootCmd = &cobra.Command{
	Use:     "kvtodo-cli",
	Version: version,
	Short:   "Client for a kvtodo server",
	Long: `kvtodo CLI - client for the kvtodo todo list server

Connection settings are resolved in this order, later entries winning:
  1. profile from the config file (~/.kvtodo/config.yaml)
  2. environment variables (KVTODO_ENDPOINT, KVTODO_PREFIX)
  3. command line flags`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ~/.kvtodo/config.yaml, env: KVTODO_CONFIG)")
	rootCmd.PersistentFlags().StringVarP(&profileName, "profile", "p", "", "profile name (env: KVTODO_PROFILE)")
	rootCmd.PersistentFlags().StringVarP(&endpoint, "endpoint", "e", "", "server URL (default: http://localhost:5708, env: KVTODO_ENDPOINT)")
	rootCmd.PersistentFlags().StringVar(&prefix, "prefix", "", "route prefix, requests go to /<prefix>/todos (env: KVTODO_PREFIX)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(configureCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// getConfigPath resolves the config file path from flag, env, then default.
func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	if p := clientcli.ConfigPathFromEnv(); p != "" {
		return p
	}
	return clientcli.DefaultConfigPath()
}

// buildConfig merges config from the profile, env vars, and flags (flags take precedence).
func buildConfig() (*clientcli.Config, error) {
	var configs []*clientcli.Config

	name := profileName
	if name == "" {
		name = clientcli.ProfileFromEnv()
	}

	if configPath := getConfigPath(); configPath != "" {
		file, err := clientcli.LoadConfigFile(configPath)
		switch {
		case err == nil:
			p, profileErr := file.Lookup(name)
			if profileErr != nil {
				// An empty file is fine unless a profile was asked for by name.
				if name != "" || !errors.Is(profileErr, clientcli.ErrNoProfiles) {
					return nil, profileErr
				}
			} else {
				configs = append(configs, clientcli.ConfigFromProfile(p))
			}
		case errors.Is(err, os.ErrNotExist) && cfgFile == "" && name == "":
			// No config file at the default location.
		default:
			return nil, err
		}
	}

	configs = append(configs, clientcli.ConfigFromEnv(), &clientcli.Config{
		Endpoint: endpoint,
		Prefix:   prefix,
	})

	return clientcli.MergeConfig(configs...), nil
}

// getFormatter returns the appropriate formatter based on flags.
func getFormatter() clientcli.Formatter {
	return clientcli.NewFormatter(jsonOutput, quiet)
}

// getClient creates and returns a configured client.
func getClient() (*clientcli.Client, error) {
	cfg, err := buildConfig()
	if err != nil {
		return nil, err
	}

	return clientcli.New(cfg)
}

// reportError prints err through the formatter and returns an exitError so
// cobra does not print it a second time.
func reportError(err error) error {
	_ = getFormatter().FormatError(os.Stderr, err)
	return &exitError{code: 1}
}

// exitError is returned when we want to exit with a specific code
// but don't want cobra to print an error message.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return ""
}
