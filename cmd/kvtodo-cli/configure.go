package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/sagarc03/kvtodo/clientcli"
	"github.com/spf13/cobra"
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Manage server profiles",
	Long: `Manage named server profiles stored in ~/.kvtodo/config.yaml.

Pick a profile per command with --profile or KVTODO_PROFILE. Without one,
the default profile is used.`,
}

func init() {
	configureCmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List profiles, marking the default with *",
			Args:  cobra.NoArgs,
			RunE:  runConfigureList,
		},
		&cobra.Command{
			Use:   "add <name>",
			Short: "Add or replace a profile interactively",
			Long: `Prompt for the endpoint URL and route prefix of a profile, check that
the server answers, then save it. An existing profile of the same name is
replaced after confirmation.`,
			Args: cobra.ExactArgs(1),
			RunE: runConfigureAdd,
		},
		&cobra.Command{
			Use:     "remove <name>",
			Aliases: []string{"rm"},
			Short:   "Remove a profile",
			Args:    cobra.ExactArgs(1),
			RunE:    runConfigureRemove,
		},
		&cobra.Command{
			Use:   "set-default <name>",
			Short: "Set the default profile",
			Args:  cobra.ExactArgs(1),
			RunE:  runConfigureSetDefault,
		},
		&cobra.Command{
			Use:   "show [name]",
			Short: "Show a profile, the default one when no name is given",
			Args:  cobra.MaximumNArgs(1),
			RunE:  runConfigureShow,
		},
	)
}

// openProfiles loads the config file. A missing file yields an empty one
// when allowMissing is set.
func openProfiles(allowMissing bool) (*clientcli.ConfigFile, string, error) {
	path := getConfigPath()
	file, err := clientcli.LoadConfigFile(path)
	switch {
	case err == nil:
		return file, path, nil
	case allowMissing && errors.Is(err, os.ErrNotExist):
		return &clientcli.ConfigFile{}, path, nil
	default:
		return nil, path, fmt.Errorf("load config: %w", err)
	}
}

func saveProfiles(file *clientcli.ConfigFile, path, done string) error {
	if err := file.Save(path); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	fmt.Println(done)
	return nil
}

func runConfigureList(_ *cobra.Command, _ []string) error {
	file, _, err := openProfiles(true)
	if err != nil {
		return err
	}

	if len(file.Profiles) == 0 {
		fmt.Println("No profiles configured.")
		fmt.Println("Run 'kvtodo-cli configure add <name>' to create one.")
		return nil
	}

	return getFormatter().FormatProfileList(os.Stdout, file.Profiles, file.DefaultName())
}

func runConfigureAdd(cmd *cobra.Command, args []string) error {
	name := args[0]

	file, path, err := openProfiles(true)
	if err != nil {
		return err
	}

	if _, lookupErr := file.Lookup(name); lookupErr == nil &&
		!confirm(fmt.Sprintf("Profile '%s' exists. Replace it", name)) {
		fmt.Println("Cancelled.")
		return nil
	}

	p, err := promptProfile(name)
	if err != nil {
		return handlePromptError(err)
	}
	p.Default = len(file.Profiles) == 0 || confirm("Set as default profile")

	fmt.Print("Testing connection... ")
	if connErr := testServerConnection(cmd.Context(), p); connErr != nil {
		fmt.Printf("FAILED: %v\n", connErr)
		if !confirm("Save profile anyway") {
			fmt.Println("Cancelled.")
			return nil
		}
	} else {
		fmt.Println("OK")
	}

	verb := "added"
	if file.Put(p) {
		verb = "replaced"
	}
	done := fmt.Sprintf("Profile '%s' %s.", name, verb)
	if p.Default {
		done += " It is now the default."
	}
	return saveProfiles(file, path, done)
}

// promptProfile asks for the connection settings of profile name.
func promptProfile(name string) (clientcli.Profile, error) {
	endpointURL, err := (&promptui.Prompt{
		Label:   "Endpoint URL",
		Default: clientcli.DefaultEndpoint,
		Validate: func(input string) error {
			if input == "" {
				return errors.New("endpoint URL is required")
			}
			return clientcli.ValidateEndpoint(input)
		},
	}).Run()
	if err != nil {
		return clientcli.Profile{}, err
	}

	routePrefix, err := (&promptui.Prompt{
		Label: "Route prefix (empty for /todos)",
		Validate: func(input string) error {
			return (&clientcli.Config{Prefix: input}).Validate()
		},
	}).Run()
	if err != nil {
		return clientcli.Profile{}, err
	}

	return clientcli.Profile{
		Name:     name,
		Endpoint: strings.TrimSuffix(endpointURL, "/"),
		Prefix:   strings.Trim(routePrefix, "/"),
	}, nil
}

func runConfigureRemove(_ *cobra.Command, args []string) error {
	name := args[0]

	file, path, err := openProfiles(false)
	if err != nil {
		return err
	}

	if _, err := file.Lookup(name); err != nil {
		return err
	}
	if !confirm(fmt.Sprintf("Remove profile '%s'", name)) {
		fmt.Println("Cancelled.")
		return nil
	}

	if err := file.Remove(name); err != nil {
		return err
	}
	return saveProfiles(file, path, fmt.Sprintf("Profile '%s' removed.", name))
}

func runConfigureSetDefault(_ *cobra.Command, args []string) error {
	name := args[0]

	file, path, err := openProfiles(false)
	if err != nil {
		return err
	}

	if err := file.SetDefault(name); err != nil {
		return err
	}
	return saveProfiles(file, path, fmt.Sprintf("Default profile set to '%s'.", name))
}

func runConfigureShow(_ *cobra.Command, args []string) error {
	file, _, err := openProfiles(false)
	if err != nil {
		return err
	}

	name := ""
	if len(args) > 0 {
		name = args[0]
	}

	p, err := file.Lookup(name)
	if err != nil {
		return err
	}

	return getFormatter().FormatProfileShow(os.Stdout, *p, p.Name == file.DefaultName())
}

// confirm asks a yes/no question. Anything but yes, including Ctrl+C, is no.
func confirm(label string) bool {
	_, err := (&promptui.Prompt{Label: label, IsConfirm: true}).Run()
	return err == nil
}

// testServerConnection checks that the profile's server answers HTTP.
func testServerConnection(ctx context.Context, p clientcli.Profile) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	client, err := clientcli.New(clientcli.ConfigFromProfile(&p), clientcli.WithTimeout(5*time.Second))
	if err != nil {
		return err
	}

	return client.Ping(ctx)
}

// handlePromptError turns an interrupted or aborted prompt into a clean exit.
func handlePromptError(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrAbort) {
		fmt.Println("Cancelled.")
		return nil
	}
	return err
}
