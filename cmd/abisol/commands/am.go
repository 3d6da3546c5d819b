package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/abisol/am"
	"github.com/teranos/abisol/errors"
)

// AmCmd represents the am (configuration) command
var AmCmd = &cobra.Command{
	Use:   "am",
	Short: "Manage abisol configuration",
	Long: `am — Manage abisol configuration ("I am")

Configuration sources (in order of precedence):
1. Command line flags
2. Environment variables (ABISOL_* prefix, e.g. ABISOL_GENERATE_LICENSE)
3. Project config (nearest abisol.toml, searching up from the working directory)
4. User config (~/.abisol/am.toml)
5. System config (/etc/abisol/am.toml)
6. Default values

Examples:
  abisol am show                  # Show current configuration
  abisol am show --format json    # Show configuration as JSON
  abisol am show --sources        # Show where each setting came from
  abisol am init --project        # Write ./abisol.toml with defaults
  abisol am validate              # Validate current configuration
  abisol am validate ci.toml      # Validate one file over the defaults`,
}

var amShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runAmShow,
}

var amValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate current configuration, or a single TOML config file",
	Long: `Validate the effective configuration. With a file argument, only that file
is read on top of the defaults; other config files and the environment are
ignored.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAmValidate,
}

var amInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file populated with the current settings",
	Long: `Write the effective configuration to ~/.abisol/am.toml, or to ./abisol.toml
with --project. An existing file is kept as a rotating backup (.back1 to .back3).`,
	RunE: runAmInit,
}

var (
	configFormat  string
	showSources   bool
	initProject   bool
	initOverwrite bool
)

func init() {
	amShowCmd.Flags().StringVar(&configFormat, "format", am.FormatTOML, "Output format: toml, json, yaml")
	amShowCmd.Flags().BoolVar(&showSources, "sources", false, "Show the source of every setting")
	amInitCmd.Flags().BoolVar(&initProject, "project", false, "Write ./abisol.toml instead of the user config")
	amInitCmd.Flags().BoolVarP(&initOverwrite, "force", "f", false, "Replace an existing file")

	AmCmd.AddCommand(amShowCmd)
	AmCmd.AddCommand(amValidateCmd)
	AmCmd.AddCommand(amInitCmd)
}

func runAmShow(cmd *cobra.Command, args []string) error {
	if showSources {
		return showConfigSources(cmd)
	}

	cfg, err := am.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	data, err := am.Marshal(cfg, configFormat)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if configFormat != am.FormatJSON {
		fmt.Fprintln(out, "# abisol configuration")
	}
	fmt.Fprintln(out, string(data))
	return nil
}

func showConfigSources(cmd *cobra.Command) error {
	settings, err := am.Introspect()
	if err != nil {
		return err
	}

	table := pterm.TableData{{"Key", "Value", "Source", "From"}}
	for _, s := range settings {
		table = append(table, []string{s.Key, fmt.Sprint(s.Value), string(s.Source), s.SourcePath})
	}
	return pterm.DefaultTable.WithHasHeader().WithWriter(cmd.OutOrStdout()).WithData(table).Render()
}

func runAmValidate(cmd *cobra.Command, args []string) error {
	subject := "Configuration"
	var cfg *am.Config
	var err error
	if len(args) == 1 {
		subject = args[0]
		cfg, err = am.LoadFromFile(args[0])
	} else {
		cfg, err = am.Load()
	}
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	if err := cfg.Validate(); err != nil {
		return errors.Wrapf(err, "%s: validation failed", subject)
	}

	pterm.Success.WithWriter(cmd.OutOrStdout()).Printf("%s is valid\n", subject)
	return nil
}

func runAmInit(cmd *cobra.Command, args []string) error {
	path := am.UserConfigPath()
	if initProject {
		wd, err := os.Getwd()
		if err != nil {
			return errors.Wrap(err, "failed to get working directory")
		}
		path = filepath.Join(wd, am.ProjectConfigFile)
	}
	if path == "" {
		return errors.New("could not determine home directory")
	}

	if _, err := os.Stat(path); err == nil && !initOverwrite {
		return errors.WithHint(
			errors.Newf("%s already exists", path),
			"pass --force to replace it (the old file is kept as .back1)",
		)
	}

	cfg, err := am.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "refusing to write invalid configuration")
	}

	if err := am.WriteFile(cfg, path); err != nil {
		return err
	}
	pterm.Success.Printf("Wrote %s\n", path)
	return nil
}
