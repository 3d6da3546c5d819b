package main

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/abisol/am"
	"github.com/teranos/abisol/cmd/abisol/commands"
	"github.com/teranos/abisol/errors"
	"github.com/teranos/abisol/logger"
)

var rootCmd = &cobra.Command{
	Use:   "abisol",
	Short: "abisol - Solidity interfaces from contract ABIs",
	Long: `abisol - Generate Solidity interfaces from contract ABIs.

The generated interface compiles under every Solidity version in the
requested range. When no single spelling works across the whole range,
abisol fails and explains which feature is ambiguous.

Available commands:
  generate - Generate an interface from an ABI file or stdin
  features - Show how a version range resolves each syntax feature
  am       - Manage abisol configuration ("I am")
  version  - Show version information

Examples:
  abisol generate IERC20.json -N IERC20 -V "^0.8.0"
  abisol features ">=0.6.0 <0.9.0"
  abisol am show`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := commands.BindFlags(cmd.Flags()); err != nil {
			return errors.Wrap(err, "failed to bind flags")
		}

		cfg, err := am.Load()
		if err != nil {
			return errors.Wrap(err, "failed to load config")
		}

		// Logs go to stderr; stdout carries generated source
		if err := logger.Initialize(cfg.Log.JSON, cfg.Log.Verbosity); err != nil {
			return errors.Wrap(err, "failed to initialize logger")
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase log verbosity on stderr (-v info, -vv debug)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON")

	rootCmd.AddCommand(commands.GenerateCmd)
	rootCmd.AddCommand(commands.FeaturesCmd)
	rootCmd.AddCommand(commands.AmCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		pterm.Error.WithWriter(os.Stderr).Println(err)
		for _, hint := range errors.GetAllHints(err) {
			pterm.Info.WithWriter(os.Stderr).Println(hint)
		}
		os.Exit(1)
	}
}
