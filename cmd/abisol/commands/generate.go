package commands

import (
	"context"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/abisol/abi"
	"github.com/teranos/abisol/am"
	"github.com/teranos/abisol/errors"
	"github.com/teranos/abisol/internal/source"
	"github.com/teranos/abisol/internal/watch"
	"github.com/teranos/abisol/logger"
	"github.com/teranos/abisol/solidity"
	"github.com/teranos/abisol/solidity/format"
)

// GenerateCmd turns an ABI into a Solidity interface
var GenerateCmd = &cobra.Command{
	Use:   "generate [abi.json]",
	Short: "Generate a Solidity interface from an ABI",
	Long: `Generate a Solidity interface equivalent to a contract ABI.

The ABI is read from the given file or URL (anything go-getter can fetch:
https, s3::, gcs::, git::), or from stdin when the argument is omitted or
"-". Both bare ABI arrays and compiler artifacts with an "abi" field are
accepted. The output compiles under every Solidity version in
--solidity-version, or generation fails with an explanation.

Examples:
  abisol generate IERC20.json -N IERC20 -V "^0.8.0"
  cat artifact.json | abisol generate -V ">=0.6.0 <0.8.0" -o IVault.sol
  abisol generate Pool.json -o IPool.sol --prettify --watch
  abisol generate https://example.com/out/Vault.json -N IVault`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

var (
	generateOutput string
	generateWatch  bool
)

func init() {
	flags := GenerateCmd.Flags()
	flags.StringP("name", "N", solidity.DefaultName, "Interface name")
	flags.StringP("solidity-version", "V", solidity.DefaultSolidityVersion, "Solidity version range the output must compile under")
	flags.StringP("license", "L", solidity.DefaultLicense, "SPDX license identifier")
	flags.String("shim-container", "", "Interface holding structs that have no container")
	flags.Bool("strict", false, "Reject ABIs that go-ethereum cannot parse")
	flags.Bool("prettify", false, "Format the output")
	flags.String("formatter", "", "External formatter command reading source on stdin; implies --prettify (default: built-in indenter)")
	flags.StringVarP(&generateOutput, "output", "o", "", "Write to file instead of stdout")
	flags.BoolVarP(&generateWatch, "watch", "w", false, "Regenerate whenever the input file changes (requires --output)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := am.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}

	input := source.Stdin
	if len(args) == 1 {
		input = args[0]
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !generateWatch {
		return generateFile(ctx, cfg, input, generateOutput, cmd.InOrStdin(), cmd.OutOrStdout())
	}

	if input == source.Stdin || source.IsRemote(input) || generateOutput == "" {
		return errors.WithHint(
			errors.New("--watch needs a local input file and --output"),
			"abisol generate Token.json -o IToken.sol --watch",
		)
	}

	// Generate once up front; failures while watching are reported and the
	// previous output is left in place
	if err := generateFile(ctx, cfg, input, generateOutput, nil, nil); err != nil {
		reportError(err)
	}

	return watchInput(ctx, cfg, input, generateOutput)
}

func watchInput(ctx context.Context, cfg *am.Config, input, output string) error {
	w, err := watch.New([]string{input}, func(string) error {
		start := time.Now()
		if err := generateFile(ctx, cfg, input, output, nil, nil); err != nil {
			reportError(err)
			return nil
		}
		pterm.Success.Printf("Regenerated %s in %s\n", output, time.Since(start).Round(time.Millisecond))
		return nil
	})
	if err != nil {
		return err
	}

	pterm.Info.Printf("Watching %s (Ctrl+C to stop)\n", input)
	return w.Start(ctx)
}

func reportError(err error) {
	pterm.Error.Println(err)
	for _, hint := range errors.GetAllHints(err) {
		pterm.Info.Println(hint)
	}
}

// generateFile reads input ("-" for stdin), generates, and writes to output
// ("" for stdout). Output files are only written on success.
func generateFile(ctx context.Context, cfg *am.Config, input, output string, stdin io.Reader, stdout io.Writer) error {
	data, err := readInput(ctx, input, stdin)
	if err != nil {
		return err
	}

	generated, err := Generate(cfg, data)
	if err != nil {
		if input != source.Stdin {
			return errors.Wrapf(err, "%s", input)
		}
		return err
	}

	if output == "" {
		if stdout == nil {
			stdout = os.Stdout
		}
		_, err := io.WriteString(stdout, generated)
		return err
	}

	if err := os.MkdirAll(filepath.Dir(output), am.DefaultDirPermissions); err != nil {
		return errors.Wrapf(err, "failed to create directory for %s", output)
	}
	if err := os.WriteFile(output, []byte(generated), am.DefaultFilePermissions); err != nil {
		return errors.Wrapf(err, "failed to write %s", output)
	}
	logger.Infow("Wrote interface",
		logger.FieldFile, output,
		logger.FieldInterface, cfg.Generate.Name,
		logger.FieldSize, len(generated))
	return nil
}

// Generate runs the generator over raw ABI JSON using cfg
func Generate(cfg *am.Config, data []byte) (string, error) {
	entries, err := abi.Parse(data)
	if err != nil {
		return "", err
	}

	if cfg.Generate.Strict {
		if err := abi.Validate(entries); err != nil {
			return "", err
		}
	}

	opts := solidity.Options{
		Name:            cfg.Generate.Name,
		SolidityVersion: cfg.Generate.SolidityVersion,
		License:         cfg.Generate.License,
		ShimContainer:   cfg.Generate.ShimContainer,
		Prettify:        cfg.Format.Prettify || cfg.HasFormatter(),
	}

	// A configured formatter command implies prettify
	if cfg.HasFormatter() {
		formatter, err := format.Command(cfg.Format.Command)
		if err != nil {
			return "", errors.Wrap(err, "format.command")
		}
		opts.Formatter = formatter
		logger.Debugw("Using external formatter",
			logger.FieldFormatter, cfg.Format.Command)
	}

	return solidity.Generate(entries, opts)
}

func readInput(ctx context.Context, input string, stdin io.Reader) ([]byte, error) {
	if input != source.Stdin {
		return source.Read(ctx, input)
	}

	if stdin == nil {
		stdin = os.Stdin
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read stdin")
	}
	return data, nil
}
