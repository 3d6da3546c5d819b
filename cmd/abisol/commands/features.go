package commands

import (
	"encoding/json"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/abisol/am"
	"github.com/teranos/abisol/errors"
	"github.com/teranos/abisol/solidity/features"
)

// FeaturesCmd shows how a version range resolves each syntax feature
var FeaturesCmd = &cobra.Command{
	Use:   "features [range]",
	Short: "Show which Solidity syntax features hold across a version range",
	Long: `Resolve every version-dependent syntax feature for a Solidity version range.

A feature is "definite" when every version in the range agrees, "mixed" when
the range straddles a change, and "not-applicable" when nothing in the range
assigns it a value. Generation fails only if it needs a mixed feature.

Defaults to generate.solidity_version from the configuration.

Examples:
  abisol features "^0.8.0"
  abisol features ">=0.5.0 <0.9.0" --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFeatures,
}

var featuresJSON bool

func init() {
	FeaturesCmd.Flags().BoolVarP(&featuresJSON, "json", "j", false, "Output as JSON")
}

// FeatureRow is one resolved feature
type FeatureRow struct {
	Feature string `json:"feature"`
	State   string `json:"state"`
	Value   string `json:"value"`
}

func runFeatures(cmd *cobra.Command, args []string) error {
	versionRange := ""
	if len(args) == 1 {
		versionRange = args[0]
	} else {
		cfg, err := am.Load()
		if err != nil {
			return errors.Wrap(err, "failed to load config")
		}
		versionRange = cfg.Generate.SolidityVersion
	}

	rows, err := FeatureRows(versionRange)
	if err != nil {
		return err
	}

	if featuresJSON {
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return errors.Wrap(err, "failed to marshal features")
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	table := pterm.TableData{{"Feature", "State", "Value"}}
	for _, r := range rows {
		state := r.State
		if state == features.Mixed.String() {
			state = pterm.Yellow(state)
		}
		table = append(table, []string{r.Feature, state, r.Value})
	}

	pterm.DefaultSection.Println("Solidity " + versionRange)
	return pterm.DefaultTable.WithHasHeader().WithWriter(cmd.OutOrStdout()).WithData(table).Render()
}

// FeatureRows resolves versionRange into one row per feature, sorted by name
func FeatureRows(versionRange string) ([]FeatureRow, error) {
	resolved, err := features.Resolve(versionRange)
	if err != nil {
		return nil, err
	}

	rows := make([]FeatureRow, 0, len(resolved))
	for _, name := range resolved.Names() {
		v := resolved.Get(name)
		rows = append(rows, FeatureRow{
			Feature: string(name),
			State:   v.State().String(),
			Value:   v.String(),
		})
	}
	return rows, nil
}
