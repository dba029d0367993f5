package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"extfix.dev/pkg/extfix/internal/controller"
	"extfix.dev/pkg/extfix/internal/domain"
	m "extfix.dev/pkg/extfix/internal/model"
)

var (
	dryRunFlag      bool
	silentFlag      bool
	onlyDiffFlag    bool
	showHiddenFlag  bool
	maxDepthFlag    int
	colorFlag       bool
	parallelFlag    int
	interactiveFlag bool
)

// scanCmd represents the scan command.
var scanCmd = newScanCmd()

func newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Scan files and fix mismatched extensions",
		Long:  scanLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}

			ui := buildScanUI(cmd)
			workflow := newWorkflow(treeFS, engine, ui)

			_, err := workflow.Scan(cmd.Context(), domain.ScanArgs{
				Root:       m.Path(root),
				MaxDepth:   viper.GetInt(scanMaxDepthConfigKey),
				SkipHidden: !viper.GetBool(scanShowHiddenKey),
				DryRun:     viper.GetBool(scanDryRunConfigKey),
				Exclude:    viper.GetStringSlice(excludeConfigKey),
				Workers:    viper.GetInt(scanParallelConfigKey),
			})

			return err
		},
	}

	configureScanFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func configureScanFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&dryRunFlag, dryRunFlagName, viper.GetBool(scanDryRunConfigKey), "report corrections without renaming anything")
	bindFlagToConfig(cmd.Flags().Lookup(dryRunFlagName), scanDryRunConfigKey)

	cmd.Flags().BoolVarP(&silentFlag, silentFlagName, "s", viper.GetBool(scanSilentConfigKey), "suppress per-file output")
	bindFlagToConfig(cmd.Flags().Lookup(silentFlagName), scanSilentConfigKey)

	cmd.Flags().BoolVarP(&onlyDiffFlag, onlyDiffFlagName, "d", viper.GetBool(scanOnlyDiffConfigKey), "only print files whose extension differs")
	bindFlagToConfig(cmd.Flags().Lookup(onlyDiffFlagName), scanOnlyDiffConfigKey)

	cmd.Flags().BoolVarP(&interactiveFlag, interactiveFlagName, "i", viper.GetBool(scanInteractiveConfigKey), "page the report in an interactive viewer")
	bindFlagToConfig(cmd.Flags().Lookup(interactiveFlagName), scanInteractiveConfigKey)

	cmd.Flags().BoolVarP(&showHiddenFlag, showHiddenFlagName, "a", viper.GetBool(scanShowHiddenKey), "do not skip hidden files and directories")
	bindFlagToConfig(cmd.Flags().Lookup(showHiddenFlagName), scanShowHiddenKey)

	cmd.Flags().IntVarP(&maxDepthFlag, maxDepthFlagName, "m", viper.GetInt(scanMaxDepthConfigKey), "max directory depth to descend into (-1 = unlimited)")
	bindFlagToConfig(cmd.Flags().Lookup(maxDepthFlagName), scanMaxDepthConfigKey)

	cmd.Flags().BoolVarP(&colorFlag, colorFlagName, "c", viper.GetBool(scanColorConfigKey), "colorize the report")
	bindFlagToConfig(cmd.Flags().Lookup(colorFlagName), scanColorConfigKey)

	cmd.Flags().IntVarP(&parallelFlag, parallelFlagName, "p", viper.GetInt(scanParallelConfigKey), "number of parallel classification workers")
	bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), scanParallelConfigKey)
}

func buildScanUI(cmd *cobra.Command) controller.UI {
	opts := controller.Options{
		Silent:   viper.GetBool(scanSilentConfigKey),
		OnlyDiff: viper.GetBool(scanOnlyDiffConfigKey),
		Colored:  viper.GetBool(scanColorConfigKey),
	}

	if viper.GetBool(scanInteractiveConfigKey) && controller.IsTTY(os.Stdout) {
		return controller.NewTUI(cmd.OutOrStdout(), opts)
	}

	return controller.NewSimpleUI(cmd, opts)
}
