// Package cmd provides the root command and CLI setup for extfix.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"extfix.dev/pkg/extfix/internal/adapter"
	"extfix.dev/pkg/extfix/internal/domain"
	"extfix.dev/pkg/extfix/internal/signature"
)

// Shared dependencies, wired once. The workflow itself is built per scan
// because its reporter depends on runtime flags.
var (
	treeFS   adapter.TreeFS
	sigTable signature.Table
	resolver signature.Resolver
	engine   domain.Engine

	// newWorkflow is a seam for tests to substitute the workflow.
	newWorkflow = domain.NewWorkflow
)

// excludePatterns is a root-level flag that filters files for applicable commands.
var excludePatterns []string

// verboseFlag raises the log level to Debug.
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	treeFS = adapter.NewLocalTreeFS()
	sigTable = signature.DefaultTable()
	resolver = signature.NewResolver()
	engine = domain.NewEngine(treeFS, signature.NewMatcher(sigTable), resolver)
}

const rootLongDescription = `Extfix inspects files on disk, detects their true type from the leading
signature bytes (the "magic number") and compares it with the type their
extension claims. Mismatched files are renamed to carry the extension that
matches their contents; --dry-run reports the corrections without touching
anything.`

const scanLongDescription = `Scan a file or directory tree (default: current working directory).

Each regular file is classified by its signature bytes. Files whose
extension disagrees with the detected type are renamed to the canonical
extension unless --dry-run is set. Unrecognized signatures are never
renamed.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extfix",
		Short: "Correct file extensions to match their binary signatures",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), verboseFlag)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringArrayVarP(&excludePatterns, excludeFlagName, "x",
		viper.GetStringSlice(excludeConfigKey), "exclude files matching regex (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v",
		viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
