// Package cmd provides the root command and CLI setup for rustmut.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"rustmut.dev/pkg/rustmut/internal/adapter"
	"rustmut.dev/pkg/rustmut/internal/controller"
	"rustmut.dev/pkg/rustmut/internal/domain"
	m "rustmut.dev/pkg/rustmut/internal/model"
)

var workflow domain.Workflow
var ui controller.UI

// outputDirFlag is a root-level flag shared by commands that write logs and
// reports.
var outputDirFlag string

// verboseFlag raises the log level to debug when set.
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	env := adapter.NewOSEnvAdapter()
	runner := adapter.NewLocalCommandRunner()
	tool := domain.NewCargoTool(env, runner)
	supervisor := domain.NewSupervisor(adapter.NewLocalProcessAdapter(), ui)
	workflow = domain.NewWorkflow(tool, adapter.NewLocalBuildDirAdapter(), supervisor, ui)
}

const rootLongDescription = `Rustmut drives cargo against a Rust workspace to prepare mutation-testing
runs: it locates the workspace, discovers the source files eligible for
mutation and supervises cargo check/build/test with a hard timeout.

Point it at any directory inside a workspace; the enclosing Cargo.toml is
found automatically.`

const runLongDescription = `Run the baseline for the workspace enclosing the given directory (default:
current directory): snapshot the tree into a scratch build directory and run
cargo check, build and test there, proving the unmutated tree is green.`

const listLongDescription = `List the mutation-eligible source files of the workspace enclosing the given
directory (default: current directory): the entry points of every library and
executable target of every workspace member.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rustmut",
		Short: "Cargo-driving mutation testing tool",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&outputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for run logs",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
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

// dirFromArgs returns the directory argument, defaulting to the current
// directory.
func dirFromArgs(args []string) m.Path {
	if len(args) > 0 {
		return m.Path(args[0])
	}

	return m.Path(".")
}
