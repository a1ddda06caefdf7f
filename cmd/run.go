package cmd

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"rustmut.dev/pkg/rustmut/internal/domain"
	m "rustmut.dev/pkg/rustmut/internal/model"
)

var runTimeoutFlag int64
var runPackageFlag string
var runCargoArgsFlag []string
var runCargoTestArgsFlag []string

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [dir]",
		Short: "Run the baseline cargo phases",
		Long:  runLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Ctrl-C cancels the context; the supervisor turns that into an
			// Interrupted outcome at its next poll point.
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			options := m.Options{
				CargoArgs:     viper.GetStringSlice(cargoArgsConfigKey),
				CargoTestArgs: viper.GetStringSlice(cargoTestArgsConfigKey),
			}

			err := workflow.Baseline(ctx, domain.BaselineArgs{
				Dir:     dirFromArgs(args),
				Package: runPackageFlag,
				Options: options,
				Timeout: phaseTimeout(),
				Output:  m.Path(viper.GetString(outputFlagName)),
			})
			if errors.Is(err, domain.ErrInterrupted) {
				return errors.New("interrupted")
			}

			return err
		},
	}

	configureRunFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func configureRunFlags(cmd *cobra.Command) {
	cmd.Flags().Int64VarP(&runTimeoutFlag, timeoutFlagName, "t", viper.GetInt64(timeoutConfigKey), "timeout in seconds for each cargo phase")
	bindFlagToConfig(cmd.Flags().Lookup(timeoutFlagName), timeoutConfigKey)

	cmd.Flags().StringVarP(&runPackageFlag, packageFlagName, "p", "", "restrict cargo to one package (default: whole workspace)")

	cmd.Flags().StringArrayVar(&runCargoArgsFlag, cargoArgFlagName, viper.GetStringSlice(cargoArgsConfigKey), "extra argument for every cargo invocation (can be repeated)")
	bindFlagToConfig(cmd.Flags().Lookup(cargoArgFlagName), cargoArgsConfigKey)

	cmd.Flags().StringArrayVar(&runCargoTestArgsFlag, cargoTestArgFlagName, viper.GetStringSlice(cargoTestArgsConfigKey), "extra argument for cargo test only (can be repeated)")
	bindFlagToConfig(cmd.Flags().Lookup(cargoTestArgFlagName), cargoTestArgsConfigKey)
}
