package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/representatives-dao/repms/internal/adapters/progress"
	"github.com/representatives-dao/repms/internal/app"
	"github.com/representatives-dao/repms/internal/cli/render"
	"github.com/representatives-dao/repms/internal/config"
	"github.com/representatives-dao/repms/internal/usecase"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// globalFlags maps persistent flags to their viper keys
var globalFlags = map[string]string{
	"debug":           "debug",
	"non-interactive": "non_interactive",
	"json":            "json",
	"dry-run":         "dry_run",
	"network":         "network",
	"contract":        "contract",
	"account":         "account",
	"signer":          "signer",
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "repms",
		Short: "Governance CLI for the community representatives multisig",
		Long: `repms reads and drives the representatives multisig contract on Tezos.

Community representatives create proposals (text, tez and token transfers,
lambda functions, representative and parameter changes), vote on them and
execute them once they gather enough positive votes. Contract state is read
from TzKT and operations are signed and sent with octez-client.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			projectRoot, err := config.FindProjectRoot()
			if err != nil {
				return err
			}

			v := config.SetupViper(projectRoot)
			bindGlobalFlags(v, cmd)

			appInstance, err := app.InitApp(v, newProgressSink(v))
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			// Store app in context
			ctx := context.WithValue(cmd.Context(), appKey, appInstance)

			// Add timeout if configured
			if appInstance.Config.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
				// Store cancel func to be called on command completion
				cmd.PostRun = func(cmd *cobra.Command, args []string) {
					cancel()
				}
			}

			cmd.SetContext(ctx)

			return nil
		},
	}

	// --dry_run and --dry-run are the same flag, matching the viper keys
	rootCmd.SetGlobalNormalizationFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	// Global flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	rootCmd.PersistentFlags().Bool("dry-run", false, "Print the octez-client command instead of sending operations")
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network to use (e.g., mainnet, ghostnet)")
	rootCmd.PersistentFlags().String("contract", "", "Representatives contract address")
	rootCmd.PersistentFlags().StringP("account", "a", "", "Address of the representative using the tool")
	rootCmd.PersistentFlags().String("signer", "", "octez-client alias or address signing operations (defaults to --account)")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Governance Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	for _, cmd := range []*cobra.Command{
		NewParametersCmd(),
		NewProposalsCmd(),
		NewShowCmd(),
		NewProposeCmd(),
		NewVoteCmd(),
		NewExecuteCmd(),
	} {
		cmd.GroupID = "main"
		rootCmd.AddCommand(cmd)
	}

	for _, cmd := range []*cobra.Command{
		NewUploadCmd(),
		NewConfigCmd(),
	} {
		cmd.GroupID = "management"
		rootCmd.AddCommand(cmd)
	}

	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// Execute runs the root command and prints errors the way the commands print notices
func Execute() int {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), render.FormatError(err.Error()))
		return 1
	}
	return 0
}

// bindGlobalFlags binds command flags to viper
func bindGlobalFlags(v *viper.Viper, cmd *cobra.Command) {
	// Only bind flags that exist and have been changed
	for flag, key := range globalFlags {
		if f := cmd.Flag(flag); f != nil && f.Changed {
			v.Set(key, f.Value.String())
		}
	}
}

// newProgressSink shows spinners unless the output is meant for another program
func newProgressSink(v *viper.Viper) usecase.ProgressSink {
	if v.GetBool("json") || v.GetBool("non_interactive") {
		return progress.NewNopSink()
	}
	return progress.NewSpinnerSink()
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}

// links builds the URL helper for the configured network
func links(a *app.App) render.Links {
	return render.NewLinks(a.Config.Network, a.Config.IPFS.Gateway)
}
