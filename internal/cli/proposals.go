package cli

import (
	"github.com/spf13/cobra"

	"github.com/representatives-dao/repms/internal/cli/render"
	"github.com/representatives-dao/repms/internal/domain/models"
	"github.com/representatives-dao/repms/internal/usecase"
)

// NewParametersCmd creates the parameters command
func NewParametersCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "parameters",
		Aliases: []string{"params"},
		Short:   "Show the multisig representatives and governance parameters",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ShowParameters.Run(cmd.Context())
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return render.NewJSONRenderer[*usecase.ParametersResult](cmd.OutOrStdout()).Render(result)
			}
			return render.NewParametersRenderer(cmd.OutOrStdout(), links(app)).Render(result)
		},
	}
}

// NewProposalsCmd creates the proposals command
func NewProposalsCmd() *cobra.Command {
	var (
		status  string
		details bool
	)

	cmd := &cobra.Command{
		Use:     "proposals",
		Aliases: []string{"ls"},
		Short:   "List the multisig proposals",
		Long: `List the multisig proposals grouped by status, newest first.

A proposal is active until it is executed or its expiration time passes.
Active proposals with enough positive votes can be executed.`,
		Example: `  # List every proposal
  repms proposals

  # Only the proposals that can still be voted on, with transfer rows and code
  repms proposals --status active --details`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListProposals.Run(cmd.Context(), usecase.ListProposalsParams{
				Status: models.ProposalStatus(status),
			})
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return render.NewJSONRenderer[*usecase.ProposalListResult](cmd.OutOrStdout()).Render(result)
			}
			return render.NewProposalsRenderer(cmd.OutOrStdout(), links(app), details).RenderList(result)
		},
	}

	cmd.Flags().StringVarP(&status, "status", "s", "", "Only list proposals with this status (active, executed, expired)")
	cmd.Flags().BoolVarP(&details, "details", "d", false, "Show transfer rows and lambda code")

	return cmd
}

// NewShowCmd creates the show command
func NewShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <proposal-id>",
		Short: "Show a proposal with every detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseProposalID(args[0])
			if err != nil {
				return err
			}

			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			view, err := app.ShowProposal.Run(cmd.Context(), id)
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return render.NewJSONRenderer[*usecase.ProposalView](cmd.OutOrStdout()).Render(view)
			}
			var minimumVotes int64
			if snapshot := app.Session.Snapshot(); snapshot != nil {
				minimumVotes = snapshot.Storage.MinimumVotes
			}
			return render.NewProposalsRenderer(cmd.OutOrStdout(), links(app), true).RenderProposal(view, minimumVotes)
		},
	}
}
