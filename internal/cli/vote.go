package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/representatives-dao/repms/internal/app"
	"github.com/representatives-dao/repms/internal/cli/render"
	"github.com/representatives-dao/repms/internal/domain/models"
	"github.com/representatives-dao/repms/internal/usecase"
)

// NewVoteCmd creates the vote command
func NewVoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vote [proposal-id] [yes|no]",
		Short: "Vote on active proposals for your community",
		Long: `Vote on active proposals for your community.

Without arguments the active proposals are listed to pick from, and the
vote on each of them is asked for. A community can change its vote while
the proposal is active.`,
		Example: `  repms vote 12 yes
  repms vote 12
  repms vote`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				a, err := getApp(cmd)
				if err != nil {
					return err
				}
				return voteInteractively(cmd, a)
			}

			id, err := parseProposalID(args[0])
			if err != nil {
				return err
			}

			a, err := getApp(cmd)
			if err != nil {
				return err
			}

			var approval bool
			if len(args) == 2 {
				approval, err = parseApproval(args[1])
			} else {
				approval, err = a.Selector.SelectApproval(cmd.Context(), fmt.Sprintf("Approve proposal #%d?", id))
			}
			if err != nil {
				return err
			}

			return castVote(cmd, a, id, approval)
		},
	}
}

func voteInteractively(cmd *cobra.Command, a *app.App) error {
	list, err := a.ListProposals.Run(cmd.Context(), usecase.ListProposalsParams{Status: models.ProposalStatusActive})
	if err != nil {
		return err
	}
	if len(list.Active) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No active proposals to vote on")
		return nil
	}

	selected, err := a.Selector.SelectProposals(cmd.Context(), list.Active)
	if err != nil {
		return err
	}

	for _, view := range selected {
		approval, err := a.Selector.SelectApproval(cmd.Context(),
			fmt.Sprintf("Approve proposal #%d to %s", view.Proposal.ID, view.Description.Summary))
		if err != nil {
			return err
		}
		if err := castVote(cmd, a, view.Proposal.ID, approval); err != nil {
			return err
		}
	}
	return nil
}

func castVote(cmd *cobra.Command, a *app.App, id int64, approval bool) error {
	result, err := a.VoteProposal.Run(cmd.Context(), usecase.VoteProposalParams{
		ProposalID: id,
		Approval:   approval,
	})
	if err != nil {
		return err
	}

	if a.Config.JSON {
		return render.NewJSONRenderer[*usecase.VoteProposalResult](cmd.OutOrStdout()).Render(result)
	}
	return render.NewOperationRenderer(cmd.OutOrStdout(), links(a)).RenderVote(result)
}

// NewExecuteCmd creates the execute command
func NewExecuteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "execute <proposal-id>",
		Short: "Execute an active proposal with enough positive votes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseProposalID(args[0])
			if err != nil {
				return err
			}

			a, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := a.ExecuteProposal.Run(cmd.Context(), usecase.ExecuteProposalParams{ProposalID: id})
			if err != nil {
				return err
			}

			if a.Config.JSON {
				return render.NewJSONRenderer[*usecase.ExecuteProposalResult](cmd.OutOrStdout()).Render(result)
			}
			return render.NewOperationRenderer(cmd.OutOrStdout(), links(a)).RenderExecute(result)
		},
	}
}

// NewUploadCmd creates the upload command
func NewUploadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a document to IPFS for a text proposal",
		Long: `Upload a document to IPFS through Pinata.

The Pinata keys are read from PINATA_API_KEY and PINATA_SECRET_API_KEY, which
can be set in .env, or from the [ipfs] section of repms.toml.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := a.UploadFile.Run(cmd.Context(), usecase.UploadFileParams{Path: args[0]})
			if err != nil {
				return err
			}

			if a.Config.JSON {
				return render.NewJSONRenderer[*usecase.UploadFileResult](cmd.OutOrStdout()).Render(result)
			}
			return render.NewOperationRenderer(cmd.OutOrStdout(), links(a)).RenderUpload(result)
		},
	}
}
