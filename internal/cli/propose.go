package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/representatives-dao/repms/internal/cli/render"
	"github.com/representatives-dao/repms/internal/codec"
	"github.com/representatives-dao/repms/internal/usecase"
)

// NewProposeCmd creates the propose command and one subcommand per proposal kind
func NewProposeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "propose",
		Short: "Create a proposal",
		Long: `Create a proposal in the representatives multisig.

Only community representatives can create proposals. The proposal is
validated against the current contract state before octez-client is asked
to sign and send it. Use --dry-run to print the command instead.`,
	}

	cmd.AddCommand(
		newProposeTextCmd(),
		newProposeTransferTezCmd(),
		newProposeTransferTokenCmd(),
		newProposeLambdaCmd(),
		newProposeAddRepresentativeCmd(),
		newProposeRemoveRepresentativeCmd(),
		newProposeMinimumVotesCmd(),
		newProposeExpirationTimeCmd(),
	)
	return cmd
}

// runPropose creates a proposal from an input and renders the result
func runPropose(cmd *cobra.Command, input codec.Input) error {
	app, err := getApp(cmd)
	if err != nil {
		return err
	}

	result, err := app.CreateProposal.Run(cmd.Context(), usecase.CreateProposalParams{Input: input})
	if err != nil {
		return err
	}

	if app.Config.JSON {
		return render.NewJSONRenderer[*usecase.CreateProposalResult](cmd.OutOrStdout()).Render(result)
	}
	return render.NewOperationRenderer(cmd.OutOrStdout(), links(app)).RenderCreate(result)
}

func newProposeTextCmd() *cobra.Command {
	var (
		file     string
		ipfsPath string
	)

	cmd := &cobra.Command{
		Use:   "text",
		Short: "Propose to approve a text document stored on IPFS",
		Example: `  # Upload a document to IPFS and propose it
  repms propose text --file proposal.md

  # Propose a document that is already on IPFS
  repms propose text --ipfs-path QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (file == "") == (ipfsPath == "") {
				return fmt.Errorf("provide either --file or --ipfs-path")
			}

			if file != "" {
				app, err := getApp(cmd)
				if err != nil {
					return err
				}
				if err := app.CreateProposal.CheckIssuer(cmd.Context()); err != nil {
					return err
				}
				uploaded, err := app.UploadFile.Run(cmd.Context(), usecase.UploadFileParams{Path: file})
				if err != nil {
					return err
				}
				ipfsPath = uploaded.IPFSPath
			}

			return runPropose(cmd, codec.TextInput{IPFSPath: ipfsPath})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Document to upload to IPFS")
	cmd.Flags().StringVar(&ipfsPath, "ipfs-path", "", "IPFS path of an uploaded document")

	return cmd
}

func newProposeTransferTezCmd() *cobra.Command {
	var (
		to   []string
		file string
	)

	cmd := &cobra.Command{
		Use:   "transfer-tez",
		Short: "Propose to transfer tez from the multisig",
		Example: `  repms propose transfer-tez --to tz1VSUr8wwNhLAzempoch5d6hLRiTh8Cjcjb=12.5
  repms propose transfer-tez --file transfers.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			transfers, err := collectTransfers(to, file)
			if err != nil {
				return err
			}
			return runPropose(cmd, codec.TransferMutezInput{Transfers: transfers})
		},
	}

	cmd.Flags().StringArrayVar(&to, "to", nil, "Transfer as <address>=<amount in tez>, repeatable")
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML file with a list of {destination, amount} transfers")

	return cmd
}

func newProposeTransferTokenCmd() *cobra.Command {
	var (
		fa2     string
		tokenID string
		to      []string
		file    string
	)

	cmd := &cobra.Command{
		Use:   "transfer-token",
		Short: "Propose to transfer FA2 tokens from the multisig",
		Long: `Propose to transfer FA2 tokens from the multisig.

Amounts are in display units: they are scaled by the token decimals when the
token is known, and taken as base units otherwise.`,
		Example: `  repms propose transfer-token --fa2 KT1QrtA753MSv8VGxkDrKKyJniG5JtuHHbtV --token-id 0 \
    --to tz1VSUr8wwNhLAzempoch5d6hLRiTh8Cjcjb=100`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			transfers, err := collectTransfers(to, file)
			if err != nil {
				return err
			}
			return runPropose(cmd, codec.TransferTokenInput{
				TokenContract: fa2,
				TokenID:       tokenID,
				Transfers:     transfers,
			})
		},
	}

	cmd.Flags().StringVar(&fa2, "fa2", "", "FA2 token contract address")
	cmd.Flags().StringVar(&tokenID, "token-id", "0", "Token id")
	cmd.Flags().StringArrayVar(&to, "to", nil, "Transfer as <address>=<amount>, repeatable")
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML file with a list of {destination, amount} transfers")

	return cmd
}

func newProposeLambdaCmd() *cobra.Command {
	var (
		code     string
		codeFile string
	)

	cmd := &cobra.Command{
		Use:   "lambda",
		Short: "Propose to execute a lambda function",
		Long: `Propose to execute a lambda function.

The code is Michelson in text notation or Micheline JSON and must have the
type lambda unit (list operation).`,
		Example: `  repms propose lambda --code-file lambda.tz`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := loadLambdaSource(code, codeFile)
			if err != nil {
				return err
			}
			return runPropose(cmd, codec.LambdaInput{Source: source})
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "Lambda code")
	cmd.Flags().StringVar(&codeFile, "code-file", "", "File containing the lambda code")

	return cmd
}

func newProposeAddRepresentativeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-representative <address> <community>",
		Short: "Propose to add a community and its representative",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPropose(cmd, codec.AddRepresentativeInput{Address: args[0], Community: args[1]})
		},
	}
}

func newProposeRemoveRepresentativeCmd() *cobra.Command {
	var community string

	cmd := &cobra.Command{
		Use:   "remove-representative [address]",
		Short: "Propose to remove a representative and its community",
		Long: `Propose to remove a representative and its community.

Without an address the representative is picked interactively. The
community defaults to the one the address represents.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			input := codec.RemoveRepresentativeInput{Community: community}
			if len(args) == 1 {
				input.Address = args[0]
			}

			if input.Address == "" || input.Community == "" {
				snapshot, err := app.LoadState.Ensure(cmd.Context())
				if err != nil {
					return err
				}
				if input.Address == "" {
					rep, err := app.Selector.SelectRepresentative(cmd.Context(),
						snapshot.Storage.SortedRepresentatives(), snapshot.Aliases)
					if err != nil {
						return err
					}
					input.Address = rep.Address
					if input.Community == "" {
						input.Community = rep.Community
					}
				} else if c, ok := snapshot.Storage.CommunityOf(input.Address); ok {
					input.Community = c
				}
			}

			return runPropose(cmd, input)
		},
	}

	cmd.Flags().StringVar(&community, "community", "", "Community represented by the address")

	return cmd
}

func newProposeMinimumVotesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "minimum-votes <votes>",
		Short: "Propose to change the positive votes required to execute a proposal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPropose(cmd, codec.MinimumVotesInput{Value: args[0]})
		},
	}
}

func newProposeExpirationTimeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "expiration-time <days>",
		Short: "Propose to change the proposals expiration time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPropose(cmd, codec.ExpirationTimeInput{Value: args[0]})
		},
	}
}
