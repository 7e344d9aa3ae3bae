package usecase

import (
	"context"
	"fmt"

	"github.com/representatives-dao/repms/internal/codec"
	"github.com/representatives-dao/repms/internal/domain/config"
	"github.com/representatives-dao/repms/internal/domain/models"
)

// CreateProposalParams contains parameters for creating a proposal
type CreateProposalParams struct {
	Input codec.Input
}

// CreateProposalResult contains the result of creating a proposal
type CreateProposalResult struct {
	Kind        models.ProposalKind `json:"kind"`
	Description codec.Description   `json:"description"`
	Operation   *OperationResult    `json:"operation"`
}

// CreateProposal validates a proposal and submits it to the contract
type CreateProposal struct {
	config *config.RuntimeConfig
	state  *LoadState
	caller *contractCaller
	sink   ProgressSink
}

// NewCreateProposal creates a new CreateProposal use case
func NewCreateProposal(
	cfg *config.RuntimeConfig,
	state *LoadState,
	indexer Indexer,
	submitter OperationSubmitter,
	sink ProgressSink,
) *CreateProposal {
	return &CreateProposal{
		config: cfg,
		state:  state,
		caller: &contractCaller{config: cfg, indexer: indexer, submitter: submitter, sink: sink},
		sink:   sink,
	}
}

// CheckIssuer returns an error when the configured account cannot create
// proposals. Run does the same check; callers use this one before work such
// as uploading a document.
func (uc *CreateProposal) CheckIssuer(ctx context.Context) error {
	snapshot, err := uc.state.Ensure(ctx)
	if err != nil {
		return err
	}
	return requireRepresentative(uc.config, snapshot)
}

// Run executes the create proposal use case
func (uc *CreateProposal) Run(ctx context.Context, params CreateProposalParams) (*CreateProposalResult, error) {
	snapshot, err := uc.state.Ensure(ctx)
	if err != nil {
		return nil, err
	}
	if err := requireRepresentative(uc.config, snapshot); err != nil {
		return nil, err
	}

	kind, err := codec.Encode(params.Input, codec.NewContext(snapshot.Storage, snapshot.Balance, uc.config.Tokens))
	if err != nil {
		return nil, err
	}
	value, err := codec.KindValue(kind)
	if err != nil {
		return nil, err
	}

	op, err := uc.caller.call(ctx, EntrypointAddProposal, value)
	if err != nil {
		return nil, err
	}

	result := &CreateProposalResult{
		Kind:        kind,
		Description: codec.DescribeKind(kind, uc.config.Tokens, codec.MapAliases(snapshot.Aliases)),
		Operation:   op,
	}
	if op.DryRun {
		return result, nil
	}

	if _, err := uc.state.RefreshProposals(ctx); err != nil {
		uc.sink.Error(fmt.Sprintf("The proposal was created but the proposals could not be reloaded: %v", err))
	}
	return result, nil
}
