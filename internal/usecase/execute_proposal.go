package usecase

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/representatives-dao/repms/internal/codec"
	"github.com/representatives-dao/repms/internal/domain/config"
)

// ExecuteProposalParams contains parameters for executing a proposal
type ExecuteProposalParams struct {
	ProposalID int64
}

// ExecuteProposalResult contains the result of executing a proposal
type ExecuteProposalResult struct {
	ProposalID  int64             `json:"proposalId"`
	Description codec.Description `json:"description"`
	Operation   *OperationResult  `json:"operation"`
}

// ExecuteProposal executes an active proposal with enough positive votes
type ExecuteProposal struct {
	config *config.RuntimeConfig
	state  *LoadState
	caller *contractCaller
	sink   ProgressSink
	now    func() time.Time
}

// NewExecuteProposal creates a new ExecuteProposal use case
func NewExecuteProposal(
	cfg *config.RuntimeConfig,
	state *LoadState,
	indexer Indexer,
	submitter OperationSubmitter,
	sink ProgressSink,
) *ExecuteProposal {
	return &ExecuteProposal{
		config: cfg,
		state:  state,
		caller: &contractCaller{config: cfg, indexer: indexer, submitter: submitter, sink: sink},
		sink:   sink,
		now:    time.Now,
	}
}

// Run executes the execute proposal use case
func (uc *ExecuteProposal) Run(ctx context.Context, params ExecuteProposalParams) (*ExecuteProposalResult, error) {
	snapshot, err := uc.state.Ensure(ctx)
	if err != nil {
		return nil, err
	}
	if err := requireRepresentative(uc.config, snapshot); err != nil {
		return nil, err
	}
	p, err := activeProposal(snapshot, params.ProposalID, uc.now())
	if err != nil {
		return nil, err
	}
	if !p.CanExecute(snapshot.Storage.MinimumVotes) {
		return nil, fmt.Errorf("%w: #%d has %d of %d", ErrNotEnoughVotes,
			p.ID, p.PositiveVotes, snapshot.Storage.MinimumVotes)
	}

	op, err := uc.caller.call(ctx, EntrypointExecuteProposal, natural(params.ProposalID))
	if err != nil {
		return nil, err
	}

	result := &ExecuteProposalResult{
		ProposalID:  params.ProposalID,
		Description: codec.Describe(p, uc.config.Tokens, codec.MapAliases(snapshot.Aliases)),
		Operation:   op,
	}
	if op.DryRun {
		return result, nil
	}

	// executing may change the representatives, the parameters and the balance
	if _, err := uc.state.Run(ctx); err != nil {
		uc.sink.Error(fmt.Sprintf("The proposal was executed but the contract state could not be reloaded: %v", err))
	}
	return result, nil
}

func natural(n int64) *big.Int {
	return new(big.Int).SetInt64(n)
}
