package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/representatives-dao/repms/internal/domain/config"
	"github.com/representatives-dao/repms/internal/domain/models"
)

// VoteProposalParams contains parameters for voting on a proposal
type VoteProposalParams struct {
	ProposalID int64
	Approval   bool
}

// VoteProposalResult contains the result of a vote
type VoteProposalResult struct {
	ProposalID int64            `json:"proposalId"`
	Approval   bool             `json:"approval"`
	Community  string           `json:"community"`
	Operation  *OperationResult `json:"operation"`
}

// VoteProposal casts the vote of the user community on an active proposal
type VoteProposal struct {
	config *config.RuntimeConfig
	state  *LoadState
	caller *contractCaller
	sink   ProgressSink
	now    func() time.Time
}

// NewVoteProposal creates a new VoteProposal use case
func NewVoteProposal(
	cfg *config.RuntimeConfig,
	state *LoadState,
	indexer Indexer,
	submitter OperationSubmitter,
	sink ProgressSink,
) *VoteProposal {
	return &VoteProposal{
		config: cfg,
		state:  state,
		caller: &contractCaller{config: cfg, indexer: indexer, submitter: submitter, sink: sink},
		sink:   sink,
		now:    time.Now,
	}
}

// Run executes the vote proposal use case
func (uc *VoteProposal) Run(ctx context.Context, params VoteProposalParams) (*VoteProposalResult, error) {
	snapshot, err := uc.state.Ensure(ctx)
	if err != nil {
		return nil, err
	}
	if err := requireRepresentative(uc.config, snapshot); err != nil {
		return nil, err
	}
	if _, err := activeProposal(snapshot, params.ProposalID, uc.now()); err != nil {
		return nil, err
	}

	op, err := uc.caller.call(ctx, EntrypointVoteProposal, []any{natural(params.ProposalID), params.Approval})
	if err != nil {
		return nil, err
	}

	result := &VoteProposalResult{
		ProposalID: params.ProposalID,
		Approval:   params.Approval,
		Community:  snapshot.Community,
		Operation:  op,
	}
	if op.DryRun {
		return result, nil
	}

	if _, err := uc.state.RefreshProposals(ctx); err != nil {
		uc.sink.Error(fmt.Sprintf("The vote was cast but the proposals could not be reloaded: %v", err))
	}
	return result, nil
}

// activeProposal returns a proposal that can still be voted on or executed
func activeProposal(snapshot *Snapshot, id int64, now time.Time) (*models.Proposal, error) {
	p, ok := snapshot.Proposal(id)
	if !ok {
		return nil, fmt.Errorf("%w: #%d", ErrProposalNotFound, id)
	}
	if status := p.Status(now, snapshot.Storage.ExpirationTime); status != models.ProposalStatusActive {
		return nil, fmt.Errorf("%w: #%d is %s", ErrProposalNotActive, id, status)
	}
	return p, nil
}
