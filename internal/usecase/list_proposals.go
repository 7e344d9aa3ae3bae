package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/representatives-dao/repms/internal/codec"
	"github.com/representatives-dao/repms/internal/domain/config"
	"github.com/representatives-dao/repms/internal/domain/models"
)

// ProposalView is a proposal classified at a point in time, ready for display
type ProposalView struct {
	Proposal    *models.Proposal      `json:"proposal"`
	IssuerAlias string                `json:"issuerAlias,omitempty"`
	Kind        models.KindName       `json:"kind"`
	Status      models.ProposalStatus `json:"status"`
	ExpiresAt   time.Time             `json:"expiresAt"`
	Description codec.Description     `json:"description"`
	// CanExecute is set for active proposals with enough positive votes
	CanExecute bool `json:"canExecute"`
	// Voted and Approval hold the vote of the user community, if any
	Voted    bool `json:"voted"`
	Approval bool `json:"approval,omitempty"`
}

// ListProposalsParams contains parameters for listing proposals
type ListProposalsParams struct {
	// Status restricts the result to one group, empty lists every group
	Status models.ProposalStatus
}

// ProposalListResult groups proposals by status, newest first
type ProposalListResult struct {
	Active       []*ProposalView `json:"active"`
	Executed     []*ProposalView `json:"executed"`
	Expired      []*ProposalView `json:"expired"`
	MinimumVotes int64           `json:"minimumVotes"`
	Community    string          `json:"community,omitempty"`
}

// ListProposals is the use case for listing proposals
type ListProposals struct {
	config *config.RuntimeConfig
	state  *LoadState
	sink   ProgressSink
	now    func() time.Time
}

// NewListProposals creates a new ListProposals use case
func NewListProposals(cfg *config.RuntimeConfig, state *LoadState, sink ProgressSink) *ListProposals {
	return &ListProposals{
		config: cfg,
		state:  state,
		sink:   sink,
		now:    time.Now,
	}
}

// Run executes the list proposals use case
func (uc *ListProposals) Run(ctx context.Context, params ListProposalsParams) (*ProposalListResult, error) {
	switch params.Status {
	case "", models.ProposalStatusActive, models.ProposalStatusExecuted, models.ProposalStatusExpired:
	default:
		return nil, fmt.Errorf("unknown proposal status %q (expected active, executed or expired)", params.Status)
	}

	snapshot, err := uc.state.Ensure(ctx)
	if err != nil {
		return nil, err
	}

	result := &ProposalListResult{
		MinimumVotes: snapshot.Storage.MinimumVotes,
		Community:    snapshot.Community,
	}
	now := uc.now()
	for _, p := range sortedProposals(snapshot.Proposals) {
		view := newProposalView(p, snapshot, uc.config.Tokens, now)
		if params.Status != "" && view.Status != params.Status {
			continue
		}
		switch view.Status {
		case models.ProposalStatusActive:
			result.Active = append(result.Active, view)
		case models.ProposalStatusExecuted:
			result.Executed = append(result.Executed, view)
		case models.ProposalStatusExpired:
			result.Expired = append(result.Expired, view)
		}
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "complete",
		Current: len(result.Active),
		Total:   len(snapshot.Proposals),
		Message: "Proposals classified",
	})
	return result, nil
}

// ShowProposal is the use case for showing a single proposal
type ShowProposal struct {
	config *config.RuntimeConfig
	state  *LoadState
	now    func() time.Time
}

// NewShowProposal creates a new ShowProposal use case
func NewShowProposal(cfg *config.RuntimeConfig, state *LoadState) *ShowProposal {
	return &ShowProposal{
		config: cfg,
		state:  state,
		now:    time.Now,
	}
}

// Run executes the show proposal use case
func (uc *ShowProposal) Run(ctx context.Context, id int64) (*ProposalView, error) {
	snapshot, err := uc.state.Ensure(ctx)
	if err != nil {
		return nil, err
	}
	p, ok := snapshot.Proposal(id)
	if !ok {
		return nil, fmt.Errorf("%w: #%d", ErrProposalNotFound, id)
	}
	return newProposalView(p, snapshot, uc.config.Tokens, uc.now()), nil
}

func newProposalView(p *models.Proposal, snapshot *Snapshot, tokens models.TokenRegistry, now time.Time) *ProposalView {
	storage := snapshot.Storage
	status := p.Status(now, storage.ExpirationTime)
	approval, voted := snapshot.Vote(p.ID)
	return &ProposalView{
		Proposal:    p,
		IssuerAlias: snapshot.Aliases[p.Issuer.Address],
		Kind:        p.Kind.Name(),
		Status:      status,
		ExpiresAt:   p.ExpiresAt(storage.ExpirationTime),
		Description: codec.Describe(p, tokens, codec.MapAliases(snapshot.Aliases)),
		CanExecute:  status == models.ProposalStatusActive && p.CanExecute(storage.MinimumVotes),
		Voted:       voted,
		Approval:    approval,
	}
}

func sortedProposals(proposals []*models.Proposal) []*models.Proposal {
	sorted := make([]*models.Proposal, len(proposals))
	copy(sorted, proposals)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ID > sorted[j].ID
	})
	return sorted
}
