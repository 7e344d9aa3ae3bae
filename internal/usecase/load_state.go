package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/representatives-dao/repms/internal/domain/config"
	"github.com/representatives-dao/repms/internal/domain/models"
)

// LoadState downloads the contract state and publishes it as the session snapshot
type LoadState struct {
	config  *config.RuntimeConfig
	indexer Indexer
	aliases AliasResolver
	session *Session
	sink    ProgressSink
	now     func() time.Time
}

// NewLoadState creates a new LoadState use case
func NewLoadState(cfg *config.RuntimeConfig, indexer Indexer, aliases AliasResolver, session *Session, sink ProgressSink) *LoadState {
	return &LoadState{
		config:  cfg,
		indexer: indexer,
		aliases: aliases,
		session: session,
		sink:    sink,
		now:     time.Now,
	}
}

// Ensure returns the current snapshot, loading it first if the session is empty
func (uc *LoadState) Ensure(ctx context.Context) (*Snapshot, error) {
	if snapshot := uc.session.Snapshot(); snapshot != nil {
		return snapshot, nil
	}
	return uc.Run(ctx)
}

// Run reloads the whole contract state. On failure the session is left untouched.
func (uc *LoadState) Run(ctx context.Context) (*Snapshot, error) {
	if uc.config.Contract == "" {
		return nil, ErrContractNotConfigured
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "storage",
		Message: "Downloading the representatives contract storage",
		Spinner: true,
	})
	storage, err := uc.indexer.GetStorage(ctx, uc.config.Contract)
	if err != nil {
		return nil, fmt.Errorf("failed to load contract storage: %w", err)
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "balance",
		Message: "Downloading the contract balance",
		Spinner: true,
	})
	balance, err := uc.indexer.GetBalance(ctx, uc.config.Contract)
	if err != nil {
		return nil, fmt.Errorf("failed to load contract balance: %w", err)
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "proposals",
		Message: "Downloading the proposals",
		Spinner: true,
	})
	proposals, err := uc.indexer.GetProposals(ctx, storage.ProposalsBigmap)
	if err != nil {
		return nil, fmt.Errorf("failed to load proposals: %w", err)
	}

	snapshot := &Snapshot{
		UserAddress: uc.config.Account,
		Storage:     storage,
		Balance:     balance,
		Proposals:   proposals,
		LoadedAt:    uc.now(),
	}
	snapshot.Aliases = uc.loadAliases(ctx, storage, proposals)

	if community, ok := storage.CommunityOf(uc.config.Account); ok {
		snapshot.Community = community
		snapshot.CommunityVotes = uc.loadCommunityVotes(ctx, storage, community)
	}

	uc.session.Replace(snapshot)

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "complete",
		Current: len(proposals),
		Total:   len(proposals),
		Message: "Contract state loaded",
	})
	return snapshot, nil
}

// RefreshProposals reloads the proposals and the user community votes on top of
// the current snapshot.
func (uc *LoadState) RefreshProposals(ctx context.Context) (*Snapshot, error) {
	current, err := uc.Ensure(ctx)
	if err != nil {
		return nil, err
	}

	proposals, err := uc.indexer.GetProposals(ctx, current.Storage.ProposalsBigmap)
	if err != nil {
		return nil, fmt.Errorf("failed to reload proposals: %w", err)
	}

	next := current.clone()
	next.Proposals = proposals
	next.LoadedAt = uc.now()
	if next.Community != "" {
		votes, err := uc.indexer.GetCommunityVotes(ctx, current.Storage.VotesBigmap, next.Community)
		if err != nil {
			return nil, fmt.Errorf("failed to reload community votes: %w", err)
		}
		next.CommunityVotes = votes
	}

	uc.session.Replace(next)
	return next, nil
}

// loadAliases is best effort: a failure is reported and the session continues without aliases
func (uc *LoadState) loadAliases(ctx context.Context, storage *models.ContractStorage, proposals []*models.Proposal) map[string]string {
	addresses := storage.RepresentativeAddresses()
	for _, p := range proposals {
		addresses = append(addresses, p.Issuer.Address)
		addresses = append(addresses, kindAddresses(p.Kind)...)
	}
	if uc.config.Account != "" {
		addresses = append(addresses, uc.config.Account)
	}
	addresses = lo.Uniq(lo.Compact(addresses))
	sort.Strings(addresses)

	aliases, err := uc.aliases.GetAliases(ctx, addresses)
	if err != nil {
		uc.sink.Error(fmt.Sprintf("Could not load address aliases: %v", err))
		return map[string]string{}
	}
	return aliases
}

func (uc *LoadState) loadCommunityVotes(ctx context.Context, storage *models.ContractStorage, community string) map[int64]bool {
	votes, err := uc.indexer.GetCommunityVotes(ctx, storage.VotesBigmap, community)
	if err != nil {
		uc.sink.Error(fmt.Sprintf("Could not load the votes of %s: %v", community, err))
		return map[int64]bool{}
	}
	return votes
}

// kindAddresses lists the addresses a proposal kind refers to
func kindAddresses(kind models.ProposalKind) []string {
	switch k := kind.(type) {
	case *models.TransferMutezKind:
		return lo.Map(k.Transfers, func(t models.Transfer, _ int) string { return t.Destination })
	case *models.TransferTokenKind:
		return lo.Map(k.Distribution, func(t models.Transfer, _ int) string { return t.Destination })
	case *models.AddRepresentativeKind:
		return []string{k.Representative.Address}
	case *models.RemoveRepresentativeKind:
		return []string{k.Representative.Address}
	}
	return nil
}
