package indexer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"blockwatch.cc/tzgo/micheline"

	"github.com/representatives-dao/repms/internal/codec"
	"github.com/representatives-dao/repms/internal/domain/config"
	"github.com/representatives-dao/repms/internal/domain/models"
	"github.com/representatives-dao/repms/internal/usecase"
	"github.com/representatives-dao/repms/pkg/tzkt"
)

// ErrOperationFailed is returned when an operation was included but not applied
var ErrOperationFailed = errors.New("operation failed")

// TzktAdapter reads the representatives contract through TzKT
type TzktAdapter struct {
	client       *tzkt.Client
	pollInterval time.Duration
	log          *slog.Logger
}

// NewTzktAdapter creates an indexer for the configured network
func NewTzktAdapter(cfg *config.RuntimeConfig, log *slog.Logger) (*TzktAdapter, error) {
	if cfg.Network == nil || cfg.Network.IndexerURL == "" {
		return nil, fmt.Errorf("no indexer url configured for the network")
	}
	interval := cfg.PollInterval
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &TzktAdapter{
		client:       tzkt.NewClient(cfg.Network.IndexerURL, tzkt.WithLogger(log)),
		pollInterval: interval,
		log:          log,
	}, nil
}

// storageJSON is the TzKT rendering of the contract storage
type storageJSON struct {
	Representatives map[string]string `json:"representatives"`
	Communities     []string          `json:"communities"`
	MinimumVotes    json.RawMessage   `json:"minimum_votes"`
	ExpirationTime  json.RawMessage   `json:"expiration_time"`
	Proposals       int64             `json:"proposals"`
	Votes           int64             `json:"votes"`
}

type proposalJSON struct {
	Issuer struct {
		Address   string `json:"address"`
		Community string `json:"community"`
	} `json:"issuer"`
	Timestamp     time.Time       `json:"timestamp"`
	Kind          json.RawMessage `json:"kind"`
	PositiveVotes json.RawMessage `json:"positive_votes"`
	Executed      bool            `json:"executed"`
}

type voteKeyJSON struct {
	Nat    json.RawMessage `json:"nat"`
	String string          `json:"string"`
}

// GetStorage downloads the contract storage
func (a *TzktAdapter) GetStorage(ctx context.Context, contract string) (*models.ContractStorage, error) {
	var raw storageJSON
	if err := a.client.GetContractStorage(ctx, contract, &raw); err != nil {
		return nil, err
	}

	minimumVotes, err := natInt64(raw.MinimumVotes)
	if err != nil {
		return nil, fmt.Errorf("invalid minimum_votes: %w", err)
	}
	expirationTime, err := natInt64(raw.ExpirationTime)
	if err != nil {
		return nil, fmt.Errorf("invalid expiration_time: %w", err)
	}

	storage := &models.ContractStorage{
		Representatives: raw.Representatives,
		Communities:     raw.Communities,
		MinimumVotes:    minimumVotes,
		ExpirationTime:  expirationTime,
		ProposalsBigmap: raw.Proposals,
		VotesBigmap:     raw.Votes,
	}
	if storage.Representatives == nil {
		storage.Representatives = map[string]string{}
	}
	return storage, nil
}

// GetBalance returns the balance in mutez
func (a *TzktAdapter) GetBalance(ctx context.Context, address string) (*big.Int, error) {
	return a.client.GetBalance(ctx, address)
}

// GetProposals returns every proposal in the proposals bigmap, newest first
func (a *TzktAdapter) GetProposals(ctx context.Context, bigmap int64) ([]*models.Proposal, error) {
	keys, err := a.client.GetBigmapKeys(ctx, bigmap, tzkt.BigmapQuery{})
	if err != nil {
		return nil, err
	}

	proposals := make([]*models.Proposal, 0, len(keys))
	for _, key := range keys {
		p, err := decodeProposal(key)
		if err != nil {
			return nil, err
		}
		proposals = append(proposals, p)
	}
	return proposals, nil
}

func decodeProposal(key tzkt.BigmapKey) (*models.Proposal, error) {
	id, err := natInt64(key.Key)
	if err != nil {
		return nil, fmt.Errorf("invalid proposal id %s: %w", key.Key, err)
	}

	var raw proposalJSON
	if err := json.Unmarshal(key.Value, &raw); err != nil {
		return nil, fmt.Errorf("invalid proposal #%d: %w", id, err)
	}
	votes, err := natInt64(raw.PositiveVotes)
	if err != nil {
		return nil, fmt.Errorf("invalid positive_votes of proposal #%d: %w", id, err)
	}

	return &models.Proposal{
		ID: id,
		Issuer: models.Representative{
			Address:   raw.Issuer.Address,
			Community: raw.Issuer.Community,
		},
		Timestamp:     raw.Timestamp,
		Kind:          codec.DecodeKind(raw.Kind),
		PositiveVotes: votes,
		Executed:      raw.Executed,
	}, nil
}

// GetCommunityVotes returns the votes of a community keyed by proposal id
func (a *TzktAdapter) GetCommunityVotes(ctx context.Context, bigmap int64, community string) (map[int64]bool, error) {
	keys, err := a.client.GetBigmapKeys(ctx, bigmap, tzkt.BigmapQuery{KeyString: community})
	if err != nil {
		return nil, err
	}

	votes := make(map[int64]bool, len(keys))
	for _, key := range keys {
		var k voteKeyJSON
		if err := json.Unmarshal(key.Key, &k); err != nil {
			return nil, fmt.Errorf("invalid vote key %s: %w", key.Key, err)
		}
		id, err := natInt64(k.Nat)
		if err != nil {
			return nil, fmt.Errorf("invalid vote key %s: %w", key.Key, err)
		}
		var approval bool
		if err := json.Unmarshal(key.Value, &approval); err != nil {
			return nil, fmt.Errorf("invalid vote of proposal #%d: %w", id, err)
		}
		votes[id] = approval
	}
	return votes, nil
}

// GetEntrypointType returns the parameter type of a contract entrypoint
func (a *TzktAdapter) GetEntrypointType(ctx context.Context, contract, entrypoint string) (micheline.Prim, error) {
	ep, err := a.client.GetEntrypoint(ctx, contract, entrypoint)
	if err != nil {
		return micheline.Prim{}, err
	}
	if ep.MichelineParameters == nil {
		return micheline.Prim{}, fmt.Errorf("entrypoint %s has no parameter type", entrypoint)
	}
	return *ep.MichelineParameters, nil
}

// WaitForOperation polls TzKT until every operation of the group is applied
func (a *TzktAdapter) WaitForOperation(ctx context.Context, hash string) error {
	ticker := time.NewTicker(a.pollInterval)
	defer ticker.Stop()

	for {
		ops, err := a.client.GetOperations(ctx, hash)
		if err != nil {
			// the indexer may lag behind the node
			a.log.Debug("operation lookup failed", "hash", hash, "error", err)
		} else if len(ops) > 0 {
			return checkOperations(hash, ops)
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("waiting for %s: %w", hash, ctx.Err())
		case <-ticker.C:
		}
	}
}

func checkOperations(hash string, ops []tzkt.Operation) error {
	for _, op := range ops {
		if op.Status != "" && op.Status != tzkt.StatusApplied {
			if len(op.Errors) > 0 {
				return fmt.Errorf("%w: %s is %s: %s", ErrOperationFailed, hash, op.Status, op.Errors)
			}
			return fmt.Errorf("%w: %s is %s", ErrOperationFailed, hash, op.Status)
		}
	}
	return nil
}

// natInt64 parses a TzKT nat that must fit in an int64
func natInt64(raw json.RawMessage) (int64, error) {
	n, err := codec.ParseNat(raw)
	if err != nil {
		return 0, err
	}
	if !n.IsInt64() {
		return 0, fmt.Errorf("%s is out of range", n)
	}
	return n.Int64(), nil
}

var _ usecase.Indexer = (*TzktAdapter)(nil)
