package usecase

import (
	"context"
	"math/big"

	"blockwatch.cc/tzgo/micheline"

	"github.com/representatives-dao/repms/internal/domain/config"
	"github.com/representatives-dao/repms/internal/domain/models"
)

// Indexer reads the representatives contract state from the indexing API
type Indexer interface {
	GetStorage(ctx context.Context, contract string) (*models.ContractStorage, error)
	GetBalance(ctx context.Context, address string) (*big.Int, error)
	// GetProposals returns the proposals stored in a bigmap, newest first
	GetProposals(ctx context.Context, bigmap int64) ([]*models.Proposal, error)
	// GetCommunityVotes returns the votes cast by a community, keyed by proposal id
	GetCommunityVotes(ctx context.Context, bigmap int64, community string) (map[int64]bool, error)
	GetEntrypointType(ctx context.Context, contract, entrypoint string) (micheline.Prim, error)
	// WaitForOperation blocks until the operation is indexed as applied
	WaitForOperation(ctx context.Context, hash string) error
}

// AliasResolver looks up human readable aliases for addresses
type AliasResolver interface {
	GetAliases(ctx context.Context, addresses []string) (map[string]string, error)
}

// ContractCall is a call to a contract entrypoint
type ContractCall struct {
	Contract   string
	Entrypoint string
	Parameter  micheline.Prim
}

// OperationResult describes a submitted, or simulated, contract call
type OperationResult struct {
	Hash       string   `json:"hash,omitempty"`
	Entrypoint string   `json:"entrypoint"`
	Parameter  string   `json:"parameter"`
	Command    []string `json:"command,omitempty"`
	DryRun     bool     `json:"dryRun,omitempty"`
}

// OperationSubmitter signs and injects contract calls
type OperationSubmitter interface {
	Submit(ctx context.Context, call ContractCall) (*OperationResult, error)
}

// FileUploader uploads files to IPFS and returns their path
type FileUploader interface {
	Upload(ctx context.Context, path string) (string, error)
}

// LocalConfigStore handles local config persistence
type LocalConfigStore interface {
	Exists() bool
	Load(ctx context.Context) (*config.LocalConfig, error)
	Save(ctx context.Context, config *config.LocalConfig) error
	GetPath() string
}

// InteractiveSelector asks the user to pick among options
type InteractiveSelector interface {
	SelectRepresentative(ctx context.Context, representatives []models.Representative, aliases map[string]string) (*models.Representative, error)
	SelectProposals(ctx context.Context, proposals []*ProposalView) ([]*ProposalView, error)
	SelectApproval(ctx context.Context, prompt string) (bool, error)
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage    string
	Current  int
	Total    int
	Message  string
	Spinner  bool
	Metadata interface{}
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}
